package engine

import (
	"testing"

	"github.com/sajeme/SRI/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratingsFixture() *RatingMatrix {
	inters := []models.InteractionDoc{
		{UserID: 1, GameID: 10, Rating: fp(5)},
		{UserID: 1, GameID: 11, Rating: fp(4)},
		{UserID: 2, GameID: 10, Rating: fp(5)},
		{UserID: 2, GameID: 11, Rating: fp(4)},
		{UserID: 2, GameID: 12, Rating: fp(5)},
		{UserID: 3, GameID: 10, Rating: fp(1)},
		{UserID: 3, GameID: 13, Rating: fp(2)},
		// interacciones sin rating o fuera de rango no entran a la matriz
		{UserID: 1, GameID: 13, Liked: bp(true)},
		{UserID: 3, GameID: 12, Rating: fp(7)},
	}
	return BuildRatingMatrix(inters)
}

func TestBuildRatingMatrixFilters(t *testing.T) {
	m := ratingsFixture()

	assert.False(t, m.Empty())
	assert.True(t, m.HasUser(1))
	assert.False(t, m.HasUser(99))

	// el like sin rating de (1,13) no cuenta
	_, ok := m.ByUser[1][13]
	assert.False(t, ok)

	// el rating 7 de (3,12) queda fuera
	_, ok = m.ByGame[12][3]
	assert.False(t, ok)
}

func TestUserBasedScores(t *testing.T) {
	m := ratingsFixture()

	// usuario 1 es casi idéntico al 2; debería recibir el juego 12
	out := m.UserBasedScores(1)
	require.NotEmpty(t, out)

	for _, s := range out {
		_, rated := m.ByUser[1][s.GameID]
		assert.False(t, rated, "no debe proponer juegos ya calificados")
		assert.GreaterOrEqual(t, s.Score, 0.0)
		assert.LessOrEqual(t, s.Score, 5.0)
	}

	ids := make(map[int]float64)
	for _, s := range out {
		ids[s.GameID] = s.Score
	}
	assert.Contains(t, ids, 12)
}

func TestUserBasedAbsentUser(t *testing.T) {
	m := ratingsFixture()
	assert.Empty(t, m.UserBasedScores(99))
}

func TestItemBasedScores(t *testing.T) {
	m := ratingsFixture()

	out := m.ItemBasedScores(1)
	for _, s := range out {
		_, rated := m.ByUser[1][s.GameID]
		assert.False(t, rated)
		assert.GreaterOrEqual(t, s.Score, 0.0)
		assert.LessOrEqual(t, s.Score, 5.0)
	}

	assert.Empty(t, m.ItemBasedScores(99))
}

func TestItemNeighborsExcludesSelf(t *testing.T) {
	m := ratingsFixture()

	nbs, err := m.ItemNeighbors(10, 5)
	require.NoError(t, err)
	require.NotEmpty(t, nbs)
	for _, nb := range nbs {
		assert.NotEqual(t, 10, nb.GameID, "el propio juego no puede ser su vecino")
		assert.Greater(t, nb.Score, 0.0)
		assert.LessOrEqual(t, nb.Score, 1.0)
	}
}

func TestItemNeighborsUnknownGame(t *testing.T) {
	m := ratingsFixture()

	_, err := m.ItemNeighbors(999, 5)
	assert.ErrorIs(t, err, ErrUnknownGame)
}

func TestScoresDeterministicOrder(t *testing.T) {
	m := ratingsFixture()

	a := m.UserBasedScores(3)
	b := m.UserBasedScores(3)
	assert.Equal(t, a, b)

	for i := 1; i < len(a); i++ {
		if a[i-1].Score == a[i].Score {
			assert.Less(t, a[i-1].GameID, a[i].GameID, "empates resueltos por gameId ascendente")
		} else {
			assert.Greater(t, a[i-1].Score, a[i].Score)
		}
	}
}

func TestCosineSparseCommonKeysOnly(t *testing.T) {
	a := map[int]float64{1: 5, 2: 3}
	b := map[int]float64{1: 5, 3: 4}

	// solo la clave 1 es común: coseno sobre vectores de un componente = 1
	assert.InDelta(t, 1.0, cosineSparse(a, b), 1e-9)

	// sin claves comunes: 0
	assert.Equal(t, 0.0, cosineSparse(a, map[int]float64{9: 1}))
}
