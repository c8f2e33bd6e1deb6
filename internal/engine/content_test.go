package engine

import (
	"testing"

	"github.com/sajeme/SRI/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContentModelBasics(t *testing.T) {
	games := []models.GameDoc{
		{GameID: 1, Name: "uno", Categories: []string{"rol"}, Tags: []string{"fantasía"}},
		{GameID: 2, Name: "dos", Categories: []string{"rol"}, Tags: []string{"fantasía"}},
		{GameID: 3, Name: "tres", Categories: []string{"carreras"}},
		{GameID: 4, Name: "sin contenido"}, // sin tokens: fuera del espacio
	}
	m := BuildContentModel(games)

	assert.True(t, m.Contains(1))
	assert.True(t, m.Contains(3))
	assert.False(t, m.Contains(4))

	// diagonal = 1
	assert.InDelta(t, 1.0, m.Similarity(1, 1), 1e-9)

	// tokens idénticos: similitud 1
	assert.InDelta(t, 1.0, m.Similarity(1, 2), 1e-9)

	// sin tokens en común: similitud 0
	assert.InDelta(t, 0.0, m.Similarity(1, 3), 1e-9)

	// simetría
	assert.Equal(t, m.Similarity(1, 3), m.Similarity(3, 1))

	// juego fuera del espacio: 0
	assert.Equal(t, 0.0, m.Similarity(1, 4))
}

func TestBuildContentModelEmptyCatalog(t *testing.T) {
	m := BuildContentModel(nil)
	assert.Empty(t, m.GameIDs)
	assert.False(t, m.Contains(1))
}

func TestContentRecommendForUser(t *testing.T) {
	ds := testDataset()
	m := BuildContentModel(ds.Games)

	// ana (1): ancla = Dragón Místico (rating 5, rol+fantasía).
	// Reino Perdido comparte tokens; Carreras X no comparte ninguno.
	out := m.RecommendForUser(ds, 1)
	require.NotEmpty(t, out)

	ids := make(map[int]bool)
	for _, s := range out {
		ids[s.GameID] = true
		assert.NotEqual(t, 10, s.GameID, "no debe recomendar juegos ya jugados")
		assert.NotEqual(t, 11, s.GameID)
	}
	assert.True(t, ids[12])
	assert.False(t, ids[13], "sin similitud con los anclas no hay score")

	// con un solo ancla el promedio ponderado devuelve su rating
	for _, s := range out {
		if s.GameID == 12 {
			assert.InDelta(t, 5.0, s.Score, 1e-9)
		}
	}
}

func TestContentRecommendNoAnchors(t *testing.T) {
	ds := testDataset()
	m := BuildContentModel(ds.Games)

	// carla (3) no tiene interacciones: vacío, no error
	assert.Empty(t, m.RecommendForUser(ds, 3))

	// usuario inexistente: vacío
	assert.Empty(t, m.RecommendForUser(ds, 99))
}

func TestContentScoresSortedDescending(t *testing.T) {
	ds := testDataset()
	m := BuildContentModel(ds.Games)

	out := m.RecommendForUser(ds, 2)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].Score, out[i].Score)
	}
}
