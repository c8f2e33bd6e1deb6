package engine

import (
	"testing"

	"github.com/sajeme/SRI/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMostPlayedPrefersHours(t *testing.T) {
	ds := testDataset()

	out := MostPlayed(ds, 0)
	require.NotEmpty(t, out)

	// Carreras X acumula 40 horas; el resto cuenta por unidad
	assert.Equal(t, 13, out[0].GameID)
	assert.InDelta(t, 40.0, out[0].Score, 1e-9)

	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].Score, out[i].Score)
	}
}

func TestMostPlayedSkipsUnknownGames(t *testing.T) {
	users := []models.UserDoc{{UserID: 1}}
	games := []models.GameDoc{{GameID: 10, Name: "uno"}}
	inters := []models.InteractionDoc{
		{UserID: 1, GameID: 10, HoursPlayed: fp(5)},
		{UserID: 1, GameID: 999, HoursPlayed: fp(100)}, // fuera del catálogo
	}
	ds := NewDataset(users, games, inters)

	out := MostPlayed(ds, 0)
	require.Len(t, out, 1)
	assert.Equal(t, 10, out[0].GameID)
}

func TestTopRatedOnlyRatedGames(t *testing.T) {
	ds := testDataset()

	out := TopRated(ds, 0)
	require.NotEmpty(t, out)

	ids := make(map[int]float64)
	for _, s := range out {
		ids[s.GameID] = s.Score
	}
	// el juego 12 solo tiene un like, sin rating: fuera del ranking
	assert.NotContains(t, ids, 12)
	assert.InDelta(t, 4.5, ids[10], 1e-9)

	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].Score, out[i].Score)
	}
}

func TestPopularityLimit(t *testing.T) {
	ds := testDataset()
	assert.Len(t, MostPlayed(ds, 1), 1)
	assert.LessOrEqual(t, len(TopRated(ds, 2)), 2)
}
