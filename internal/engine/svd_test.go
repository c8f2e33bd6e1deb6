package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSVDPredictWithinBounds(t *testing.T) {
	m := ratingsFixture()
	model := NewSVDModel(42)
	model.Fit(m)

	for uid := range m.ByUser {
		for gid := range m.ByGame {
			p := model.Predict(uid, gid)
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 5.0)
		}
	}
}

func TestSVDDeterministicWithSeed(t *testing.T) {
	m := ratingsFixture()

	a := NewSVDModel(7)
	a.Fit(m)
	b := NewSVDModel(7)
	b.Fit(m)

	assert.Equal(t, a.Predict(1, 12), b.Predict(1, 12))
	assert.Equal(t, a.RecommendForUser(m, 1), b.RecommendForUser(m, 1))
}

func TestSVDRecommendForUser(t *testing.T) {
	m := ratingsFixture()
	model := NewSVDModel(42)
	model.Fit(m)

	out := model.RecommendForUser(m, 1)
	require.NotEmpty(t, out)
	for _, s := range out {
		_, rated := m.ByUser[1][s.GameID]
		assert.False(t, rated, "no debe predecir juegos ya calificados")
	}

	// usuario sin ratings: vacío, mismo contrato que los KNN
	assert.Empty(t, model.RecommendForUser(m, 99))
}

func TestSVDLearnsTrainingSignal(t *testing.T) {
	m := ratingsFixture()
	model := NewSVDModel(42)
	model.Fit(m)

	// tras entrenar, una celda alta observada debe predecirse por encima
	// de una celda baja observada
	high := model.Predict(1, 10) // rating real 5
	low := model.Predict(3, 10)  // rating real 1
	assert.Greater(t, high, low)
}
