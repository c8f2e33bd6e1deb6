package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildColdStartScorerWeights(t *testing.T) {
	ds := testDataset()
	s := BuildColdStartScorer(ds)

	// "rol" acumula: 5 (ana/10), 4 (bruno/10), 5 (bruno/12, like) -> 14/3/5
	require.Contains(t, s.Weights, "rol")
	assert.InDelta(t, (14.0/3.0)/5.0, s.Weights["rol"], 1e-9)

	// token sin observaciones usa el peso por defecto
	assert.Equal(t, 0.5, s.weight("token_inexistente"))
}

func TestColdStartAgeGating(t *testing.T) {
	ds := testDataset()
	s := BuildColdStartScorer(ds)

	// carla (12 años) no puede recibir Guerra Total (minAge 18) aunque
	// acción sea su género favorito
	out := s.RecommendForUser(ds, 3)
	require.NotEmpty(t, out)
	for _, sc := range out {
		assert.NotEqual(t, 11, sc.GameID, "juego por encima de la edad del usuario")
		assert.Greater(t, sc.Score, 0.0)
	}
}

func TestColdStartFavoriteGenreBonus(t *testing.T) {
	ds := testDataset()
	s := BuildColdStartScorer(ds)

	// ana (rol favorito) no ha jugado Reino Perdido (rol + fantasía + aventura)
	out := s.RecommendForUser(ds, 1)
	require.NotEmpty(t, out)

	var reino, carreras float64
	for _, sc := range out {
		switch sc.GameID {
		case 12:
			reino = sc.Score
		case 13:
			carreras = sc.Score
		}
	}
	require.NotZero(t, reino)
	require.NotZero(t, carreras)
	// el bonus por género favorito empuja Reino Perdido por encima
	assert.Greater(t, reino, carreras)
}

func TestColdStartExcludesPlayed(t *testing.T) {
	ds := testDataset()
	s := BuildColdStartScorer(ds)

	out := s.RecommendForUser(ds, 1)
	for _, sc := range out {
		assert.NotEqual(t, 10, sc.GameID)
		assert.NotEqual(t, 11, sc.GameID)
	}
}

func TestColdStartUnknownUser(t *testing.T) {
	ds := testDataset()
	s := BuildColdStartScorer(ds)
	assert.Nil(t, s.RecommendForUser(ds, 99))
}

func TestBoostedRankingCategory(t *testing.T) {
	ds := testDataset()

	out, err := BoostedRanking(ds, BoostParams{Category: "Rol", StrictCategory: true})
	require.NoError(t, err)

	// modo estricto: solo juegos con la categoría (normalizada)
	for _, sc := range out {
		g := ds.GameByID(sc.GameID)
		require.NotNil(t, g)
		assert.Contains(t, g.Categories, "rol")
	}
}

func TestBoostedRankingDateWindow(t *testing.T) {
	ds := testDataset()

	out, err := BoostedRanking(ds, BoostParams{
		DateStart:  "2020-01-01",
		DateEnd:    "2021-12-31",
		StrictDate: true,
	})
	require.NoError(t, err)
	for _, sc := range out {
		g := ds.GameByID(sc.GameID)
		require.NotNil(t, g)
		assert.True(t, g.ReleaseDate >= "2020-01-01" && g.ReleaseDate <= "2021-12-31",
			"juego %d fuera de la ventana: %s", sc.GameID, g.ReleaseDate)
	}
}

func TestBoostedRankingInvalidDates(t *testing.T) {
	ds := testDataset()

	// solo una fecha: inválido
	_, err := BoostedRanking(ds, BoostParams{DateStart: "2020-01-01"})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	// formato incorrecto
	_, err = BoostedRanking(ds, BoostParams{DateStart: "01/01/2020", DateEnd: "2020-12-31"})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	// fin antes del inicio
	_, err = BoostedRanking(ds, BoostParams{DateStart: "2021-01-01", DateEnd: "2020-01-01"})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestBoostedRankingMultipliers(t *testing.T) {
	ds := testDataset()

	// sin boost: Dragón Místico promedia 4.5
	base, err := BoostedRanking(ds, BoostParams{})
	require.NoError(t, err)
	var baseScore float64
	for _, sc := range base {
		if sc.GameID == 10 {
			baseScore = sc.Score
		}
	}
	assert.InDelta(t, 4.5, baseScore, 1e-9)

	// con boost de categoría rol (x1.5): 6.75
	boosted, err := BoostedRanking(ds, BoostParams{Category: "rol"})
	require.NoError(t, err)
	for _, sc := range boosted {
		if sc.GameID == 10 {
			assert.InDelta(t, 6.75, sc.Score, 1e-9)
		}
	}
}
