package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sajeme/SRI/internal/engine"
	"github.com/sajeme/SRI/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }
func bp(v bool) *bool       { return &v }

// fakeLoader sirve un snapshot fijo sin tocar Mongo.
type fakeLoader struct {
	ds  *engine.Dataset
	err error
}

func (f *fakeLoader) Load(ctx context.Context) (*engine.Dataset, error) {
	return f.ds, f.err
}

func serviceDataset() *engine.Dataset {
	users := []models.UserDoc{
		{UserID: 1, Name: "ana", Age: 25, FavoriteGenres: []string{"rol"}},
		{UserID: 2, Name: "bruno", Age: 30},
		{UserID: 3, Name: "carla", Age: 20}, // sin interacciones
	}
	games := []models.GameDoc{
		{GameID: 10, Name: "Dragón Místico", Categories: []string{"rol"}, Tags: []string{"fantasía"}, ReleaseDate: "2020-05-01"},
		{GameID: 11, Name: "Guerra Total", Categories: []string{"acción"}, MinAge: 18, ReleaseDate: "2021-03-15"},
		{GameID: 12, Name: "Reino Perdido", Categories: []string{"rol"}, Tags: []string{"fantasía"}, ReleaseDate: "2019-11-20"},
		{GameID: 13, Name: "Carreras X", Categories: []string{"carreras"}, ReleaseDate: "2022-01-10"},
	}
	inters := []models.InteractionDoc{
		{UserID: 1, GameID: 10, Rating: fp(5)},
		{UserID: 1, GameID: 11, Rating: fp(2)},
		{UserID: 2, GameID: 10, Rating: fp(4)},
		{UserID: 2, GameID: 12, Liked: bp(true)},
		{UserID: 2, GameID: 13, Rating: fp(3), HoursPlayed: fp(40)},
	}
	return engine.NewDataset(users, games, inters)
}

func newTestService(ds *engine.Dataset) *RecommendService {
	svc := NewRecommendService(&fakeLoader{ds: ds}, nil, FixedCount)
	svc.SetSVDSeed(42)
	return svc
}

func TestRecommendUserNotFound(t *testing.T) {
	svc := newTestService(serviceDataset())

	_, err := svc.Recommend(context.Background(), RecRequest{UserID: 99, Algo: AlgoContent})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRecommendLoaderError(t *testing.T) {
	svc := NewRecommendService(&fakeLoader{err: errors.New("mongo caído")}, nil, FixedCount)

	_, err := svc.Recommend(context.Background(), RecRequest{UserID: 1, Algo: AlgoContent})
	assert.ErrorIs(t, err, ErrEngineUnavailable)
}

func TestRecommendPrimaryStrategy(t *testing.T) {
	svc := newTestService(serviceDataset())

	rec, err := svc.Recommend(context.Background(), RecRequest{UserID: 1, Algo: AlgoContent})
	require.NoError(t, err)

	assert.False(t, rec.Fallback)
	assert.Equal(t, string(AlgoContent), rec.Algo)
	require.NotEmpty(t, rec.Items)
	for _, item := range rec.Items {
		assert.NotEmpty(t, item.Name)
		require.NotNil(t, item.Score, "las entradas de la estrategia primaria llevan score")
	}
}

func TestRecommendFallbackWhenNoSignal(t *testing.T) {
	svc := newTestService(serviceDataset())

	// carla no tiene interacciones: contenido devuelve vacío y el
	// orquestador escala a popularidad
	rec, err := svc.Recommend(context.Background(), RecRequest{UserID: 3, Algo: AlgoContent})
	require.NoError(t, err)

	assert.True(t, rec.Fallback)
	require.NotEmpty(t, rec.Items)
	for _, item := range rec.Items {
		assert.Nil(t, item.Score, "el score de popularidad no viaja en el fallback")
	}
}

func TestRecommendFallbackOnPreconditionFailure(t *testing.T) {
	// dataset con interacciones pero sin ningún rating válido: el modelo
	// colaborativo no puede ajustarse, pero most-played sí tiene señal
	users := []models.UserDoc{{UserID: 1, Name: "ana"}}
	games := []models.GameDoc{{GameID: 10, Name: "uno"}, {GameID: 11, Name: "dos"}}
	inters := []models.InteractionDoc{
		{UserID: 1, GameID: 10, HoursPlayed: fp(12)},
	}
	svc := newTestService(engine.NewDataset(users, games, inters))

	rec, err := svc.Recommend(context.Background(), RecRequest{UserID: 1, Algo: AlgoUserKNN})
	require.NoError(t, err)
	assert.True(t, rec.Fallback)
	require.NotEmpty(t, rec.Items)
}

func TestRecommendEngineUnavailable(t *testing.T) {
	// sin interacciones de nadie: falla la estrategia y el fallback
	users := []models.UserDoc{{UserID: 1, Name: "ana"}}
	games := []models.GameDoc{{GameID: 10, Name: "uno"}}
	svc := newTestService(engine.NewDataset(users, games, nil))

	_, err := svc.Recommend(context.Background(), RecRequest{UserID: 1, Algo: AlgoSVD})
	assert.ErrorIs(t, err, ErrEngineUnavailable)
}

func TestRecommendNoRecommendations(t *testing.T) {
	// la estrategia corre (vacía) y el fallback tampoco tiene nada
	users := []models.UserDoc{{UserID: 1, Name: "ana", Age: 30}}
	svc := newTestService(engine.NewDataset(users, nil, nil))

	_, err := svc.Recommend(context.Background(), RecRequest{UserID: 1, Algo: AlgoContent})
	assert.ErrorIs(t, err, ErrNoRecommendations)
}

func TestRecommendCountBounds(t *testing.T) {
	svc := newTestService(serviceDataset())

	// un n por debajo del piso se eleva a MinN
	rec, err := svc.Recommend(context.Background(), RecRequest{UserID: 3, Algo: AlgoContent, N: 1})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(rec.Items), MinN)

	params, ok := rec.Params.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, MinN, params["n"])

	// un n por encima del techo se recorta a MaxN
	rec, err = svc.Recommend(context.Background(), RecRequest{UserID: 3, Algo: AlgoContent, N: 50})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(rec.Items), MaxN)
}

func TestRecommendAllAlgorithms(t *testing.T) {
	svc := newTestService(serviceDataset())

	for _, algo := range []Algo{AlgoAssociation, AlgoContent, AlgoUserKNN, AlgoItemKNN, AlgoSVD, AlgoColdStart} {
		rec, err := svc.Recommend(context.Background(), RecRequest{UserID: 1, Algo: algo})
		require.NoError(t, err, "algo %s", algo)
		assert.NotEmpty(t, rec.Items, "algo %s", algo)
	}
}

func TestSimilarGames(t *testing.T) {
	svc := newTestService(serviceDataset())

	resp, err := svc.SimilarGames(context.Background(), 10, 5)
	require.NoError(t, err)
	assert.Equal(t, 10, resp.GameID)
	for _, item := range resp.Items {
		assert.NotEqual(t, 10, item.GameID)
		require.NotNil(t, item.Score)
	}

	// juego fuera del catálogo
	_, err = svc.SimilarGames(context.Background(), 999, 5)
	assert.ErrorIs(t, err, ErrGameNotFound)

	// juego en catálogo pero sin ratings: lista vacía, sin error
	resp, err = svc.SimilarGames(context.Background(), 12, 5)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestBoostInvalidParams(t *testing.T) {
	svc := newTestService(serviceDataset())

	_, err := svc.Boost(context.Background(), BoostRequest{DateStart: "2020-01-01"})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestBoostStrictCategory(t *testing.T) {
	svc := newTestService(serviceDataset())

	items, err := svc.Boost(context.Background(), BoostRequest{Category: "rol", StrictCategory: true, N: 10})
	require.NoError(t, err)
	require.NotEmpty(t, items)
	for _, item := range items {
		assert.NotEqual(t, 11, item.GameID)
		assert.NotEqual(t, 13, item.GameID)
	}
}

func TestGlobalRankings(t *testing.T) {
	svc := newTestService(serviceDataset())

	played, err := svc.MostPlayed(context.Background(), 10)
	require.NoError(t, err)
	require.NotEmpty(t, played)
	assert.Equal(t, 13, played[0].GameID) // 40 horas acumuladas

	rated, err := svc.TopRated(context.Background(), 10)
	require.NoError(t, err)
	require.NotEmpty(t, rated)
	assert.Equal(t, 10, rated[0].GameID) // promedio 4.5
}
