package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/sajeme/SRI/internal/cache"
	"github.com/sajeme/SRI/internal/engine"
	"github.com/sajeme/SRI/internal/models"
	"github.com/sajeme/SRI/internal/repository"
)

// Algo identifica la estrategia primaria pedida por el caller.
type Algo string

const (
	AlgoAssociation Algo = "association"
	AlgoContent     Algo = "content"
	AlgoUserKNN     Algo = "user-knn"
	AlgoItemKNN     Algo = "item-knn"
	AlgoSVD         Algo = "svd"
	AlgoColdStart   Algo = "cold-start"
)

// Piso y techo de resultados. El conteo exacto lo decide la CountPolicy
// inyectada, siempre dentro de estos límites.
const (
	MinN = 5
	MaxN = 10
)

// CountPolicy decide cuántos resultados devolver dentro de [minN, maxN].
type CountPolicy func(minN, maxN int) int

// RandomCount reproduce el comportamiento histórico (conteo aleatorio).
// Solo se cablea en cmd/api; los tests usan FixedCount.
func RandomCount(minN, maxN int) int {
	return minN + rand.Intn(maxN-minN+1)
}

// FixedCount siempre devuelve el techo.
func FixedCount(minN, maxN int) int {
	return maxN
}

type RecommendService struct {
	loader  repository.SnapshotLoader
	recRepo *repository.RecommendationRepository
	counts  CountPolicy
	svdSeed int64
}

// NewRecommendService crea el orquestador. recRepo puede ser nil (sin
// historial, útil en tests).
func NewRecommendService(loader repository.SnapshotLoader, recRepo *repository.RecommendationRepository, counts CountPolicy) *RecommendService {
	if counts == nil {
		counts = FixedCount
	}
	return &RecommendService{
		loader:  loader,
		recRepo: recRepo,
		counts:  counts,
		svdSeed: time.Now().UnixNano(),
	}
}

// SetSVDSeed fija la semilla del modelo de factores latentes (tests).
func (s *RecommendService) SetSVDSeed(seed int64) { s.svdSeed = seed }

type RecRequest struct {
	UserID  int
	Algo    Algo
	N       int
	Refresh bool
}

func cacheKey(req RecRequest, n int, version int64) string {
	return fmt.Sprintf("rec:user:%d:algo:%s:n:%d:v:%d", req.UserID, req.Algo, n, version)
}

// Recommend ejecuta la estrategia primaria y, si queda vacía (o su
// precondición falla), escala al fallback de popularidad. El resultado
// lleva Fallback=true cuando no salió de la estrategia pedida.
func (s *RecommendService) Recommend(ctx context.Context, req RecRequest) (*models.Recommendation, error) {
	n := req.N
	if n <= 0 {
		n = s.counts(MinN, MaxN)
	}
	if n < MinN {
		n = MinN
	}
	if n > MaxN {
		n = MaxN
	}

	// cache de respuestas: la key lleva la versión del dataset, así una
	// escritura posterior nunca sirve una respuesta vieja
	version := cache.DatasetVersion(ctx)
	var cached models.Recommendation
	if !req.Refresh {
		if ok, err := cache.GetJSON(ctx, cacheKey(req, n, version), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	ds, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	if ds.UserByID(req.UserID) == nil {
		return nil, ErrUserNotFound
	}

	items, primaryErr := s.runPrimary(ds, req.UserID, req.Algo)
	fallback := false
	if primaryErr != nil {
		// precondición fallida: fatal solo para la estrategia, el
		// orquestador intenta el fallback igualmente
		log.Printf("[recommend] estrategia %s no disponible para user=%d: %v", req.Algo, req.UserID, primaryErr)
		items = nil
	}
	if len(items) == 0 {
		items = s.popularityFallback(ds, n)
		fallback = true
		if len(items) == 0 {
			if primaryErr != nil {
				return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, primaryErr)
			}
			return nil, ErrNoRecommendations
		}
	}
	if len(items) > n {
		items = items[:n]
	}

	params := map[string]any{
		"n":       n,
		"refresh": req.Refresh,
	}
	if primaryErr != nil {
		params["primaryError"] = primaryErr.Error()
	}
	rec := &models.Recommendation{
		UserID:    req.UserID,
		Algo:      string(req.Algo),
		Fallback:  fallback,
		Params:    params,
		Items:     s.toRecItems(ds, items, fallback),
		CreatedAt: time.Now(),
	}

	// historial en Mongo (no rompemos la respuesta si falla)
	if s.recRepo != nil {
		if err := s.recRepo.Insert(ctx, rec); err != nil {
			log.Printf("[recommend] error guardando historial en Mongo: %v", err)
		}
	}

	if err := cache.SetJSON(ctx, cacheKey(req, n, version), rec, 60*60); err != nil {
		log.Printf("[recommend] error cacheando respuesta en Redis: %v", err)
	}

	return rec, nil
}

// runPrimary ajusta y consulta la estrategia pedida sobre el snapshot.
// Todo es efímero: los modelos viven lo que dura la petición.
func (s *RecommendService) runPrimary(ds *engine.Dataset, userID int, algo Algo) ([]engine.Scored, error) {
	switch algo {
	case AlgoAssociation:
		matrix := engine.BuildLikedMatrix(ds)
		rules := engine.NewRuleMiner().Mine(matrix.Transactions())
		candidates := engine.RecommendByRules(rules, matrix.PositiveSet(userID))

		nameToID := make(map[string]int, len(ds.Games))
		for _, g := range ds.Games {
			nameToID[g.Name] = g.GameID
		}
		var out []engine.Scored
		for _, c := range candidates {
			id, ok := nameToID[c.Name]
			if !ok {
				continue
			}
			out = append(out, engine.Scored{GameID: id, Score: c.Confidence, BasedOn: c.BasedOn})
		}
		return out, nil

	case AlgoContent:
		model := engine.BuildContentModel(ds.Games)
		return model.RecommendForUser(ds, userID), nil

	case AlgoUserKNN:
		rm := engine.BuildRatingMatrix(ds.Interactions)
		if rm.Empty() {
			return nil, fmt.Errorf("sin ratings válidos para el modelo colaborativo")
		}
		return rm.UserBasedScores(userID), nil

	case AlgoItemKNN:
		rm := engine.BuildRatingMatrix(ds.Interactions)
		if rm.Empty() {
			return nil, fmt.Errorf("sin ratings válidos para el modelo colaborativo")
		}
		return rm.ItemBasedScores(userID), nil

	case AlgoSVD:
		rm := engine.BuildRatingMatrix(ds.Interactions)
		if rm.Empty() {
			return nil, fmt.Errorf("sin ratings válidos para el modelo SVD")
		}
		model := engine.NewSVDModel(s.svdSeed)
		model.Fit(rm)
		return model.RecommendForUser(rm, userID), nil

	case AlgoColdStart:
		scorer := engine.BuildColdStartScorer(ds)
		return scorer.RecommendForUser(ds, userID), nil

	default:
		return nil, fmt.Errorf("%w: algoritmo %q desconocido", ErrInvalidParams, algo)
	}
}

// popularityFallback intercala mejor valorados y más jugados (en ese
// orden), deduplicando, hasta llenar n.
func (s *RecommendService) popularityFallback(ds *engine.Dataset, n int) []engine.Scored {
	topRated := engine.TopRated(ds, n)
	mostPlayed := engine.MostPlayed(ds, n)

	var out []engine.Scored
	seen := make(map[int]bool)
	i, j := 0, 0
	for len(out) < n && (i < len(topRated) || j < len(mostPlayed)) {
		if i < len(topRated) {
			if !seen[topRated[i].GameID] {
				out = append(out, topRated[i])
				seen[topRated[i].GameID] = true
			}
			i++
		}
		if len(out) < n && j < len(mostPlayed) {
			if !seen[mostPlayed[j].GameID] {
				out = append(out, mostPlayed[j])
				seen[mostPlayed[j].GameID] = true
			}
			j++
		}
	}
	return out
}

// toRecItems resuelve nombres y decide si el score viaja o no: las
// entradas de fallback llevan score de popularidad, que no es comparable
// con la métrica pedida, así que se omite.
func (s *RecommendService) toRecItems(ds *engine.Dataset, items []engine.Scored, fallback bool) []models.RecItem {
	out := make([]models.RecItem, 0, len(items))
	for _, it := range items {
		rec := models.RecItem{
			GameID:  it.GameID,
			Name:    ds.GameName(it.GameID),
			BasedOn: it.BasedOn,
		}
		if !fallback {
			score := it.Score
			rec.Score = &score
		}
		out = append(out, rec)
	}
	return out
}

// ====== Consulta de vecinos item-item (independiente del usuario) ======

// SimilarGames devuelve los n juegos más parecidos al objetivo según el
// modelo colaborativo item-item. Un juego fuera del vocabulario
// entrenado produce lista vacía, no error.
func (s *RecommendService) SimilarGames(ctx context.Context, gameID, n int) (*models.SimilarGamesResponse, error) {
	if n <= 0 {
		n = MaxN
	}
	ds, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	if ds.GameByID(gameID) == nil {
		return nil, ErrGameNotFound
	}

	rm := engine.BuildRatingMatrix(ds.Interactions)
	if rm.Empty() {
		return nil, ErrEngineUnavailable
	}

	resp := &models.SimilarGamesResponse{GameID: gameID, Items: []models.RecItem{}}
	neighbors, err := rm.ItemNeighbors(gameID, n)
	if err != nil {
		// juego sin ratings: la consulta falla pero no escala más arriba
		log.Printf("[recommend] similar-games: %v (gameId=%d)", err, gameID)
		return resp, nil
	}
	for _, nb := range neighbors {
		score := nb.Score
		resp.Items = append(resp.Items, models.RecItem{
			GameID: nb.GameID,
			Name:   ds.GameName(nb.GameID),
			Score:  &score,
		})
	}
	return resp, nil
}

// ====== Ranking editorial con boosting ======

type BoostRequest struct {
	Category       string
	DateStart      string
	DateEnd        string
	CategoryBoost  float64
	DateBoost      float64
	StrictCategory bool
	StrictDate     bool
	N              int
}

func (s *RecommendService) Boost(ctx context.Context, req BoostRequest) ([]models.RecItem, error) {
	n := req.N
	if n <= 0 {
		n = MinN
	}
	ds, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}

	items, err := engine.BoostedRanking(ds, engine.BoostParams{
		Category:       req.Category,
		DateStart:      req.DateStart,
		DateEnd:        req.DateEnd,
		CategoryBoost:  req.CategoryBoost,
		DateBoost:      req.DateBoost,
		StrictCategory: req.StrictCategory,
		StrictDate:     req.StrictDate,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if len(items) > n {
		items = items[:n]
	}
	return s.toRecItems(ds, items, false), nil
}

// ====== Rankings globales ======

func (s *RecommendService) MostPlayed(ctx context.Context, limit int) ([]models.RecItem, error) {
	if limit <= 0 {
		limit = MaxN
	}
	ds, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	return s.toRecItems(ds, engine.MostPlayed(ds, limit), false), nil
}

func (s *RecommendService) TopRated(ctx context.Context, limit int) ([]models.RecItem, error) {
	if limit <= 0 {
		limit = MaxN
	}
	ds, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	return s.toRecItems(ds, engine.TopRated(ds, limit), false), nil
}

// History lista el historial persistido de recomendaciones del usuario.
func (s *RecommendService) History(ctx context.Context, userID int, limit int64) ([]models.Recommendation, error) {
	if s.recRepo == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	return s.recRepo.FindByUser(ctx, userID, limit)
}
