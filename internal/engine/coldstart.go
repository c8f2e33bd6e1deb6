package engine

import (
	"errors"
	"time"
)

// Bonus fijo por token que coincide con un género favorito del usuario
// (se aplica una sola vez por token y juego).
const favoriteGenreBonus = 0.3

// Peso por defecto de un token sin observaciones.
const defaultTokenWeight = 0.5

// Factores de boost por defecto para el ranking editorial.
const (
	DefaultCategoryBoost = 1.5
	DefaultDateBoost     = 1.2
)

// ErrInvalidDateRange: fechas que no cumplen YYYY-MM-DD. Se rechaza
// antes de puntuar nada.
var ErrInvalidDateRange = errors.New("rango de fechas inválido (formato YYYY-MM-DD)")

// ColdStartScorer puntúa juegos para usuarios sin señal colaborativa
// fiable, usando solo el perfil (edad, géneros favoritos) y un prior
// global de afinidad por token derivado del historial de ratings.
type ColdStartScorer struct {
	Weights map[string]float64 // token normalizado -> afinidad en [0,1]
}

// BuildColdStartScorer calcula el peso global de cada token: por cada
// (interacción, token del juego) acumula un proxy de rating — la
// calificación si existe, 5.0 si solo hay like, 1.0 si no hay ninguna —
// y promedia normalizando a [0,1] (división por 5).
func BuildColdStartScorer(ds *Dataset) *ColdStartScorer {
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, it := range ds.Interactions {
		g := ds.GameByID(it.GameID)
		if g == nil {
			continue
		}
		proxy := 1.0
		if it.Rating != nil {
			proxy = *it.Rating
		} else if it.Liked != nil && *it.Liked {
			proxy = 5.0
		}
		for _, tok := range GameTokens(g) {
			sums[tok] += proxy
			counts[tok]++
		}
	}

	weights := make(map[string]float64, len(sums))
	for tok, total := range sums {
		if c := counts[tok]; c > 0 {
			weights[tok] = (total / float64(c)) / 5.0
		}
	}
	return &ColdStartScorer{Weights: weights}
}

func (s *ColdStartScorer) weight(token string) float64 {
	if w, ok := s.Weights[token]; ok {
		return w
	}
	return defaultTokenWeight
}

// RecommendForUser puntúa todos los juegos aptos para la edad del usuario:
// suma de afinidades por token más el bonus por género favorito (una vez
// por token aunque aparezca en categorías y en tags). Excluye juegos ya
// jugados y los que puntúan 0. Un juego con edad mínima por encima de la
// edad del usuario queda fuera aunque coincida en géneros.
func (s *ColdStartScorer) RecommendForUser(ds *Dataset, userID int) []Scored {
	user := ds.UserByID(userID)
	if user == nil {
		return nil
	}

	favGenres := make(map[string]bool, len(user.FavoriteGenres))
	for _, g := range user.FavoriteGenres {
		favGenres[NormalizeToken(g)] = true
	}

	played := make(map[int]bool)
	for _, it := range ds.InteractionsByUser(userID) {
		played[it.GameID] = true
	}

	var out []Scored
	for i := range ds.Games {
		g := &ds.Games[i]
		if played[g.GameID] {
			continue
		}
		if user.Age < g.MinAge {
			continue
		}

		score := 0.0
		bonusApplied := make(map[string]bool)
		for _, tok := range GameTokens(g) {
			score += s.weight(tok)
			if favGenres[tok] && !bonusApplied[tok] {
				score += favoriteGenreBonus
				bonusApplied[tok] = true
			}
		}
		if score <= 0 {
			continue
		}
		out = append(out, Scored{GameID: g.GameID, Score: round2(score)})
	}
	sortScoredStable(out)
	return out
}

// BoostParams son los parámetros del ranking editorial con boosting.
type BoostParams struct {
	Category       string // opcional; se normaliza como cualquier token
	DateStart      string // opcional, YYYY-MM-DD (ambos o ninguno)
	DateEnd        string
	CategoryBoost  float64
	DateBoost      float64
	StrictCategory bool
	StrictDate     bool
}

// BoostedRanking parte del rating promedio global de cada juego (0.0 si
// no tiene), multiplica por los factores de categoría y de fecha cuando
// el juego coincide, y opcionalmente excluye en modo estricto. Las
// fechas inválidas fallan la validación antes de puntuar.
func BoostedRanking(ds *Dataset, p BoostParams) ([]Scored, error) {
	if p.CategoryBoost <= 0 {
		p.CategoryBoost = DefaultCategoryBoost
	}
	if p.DateBoost <= 0 {
		p.DateBoost = DefaultDateBoost
	}
	category := NormalizeToken(p.Category)

	var start, end time.Time
	haveRange := p.DateStart != "" || p.DateEnd != ""
	if haveRange {
		if p.DateStart == "" || p.DateEnd == "" {
			return nil, ErrInvalidDateRange
		}
		var err error
		start, err = time.Parse("2006-01-02", p.DateStart)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		end, err = time.Parse("2006-01-02", p.DateEnd)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		if end.Before(start) {
			return nil, ErrInvalidDateRange
		}
	}

	avgRatings := averageRatings(ds)

	var out []Scored
	for i := range ds.Games {
		g := &ds.Games[i]
		score := avgRatings[g.GameID] // 0.0 si nadie lo calificó

		categoryMatch := false
		if category != "" {
			for _, tok := range GameTokens(g) {
				if tok == category {
					categoryMatch = true
					break
				}
			}
			if categoryMatch {
				score *= p.CategoryBoost
			}
		}

		dateMatch := false
		if haveRange && g.ReleaseDate != "" {
			if rel, err := time.Parse("2006-01-02", g.ReleaseDate); err == nil {
				// rango inclusivo en ambos extremos
				if !rel.Before(start) && !rel.After(end) {
					dateMatch = true
					score *= p.DateBoost
				}
			}
		}

		if p.StrictCategory && !categoryMatch {
			continue
		}
		if p.StrictDate && !dateMatch {
			continue
		}
		out = append(out, Scored{GameID: g.GameID, Score: round2(score)})
	}
	sortScoredStable(out)
	return out, nil
}

// averageRatings: promedio de calificaciones válidas por juego.
func averageRatings(ds *Dataset) map[int]float64 {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, it := range ds.Interactions {
		if it.Rating == nil {
			continue
		}
		r := *it.Rating
		if r < 0 || r > 5 {
			continue
		}
		sums[it.GameID] += r
		counts[it.GameID]++
	}
	out := make(map[int]float64, len(sums))
	for id, total := range sums {
		out[id] = total / float64(counts[id])
	}
	return out
}
