package engine

import (
	"errors"
	"math"
	"sort"

	"github.com/sajeme/SRI/internal/models"
)

// Vecinos considerados al predecir un rating (estilo KNNBasic).
const DefaultNeighbors = 40

// ErrUnknownGame indica que el juego pedido no está en el vocabulario
// entrenado (nadie lo ha calificado). El orquestador lo traduce a una
// respuesta vacía sin propagar más arriba.
var ErrUnknownGame = errors.New("juego fuera del vocabulario de ratings")

// RatingMatrix es la matriz dispersa usuario×juego restringida a
// interacciones con calificación numérica válida en [0,5]. Se ajusta
// fresca en cada petición.
type RatingMatrix struct {
	ByUser map[int]map[int]float64 // userId -> gameId -> rating
	ByGame map[int]map[int]float64 // gameId -> userId -> rating
}

// BuildRatingMatrix filtra las interacciones con rating válido.
func BuildRatingMatrix(inters []models.InteractionDoc) *RatingMatrix {
	m := &RatingMatrix{
		ByUser: make(map[int]map[int]float64),
		ByGame: make(map[int]map[int]float64),
	}
	for _, it := range inters {
		if it.Rating == nil {
			continue
		}
		r := *it.Rating
		if r < 0 || r > 5 {
			continue
		}
		if m.ByUser[it.UserID] == nil {
			m.ByUser[it.UserID] = make(map[int]float64)
		}
		m.ByUser[it.UserID][it.GameID] = r
		if m.ByGame[it.GameID] == nil {
			m.ByGame[it.GameID] = make(map[int]float64)
		}
		m.ByGame[it.GameID][it.UserID] = r
	}
	return m
}

// Empty indica que no hay ningún rating válido: precondición fallida
// para cualquier estrategia colaborativa.
func (m *RatingMatrix) Empty() bool { return len(m.ByUser) == 0 }

// HasUser indica si el usuario aportó al menos un rating válido.
func (m *RatingMatrix) HasUser(userID int) bool { return len(m.ByUser[userID]) > 0 }

// cosineSparse calcula coseno sobre las claves comunes de dos vectores
// dispersos (como la similitud 'cosine' de los KNN clásicos).
func cosineSparse(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot, na, nb float64
	for k, va := range a {
		vb, ok := b[k]
		if !ok {
			continue
		}
		dot += va * vb
		na += va * va
		nb += vb * vb
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

type neighbor struct {
	id  int
	sim float64
}

// topKNeighbors devuelve los k vecinos de target (por coseno) entre los
// candidatos, excluyendo al propio target. Orden determinista: similitud
// descendente, id ascendente en empates.
func topKNeighbors(target int, vectors map[int]map[int]float64, k int) []neighbor {
	tv := vectors[target]
	var out []neighbor
	for id, vec := range vectors {
		if id == target {
			continue
		}
		s := cosineSparse(tv, vec)
		if s <= 0 {
			continue
		}
		out = append(out, neighbor{id: id, sim: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].sim != out[j].sim {
			return out[i].sim > out[j].sim
		}
		return out[i].id < out[j].id
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// UserBasedScores rankea los juegos no vistos por el usuario según el
// promedio ponderado de los ratings de sus vecinos. Usuario ausente de
// la matriz -> vacío (el caller decide el fallback).
func (m *RatingMatrix) UserBasedScores(userID int) []Scored {
	if !m.HasUser(userID) {
		return nil
	}
	rated := m.ByUser[userID]
	neighbors := topKNeighbors(userID, m.ByUser, DefaultNeighbors)
	if len(neighbors) == 0 {
		return nil
	}

	var out []Scored
	for gameID, raters := range m.ByGame {
		if _, ya := rated[gameID]; ya {
			continue
		}
		var num, den float64
		for _, nb := range neighbors {
			if r, ok := raters[nb.id]; ok {
				num += nb.sim * r
				den += nb.sim
			}
		}
		if den <= 0 {
			continue
		}
		out = append(out, Scored{GameID: gameID, Score: round2(num / den)})
	}
	sortScoredStable(out)
	return out
}

// ItemBasedScores es el simétrico sobre vectores de juego: el rating
// estimado de un candidato sale de los juegos ya calificados por el
// usuario ponderados por la similitud entre juegos.
func (m *RatingMatrix) ItemBasedScores(userID int) []Scored {
	rated := m.ByUser[userID]
	if len(rated) == 0 {
		return nil
	}

	var out []Scored
	for gameID := range m.ByGame {
		if _, ya := rated[gameID]; ya {
			continue
		}
		neighbors := topKNeighbors(gameID, m.ByGame, DefaultNeighbors)
		var num, den float64
		for _, nb := range neighbors {
			if r, ok := rated[nb.id]; ok {
				num += nb.sim * r
				den += nb.sim
			}
		}
		if den <= 0 {
			continue
		}
		out = append(out, Scored{GameID: gameID, Score: round2(num / den)})
	}
	sortScoredStable(out)
	return out
}

// ItemNeighbors devuelve los k juegos más parecidos al juego objetivo
// por coseno entre vectores de rating, sin incluir al propio juego.
// No depende de ningún usuario.
func (m *RatingMatrix) ItemNeighbors(gameID, k int) ([]Scored, error) {
	if len(m.ByGame[gameID]) == 0 {
		return nil, ErrUnknownGame
	}
	neighbors := topKNeighbors(gameID, m.ByGame, k)
	out := make([]Scored, 0, len(neighbors))
	for _, nb := range neighbors {
		out = append(out, Scored{GameID: nb.id, Score: round4(nb.sim)})
	}
	return out, nil
}

// sortScoredStable ordena por score descendente con desempate por gameId
// para que el ranking sea reproducible entre ejecuciones.
func sortScoredStable(s []Scored) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Score != s[j].Score {
			return s[i].Score > s[j].Score
		}
		return s[i].GameID < s[j].GameID
	})
}
