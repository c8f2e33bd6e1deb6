package engine

import (
	"sort"
	"strings"

	"github.com/sajeme/SRI/internal/models"
)

// Umbrales de positividad. Asociación y cold-start usan 3.5; la
// estrategia de contenido exige 4.0 para considerar un juego "ancla".
const (
	PositiveRating    = 3.5
	HighlyRatedRating = 4.0
)

// NormalizeToken pasa a minúsculas y colapsa espacios internos a "_",
// de modo que "Juego de Rol" y "juego  de rol" producen el mismo token.
func NormalizeToken(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	return strings.Join(fields, "_")
}

// GameTokens devuelve los tokens de contenido normalizados de un juego
// (categorías + tags). Puede devolver vacío si el juego no tiene contenido.
func GameTokens(g *models.GameDoc) []string {
	tokens := make([]string, 0, len(g.Categories)+len(g.Tags))
	for _, c := range g.Categories {
		if t := NormalizeToken(c); t != "" {
			tokens = append(tokens, t)
		}
	}
	for _, tag := range g.Tags {
		if t := NormalizeToken(tag); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Positive: calificación >= 3.5 o like explícito.
func Positive(it models.InteractionDoc) bool {
	if it.Rating != nil && *it.Rating >= PositiveRating {
		return true
	}
	return it.Liked != nil && *it.Liked
}

// HighlyRated: calificación >= 4.0 o like explícito (estrategia de contenido).
func HighlyRated(it models.InteractionDoc) bool {
	if it.Rating != nil && *it.Rating >= HighlyRatedRating {
		return true
	}
	return it.Liked != nil && *it.Liked
}

// LikedMatrix es la matriz booleana usuario×juego sobre nombres de juego.
// Todo usuario registrado aparece como fila, aunque sea toda de ceros;
// las celdas ausentes cuentan como false.
type LikedMatrix struct {
	Rows map[int]map[string]bool // userId -> nombre de juego -> positivo
}

// BuildLikedMatrix deriva la matriz de "gustados" del snapshot.
// Derivación pura: no toca el dataset.
func BuildLikedMatrix(ds *Dataset) *LikedMatrix {
	rows := make(map[int]map[string]bool, len(ds.Users))
	for _, u := range ds.Users {
		rows[u.UserID] = make(map[string]bool)
	}
	for _, it := range ds.Interactions {
		name := ds.GameName(it.GameID)
		if name == "" {
			continue // interacción con juego fuera del catálogo
		}
		row, ok := rows[it.UserID]
		if !ok {
			// usuario no registrado pero con interacciones: fila propia
			row = make(map[string]bool)
			rows[it.UserID] = row
		}
		if Positive(it) {
			row[name] = true
		}
	}
	return &LikedMatrix{Rows: rows}
}

// PositiveSet devuelve el conjunto de nombres positivos de un usuario.
func (m *LikedMatrix) PositiveSet(userID int) map[string]bool {
	out := make(map[string]bool)
	for name, pos := range m.Rows[userID] {
		if pos {
			out[name] = true
		}
	}
	return out
}

// Transactions devuelve las filas como lista en orden estable por userId.
func (m *LikedMatrix) Transactions() []map[string]bool {
	ids := make([]int, 0, len(m.Rows))
	for id := range m.Rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]map[string]bool, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.Rows[id])
	}
	return out
}
