package engine

import (
	"math"
	"sort"

	"github.com/sajeme/SRI/internal/models"
)

// ContentModel es la matriz de similitud coseno item×item construida
// sobre vectores TF-IDF de los tokens de contenido. Los juegos sin
// tokens quedan fuera del espacio de similitud.
type ContentModel struct {
	GameIDs []int
	index   map[int]int // gameId -> posición en Sim
	Sim     [][]float64 // simétrica, diagonal = 1
}

// BuildContentModel vectoriza los tokens de cada juego (TF-IDF con idf
// suavizado y normalización L2, al estilo sklearn) y calcula la matriz
// de similitud coseno completa.
func BuildContentModel(games []models.GameDoc) *ContentModel {
	var ids []int
	var docs [][]string
	for i := range games {
		tokens := GameTokens(&games[i])
		if len(tokens) == 0 {
			continue
		}
		ids = append(ids, games[i].GameID)
		docs = append(docs, tokens)
	}

	m := &ContentModel{
		GameIDs: ids,
		index:   make(map[int]int, len(ids)),
	}
	for i, id := range ids {
		m.index[id] = i
	}
	if len(docs) == 0 {
		return m
	}

	// document frequency por token
	df := make(map[string]int)
	tfs := make([]map[string]float64, len(docs))
	for i, doc := range docs {
		tf := make(map[string]float64)
		for _, tok := range doc {
			tf[tok]++
		}
		tfs[i] = tf
		for tok := range tf {
			df[tok]++
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for tok, d := range df {
		idf[tok] = math.Log((1+n)/(1+float64(d))) + 1
	}

	// vectores TF-IDF normalizados L2
	vecs := make([]map[string]float64, len(docs))
	for i, tf := range tfs {
		vec := make(map[string]float64, len(tf))
		var norm float64
		for tok, f := range tf {
			w := f * idf[tok]
			vec[tok] = w
			norm += w * w
		}
		norm = math.Sqrt(norm)
		if norm > 0 {
			for tok := range vec {
				vec[tok] /= norm
			}
		}
		vecs[i] = vec
	}

	// matriz coseno simétrica (vectores ya normalizados: basta el producto punto)
	sim := make([][]float64, len(docs))
	for i := range sim {
		sim[i] = make([]float64, len(docs))
		sim[i][i] = 1
	}
	for i := 0; i < len(docs); i++ {
		for j := i + 1; j < len(docs); j++ {
			s := dotSparse(vecs[i], vecs[j])
			sim[i][j] = s
			sim[j][i] = s
		}
	}
	m.Sim = sim
	return m
}

func dotSparse(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for tok, w := range a {
		dot += w * b[tok]
	}
	return dot
}

// Similarity devuelve la similitud coseno entre dos juegos, o 0 si
// alguno no está en el espacio de contenido.
func (m *ContentModel) Similarity(gameA, gameB int) float64 {
	i, okA := m.index[gameA]
	j, okB := m.index[gameB]
	if !okA || !okB {
		return 0
	}
	return m.Sim[i][j]
}

// Contains indica si el juego tiene vector de contenido.
func (m *ContentModel) Contains(gameID int) bool {
	_, ok := m.index[gameID]
	return ok
}

// RecommendForUser estima ratings para los juegos no jugados a partir de
// los anclas H del usuario (calificación >= 4.0 o like): para cada
// candidato, promedio de ratings observados ponderado por similitud,
// asumiendo rating 5 para anclas con like pero sin calificación.
// Un usuario sin anclas devuelve vacío (no es un error).
func (m *ContentModel) RecommendForUser(ds *Dataset, userID int) []Scored {
	inters := ds.InteractionsByUser(userID)
	if len(inters) == 0 {
		return nil
	}

	played := make(map[int]bool, len(inters))
	type anchor struct {
		gameID int
		rating float64
	}
	var anchors []anchor
	for _, it := range inters {
		played[it.GameID] = true
		if !HighlyRated(it) {
			continue
		}
		r := 0.0
		if it.Rating != nil {
			r = *it.Rating
		}
		if r <= 0 {
			r = 5 // like sin calificación: rating máximo asumido
		}
		anchors = append(anchors, anchor{gameID: it.GameID, rating: r})
	}
	if len(anchors) == 0 {
		return nil
	}

	var out []Scored
	for _, candidate := range m.GameIDs {
		if played[candidate] {
			continue
		}
		var num, den float64
		for _, h := range anchors {
			w := m.Similarity(candidate, h.gameID)
			num += w * h.rating
			den += w
		}
		if den <= 0 {
			continue
		}
		out = append(out, Scored{GameID: candidate, Score: round4(num / den)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
