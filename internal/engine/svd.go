package engine

import (
	"math/rand"
	"sort"
)

// Hiperparámetros por defecto del modelo de factores latentes
// (los clásicos del Funk-SVD con sesgos).
const (
	svdFactors = 50
	svdEpochs  = 20
	svdLR      = 0.005
	svdReg     = 0.02
)

// SVDModel factoriza la matriz de ratings en embeddings de usuario y de
// juego (SGD con sesgos) y predice las celdas faltantes. Se entrena
// desde cero en cada petición; la semilla es inyectable para que los
// tests sean reproducibles.
type SVDModel struct {
	Factors int
	Epochs  int
	LR      float64
	Reg     float64
	Seed    int64

	mean  float64
	bUser map[int]float64
	bGame map[int]float64
	pUser map[int][]float64
	qGame map[int][]float64
}

func NewSVDModel(seed int64) *SVDModel {
	return &SVDModel{
		Factors: svdFactors,
		Epochs:  svdEpochs,
		LR:      svdLR,
		Reg:     svdReg,
		Seed:    seed,
	}
}

type ratingCell struct {
	userID int
	gameID int
	rating float64
}

// Fit entrena el modelo sobre la matriz. Precondición: matriz no vacía
// (el caller no debe invocar con cero ratings válidos).
func (m *SVDModel) Fit(rm *RatingMatrix) {
	rng := rand.New(rand.NewSource(m.Seed))

	// celdas en orden determinista (usuario asc, juego asc)
	var cells []ratingCell
	userIDs := make([]int, 0, len(rm.ByUser))
	for id := range rm.ByUser {
		userIDs = append(userIDs, id)
	}
	sort.Ints(userIDs)
	var sum float64
	for _, uid := range userIDs {
		gameIDs := make([]int, 0, len(rm.ByUser[uid]))
		for gid := range rm.ByUser[uid] {
			gameIDs = append(gameIDs, gid)
		}
		sort.Ints(gameIDs)
		for _, gid := range gameIDs {
			r := rm.ByUser[uid][gid]
			cells = append(cells, ratingCell{userID: uid, gameID: gid, rating: r})
			sum += r
		}
	}
	if len(cells) == 0 {
		return
	}
	m.mean = sum / float64(len(cells))

	m.bUser = make(map[int]float64)
	m.bGame = make(map[int]float64)
	m.pUser = make(map[int][]float64)
	m.qGame = make(map[int][]float64)

	newVec := func() []float64 {
		v := make([]float64, m.Factors)
		for i := range v {
			v[i] = rng.NormFloat64() * 0.1
		}
		return v
	}
	for _, c := range cells {
		if m.pUser[c.userID] == nil {
			m.pUser[c.userID] = newVec()
		}
		if m.qGame[c.gameID] == nil {
			m.qGame[c.gameID] = newVec()
		}
	}

	for epoch := 0; epoch < m.Epochs; epoch++ {
		for _, c := range cells {
			p := m.pUser[c.userID]
			q := m.qGame[c.gameID]

			var dot float64
			for f := 0; f < m.Factors; f++ {
				dot += p[f] * q[f]
			}
			pred := m.mean + m.bUser[c.userID] + m.bGame[c.gameID] + dot
			e := c.rating - pred

			m.bUser[c.userID] += m.LR * (e - m.Reg*m.bUser[c.userID])
			m.bGame[c.gameID] += m.LR * (e - m.Reg*m.bGame[c.gameID])
			for f := 0; f < m.Factors; f++ {
				pf, qf := p[f], q[f]
				p[f] += m.LR * (e*qf - m.Reg*pf)
				q[f] += m.LR * (e*pf - m.Reg*qf)
			}
		}
	}
}

// Predict estima el rating de una celda, acotado al rango [0,5].
func (m *SVDModel) Predict(userID, gameID int) float64 {
	pred := m.mean + m.bUser[userID] + m.bGame[gameID]
	if p, ok := m.pUser[userID]; ok {
		if q, ok := m.qGame[gameID]; ok {
			for f := 0; f < m.Factors; f++ {
				pred += p[f] * q[f]
			}
		}
	}
	if pred < 0 {
		pred = 0
	}
	if pred > 5 {
		pred = 5
	}
	return pred
}

// RecommendForUser rankea los juegos no calificados por el usuario según
// el rating predicho. Mismo contrato que los KNN: usuario ausente -> vacío.
func (m *SVDModel) RecommendForUser(rm *RatingMatrix, userID int) []Scored {
	rated := rm.ByUser[userID]
	if len(rated) == 0 {
		return nil
	}
	var out []Scored
	for gameID := range rm.ByGame {
		if _, ya := rated[gameID]; ya {
			continue
		}
		out = append(out, Scored{GameID: gameID, Score: round2(m.Predict(userID, gameID))})
	}
	sortScoredStable(out)
	return out
}
