package engine

// Scored es la salida común de todas las estrategias: un juego y el
// score según la métrica del algoritmo que lo produjo.
type Scored struct {
	GameID  int
	Score   float64
	BasedOn []string // rationale opcional (p.e. antecedente de la regla)
}
