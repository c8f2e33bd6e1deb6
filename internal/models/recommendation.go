package models

import "time"

// RecItem es un juego recomendado con su score según la métrica del
// algoritmo usado (confianza, similitud, rating predicho...). Score va
// como puntero porque las entradas de fallback pueden no traer métrica.
type RecItem struct {
	GameID  int      `bson:"gameId" json:"gameId"`
	Name    string   `bson:"name" json:"name"`
	Score   *float64 `bson:"score,omitempty" json:"score,omitempty"`
	BasedOn []string `bson:"basedOn,omitempty" json:"basedOn,omitempty"`
}

// Recommendation es la respuesta completa de una petición de
// recomendación y también el documento de historial en Mongo.
type Recommendation struct {
	ID        string    `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    int       `bson:"userId" json:"userId"`
	Algo      string    `bson:"algo" json:"algo"`
	Fallback  bool      `bson:"fallback" json:"fallback"`
	Params    any       `bson:"params,omitempty" json:"params,omitempty"`
	Items     []RecItem `bson:"items" json:"items"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// SimilarGamesResponse es la respuesta de la consulta de vecinos de un juego.
type SimilarGamesResponse struct {
	GameID int       `json:"gameId"`
	Items  []RecItem `json:"items"`
}
