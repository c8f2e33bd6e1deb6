package models

// InteractionDoc es el documento de la colección interactions.
// Existe a lo más un documento por par (userId, gameId); los campos
// opcionales van como punteros para distinguir "no enviado" de cero.
type InteractionDoc struct {
	UserID      int      `json:"userId" bson:"userId"`
	GameID      int      `json:"gameId" bson:"gameId"`
	Rating      *float64 `json:"rating,omitempty" bson:"rating,omitempty"`           // [1,5] al escribir
	Liked       *bool    `json:"liked,omitempty" bson:"liked,omitempty"`
	HoursPlayed *float64 `json:"hoursPlayed,omitempty" bson:"hoursPlayed,omitempty"` // >= 0
	UpdatedAt   string   `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Body de POST /me/interactions.
type InteractionRequest struct {
	GameID      int      `json:"gameId"`
	Rating      *float64 `json:"rating,omitempty"`
	Liked       *bool    `json:"liked,omitempty"`
	HoursPlayed *float64 `json:"hoursPlayed,omitempty"`
}
