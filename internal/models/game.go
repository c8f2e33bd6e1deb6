package models

// GameDoc es el documento de la colección games. Los campos de display
// (portada, capturas, precio, plataformas...) se guardan tal cual llegan
// del scraper y el core los trata como passthrough opaco.
type GameDoc struct {
	GameID      int            `json:"gameId" bson:"gameId"`
	Name        string         `json:"name" bson:"name"`
	Categories  []string       `json:"categories" bson:"categories"`
	Tags        []string       `json:"tags" bson:"tags"`
	MinAge      int            `json:"minAge" bson:"minAge"`
	ReleaseDate string         `json:"releaseDate,omitempty" bson:"releaseDate,omitempty"` // YYYY-MM-DD
	Display     map[string]any `json:"display,omitempty" bson:"display,omitempty"`
	CreatedAt   string         `json:"createdAt" bson:"createdAt"`
	UpdatedAt   string         `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Payload para crear un juego (solo admin).
type GameCreateRequest struct {
	Name        string         `json:"name"` // obligatorio
	Categories  []string       `json:"categories,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	MinAge      int            `json:"minAge,omitempty"`
	ReleaseDate string         `json:"releaseDate,omitempty"`
	Display     map[string]any `json:"display,omitempty"`
}

// Payload para actualización parcial de juego.
type GameUpdateRequest struct {
	Name        *string         `json:"name,omitempty"`
	Categories  []string        `json:"categories,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	MinAge      *int            `json:"minAge,omitempty"`
	ReleaseDate *string         `json:"releaseDate,omitempty"`
	Display     *map[string]any `json:"display,omitempty"`
}
