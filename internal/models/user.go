package models

type UserDoc struct {
	UserID         int      `json:"userId" bson:"userId"`
	Name           string   `json:"name" bson:"name"`
	Age            int      `json:"age" bson:"age"`
	FavoriteGenres []string `json:"favoriteGenres" bson:"favoriteGenres"`
	Email          string   `json:"email" bson:"email"`
	PasswordHash   string   `json:"-" bson:"passwordHash"`
	Role           string   `json:"role" bson:"role"`
	CreatedAt      string   `json:"createdAt" bson:"createdAt"`
	UpdatedAt      string   `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
