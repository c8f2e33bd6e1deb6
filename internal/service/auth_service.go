package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sajeme/SRI/internal/cache"
	"github.com/sajeme/SRI/internal/models"
	"github.com/sajeme/SRI/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users     *repository.UserRepository
	jwtSecret []byte
}

type RegisterUserData struct {
	Email    string
	Password string
	Role     string

	Name           string
	Age            int
	FavoriteGenres []string
}

type UpdateUserData struct {
	Email    *string
	Role     *string
	Password *string

	Name           *string
	Age            *int
	FavoriteGenres *[]string
}

func NewAuthService(users *repository.UserRepository, secret string) *AuthService {
	return &AuthService{users: users, jwtSecret: []byte(secret)}
}

// ================== REGISTER & LOGIN ==================

// Register crea un usuario nuevo. Los géneros favoritos se guardan en
// minúsculas porque el cold-start compara tokens normalizados.
func (s *AuthService) Register(ctx context.Context, data RegisterUserData) (*models.UserDoc, error) {
	if data.Name == "" {
		return nil, fmt.Errorf("name es obligatorio")
	}
	if data.Age < 0 {
		return nil, fmt.Errorf("age debe ser >= 0")
	}

	existing, err := s.users.FindByEmail(ctx, data.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	nextID, err := s.users.GetNextUserID(ctx)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := data.Role
	if role == "" {
		role = "user"
	}
	if role != "user" && role != "admin" {
		return nil, fmt.Errorf("invalid role (must be user|admin)")
	}

	genres := make([]string, 0, len(data.FavoriteGenres))
	for _, g := range data.FavoriteGenres {
		g = strings.ToLower(strings.TrimSpace(g))
		if g != "" {
			genres = append(genres, g)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)

	u := &models.UserDoc{
		UserID:         nextID,
		Name:           data.Name,
		Age:            data.Age,
		FavoriteGenres: genres,
		Email:          data.Email,
		PasswordHash:   string(hash),
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.users.Insert(ctx, u); err != nil {
		return nil, err
	}

	// un usuario nuevo es una fila más en la matriz de gustados: cambia
	// el denominador de soporte de todas las reglas
	cache.BumpDatasetVersion(ctx)
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.UserDoc, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.UserID,
		"role": u.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})
	sToken, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, err
	}
	return sToken, u, nil
}

// ================== UPDATE USER ==================

// UpdateUser actualiza campos opcionales de un usuario.
func (s *AuthService) UpdateUser(ctx context.Context, userID int, data UpdateUserData) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	update := map[string]any{}

	if data.Email != nil {
		if *data.Email == "" {
			return fmt.Errorf("email cannot be empty")
		}
		existing, err := s.users.FindByEmail(ctx, *data.Email)
		if err != nil {
			return err
		}
		if existing != nil && existing.UserID != userID {
			return fmt.Errorf("email already in use")
		}
		update["email"] = *data.Email
	}

	if data.Role != nil {
		if *data.Role != "user" && *data.Role != "admin" {
			return fmt.Errorf("invalid role (must be user|admin)")
		}
		update["role"] = *data.Role
	}

	if data.Password != nil {
		if *data.Password == "" {
			return fmt.Errorf("password cannot be empty")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*data.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		update["passwordHash"] = string(hash)
	}

	if data.Name != nil {
		update["name"] = *data.Name
	}
	if data.Age != nil {
		if *data.Age < 0 {
			return fmt.Errorf("age debe ser >= 0")
		}
		update["age"] = *data.Age
	}
	if data.FavoriteGenres != nil {
		genres := make([]string, 0, len(*data.FavoriteGenres))
		for _, g := range *data.FavoriteGenres {
			g = strings.ToLower(strings.TrimSpace(g))
			if g != "" {
				genres = append(genres, g)
			}
		}
		update["favoriteGenres"] = genres
	}

	if len(update) == 0 {
		return fmt.Errorf("no fields to update")
	}

	update["updatedAt"] = time.Now().UTC().Format(time.RFC3339)

	if err := s.users.UpdateByID(ctx, userID, update); err != nil {
		return err
	}

	// edad y géneros favoritos alimentan el cold-start: cualquier edición
	// invalida las respuestas cacheadas
	cache.BumpDatasetVersion(ctx)
	return nil
}

func (s *AuthService) ListUsers(ctx context.Context, role, q string, limit, offset int) ([]models.UserDoc, error) {
	if role == "all" {
		role = ""
	}
	return s.users.Search(ctx, role, q, limit, offset)
}

func (s *AuthService) GetUserByID(ctx context.Context, userID int) (*models.UserDoc, error) {
	return s.users.FindByID(ctx, userID)
}
