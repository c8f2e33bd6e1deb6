package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sajeme/SRI/internal/cache"
	"github.com/sajeme/SRI/internal/models"
	"github.com/sajeme/SRI/internal/repository"
)

type GameService struct {
	games *repository.GameRepository
}

func NewGameService(games *repository.GameRepository) *GameService {
	return &GameService{games: games}
}

func (s *GameService) GetByID(ctx context.Context, gameID int) (*models.GameDoc, error) {
	g, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGameNotFound
	}
	return g, nil
}

func (s *GameService) Search(ctx context.Context, q, category string, limit, offset int) ([]models.GameDoc, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	// La categoría se normaliza igual que los tokens del catálogo.
	category = strings.ToLower(strings.TrimSpace(category))
	return s.games.Search(ctx, q, category, limit, offset)
}

// ================== ESCRITURAS (solo admin) ==================

// Create inserta un juego nuevo e invalida las respuestas cacheadas.
func (s *GameService) Create(ctx context.Context, req models.GameCreateRequest) (*models.GameDoc, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name es obligatorio")
	}
	if req.MinAge < 0 {
		return nil, fmt.Errorf("minAge debe ser >= 0")
	}
	if req.ReleaseDate != "" {
		if _, err := time.Parse("2006-01-02", req.ReleaseDate); err != nil {
			return nil, fmt.Errorf("releaseDate debe ser YYYY-MM-DD")
		}
	}

	nextID, err := s.games.GetNextGameID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)

	g := &models.GameDoc{
		GameID:      nextID,
		Name:        req.Name,
		Categories:  normalizeTokenList(req.Categories),
		Tags:        normalizeTokenList(req.Tags),
		MinAge:      req.MinAge,
		ReleaseDate: req.ReleaseDate,
		Display:     req.Display,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.games.Insert(ctx, g); err != nil {
		return nil, err
	}

	cache.BumpDatasetVersion(ctx)
	return g, nil
}

// Update aplica una actualización parcial sobre un juego existente.
func (s *GameService) Update(ctx context.Context, gameID int, req models.GameUpdateRequest) (*models.GameDoc, error) {
	g, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGameNotFound
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("name no puede quedar vacío")
		}
		g.Name = *req.Name
	}
	if req.Categories != nil {
		g.Categories = normalizeTokenList(req.Categories)
	}
	if req.Tags != nil {
		g.Tags = normalizeTokenList(req.Tags)
	}
	if req.MinAge != nil {
		if *req.MinAge < 0 {
			return nil, fmt.Errorf("minAge debe ser >= 0")
		}
		g.MinAge = *req.MinAge
	}
	if req.ReleaseDate != nil {
		if *req.ReleaseDate != "" {
			if _, err := time.Parse("2006-01-02", *req.ReleaseDate); err != nil {
				return nil, fmt.Errorf("releaseDate debe ser YYYY-MM-DD")
			}
		}
		g.ReleaseDate = *req.ReleaseDate
	}
	if req.Display != nil {
		g.Display = *req.Display
	}

	g.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := s.games.Update(ctx, g); err != nil {
		return nil, err
	}

	cache.BumpDatasetVersion(ctx)
	return g, nil
}

// normalizeTokenList baja a minúsculas y descarta vacíos; los tokens se
// guardan ya normalizados para que el motor no tenga que repetirlo.
func normalizeTokenList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
