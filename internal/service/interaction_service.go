package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sajeme/SRI/internal/cache"
	"github.com/sajeme/SRI/internal/models"
	"github.com/sajeme/SRI/internal/repository"
)

type InteractionService struct {
	interactions *repository.InteractionRepository
	games        *repository.GameRepository
}

func NewInteractionService(
	interactions *repository.InteractionRepository,
	games *repository.GameRepository,
) *InteractionService {
	return &InteractionService{interactions: interactions, games: games}
}

// Upsert guarda la interacción de un usuario con un juego. Los campos que
// no vienen en el payload se borran del documento (semántica de reemplazo:
// quitar el rating de una interacción es mandarla sin rating).
func (s *InteractionService) Upsert(ctx context.Context, userID int, req models.InteractionRequest) (*models.InteractionDoc, error) {
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, fmt.Errorf("rating debe estar entre 1 y 5")
		}
	}
	if req.HoursPlayed != nil && *req.HoursPlayed < 0 {
		return nil, fmt.Errorf("hoursPlayed debe ser >= 0")
	}

	g, err := s.games.GetByID(ctx, req.GameID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGameNotFound
	}

	it := &models.InteractionDoc{
		UserID:      userID,
		GameID:      req.GameID,
		Rating:      req.Rating,
		Liked:       req.Liked,
		HoursPlayed: req.HoursPlayed,
		UpdatedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.interactions.Upsert(ctx, it); err != nil {
		return nil, err
	}

	cache.BumpDatasetVersion(ctx)
	return it, nil
}

func (s *InteractionService) GetMine(ctx context.Context, userID int) ([]models.InteractionDoc, error) {
	return s.interactions.GetByUser(ctx, userID)
}

func (s *InteractionService) GetOne(ctx context.Context, userID, gameID int) (*models.InteractionDoc, error) {
	return s.interactions.GetOne(ctx, userID, gameID)
}
