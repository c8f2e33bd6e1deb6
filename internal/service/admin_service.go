package service

import (
	"context"

	"github.com/sajeme/SRI/internal/cache"
	"github.com/sajeme/SRI/internal/models"
	"github.com/sajeme/SRI/internal/repository"
)

// AdminService expone estadísticas agregadas del dataset para el panel
// de administración.
type AdminService struct {
	users        *repository.UserRepository
	games        *repository.GameRepository
	interactions *repository.InteractionRepository
}

func NewAdminService(
	users *repository.UserRepository,
	games *repository.GameRepository,
	interactions *repository.InteractionRepository,
) *AdminService {
	return &AdminService{users: users, games: games, interactions: interactions}
}

func (s *AdminService) DatasetSummary(ctx context.Context) (*models.DatasetSummary, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalGames, err := s.games.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalInteractions, err := s.interactions.Count(ctx)
	if err != nil {
		return nil, err
	}
	rated, err := s.interactions.CountRated(ctx)
	if err != nil {
		return nil, err
	}
	liked, err := s.interactions.CountLiked(ctx)
	if err != nil {
		return nil, err
	}
	withoutContent, err := s.games.CountWithoutContent(ctx)
	if err != nil {
		return nil, err
	}

	return &models.DatasetSummary{
		TotalUsers:          totalUsers,
		TotalGames:          totalGames,
		TotalInteractions:   totalInteractions,
		InteractionsRated:   rated,
		InteractionsLiked:   liked,
		GamesWithoutContent: withoutContent,
		DatasetVersion:      cache.DatasetVersion(ctx),
	}, nil
}
