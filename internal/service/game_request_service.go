package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sajeme/SRI/internal/models"
	"github.com/sajeme/SRI/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GameRequestService gestiona las solicitudes de alta de juegos: un
// usuario propone un juego y un admin decide si entra al catálogo.
type GameRequestService struct {
	requests *repository.GameRequestRepository
	games    *GameService
}

func NewGameRequestService(requests *repository.GameRequestRepository, games *GameService) *GameRequestService {
	return &GameRequestService{requests: requests, games: games}
}

func (s *GameRequestService) Create(ctx context.Context, userID int, game models.GameCreateRequest) (*models.GameRequest, error) {
	if strings.TrimSpace(game.Name) == "" {
		return nil, fmt.Errorf("name es obligatorio")
	}

	req := &models.GameRequest{
		UserID: userID,
		Status: models.GameRequestStatusPending,
		Game:   game,
	}
	if err := s.requests.Insert(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *GameRequestService) ListMine(ctx context.Context, userID int, status string, limit, offset int) ([]models.GameRequest, error) {
	return s.requests.List(ctx, userID, status, limit, offset)
}

// ListAll es la vista de admin: userID <= 0 significa "de todos".
func (s *GameRequestService) ListAll(ctx context.Context, status string, limit, offset int) ([]models.GameRequest, error) {
	return s.requests.List(ctx, 0, status, limit, offset)
}

// Approve crea el juego del catálogo a partir de la solicitud y marca la
// solicitud como aprobada referenciando el gameId resultante.
func (s *GameRequestService) Approve(ctx context.Context, id primitive.ObjectID) (*models.GameRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("request not found")
	}
	if req.Status != models.GameRequestStatusPending {
		return nil, fmt.Errorf("request already %s", req.Status)
	}

	g, err := s.games.Create(ctx, req.Game)
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"status":         models.GameRequestStatusApproved,
		"approvedGameId": g.GameID,
		"updatedAt":      time.Now().UTC(),
	}
	if err := s.requests.UpdateStatus(ctx, id, update); err != nil {
		return nil, err
	}

	req.Status = models.GameRequestStatusApproved
	req.ApprovedGameID = &g.GameID
	return req, nil
}

func (s *GameRequestService) Reject(ctx context.Context, id primitive.ObjectID, reason string) (*models.GameRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("request not found")
	}
	if req.Status != models.GameRequestStatusPending {
		return nil, fmt.Errorf("request already %s", req.Status)
	}

	update := bson.M{
		"status":    models.GameRequestStatusRejected,
		"reason":    reason,
		"updatedAt": time.Now().UTC(),
	}
	if err := s.requests.UpdateStatus(ctx, id, update); err != nil {
		return nil, err
	}

	req.Status = models.GameRequestStatusRejected
	req.Reason = reason
	return req, nil
}
