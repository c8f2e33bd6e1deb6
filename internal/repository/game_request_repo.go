package repository

import (
	"context"
	"time"

	"github.com/sajeme/SRI/internal/db"
	"github.com/sajeme/SRI/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GameRequestRepository struct {
	col *mongo.Collection
}

func NewGameRequestRepository() *GameRequestRepository {
	return &GameRequestRepository{col: db.DB().Collection("game_requests")}
}

func (r *GameRequestRepository) Insert(ctx context.Context, req *models.GameRequest) error {
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, req)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		req.ID = oid
	}
	return nil
}

func (r *GameRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.GameRequest, error) {
	var req models.GameRequest
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &req, err
}

// List devuelve solicitudes filtrando opcionalmente por usuario y estado.
func (r *GameRequestRepository) List(ctx context.Context, userID int, status string, limit, offset int) ([]models.GameRequest, error) {
	filter := bson.M{}
	if userID > 0 {
		filter["userId"] = userID
	}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.GameRequest
	for cur.Next(ctx) {
		var req models.GameRequest
		if err := cur.Decode(&req); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, cur.Err()
}

func (r *GameRequestRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	update["updatedAt"] = time.Now()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
