// internal/repository/game_repo.go
package repository

import (
	"context"

	"github.com/sajeme/SRI/internal/db"
	"github.com/sajeme/SRI/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GameRepository struct {
	col *mongo.Collection
}

func NewGameRepository() *GameRepository {
	return &GameRepository{col: db.DB().Collection("games")}
}

func (r *GameRepository) GetByID(ctx context.Context, gameID int) (*models.GameDoc, error) {
	var g models.GameDoc
	err := r.col.FindOne(ctx, bson.M{"gameId": gameID}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &g, err
}

// Search filtra por texto en el nombre y/o categoría.
func (r *GameRepository) Search(
	ctx context.Context,
	q string,
	category string,
	limit, offset int,
) ([]models.GameDoc, error) {

	filter := bson.M{}

	if q != "" {
		filter["name"] = bson.M{"$regex": q, "$options": "i"}
	}
	if category != "" {
		// categories es un array, esto busca que contenga esa categoría
		filter["categories"] = category
	}

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.GameDoc
	for cur.Next(ctx) {
		var g models.GameDoc
		if err := cur.Decode(&g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, cur.Err()
}

func (r *GameRepository) GetNextGameID(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "gameId", Value: -1}})
	var g models.GameDoc
	err := r.col.FindOne(ctx, bson.M{}, opts).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return g.GameID + 1, nil
}

func (r *GameRepository) Insert(ctx context.Context, g *models.GameDoc) error {
	_, err := r.col.InsertOne(ctx, g)
	return err
}

func (r *GameRepository) Update(ctx context.Context, g *models.GameDoc) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"gameId": g.GameID}, g)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// GetAll devuelve el catálogo completo (snapshot para el motor).
func (r *GameRepository) GetAll(ctx context.Context) ([]models.GameDoc, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.GameDoc
	for cur.Next(ctx) {
		var g models.GameDoc
		if err := cur.Decode(&g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, cur.Err()
}

func (r *GameRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// CountWithoutContent cuenta juegos sin categorías ni tags (fuera del
// espacio de similitud de contenido).
func (r *GameRepository) CountWithoutContent(ctx context.Context) (int64, error) {
	filter := bson.M{
		"$and": bson.A{
			bson.M{"$or": bson.A{
				bson.M{"categories": bson.M{"$exists": false}},
				bson.M{"categories": bson.M{"$size": 0}},
			}},
			bson.M{"$or": bson.A{
				bson.M{"tags": bson.M{"$exists": false}},
				bson.M{"tags": bson.M{"$size": 0}},
			}},
		},
	}
	return r.col.CountDocuments(ctx, filter)
}
