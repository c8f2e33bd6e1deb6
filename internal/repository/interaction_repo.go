package repository

import (
	"context"
	"time"

	"github.com/sajeme/SRI/internal/db"
	"github.com/sajeme/SRI/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InteractionRepository struct {
	col *mongo.Collection
}

func NewInteractionRepository() *InteractionRepository {
	return &InteractionRepository{col: db.DB().Collection("interactions")}
}

// buildUpsertUpdate arma el documento de update del par (userId, gameId):
// $set para los campos presentes y $unset para los ausentes, de modo que
// un like sin calificación no deja un rating viejo colgado en el documento.
func buildUpsertUpdate(it *models.InteractionDoc) bson.M {
	set := bson.M{
		"updatedAt": time.Now().UTC().Format(time.RFC3339),
	}
	unset := bson.M{}

	if it.Rating != nil {
		set["rating"] = *it.Rating
	} else {
		unset["rating"] = ""
	}
	if it.Liked != nil {
		set["liked"] = *it.Liked
	} else {
		unset["liked"] = ""
	}
	if it.HoursPlayed != nil {
		set["hoursPlayed"] = *it.HoursPlayed
	} else {
		unset["hoursPlayed"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

// Upsert escribe la interacción del par (userId, gameId) con semántica de
// reemplazo de campos opcionales (ver buildUpsertUpdate).
func (r *InteractionRepository) Upsert(ctx context.Context, it *models.InteractionDoc) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"userId": it.UserID, "gameId": it.GameID},
		buildUpsertUpdate(it),
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *InteractionRepository) GetOne(ctx context.Context, userID, gameID int) (*models.InteractionDoc, error) {
	var it models.InteractionDoc
	err := r.col.FindOne(ctx, bson.M{"userId": userID, "gameId": gameID}).Decode(&it)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &it, err
}

func (r *InteractionRepository) GetByUser(ctx context.Context, userID int) ([]models.InteractionDoc, error) {
	cur, err := r.col.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.InteractionDoc
	for cur.Next(ctx) {
		var it models.InteractionDoc
		if err := cur.Decode(&it); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, cur.Err()
}

// GetAll devuelve todas las interacciones (snapshot para el motor).
func (r *InteractionRepository) GetAll(ctx context.Context) ([]models.InteractionDoc, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.InteractionDoc
	for cur.Next(ctx) {
		var it models.InteractionDoc
		if err := cur.Decode(&it); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, cur.Err()
}

func (r *InteractionRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *InteractionRepository) CountRated(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"rating": bson.M{"$exists": true}})
}

func (r *InteractionRepository) CountLiked(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"liked": true})
}
