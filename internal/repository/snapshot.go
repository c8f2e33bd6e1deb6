package repository

import (
	"context"

	"github.com/sajeme/SRI/internal/engine"
)

// SnapshotLoader carga el dataset completo que consume el motor en cada
// petición. Los servicios dependen de esta interfaz para poder usar un
// loader en memoria en los tests.
type SnapshotLoader interface {
	Load(ctx context.Context) (*engine.Dataset, error)
}

// MongoSnapshotLoader junta las tres colecciones en un snapshot.
type MongoSnapshotLoader struct {
	users  *UserRepository
	games  *GameRepository
	inters *InteractionRepository
}

func NewMongoSnapshotLoader(u *UserRepository, g *GameRepository, i *InteractionRepository) *MongoSnapshotLoader {
	return &MongoSnapshotLoader{users: u, games: g, inters: i}
}

func (l *MongoSnapshotLoader) Load(ctx context.Context) (*engine.Dataset, error) {
	users, err := l.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	games, err := l.games.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	inters, err := l.inters.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return engine.NewDataset(users, games, inters), nil
}
