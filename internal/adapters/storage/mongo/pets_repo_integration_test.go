//go:build integration

package mongo_test

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/stretchr/testify/require"
	mongomodule "github.com/testcontainers/testcontainers-go/modules/mongodb"

	"pets-api/internal/adapters/storage/mongo"
	"pets-api/internal/adapters/storage/storagetest"
	"pets-api/internal/domain/pets"
)

func setupDatabase(t *testing.T) *mongod.Database {
	t.Helper()
	ctx := context.Background()

	container, err := mongomodule.Run(ctx, "mongo:7")
	require.NoError(t, err, "start mongo container")
	t.Cleanup(func() {
		if termErr := container.Terminate(ctx); termErr != nil {
			t.Logf("terminate container: %v", termErr)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	return client.Database("petdb_test")
}

func TestPetsRepo_Conformance(t *testing.T) {
	ctx := context.Background()
	db := setupDatabase(t)
	require.NoError(t, mongo.EnsureIndexes(ctx, db))

	storagetest.Run(t, func(t *testing.T) pets.Repository {
		_, err := db.Collection("pets").DeleteMany(ctx, bson.D{})
		require.NoError(t, err)

		repo, err := mongo.NewPetsRepo(ctx, db)
		require.NoError(t, err)
		return repo
	})
}

func TestPetsRepo_SeedsCounterFromExistingDocuments(t *testing.T) {
	ctx := context.Background()
	db := setupDatabase(t)

	_, err := db.Collection("pets").InsertMany(ctx, []any{
		bson.D{{Key: "_id", Value: int64(3)}, {Key: "name", Value: "Max"}, {Key: "species", Value: "Dog"}},
		bson.D{{Key: "_id", Value: int64(7)}, {Key: "name", Value: "Luna"}, {Key: "species", Value: "Cat"}},
	})
	require.NoError(t, err)

	repo, err := mongo.NewPetsRepo(ctx, db)
	require.NoError(t, err)

	saved, err := repo.Save(ctx, storagetest.NewPet("Rocky", "Dog", 4, "Mike Wilson"))
	require.NoError(t, err)
	require.Equal(t, int64(8), *saved.ID)

	n, err := repo.CountDistinctSpecies(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}
