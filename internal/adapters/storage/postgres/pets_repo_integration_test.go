//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"pets-api/internal/adapters/storage/postgres"
	"pets-api/internal/adapters/storage/storagetest"
	"pets-api/internal/domain/pets"

	"github.com/testcontainers/testcontainers-go"
	pgmodule "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPetsRepo_Conformance(t *testing.T) {
	ctx := context.Background()

	container, err := pgmodule.Run(ctx,
		"postgres:16-alpine",
		pgmodule.WithDatabase("petdb_test"),
		pgmodule.WithUsername("test"),
		pgmodule.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if termErr := container.Terminate(ctx); termErr != nil {
			t.Logf("terminate container: %v", termErr)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("get connection string: %v", err)
	}

	db, err := postgres.Open(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	storagetest.Run(t, func(t *testing.T) pets.Repository {
		// Tabla vacía y secuencia en 1 para cada caso.
		if _, err := db.ExecContext(ctx, `TRUNCATE pets RESTART IDENTITY`); err != nil {
			t.Fatalf("truncate: %v", err)
		}
		return postgres.NewPetsRepo(db)
	})
}
