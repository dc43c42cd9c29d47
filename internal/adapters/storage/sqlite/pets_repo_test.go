package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"pets-api/internal/adapters/storage/storagetest"
	"pets-api/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB abre una base en memoria con el schema aplicado.
func setupTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()

	db, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, EnsureSchema(context.Background(), db))
	return db
}

func TestPetsRepo_Conformance(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) pets.Repository {
		return NewPetsRepo(setupTestDB(t, ":memory:"))
	})
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := setupTestDB(t, ":memory:")
	require.NoError(t, EnsureSchema(context.Background(), db))
}

func TestPetsRepo_IDsSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "pets.db")

	db := setupTestDB(t, path)
	repo := NewPetsRepo(db)

	first, err := repo.Save(ctx, storagetest.NewPet("Max", "Dog", 3, ""))
	require.NoError(t, err)
	require.NoError(t, repo.DeleteByID(ctx, *first.ID))
	require.NoError(t, db.Close())

	// Reabrimos: AUTOINCREMENT recuerda el último id emitido.
	db2 := setupTestDB(t, path)
	repo2 := NewPetsRepo(db2)

	second, err := repo2.Save(ctx, storagetest.NewPet("Bella", "Cat", 2, ""))
	require.NoError(t, err)
	assert.Greater(t, *second.ID, *first.ID)
}

func TestPetsRepo_RejectsNegativeAge(t *testing.T) {
	// El core no valida; el CHECK de la tabla sí, y el error sube sin tocar.
	repo := NewPetsRepo(setupTestDB(t, ":memory:"))

	_, err := repo.Save(context.Background(), pets.Pet{Name: "Max", Species: "Dog", Age: intPtr(-1)})
	require.Error(t, err)
}

func intPtr(v int) *int { return &v }
