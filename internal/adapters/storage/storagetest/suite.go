// Package storagetest contiene la batería de tests que todo pets.Repository tiene que pasar.
// Cada adapter la corre desde su propio _test.go con un factory que devuelve un store vacío.
package storagetest

import (
	"context"
	"sync"
	"testing"

	"pets-api/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory devuelve un repositorio vacío y con el contador de ids en su estado inicial.
type Factory func(t *testing.T) pets.Repository

func Run(t *testing.T, newRepo Factory) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, repo pets.Repository)
	}{
		{"SaveAssignsIDAndRoundTrips", testSaveRoundTrip},
		{"SaveWithIDReplacesRecord", testSaveReplaces},
		{"FindByIDMissing", testFindByIDMissing},
		{"FindAllReflectsContents", testFindAll},
		{"DeleteIsIdempotent", testDeleteIdempotent},
		{"IDsAreNotReused", testIDsNotReused},
		{"InsertAfterExplicitIDSkipsIt", testInsertAfterExplicitID},
		{"CountDistinctSpecies", testCountDistinctSpecies},
		{"ConcurrentInsertsGetUniqueIDs", testConcurrentInserts},
		{"ReturnedValuesAreDetached", testDetached},
		{"CreateCountDeleteScenario", testCreateCountDelete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newRepo(t))
		})
	}
}

func NewPet(name, species string, age int, owner string) pets.Pet {
	p := pets.Pet{Name: name, Species: species}
	if age >= 0 {
		p.Age = &age
	}
	if owner != "" {
		p.OwnerName = &owner
	}
	return p
}

func testSaveRoundTrip(t *testing.T, repo pets.Repository) {
	ctx := context.Background()

	saved, err := repo.Save(ctx, NewPet("Max", "Dog", 3, "John Doe"))
	require.NoError(t, err)
	require.NotNil(t, saved.ID)

	got, found, err := repo.FindByID(ctx, *saved.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, saved, got)

	// Campos opcionales ausentes también deben volver ausentes.
	bare, err := repo.Save(ctx, pets.Pet{Name: "Luna", Species: "Cat"})
	require.NoError(t, err)

	got, found, err = repo.FindByID(ctx, *bare.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Nil(t, got.Age)
	assert.Nil(t, got.OwnerName)
	assert.Equal(t, bare, got)
}

func testSaveReplaces(t *testing.T, repo pets.Repository) {
	ctx := context.Background()

	saved, err := repo.Save(ctx, NewPet("Max", "Dog", 3, "A"))
	require.NoError(t, err)

	update := pets.Pet{ID: saved.ID, Name: "Maximus", Species: "Wolf"}
	updated, err := repo.Save(ctx, update)
	require.NoError(t, err)
	assert.Equal(t, *saved.ID, *updated.ID)

	got, found, err := repo.FindByID(ctx, *saved.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Maximus", got.Name)
	assert.Equal(t, "Wolf", got.Species)
	assert.Nil(t, got.Age)
	assert.Nil(t, got.OwnerName, "owner must be cleared on full replace")

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func testFindByIDMissing(t *testing.T, repo pets.Repository) {
	ctx := context.Background()

	_, found, err := repo.FindByID(ctx, 999)
	require.NoError(t, err)
	assert.False(t, found)

	exists, err := repo.ExistsByID(ctx, 999)
	require.NoError(t, err)
	assert.False(t, exists)
}

func testFindAll(t *testing.T, repo pets.Repository) {
	ctx := context.Background()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	a, err := repo.Save(ctx, NewPet("Max", "Dog", 3, ""))
	require.NoError(t, err)
	b, err := repo.Save(ctx, NewPet("Bella", "Cat", 2, ""))
	require.NoError(t, err)

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []pets.Pet{a, b}, all)

	require.NoError(t, repo.DeleteByID(ctx, *a.ID))

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []pets.Pet{b}, all)
}

func testDeleteIdempotent(t *testing.T, repo pets.Repository) {
	ctx := context.Background()

	saved, err := repo.Save(ctx, NewPet("Max", "Dog", 3, ""))
	require.NoError(t, err)

	exists, err := repo.ExistsByID(ctx, *saved.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.DeleteByID(ctx, *saved.ID))
	exists, err = repo.ExistsByID(ctx, *saved.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.DeleteByID(ctx, *saved.ID))
	exists, err = repo.ExistsByID(ctx, *saved.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	// Un id que nunca existió tampoco falla.
	require.NoError(t, repo.DeleteByID(ctx, 12345))
}

func testIDsNotReused(t *testing.T, repo pets.Repository) {
	ctx := context.Background()

	a, err := repo.Save(ctx, NewPet("Max", "Dog", 3, ""))
	require.NoError(t, err)
	require.NoError(t, repo.DeleteByID(ctx, *a.ID))

	b, err := repo.Save(ctx, NewPet("Bella", "Cat", 2, ""))
	require.NoError(t, err)
	assert.NotEqual(t, *a.ID, *b.ID)
	assert.Greater(t, *b.ID, *a.ID)
}

func testInsertAfterExplicitID(t *testing.T, repo pets.Repository) {
	ctx := context.Background()

	id := int64(10)
	explicit := NewPet("Rocky", "Dog", 4, "")
	explicit.ID = &id
	_, err := repo.Save(ctx, explicit)
	require.NoError(t, err)

	next, err := repo.Save(ctx, NewPet("Luna", "Cat", 1, ""))
	require.NoError(t, err)
	assert.Equal(t, int64(11), *next.ID)

	// Un id explícito menor no hace retroceder el contador.
	low := int64(3)
	older := NewPet("Max", "Dog", 3, "")
	older.ID = &low
	_, err = repo.Save(ctx, older)
	require.NoError(t, err)

	last, err := repo.Save(ctx, NewPet("Bella", "Cat", 2, ""))
	require.NoError(t, err)
	assert.Equal(t, int64(12), *last.ID)

	stored, ok, err := repo.FindByID(ctx, 10)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Rocky", stored.Name)
}

func testCountDistinctSpecies(t *testing.T, repo pets.Repository) {
	ctx := context.Background()

	assertCount := func(want int) {
		t.Helper()

		n, err := repo.CountDistinctSpecies(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, n)

		// Invariante: igual al cardinal del set de species de lo que hay guardado.
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		set := map[string]struct{}{}
		for _, p := range all {
			set[p.Species] = struct{}{}
		}
		assert.Equal(t, len(set), n)
	}

	assertCount(0)

	dog1, err := repo.Save(ctx, NewPet("Max", "Dog", 3, ""))
	require.NoError(t, err)
	assertCount(1)

	dog2, err := repo.Save(ctx, NewPet("Rocky", "Dog", 4, ""))
	require.NoError(t, err)
	assertCount(1)

	cat, err := repo.Save(ctx, NewPet("Bella", "Cat", 2, ""))
	require.NoError(t, err)
	assertCount(2)

	// Species distingue mayúsculas: no hay normalización.
	_, err = repo.Save(ctx, NewPet("Pup", "dog", 1, ""))
	require.NoError(t, err)
	assertCount(3)

	// Cambiar la especie de un registro existente.
	dog2.Species = "Rabbit"
	_, err = repo.Save(ctx, dog2)
	require.NoError(t, err)
	assertCount(4)

	require.NoError(t, repo.DeleteByID(ctx, *dog1.ID))
	assertCount(3)

	require.NoError(t, repo.DeleteByID(ctx, *cat.ID))
	assertCount(2)
}

func testConcurrentInserts(t *testing.T, repo pets.Repository) {
	ctx := context.Background()
	const n = 50

	ids := make([]int64, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			saved, err := repo.Save(ctx, NewPet("Pet", "Dog", i, ""))
			errs[i] = err
			if err == nil {
				ids[i] = *saved.ID
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]struct{}, n)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		_, dup := seen[ids[i]]
		require.False(t, dup, "duplicate id %d", ids[i])
		seen[ids[i]] = struct{}{}
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, n)
}

func testDetached(t *testing.T, repo pets.Repository) {
	ctx := context.Background()

	saved, err := repo.Save(ctx, NewPet("Max", "Dog", 3, "John"))
	require.NoError(t, err)

	*saved.Age = 99
	*saved.OwnerName = "Someone else"
	saved.Name = "Changed"

	got, found, err := repo.FindByID(ctx, *saved.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Max", got.Name)
	assert.Equal(t, 3, *got.Age)
	assert.Equal(t, "John", *got.OwnerName)
}

// testCreateCountDelete: Max (id 1), Bella (id 2), 2 especies; delete 1 -> queda Bella, 1 especie.
func testCreateCountDelete(t *testing.T, repo pets.Repository) {
	ctx := context.Background()

	maxPet, err := repo.Save(ctx, NewPet("Max", "Dog", 3, ""))
	require.NoError(t, err)
	assert.Equal(t, int64(1), *maxPet.ID)

	bella, err := repo.Save(ctx, NewPet("Bella", "Cat", 2, ""))
	require.NoError(t, err)
	assert.Equal(t, int64(2), *bella.ID)

	n, err := repo.CountDistinctSpecies(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, repo.DeleteByID(ctx, 1))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(2), *all[0].ID)

	n, err = repo.CountDistinctSpecies(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
