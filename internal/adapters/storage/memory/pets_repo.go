package memory

import (
	"context"
	"sort"
	"sync"

	"pets-api/internal/domain/pets"
)

var _ pets.Repository = (*PetRepo)(nil)

// PetRepo guarda las mascotas en un map protegido por RWMutex.
// Los datos se pierden al terminar el proceso.
type PetRepo struct {
	mu     sync.RWMutex
	byID   map[int64]pets.Pet
	nextID int64 // siguiente id a asignar; solo avanza
}

func NewPetRepo() *PetRepo {
	return &PetRepo{
		byID:   make(map[int64]pets.Pet),
		nextID: 1,
	}
}

func (r *PetRepo) Save(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	stored := p.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	if stored.ID == nil {
		id := r.nextID
		r.nextID++
		stored.ID = &id
	} else if *stored.ID >= r.nextID {
		// id explícito más allá del contador: lo saltamos para no reutilizarlo.
		r.nextID = *stored.ID + 1
	}

	r.byID[*stored.ID] = stored
	return stored.Clone(), nil
}

func (r *PetRepo) FindByID(ctx context.Context, id int64) (pets.Pet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, false, nil
	}
	return p.Clone(), true, nil
}

func (r *PetRepo) FindAll(ctx context.Context) ([]pets.Pet, error) {
	r.mu.RLock()
	out := make([]pets.Pet, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p.Clone())
	}
	r.mu.RUnlock()

	// Orden por id solo para que la salida sea legible; el contrato no lo exige.
	sort.Slice(out, func(i, j int) bool {
		return out[i].IDValue() < out[j].IDValue()
	})
	return out, nil
}

func (r *PetRepo) DeleteByID(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)
	return nil
}

func (r *PetRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byID[id]
	return ok, nil
}

// CountDistinctSpecies es O(n): no hay agregación nativa en un map.
func (r *PetRepo) CountDistinctSpecies(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(r.byID))
	for _, p := range r.byID {
		seen[p.Species] = struct{}{}
	}
	return len(seen), nil
}
