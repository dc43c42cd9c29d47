package redis

import (
	"context"
	"fmt"
	"sort"

	goredis "github.com/redis/go-redis/v9"

	"pets-api/internal/domain/pets"
)

var _ pets.Repository = (*PetsRepo)(nil)

// PetsRepo guarda cada mascota como Hash (pets:{id}) y mantiene un Set de ids y
// un Hash de conteo por especie. Los ids nuevos salen de INCR pets:seq.
//
// Las escrituras corren en scripts Lua, así que Hash, Set y conteo de especies
// quedan consistentes aunque haya clientes concurrentes.
type PetsRepo struct {
	client goredis.Cmdable
}

// NewPetsRepo no toma ownership del cliente.
func NewPetsRepo(client goredis.Cmdable) *PetsRepo {
	return &PetsRepo{client: client}
}

func (r *PetsRepo) Save(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	var id int64
	if p.ID != nil {
		id = *p.ID
	} else {
		next, err := r.client.Incr(ctx, seqKey).Result()
		if err != nil {
			return pets.Pet{}, fmt.Errorf("redis: next id: %w", err)
		}
		id = next
	}

	keys := []string{petKey(id), idsKey, speciesKey, seqKey}
	if err := saveScript.Run(ctx, r.client, keys, saveArgs(id, p)...).Err(); err != nil {
		return pets.Pet{}, fmt.Errorf("redis: save pet %d: %w", id, err)
	}

	saved := p.Clone()
	saved.ID = &id
	return saved, nil
}

func (r *PetsRepo) FindByID(ctx context.Context, id int64) (pets.Pet, bool, error) {
	vals, err := r.client.HGetAll(ctx, petKey(id)).Result()
	if err != nil {
		return pets.Pet{}, false, fmt.Errorf("redis: get pet %d: %w", id, err)
	}
	if len(vals) == 0 {
		return pets.Pet{}, false, nil
	}

	p, err := fromHash(vals)
	if err != nil {
		return pets.Pet{}, false, fmt.Errorf("redis: get pet %d: %w", id, err)
	}
	return p, true, nil
}

func (r *PetsRepo) FindAll(ctx context.Context) ([]pets.Pet, error) {
	ids, err := r.client.SMembers(ctx, idsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: list pets: %w", err)
	}
	if len(ids) == 0 {
		return []pets.Pet{}, nil
	}

	cmds := make([]*goredis.MapStringStringCmd, len(ids))
	_, err = r.client.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		for i, raw := range ids {
			cmds[i] = pipe.HGetAll(ctx, keyPrefix+raw)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis: list pets: %w", err)
	}

	out := make([]pets.Pet, 0, len(ids))
	for _, cmd := range cmds {
		vals := cmd.Val()
		// Borrado entre SMEMBERS y HGETALL.
		if len(vals) == 0 {
			continue
		}
		p, convErr := fromHash(vals)
		if convErr != nil {
			return nil, fmt.Errorf("redis: list pets: %w", convErr)
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return *out[i].ID < *out[j].ID })
	return out, nil
}

func (r *PetsRepo) DeleteByID(ctx context.Context, id int64) error {
	keys := []string{petKey(id), idsKey, speciesKey}
	if err := deleteScript.Run(ctx, r.client, keys, id).Err(); err != nil {
		return fmt.Errorf("redis: delete pet %d: %w", id, err)
	}
	return nil
}

func (r *PetsRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	n, err := r.client.Exists(ctx, petKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("redis: exists pet %d: %w", id, err)
	}
	return n > 0, nil
}

func (r *PetsRepo) CountDistinctSpecies(ctx context.Context) (int, error) {
	n, err := r.client.HLen(ctx, speciesKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis: count distinct species: %w", err)
	}
	return int(n), nil
}
