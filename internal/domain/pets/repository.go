package pets

import "context"

// Repository es el contrato que cumplen todos los backends (memory, sql, mongo, redis).
// El Service no sabe cuál está activo.
type Repository interface {
	// Save inserta si p.ID es nil (asignando un id nuevo) o sobrescribe el registro con ese id.
	Save(ctx context.Context, p Pet) (Pet, error)

	// FindByID devuelve found=false si no existe; un id inexistente no es error.
	FindByID(ctx context.Context, id int64) (Pet, bool, error)

	FindAll(ctx context.Context) ([]Pet, error)

	// DeleteByID es idempotente: borrar un id inexistente no falla.
	DeleteByID(ctx context.Context, id int64) error

	ExistsByID(ctx context.Context, id int64) (bool, error)

	// CountDistinctSpecies cuenta las especies distintas (no nulas) entre todos los registros.
	CountDistinctSpecies(ctx context.Context) (int, error)
}
