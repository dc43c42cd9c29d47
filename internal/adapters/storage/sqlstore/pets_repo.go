package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pets-api/internal/domain/pets"
)

var _ pets.Repository = (*PetsRepo)(nil)

type queries struct {
	insert   string
	upsert   string
	getByID  string
	list     string
	delete   string
	exists   string
	distinct string
	advance  string // vacío si el dialecto no lo necesita
}

func newQueries(d Dialect) queries {
	return queries{
		insert: d.rebind(`
			INSERT INTO pets (name, species, age, owner_name)
			VALUES (?, ?, ?, ?)
			RETURNING id
		`),
		upsert: d.rebind(`
			INSERT INTO pets (id, name, species, age, owner_name)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				name = excluded.name,
				species = excluded.species,
				age = excluded.age,
				owner_name = excluded.owner_name
		`),
		getByID: d.rebind(`
			SELECT id, name, species, age, owner_name
			FROM pets
			WHERE id = ?
		`),
		list: `
			SELECT id, name, species, age, owner_name
			FROM pets
			ORDER BY id ASC
		`,
		delete: d.rebind(`DELETE FROM pets WHERE id = ?`),
		exists: d.rebind(`SELECT EXISTS (SELECT 1 FROM pets WHERE id = ?)`),
		// COUNT(DISTINCT ...) ignora NULLs, igual que el contrato.
		distinct: `SELECT COUNT(DISTINCT species) FROM pets`,
		advance:  d.rebind(d.AdvanceSequence),
	}
}

// PetsRepo implementa pets.Repository sobre database/sql.
// Los ids los asigna el motor (BIGSERIAL / AUTOINCREMENT); el repo nunca los genera.
type PetsRepo struct {
	db      *sql.DB
	dialect Dialect
	q       queries
}

func NewPetsRepo(db *sql.DB, d Dialect) *PetsRepo {
	return &PetsRepo{
		db:      db,
		dialect: d,
		q:       newQueries(d),
	}
}

func (r *PetsRepo) Save(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	row := toRow(&p)

	if !row.ID.Valid {
		var id int64
		err := r.db.QueryRowContext(ctx, r.q.insert,
			row.Name,
			row.Species,
			row.Age,
			row.OwnerName,
		).Scan(&id)
		if err != nil {
			return pets.Pet{}, fmt.Errorf("%s: insert pet: %w", r.dialect.Name, err)
		}

		saved := p.Clone()
		saved.ID = &id
		return saved, nil
	}

	if r.q.advance == "" {
		if err := r.upsert(ctx, r.db, row); err != nil {
			return pets.Pet{}, err
		}
		return p.Clone(), nil
	}

	// Upsert y avance de secuencia juntos; si no, el próximo insert podría
	// recibir un id ya ocupado.
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return pets.Pet{}, fmt.Errorf("%s: begin upsert pet %d: %w", r.dialect.Name, row.ID.Int64, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := r.upsert(ctx, tx, row); err != nil {
		return pets.Pet{}, err
	}
	if _, err := tx.ExecContext(ctx, r.q.advance, row.ID.Int64, row.ID.Int64); err != nil {
		return pets.Pet{}, fmt.Errorf("%s: advance id sequence to %d: %w", r.dialect.Name, row.ID.Int64, err)
	}
	if err := tx.Commit(); err != nil {
		return pets.Pet{}, fmt.Errorf("%s: commit upsert pet %d: %w", r.dialect.Name, row.ID.Int64, err)
	}
	return p.Clone(), nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *PetsRepo) upsert(ctx context.Context, db execer, row *petRow) error {
	_, err := db.ExecContext(ctx, r.q.upsert,
		row.ID,
		row.Name,
		row.Species,
		row.Age,
		row.OwnerName,
	)
	if err != nil {
		return fmt.Errorf("%s: upsert pet %d: %w", r.dialect.Name, row.ID.Int64, err)
	}
	return nil
}

func (r *PetsRepo) FindByID(ctx context.Context, id int64) (pets.Pet, bool, error) {
	row, err := scanRow(r.db.QueryRowContext(ctx, r.q.getByID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, false, nil
		}
		return pets.Pet{}, false, fmt.Errorf("%s: get pet %d: %w", r.dialect.Name, id, err)
	}
	return *fromRow(row), true, nil
}

func (r *PetsRepo) FindAll(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, r.q.list)
	if err != nil {
		return nil, fmt.Errorf("%s: list pets: %w", r.dialect.Name, err)
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan pet: %w", r.dialect.Name, err)
		}
		out = append(out, *fromRow(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: list pets: %w", r.dialect.Name, err)
	}
	return out, nil
}

func (r *PetsRepo) DeleteByID(ctx context.Context, id int64) error {
	// 0 filas afectadas no es error: delete idempotente.
	if _, err := r.db.ExecContext(ctx, r.q.delete, id); err != nil {
		return fmt.Errorf("%s: delete pet %d: %w", r.dialect.Name, id, err)
	}
	return nil
}

func (r *PetsRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, r.q.exists, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: exists pet %d: %w", r.dialect.Name, id, err)
	}
	return exists, nil
}

func (r *PetsRepo) CountDistinctSpecies(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, r.q.distinct).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: count distinct species: %w", r.dialect.Name, err)
	}
	return int(n), nil
}
