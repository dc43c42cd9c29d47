package sqlstore

import (
	"database/sql"

	"pets-api/internal/domain/pets"
)

// petRow es la fila de la tabla pets tal como la ve database/sql.
type petRow struct {
	ID        sql.NullInt64
	Name      string
	Species   string
	Age       sql.NullInt64
	OwnerName sql.NullString
}

func toRow(p *pets.Pet) *petRow {
	if p == nil {
		return nil
	}
	row := &petRow{
		Name:    p.Name,
		Species: p.Species,
	}
	if p.ID != nil {
		row.ID = sql.NullInt64{Int64: *p.ID, Valid: true}
	}
	if p.Age != nil {
		row.Age = sql.NullInt64{Int64: int64(*p.Age), Valid: true}
	}
	if p.OwnerName != nil {
		row.OwnerName = sql.NullString{String: *p.OwnerName, Valid: true}
	}
	return row
}

func fromRow(row *petRow) *pets.Pet {
	if row == nil {
		return nil
	}
	p := &pets.Pet{
		Name:    row.Name,
		Species: row.Species,
	}
	if row.ID.Valid {
		id := row.ID.Int64
		p.ID = &id
	}
	if row.Age.Valid {
		age := int(row.Age.Int64)
		p.Age = &age
	}
	if row.OwnerName.Valid {
		owner := row.OwnerName.String
		p.OwnerName = &owner
	}
	return p
}

// scanner cubre *sql.Row y *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRow(s scanner) (*petRow, error) {
	var row petRow
	if err := s.Scan(
		&row.ID,
		&row.Name,
		&row.Species,
		&row.Age,
		&row.OwnerName,
	); err != nil {
		return nil, err
	}
	return &row, nil
}
