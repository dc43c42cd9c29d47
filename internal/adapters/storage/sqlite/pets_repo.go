package sqlite

import (
	"database/sql"

	"pets-api/internal/adapters/storage/sqlstore"
)

// NewPetsRepo: AUTOINCREMENT garantiza que un id borrado no se vuelve a emitir.
func NewPetsRepo(db *sql.DB) *sqlstore.PetsRepo {
	return sqlstore.NewPetsRepo(db, sqlstore.SQLite)
}
