package postgres

import (
	"database/sql"

	"pets-api/internal/adapters/storage/sqlstore"
)

// NewPetsRepo devuelve el repo SQL con placeholders $n.
// Ids: BIGSERIAL. Un id explícito que la secuencia nunca emitió se guarda tal cual
// y la secuencia no se mueve (el Service solo guarda ids que ya leyó del store).
func NewPetsRepo(db *sql.DB) *sqlstore.PetsRepo {
	return sqlstore.NewPetsRepo(db, sqlstore.Postgres)
}
