package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Dialect describe lo poco que cambia entre motores: el estilo de placeholders.
// Las queries se escriben con "?" y se reescriben una vez al construir el repo.
type Dialect struct {
	Name string

	// NumberedPlaceholders: true => $1, $2... (postgres). false => ? (sqlite).
	NumberedPlaceholders bool

	// AdvanceSequence se corre después de un upsert con id explícito, con el id
	// dos veces como argumento. Vacío si el motor ya sigue el max(id) solo
	// (sqlite AUTOINCREMENT).
	AdvanceSequence string
}

var (
	Postgres = Dialect{
		Name:                 "postgres",
		NumberedPlaceholders: true,
		// Nunca baja la secuencia: solo la mueve si el id la pasó.
		AdvanceSequence: `
			SELECT setval(pg_get_serial_sequence('pets', 'id'), ?)
			WHERE ? > COALESCE(pg_sequence_last_value(pg_get_serial_sequence('pets', 'id')::regclass), 0)
		`,
	}
	SQLite = Dialect{Name: "sqlite", NumberedPlaceholders: false}
)

func (d Dialect) rebind(query string) string {
	if !d.NumberedPlaceholders {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

// ExecScript ejecuta un script SQL sentencia por sentencia (separadas por ";").
// Se ejecutan por separado porque el protocolo extendido de postgres no acepta varias juntas.
func ExecScript(ctx context.Context, db *sql.DB, script string) error {
	for _, stmt := range strings.Split(script, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlstore: exec schema statement: %w", err)
		}
	}
	return nil
}
