package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pets-api/internal/adapters/storage/sqlstore"

	_ "modernc.org/sqlite" // driver SQLite en Go puro
)

//go:embed schema.sql
var schema string

const memoryPath = ":memory:"

// Open abre (o crea) la base SQLite en path. ":memory:" sirve para tests.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = memoryPath
	}

	if path != memoryPath && !strings.HasPrefix(path, "file:") {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("sqlite: create database directory: %w", err)
			}
		}
	}

	// - busy_timeout: esperar el lock en vez de fallar enseguida
	// - foreign_keys: por consistencia, aunque hoy hay una sola tabla
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&"
	} else {
		dsn += "?"
	}
	dsn += "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	if path != memoryPath {
		dsn += "&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	// SQLite tiene un solo writer; además cada conexión a ":memory:" es una base distinta.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return db, nil
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	return sqlstore.ExecScript(ctx, db, schema)
}
