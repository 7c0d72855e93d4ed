package migrations

// api_keys is keyed by email (one key per email); the unique index on
// api_key backs the constant-time validity lookup in the auth middleware.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateAPIKeys, downCreateAPIKeys)
}

func upCreateAPIKeys(ctx context.Context, tx *sql.Tx) error {
	var ddl string
	switch dialect {
	case "postgres":
		ddl = `CREATE TABLE IF NOT EXISTS api_keys (
    email   TEXT PRIMARY KEY,
    api_key TEXT NOT NULL,
    created TIMESTAMPTZ NOT NULL,
    enabled BOOLEAN NOT NULL DEFAULT TRUE
)`
	case "mysql":
		ddl = `CREATE TABLE IF NOT EXISTS api_keys (
    email   VARCHAR(320) PRIMARY KEY,
    api_key VARCHAR(64) NOT NULL,
    created TIMESTAMP(6) NOT NULL,
    enabled BOOLEAN NOT NULL DEFAULT TRUE
)`
	default: // sqlite3
		ddl = `CREATE TABLE IF NOT EXISTS api_keys (
    email   TEXT PRIMARY KEY,
    api_key TEXT NOT NULL,
    created TIMESTAMP NOT NULL,
    enabled BOOLEAN NOT NULL DEFAULT TRUE
)`
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create api_keys table: %w", err)
	}
	_, err := tx.ExecContext(ctx,
		`CREATE UNIQUE INDEX IF NOT EXISTS api_keys_api_key_idx ON api_keys (api_key)`)
	return err
}

func downCreateAPIKeys(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS api_keys`)
	return err
}
