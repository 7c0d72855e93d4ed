package migrations

// share_links rows are immutable: the id is derived from the field values,
// so an update would change the id. The stripped_url index serves the
// by-url administrative lookup.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateShareLinks, downCreateShareLinks)
}

func upCreateShareLinks(ctx context.Context, tx *sql.Tx) error {
	var ddl string
	switch dialect {
	case "postgres":
		ddl = `CREATE TABLE IF NOT EXISTS share_links (
    id           TEXT PRIMARY KEY,
    url          TEXT NOT NULL,
    image_url    TEXT NOT NULL DEFAULT '',
    title        TEXT NOT NULL DEFAULT '',
    description  TEXT NOT NULL DEFAULT '',
    image_height INTEGER,
    image_width  INTEGER,
    stripped_url TEXT NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL
)`
	case "mysql":
		ddl = `CREATE TABLE IF NOT EXISTS share_links (
    id           VARCHAR(16) PRIMARY KEY,
    url          TEXT NOT NULL,
    image_url    TEXT NOT NULL,
    title        TEXT NOT NULL,
    description  TEXT NOT NULL,
    image_height INT,
    image_width  INT,
    stripped_url VARCHAR(768) NOT NULL,
    created_at   TIMESTAMP(6) NOT NULL
)`
	default: // sqlite3
		ddl = `CREATE TABLE IF NOT EXISTS share_links (
    id           TEXT PRIMARY KEY,
    url          TEXT NOT NULL,
    image_url    TEXT NOT NULL DEFAULT '',
    title        TEXT NOT NULL DEFAULT '',
    description  TEXT NOT NULL DEFAULT '',
    image_height INTEGER,
    image_width  INTEGER,
    stripped_url TEXT NOT NULL,
    created_at   TIMESTAMP NOT NULL
)`
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create share_links table: %w", err)
	}
	_, err := tx.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS share_links_stripped_url_idx ON share_links (stripped_url)`)
	return err
}

func downCreateShareLinks(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS share_links`)
	return err
}
