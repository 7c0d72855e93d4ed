package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/act-now-coalition/act-now-links/internal/links"
)

// APIKeyRecord is a row in the api_keys table, keyed by email.
type APIKeyRecord struct {
	Email   string    `db:"email"`
	APIKey  string    `db:"api_key"`
	Created time.Time `db:"created"`
	Enabled bool      `db:"enabled"`
}

// APIKeyStore manages the per-email API key credentials.
type APIKeyStore struct {
	db *sqlx.DB
}

// NewAPIKeyStore creates a new APIKeyStore.
func NewAPIKeyStore(db *sqlx.DB) *APIKeyStore {
	return &APIKeyStore{db: db}
}

func (s *APIKeyStore) q(query string) string { return s.db.Rebind(query) }

// CreateOrGet returns the API key for email, generating and persisting a
// fresh one only if the email has no record yet. Key material comes from
// the stand-alone random id path. The conditional insert plus read-back
// makes concurrent first calls converge on a single record, and repeated
// calls always return the stored key — a disabled key is returned as-is,
// never re-enabled.
func (s *APIKeyStore) CreateOrGet(ctx context.Context, email string) (string, error) {
	key, err := links.NewRandomID()
	if err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	stmt := conditionalInsert(s.db.DriverName(), `
		INSERT INTO api_keys (email, api_key, created, enabled)
		VALUES (?, ?, ?, ?)`, "email")
	if _, err := s.db.ExecContext(ctx, s.q(stmt), email, key, time.Now().UTC(), true); err != nil {
		return "", fmt.Errorf("insert api key for %s: %w", email, err)
	}
	return s.Get(ctx, email)
}

// Get returns the API key for email, or ErrNotFound.
func (s *APIKeyStore) Get(ctx context.Context, email string) (string, error) {
	var key string
	err := s.db.GetContext(ctx, &key, s.q(`SELECT api_key FROM api_keys WHERE email = ?`), email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get api key for %s: %w", email, err)
	}
	return key, nil
}

// IsValid reports whether apiKey exists and is enabled. The lookup hits
// the unique index on api_key, so it is bounded regardless of table size.
func (s *APIKeyStore) IsValid(ctx context.Context, apiKey string) (bool, error) {
	if apiKey == "" {
		return false, nil
	}
	var enabled bool
	err := s.db.GetContext(ctx, &enabled, s.q(`SELECT enabled FROM api_keys WHERE api_key = ?`), apiKey)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("look up api key: %w", err)
	}
	return enabled, nil
}

// SetEnabled toggles the key for email and returns the new value.
// Returns ErrNotFound if the email has no key.
func (s *APIKeyStore) SetEnabled(ctx context.Context, email string, enabled bool) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE api_keys SET enabled = ? WHERE email = ?
	`), enabled, email)
	if err != nil {
		return false, fmt.Errorf("update api key for %s: %w", email, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if rows == 0 {
		return false, ErrNotFound
	}
	return enabled, nil
}
