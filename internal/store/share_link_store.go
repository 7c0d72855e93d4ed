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

// ShareLink is a row in the share_links table. Rows are write-once: the id
// embeds every field value, so there is nothing to update after creation.
type ShareLink struct {
	ID          string        `db:"id"`
	URL         string        `db:"url"`
	ImageURL    string        `db:"image_url"`
	Title       string        `db:"title"`
	Description string        `db:"description"`
	ImageHeight sql.NullInt64 `db:"image_height"`
	ImageWidth  sql.NullInt64 `db:"image_width"`
	StrippedURL string        `db:"stripped_url"`
	CreatedAt   time.Time     `db:"created_at"`
}

// Fields converts a row back into the registerable field set.
func (l *ShareLink) Fields() links.ShareLinkFields {
	f := links.ShareLinkFields{
		URL:         l.URL,
		ImageURL:    l.ImageURL,
		Title:       l.Title,
		Description: l.Description,
	}
	if l.ImageHeight.Valid {
		h := int(l.ImageHeight.Int64)
		f.ImageHeight = &h
	}
	if l.ImageWidth.Valid {
		w := int(l.ImageWidth.Int64)
		f.ImageWidth = &w
	}
	return f
}

// ShareLinkStore persists share links keyed by fingerprint id.
type ShareLinkStore struct {
	db *sqlx.DB
}

// NewShareLinkStore creates a new ShareLinkStore.
func NewShareLinkStore(db *sqlx.DB) *ShareLinkStore {
	return &ShareLinkStore{db: db}
}

// q rebinds ? placeholders to the driver's native format ($1,$2,... for PostgreSQL).
func (s *ShareLinkStore) q(query string) string { return s.db.Rebind(query) }

// Create inserts the record for id if it does not exist yet. The insert is
// conditional so concurrent registrations of the same field set converge
// on one row: whichever writer wins, the stored content is identical
// because the id is derived from it. Returns true when this call created
// the row.
func (s *ShareLinkStore) Create(ctx context.Context, id string, f links.ShareLinkFields) (bool, error) {
	var height, width sql.NullInt64
	if f.ImageHeight != nil {
		height = sql.NullInt64{Int64: int64(*f.ImageHeight), Valid: true}
	}
	if f.ImageWidth != nil {
		width = sql.NullInt64{Int64: int64(*f.ImageWidth), Valid: true}
	}

	stmt := conditionalInsert(s.db.DriverName(), `
		INSERT INTO share_links (id, url, image_url, title, description, image_height, image_width, stripped_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, "id")
	res, err := s.db.ExecContext(ctx, s.q(stmt),
		id, f.URL, f.ImageURL, f.Title, f.Description, height, width,
		links.StripURL(f.URL), time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("insert share link %s: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// GetByID returns the share link for id, or ErrNotFound.
func (s *ShareLinkStore) GetByID(ctx context.Context, id string) (*ShareLink, error) {
	var l ShareLink
	err := s.db.GetContext(ctx, &l, s.q(`SELECT * FROM share_links WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get share link %s: %w", id, err)
	}
	return &l, nil
}

// ListByURL returns every share link whose destination matches url, using
// the stripped form as the comparison key. An empty slice is not an error.
func (s *ShareLinkStore) ListByURL(ctx context.Context, url string) ([]*ShareLink, error) {
	var result []*ShareLink
	err := s.db.SelectContext(ctx, &result, s.q(`
		SELECT * FROM share_links WHERE stripped_url = ? ORDER BY created_at
	`), links.StripURL(url))
	if err != nil {
		return nil, fmt.Errorf("list share links by url: %w", err)
	}
	return result, nil
}
