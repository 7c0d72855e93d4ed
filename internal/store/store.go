// Package store contains the sqlx-backed persistence layer. No handler
// queries the database directly; all access goes through these stores.
package store

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")
