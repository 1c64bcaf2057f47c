// Package postgres implements the storage gateway on top of sqlx.
package postgres

import (
	"github.com/jmoiron/sqlx"
)

// Store bundles the user and ad repositories over one connection pool.
// Connections are acquired per query by sqlx and released immediately, even
// on failure; nothing is held across a user interaction.
type Store struct {
	db *sqlx.DB
}

// New wraps an already connected pool.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}
