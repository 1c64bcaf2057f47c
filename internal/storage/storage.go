// Package storage declares the persistence gateway consumed by services.
// Implementations live in subpackages; tests use in-memory fakes.
package storage

import (
	"context"
	"errors"

	"github.com/m3rciful/adbot/internal/models"
)

var (
	// ErrUserNotFound is returned when a user row does not exist.
	ErrUserNotFound = errors.New("storage: user not found")
	// ErrAdOwnerMissing is returned when an ad insert references an unknown user.
	ErrAdOwnerMissing = errors.New("storage: ad owner does not exist")
)

// UserStore persists marketplace accounts.
type UserStore interface {
	GetUser(ctx context.Context, id int64) (models.User, error)
	// CreateUser inserts a user with unset role and zero balance. Inserting
	// an existing ID is a no-op, so first contact is idempotent.
	CreateUser(ctx context.Context, id int64) error
	SetRole(ctx context.Context, id int64, role models.Role) error
	Balance(ctx context.Context, id int64) (float64, error)
	CountUsers(ctx context.Context) (int64, error)
}

// AdStore persists submitted advertisements.
type AdStore interface {
	// CreateAd inserts a pending ad built from the draft and returns the
	// stored row.
	CreateAd(ctx context.Context, owner int64, draft models.Draft) (models.Ad, error)
	ListAdsByOwner(ctx context.Context, owner int64) ([]models.Ad, error)
	CountAds(ctx context.Context) (int64, error)
}
