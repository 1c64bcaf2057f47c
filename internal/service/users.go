// Package service wires domain operations between the bot layer and storage.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/m3rciful/adbot/core/logger"
	"github.com/m3rciful/adbot/internal/models"
	"github.com/m3rciful/adbot/internal/storage"
	"log/slog"
)

// Users implements registration, role selection and balance reads.
type Users struct {
	store storage.UserStore
}

// NewUsers builds the users service over a user store.
func NewUsers(store storage.UserStore) *Users {
	return &Users{store: store}
}

// GetUserByTelegramID loads the account for a Telegram user.
func (s *Users) GetUserByTelegramID(ctx context.Context, id int64) (models.User, error) {
	return s.store.GetUser(ctx, id)
}

// Register creates the account on first contact and reports whether the user
// was already known. The fresh account has unset role and zero balance.
func (s *Users) Register(ctx context.Context, id int64) (models.User, bool, error) {
	start := time.Now()
	u, err := s.store.GetUser(ctx, id)
	if err == nil {
		return u, true, nil
	}
	if err != storage.ErrUserNotFound {
		return models.User{}, false, fmt.Errorf("register: %w", err)
	}

	if err := s.store.CreateUser(ctx, id); err != nil {
		return models.User{}, false, fmt.Errorf("register: %w", err)
	}
	logger.SVCUsers.LogAttrs(ctx, slog.LevelInfo, "user.registered",
		slog.String("status", "ok"),
		slog.Int64("user_id", id),
		slog.Duration("duration", logger.Took(start)),
	)
	return models.User{ID: id, Role: models.RoleUnset}, false, nil
}

// SetRole stores the chosen role. Re-selection overwrites; an account is
// created on demand so a stale keyboard tap never fails on a missing row.
func (s *Users) SetRole(ctx context.Context, id int64, role models.Role) error {
	if !role.Valid() || role == models.RoleUnset {
		return fmt.Errorf("set role: invalid role %q", string(role))
	}

	err := s.store.SetRole(ctx, id, role)
	if err == storage.ErrUserNotFound {
		if err = s.store.CreateUser(ctx, id); err == nil {
			err = s.store.SetRole(ctx, id, role)
		}
	}
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}

	logger.SVCUsers.LogAttrs(ctx, slog.LevelInfo, "user.role_set",
		slog.String("status", "ok"),
		slog.Int64("user_id", id),
		slog.String("role", string(role)),
	)
	return nil
}

// Balance reads the user's current balance.
func (s *Users) Balance(ctx context.Context, id int64) (float64, error) {
	return s.store.Balance(ctx, id)
}

// Count returns the total number of accounts.
func (s *Users) Count(ctx context.Context) (int64, error) {
	return s.store.CountUsers(ctx)
}
