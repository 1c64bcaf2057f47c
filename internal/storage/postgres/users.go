package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/m3rciful/adbot/core/logger"
	"github.com/m3rciful/adbot/internal/models"
	"github.com/m3rciful/adbot/internal/storage"
	"log/slog"
)

// GetUser loads a user row by Telegram ID.
func (s *Store) GetUser(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u,
		`SELECT id, role, balance FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, storage.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// CreateUser inserts a fresh account with unset role and zero balance.
// Conflicting IDs are ignored so repeated /start never duplicates a row.
func (s *Store) CreateUser(ctx context.Context, id int64) error {
	start := time.Now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, role, balance) VALUES ($1, NULL, 0)
		 ON CONFLICT (id) DO NOTHING`, id)
	if err != nil {
		return fmt.Errorf("create user %d: %w", id, err)
	}
	logger.DB.LogAttrs(ctx, slog.LevelDebug, "user.create",
		slog.Int64("user_id", id),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

// SetRole overwrites the user's role. Selecting the same role twice is a
// plain overwrite with the same value.
func (s *Store) SetRole(ctx context.Context, id int64, role models.Role) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET role = $2 WHERE id = $1`, id, role)
	if err != nil {
		return fmt.Errorf("set role for user %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrUserNotFound
	}
	return nil
}

// Balance reads the current balance of a user.
func (s *Store) Balance(ctx context.Context, id int64) (float64, error) {
	var balance float64
	err := s.db.GetContext(ctx, &balance,
		`SELECT balance FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, storage.ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get balance for user %d: %w", id, err)
	}
	return balance, nil
}

// CountUsers returns the total number of registered accounts.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
