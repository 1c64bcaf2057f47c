package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m3rciful/adbot/core/logger"
	"github.com/m3rciful/adbot/internal/models"
	"github.com/m3rciful/adbot/internal/storage"
	"log/slog"
)

const foreignKeyViolation = "23503"

// CreateAd inserts a pending ad assembled from the draft and returns the
// stored row. Optional media and button fields map to NULL columns.
func (s *Store) CreateAd(ctx context.Context, owner int64, draft models.Draft) (models.Ad, error) {
	var (
		mediaRef  *string
		mediaKind *models.MediaKind
		btnLabel  *string
		btnURL    *string
	)
	if draft.Media != nil {
		mediaRef = &draft.Media.Ref
		mediaKind = &draft.Media.Kind
	}
	if draft.Button != nil {
		btnLabel = &draft.Button.Label
		btnURL = &draft.Button.URL
	}

	start := time.Now()
	var ad models.Ad
	err := s.db.GetContext(ctx, &ad,
		`INSERT INTO ads (owner_id, body, media_ref, media_kind, button_label, button_url, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, owner_id, body, media_ref, media_kind, button_label, button_url,
		           status, views, clicks, created_at`,
		owner, draft.Text, mediaRef, mediaKind, btnLabel, btnURL, models.AdStatusPending)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return models.Ad{}, storage.ErrAdOwnerMissing
		}
		return models.Ad{}, fmt.Errorf("create ad for user %d: %w", owner, err)
	}

	logger.DB.LogAttrs(ctx, slog.LevelDebug, "ad.create",
		slog.Int64("user_id", owner),
		slog.Int64("ad_id", ad.ID),
		slog.Duration("duration", logger.Took(start)),
	)
	return ad, nil
}

// ListAdsByOwner returns the user's ads, newest first.
func (s *Store) ListAdsByOwner(ctx context.Context, owner int64) ([]models.Ad, error) {
	var ads []models.Ad
	err := s.db.SelectContext(ctx, &ads,
		`SELECT id, owner_id, body, media_ref, media_kind, button_label, button_url,
		        status, views, clicks, created_at
		 FROM ads WHERE owner_id = $1 ORDER BY id DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("list ads for user %d: %w", owner, err)
	}
	return ads, nil
}

// CountAds returns the total number of submitted ads.
func (s *Store) CountAds(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM ads`); err != nil {
		return 0, fmt.Errorf("count ads: %w", err)
	}
	return n, nil
}
