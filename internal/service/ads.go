package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m3rciful/adbot/core/logger"
	"github.com/m3rciful/adbot/internal/models"
	"github.com/m3rciful/adbot/internal/storage"
	"log/slog"
)

// Ads implements ad submission and campaign listing.
type Ads struct {
	store storage.AdStore
}

// NewAds builds the ads service over an ad store.
func NewAds(store storage.AdStore) *Ads {
	return &Ads{store: store}
}

// Submit persists a completed draft as a pending ad. The draft is checked at
// this boundary so a broken conversation flow can never store a malformed row.
func (s *Ads) Submit(ctx context.Context, owner int64, draft models.Draft) (models.Ad, error) {
	if strings.TrimSpace(draft.Text) == "" {
		return models.Ad{}, fmt.Errorf("submit ad: empty text")
	}
	if draft.Media != nil && !draft.Media.Kind.Valid() {
		return models.Ad{}, fmt.Errorf("submit ad: invalid media kind %q", string(draft.Media.Kind))
	}

	start := time.Now()
	ad, err := s.store.CreateAd(ctx, owner, draft)
	if err != nil {
		logger.SVCAds.LogAttrs(ctx, slog.LevelError, "ad.submit",
			slog.String("status", "fail"),
			slog.Int64("user_id", owner),
			slog.String("err", err.Error()),
		)
		return models.Ad{}, fmt.Errorf("submit ad: %w", err)
	}

	logger.SVCAds.LogAttrs(ctx, slog.LevelInfo, "ad.submit",
		slog.String("status", "ok"),
		slog.Int64("user_id", owner),
		slog.Int64("ad_id", ad.ID),
		slog.Duration("duration", logger.Took(start)),
	)
	return ad, nil
}

// CampaignsByOwner lists the user's submitted ads, newest first.
func (s *Ads) CampaignsByOwner(ctx context.Context, owner int64) ([]models.Ad, error) {
	return s.store.ListAdsByOwner(ctx, owner)
}

// Count returns the total number of ads across all users.
func (s *Ads) Count(ctx context.Context) (int64, error) {
	return s.store.CountAds(ctx)
}
