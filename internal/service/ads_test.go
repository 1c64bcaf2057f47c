package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/adbot/internal/models"
)

type fakeAdStore struct {
	nextID int64
	ads    []models.Ad
}

func (f *fakeAdStore) CreateAd(_ context.Context, owner int64, draft models.Draft) (models.Ad, error) {
	f.nextID++
	ad := models.Ad{ID: f.nextID, OwnerID: owner, Body: draft.Text, Status: models.AdStatusPending}
	if draft.Media != nil {
		ref, kind := draft.Media.Ref, draft.Media.Kind
		ad.MediaRef, ad.MediaKind = &ref, &kind
	}
	if draft.Button != nil {
		label, url := draft.Button.Label, draft.Button.URL
		ad.ButtonLabel, ad.ButtonURL = &label, &url
	}
	f.ads = append(f.ads, ad)
	return ad, nil
}

func (f *fakeAdStore) ListAdsByOwner(_ context.Context, owner int64) ([]models.Ad, error) {
	var out []models.Ad
	for i := len(f.ads) - 1; i >= 0; i-- {
		if f.ads[i].OwnerID == owner {
			out = append(out, f.ads[i])
		}
	}
	return out, nil
}

func (f *fakeAdStore) CountAds(_ context.Context) (int64, error) {
	return int64(len(f.ads)), nil
}

func TestSubmitPendingAd(t *testing.T) {
	store := &fakeAdStore{}
	svc := NewAds(store)

	ad, err := svc.Submit(context.Background(), 7, models.Draft{
		Text:   "Продам гараж",
		Media:  &models.MediaRef{Ref: "file123", Kind: models.MediaPhoto},
		Button: &models.Button{Label: "Написать", URL: "https://t.me/seller"},
	})
	require.NoError(t, err)
	require.Equal(t, models.AdStatusPending, ad.Status)
	require.Equal(t, int64(7), ad.OwnerID)
	require.NotNil(t, ad.Media())
	require.NotNil(t, ad.Button())
}

func TestSubmitRejectsEmptyText(t *testing.T) {
	store := &fakeAdStore{}
	svc := NewAds(store)

	_, err := svc.Submit(context.Background(), 7, models.Draft{Text: "   "})
	require.Error(t, err)
	require.Empty(t, store.ads)
}

func TestSubmitRejectsInvalidMediaKind(t *testing.T) {
	store := &fakeAdStore{}
	svc := NewAds(store)

	_, err := svc.Submit(context.Background(), 7, models.Draft{
		Text:  "текст",
		Media: &models.MediaRef{Ref: "x", Kind: models.MediaKind("gif")},
	})
	require.Error(t, err)
	require.Empty(t, store.ads)
}

func TestCampaignsNewestFirst(t *testing.T) {
	store := &fakeAdStore{}
	svc := NewAds(store)
	ctx := context.Background()

	_, err := svc.Submit(ctx, 7, models.Draft{Text: "первое"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, 7, models.Draft{Text: "второе"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, 8, models.Draft{Text: "чужое"})
	require.NoError(t, err)

	ads, err := svc.CampaignsByOwner(ctx, 7)
	require.NoError(t, err)
	require.Len(t, ads, 2)
	require.Equal(t, "второе", ads[0].Body)
	require.Equal(t, "первое", ads[1].Body)
}
