package bot

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/adbot/internal/models"
)

func makeAds(n int) []models.Ad {
	ads := make([]models.Ad, 0, n)
	for i := 1; i <= n; i++ {
		ads = append(ads, models.Ad{
			ID:     int64(i),
			Body:   fmt.Sprintf("объявление %d", i),
			Status: models.AdStatusPending,
		})
	}
	return ads
}

func TestCampaignsPages(t *testing.T) {
	require.Equal(t, 0, campaignsPages(0))
	require.Equal(t, 1, campaignsPages(1))
	require.Equal(t, 1, campaignsPages(campaignsPageSize))
	require.Equal(t, 2, campaignsPages(campaignsPageSize+1))
	require.Equal(t, 3, campaignsPages(campaignsPageSize*2+1))
}

func TestRenderCampaignsPageSplitsList(t *testing.T) {
	ads := makeAds(campaignsPageSize + 2)

	first, pages := renderCampaignsPage(ads, 1)
	require.Equal(t, 2, pages)
	require.Contains(t, first, "объявление 1")
	require.Contains(t, first, fmt.Sprintf("объявление %d", campaignsPageSize))
	require.NotContains(t, first, fmt.Sprintf("объявление %d", campaignsPageSize+1))
	require.Contains(t, first, "Страница 1 из 2")

	second, pages := renderCampaignsPage(ads, 2)
	require.Equal(t, 2, pages)
	require.Contains(t, second, fmt.Sprintf("объявление %d", campaignsPageSize+1))
	require.NotContains(t, second, "объявление 1\n")
	require.Contains(t, second, "Страница 2 из 2")
}

func TestRenderCampaignsPageClampsOutOfRange(t *testing.T) {
	ads := makeAds(2)

	low, _ := renderCampaignsPage(ads, 0)
	first, _ := renderCampaignsPage(ads, 1)
	require.Equal(t, first, low)

	high, _ := renderCampaignsPage(ads, 99)
	require.Equal(t, first, high)
}

func TestRenderCampaignsPageSinglePageHasNoFooter(t *testing.T) {
	text, pages := renderCampaignsPage(makeAds(2), 1)
	require.Equal(t, 1, pages)
	require.NotContains(t, text, "Страница")
}

func TestRenderCampaignsPageEmpty(t *testing.T) {
	text, pages := renderCampaignsPage(nil, 1)
	require.Empty(t, text)
	require.Zero(t, pages)
}

func TestRenderAd(t *testing.T) {
	ref := "file42"
	kind := models.MediaPhoto
	label := "Перейти"
	url := "https://site.ru"

	text := renderAd(models.Ad{
		ID:          42,
		Body:        "Текст объявления",
		MediaRef:    &ref,
		MediaKind:   &kind,
		ButtonLabel: &label,
		ButtonURL:   &url,
		Status:      models.AdStatusApproved,
		Views:       100,
		Clicks:      7,
	})

	require.Contains(t, text, "ID: 42")
	require.Contains(t, text, "Текст объявления")
	require.Contains(t, text, "APPROVED")
	require.Contains(t, text, "Показы: 100 | Клики: 7")
	require.Contains(t, text, "Медиа: photo")
	require.Contains(t, text, "Кнопка: Перейти")
}

func TestRenderAdBareText(t *testing.T) {
	text := renderAd(models.Ad{ID: 1, Body: "текст", Status: models.AdStatusPending})
	require.NotContains(t, text, "Медиа")
	require.NotContains(t, text, "Кнопка")
	require.Contains(t, text, "PENDING")
}

func TestCampaignsNav(t *testing.T) {
	require.Nil(t, campaignsNav(1, 1))

	first := campaignsNav(1, 3)
	require.NotNil(t, first)
	require.Len(t, first.InlineKeyboard, 1)
	require.Len(t, first.InlineKeyboard[0], 1)
	require.Equal(t, "▶️", first.InlineKeyboard[0][0].Text)

	middle := campaignsNav(2, 3)
	require.Len(t, middle.InlineKeyboard[0], 2)
	require.Equal(t, "◀️", middle.InlineKeyboard[0][0].Text)
	require.Equal(t, "▶️", middle.InlineKeyboard[0][1].Text)

	last := campaignsNav(3, 3)
	require.Len(t, last.InlineKeyboard[0], 1)
	require.Equal(t, "◀️", last.InlineKeyboard[0][0].Text)
	require.True(t, strings.HasSuffix(last.InlineKeyboard[0][0].Data, "|2"))
}
