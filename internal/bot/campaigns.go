package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m3rciful/adbot/core/telegram/format"
	"github.com/m3rciful/adbot/core/telegram/keyboard"
	"github.com/m3rciful/adbot/internal/models"

	tele "gopkg.in/telebot.v4"
)

const campaignsPageSize = 5

// cbCampaignsPage is the callback key for campaign list pagination.
const cbCampaignsPage = "campaigns_page"

// campaignsPages returns how many pages the ad list occupies.
func campaignsPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + campaignsPageSize - 1) / campaignsPageSize
}

// renderCampaignsPage renders one page of the user's campaign list as a
// Markdown message. Pages are 1-based; out-of-range pages are clamped.
func renderCampaignsPage(ads []models.Ad, page int) (string, int) {
	pages := campaignsPages(len(ads))
	if pages == 0 {
		return "", 0
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	from := (page - 1) * campaignsPageSize
	to := from + campaignsPageSize
	if to > len(ads) {
		to = len(ads)
	}

	blocks := make([]string, 0, to-from)
	for _, ad := range ads[from:to] {
		blocks = append(blocks, renderAd(ad))
	}

	text := strings.Join(blocks, "\n\n")
	if pages > 1 {
		text += fmt.Sprintf("\n\nСтраница %d из %d", page, pages)
	}
	return text, pages
}

func renderAd(ad models.Ad) string {
	body, err := format.EscapeMarkdown(ad.Body, format.MarkdownV1, "")
	if err != nil {
		body = ad.Body
	}

	b := strings.Builder{}
	fmt.Fprintf(&b, "📌 ID: %d\n%s\n\n", ad.ID, body)
	fmt.Fprintf(&b, "Статус: %s\n", strings.ToUpper(string(ad.Status)))
	fmt.Fprintf(&b, "📊 Показы: %d | Клики: %d", ad.Views, ad.Clicks)
	if media := ad.Media(); media != nil {
		fmt.Fprintf(&b, "\n🖼 Медиа: %s", string(media.Kind))
	}
	if btn := ad.Button(); btn != nil {
		fmt.Fprintf(&b, "\n🔗 Кнопка: %s", btn.Label)
	}
	return b.String()
}

// campaignsNav builds the prev/next inline keyboard, or nil for a single page.
func campaignsNav(page, pages int) *tele.ReplyMarkup {
	if pages <= 1 {
		return nil
	}

	var row []keyboard.InlineBtn
	if page > 1 {
		row = append(row, keyboard.InlineBtn{
			Text:   "◀️",
			Unique: cbCampaignsPage,
			Data:   strconv.Itoa(page - 1),
		})
	}
	if page < pages {
		row = append(row, keyboard.InlineBtn{
			Text:   "▶️",
			Unique: cbCampaignsPage,
			Data:   strconv.Itoa(page + 1),
		})
	}
	return keyboard.InlineButtonsRows(row)
}
