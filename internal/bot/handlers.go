package bot

import (
	"errors"

	"fmt"

	"github.com/m3rciful/adbot/core/logger"
	"github.com/m3rciful/adbot/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/adbot/core/telegram/helpers"
	"github.com/m3rciful/adbot/core/telegram/keyboard"
	"github.com/m3rciful/adbot/internal/models"
	"github.com/m3rciful/adbot/internal/storage"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// handleStart registers the user on first contact and greets known users
// according to their stored role.
func (a *App) handleStart(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	user, known, err := a.users.Register(ctx, c.Sender().ID)
	if err != nil {
		logger.Error(ctx, "tg", "start.fail", slog.String("err", err.Error()))
		return tghelpers.SendText(c, msgTryLater)
	}

	if !known || user.Role == models.RoleUnset {
		return tghelpers.SendText(c, msgWelcome, &tele.SendOptions{ReplyMarkup: roleKeyboard()})
	}

	switch user.Role {
	case models.RoleAdvertiser:
		return tghelpers.SendText(c, msgGreetAdvertiser, &tele.SendOptions{ReplyMarkup: advertiserKeyboard()})
	default:
		return tghelpers.SendText(c, msgGreetPublisher, &tele.SendOptions{ReplyMarkup: keyboard.RemoveKeyboard()})
	}
}

// handleRoleSelect stores the chosen role. Re-selection simply overwrites.
func (a *App) handleRoleSelect(c tele.Context, role models.Role) error {
	ctx := tghelpers.BuildContext(c)
	if err := a.users.SetRole(ctx, c.Sender().ID, role); err != nil {
		logger.Error(ctx, "tg", "role.fail", slog.String("err", err.Error()))
		return tghelpers.SendText(c, msgTryLater)
	}

	if role == models.RoleAdvertiser {
		return tghelpers.SendText(c, msgRoleAdvertiserSet, &tele.SendOptions{ReplyMarkup: advertiserKeyboard()})
	}
	return tghelpers.SendText(c, msgRolePublisherSet, &tele.SendOptions{ReplyMarkup: keyboard.RemoveKeyboard()})
}

// handleCreateAd opens the creation conversation.
func (a *App) handleCreateAd(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	out := a.flow.Start(ctx, c.Sender().ID)
	return a.sendReplies(c, out.Replies)
}

// handleCampaigns lists the user's ads, first page.
func (a *App) handleCampaigns(c tele.Context) error {
	return a.showCampaigns(c, 1, false)
}

// handleCampaignsPage flips pages via the inline nav buttons.
func (a *App) handleCampaignsPage(c tele.Context) error {
	page, err := callbacks.PayloadInt(c)
	if err != nil {
		page = 1
	}
	return a.showCampaigns(c, page, true)
}

func (a *App) showCampaigns(c tele.Context, page int, edit bool) error {
	ctx := tghelpers.BuildContext(c)
	ads, err := a.ads.CampaignsByOwner(ctx, c.Sender().ID)
	if err != nil {
		logger.Error(ctx, "tg", "campaigns.fail", slog.String("err", err.Error()))
		return tghelpers.SendText(c, msgTryLater)
	}
	if len(ads) == 0 {
		return tghelpers.SendText(c, msgNoCampaigns)
	}

	text, pages := renderCampaignsPage(ads, page)
	nav := campaignsNav(page, pages)
	if edit {
		return tghelpers.EditOrSendMD(c, text, nav)
	}
	return tghelpers.SendMD(c, text, nav)
}

// handleBalance reports the stored balance.
func (a *App) handleBalance(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	balance, err := a.users.Balance(ctx, c.Sender().ID)
	if errors.Is(err, storage.ErrUserNotFound) {
		return tghelpers.SendText(c, msgUnknownText)
	}
	if err != nil {
		logger.Error(ctx, "tg", "balance.fail", slog.String("err", err.Error()))
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, fmt.Sprintf(msgBalanceFmt, balance))
}

// handleStats is the hidden admin command with bot totals.
func (a *App) handleStats(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	users, err := a.users.Count(ctx)
	if err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	ads, err := a.ads.Count(ctx)
	if err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, fmt.Sprintf("👥 Пользователи: %d\n📢 Объявления: %d", users, ads))
}

func (a *App) handleHelp(c tele.Context) error {
	return tghelpers.SendText(c, msgHelp)
}

// menuRouter is the text fallback: reply-keyboard labels arrive as plain
// text and are matched here after FSM and command lookup both passed.
func (a *App) menuRouter(c tele.Context) error {
	switch c.Text() {
	case btnRoleAdvertiser:
		return a.handleRoleSelect(c, models.RoleAdvertiser)
	case btnRolePublisher:
		return a.handleRoleSelect(c, models.RolePublisher)
	case btnCreateAd:
		return a.handleCreateAd(c)
	case btnMyCampaigns:
		return a.handleCampaigns(c)
	case btnBalance:
		return a.handleBalance(c)
	}
	return tghelpers.SendText(c, msgUnknownText)
}

func (a *App) handleStrayMedia(c tele.Context) error {
	return tghelpers.SendText(c, msgStrayMedia)
}

func (a *App) sendReplies(c tele.Context, replies []string) error {
	for _, r := range replies {
		if err := tghelpers.SendText(c, r); err != nil {
			return err
		}
	}
	return nil
}
