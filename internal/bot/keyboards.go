package bot

import (
	"github.com/m3rciful/adbot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// roleKeyboard offers the two marketplace roles.
func roleKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{btnRoleAdvertiser},
		[]string{btnRolePublisher},
	)
}

// advertiserKeyboard is the main menu shown to advertisers.
func advertiserKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{btnCreateAd},
		[]string{btnMyCampaigns},
		[]string{btnBalance},
	)
}
