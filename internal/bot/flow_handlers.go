package bot

import (
	tghelpers "github.com/m3rciful/adbot/core/telegram/helpers"
	"github.com/m3rciful/adbot/core/telegram/state"
	"github.com/m3rciful/adbot/internal/adflow"
	"github.com/m3rciful/adbot/internal/models"

	tele "gopkg.in/telebot.v4"
)

// registerFlowHandlers binds every creation step to the shared advance
// handler; the flow itself decides what the message means for the step.
func (a *App) registerFlowHandlers() {
	for _, step := range []state.State{
		adflow.StepAwaitingText,
		adflow.StepAwaitingMedia,
		adflow.StepAwaitingButton,
	} {
		state.RegisterHandler(step, a.advanceFlow)
	}
}

// advanceFlow feeds one update into the state machine and delivers whatever
// it replied. A returned error here is a persistence failure; the user was
// already informed and the router logs it.
func (a *App) advanceFlow(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	out, err := a.flow.Advance(ctx, c.Sender().ID, inputFrom(c))
	if sendErr := a.sendReplies(c, out.Replies); sendErr != nil {
		return sendErr
	}
	return err
}

// inputFrom normalizes a Telegram update into flow input. Photo and video
// attachments carry their upload file ID; everything else is plain text.
func inputFrom(c tele.Context) adflow.Input {
	if msg := c.Message(); msg != nil {
		if msg.Photo != nil {
			return adflow.Input{Media: &models.MediaRef{Ref: msg.Photo.FileID, Kind: models.MediaPhoto}}
		}
		if msg.Video != nil {
			return adflow.Input{Media: &models.MediaRef{Ref: msg.Video.FileID, Kind: models.MediaVideo}}
		}
	}
	return adflow.Input{Text: c.Text()}
}
