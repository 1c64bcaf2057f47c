// Package adflow drives the multi-step ad creation conversation. The flow is
// kept transport-free: inbound messages are normalized into Input and outcomes
// carry plain reply texts, so the bot layer owns all telebot specifics.
package adflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/m3rciful/adbot/core/logger"
	"github.com/m3rciful/adbot/core/telegram/state"
	"github.com/m3rciful/adbot/internal/models"
	"log/slog"
)

// Conversation steps. Idle is the shared state.StateIdle.
const (
	// StepAwaitingText waits for the ad body.
	StepAwaitingText state.State = "ad_awaiting_text"
	// StepAwaitingMedia waits for a photo/video or /skip.
	StepAwaitingMedia state.State = "ad_awaiting_media"
	// StepAwaitingButton waits for a "<label> — <url>" button or /skip.
	StepAwaitingButton state.State = "ad_awaiting_button"
)

// SkipCommand advances past an optional step without supplying data.
const SkipCommand = "/skip"

const draftKey = "ad_draft"

// Input is one inbound message stripped of transport details.
type Input struct {
	Text  string
	Media *models.MediaRef
}

// IsSkip reports whether the message is the escape command.
func (in Input) IsSkip() bool {
	return strings.EqualFold(strings.TrimSpace(in.Text), SkipCommand)
}

// Outcome describes what the flow decided for one inbound message.
type Outcome struct {
	// Replies are sent to the user in order.
	Replies []string
	// Submitted is the persisted ad when this message finalized the draft.
	Submitted *models.Ad
}

// Submitter persists a completed draft.
type Submitter interface {
	Submit(ctx context.Context, owner int64, draft models.Draft) (models.Ad, error)
}

// Flow is the per-user ad creation state machine.
type Flow struct {
	sessions state.Manager
	ads      Submitter
}

// New builds a flow over a session manager and an ad submitter.
func New(sessions state.Manager, ads Submitter) *Flow {
	return &Flow{sessions: sessions, ads: ads}
}

// InProgress reports whether the user has an active creation session.
func (f *Flow) InProgress(userID int64) bool {
	return f.sessions.InProgress(userID)
}

// Start opens a creation session and asks for the ad text. An already active
// session is restarted from scratch.
func (f *Flow) Start(ctx context.Context, userID int64) Outcome {
	var out Outcome
	_ = f.sessions.WithLock(userID, func() error {
		f.sessions.Clear(userID)
		f.sessions.SetState(userID, StepAwaitingText)
		f.sessions.SetTemp(userID, draftKey, &models.Draft{})
		out = Outcome{Replies: []string{MsgPromptText}}

		logger.Debug(ctx, "adflow", "session.start",
			slog.Int64("user_id", userID),
			slog.String("state", string(StepAwaitingText)),
		)
		return nil
	})
	return out
}

// Advance feeds one inbound message into the state machine. Transitions for a
// user are serialized by the session lock, so two rapid messages can never
// produce divergent sessions or a lost transition. A non-nil error is always
// a persistence failure; format errors are recovered locally with a retry
// reply and preserved state.
func (f *Flow) Advance(ctx context.Context, userID int64, in Input) (Outcome, error) {
	var out Outcome
	err := f.sessions.WithLock(userID, func() error {
		step := f.sessions.GetState(userID)

		draft, ok := f.draft(userID)
		if step == state.StateIdle || !ok {
			// Session vanished mid-flow, e.g. after a restart. Reset instead
			// of crashing and tell the user how to start over.
			f.reset(userID)
			out = Outcome{Replies: []string{MsgSessionLost}}
			logger.Warn(ctx, "adflow", "session.missing",
				slog.Int64("user_id", userID),
				slog.String("state", string(step)),
			)
			return nil
		}

		var err error
		switch step {
		case StepAwaitingText:
			out = f.handleText(ctx, userID, in, draft)
		case StepAwaitingMedia:
			out = f.handleMedia(ctx, userID, in, draft)
		case StepAwaitingButton:
			out, err = f.handleButton(ctx, userID, in, draft)
		default:
			f.reset(userID)
			out = Outcome{Replies: []string{MsgSessionLost}}
		}
		return err
	})
	return out, err
}

// handleText stores the ad body. The whole message is taken verbatim, so
// command-looking or menu-looking text becomes ad content by design.
func (f *Flow) handleText(ctx context.Context, userID int64, in Input, draft *models.Draft) Outcome {
	if strings.TrimSpace(in.Text) == "" {
		return Outcome{Replies: []string{MsgPromptText}}
	}

	draft.Text = in.Text
	f.sessions.SetState(userID, StepAwaitingMedia)
	logger.Debug(ctx, "adflow", "step.text",
		slog.Int64("user_id", userID),
		slog.String("state", string(StepAwaitingMedia)),
	)
	return Outcome{Replies: []string{MsgPromptMedia}}
}

// handleMedia stores the attachment reference or records that media was
// skipped. Anything that is neither an attachment nor /skip re-prompts.
func (f *Flow) handleMedia(ctx context.Context, userID int64, in Input, draft *models.Draft) Outcome {
	switch {
	case in.Media != nil:
		draft.Media = in.Media
	case in.IsSkip():
		draft.Media = nil
	default:
		return Outcome{Replies: []string{MsgMediaRetry}}
	}

	f.sessions.SetState(userID, StepAwaitingButton)
	logger.Debug(ctx, "adflow", "step.media",
		slog.Int64("user_id", userID),
		slog.String("state", string(StepAwaitingButton)),
	)
	return Outcome{Replies: []string{MsgPromptButton}}
}

// handleButton parses the optional button and finalizes the draft. A parse
// failure keeps the draft and state untouched so the user can retry.
func (f *Flow) handleButton(ctx context.Context, userID int64, in Input, draft *models.Draft) (Outcome, error) {
	if in.IsSkip() {
		draft.Button = nil
		return f.finalize(ctx, userID, draft)
	}

	btn, err := models.ParseButton(in.Text)
	if err != nil {
		logger.Debug(ctx, "adflow", "step.button.invalid",
			slog.Int64("user_id", userID),
		)
		return Outcome{Replies: []string{MsgButtonFormatError}}, nil
	}

	draft.Button = btn
	return f.finalize(ctx, userID, draft)
}

// finalize persists the draft and clears the session. The two form a single
// logical unit: on a store failure the session and draft survive so the user
// can retry the last message instead of re-entering every field.
func (f *Flow) finalize(ctx context.Context, userID int64, draft *models.Draft) (Outcome, error) {
	ad, err := f.ads.Submit(ctx, userID, *draft)
	if err != nil {
		logger.Error(ctx, "adflow", "submit.fail",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return Outcome{Replies: []string{MsgSubmitFailed}},
			fmt.Errorf("finalize ad for user %d: %w", userID, err)
	}

	f.reset(userID)
	logger.Info(ctx, "adflow", "submit.ok",
		slog.Int64("user_id", userID),
		slog.Int64("ad_id", ad.ID),
	)
	return Outcome{Replies: []string{MsgSubmitted}, Submitted: &ad}, nil
}

func (f *Flow) reset(userID int64) {
	f.sessions.Clear(userID)
}

func (f *Flow) draft(userID int64) (*models.Draft, bool) {
	v, ok := f.sessions.GetTemp(userID, draftKey)
	if !ok {
		return nil, false
	}
	draft, ok := v.(*models.Draft)
	return draft, ok && draft != nil
}
