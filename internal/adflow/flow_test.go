package adflow

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/adbot/core/telegram/state"
	"github.com/m3rciful/adbot/internal/models"
)

type fakeSubmitter struct {
	mu     sync.Mutex
	nextID int64
	ads    []models.Ad
	owners []int64
	err    error
}

func (f *fakeSubmitter) Submit(_ context.Context, owner int64, draft models.Draft) (models.Ad, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.Ad{}, f.err
	}

	f.nextID++
	ad := models.Ad{
		ID:      f.nextID,
		OwnerID: owner,
		Body:    draft.Text,
		Status:  models.AdStatusPending,
	}
	if draft.Media != nil {
		ref, kind := draft.Media.Ref, draft.Media.Kind
		ad.MediaRef, ad.MediaKind = &ref, &kind
	}
	if draft.Button != nil {
		label, url := draft.Button.Label, draft.Button.URL
		ad.ButtonLabel, ad.ButtonURL = &label, &url
	}
	f.ads = append(f.ads, ad)
	f.owners = append(f.owners, owner)
	return ad, nil
}

func (f *fakeSubmitter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ads)
}

func newTestFlow() (*Flow, *fakeSubmitter, state.Manager) {
	subs := &fakeSubmitter{}
	sessions := state.NewMemoryManager()
	return New(sessions, subs), subs, sessions
}

const userID int64 = 42

func TestFullCreationWithMediaAndButton(t *testing.T) {
	flow, subs, sessions := newTestFlow()
	ctx := context.Background()

	out := flow.Start(ctx, userID)
	require.Equal(t, []string{MsgPromptText}, out.Replies)
	require.True(t, flow.InProgress(userID))

	out, err := flow.Advance(ctx, userID, Input{Text: "Лучшие курсы Go"})
	require.NoError(t, err)
	require.Equal(t, []string{MsgPromptMedia}, out.Replies)

	out, err = flow.Advance(ctx, userID, Input{
		Media: &models.MediaRef{Ref: "file-abc", Kind: models.MediaPhoto},
	})
	require.NoError(t, err)
	require.Equal(t, []string{MsgPromptButton}, out.Replies)

	out, err = flow.Advance(ctx, userID, Input{Text: "Перейти — https://site.ru"})
	require.NoError(t, err)
	require.Equal(t, []string{MsgSubmitted}, out.Replies)
	require.NotNil(t, out.Submitted)

	require.Equal(t, 1, subs.count())
	ad := subs.ads[0]
	require.Equal(t, userID, ad.OwnerID)
	require.Equal(t, "Лучшие курсы Go", ad.Body)
	require.Equal(t, models.AdStatusPending, ad.Status)
	require.NotNil(t, ad.Media())
	require.Equal(t, models.MediaRef{Ref: "file-abc", Kind: models.MediaPhoto}, *ad.Media())
	require.NotNil(t, ad.Button())
	require.Equal(t, models.Button{Label: "Перейти", URL: "https://site.ru"}, *ad.Button())

	require.False(t, flow.InProgress(userID))
	require.Equal(t, state.StateIdle, sessions.GetState(userID))
}

func TestVideoAttachment(t *testing.T) {
	flow, subs, _ := newTestFlow()
	ctx := context.Background()

	flow.Start(ctx, userID)
	_, err := flow.Advance(ctx, userID, Input{Text: "Ролик"})
	require.NoError(t, err)
	_, err = flow.Advance(ctx, userID, Input{
		Media: &models.MediaRef{Ref: "vid-1", Kind: models.MediaVideo},
	})
	require.NoError(t, err)
	_, err = flow.Advance(ctx, userID, Input{Text: SkipCommand})
	require.NoError(t, err)

	require.Equal(t, 1, subs.count())
	require.Equal(t, models.MediaVideo, subs.ads[0].Media().Kind)
	require.Nil(t, subs.ads[0].Button())
}

func TestSkipMediaAndButton(t *testing.T) {
	flow, subs, _ := newTestFlow()
	ctx := context.Background()

	flow.Start(ctx, userID)
	_, err := flow.Advance(ctx, userID, Input{Text: "Без вложений"})
	require.NoError(t, err)
	_, err = flow.Advance(ctx, userID, Input{Text: "/skip"})
	require.NoError(t, err)
	out, err := flow.Advance(ctx, userID, Input{Text: "/skip"})
	require.NoError(t, err)
	require.Equal(t, []string{MsgSubmitted}, out.Replies)

	require.Equal(t, 1, subs.count())
	ad := subs.ads[0]
	require.Nil(t, ad.Media())
	require.Nil(t, ad.Button())
	require.Equal(t, "Без вложений", ad.Body)
}

func TestButtonFormatErrorKeepsDraftAndState(t *testing.T) {
	flow, subs, sessions := newTestFlow()
	ctx := context.Background()

	flow.Start(ctx, userID)
	_, err := flow.Advance(ctx, userID, Input{Text: "Текст"})
	require.NoError(t, err)
	_, err = flow.Advance(ctx, userID, Input{Text: "/skip"})
	require.NoError(t, err)

	// Missing separator: rejected, no submission, no transition.
	out, err := flow.Advance(ctx, userID, Input{Text: "Go https://x.test"})
	require.NoError(t, err)
	require.Equal(t, []string{MsgButtonFormatError}, out.Replies)
	require.Equal(t, 0, subs.count())
	require.Equal(t, StepAwaitingButton, sessions.GetState(userID))

	// The draft is intact: the retry finalizes with the original text.
	out, err = flow.Advance(ctx, userID, Input{Text: "Go — https://x.test"})
	require.NoError(t, err)
	require.Equal(t, []string{MsgSubmitted}, out.Replies)
	require.Equal(t, 1, subs.count())
	require.Equal(t, "Текст", subs.ads[0].Body)
	require.Equal(t, models.Button{Label: "Go", URL: "https://x.test"}, *subs.ads[0].Button())
}

func TestCommandLikeTextBecomesAdBody(t *testing.T) {
	flow, subs, _ := newTestFlow()
	ctx := context.Background()

	flow.Start(ctx, userID)
	out, err := flow.Advance(ctx, userID, Input{Text: "Баланс"})
	require.NoError(t, err)
	require.Equal(t, []string{MsgPromptMedia}, out.Replies)

	_, err = flow.Advance(ctx, userID, Input{Text: "/skip"})
	require.NoError(t, err)
	_, err = flow.Advance(ctx, userID, Input{Text: "/skip"})
	require.NoError(t, err)

	require.Equal(t, 1, subs.count())
	require.Equal(t, "Баланс", subs.ads[0].Body)
}

func TestEmptyTextReprompts(t *testing.T) {
	flow, _, sessions := newTestFlow()
	ctx := context.Background()

	flow.Start(ctx, userID)
	out, err := flow.Advance(ctx, userID, Input{Text: "   "})
	require.NoError(t, err)
	require.Equal(t, []string{MsgPromptText}, out.Replies)
	require.Equal(t, StepAwaitingText, sessions.GetState(userID))
}

func TestUnexpectedInputAtMediaStepReprompts(t *testing.T) {
	flow, _, sessions := newTestFlow()
	ctx := context.Background()

	flow.Start(ctx, userID)
	_, err := flow.Advance(ctx, userID, Input{Text: "Текст"})
	require.NoError(t, err)

	out, err := flow.Advance(ctx, userID, Input{Text: "просто текст"})
	require.NoError(t, err)
	require.Equal(t, []string{MsgMediaRetry}, out.Replies)
	require.Equal(t, StepAwaitingMedia, sessions.GetState(userID))
}

func TestPersistenceFailurePreservesDraft(t *testing.T) {
	flow, subs, sessions := newTestFlow()
	ctx := context.Background()

	flow.Start(ctx, userID)
	_, err := flow.Advance(ctx, userID, Input{Text: "Текст"})
	require.NoError(t, err)
	_, err = flow.Advance(ctx, userID, Input{Text: "/skip"})
	require.NoError(t, err)

	subs.err = errors.New("connection refused")
	out, err := flow.Advance(ctx, userID, Input{Text: "/skip"})
	require.Error(t, err)
	require.Equal(t, []string{MsgSubmitFailed}, out.Replies)
	require.Equal(t, 0, subs.count())

	// Session survives the failure so the user retries the last message
	// instead of re-entering every field.
	require.True(t, flow.InProgress(userID))
	require.Equal(t, StepAwaitingButton, sessions.GetState(userID))

	subs.err = nil
	out, err = flow.Advance(ctx, userID, Input{Text: "/skip"})
	require.NoError(t, err)
	require.Equal(t, []string{MsgSubmitted}, out.Replies)
	require.Equal(t, 1, subs.count())
	require.Equal(t, "Текст", subs.ads[0].Body)
}

func TestMissingSessionResetsToIdle(t *testing.T) {
	flow, subs, sessions := newTestFlow()
	ctx := context.Background()

	// A state without a draft happens after a restart: the FSM map is gone
	// but Telegram still delivers the next message of the conversation.
	sessions.SetState(userID, StepAwaitingButton)

	out, err := flow.Advance(ctx, userID, Input{Text: "/skip"})
	require.NoError(t, err)
	require.Equal(t, []string{MsgSessionLost}, out.Replies)
	require.Equal(t, 0, subs.count())
	require.False(t, flow.InProgress(userID))
}

func TestRestartDiscardsPreviousDraft(t *testing.T) {
	flow, subs, _ := newTestFlow()
	ctx := context.Background()

	flow.Start(ctx, userID)
	_, err := flow.Advance(ctx, userID, Input{Text: "Первый"})
	require.NoError(t, err)

	// Starting over resets to the text step with an empty draft.
	out := flow.Start(ctx, userID)
	require.Equal(t, []string{MsgPromptText}, out.Replies)

	_, err = flow.Advance(ctx, userID, Input{Text: "Второй"})
	require.NoError(t, err)
	_, err = flow.Advance(ctx, userID, Input{Text: "/skip"})
	require.NoError(t, err)
	_, err = flow.Advance(ctx, userID, Input{Text: "/skip"})
	require.NoError(t, err)

	require.Equal(t, 1, subs.count())
	require.Equal(t, "Второй", subs.ads[0].Body)
}

func TestConcurrentFinalizeSubmitsOnce(t *testing.T) {
	flow, subs, _ := newTestFlow()
	ctx := context.Background()

	flow.Start(ctx, userID)
	_, err := flow.Advance(ctx, userID, Input{Text: "Текст"})
	require.NoError(t, err)
	_, err = flow.Advance(ctx, userID, Input{Text: "/skip"})
	require.NoError(t, err)

	// Two rapid /skip taps race on the finalize step. The per-user lock
	// serializes them: the first submits, the second finds the session gone.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = flow.Advance(ctx, userID, Input{Text: "/skip"})
		}()
	}
	wg.Wait()

	require.Equal(t, 1, subs.count())
	require.False(t, flow.InProgress(userID))
}
