package bot

import (
	"testing"

	"github.com/stretchr/testify/require"

	tg "github.com/m3rciful/adbot/core/telegram"
	"github.com/m3rciful/adbot/core/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// commandContext implements just enough of tele.Context to drive registered
// command handlers; unimplemented methods panic via the embedded nil interface.
type commandContext struct {
	tele.Context
	user  *tele.User
	chat  *tele.Chat
	msg   *tele.Message
	store map[string]interface{}
	sent  []string
}

func newCommandContext(userID int64, text string) *commandContext {
	user := &tele.User{ID: userID}
	chat := &tele.Chat{ID: userID, Type: tele.ChatPrivate}
	return &commandContext{
		user:  user,
		chat:  chat,
		msg:   &tele.Message{Sender: user, Chat: chat, Text: text},
		store: make(map[string]interface{}),
	}
}

func (c *commandContext) Update() tele.Update { return tele.Update{ID: 1, Message: c.msg} }

func (c *commandContext) Sender() *tele.User { return c.user }

func (c *commandContext) Chat() *tele.Chat { return c.chat }

func (c *commandContext) Message() *tele.Message { return c.msg }

func (c *commandContext) Text() string { return c.msg.Text }

func (c *commandContext) Set(key string, val interface{}) { c.store[key] = val }

func (c *commandContext) Get(key string) interface{} { return c.store[key] }

func (c *commandContext) Send(what interface{}, _ ...interface{}) error {
	if text, ok := what.(string); ok {
		c.sent = append(c.sent, text)
	}
	return nil
}

func TestRegisteredCommandsYieldToActiveConversation(t *testing.T) {
	sessions := state.NewMemoryManager()
	a := &App{sessions: sessions, reg: tg.NewRegistry()}
	a.registerCommands()

	step := state.State("awaiting_guard_input")
	conversationCalls := 0
	state.RegisterHandler(step, func(tele.Context) error {
		conversationCalls++
		return nil
	})
	sessions.SetState(7, step)

	for _, name := range []string{"/start", "/help", "/stats"} {
		_, cmd, ok := a.reg.LookupCommand(name)
		require.True(t, ok, name)

		c := newCommandContext(7, name)
		require.NoError(t, cmd.Handler(c))
		require.Empty(t, c.sent, "%s replied instead of yielding to the conversation", name)
	}
	require.Equal(t, 3, conversationCalls)
}

func TestRegisteredCommandsRunWhenIdle(t *testing.T) {
	a := &App{sessions: state.NewMemoryManager(), reg: tg.NewRegistry()}
	a.registerCommands()

	_, cmd, ok := a.reg.LookupCommand("/help")
	require.True(t, ok)

	c := newCommandContext(7, "/help")
	require.NoError(t, cmd.Handler(c))
	require.Equal(t, []string{msgHelp}, c.sent)
}
