package router

import (
	"testing"

	tg "github.com/m3rciful/adbot/core/telegram"
	"github.com/m3rciful/adbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

type fakeFSM struct {
	active  bool
	handled int
}

func (f *fakeFSM) InProgress(int64) bool { return f.active }

func (f *fakeFSM) ManagerHandler(tele.Context) error {
	f.handled++
	return nil
}

// routeContext implements just enough of tele.Context for the router chain;
// unimplemented methods panic via the embedded nil interface.
type routeContext struct {
	tele.Context
	user  *tele.User
	chat  *tele.Chat
	msg   *tele.Message
	store map[string]interface{}
}

func newRouteContext(userID int64, text string) *routeContext {
	user := &tele.User{ID: userID}
	chat := &tele.Chat{ID: userID, Type: tele.ChatPrivate}
	return &routeContext{
		user:  user,
		chat:  chat,
		msg:   &tele.Message{Sender: user, Chat: chat, Text: text},
		store: make(map[string]interface{}),
	}
}

func (c *routeContext) Update() tele.Update { return tele.Update{ID: 1, Message: c.msg} }

func (c *routeContext) Sender() *tele.User { return c.user }

func (c *routeContext) Chat() *tele.Chat { return c.chat }

func (c *routeContext) Message() *tele.Message { return c.msg }

func (c *routeContext) Text() string { return c.msg.Text }

func (c *routeContext) Set(key string, val interface{}) { c.store[key] = val }

func (c *routeContext) Get(key string) interface{} { return c.store[key] }

func textHandler(t *testing.T, fsmMgr FSM, reg *tg.Registry) tele.HandlerFunc {
	t.Helper()
	routes := TextRoutes(fsmMgr, reg, TextOptions{})
	if len(routes) != 1 || routes[0].Endpoint != tele.OnText {
		t.Fatalf("expected a single OnText route, got %d", len(routes))
	}
	return routes[0].Handler
}

func TestTextRoutesPreferActiveConversation(t *testing.T) {
	fsmMgr := &fakeFSM{active: true}
	reg := tg.NewRegistry()

	commandCalls := 0
	reg.RegisterCommand("/start", commands.Command{
		Handler:     func(tele.Context) error { commandCalls++; return nil },
		Description: "start",
	})
	fallbackCalls := 0
	reg.SetTextFallback(func(tele.Context) error { fallbackCalls++; return nil })

	handler := textHandler(t, fsmMgr, reg)

	// Menu-looking text mid-conversation belongs to the conversation.
	if err := handler(newRouteContext(7, "Баланс")); err != nil {
		t.Fatalf("handler: %v", err)
	}
	// Command-looking text as well.
	if err := handler(newRouteContext(7, "/start")); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if fsmMgr.handled != 2 {
		t.Fatalf("fsm handled = %d, expected 2", fsmMgr.handled)
	}
	if commandCalls != 0 || fallbackCalls != 0 {
		t.Fatalf("command/fallback reached mid-conversation: %d/%d", commandCalls, fallbackCalls)
	}
}

func TestTextRoutesCommandWhenIdle(t *testing.T) {
	fsmMgr := &fakeFSM{}
	reg := tg.NewRegistry()

	commandCalls := 0
	reg.RegisterCommand("/start", commands.Command{
		Handler:     func(tele.Context) error { commandCalls++; return nil },
		Description: "start",
	})
	fallbackCalls := 0
	reg.SetTextFallback(func(tele.Context) error { fallbackCalls++; return nil })

	handler := textHandler(t, fsmMgr, reg)

	if err := handler(newRouteContext(7, "/start")); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if commandCalls != 1 || fallbackCalls != 0 || fsmMgr.handled != 0 {
		t.Fatalf("route = command %d / fallback %d / fsm %d, expected 1/0/0",
			commandCalls, fallbackCalls, fsmMgr.handled)
	}

	if err := handler(newRouteContext(7, "Баланс")); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if fallbackCalls != 1 {
		t.Fatalf("fallback calls = %d, expected 1", fallbackCalls)
	}
}

func TestMediaRoutesPreferActiveConversation(t *testing.T) {
	fsmMgr := &fakeFSM{active: true}
	strayCalls := 0
	routes := MediaRoutes(fsmMgr, MediaOptions{
		UnexpectedMedia: func(tele.Context) error { strayCalls++; return nil },
	})
	if len(routes) != 2 {
		t.Fatalf("expected photo and video routes, got %d", len(routes))
	}

	for _, route := range routes {
		if err := route.Handler(newRouteContext(7, "")); err != nil {
			t.Fatalf("handler: %v", err)
		}
	}
	if fsmMgr.handled != 2 || strayCalls != 0 {
		t.Fatalf("fsm %d / stray %d, expected 2/0", fsmMgr.handled, strayCalls)
	}

	fsmMgr.active = false
	for _, route := range routes {
		if err := route.Handler(newRouteContext(7, "")); err != nil {
			t.Fatalf("handler: %v", err)
		}
	}
	if fsmMgr.handled != 2 || strayCalls != 2 {
		t.Fatalf("fsm %d / stray %d, expected 2/2", fsmMgr.handled, strayCalls)
	}
}
