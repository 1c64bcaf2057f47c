package router

import (
	"time"

	tg "github.com/m3rciful/adbot/core/telegram"
	"github.com/m3rciful/adbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// FSM defines the minimal interface for an FSM manager.
type FSM interface {
	InProgress(userID int64) bool
	ManagerHandler(c tele.Context) error
}

// TextOptions controls fallback behaviour for text updates.
type TextOptions struct {
	UnknownText tele.HandlerFunc
}

// MediaOptions controls fallback behaviour for photo/video updates that
// arrive outside an active conversation.
type MediaOptions struct {
	UnexpectedMedia tele.HandlerFunc
}

// TextRoutes builds the handler for plain text routing. An active FSM
// conversation always wins: command-looking text typed mid-flow is treated
// as conversation input, not as a command.
func TextRoutes(fsmMgr FSM, reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if fsmMgr != nil && fsmMgr.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "fsm", start, "", "", func() error {
				return fsmMgr.ManagerHandler(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		},
	}
}

// MediaRoutes builds handlers for photo and video updates. Attachments are
// meaningful only inside an active conversation; outside one they hit the
// fallback.
func MediaRoutes(fsmMgr FSM, opts MediaOptions) []tg.Route {
	mediaHandler := func(name string) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()
			if fsmMgr != nil && fsmMgr.InProgress(c.Sender().ID) {
				return handleWithSummary(c, "fsm_"+name, start, "", "", func() error {
					return fsmMgr.ManagerHandler(c)
				})
			}
			if opts.UnexpectedMedia != nil {
				return handleWithSummary(c, "unexpected_"+name, start, "", "", func() error {
					return opts.UnexpectedMedia(c)
				})
			}
			logHandlerSummary(c, "unexpected_"+name, start, "skip", "ok", nil)
			return nil
		}
	}

	return []tg.Route{
		{
			Endpoint: tele.OnPhoto,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(mediaHandler("photo"))),
		},
		{
			Endpoint: tele.OnVideo,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(mediaHandler("video"))),
		},
	}
}
