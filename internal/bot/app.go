// Package bot assembles the AdBot application: registry, routes, and the
// bridge between telebot updates and the ad creation flow.
package bot

import (
	"context"

	"github.com/jmoiron/sqlx"

	tg "github.com/m3rciful/adbot/core/telegram"
	"github.com/m3rciful/adbot/core/telegram/commands"
	"github.com/m3rciful/adbot/core/telegram/router"
	"github.com/m3rciful/adbot/core/telegram/state"
	"github.com/m3rciful/adbot/internal/adflow"
	appconfig "github.com/m3rciful/adbot/internal/config"
	"github.com/m3rciful/adbot/internal/service"
	"github.com/m3rciful/adbot/internal/storage/postgres"

	tele "gopkg.in/telebot.v4"
)

// App is the assembled bot application.
type App struct {
	cfg      *appconfig.Config
	db       *sqlx.DB
	users    *service.Users
	ads      *service.Ads
	sessions state.Manager
	flow     *adflow.Flow
	reg      *tg.Registry
}

// New wires services, the conversation flow, and the handler registry.
func New(cfg *appconfig.Config, db *sqlx.DB) *App {
	store := postgres.New(db)
	sessions := state.NewMemoryManager()
	adsSvc := service.NewAds(store)

	a := &App{
		cfg:      cfg,
		db:       db,
		users:    service.NewUsers(store),
		ads:      adsSvc,
		sessions: sessions,
		flow:     adflow.New(sessions, adsSvc),
		reg:      tg.NewRegistry(),
	}

	a.registerCommands()
	a.registerFlowHandlers()
	_ = a.reg.RegisterCallback(cbCampaignsPage, a.handleCampaignsPage)
	a.reg.SetTextFallback(a.menuRouter)

	return a
}

func (a *App) registerCommands() {
	a.reg.RegisterCommand("/start", commands.Command{
		Handler:     a.fsmGuard(a.handleStart),
		Description: "Регистрация и выбор роли",
	})
	a.reg.RegisterCommand("/help", commands.Command{
		Handler:     a.fsmGuard(a.handleHelp),
		Description: "Справка",
	})
	a.reg.RegisterCommand("/stats", commands.Command{
		Handler:     a.fsmGuard(a.handleStats),
		Description: "Статистика бота",
		AdminOnly:   true,
		Hidden:      true,
	})
}

// fsmGuard keeps registered slash commands from bypassing an active
// conversation: mid-creation they are delivered to the state machine as
// content, matching the text-router precedence. /skip is deliberately not a
// registered endpoint, the flow interprets it as the escape command.
func (a *App) fsmGuard(h tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if a.sessions.InProgress(c.Sender().ID) {
			return a.sessions.ManagerHandler(c)
		}
		return h(c)
	}
}

// TelegramRunOptions builds the runtime wiring consumed by the core runner.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	core := a.cfg.CoreConfig()

	routes := router.CommandRoutes(a.reg, router.CommandRouteOptions{
		AdminID: core.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoutes(a.sessions, a.reg, router.TextOptions{})...)
	routes = append(routes, router.MediaRoutes(a.sessions, router.MediaOptions{
		UnexpectedMedia: a.handleStrayMedia,
	})...)
	routes = append(routes, router.CallbackRoute(a.reg, router.CallbackOptions{}))

	return tg.RunOptions{
		Config:      core,
		Registry:    a.reg,
		Middlewares: tg.DefaultMiddlewares(core, nil),
		Routes:      routes,
		OnStop: func(ctx context.Context, rt tg.Runtime) error {
			return a.db.Close()
		},
	}, nil
}
