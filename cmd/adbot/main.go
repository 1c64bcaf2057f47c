package main

import (
	"fmt"
	"log"

	"github.com/m3rciful/adbot/core/bootstrap"
	"github.com/m3rciful/adbot/core/cmd"
	"github.com/m3rciful/adbot/internal/bot"
	appconfig "github.com/m3rciful/adbot/internal/config"
)

func main() {
	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			return appconfig.Load(path)
		},
		Bootstrap: func(carrier cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			cfg, ok := carrier.(*appconfig.Config)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", carrier)
			}
			res, err := bootstrap.Run(bootstrap.Options{
				Config:   cfg.CoreConfig(),
				Database: cfg.Database,
			})
			if err != nil {
				return nil, err
			}
			return bot.New(cfg, res.DB), nil
		},
	})
	if err != nil {
		log.Fatalf("adbot: %v", err)
	}
}
