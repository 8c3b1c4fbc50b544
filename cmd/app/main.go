package main

import (
	"concierge/config"
	"concierge/di"
	"concierge/helper"
	"concierge/shared/logger"
	"context"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	app := di.InitializeApp()
	defer app.Scheduler.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Bookings.RearmReminders(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to re-arm check-in reminders")
	}

	go app.Reminders.Run(ctx)

	app.HTTP.Serve()
}
