package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "servisku/docs"
	"servisku/internal/adapter/http/routes"
	"servisku/internal/infrastructure/config"
	"servisku/internal/infrastructure/logger"

	"github.com/rs/zerolog/log"
)

// @title           Servisku API
// @version         1.0
// @description     Repair-service marketplace: service requests, chat, payments and wallets.

// @host      localhost:8080
// @BasePath  /

// Caller identity is injected by the API gateway.
// @securityDefinitions.apikey CallerID
// @in header
// @name X-User-ID

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("[main] failed to load configuration")
	}
	logger.Setup(logger.New(cfg.Log.Level, cfg.IsProduction()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := routes.Run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("[main] failed to startup the application")
	}
}
