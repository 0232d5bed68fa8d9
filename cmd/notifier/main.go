package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"spacy/config"
	"spacy/di"
	"spacy/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier := di.InitializeNotifier()
	notifier.Listen(ctx)

	log.Info().Msg("Notifier stopped")
}
