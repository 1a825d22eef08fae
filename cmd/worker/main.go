package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"quotebook-backend/internal/config"
	"quotebook-backend/pkg/container"
	"quotebook-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	c, err := container.NewContainer(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build container")
	}
	defer c.Cleanup()

	worker := NewWorker(c)
	scheduler := NewScheduler(cfg)

	go func() {
		if err := worker.Run(); err != nil {
			log.Fatal().Err(err).Msg("worker stopped unexpectedly")
		}
	}()
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Fatal().Err(err).Msg("scheduler stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	scheduler.Shutdown()
	worker.Shutdown()
	log.Info().Msg("worker exited")
}
