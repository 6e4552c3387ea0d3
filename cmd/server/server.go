package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/kkmjpaibot/sgsh/internal/config"
	"github.com/kkmjpaibot/sgsh/internal/domain/intake"
	"github.com/kkmjpaibot/sgsh/internal/infrastructure/logger"
	"github.com/kkmjpaibot/sgsh/internal/infrastructure/mailer"
	"github.com/kkmjpaibot/sgsh/internal/infrastructure/observability"
	"github.com/kkmjpaibot/sgsh/internal/infrastructure/sessionstore"
	"github.com/kkmjpaibot/sgsh/internal/infrastructure/sheets"
	"github.com/kkmjpaibot/sgsh/internal/interfaces/httpserver"
)

// Application bundles the long-running pieces of the intake service.
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	var recorder intake.Recorder
	if cfg.SheetsEnabled {
		var notifier intake.Notifier
		if cfg.SMTPEnabled {
			notifier = mailer.New(cfg, log)
		}
		sheetsClient, err := sheets.New(cfg, notifier, log)
		if err != nil {
			log.Fatal().Err(err).Msg("initialize sheets client")
		}
		recorder = sheetsClient
	} else {
		log.Warn().Msg("sheets persistence disabled, completed intakes will not be stored")
	}

	registry := sessionstore.New(log)
	service := intake.NewService(registry, recorder, cfg.ResetKeyword, log)

	httpServer := httpserver.New(cfg, log, service)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
