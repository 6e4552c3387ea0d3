//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/kkmjpaibot/sgsh/internal/config"
	"github.com/kkmjpaibot/sgsh/internal/domain/conversation"
	"github.com/kkmjpaibot/sgsh/internal/domain/intake"
	"github.com/kkmjpaibot/sgsh/internal/infrastructure/logger"
	"github.com/kkmjpaibot/sgsh/internal/infrastructure/mailer"
	"github.com/kkmjpaibot/sgsh/internal/infrastructure/sessionstore"
	"github.com/kkmjpaibot/sgsh/internal/infrastructure/sheets"
	"github.com/kkmjpaibot/sgsh/internal/interfaces/httpserver"
)

var intakeSet = wire.NewSet(
	sessionstore.New,
	wire.Bind(new(conversation.Registry), new(*sessionstore.Store)),
	mailer.New,
	wire.Bind(new(intake.Notifier), new(*mailer.Mailer)),
	sheets.New,
	wire.Bind(new(intake.Recorder), new(*sheets.Client)),
	provideIntakeService,
)

// BuildApplication assembles the intake service with Wire.
func BuildApplication() (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		intakeSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func provideIntakeService(cfg *config.Config, registry conversation.Registry, recorder intake.Recorder, log zerolog.Logger) *intake.Service {
	return intake.NewService(registry, recorder, cfg.ResetKeyword, log)
}
