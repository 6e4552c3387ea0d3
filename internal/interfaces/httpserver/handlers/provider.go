package handlers

import (
	"github.com/rs/zerolog"

	"github.com/kkmjpaibot/sgsh/internal/config"
	"github.com/kkmjpaibot/sgsh/internal/domain/intake"
)

// Provider wires HTTP handlers.
type Provider struct {
	Chat *ChatHandler
}

func NewProvider(cfg *config.Config, service *intake.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Chat: NewChatHandler(cfg, service, log),
	}
}
