package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the intake service.
type Config struct {
	// Service Configuration
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"sgsh-intake"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"SGSH_PORT" envDefault:"8380"`
	LogLevel        string        `env:"SGSH_LOG_LEVEL" envDefault:"info"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Conversation
	ResetKeyword      string `env:"SGSH_RESET_KEYWORD" envDefault:"restart"`
	SessionCookieName string `env:"SGSH_SESSION_COOKIE" envDefault:"sgsh_session"`
	StaticDir         string `env:"SGSH_STATIC_DIR" envDefault:"./web/static"`

	// Google Sheets persistence
	SheetsEnabled         bool   `env:"SHEETS_ENABLED" envDefault:"true"`
	SheetsSpreadsheetID   string `env:"SHEETS_SPREADSHEET_ID"`
	SheetsWorksheet       string `env:"SHEETS_WORKSHEET" envDefault:"Campaign1"`
	SheetsCredentialsFile string `env:"SHEETS_CREDENTIALS_FILE" envDefault:"ServiceAccount.json"`

	// SMTP notification
	SMTPEnabled    bool   `env:"SMTP_ENABLED" envDefault:"true"`
	SMTPHost       string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort       int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername   string `env:"SMTP_USERNAME"`
	SMTPPassword   string `env:"SMTP_PASSWORD"`
	SenderName     string `env:"MAIL_SENDER_NAME" envDefault:"Erica – Income Protection Advisor"`
	AttachmentPath string `env:"MAIL_ATTACHMENT_PATH" envDefault:"Benefits.pdf"`

	// Fixed advisor contact shown in the summary email CTA.
	AdvisorWhatsApp string `env:"ADVISOR_WHATSAPP" envDefault:"+60168357258"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.ResetKeyword = strings.TrimSpace(cfg.ResetKeyword)
	if cfg.ResetKeyword == "" {
		return nil, fmt.Errorf("SGSH_RESET_KEYWORD must not be empty")
	}
	if cfg.SheetsEnabled && strings.TrimSpace(cfg.SheetsSpreadsheetID) == "" {
		return nil, fmt.Errorf("SHEETS_SPREADSHEET_ID is required when SHEETS_ENABLED is true")
	}
	if cfg.SMTPEnabled {
		if strings.TrimSpace(cfg.SMTPUsername) == "" || strings.TrimSpace(cfg.SMTPPassword) == "" {
			return nil, fmt.Errorf("SMTP_USERNAME and SMTP_PASSWORD are required when SMTP_ENABLED is true")
		}
	}
	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
