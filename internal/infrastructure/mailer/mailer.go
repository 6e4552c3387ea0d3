// Package mailer sends the personalised summary email over SMTP.
package mailer

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"

	"github.com/kkmjpaibot/sgsh/internal/config"
	"github.com/kkmjpaibot/sgsh/internal/domain/intake"
	"github.com/kkmjpaibot/sgsh/internal/infrastructure/metrics"
)

// SummarySubject is the subject line of every summary email.
const SummarySubject = "Your Personalised Income Protection Summary"

// Mailer implements intake.Notifier over SMTP with STARTTLS. A benefits PDF
// is attached when the configured file exists on disk.
type Mailer struct {
	dialer         *gomail.Dialer
	from           string
	senderName     string
	attachmentPath string
	log            zerolog.Logger
}

var _ intake.Notifier = (*Mailer)(nil)

// New builds the SMTP mailer from config.
func New(cfg *config.Config, log zerolog.Logger) *Mailer {
	return &Mailer{
		dialer:         gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:           cfg.SMTPUsername,
		senderName:     cfg.SenderName,
		attachmentPath: cfg.AttachmentPath,
		log:            log.With().Str("component", "mailer").Logger(),
	}
}

// Send delivers one HTML email. The context is accepted for interface
// symmetry; gomail dials synchronously without cancellation.
func (m *Mailer) Send(_ context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.senderName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if m.attachmentPath != "" {
		if _, err := os.Stat(m.attachmentPath); err == nil {
			msg.Attach(m.attachmentPath)
		} else {
			m.log.Warn().Str("path", m.attachmentPath).Msg("attachment not found, sending without it")
		}
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		metrics.EmailsSentTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("send summary email: %w", err)
	}
	metrics.EmailsSentTotal.WithLabelValues("ok").Inc()
	m.log.Info().Str("to", to).Msg("summary email sent")
	return nil
}
