package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kkmjpaibot/sgsh/internal/config"
	"github.com/kkmjpaibot/sgsh/internal/infrastructure/logger"
	"github.com/kkmjpaibot/sgsh/internal/infrastructure/mailer"
	"github.com/kkmjpaibot/sgsh/internal/infrastructure/sheets"
)

var emailsCmd = &cobra.Command{
	Use:   "emails",
	Short: "Summary email operations",
}

var dryRun bool

var sendPendingCmd = &cobra.Command{
	Use:   "send-pending",
	Short: "Send summary emails for rows whose Email_sent marker is empty",
	RunE:  runSendPending,
}

func init() {
	sendPendingCmd.Flags().BoolVar(&dryRun, "dry-run", false, "List pending rows without sending")
	emailsCmd.AddCommand(sendPendingCmd)
}

func runSendPending(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Overload(".env")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg)

	notifier := mailer.New(cfg, log)
	client, err := sheets.New(cfg, notifier, log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pending, err := client.ListPending(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println("No pending summary emails.")
		return nil
	}

	for _, p := range pending {
		if dryRun {
			fmt.Printf("row %d: %s <%s>\n", p.Row, p.Record.Name, p.Record.Email)
			continue
		}

		html, err := mailer.BuildSummaryHTML(p.Record, cfg.AdvisorWhatsApp, cfg.SenderName)
		if err != nil {
			log.Error().Err(err).Int("row", p.Row).Msg("render summary email")
			continue
		}
		if err := notifier.Send(ctx, p.Record.Email, mailer.SummarySubject, html); err != nil {
			log.Error().Err(err).Int("row", p.Row).Str("email", p.Record.Email).Msg("send pending email")
			continue
		}
		if err := client.StampEmailSent(ctx, p.Row); err != nil {
			log.Error().Err(err).Int("row", p.Row).Msg("stamp Email_sent")
			continue
		}
		fmt.Printf("row %d: sent to %s\n", p.Row, p.Record.Email)
	}
	return nil
}
