// Package sheets persists completed intakes as rows of a Google Sheets
// worksheet through the Sheets REST API, and triggers the summary email
// after a successful append.
package sheets

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"

	"github.com/kkmjpaibot/sgsh/internal/config"
	"github.com/kkmjpaibot/sgsh/internal/domain/intake"
	"github.com/kkmjpaibot/sgsh/internal/infrastructure/mailer"
	"github.com/kkmjpaibot/sgsh/internal/infrastructure/metrics"
)

const (
	baseURL          = "https://sheets.googleapis.com/v4/spreadsheets"
	spreadsheetScope = "https://www.googleapis.com/auth/spreadsheets"

	timestampLayout = "02/01/2006 15:04:05"
)

// emailSentColumn is the A1 column letter of the Email_sent marker, the last
// of the thirteen intake columns.
const emailSentColumn = "M"

// Client appends intake rows and stamps the Email_sent column. It implements
// intake.Recorder.
type Client struct {
	http          *resty.Client
	spreadsheetID string
	worksheet     string

	notifier        intake.Notifier
	advisorWhatsApp string
	senderName      string

	log zerolog.Logger

	headerMu    sync.Mutex
	headerReady bool
}

var _ intake.Recorder = (*Client)(nil)

// New builds a Sheets client authenticated with the configured service
// account. notifier may be nil to disable the post-append email.
func New(cfg *config.Config, notifier intake.Notifier, log zerolog.Logger) (*Client, error) {
	creds, err := os.ReadFile(cfg.SheetsCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read service account credentials: %w", err)
	}

	jwtCfg, err := google.JWTConfigFromJSON(creds, spreadsheetScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}
	source := jwtCfg.TokenSource(context.Background())

	http := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", "SGSH-Intake/1.0")
	http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		token, err := source.Token()
		if err != nil {
			return fmt.Errorf("fetch sheets token: %w", err)
		}
		req.SetAuthToken(token.AccessToken)
		return nil
	})

	return newClient(http, cfg, notifier, log), nil
}

func newClient(http *resty.Client, cfg *config.Config, notifier intake.Notifier, log zerolog.Logger) *Client {
	return &Client{
		http:            http,
		spreadsheetID:   cfg.SheetsSpreadsheetID,
		worksheet:       cfg.SheetsWorksheet,
		notifier:        notifier,
		advisorWhatsApp: cfg.AdvisorWhatsApp,
		senderName:      cfg.SenderName,
		log:             log.With().Str("component", "sheets-client").Logger(),
	}
}

type valueRange struct {
	Range  string     `json:"range,omitempty"`
	Values [][]string `json:"values"`
}

type appendResponse struct {
	Updates struct {
		UpdatedRange string `json:"updatedRange"`
	} `json:"updates"`
}

// Save appends one row and, when the record carries an email address, sends
// the summary email and stamps Email_sent. Email failures are logged and do
// not fail the save; the caller already treats the row as persisted.
func (c *Client) Save(ctx context.Context, rec intake.Record) error {
	if err := c.ensureHeaders(ctx); err != nil {
		metrics.RecordsSavedTotal.WithLabelValues("error").Inc()
		return err
	}

	row, err := c.appendRow(ctx, rec.Row())
	if err != nil {
		metrics.RecordsSavedTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.RecordsSavedTotal.WithLabelValues("ok").Inc()
	c.log.Info().Int("row", row).Str("name", rec.Name).Msg("intake row appended")

	if rec.Email == "" || c.notifier == nil {
		return nil
	}

	html, err := mailer.BuildSummaryHTML(rec, c.advisorWhatsApp, c.senderName)
	if err != nil {
		c.log.Error().Err(err).Str("email", rec.Email).Msg("render summary email")
		return nil
	}
	if err := c.notifier.Send(ctx, rec.Email, mailer.SummarySubject, html); err != nil {
		c.log.Error().Err(err).Str("email", rec.Email).Msg("send summary email")
		return nil
	}
	if err := c.StampEmailSent(ctx, row); err != nil {
		c.log.Error().Err(err).Int("row", row).Msg("stamp Email_sent")
	}
	return nil
}

// ensureHeaders writes the header row once per process if the worksheet is
// still empty.
func (c *Client) ensureHeaders(ctx context.Context) error {
	c.headerMu.Lock()
	defer c.headerMu.Unlock()
	if c.headerReady {
		return nil
	}

	started := time.Now()
	var existing valueRange
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&existing).
		Get(fmt.Sprintf("/%s/values/%s!A1:%s1", c.spreadsheetID, c.worksheet, emailSentColumn))
	metrics.SheetsDuration.WithLabelValues("read_headers").Observe(time.Since(started).Seconds())
	if err != nil {
		return fmt.Errorf("read worksheet headers: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("read worksheet headers (status %d): %s", resp.StatusCode(), resp.String())
	}

	if len(existing.Values) == 0 {
		if _, err := c.appendRow(ctx, intake.Headers); err != nil {
			return fmt.Errorf("write worksheet headers: %w", err)
		}
	}
	c.headerReady = true
	return nil
}

// appendRow appends one row and returns its 1-based row index.
func (c *Client) appendRow(ctx context.Context, cells []string) (int, error) {
	started := time.Now()
	var result appendResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"valueInputOption": "USER_ENTERED",
			"insertDataOption": "INSERT_ROWS",
		}).
		SetBody(valueRange{Values: [][]string{cells}}).
		SetResult(&result).
		Post(fmt.Sprintf("/%s/values/%s:append", c.spreadsheetID, c.worksheet))
	metrics.SheetsDuration.WithLabelValues("append").Observe(time.Since(started).Seconds())
	if err != nil {
		return 0, fmt.Errorf("append sheet row: %w", err)
	}
	if resp.IsError() {
		return 0, fmt.Errorf("append sheet row (status %d): %s", resp.StatusCode(), resp.String())
	}
	return rowFromRange(result.Updates.UpdatedRange)
}

// StampEmailSent writes the current timestamp into the Email_sent cell of
// the given row.
func (c *Client) StampEmailSent(ctx context.Context, row int) error {
	started := time.Now()
	cell := fmt.Sprintf("%s!%s%d", c.worksheet, emailSentColumn, row)
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("valueInputOption", "USER_ENTERED").
		SetBody(valueRange{Values: [][]string{{time.Now().Format(timestampLayout)}}}).
		Put(fmt.Sprintf("/%s/values/%s", c.spreadsheetID, cell))
	metrics.SheetsDuration.WithLabelValues("update").Observe(time.Since(started).Seconds())
	if err != nil {
		return fmt.Errorf("update %s: %w", cell, err)
	}
	if resp.IsError() {
		return fmt.Errorf("update %s (status %d): %s", cell, resp.StatusCode(), resp.String())
	}
	return nil
}

// PendingRow is a persisted intake whose summary email has not gone out yet.
type PendingRow struct {
	Row    int
	Record intake.Record
}

// ListPending returns rows that carry an email address but no Email_sent
// marker. Used by the operational resend command.
func (c *Client) ListPending(ctx context.Context) ([]PendingRow, error) {
	started := time.Now()
	var data valueRange
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&data).
		Get(fmt.Sprintf("/%s/values/%s!A2:%s", c.spreadsheetID, c.worksheet, emailSentColumn))
	metrics.SheetsDuration.WithLabelValues("list").Observe(time.Since(started).Seconds())
	if err != nil {
		return nil, fmt.Errorf("list sheet rows: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list sheet rows (status %d): %s", resp.StatusCode(), resp.String())
	}

	var pending []PendingRow
	for i, cells := range data.Values {
		rec := recordFromRow(cells)
		if rec.Email == "" || rec.EmailSent != "" {
			continue
		}
		pending = append(pending, PendingRow{Row: i + 2, Record: rec})
	}
	return pending, nil
}

func recordFromRow(cells []string) intake.Record {
	get := func(i int) string {
		if i < len(cells) {
			return cells[i]
		}
		return ""
	}
	return intake.Record{
		Name:            get(0),
		DateOfBirth:     get(1),
		Age:             get(2),
		LifeStage:       get(3),
		Dependents:      get(4),
		ProtectionLevel: get(5),
		MonthlyBudget:   get(6),
		Income:          get(7),
		Phone:           get(8),
		Email:           get(9),
		Timestamp:       get(10),
		WhatsApp:        get(11),
		EmailSent:       get(12),
	}
}

var trailingRowPattern = regexp.MustCompile(`[A-Z]+(\d+)$`)

// rowFromRange extracts the row index from an A1 range such as
// "Campaign1!A5:M5".
func rowFromRange(a1 string) (int, error) {
	m := trailingRowPattern.FindStringSubmatch(a1)
	if m == nil {
		return 0, fmt.Errorf("cannot locate row in range %q", a1)
	}
	return strconv.Atoi(m[1])
}
