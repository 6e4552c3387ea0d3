package intake

import (
	"context"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kkmjpaibot/sgsh/internal/domain/conversation"
)

// Headers is the column order of the intake worksheet. The persistence
// collaborator writes rows in exactly this order.
var Headers = []string{
	"Name",
	"Date of Birth",
	"Age",
	"Life Stage",
	"Dependents",
	"Protection Level",
	"Monthly Budget",
	"Income",
	"Phone",
	"Email",
	"Timestamp",
	"Whatsapp",
	"Email_sent",
}

// timestampLayout matches the sheet's DD/MM/YYYY HH:MM:SS convention.
const timestampLayout = "02/01/2006 15:04:05"

// Record is one completed intake as handed to the persistence collaborator.
// EmailSent starts empty and is stamped only after a summary email goes out.
type Record struct {
	Name            string
	DateOfBirth     string
	Age             string
	LifeStage       string
	Dependents      string
	ProtectionLevel string
	MonthlyBudget   string
	Income          string
	Phone           string
	Email           string
	Timestamp       string
	WhatsApp        string
	EmailSent       string
}

// NewRecord shapes the accumulated conversation fields into a sheet row.
// Income is rendered as ringgit; the budget stays as its menu label.
func NewRecord(fields conversation.Fields, now time.Time) Record {
	income := fields[conversation.FieldIncome]
	if d, err := decimal.NewFromString(income); err == nil {
		income = conversation.FormatRM(d)
	}

	return Record{
		Name:            fields[conversation.FieldName],
		DateOfBirth:     fields[conversation.FieldDateOfBirth],
		Age:             fields[conversation.FieldAge],
		LifeStage:       fields[conversation.FieldLifeStage],
		Dependents:      fields[conversation.FieldDependents],
		ProtectionLevel: fields[conversation.FieldProtection],
		MonthlyBudget:   fields[conversation.FieldBudget],
		Income:          income,
		Phone:           fields[conversation.FieldPhone],
		Email:           fields[conversation.FieldEmail],
		Timestamp:       now.Format(timestampLayout),
		WhatsApp:        WhatsAppLink(fields[conversation.FieldPhone]),
		EmailSent:       "",
	}
}

// Row returns the record's cells in Headers order.
func (r Record) Row() []string {
	return []string{
		r.Name,
		r.DateOfBirth,
		r.Age,
		r.LifeStage,
		r.Dependents,
		r.ProtectionLevel,
		r.MonthlyBudget,
		r.Income,
		r.Phone,
		r.Email,
		r.Timestamp,
		r.WhatsApp,
		r.EmailSent,
	}
}

var nonDigits = regexp.MustCompile(`[^\d]`)

// WhatsAppLink derives the contact link stored alongside each row.
func WhatsAppLink(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}

// Recorder is the persistence collaborator: it appends one row to the
// durable store and, per its own policy, triggers the summary notification.
type Recorder interface {
	Save(ctx context.Context, rec Record) error
}

// Notifier is the notification collaborator consumed by the Recorder, never
// by the conversation flow directly.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
