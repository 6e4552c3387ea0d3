package intake

import (
	"testing"
	"time"

	"github.com/kkmjpaibot/sgsh/internal/domain/conversation"
)

func sampleFields() conversation.Fields {
	return conversation.Fields{
		conversation.FieldName:        "Alice",
		conversation.FieldDateOfBirth: "15/06/1990",
		conversation.FieldAge:         "34",
		conversation.FieldLifeStage:   "Just married",
		conversation.FieldDependents:  "1-2 person",
		conversation.FieldProtection:  "Some personal coverage",
		conversation.FieldBudget:      "RM201 - RM500",
		conversation.FieldPhone:       "0123456789",
		conversation.FieldIncome:      "60000",
		conversation.FieldEmail:       "alice@example.com",
	}
}

func TestNewRecord(t *testing.T) {
	now := time.Date(2025, time.January, 15, 9, 30, 45, 0, time.UTC)
	rec := NewRecord(sampleFields(), now)

	if rec.Income != "RM 60,000.00" {
		t.Errorf("Income = %q, want formatted ringgit", rec.Income)
	}
	if rec.MonthlyBudget != "RM201 - RM500" {
		t.Errorf("MonthlyBudget = %q, want the menu label unchanged", rec.MonthlyBudget)
	}
	if rec.Timestamp != "15/01/2025 09:30:45" {
		t.Errorf("Timestamp = %q", rec.Timestamp)
	}
	if rec.WhatsApp != "https://wa.me/0123456789" {
		t.Errorf("WhatsApp = %q", rec.WhatsApp)
	}
	if rec.EmailSent != "" {
		t.Errorf("EmailSent = %q, want empty at append time", rec.EmailSent)
	}
}

func TestRecordRowMatchesHeaders(t *testing.T) {
	rec := NewRecord(sampleFields(), time.Now())
	row := rec.Row()

	if len(row) != len(Headers) {
		t.Fatalf("row has %d cells, headers have %d", len(row), len(Headers))
	}
	// Spot-check the column alignment at both ends and around the middle.
	if row[0] != rec.Name {
		t.Errorf("column 0 = %q, want name", row[0])
	}
	if row[7] != rec.Income {
		t.Errorf("column 7 = %q, want income", row[7])
	}
	if row[12] != rec.EmailSent {
		t.Errorf("column 12 = %q, want email_sent", row[12])
	}
}

func TestWhatsAppLink(t *testing.T) {
	tests := []struct {
		phone string
		want  string
	}{
		{"0123456789", "https://wa.me/0123456789"},
		{"+60 12-345 6789", "https://wa.me/60123456789"},
		{"", ""},
		{"no digits", ""},
	}
	for _, tt := range tests {
		if got := WhatsAppLink(tt.phone); got != tt.want {
			t.Errorf("WhatsAppLink(%q) = %q, want %q", tt.phone, got, tt.want)
		}
	}
}

func TestNewRecordWithNonNumericIncome(t *testing.T) {
	fields := sampleFields()
	fields[conversation.FieldIncome] = ""
	rec := NewRecord(fields, time.Now())
	if rec.Income != "" {
		t.Errorf("Income = %q, want empty passthrough", rec.Income)
	}
}
