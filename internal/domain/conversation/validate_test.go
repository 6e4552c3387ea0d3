package conversation

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateOfBirth(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid date", "15/06/1990", false},
		{"valid leap day", "29/02/2000", false},
		{"impossible date", "31/02/1990", true},
		{"leap day on non-leap year", "29/02/1999", true},
		{"wrong separator", "15-06-1990", true},
		{"american order rejected by range", "06/15/1990", true},
		{"missing padding", "5/6/1990", true},
		{"empty", "", true},
		{"free text", "june fifteenth", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDateOfBirth(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDateOfBirth(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrBadFormat) {
				t.Errorf("ParseDateOfBirth(%q) error is not ErrBadFormat: %v", tt.input, err)
			}
		})
	}
}

func TestAgeAt(t *testing.T) {
	now := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{"birthday exactly today is not decremented", time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC), 35},
		{"birthday tomorrow", time.Date(1990, time.June, 16, 0, 0, 0, 0, time.UTC), 34},
		{"birthday yesterday", time.Date(1990, time.June, 14, 0, 0, 0, 0, time.UTC), 35},
		{"later month", time.Date(1990, time.December, 1, 0, 0, 0, 0, time.UTC), 34},
		{"earlier month", time.Date(1990, time.January, 31, 0, 0, 0, 0, time.UTC), 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AgeAt(tt.dob, now); got != tt.want {
				t.Errorf("AgeAt(%v) = %d, want %d", tt.dob, got, tt.want)
			}
		})
	}
}

func TestParseIncome(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"plain number", "60000", 60000, false},
		{"currency prefix and separators", "RM 60,000", 60000, false},
		{"dots and spaces discarded", " 1.234.567 ", 1234567, false},
		{"no digits", "not a number", 0, true},
		{"empty", "", 0, true},
		{"zero rejected", "RM 0", 0, true},
		{"all zeros rejected", "0,000", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIncome(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIncome(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseIncome(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"alice@example.com", true},
		{"first.last+tag@sub.domain.co", true},
		{"user%x@host.io", true},
		{"no-at-sign", false},
		{"missing@tld", false},
		{"one-letter-tld@host.c", false},
		{"@example.com", false},
		{"user@.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateEmail(tt.input)
			if (err == nil) != tt.valid {
				t.Errorf("ValidateEmail(%q) error = %v, want valid=%v", tt.input, err, tt.valid)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"0123456789", true},      // 01 + 8 digits
		{"012345678", true},       // 01 + 7 digits
		{"60123456789", true},     // 60 + 9 digits
		{"6012345678", true},      // 60 + 8 digits
		{"+60 12-345 6789", true}, // formatting stripped
		{"123", false},            // too short
		{"0223456789", false},     // wrong local prefix
		{"601234567890", false},   // too long
		{"01234567890", false},    // 01 + 9 digits
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidatePhone(tt.input)
			if (err == nil) != tt.valid {
				t.Errorf("ValidatePhone(%q) error = %v, want valid=%v", tt.input, err, tt.valid)
			}
		})
	}
}
