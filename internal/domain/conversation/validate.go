package conversation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrBadFormat marks user input rejected by a validator. It is always
// recovered inside the flow by re-prompting; it never reaches the transport.
var ErrBadFormat = errors.New("input does not match the expected format")

var (
	nonDigitPattern = regexp.MustCompile(`[^\d]`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern    = regexp.MustCompile(`^(60\d{8,9}|01\d{7,8})$`)
)

const dobLayout = "02/01/2006"

// ParseDateOfBirth accepts DD/MM/YYYY only. time.Parse also rejects
// impossible calendar dates such as 31/02.
func ParseDateOfBirth(raw string) (time.Time, error) {
	dob, err := time.Parse(dobLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date of birth must be DD/MM/YYYY", ErrBadFormat)
	}
	return dob, nil
}

// AgeAt computes age in whole years at now. The birthday check compares the
// (month, day) pair lexicographically; a birthday falling exactly on now's
// date is counted as already reached.
func AgeAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// ParseIncome strips every non-digit rune and parses the remainder, so
// "RM 60,000" and "60000" are equivalent. Zero and negative amounts are
// rejected along with empty remainders.
func ParseIncome(raw string) (int64, error) {
	cleaned := nonDigitPattern.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0, fmt.Errorf("%w: income must contain digits", ErrBadFormat)
	}
	amount, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: income is not a number", ErrBadFormat)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: income must be positive", ErrBadFormat)
	}
	return amount, nil
}

// ValidateEmail checks the local-part@domain.tld shape with no further
// normalization.
func ValidateEmail(raw string) error {
	if !emailPattern.MatchString(raw) {
		return fmt.Errorf("%w: invalid email address", ErrBadFormat)
	}
	return nil
}

// ValidatePhone strips non-digits and accepts Malaysian numbers only:
// 60 followed by 8-9 digits, or 01 followed by 7-8 digits.
func ValidatePhone(raw string) error {
	digits := nonDigitPattern.ReplaceAllString(raw, "")
	if !phonePattern.MatchString(digits) {
		return fmt.Errorf("%w: invalid Malaysian phone number", ErrBadFormat)
	}
	return nil
}

// pickOption validates a menu answer against a stage's fixed option set and
// returns the option label.
func pickOption(options map[string]string, raw string) (string, error) {
	label, ok := options[raw]
	if !ok {
		return "", fmt.Errorf("%w: not one of the listed options", ErrBadFormat)
	}
	return label, nil
}
