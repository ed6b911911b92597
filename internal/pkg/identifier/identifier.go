// Package identifier classifies login handles as emails or phone numbers
// and canonicalizes Turkish mobile numbers. Every function here is pure:
// no I/O, deterministic, never panics on any input.
package identifier

import (
	"regexp"
	"strings"
)

// Kind discriminates the two identifier shapes accepted as login handles.
type Kind int

const (
	KindPhone Kind = iota
	KindEmail
)

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// Turkish mobile: +905XXXXXXXXX, 05XXXXXXXXX or 5XXXXXXXXX.
	phoneRe    = regexp.MustCompile(`^(\+90|0)?5[0-9]{9}$`)
	nonDigitRe = regexp.MustCompile(`\D`)
)

// Classify decides whether s is an email or a phone number and returns the
// canonical form used for storage and lookup. Anything that does not look
// like an email is treated as a phone number.
func Classify(s string) (Kind, string) {
	s = strings.TrimSpace(s)
	if emailRe.MatchString(s) {
		return KindEmail, strings.ToLower(s)
	}
	return KindPhone, NormalizePhone(s)
}

// IsValidEmail reports whether s has an RFC-ish email shape.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// IsValidPhone reports whether s is a recognizable Turkish mobile number.
func IsValidPhone(s string) bool {
	return phoneRe.MatchString(strings.TrimSpace(s))
}

// NormalizePhone canonicalizes a Turkish mobile number to +90XXXXXXXXXX.
// Unrecognized shapes pass through unchanged so lookups over legacy rows
// stay total; callers that need strictness validate with IsValidPhone first.
// Idempotent: normalizing an already-canonical number is a no-op.
func NormalizePhone(s string) string {
	digits := nonDigitRe.ReplaceAllString(s, "")
	switch {
	case strings.HasPrefix(digits, "90") && len(digits) == 12:
		return "+" + digits
	case strings.HasPrefix(digits, "05") && len(digits) == 11:
		return "+90" + digits[1:]
	case strings.HasPrefix(digits, "5") && len(digits) == 10:
		return "+90" + digits
	default:
		return s
	}
}
