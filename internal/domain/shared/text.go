package shared

import (
	"net/mail"
	"strings"
)

// JoinNonEmpty joins the trimmed, non-empty parts with sep.
// Read models use it to build display strings from optional name parts.
func JoinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// RequireText trims value and returns a validation error for field when it is empty
// or longer than maxLen characters.
func RequireText(field, value string, maxLen int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", NewValidationError(field, field+" is required")
	}
	return OptionalText(field, value, maxLen)
}

// OptionalText trims value and returns a validation error when it exceeds maxLen characters
func OptionalText(field, value string, maxLen int) (string, error) {
	value = strings.TrimSpace(value)
	if maxLen > 0 && len([]rune(value)) > maxLen {
		return "", NewValidationError(field, field+" is too long")
	}
	return value, nil
}

// ValidEmail reports whether s is empty or a single RFC 5322 address
func ValidEmail(s string) bool {
	if s == "" {
		return true
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
