package validators

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var phoneRe = regexp.MustCompile(`^[\+\d][\d\s\-\(\)]{6,18}\d$`)

// NormalizePhone trims and validates a phone number, accepting formats
// like "+7 999 123-45-67" or "8(999)123-45-67". Returns "" when invalid.
func NormalizePhone(text string) string {
	cleaned := strings.TrimSpace(text)
	if phoneRe.MatchString(cleaned) {
		return cleaned
	}
	return ""
}

// ValidName checks a client display name (2 to 64 chars after trimming).
func ValidName(text string) (string, bool) {
	name := strings.TrimSpace(text)
	if len(name) >= 2 && len(name) <= 64 {
		return name, true
	}
	return "", false
}

// ValidTime checks "HH:MM" with a 24-hour clock.
func ValidTime(text string) bool {
	text = strings.TrimSpace(text)
	if len(text) != 5 || text[2] != ':' {
		return false
	}
	h, err1 := strconv.Atoi(text[:2])
	m, err2 := strconv.Atoi(text[3:])
	if err1 != nil || err2 != nil {
		return false
	}
	return h >= 0 && h <= 23 && m >= 0 && m <= 59
}

// ValidDate checks "YYYY-MM-DD".
func ValidDate(text string) bool {
	_, err := time.Parse("2006-01-02", strings.TrimSpace(text))
	return err == nil
}
