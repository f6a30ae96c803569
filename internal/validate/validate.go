package validate

import (
	"regexp"
	"strconv"
	"strings"
)

const minEmailLen = 4

var (
	reCategory = regexp.MustCompile(`^[A-Za-z0-9 _&'-]{1,50}$`)
	rePayment  = regexp.MustCompile(`^[A-Za-z0-9 _-]{1,30}$`)
)

// Email trims s and applies the signup rule: at least 4 characters,
// at most 254.
func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < minEmailLen || len(s) > 254 {
		return "", false
	}
	return s, true
}

// ID parses a positive numeric resource identifier (product ids).
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Category validates an optional category filter. Empty means no filter.
func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, reCategory.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 100 {
		return "", false
	}
	return s, true
}

// Address requires a non-blank address of at most 200 characters.
func Address(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 200 {
		return "", false
	}
	return s, true
}

// Payment requires a short payment method label such as "card".
func Payment(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePayment.MatchString(s)
}

// Contact allows digits, spaces and the usual phone punctuation.
func Contact(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 20 {
		return "", false
	}
	for _, r := range s {
		switch {
		case '0' <= r && r <= '9', r == ' ', r == '+', r == '-', r == '(', r == ')':
		default:
			return "", false
		}
	}
	return s, true
}
