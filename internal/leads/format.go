package leads

import (
	"strings"
	"unicode"
)

// NormalizePhone strips all whitespace from a phone number. Validation and
// the outbound record always use the normalized value, never the display
// formatting.
func NormalizePhone(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// FormatPhone renders a phone number for display: non-digits dropped, input
// truncated at 10 digits, digits grouped in pairs separated by single
// spaces ("0123456789" becomes "01 23 45 67 89").
func FormatPhone(s string) string {
	var digits []rune
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
			if len(digits) == 10 {
				break
			}
		}
	}
	if len(digits) == 0 {
		return ""
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%2 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
