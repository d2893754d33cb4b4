package leads

import (
	"fmt"
	"regexp"
	"strings"
)

// ResponseMode selects how the intake endpoint's response is interpreted.
type ResponseMode string

const (
	// ResponseModeChecked only treats a submission as accepted when the
	// endpoint answers with a success status and a success body.
	ResponseModeChecked ResponseMode = "checked"

	// ResponseModeFireAndForget treats any dispatch that does not fail at
	// the transport level as accepted; the response is never read.
	ResponseModeFireAndForget ResponseMode = "fire-and-forget"
)

// ParseResponseMode parses a configured mode string.
func ParseResponseMode(s string) (ResponseMode, error) {
	switch ResponseMode(strings.ToLower(strings.TrimSpace(s))) {
	case ResponseModeChecked, ResponseMode(""):
		return ResponseModeChecked, nil
	case ResponseModeFireAndForget:
		return ResponseModeFireAndForget, nil
	}
	return "", fmt.Errorf("leads: unknown response mode %q", s)
}

// FieldPolicy configures which fields are mandatory and how the intake
// response is interpreted. Two presets exist, matching the two generations
// of the contact form that fed the same spreadsheet.
type FieldPolicy struct {
	RequireEmail           bool
	RequirePostalCode      bool
	RequireLastNameAndCity bool
	ResponseMode           ResponseMode
}

// CurrentPolicy matches the form shipped on the live site: email mandatory,
// postal code free-form, response body checked for an explicit success flag.
func CurrentPolicy() FieldPolicy {
	return FieldPolicy{
		RequireEmail: true,
		ResponseMode: ResponseModeChecked,
	}
}

// LegacyPolicy matches the first form generation: email optional, postal
// code mandatory, last name and city expected by the sheet schema even when
// blank, and the dispatch never inspected the response.
func LegacyPolicy() FieldPolicy {
	return FieldPolicy{
		RequirePostalCode:      true,
		RequireLastNameAndCity: true,
		ResponseMode:           ResponseModeFireAndForget,
	}
}

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern  = regexp.MustCompile(`^[0-9]{10}$`)
	postalPattern = regexp.MustCompile(`^[0-9]{5}$`)
)

// Validate runs the validation sequence against the form, short-circuiting
// on the first failure: email, phone, postal code, consent.
func (p FieldPolicy) Validate(f *Form) error {
	email := strings.TrimSpace(f.Email)
	if p.RequireEmail || email != "" {
		if !emailPattern.MatchString(email) {
			return ErrInvalidEmail
		}
	}
	if !phonePattern.MatchString(NormalizePhone(f.Phone)) {
		return ErrInvalidPhone
	}
	if p.RequirePostalCode && !postalPattern.MatchString(strings.TrimSpace(f.PostalCode)) {
		return ErrInvalidPostalCode
	}
	if !f.ConsentGiven {
		return ErrConsentRequired
	}
	return nil
}
