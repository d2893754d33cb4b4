package leads

import (
	"strings"
	"time"
)

// Submission is the record posted to the intake endpoint. The endpoint is an
// external spreadsheet-backed collector whose schema we do not control, so
// the JSON keys must stay exactly as it expects them.
type Submission struct {
	Profile      string `json:"profile"`
	LastName     string `json:"nom"`
	FirstName    string `json:"prenom"`
	Email        string `json:"email"`
	Phone        string `json:"telephone"`
	City         string `json:"ville"`
	PostalCode   string `json:"codePostal"`
	Message      string `json:"message"`
	Urgent       bool   `json:"urgence"`
	ConsentGiven bool   `json:"rgpd"`
	SubmittedAt  string `json:"dateSubmission"`
}

// Form holds the field values exactly as the visitor typed them. Fields are
// cleared only after the intake endpoint accepts the submission; on any
// failure they are left untouched so the visitor can correct and retry.
type Form struct {
	Profile      string
	LastName     string
	FirstName    string
	Email        string
	Phone        string
	City         string
	PostalCode   string
	Message      string
	Urgent       bool
	ConsentGiven bool
}

// Clear resets every field after an accepted submission.
func (f *Form) Clear() {
	*f = Form{}
}

// IsEmpty reports whether all fields are at their zero values.
func (f *Form) IsEmpty() bool {
	return *f == Form{}
}

const defaultProfile = "particulier"

// submission builds the outbound record from the current field values.
// SubmittedAt is set here, never by the visitor.
func (f *Form) submission(policy FieldPolicy, now time.Time) *Submission {
	profile := strings.TrimSpace(f.Profile)
	if profile == "" {
		profile = defaultProfile
	}
	lastName := f.LastName
	city := f.City
	if policy.RequireLastNameAndCity {
		// Legacy schema: the columns must be present even when the visible
		// form omits the fields, so blanks pass through as empty values.
		lastName = strings.TrimSpace(lastName)
		city = strings.TrimSpace(city)
	}
	return &Submission{
		Profile:      profile,
		LastName:     lastName,
		FirstName:    f.FirstName,
		Email:        strings.TrimSpace(f.Email),
		Phone:        NormalizePhone(f.Phone),
		City:         city,
		PostalCode:   strings.TrimSpace(f.PostalCode),
		Message:      f.Message,
		Urgent:       f.Urgent,
		ConsentGiven: f.ConsentGiven,
		SubmittedAt:  now.UTC().Format(time.RFC3339),
	}
}
