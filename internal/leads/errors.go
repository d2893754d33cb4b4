package leads

import "errors"

var (
	// ErrInvalidEmail is returned when the email is required or non-empty
	// and does not look like local@domain.tld
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidPhone is returned when the phone is not 10 digits after
	// whitespace is stripped
	ErrInvalidPhone = errors.New("phone must be 10 digits")

	// ErrInvalidPostalCode is returned when the policy requires a postal
	// code and it is not exactly 5 digits
	ErrInvalidPostalCode = errors.New("postal code must be 5 digits")

	// ErrConsentRequired is returned when the visitor has not ticked the
	// data-use consent box
	ErrConsentRequired = errors.New("consent is required")

	// ErrServerRejected is returned when the intake endpoint answered but
	// signaled that it did not record the submission
	ErrServerRejected = errors.New("intake endpoint rejected the submission")
)
