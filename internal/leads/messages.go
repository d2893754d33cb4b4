package leads

import (
	"errors"
	"time"
)

// SuccessDismissAfter is how long the frontend should keep the success
// message on screen before hiding it.
const SuccessDismissAfter = 10 * time.Second

// User-facing messages shown in the form's status region. The set is fixed;
// underlying errors are logged, never shown verbatim.
const (
	MsgSuccess = "✅ Merci pour votre demande ! Nous vous recontacterons sous 24h pour échanger sur votre situation et planifier l'intervention."
	MsgFailure = "❌ Une erreur est survenue lors de l'envoi de votre demande. Veuillez réessayer ou nous contacter directement par téléphone."

	msgInvalidEmail  = "⚠️ Veuillez entrer une adresse email valide."
	msgInvalidPhone  = "⚠️ Veuillez entrer un numéro de téléphone valide (10 chiffres)."
	msgInvalidPostal = "⚠️ Veuillez entrer un code postal valide (5 chiffres)."
	msgConsent       = "⚠️ Vous devez accepter que vos données soient utilisées pour vous recontacter."
)

// UserMessage maps a validation error to its display message.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidEmail):
		return msgInvalidEmail
	case errors.Is(err, ErrInvalidPhone):
		return msgInvalidPhone
	case errors.Is(err, ErrInvalidPostalCode):
		return msgInvalidPostal
	case errors.Is(err, ErrConsentRequired):
		return msgConsent
	}
	return MsgFailure
}
