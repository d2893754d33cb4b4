package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/diagnostichumidite/lead-relay/internal/leads"
	"github.com/diagnostichumidite/lead-relay/internal/observability/metrics"
	"github.com/diagnostichumidite/lead-relay/pkg/logging"
)

// Service emails the site owner a summary of each accepted lead. Delivery
// problems are logged, never surfaced to the visitor: the lead is already
// recorded by the intake endpoint at that point.
type Service struct {
	email   EmailSender
	to      string
	toName  string
	metrics *metrics.LeadMetrics
	logger  *logging.Logger
}

// NewService creates a lead notification service. Returns nil when no
// recipient is configured, which callers treat as notifications disabled.
func NewService(email EmailSender, to, toName string, m *metrics.LeadMetrics, logger *logging.Logger) *Service {
	if email == nil || strings.TrimSpace(to) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:   email,
		to:      strings.TrimSpace(to),
		toName:  strings.TrimSpace(toName),
		metrics: m,
		logger:  logger,
	}
}

// LeadAccepted sends the owner a summary of an accepted submission.
func (s *Service) LeadAccepted(ctx context.Context, sub *leads.Submission) {
	if s == nil {
		return
	}
	msg := EmailMessage{
		To:      s.to,
		ToName:  s.toName,
		Subject: subjectFor(sub),
		Body:    bodyFor(sub),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("lead notification failed", "error", err, "to", s.to)
		s.metrics.ObserveNotify("failed")
		return
	}
	s.metrics.ObserveNotify("sent")
}

func subjectFor(sub *leads.Submission) string {
	subject := "Nouvelle demande de diagnostic"
	if name := strings.TrimSpace(sub.FirstName + " " + sub.LastName); name != "" {
		subject += " — " + name
	}
	if sub.PostalCode != "" {
		subject += " (" + sub.PostalCode + ")"
	}
	if sub.Urgent {
		subject = "[URGENT] " + subject
	}
	return subject
}

func bodyFor(sub *leads.Submission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Profil : %s\n", sub.Profile)
	fmt.Fprintf(&b, "Nom : %s %s\n", sub.FirstName, sub.LastName)
	fmt.Fprintf(&b, "Téléphone : %s\n", leads.FormatPhone(sub.Phone))
	if sub.Email != "" {
		fmt.Fprintf(&b, "Email : %s\n", sub.Email)
	}
	if sub.City != "" || sub.PostalCode != "" {
		fmt.Fprintf(&b, "Ville : %s %s\n", strings.TrimSpace(sub.City), sub.PostalCode)
	}
	if sub.Urgent {
		b.WriteString("Demande urgente : oui\n")
	}
	if sub.Message != "" {
		fmt.Fprintf(&b, "\nMessage :\n%s\n", sub.Message)
	}
	fmt.Fprintf(&b, "\nReçue le %s\n", sub.SubmittedAt)
	return b.String()
}
