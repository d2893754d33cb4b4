package leads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diagnostichumidite/lead-relay/internal/observability/metrics"
	"github.com/diagnostichumidite/lead-relay/pkg/logging"
)

// Outcome classifies one submission attempt.
type Outcome int

const (
	// OutcomeAccepted means the intake endpoint took the submission; the
	// form fields were cleared.
	OutcomeAccepted Outcome = iota
	// OutcomeRejectedByValidation means a field failed its rule before any
	// network call was made.
	OutcomeRejectedByValidation
	// OutcomeRejectedByServer means the transport succeeded but the intake
	// endpoint signaled failure.
	OutcomeRejectedByServer
	// OutcomeNetworkFailure means the request could not complete.
	OutcomeNetworkFailure
	// OutcomeDropped means a submission for the same key was already in
	// flight, so this trigger was ignored.
	OutcomeDropped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejectedByValidation:
		return "rejected_validation"
	case OutcomeRejectedByServer:
		return "rejected_server"
	case OutcomeNetworkFailure:
		return "network_failure"
	case OutcomeDropped:
		return "dropped"
	}
	return "unknown"
}

// Result is what one submission attempt produced. Message is the user-facing
// text; Err carries the underlying cause for diagnostics and is never shown
// to the visitor.
type Result struct {
	Outcome Outcome
	Message string
	Err     error
}

// WorkflowConfig wires a submission workflow.
type WorkflowConfig struct {
	Policy FieldPolicy
	Sender Sender
	Guard  Guard
	Logger *logging.Logger
	// Metrics may be nil.
	Metrics *metrics.LeadMetrics
	// Clock defaults to time.Now; tests pin it.
	Clock func() time.Time
	// OnAccepted runs after a submission is accepted. Its failures never
	// change the outcome.
	OnAccepted func(ctx context.Context, sub *Submission)
}

// Workflow turns a submit trigger into exactly one validated, at-most-one-
// in-flight intake request and reports the outcome deterministically.
type Workflow struct {
	policy     FieldPolicy
	sender     Sender
	guard      Guard
	logger     *logging.Logger
	metrics    *metrics.LeadMetrics
	clock      func() time.Time
	onAccepted func(ctx context.Context, sub *Submission)
}

// NewWorkflow creates a workflow.
func NewWorkflow(cfg WorkflowConfig) (*Workflow, error) {
	if cfg.Sender == nil {
		return nil, errors.New("leads: workflow sender is required")
	}
	if _, err := ParseResponseMode(string(cfg.Policy.ResponseMode)); err != nil {
		return nil, err
	}
	if cfg.Policy.ResponseMode == "" {
		cfg.Policy.ResponseMode = ResponseModeChecked
	}
	guard := cfg.Guard
	if guard == nil {
		guard = NewMemoryGuard()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Workflow{
		policy:     cfg.Policy,
		sender:     cfg.Sender,
		guard:      guard,
		logger:     logger,
		metrics:    cfg.Metrics,
		clock:      clock,
		onAccepted: cfg.OnAccepted,
	}, nil
}

// Policy returns the active field policy.
func (w *Workflow) Policy() FieldPolicy {
	return w.policy
}

// Submit runs one attempt: guard, validation, dispatch, outcome. The guard
// key identifies the form; when empty, the normalized phone stands in. The
// form is cleared only on acceptance and left as typed otherwise. The guard
// is released on every exit path, including panics, which surface as a
// network-failure outcome.
func (w *Workflow) Submit(ctx context.Context, key string, form *Form) (res Result) {
	if key == "" {
		key = NormalizePhone(form.Phone)
	}
	acquired, err := w.guard.TryAcquire(ctx, key)
	if err != nil {
		// A broken guard backend must not take lead capture down with it;
		// proceed unguarded and leave a trace.
		w.logger.Warn("in-flight guard unavailable, proceeding", "error", err, "key", key)
	} else if !acquired {
		w.logger.Info("submission dropped, already in flight", "key", key)
		w.observe(OutcomeDropped)
		return Result{Outcome: OutcomeDropped}
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("leads: submission panic: %v", r)
			w.logger.Error("submission panicked", "error", err, "key", key)
			res = Result{Outcome: OutcomeNetworkFailure, Message: MsgFailure, Err: err}
			w.observe(OutcomeNetworkFailure)
		}
		if !acquired && err != nil {
			return
		}
		if relErr := w.guard.Release(ctx, key); relErr != nil {
			w.logger.Warn("in-flight guard release failed", "error", relErr, "key", key)
		}
	}()

	w.logger.Debug("submission state", "state", "validating", "key", key)
	if verr := w.policy.Validate(form); verr != nil {
		w.logger.Info("submission rejected by validation", "reason", verr.Error(), "key", key)
		w.observe(OutcomeRejectedByValidation)
		return Result{Outcome: OutcomeRejectedByValidation, Message: UserMessage(verr), Err: verr}
	}

	sub := form.submission(w.policy, w.clock())

	w.logger.Debug("submission state", "state", "submitting", "key", key)
	start := w.clock()
	serr := w.sender.Send(ctx, sub, w.policy.ResponseMode)
	if w.metrics != nil {
		w.metrics.ObserveIntakeLatency(string(w.policy.ResponseMode), time.Since(start).Seconds())
	}
	if serr != nil {
		outcome := OutcomeNetworkFailure
		if errors.Is(serr, ErrServerRejected) {
			outcome = OutcomeRejectedByServer
		}
		w.logger.Error("submission failed", "outcome", outcome.String(), "error", serr, "key", key)
		w.observe(outcome)
		return Result{Outcome: outcome, Message: MsgFailure, Err: serr}
	}

	form.Clear()
	w.logger.Info("submission accepted",
		"key", key,
		"urgent", sub.Urgent,
		"postal_code", sub.PostalCode,
	)
	w.observe(OutcomeAccepted)
	if w.onAccepted != nil {
		w.onAccepted(ctx, sub)
	}
	return Result{Outcome: OutcomeAccepted, Message: MsgSuccess}
}

func (w *Workflow) observe(o Outcome) {
	if w.metrics != nil {
		w.metrics.ObserveSubmission(o.String())
	}
}
