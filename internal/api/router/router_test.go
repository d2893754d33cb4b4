package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diagnostichumidite/lead-relay/internal/leads"
	"github.com/diagnostichumidite/lead-relay/pkg/logging"
)

type stubSender struct {
	calls int
}

func (s *stubSender) Send(ctx context.Context, sub *leads.Submission, mode leads.ResponseMode) error {
	s.calls++
	return nil
}

func newTestRouter(t *testing.T, sender leads.Sender) http.Handler {
	t.Helper()

	logger := logging.Default()
	workflow, err := leads.NewWorkflow(leads.WorkflowConfig{
		Policy: leads.CurrentPolicy(),
		Sender: sender,
		Logger: logger,
	})
	if err != nil {
		t.Fatalf("failed to build workflow: %v", err)
	}

	cfg := &Config{
		Logger:       logger,
		LeadsHandler: leads.NewHandler(workflow, logger),
	}

	return New(cfg)
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubSender{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", resp["status"])
	}
}

func TestRouterSubmitEndpoint(t *testing.T) {
	sender := &stubSender{}
	router := newTestRouter(t, sender)

	payload := leads.SubmitRequest{
		FirstName:    "Jean",
		Email:        "jean@example.fr",
		Phone:        "06 12 34 56 78",
		PostalCode:   "94000",
		ConsentGiven: true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var resp leads.SubmitResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "accepted" {
		t.Errorf("expected accepted, got %q", resp.Status)
	}
	if sender.calls != 1 {
		t.Errorf("expected one intake call, got %d", sender.calls)
	}
}

func TestRouterRateLimitsSubmitRoute(t *testing.T) {
	sender := &stubSender{}
	logger := logging.Default()
	workflow, err := leads.NewWorkflow(leads.WorkflowConfig{
		Policy: leads.CurrentPolicy(),
		Sender: sender,
		Logger: logger,
	})
	if err != nil {
		t.Fatalf("failed to build workflow: %v", err)
	}
	router := New(&Config{
		Logger:         logger,
		LeadsHandler:   leads.NewHandler(workflow, logger),
		RateLimitRPS:   0.0001,
		RateLimitBurst: 1,
	})

	body, _ := json.Marshal(leads.SubmitRequest{
		FirstName:    "Jean",
		Email:        "jean@example.fr",
		Phone:        "0612345678",
		ConsentGiven: true,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewReader(body))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request limited, got %d", rr.Code)
	}

	// Health stays reachable regardless of the submit limiter.
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected health to pass, got %d", rr.Code)
	}
}
