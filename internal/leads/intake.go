package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/diagnostichumidite/lead-relay/pkg/logging"
)

const defaultIntakeUserAgent = "lead-relay/0.1"

// Sender delivers a submission to the intake endpoint.
type Sender interface {
	Send(ctx context.Context, sub *Submission, mode ResponseMode) error
}

// IntakeConfig controls how the intake client behaves.
type IntakeConfig struct {
	EndpointURL string
	Timeout     time.Duration
	HTTPClient  *http.Client
	Logger      *logging.Logger
	UserAgent   string
}

// IntakeClient posts submissions to the external spreadsheet collector.
// No retries and no queueing: one trigger, one request.
type IntakeClient struct {
	endpointURL string
	httpClient  *http.Client
	logger      *logging.Logger
	userAgent   string
}

// NewIntakeClient creates a configured intake client.
func NewIntakeClient(cfg IntakeConfig) (*IntakeClient, error) {
	endpoint := strings.TrimSpace(cfg.EndpointURL)
	if endpoint == "" {
		return nil, errors.New("leads: intake endpoint URL is required")
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("leads: invalid intake endpoint URL: %w", err)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultIntakeUserAgent
	}
	return &IntakeClient{
		endpointURL: endpoint,
		httpClient:  httpClient,
		logger:      logger,
		userAgent:   userAgent,
	}, nil
}

// intakeResult is the body shape the collector answers with in checked mode.
type intakeResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Send posts the submission. In checked mode acceptance requires a success
// status and a success body; any other answer shape wraps ErrServerRejected.
// In fire-and-forget mode the response is never read and any dispatch that
// does not fail at the transport level counts as accepted.
func (c *IntakeClient) Send(ctx context.Context, sub *Submission, mode ResponseMode) error {
	body, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("leads: encode submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("leads: build intake request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("leads: intake request failed: %w", err)
	}
	defer resp.Body.Close()

	if mode == ResponseModeFireAndForget {
		return nil
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("leads: read intake response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("intake endpoint returned error status",
			"status", resp.StatusCode,
			"body", truncate(string(payload), 256),
		)
		return fmt.Errorf("leads: intake status %d: %w", resp.StatusCode, ErrServerRejected)
	}
	var result intakeResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return fmt.Errorf("leads: parse intake response: %w", err)
	}
	if !result.Success {
		msg := result.Message
		if msg == "" {
			msg = "no detail provided"
		}
		return fmt.Errorf("leads: intake failure %q: %w", msg, ErrServerRejected)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
