package leads

import (
	"encoding/json"
	"net/http"

	"github.com/diagnostichumidite/lead-relay/pkg/logging"
)

// Handler handles HTTP requests from the website's contact form.
type Handler struct {
	workflow *Workflow
	logger   *logging.Logger
}

// NewHandler creates a new leads handler
func NewHandler(workflow *Workflow, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		workflow: workflow,
		logger:   logger,
	}
}

// SubmitRequest is the form payload as posted by the frontend. Field keys
// mirror the form element names.
type SubmitRequest struct {
	FormID       string `json:"formId"`
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
}

func (r *SubmitRequest) form() *Form {
	return &Form{
		Profile:      r.Profile,
		LastName:     r.LastName,
		FirstName:    r.FirstName,
		Email:        r.Email,
		Phone:        r.Phone,
		City:         r.City,
		PostalCode:   r.PostalCode,
		Message:      r.Message,
		Urgent:       r.Urgent,
		ConsentGiven: r.ConsentGiven,
	}
}

// SubmitResponse tells the frontend what to show in the form's status
// region. DismissAfterMs is only set on success.
type SubmitResponse struct {
	Status         string `json:"status"`
	Message        string `json:"message,omitempty"`
	DismissAfterMs int64  `json:"dismissAfterMs,omitempty"`
}

// SubmitLead handles POST /api/leads requests
func (h *Handler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	res := h.workflow.Submit(r.Context(), req.FormID, req.form())

	switch res.Outcome {
	case OutcomeAccepted:
		writeJSON(w, http.StatusOK, SubmitResponse{
			Status:         "accepted",
			Message:        res.Message,
			DismissAfterMs: SuccessDismissAfter.Milliseconds(),
		})
	case OutcomeRejectedByValidation:
		writeJSON(w, http.StatusUnprocessableEntity, SubmitResponse{
			Status:  "rejected",
			Message: res.Message,
		})
	case OutcomeDropped:
		writeJSON(w, http.StatusTooManyRequests, SubmitResponse{
			Status: "busy",
		})
	default:
		writeJSON(w, http.StatusBadGateway, SubmitResponse{
			Status:  "error",
			Message: res.Message,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
