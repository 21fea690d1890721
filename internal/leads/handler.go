package leads

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/heartfulmiles/trip-leads/internal/sheets"
	"github.com/heartfulmiles/trip-leads/pkg/logging"
)

// SubmissionResult is the response body returned to the client. The client
// treats the message as the source of truth; the HTTP status is advisory.
type SubmissionResult struct {
	Message string `json:"message"`
	Data    string `json:"data"`
}

// ValidationResult is returned when the request fails field validation.
type ValidationResult struct {
	Message string      `json:"message"`
	Errors  FieldErrors `json:"errors"`
}

// Handler handles HTTP requests for trip submissions
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new trip request handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// SubmitTripRequest handles POST /trip-requests
func (h *Handler) SubmitTripRequest(w http.ResponseWriter, r *http.Request) {
	var req TripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if errs := req.Validate(time.Now().UTC()); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, ValidationResult{
			Message: "Please fix the errors in the form",
			Errors:  errs,
		})
		return
	}

	outcome, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		h.logger.Error("submission failed", "error", err)
		data := ""
		var apErr *sheets.AppendError
		if errors.As(err, &apErr) {
			// Raw downstream payload kept for diagnostics.
			data = apErr.Body
		}
		writeJSON(w, http.StatusBadGateway, SubmissionResult{
			Message: MsgSomethingWentWrong,
			Data:    data,
		})
		return
	}

	writeJSON(w, http.StatusOK, SubmissionResult{Message: outcome.Message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
