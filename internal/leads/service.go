package leads

import (
	"context"
	"fmt"
	"time"

	"github.com/heartfulmiles/trip-leads/internal/notify"
	"github.com/heartfulmiles/trip-leads/internal/observability/metrics"
	"github.com/heartfulmiles/trip-leads/internal/sheets"
	"github.com/heartfulmiles/trip-leads/pkg/logging"
)

// User-facing submission messages.
const (
	MsgSubmitted            = "Your request has been submitted. Our team will get back to you shortly."
	MsgSubmittedEmailFailed = "Your request has been submitted to our spreadsheet, but we couldn't send a confirmation email. Our team will get back to you shortly."
	MsgSomethingWentWrong   = "Something went wrong. Please try again later."
)

// TokenBroker exchanges the stored refresh credential for a bearer token.
type TokenBroker interface {
	Exchange(ctx context.Context) (string, error)
}

// Recorder appends one trip request row to the remote spreadsheet.
type Recorder interface {
	Append(ctx context.Context, token string, row sheets.Row) error
}

// Status is the non-fatal submission outcome.
type Status string

const (
	// StatusSucceeded means the row was recorded and the confirmation sent.
	StatusSucceeded Status = "succeeded"
	// StatusPartial means the row was recorded but the confirmation email
	// failed; the submission is still reported as a success to the caller.
	StatusPartial Status = "partial"
)

// Outcome is the result of a submission that got past the recorder.
type Outcome struct {
	Status  Status
	Message string
}

// Service orchestrates one submission: token exchange, then the sheet append,
// then the confirmation email, strictly in that order. There are no retries
// and no rollback; a failed email never undoes the append.
type Service struct {
	broker   TokenBroker
	recorder Recorder
	sender   notify.Sender
	metrics  *metrics.SubmissionMetrics
	logger   *logging.Logger
}

// NewService creates a submission service.
func NewService(broker TokenBroker, recorder Recorder, sender notify.Sender, m *metrics.SubmissionMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		broker:   broker,
		recorder: recorder,
		sender:   sender,
		metrics:  m,
		logger:   logger,
	}
}

// Submit runs the submission flow for a validated request. A returned error
// is fatal (token exchange or sheet append failed); otherwise the Outcome
// distinguishes full from partial success.
func (s *Service) Submit(ctx context.Context, req *TripRequest) (*Outcome, error) {
	start := time.Now()
	token, err := s.broker.Exchange(ctx)
	s.metrics.ObserveStageLatency("token_exchange", time.Since(start).Seconds())
	if err != nil {
		s.metrics.ObserveSubmission("auth_failed")
		return nil, fmt.Errorf("leads: token exchange: %w", err)
	}

	start = time.Now()
	err = s.recorder.Append(ctx, token, req.Row())
	s.metrics.ObserveStageLatency("sheet_append", time.Since(start).Seconds())
	if err != nil {
		s.metrics.ObserveSubmission("record_failed")
		return nil, fmt.Errorf("leads: record append: %w", err)
	}

	start = time.Now()
	err = s.sender.Send(ctx, token, BuildConfirmation(req))
	s.metrics.ObserveStageLatency("email_send", time.Since(start).Seconds())
	if err != nil {
		// Non-fatal: the lead is recorded. Logged for operator follow-up.
		s.logger.Error("confirmation email failed", "error", err, "to", req.Email)
		s.metrics.ObserveSubmission("partial")
		return &Outcome{Status: StatusPartial, Message: MsgSubmittedEmailFailed}, nil
	}

	s.logger.Info("trip request submitted", "destination", req.TripDestination, "travelers", req.NumberOfTravelers)
	s.metrics.ObserveSubmission("succeeded")
	return &Outcome{Status: StatusSucceeded, Message: MsgSubmitted}, nil
}
