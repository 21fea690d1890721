// Package sheets appends trip requests as rows to the destination Google
// Sheet.
package sheets

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/heartfulmiles/trip-leads/pkg/logging"
)

// Row is one spreadsheet row in canonical column order (A:J): name, phone,
// email, baseLocation, tripDestination, budget, numberOfTravelers, startDate,
// endDate, specialRequirements.
type Row [10]string

// AppendError carries the raw downstream response for diagnostics when the
// append is rejected.
type AppendError struct {
	StatusCode int
	Body       string
}

func (e *AppendError) Error() string {
	return fmt.Sprintf("sheets: append failed with status %d: %s", e.StatusCode, e.Body)
}

// Recorder appends rows to a fixed spreadsheet and sheet. Rows are always
// inserted after the last existing row; nothing is overwritten and no
// deduplication is attempted.
type Recorder struct {
	spreadsheetID string
	sheetName     string
	baseURL       string
	logger        *logging.Logger
}

// Option is a functional option for configuring the Recorder.
type Option func(*Recorder)

// WithBaseURL overrides the Sheets API endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(r *Recorder) {
		r.baseURL = baseURL
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// NewRecorder creates a recorder for the given spreadsheet and sheet name.
func NewRecorder(spreadsheetID, sheetName string, opts ...Option) *Recorder {
	r := &Recorder{
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		logger:        logging.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Append writes one row authenticated with the supplied bearer token. The
// token is used for this single call and discarded with the service.
func (r *Recorder) Append(ctx context.Context, token string, row Row) error {
	opts := []option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})),
	}
	if r.baseURL != "" {
		opts = append(opts, option.WithEndpoint(r.baseURL))
	}

	svc, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return fmt.Errorf("sheets: create service: %w", err)
	}

	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}

	rng := fmt.Sprintf("%s!A:J", r.sheetName)
	resp, err := svc.Spreadsheets.Values.
		Append(r.spreadsheetID, rng, &sheetsv4.ValueRange{Values: [][]interface{}{values}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			r.logger.Error("sheet append rejected", "status", gerr.Code, "spreadsheet_id", r.spreadsheetID)
			return &AppendError{StatusCode: gerr.Code, Body: gerr.Body}
		}
		return fmt.Errorf("sheets: append request failed: %w", err)
	}

	updatedRange := ""
	if resp.Updates != nil {
		updatedRange = resp.Updates.UpdatedRange
	}
	r.logger.Info("trip request appended", "spreadsheet_id", r.spreadsheetID, "range", updatedRange)
	return nil
}
