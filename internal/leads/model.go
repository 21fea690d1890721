package leads

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/heartfulmiles/trip-leads/internal/sheets"
)

// DateLayout is the wire format for startDate and endDate.
const DateLayout = "2006-01-02"

// TripRequest represents a trip request submitted from the web form. All
// fields arrive as raw strings; NumberOfTravelers and the dates are validated
// but recorded verbatim.
type TripRequest struct {
	Name                string `json:"name"`
	Phone               string `json:"phone"`
	Email               string `json:"email"`
	BaseLocation        string `json:"baseLocation"`
	TripDestination     string `json:"tripDestination"`
	NumberOfTravelers   string `json:"numberOfTravelers"`
	Budget              string `json:"budget"`
	StartDate           string `json:"startDate"`
	EndDate             string `json:"endDate"`
	SpecialRequirements string `json:"specialRequirements"`
}

// FieldErrors maps field names to human-readable error strings. Only fields
// with errors are present; an empty map means the request is submittable.
type FieldErrors map[string]string

var (
	// Optional leading +, non-zero leading digit, 1-16 digits total.
	phonePattern = regexp.MustCompile(`^\+?[1-9][0-9]{0,15}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitPattern = regexp.MustCompile(`^[0-9]+$`)
)

// Validate checks every rule independently and returns the full error map;
// rules never short-circuit each other. now anchors the "not in the past"
// check for startDate with time-of-day ignored.
func (r *TripRequest) Validate(now time.Time) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "Full name is required"
	} else if len(strings.TrimSpace(r.Name)) < 2 {
		errs["name"] = "Name must be at least 2 characters long"
	}

	if strings.TrimSpace(r.Phone) == "" {
		errs["phone"] = "Phone number is required"
	} else if !phonePattern.MatchString(stripSpaces(r.Phone)) {
		errs["phone"] = "Please enter a valid phone number"
	}

	if strings.TrimSpace(r.Email) == "" {
		errs["email"] = "Email address is required"
	} else if !emailPattern.MatchString(r.Email) {
		errs["email"] = "Please enter a valid email address"
	}

	if strings.TrimSpace(r.BaseLocation) == "" {
		errs["baseLocation"] = "Base location is required"
	}

	if strings.TrimSpace(r.TripDestination) == "" {
		errs["tripDestination"] = "Trip destination is required"
	}

	if strings.TrimSpace(r.NumberOfTravelers) == "" {
		errs["numberOfTravelers"] = "Number of travelers is required"
	} else if !digitPattern.MatchString(r.NumberOfTravelers) || mustAtoi(r.NumberOfTravelers) < 1 {
		errs["numberOfTravelers"] = "Please enter a valid number of travelers"
	}

	if strings.TrimSpace(r.Budget) == "" {
		errs["budget"] = "Budget range is required"
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var startDate time.Time
	startValid := false
	if r.StartDate == "" {
		errs["startDate"] = "Start date is required"
	} else if d, err := time.Parse(DateLayout, r.StartDate); err != nil {
		errs["startDate"] = "Please enter a valid start date"
	} else {
		startDate = d
		startValid = true
		if d.Before(today) {
			errs["startDate"] = "Start date cannot be in the past"
		}
	}

	if r.EndDate == "" {
		errs["endDate"] = "End date is required"
	} else if d, err := time.Parse(DateLayout, r.EndDate); err != nil {
		errs["endDate"] = "Please enter a valid end date"
	} else if startValid && !d.After(startDate) {
		errs["endDate"] = "End date must be after start date"
	}

	return errs
}

// Row returns the spreadsheet row in canonical column order.
func (r *TripRequest) Row() sheets.Row {
	return sheets.Row{
		r.Name,
		r.Phone,
		r.Email,
		r.BaseLocation,
		r.TripDestination,
		r.Budget,
		r.NumberOfTravelers,
		r.StartDate,
		r.EndDate,
		r.SpecialRequirements,
	}
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
