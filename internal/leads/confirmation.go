package leads

import (
	"fmt"

	"github.com/microcosm-cc/bluemonday"

	"github.com/heartfulmiles/trip-leads/internal/notify"
)

// htmlPolicy strips all markup from user-supplied strings before they are
// interpolated into the confirmation HTML.
var htmlPolicy = bluemonday.StrictPolicy()

const confirmationSubject = "Travel Request Confirmation"

// BuildConfirmation composes the confirmation email restating every field of
// the trip request.
func BuildConfirmation(req *TripRequest) notify.Message {
	name := htmlPolicy.Sanitize(req.Name)

	html := fmt.Sprintf(`<html>
<body>
<h2>Travel Request Confirmation</h2>
<p>Dear %s,</p>
<p>Thank you for submitting your travel request. We have received the following details:</p>
<ul>
<li><strong>Name:</strong> %s</li>
<li><strong>Phone:</strong> %s</li>
<li><strong>Email:</strong> %s</li>
<li><strong>Base Location:</strong> %s</li>
<li><strong>Trip Destination:</strong> %s</li>
<li><strong>Budget:</strong> %s</li>
<li><strong>Number of Travelers:</strong> %s</li>
<li><strong>Start Date:</strong> %s</li>
<li><strong>End Date:</strong> %s</li>
<li><strong>Special Requirements:</strong> %s</li>
</ul>
<p>Our team will review your request and get back to you within 24-48 hours.</p>
<p>Best regards,<br>Heartful Miles</p>
</body>
</html>`,
		name,
		name,
		htmlPolicy.Sanitize(req.Phone),
		htmlPolicy.Sanitize(req.Email),
		htmlPolicy.Sanitize(req.BaseLocation),
		htmlPolicy.Sanitize(req.TripDestination),
		htmlPolicy.Sanitize(req.Budget),
		htmlPolicy.Sanitize(req.NumberOfTravelers),
		htmlPolicy.Sanitize(req.StartDate),
		htmlPolicy.Sanitize(req.EndDate),
		htmlPolicy.Sanitize(req.SpecialRequirements),
	)

	body := fmt.Sprintf(`Dear %s,

Thank you for submitting your travel request. We have received the following details:

Name: %s
Phone: %s
Email: %s
Base Location: %s
Trip Destination: %s
Budget: %s
Number of Travelers: %s
Start Date: %s
End Date: %s
Special Requirements: %s

Our team will review your request and get back to you within 24-48 hours.

Best regards,
Heartful Miles`,
		req.Name, req.Name, req.Phone, req.Email, req.BaseLocation, req.TripDestination,
		req.Budget, req.NumberOfTravelers, req.StartDate, req.EndDate, req.SpecialRequirements)

	return notify.Message{
		To:      req.Email,
		ToName:  req.Name,
		Subject: confirmationSubject,
		Body:    body,
		HTML:    html,
	}
}
