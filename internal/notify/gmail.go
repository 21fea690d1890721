package notify

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	gmailv1 "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/heartfulmiles/trip-leads/pkg/logging"
)

// GmailSender sends confirmation emails through the Gmail "send as me" API,
// authenticated with the per-submission bearer token. The operations inbox
// receives a blind copy of every confirmation.
type GmailSender struct {
	from    string
	bcc     string
	baseURL string
	logger  *logging.Logger
}

// GmailOption is a functional option for configuring the GmailSender.
type GmailOption func(*GmailSender)

// WithBaseURL overrides the Gmail API endpoint, mainly for tests.
func WithBaseURL(baseURL string) GmailOption {
	return func(g *GmailSender) {
		g.baseURL = baseURL
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) GmailOption {
	return func(g *GmailSender) {
		g.logger = logger
	}
}

// NewGmailSender creates a sender delivering from the given address with a
// blind copy to bcc.
func NewGmailSender(from, bcc string, opts ...GmailOption) *GmailSender {
	g := &GmailSender{
		from:   from,
		bcc:    bcc,
		logger: logging.Default(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Send delivers the message via Gmail users.messages.send.
func (g *GmailSender) Send(ctx context.Context, token string, msg Message) error {
	if token == "" {
		return fmt.Errorf("notify: gmail send requires an access token")
	}

	opts := []option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})),
	}
	if g.baseURL != "" {
		opts = append(opts, option.WithEndpoint(g.baseURL))
	}

	svc, err := gmailv1.NewService(ctx, opts...)
	if err != nil {
		return fmt.Errorf("notify: create gmail service: %w", err)
	}

	raw := EncodeRawMessage(g.buildMIME(msg))
	_, err = svc.Users.Messages.Send("me", &gmailv1.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			g.logger.Error("gmail send rejected", "status", gerr.Code, "to", msg.To)
			return fmt.Errorf("notify: gmail send failed with status %d: %s", gerr.Code, gerr.Body)
		}
		return fmt.Errorf("notify: gmail send failed: %w", err)
	}

	g.logger.Info("confirmation sent via gmail", "to", msg.To, "subject", msg.Subject)
	return nil
}

// buildMIME assembles the RFC-822 message: headers, blank line, HTML body.
func (g *GmailSender) buildMIME(msg Message) string {
	body := msg.HTML
	if body == "" {
		body = msg.Body
	}
	lines := []string{
		"Content-Type: text/html; charset=utf-8",
		"MIME-Version: 1.0",
		"To: " + msg.To,
		"From: " + g.from,
		"Bcc: " + g.bcc,
		"Subject: " + msg.Subject,
		"",
		body,
	}
	return strings.Join(lines, "\r\n")
}

// EncodeRawMessage base64url-encodes a MIME message per the Gmail raw-message
// contract: standard base64 with + and / swapped for - and _, padding
// stripped.
func EncodeRawMessage(mime string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(mime))
}

var _ Sender = (*GmailSender)(nil)
