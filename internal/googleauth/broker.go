// Package googleauth exchanges a long-lived Google OAuth refresh token for
// short-lived bearer access tokens.
package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/heartfulmiles/trip-leads/pkg/logging"
)

// Broker performs the OAuth refresh_token grant against Google's token
// endpoint. Tokens are never cached: every call performs a full exchange, so
// each submission rides a fresh token.
type Broker struct {
	tokenURL     string
	clientID     string
	clientSecret string
	refreshToken string
	httpClient   *http.Client
	logger       *logging.Logger
}

// Option is a functional option for configuring the Broker.
type Option func(*Broker)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(b *Broker) {
		b.httpClient = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) Option {
	return func(b *Broker) {
		b.logger = logger
	}
}

// New creates a token broker for the given credentials.
// tokenURL is normally https://oauth2.googleapis.com/token.
func New(tokenURL, clientID, clientSecret, refreshToken string, opts ...Option) *Broker {
	b := &Broker{
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		refreshToken: refreshToken,
		httpClient:   &http.Client{},
		logger:       logging.Default(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Exchange performs a refresh_token grant and returns the access token.
// Any non-200 response or network failure is an exchange failure.
func (b *Broker) Exchange(ctx context.Context) (string, error) {
	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", b.refreshToken)
	data.Set("client_id", b.clientID)
	data.Set("client_secret", b.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", fmt.Errorf("googleauth: create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("googleauth: token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		b.logger.Error("token exchange rejected", "status", resp.StatusCode)
		return "", fmt.Errorf("googleauth: token exchange failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
		TokenType   string `json:"token_type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("googleauth: decode token response: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("googleauth: token response missing access_token")
	}

	b.logger.Debug("token exchanged", "expires_in", tokenResp.ExpiresIn)
	return tokenResp.AccessToken, nil
}
