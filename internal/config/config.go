package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string

	// Google OAuth credentials used for both Sheets and Gmail.
	// A fresh access token is exchanged on every submission.
	GoogleRefreshToken string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleTokenURL     string

	// Destination spreadsheet for trip requests.
	SheetsSpreadsheetID string
	SheetsSheetName     string
	SheetsBaseURL       string

	// Gmail Email Configuration
	GmailBaseURL string
	FromEmail    string
	OpsEmail     string

	// Email provider selection: gmail, sendgrid, or stub.
	EmailProvider string

	// SendGrid Email Configuration (alternate provider)
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	// Timeout applied to the token exchange; zero means no timeout.
	OutboundTimeout time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil),

		GoogleRefreshToken: getEnv("GOOGLE_REFRESH_TOKEN", ""),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleTokenURL:     getEnv("GOOGLE_TOKEN_URL", "https://oauth2.googleapis.com/token"),

		SheetsSpreadsheetID: getEnv("SHEETS_SPREADSHEET_ID", ""),
		SheetsSheetName:     getEnv("SHEETS_SHEET_NAME", "Sheet1"),
		SheetsBaseURL:       getEnv("SHEETS_BASE_URL", "https://sheets.googleapis.com/"),

		GmailBaseURL: getEnv("GMAIL_BASE_URL", "https://gmail.googleapis.com/"),
		FromEmail:    getEnv("FROM_EMAIL", "heartfulmiles@gmail.com"),
		OpsEmail:     getEnv("OPS_EMAIL", "heartfulmiles@gmail.com"),

		EmailProvider: strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "gmail"))),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Heartful Miles"),

		OutboundTimeout: getEnvAsDuration("OUTBOUND_TIMEOUT", 0),
	}
}

// Validate checks that credentials required at startup are present. Missing
// credentials are a configuration error, not a per-request error.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"GOOGLE_REFRESH_TOKEN", c.GoogleRefreshToken},
		{"GOOGLE_CLIENT_ID", c.GoogleClientID},
		{"GOOGLE_CLIENT_SECRET", c.GoogleClientSecret},
		{"SHEETS_SPREADSHEET_ID", c.SheetsSpreadsheetID},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("config: %s is required", r.name)
		}
	}
	switch c.EmailProvider {
	case "gmail", "sendgrid", "stub":
	default:
		return fmt.Errorf("config: unknown EMAIL_PROVIDER %q", c.EmailProvider)
	}
	if c.EmailProvider == "sendgrid" && c.SendGridAPIKey == "" {
		return fmt.Errorf("config: SENDGRID_API_KEY is required when EMAIL_PROVIDER=sendgrid")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsSlice retrieves a comma-separated environment variable as a slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
