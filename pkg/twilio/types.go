package twilio

import "time"

// Config holds Twilio client configuration.
type Config struct {
	AccountSID     string
	AuthToken      string
	WhatsAppNumber string // E.164, e.g. +14155238886
	BaseURL        string
	Timeout        time.Duration
}

// DefaultBaseURL is the Twilio REST API endpoint.
const DefaultBaseURL = "https://api.twilio.com"
