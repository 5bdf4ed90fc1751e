package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// sendAtLayout is the wall-clock layout for Message.SendAt, interpreted in
// Message.Timezone.
const sendAtLayout = "2006-01-02T15:04:05"

// Config represents the application configuration structure.
// It contains the Twilio account credentials and the batch-level message
// settings shared by every recipient in a run.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Twilio contains the provider credentials and client settings
	Twilio struct {
		// AccountSID is the Twilio account identifier, required
		AccountSID string `env:"TWILIO_ACCOUNT_SID" yaml:"account_sid"`
		// AuthToken is the Twilio API secret, required
		AuthToken string `env:"TWILIO_AUTH_TOKEN" yaml:"auth_token"`
		// MessagingServiceSID selects sender numbers and routing behavior, required
		MessagingServiceSID string `env:"TWILIO_MESSAGING_SERVICE_SID" yaml:"messaging_service_sid"`
		// APIBaseURL overrides the Twilio API endpoint, mainly for tests
		APIBaseURL string `env:"TWILIO_API_BASE_URL" env-default:"https://api.twilio.com" yaml:"api_base_url"`
		// Timeout bounds each HTTP call to the provider
		Timeout time.Duration `env:"TWILIO_TIMEOUT" env-default:"30s" yaml:"timeout"`
	} `yaml:"twilio"`

	// Message contains the batch-level message settings; one body and one
	// send time apply to every recipient in a run
	Message struct {
		// Body is the message text, required
		Body string `env:"MESSAGE_BODY" yaml:"body"`
		// SendAt is the local wall-clock delivery time in the form 2006-01-02T15:04:05, required
		SendAt string `env:"MESSAGE_SEND_AT" yaml:"send_at"`
		// Timezone is the IANA zone name SendAt is interpreted in
		Timezone string `env:"MESSAGE_TIMEZONE" env-default:"America/New_York" yaml:"timezone"`
	} `yaml:"message"`
}

// Load receives the path for a yaml config file and returns a filled Config
// struct. Missing required fields are a load error so the process can refuse
// to start before any sends are attempted.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// validate reports every missing required field at once so operators can fix
// the config file in a single pass.
func (c *Config) validate() error {
	var missing []string
	if c.Twilio.AccountSID == "" {
		missing = append(missing, "twilio.account_sid")
	}
	if c.Twilio.AuthToken == "" {
		missing = append(missing, "twilio.auth_token")
	}
	if c.Twilio.MessagingServiceSID == "" {
		missing = append(missing, "twilio.messaging_service_sid")
	}
	if c.Message.Body == "" {
		missing = append(missing, "message.body")
	}
	if c.Message.SendAt == "" {
		missing = append(missing, "message.send_at")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	if _, err := c.SendTime(); err != nil {
		return err
	}

	return nil
}

// SendTime parses Message.SendAt in Message.Timezone and returns the absolute
// delivery time for the batch.
func (c *Config) SendTime() (time.Time, error) {
	loc, err := time.LoadLocation(c.Message.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not load timezone %q: %w", c.Message.Timezone, err)
	}

	t, err := time.ParseInLocation(sendAtLayout, c.Message.SendAt, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse send_at %q: %w", c.Message.SendAt, err)
	}

	return t, nil
}
