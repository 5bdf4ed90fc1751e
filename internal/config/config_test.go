package config_test

import (
	"os"
	"path/filepath"
	"smsblast/internal/config"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

const validConfig = `
environment: development
twilio:
  account_sid: AC123
  auth_token: secret
  messaging_service_sid: MG456
message:
  body: "Hello! This is a scheduled message. Text STOP to unsubscribe"
  send_at: "2026-01-30T10:00:00"
  timezone: America/New_York
`

func TestLoad_valid(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	require.Equal(t, "AC123", cfg.Twilio.AccountSID)
	require.Equal(t, "secret", cfg.Twilio.AuthToken)
	require.Equal(t, "MG456", cfg.Twilio.MessagingServiceSID)
	require.Equal(t, "https://api.twilio.com", cfg.Twilio.APIBaseURL)
	require.Equal(t, 30*time.Second, cfg.Twilio.Timeout)
	require.Equal(t, "America/New_York", cfg.Message.Timezone)
}

func TestLoad_missingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestLoad_missingRequiredFields(t *testing.T) {
	path := writeConfig(t, `
twilio:
  account_sid: AC123
message:
  body: hi
`)

	_, err := config.Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "twilio.auth_token")
	require.Contains(t, err.Error(), "twilio.messaging_service_sid")
	require.Contains(t, err.Error(), "message.send_at")
	require.NotContains(t, err.Error(), "twilio.account_sid")
}

func TestLoad_badSendAt(t *testing.T) {
	path := writeConfig(t, `
twilio:
  account_sid: AC123
  auth_token: secret
  messaging_service_sid: MG456
message:
  body: hi
  send_at: "not-a-time"
`)

	_, err := config.Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "send_at")
}

func TestSendTime_convertsLocalWallClock(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	sendAt, err := cfg.SendTime()
	require.NoError(t, err)

	// 10:00 Eastern on Jan 30 is 15:00 UTC
	require.Equal(t, time.Date(2026, 1, 30, 15, 0, 0, 0, time.UTC), sendAt.UTC())
}

func TestSendTime_badTimezone(t *testing.T) {
	path := writeConfig(t, `
twilio:
  account_sid: AC123
  auth_token: secret
  messaging_service_sid: MG456
message:
  body: hi
  send_at: "2026-01-30T10:00:00"
  timezone: Not/AZone
`)

	_, err := config.Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "timezone")
}
