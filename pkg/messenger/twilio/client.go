// Package twilio provides a messenger.Client implementation backed by the
// Twilio Programmable Messaging REST API.
package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"smsblast/pkg/domain"
	"smsblast/pkg/messenger"
	"smsblast/pkg/serrors"
	"strings"
	"time"
)

// DefaultBaseURL is the public Twilio API endpoint.
const DefaultBaseURL = "https://api.twilio.com"

// Client talks to the Twilio Messages API and fulfills the messenger.Client
// interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to Twilio
	baseURL    string       // baseURL allows pointing at a test server

	accountSID          string // accountSID identifies the Twilio account
	authToken           string // authToken is the account's API secret
	messagingServiceSID string // messagingServiceSID selects sender numbers and routing
}

// apiError is the error document Twilio returns for non-2xx responses.
// https://www.twilio.com/docs/usage/twilios-response#response-formats-exceptions
type apiError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

// Schedule submits one message for future delivery via the Twilio Messages
// endpoint. The send time is converted to UTC and passed with
// ScheduleType=fixed, so Twilio delivers at that exact instant.
func (c *Client) Schedule(ctx context.Context,
	to domain.Recipient,
	body string,
	sendAt time.Time) (messenger.ScheduleRes, error) {
	// https://www.twilio.com/docs/messaging/features/message-scheduling
	form := url.Values{}
	form.Set("To", string(to))
	form.Set("Body", body)
	form.Set("MessagingServiceSid", c.messagingServiceSID)
	form.Set("SendAt", sendAt.UTC().Truncate(time.Second).Format(time.RFC3339))
	form.Set("ScheduleType", "fixed")

	endpoint := c.baseURL + "/2010-04-01/Accounts/" + url.PathEscape(c.accountSID) + "/Messages.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return messenger.ScheduleRes{}, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return messenger.ScheduleRes{}, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return messenger.ScheduleRes{}, fmt.Errorf("could not read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return messenger.ScheduleRes{}, c.decodeError(resp.StatusCode, b)
	}

	// successful
	var msgResp struct {
		SID    string `json:"sid"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(b, &msgResp); err != nil {
		return messenger.ScheduleRes{}, fmt.Errorf("could not decode response: %w", err)
	}

	return messenger.ScheduleRes{SID: msgResp.SID, Status: msgResp.Status}, nil
}

// decodeError converts a non-2xx Twilio response into a semantic error. The
// Twilio error code is preserved in the message so operators can look up the
// rejection reason per recipient.
func (c *Client) decodeError(statusCode int, body []byte) error {
	var apiErr apiError
	detail := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		detail = apiErr.Message
		if apiErr.Code != 0 {
			detail = fmt.Sprintf("%s (code %d)", apiErr.Message, apiErr.Code)
		}
	}

	switch {
	case statusCode == http.StatusTooManyRequests:
		return serrors.With(serrors.ErrRateLimited, "rate limited: %s", detail)
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return serrors.With(serrors.ErrUnauthorized, "authentication failed: %s", detail)
	case statusCode >= 400 && statusCode < 500:
		return serrors.With(serrors.ErrBadRequest, "submission rejected: %s", detail)
	case statusCode >= 500:
		return serrors.With(serrors.ErrUnavailable, "provider unavailable: %s", detail)
	default:
		return fmt.Errorf("schedule failed with status %d: %s", statusCode, detail)
	}
}

// Ensure Client conforms to the messenger.Client interface at compile time.
var _ messenger.Client = (*Client)(nil)

// Options configure a Twilio client.
type Options struct {
	// BaseURL overrides the API endpoint; empty means DefaultBaseURL.
	BaseURL string
	// AccountSID and AuthToken are the account credentials used for HTTP
	// basic auth.
	AccountSID string
	AuthToken  string
	// MessagingServiceSID is passed on every submission to select sender
	// numbers and routing behavior.
	MessagingServiceSID string
}

// New constructs a Client that uses the provided http.Client and credentials
// to interact with the Twilio API.
func New(httpClient *http.Client, options Options) *Client {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient:          httpClient,
		baseURL:             strings.TrimRight(baseURL, "/"),
		accountSID:          options.AccountSID,
		authToken:           options.AuthToken,
		messagingServiceSID: options.MessagingServiceSID,
	}
}
