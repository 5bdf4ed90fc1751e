// Package messenger defines the abstraction used to submit scheduled SMS
// messages to a backing provider.
package messenger

import (
	"context"
	"smsblast/pkg/domain"
	"time"
)

// ScheduleRes represents the provider's acknowledgement of a scheduled
// submission.
type ScheduleRes struct {
	SID    string // SID is the message identifier assigned by the provider.
	Status string // Status is the provider-reported message state, e.g. "scheduled".
}

// Client is the abstraction for SMS providers. Implementations submit one
// message per call for delivery at a future time.
//
//go:generate mockgen -package mockmessenger -source=interface.go -destination=mock/mockmessenger.go *
type Client interface {
	// Schedule submits a single message for the given recipient to be
	// delivered at sendAt. It returns the provider's acknowledgement, or an
	// error describing why this recipient's send could not be scheduled.
	Schedule(ctx context.Context, to domain.Recipient, body string, sendAt time.Time) (ScheduleRes, error)
}
