package domain

import (
	"time"

	"github.com/google/uuid"
)

// BatchID uniquely identifies one sending run.
// It wraps uuid.UUID to provide type safety at the domain layer.
type BatchID uuid.UUID

// String returns the canonical UUID representation of the batch ID.
func (id BatchID) String() string { return uuid.UUID(id).String() }

// Recipient is a phone number that passed the E.164 format check.
// Values of this type always carry a leading "+" and exactly 11 digits.
type Recipient string

// SendOutcome represents the submission outcome for a single recipient.
type SendOutcome string

const (
	// SendOutcomeScheduled indicates the provider accepted the message for future delivery.
	SendOutcomeScheduled SendOutcome = "SCHEDULED"
	// SendOutcomeFailed indicates the submission was rejected or could not reach the provider.
	SendOutcomeFailed SendOutcome = "FAILED"
)

// SendResult records the submission outcome for one recipient.
type SendResult struct {
	// Recipient is the number the message was submitted for.
	Recipient Recipient
	// Outcome is the terminal submission state for this recipient.
	Outcome SendOutcome

	// SID is the provider's message identifier, set on scheduled submissions.
	SID string
	// Status is the provider-reported message state (e.g. "scheduled").
	Status string

	// Err holds the failure detail when Outcome is SendOutcomeFailed.
	Err string
}

// Batch is the full outcome of one sending run. It is produced by the
// dispatcher, rendered by the reporter, and then discarded; nothing is
// persisted across runs.
type Batch struct {
	// ID tags all log lines and reports belonging to this run.
	ID BatchID

	// Body is the message text submitted for every recipient.
	Body string
	// SendAt is the UTC delivery time submitted for every recipient.
	SendAt time.Time

	// Skipped lists input lines rejected by validation, in input order.
	Skipped []string
	// Results holds exactly one entry per dispatched recipient, in dispatch order.
	Results []SendResult
}

// Scheduled returns the number of recipients the provider accepted.
func (b Batch) Scheduled() int {
	n := 0
	for _, r := range b.Results {
		if r.Outcome == SendOutcomeScheduled {
			n++
		}
	}

	return n
}

// Failed returns the number of recipients whose submission failed.
func (b Batch) Failed() int {
	return len(b.Results) - b.Scheduled()
}
