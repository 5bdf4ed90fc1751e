// Package batch implements the sending pipeline: parse and validate the
// recipient list, deduplicate it, dispatch one scheduled submission per
// unique number, and render the per-recipient report.
package batch

import (
	"context"
	"smsblast/internal/config"
	"smsblast/pkg/domain"
	"smsblast/pkg/logger"
	"smsblast/pkg/messenger"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options hold the batch-level message settings applied to every recipient.
type Options struct {
	// Body is the message text submitted for every recipient.
	Body string
	// SendAt is the absolute delivery time submitted for every recipient.
	SendAt time.Time
}

// NewOptions constructs an Options value from the provided application
// config. The config is validated at load time, so SendTime cannot fail here.
func NewOptions(cfg *config.Config) Options {
	sendAt, _ := cfg.SendTime()

	return Options{
		Body:   cfg.Message.Body,
		SendAt: sendAt,
	}
}

// Runner dispatches one scheduled submission per recipient through the
// configured messenger client, sequentially.
type Runner struct {
	// options holds the batch-level body and send time.
	options Options
	// client is the messaging provider used for every submission.
	client messenger.Client
}

// Run submits one scheduled message per roster recipient and returns the
// complete batch outcome. A failed submission for one recipient is captured
// in its SendResult and never aborts the rest of the batch; the result
// collection always carries exactly one entry per recipient, in roster order.
// An empty roster produces an empty result set and makes zero provider calls.
func (r *Runner) Run(ctx context.Context, roster Roster) *domain.Batch {
	b := &domain.Batch{
		ID:      domain.BatchID(uuid.New()),
		Body:    r.options.Body,
		SendAt:  r.options.SendAt.UTC(),
		Skipped: roster.Skipped,
	}

	ctx = logger.WithFields(ctx, zap.String("batch_id", b.ID.String()))
	logger.Info(ctx, "dispatching batch",
		zap.Int("recipients", len(roster.Recipients)),
		zap.Int("skipped", len(roster.Skipped)),
		zap.Time("send_at", b.SendAt))

	for _, to := range roster.Recipients {
		res, err := r.client.Schedule(ctx, to, r.options.Body, r.options.SendAt)
		if err != nil {
			logger.Warn(ctx, "could not schedule message",
				zap.String("to", string(to)),
				zap.Error(err))
			b.Results = append(b.Results, domain.SendResult{
				Recipient: to,
				Outcome:   domain.SendOutcomeFailed,
				Err:       err.Error(),
			})

			continue
		}

		logger.Info(ctx, "scheduled message",
			zap.String("to", string(to)),
			zap.String("sid", res.SID),
			zap.String("status", res.Status))
		b.Results = append(b.Results, domain.SendResult{
			Recipient: to,
			Outcome:   domain.SendOutcomeScheduled,
			SID:       res.SID,
			Status:    res.Status,
		})
	}

	logger.Info(ctx, "batch complete",
		zap.Int("scheduled", b.Scheduled()),
		zap.Int("failed", b.Failed()))

	return b
}

// New creates a Runner backed by the provided messenger client and configured
// with the given options.
func New(client messenger.Client, options Options) *Runner {
	return &Runner{
		options: options,
		client:  client,
	}
}
