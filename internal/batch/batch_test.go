package batch_test

import (
	"context"
	"smsblast/internal/batch"
	"smsblast/pkg/domain"
	"smsblast/pkg/messenger"
	"smsblast/pkg/serrors"
	"testing"
	"time"

	"smsblast/pkg/logger"
	mockmessenger "smsblast/pkg/messenger/mock"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

// testCtx carries a no-op logger so dispatch logging stays quiet in tests.
func testCtx() context.Context {
	return logger.WithLogger(context.Background(), zap.NewNop())
}

const testBody = "Hello! This is a scheduled message. Text STOP to unsubscribe"

func newTestRunner(t *testing.T) (*mockmessenger.MockClient, *batch.Runner, time.Time) {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := mockmessenger.NewMockClient(ctrl)
	sendAt := time.Date(2026, 1, 30, 15, 0, 0, 0, time.UTC)
	r := batch.New(client, batch.Options{Body: testBody, SendAt: sendAt})

	return client, r, sendAt
}

func TestRunner_Run_allScheduled(t *testing.T) {
	client, r, sendAt := newTestRunner(t)

	roster := batch.Roster{Recipients: []domain.Recipient{"+11234567890", "+10987654321"}}

	client.EXPECT().
		Schedule(gomock.Any(), domain.Recipient("+11234567890"), testBody, sendAt).
		Return(messenger.ScheduleRes{SID: "SM1", Status: "scheduled"}, nil)
	client.EXPECT().
		Schedule(gomock.Any(), domain.Recipient("+10987654321"), testBody, sendAt).
		Return(messenger.ScheduleRes{SID: "SM2", Status: "scheduled"}, nil)

	b := r.Run(testCtx(), roster)

	require.Len(t, b.Results, 2)
	require.Equal(t, 2, b.Scheduled())
	require.Equal(t, 0, b.Failed())
	require.Equal(t, domain.Recipient("+11234567890"), b.Results[0].Recipient)
	require.Equal(t, "SM1", b.Results[0].SID)
	require.Equal(t, domain.SendOutcomeScheduled, b.Results[0].Outcome)
}

func TestRunner_Run_failureDoesNotAbortBatch(t *testing.T) {
	client, r, _ := newTestRunner(t)

	roster := batch.Roster{Recipients: []domain.Recipient{
		"+11234567890",
		"+10987654321",
		"+11111111111",
	}}

	gomock.InOrder(
		client.EXPECT().
			Schedule(gomock.Any(), domain.Recipient("+11234567890"), gomock.Any(), gomock.Any()).
			Return(messenger.ScheduleRes{SID: "SM1", Status: "scheduled"}, nil),
		client.EXPECT().
			Schedule(gomock.Any(), domain.Recipient("+10987654321"), gomock.Any(), gomock.Any()).
			Return(messenger.ScheduleRes{}, serrors.With(serrors.ErrBadRequest, "unroutable number")),
		client.EXPECT().
			Schedule(gomock.Any(), domain.Recipient("+11111111111"), gomock.Any(), gomock.Any()).
			Return(messenger.ScheduleRes{SID: "SM3", Status: "scheduled"}, nil),
	)

	b := r.Run(testCtx(), roster)

	require.Len(t, b.Results, 3, "every recipient gets a result even when one fails")
	require.Equal(t, domain.SendOutcomeScheduled, b.Results[0].Outcome)
	require.Equal(t, domain.SendOutcomeFailed, b.Results[1].Outcome)
	require.Contains(t, b.Results[1].Err, "unroutable number")
	require.Equal(t, domain.SendOutcomeScheduled, b.Results[2].Outcome)
	require.Equal(t, 2, b.Scheduled())
	require.Equal(t, 1, b.Failed())
}

func TestRunner_Run_allFailedStillCompletes(t *testing.T) {
	client, r, _ := newTestRunner(t)

	roster := batch.Roster{Recipients: []domain.Recipient{"+11234567890"}}

	client.EXPECT().
		Schedule(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(messenger.ScheduleRes{}, serrors.KindOnly(serrors.ErrUnavailable))

	b := r.Run(testCtx(), roster)

	require.Equal(t, 0, b.Scheduled())
	require.Equal(t, 1, b.Failed())
}

func TestRunner_Run_emptyRosterMakesNoCalls(t *testing.T) {
	// the mock has no expectations, so any Schedule call fails the test
	_, r, _ := newTestRunner(t)

	b := r.Run(testCtx(), batch.Roster{})

	require.Empty(t, b.Results)
	require.Equal(t, 0, b.Scheduled())
	require.Equal(t, 0, b.Failed())
}

func TestRunner_Run_carriesSkippedLines(t *testing.T) {
	_, r, _ := newTestRunner(t)

	b := r.Run(testCtx(), batch.Roster{Skipped: []string{"invalid", "also bad"}})

	require.Equal(t, []string{"invalid", "also bad"}, b.Skipped)
	require.Empty(t, b.Results)
}
