package worker

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/jobtrack/jobtrack-be/internal/events"
	"github.com/jobtrack/jobtrack-be/internal/worker/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuditStore struct {
	inserted  []*events.JobEvent
	insertErr error
}

func (f *fakeAuditStore) Migrate(_ context.Context) error {
	return nil
}

func (f *fakeAuditStore) InsertEvent(_ context.Context, ev *events.JobEvent) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, ev)
	return nil
}

func newTestWorker(store auditStore) *Worker {
	return &Worker{
		logger:   slog.New(slog.DiscardHandler),
		storage:  store,
		workerID: "audit-worker-test",
	}
}

func TestProcessEvent(t *testing.T) {
	store := &fakeAuditStore{}
	w := newTestWorker(store)

	ev := events.NewJobEvent(42, events.TypeJobStatusChanged, "status set to Offer")
	err := w.processEvent(t.Context(), &domain.EventTask{Event: ev, DeliveryTag: 1})

	require.NoError(t, err)
	require.Len(t, store.inserted, 1)
	assert.Equal(t, ev.EventID, store.inserted[0].EventID)
	assert.Equal(t, int64(42), store.inserted[0].JobID)
}

func TestProcessEvent_InsertFailureIsRetryable(t *testing.T) {
	store := &fakeAuditStore{insertErr: errors.New("connection reset")}
	w := newTestWorker(store)

	ev := events.NewJobEvent(42, events.TypeJobCreated, "Eng at Acme (Applied)")
	err := w.processEvent(t.Context(), &domain.EventTask{Event: ev, DeliveryTag: 1})

	require.Error(t, err)

	var retryable *domain.RetryableError
	require.ErrorAs(t, err, &retryable)
	assert.ErrorContains(t, err, "connection reset")
}
