package clockin_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/dto"
	"github.com/SscSPs/solar_backoffice/internal/offline/clockin"
	"github.com/SscSPs/solar_backoffice/internal/offline/optimistic"
	"github.com/SscSPs/solar_backoffice/internal/offline/queue"
	"github.com/SscSPs/solar_backoffice/internal/offline/syncer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTransport struct {
	err  error
	sent []dto.SyncEnvelope
}

func (s *stubTransport) Deliver(_ context.Context, _ string, env dto.SyncEnvelope) error {
	s.sent = append(s.sent, env)
	return s.err
}

type fixture struct {
	producer  *clockin.Producer
	transport *stubTransport
	store     queue.Store
	online    bool
	now       time.Time
}

func newFixture(t *testing.T, store queue.Store) *fixture {
	t.Helper()
	f := &fixture{
		transport: &stubTransport{},
		store:     store,
		now:       time.Date(2026, 6, 1, 7, 30, 0, 0, time.UTC),
	}
	f.producer = clockin.NewProducer(clockin.Options{
		Transport: f.transport,
		Store:     store,
		Online:    syncer.OnlineFunc(func() bool { return f.online }),
		Endpoints: syncer.NewEndpoints(nil),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:       func() time.Time { return f.now },
	})
	return f
}

func TestSlideBelowThresholdIsIgnored(t *testing.T) {
	f := newFixture(t, queue.NewMemoryStore())
	assert.Equal(t, clockin.OutcomeIgnored, f.producer.Slide(context.Background(), 0.85))
	assert.Equal(t, clockin.StatusIdle, f.producer.Status())
	assert.Empty(t, f.producer.Punches())
}

func TestSlideOnlineDelivers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, queue.NewMemoryStore())
	f.online = true

	assert.Equal(t, clockin.OutcomeDelivered, f.producer.Slide(ctx, 0.95))
	assert.Equal(t, clockin.StatusClockedIn, f.producer.Status())
	require.Len(t, f.transport.sent, 1)
	assert.Equal(t, "clock_in", f.transport.sent[0].Action)
	assert.NotEmpty(t, f.transport.sent[0].OfflineID)

	f.now = f.now.Add(90 * time.Minute)
	assert.Equal(t, 90*time.Minute, f.producer.Duration(f.now))

	assert.Equal(t, clockin.OutcomeDelivered, f.producer.Slide(ctx, 1))
	assert.Equal(t, clockin.StatusClockedOut, f.producer.Status())
	require.Len(t, f.transport.sent, 2)

	var payload dto.ClockPayload
	require.NoError(t, json.Unmarshal(f.transport.sent[1].Data, &payload))
	require.NotNil(t, payload.DurationSeconds)
	assert.Equal(t, int64(5400), *payload.DurationSeconds)
	assert.Equal(t, time.Duration(0), f.producer.Duration(f.now))

	for _, p := range f.producer.Punches() {
		assert.Equal(t, optimistic.StatusConfirmed, p.Status)
	}
	state, err := f.store.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, state.TotalPending)
}

func TestSlideOfflineQueues(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, queue.NewMemoryStore())

	assert.Equal(t, clockin.OutcomeQueued, f.producer.Slide(ctx, 0.9))
	assert.Equal(t, clockin.StatusClockedIn, f.producer.Status())
	assert.Empty(t, f.transport.sent)

	pending, err := f.store.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, queue.EntityTimeEntry, pending[0].Entity)
	assert.Equal(t, queue.ActionClockIn, pending[0].Action)

	punches := f.producer.Punches()
	require.Len(t, punches, 1)
	assert.Equal(t, optimistic.StatusPending, punches[0].Status)
	assert.Equal(t, pending[0].ID, punches[0].Value.QueueID)
}

func TestSlideRemoteFailureFallsBackToQueue(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, queue.NewMemoryStore())
	f.online = true
	f.transport.err = errors.New("connection reset")

	assert.Equal(t, clockin.OutcomeQueued, f.producer.Slide(ctx, 0.92))
	require.Len(t, f.transport.sent, 1)
	state, err := f.store.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, state.ByEntity[queue.EntityTimeEntry])

	// the queued copy reuses the id of the failed direct attempt so the server can drop it
	pending, err := f.store.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, f.transport.sent[0].OfflineID, pending[0].ID)
	assert.Equal(t, pending[0].ID, f.producer.Punches()[0].Value.QueueID)
}

func TestQueuedRetryCarriesDirectAttemptID(t *testing.T) {
	ctx := context.Background()
	store := queue.NewMemoryStore()
	f := newFixture(t, store)
	f.online = true
	f.transport.err = errors.New("context deadline exceeded")

	require.Equal(t, clockin.OutcomeQueued, f.producer.Slide(ctx, 1))

	f.transport.err = nil
	d := syncer.NewDispatcher(store, f.transport, syncer.OnlineFunc(func() bool { return true }),
		syncer.Config{Endpoints: syncer.NewEndpoints(nil)}, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	res, err := d.SyncNow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Synced)

	require.Len(t, f.transport.sent, 2)
	assert.Equal(t, f.transport.sent[0].OfflineID, f.transport.sent[1].OfflineID)
	assert.Equal(t, f.transport.sent[0].Action, f.transport.sent[1].Action)
}

func TestSlideDroppedRollsBack(t *testing.T) {
	f := newFixture(t, queue.NoopStore{})

	assert.Equal(t, clockin.OutcomeDropped, f.producer.Slide(context.Background(), 1))
	assert.Equal(t, clockin.StatusIdle, f.producer.Status())
	assert.Empty(t, f.producer.Punches())
	assert.Equal(t, time.Duration(0), f.producer.Duration(f.now))
}

func TestResumeThenSlideClocksOut(t *testing.T) {
	f := newFixture(t, queue.NewMemoryStore())
	f.online = true
	f.producer.Resume(f.now.Add(-2 * time.Hour))

	assert.Equal(t, 2*time.Hour, f.producer.Duration(f.now))
	assert.Equal(t, clockin.OutcomeDelivered, f.producer.Slide(context.Background(), 1))
	require.Len(t, f.transport.sent, 1)
	assert.Equal(t, "clock_out", f.transport.sent[0].Action)

	var payload dto.ClockPayload
	require.NoError(t, json.Unmarshal(f.transport.sent[0].Data, &payload))
	require.NotNil(t, payload.DurationSeconds)
	assert.Equal(t, int64(7200), *payload.DurationSeconds)
}
