package connectivity_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/offline/connectivity"
	"github.com/stretchr/testify/assert"
)

type notices struct {
	mu   sync.Mutex
	msgs []string
}

func (n *notices) Notify(_ bool, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func (n *notices) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.msgs...)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMonitorTriggersAfterSettle(t *testing.T) {
	var calls atomic.Int32
	n := &notices{}
	m := connectivity.NewMonitor(false, 20*time.Millisecond, func() { calls.Add(1) }, n, quietLogger())
	defer m.Stop()

	m.SetOnline(true)
	assert.True(t, m.IsOnline())
	assert.Equal(t, int32(0), calls.Load())

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{connectivity.NoticeOnline}, n.all())

	// Same state again is not a transition.
	m.SetOnline(true)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestMonitorOfflineCancelsPendingTrigger(t *testing.T) {
	var calls atomic.Int32
	n := &notices{}
	m := connectivity.NewMonitor(false, 50*time.Millisecond, func() { calls.Add(1) }, n, quietLogger())
	defer m.Stop()

	m.SetOnline(true)
	m.SetOnline(false)
	time.Sleep(120 * time.Millisecond)

	assert.Equal(t, int32(0), calls.Load())
	assert.False(t, m.IsOnline())
	assert.Equal(t, []string{connectivity.NoticeOnline, connectivity.NoticeOffline}, n.all())
}

func TestMonitorRunWithHTTPProbe(t *testing.T) {
	var healthy atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		if healthy.Load() {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	var calls atomic.Int32
	m := connectivity.NewMonitor(false, 10*time.Millisecond, func() { calls.Add(1) }, nil, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx, connectivity.NewHTTPProber(srv.URL, time.Second), 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	assert.False(t, m.IsOnline())

	healthy.Store(true)
	assert.Eventually(t, m.IsOnline, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
}
