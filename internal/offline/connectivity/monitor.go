// Package connectivity tracks whether the agent can reach the server and
// triggers a sync pass after the link has settled.
package connectivity

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultSettleDelay is the wait between regaining the link and syncing.
	DefaultSettleDelay = 2 * time.Second

	NoticeOnline  = "Connection restored, syncing"
	NoticeOffline = "Offline mode activated, changes saved locally"
)

// Notifier shows a user-visible message.
type Notifier interface {
	Notify(online bool, message string)
}

// NotifierFunc adapts a func to Notifier.
type NotifierFunc func(online bool, message string)

func (f NotifierFunc) Notify(online bool, message string) { f(online, message) }

// Monitor holds the current connectivity state.
type Monitor struct {
	mu      sync.Mutex
	online  bool
	settle  time.Duration
	timer   *time.Timer
	gen     uint64
	trigger func()
	notify  Notifier
	logger  *slog.Logger
}

// NewMonitor creates a monitor that starts in the given state. trigger is
// called once the link has been up for the settle delay.
func NewMonitor(initial bool, settle time.Duration, trigger func(), notify Notifier, logger *slog.Logger) *Monitor {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		online:  initial,
		settle:  settle,
		trigger: trigger,
		notify:  notify,
		logger:  logger,
	}
}

// IsOnline reports the last observed state.
func (m *Monitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// SetOnline records a connectivity observation. Repeated observations of the
// same state are ignored.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	m.gen++

	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if online {
		gen := m.gen
		m.timer = time.AfterFunc(m.settle, func() { m.fire(gen) })
	}
	m.mu.Unlock()

	if online {
		m.logger.Info("connectivity restored", slog.Duration("settle", m.settle))
		m.emit(true, NoticeOnline)
	} else {
		m.logger.Info("connectivity lost")
		m.emit(false, NoticeOffline)
	}
}

// fire runs the trigger unless the transition gen was superseded.
func (m *Monitor) fire(gen uint64) {
	m.mu.Lock()
	if m.gen != gen || m.timer == nil || !m.online {
		m.mu.Unlock()
		return
	}
	m.timer = nil
	trigger := m.trigger
	m.mu.Unlock()

	if trigger != nil {
		trigger()
	}
}

func (m *Monitor) emit(online bool, msg string) {
	if m.notify != nil {
		m.notify.Notify(online, msg)
	}
}

// Stop cancels any pending trigger.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.gen++
}

// Run probes the server every interval and feeds the result to SetOnline.
func (m *Monitor) Run(ctx context.Context, p Prober, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer m.Stop()

	m.SetOnline(p.Probe(ctx))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.SetOnline(p.Probe(ctx))
		}
	}
}
