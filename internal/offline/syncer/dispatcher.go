// Package syncer drains the offline queue against the server sync endpoints.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/dto"
	"github.com/SscSPs/solar_backoffice/internal/offline/queue"
	"github.com/SscSPs/solar_backoffice/internal/platform/metrics"
)

// PassStatus describes how a SyncNow call ended.
type PassStatus string

const (
	PassCompleted      PassStatus = "completed"
	PassSkippedOffline PassStatus = "skipped_offline"
	PassSkippedBusy    PassStatus = "skipped_busy"
)

// PassResult summarises one drain pass.
type PassResult struct {
	Status    PassStatus `json:"status"`
	Attempted int        `json:"attempted"`
	Synced    int        `json:"synced"`
	Failed    int        `json:"failed"`
	Rejected  int        `json:"rejected"` // subset of Failed answered with a non-retryable 4xx
	Skipped   int        `json:"skipped"`
	Evicted   int        `json:"evicted"`
}

// SyncState is the queue state plus whether a pass is running.
type SyncState struct {
	queue.State
	IsSyncing bool `json:"isSyncing"`
}

// OnlineChecker reports current connectivity.
type OnlineChecker interface {
	IsOnline() bool
}

// OnlineFunc adapts a func to OnlineChecker.
type OnlineFunc func() bool

func (f OnlineFunc) IsOnline() bool { return f() }

// Config tunes the dispatcher.
type Config struct {
	MaxRetries int
	BaseDelay  time.Duration
	Endpoints  Endpoints
}

// Dispatcher delivers pending queue items one at a time.
type Dispatcher struct {
	store     queue.Store
	transport Transport
	online    OnlineChecker
	cfg       Config
	logger    *slog.Logger
	metrics   *metrics.Sync

	syncing atomic.Bool

	// OnEvicted is called for every item dropped after exhausting its retries.
	OnEvicted func(queue.Item)
	now       func() time.Time
}

// NewDispatcher creates a dispatcher. Zero config values take the defaults.
func NewDispatcher(store queue.Store, transport Transport, online OnlineChecker, cfg Config, logger *slog.Logger, m *metrics.Sync) *Dispatcher {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	if online == nil {
		online = OnlineFunc(func() bool { return true })
	}
	return &Dispatcher{
		store:     store,
		transport: transport,
		online:    online,
		cfg:       cfg,
		logger:    logger,
		metrics:   m,
		now:       time.Now,
	}
}

// SetClock replaces the time source.
func (d *Dispatcher) SetClock(now func() time.Time) {
	d.now = now
}

// IsSyncing reports whether a pass is in progress.
func (d *Dispatcher) IsSyncing() bool {
	return d.syncing.Load()
}

// State returns the queue depth and the syncing flag.
func (d *Dispatcher) State(ctx context.Context) (SyncState, error) {
	s, err := d.store.State(ctx)
	if err != nil {
		return SyncState{}, err
	}
	return SyncState{State: s, IsSyncing: d.IsSyncing()}, nil
}

// SyncNow runs one pass over the pending items. A call made while another pass
// is running returns immediately with PassSkippedBusy.
func (d *Dispatcher) SyncNow(ctx context.Context) (PassResult, error) {
	if !d.online.IsOnline() {
		d.metrics.Pass(string(PassSkippedOffline))
		return PassResult{Status: PassSkippedOffline}, nil
	}
	if !d.syncing.CompareAndSwap(false, true) {
		d.metrics.Pass(string(PassSkippedBusy))
		return PassResult{Status: PassSkippedBusy}, nil
	}
	defer d.syncing.Store(false)

	result := PassResult{Status: PassCompleted}

	items, err := d.store.ListPending(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list pending items: %w", err)
	}

	var errs []error
	for _, item := range items {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if err := d.process(ctx, item, &result); err != nil {
			errs = append(errs, err)
		}
	}

	if err := d.store.ClearSynced(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to clear synced items: %w", err))
	}

	d.metrics.Pass(string(PassCompleted))
	d.logger.Debug("sync pass finished",
		slog.Int("attempted", result.Attempted),
		slog.Int("synced", result.Synced),
		slog.Int("failed", result.Failed),
		slog.Int("skipped", result.Skipped),
		slog.Int("evicted", result.Evicted))
	return result, errors.Join(errs...)
}

// process handles a single item. Returned errors are store failures only;
// delivery failures are recorded on the item.
func (d *Dispatcher) process(ctx context.Context, item queue.Item, result *PassResult) error {
	logger := d.logger.With(slog.String("item_id", item.ID), slog.String("entity", string(item.Entity)))

	if item.Retries >= d.cfg.MaxRetries {
		if err := d.store.MarkFailed(ctx, item.ID); err != nil {
			return fmt.Errorf("failed to evict item %s: %w", item.ID, err)
		}
		result.Evicted++
		d.metrics.Evicted(string(item.Entity))
		logger.Error("queue item evicted after max retries",
			slog.Int("retries", item.Retries),
			slog.String("action", string(item.Action)))
		if d.OnEvicted != nil {
			d.OnEvicted(item)
		}
		return nil
	}

	now := d.now()
	if !due(d.cfg.BaseDelay, item.Retries, item.LastAttempt, now) {
		result.Skipped++
		return nil
	}

	path, ok := d.cfg.Endpoints.Resolve(item.Entity)
	if !ok {
		logger.Error("no sync endpoint for entity")
		result.Attempted++
		result.Failed++
		d.metrics.Attempt(string(item.Entity), "no_endpoint")
		if err := d.store.IncrementRetry(ctx, item.ID, now); err != nil {
			return fmt.Errorf("failed to record retry for %s: %w", item.ID, err)
		}
		return nil
	}

	env := dto.SyncEnvelope{
		Action:           string(item.Action),
		Data:             item.Payload,
		OfflineTimestamp: item.EnqueuedAt,
		OfflineID:        item.ID,
	}

	result.Attempted++
	if err := d.transport.Deliver(ctx, path, env); err != nil {
		result.Failed++
		var statusErr *StatusError
		if errors.As(err, &statusErr) && !statusErr.Retryable() {
			result.Rejected++
			d.metrics.Attempt(string(item.Entity), "rejected")
			logger.Error("sync attempt rejected by server",
				slog.Int("status", statusErr.StatusCode),
				slog.Int("retries", item.Retries),
				slog.String("error", err.Error()))
		} else {
			d.metrics.Attempt(string(item.Entity), "failure")
			logger.Warn("sync attempt failed", slog.Int("retries", item.Retries), slog.String("error", err.Error()))
		}
		if err := d.store.IncrementRetry(ctx, item.ID, now); err != nil {
			return fmt.Errorf("failed to record retry for %s: %w", item.ID, err)
		}
		return nil
	}

	result.Synced++
	d.metrics.Attempt(string(item.Entity), "success")
	if err := d.store.MarkSynced(ctx, item.ID); err != nil {
		return fmt.Errorf("failed to mark %s synced: %w", item.ID, err)
	}
	return nil
}

// Run calls SyncNow every interval until ctx is done.
func (d *Dispatcher) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := d.SyncNow(ctx); err != nil && ctx.Err() == nil {
				d.logger.Error("periodic sync failed", slog.String("error", err.Error()))
			}
		}
	}
}
