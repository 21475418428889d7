package queue

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Opener initializes the underlying store.
type Opener func(ctx context.Context) (Store, error)

// LazyStore opens its backing store in the background. Calls made before the
// store is ready block until initialization finishes or ctx is done. If the
// opener fails, the error is logged and the store degrades to NoopStore.
type LazyStore struct {
	ready    chan struct{}
	inner    Store
	degraded bool
	initErr  error

	mu      sync.Mutex
	pending []*pendingSub
}

type pendingSub struct {
	fn      func(State)
	cancel  func()
	removed bool
}

var _ Store = (*LazyStore)(nil)

// NewLazyStore starts open in a goroutine and returns immediately.
func NewLazyStore(ctx context.Context, open Opener, logger *slog.Logger) *LazyStore {
	s := &LazyStore{ready: make(chan struct{})}
	go func() {
		inner, err := open(ctx)
		if err != nil {
			logger.Error("Offline queue storage unavailable, continuing without durability", slog.String("error", err.Error()))
			inner = NoopStore{}
			s.degraded = true
			s.initErr = err
		}
		s.mu.Lock()
		s.inner = inner
		for _, p := range s.pending {
			if !p.removed {
				p.cancel = inner.Subscribe(p.fn)
			}
		}
		s.pending = nil
		s.mu.Unlock()
		close(s.ready)
	}()
	return s
}

// Wait blocks until initialization finished.
func (s *LazyStore) Wait(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Degraded reports whether initialization failed and the store is inert.
// It returns false while initialization is still running.
func (s *LazyStore) Degraded() (bool, error) {
	select {
	case <-s.ready:
		return s.degraded, s.initErr
	default:
		return false, nil
	}
}

func (s *LazyStore) store(ctx context.Context) (Store, error) {
	if err := s.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner, nil
}

func (s *LazyStore) Add(ctx context.Context, entity Entity, action Action, payload any, at time.Time) (Item, error) {
	st, err := s.store(ctx)
	if err != nil {
		return Item{}, err
	}
	return st.Add(ctx, entity, action, payload, at)
}

func (s *LazyStore) AddWithID(ctx context.Context, id string, entity Entity, action Action, payload any, at time.Time) (Item, error) {
	st, err := s.store(ctx)
	if err != nil {
		return Item{}, err
	}
	return st.AddWithID(ctx, id, entity, action, payload, at)
}

func (s *LazyStore) ListPending(ctx context.Context) ([]Item, error) {
	st, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	return st.ListPending(ctx)
}

func (s *LazyStore) MarkSynced(ctx context.Context, id string) error {
	st, err := s.store(ctx)
	if err != nil {
		return err
	}
	return st.MarkSynced(ctx, id)
}

func (s *LazyStore) IncrementRetry(ctx context.Context, id string, attemptAt time.Time) error {
	st, err := s.store(ctx)
	if err != nil {
		return err
	}
	return st.IncrementRetry(ctx, id, attemptAt)
}

func (s *LazyStore) MarkFailed(ctx context.Context, id string) error {
	st, err := s.store(ctx)
	if err != nil {
		return err
	}
	return st.MarkFailed(ctx, id)
}

func (s *LazyStore) ClearSynced(ctx context.Context) error {
	st, err := s.store(ctx)
	if err != nil {
		return err
	}
	return st.ClearSynced(ctx)
}

func (s *LazyStore) ClearAll(ctx context.Context) error {
	st, err := s.store(ctx)
	if err != nil {
		return err
	}
	return st.ClearAll(ctx)
}

func (s *LazyStore) State(ctx context.Context) (State, error) {
	st, err := s.store(ctx)
	if err != nil {
		return State{}, err
	}
	return st.State(ctx)
}

// Subscribe registers fn on the backing store, deferring registration until it is ready.
func (s *LazyStore) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inner != nil {
		return s.inner.Subscribe(fn)
	}
	p := &pendingSub{fn: fn}
	s.pending = append(s.pending, p)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		p.removed = true
		if p.cancel != nil {
			p.cancel()
		}
	}
}

func (s *LazyStore) Close() error {
	<-s.ready
	return s.inner.Close()
}
