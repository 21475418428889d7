package queue

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps items in process memory. Used by tests and as the
// backing store when no durable path is configured.
type MemoryStore struct {
	broadcaster
	mu     sync.Mutex
	items  []Item
	closed bool
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Add(ctx context.Context, entity Entity, action Action, payload any, at time.Time) (Item, error) {
	return s.AddWithID(ctx, uuid.NewString(), entity, action, payload, at)
}

func (s *MemoryStore) AddWithID(_ context.Context, id string, entity Entity, action Action, payload any, at time.Time) (Item, error) {
	if err := checkID(id); err != nil {
		return Item{}, err
	}
	raw, err := encodePayload(payload)
	if err != nil {
		return Item{}, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Item{}, ErrClosed
	}
	if s.indexOf(id) >= 0 {
		s.mu.Unlock()
		return Item{}, ErrDuplicateID
	}
	item := Item{
		ID:         id,
		Entity:     entity,
		Action:     action,
		Payload:    raw,
		EnqueuedAt: at,
	}
	s.items = append(s.items, item)
	state := stateOf(s.items)
	s.mu.Unlock()

	s.publish(state)
	return item, nil
}

func (s *MemoryStore) ListPending(_ context.Context) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	out := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		if !it.Synced {
			out = append(out, copyItem(it))
		}
	}
	return out, nil
}

func (s *MemoryStore) MarkSynced(_ context.Context, id string) error {
	return s.mutate(func() error {
		i := s.indexOf(id)
		if i < 0 {
			return ErrItemNotFound
		}
		s.items[i].Synced = true
		return nil
	})
}

func (s *MemoryStore) IncrementRetry(_ context.Context, id string, attemptAt time.Time) error {
	return s.mutate(func() error {
		i := s.indexOf(id)
		if i < 0 {
			return ErrItemNotFound
		}
		s.items[i].Retries++
		at := attemptAt
		s.items[i].LastAttempt = &at
		return nil
	})
}

func (s *MemoryStore) MarkFailed(_ context.Context, id string) error {
	return s.mutate(func() error {
		i := s.indexOf(id)
		if i < 0 {
			return ErrItemNotFound
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		return nil
	})
}

func (s *MemoryStore) ClearSynced(_ context.Context) error {
	return s.mutate(func() error {
		kept := s.items[:0]
		for _, it := range s.items {
			if !it.Synced {
				kept = append(kept, it)
			}
		}
		s.items = kept
		return nil
	})
}

func (s *MemoryStore) ClearAll(_ context.Context) error {
	return s.mutate(func() error {
		s.items = nil
		return nil
	})
}

func (s *MemoryStore) State(_ context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stateOf(s.items), nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// mutate runs fn under the lock and publishes the resulting state on success.
func (s *MemoryStore) mutate(fn func() error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if err := fn(); err != nil {
		s.mu.Unlock()
		return err
	}
	state := stateOf(s.items)
	s.mu.Unlock()

	s.publish(state)
	return nil
}

func (s *MemoryStore) indexOf(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func copyItem(it Item) Item {
	if it.LastAttempt != nil {
		at := *it.LastAttempt
		it.LastAttempt = &at
	}
	it.Payload = append([]byte(nil), it.Payload...)
	return it
}
