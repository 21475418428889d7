package queue

import (
	"context"
	"sync"
	"time"
)

// Store persists pending mutations. Every mutating call publishes the new
// State to subscribers.
type Store interface {
	Add(ctx context.Context, entity Entity, action Action, payload any, at time.Time) (Item, error)
	// AddWithID is Add with a caller-chosen id, used when the id was already
	// sent to the server. An id already in the store is ErrDuplicateID.
	AddWithID(ctx context.Context, id string, entity Entity, action Action, payload any, at time.Time) (Item, error)
	ListPending(ctx context.Context) ([]Item, error)
	MarkSynced(ctx context.Context, id string) error
	IncrementRetry(ctx context.Context, id string, attemptAt time.Time) error
	MarkFailed(ctx context.Context, id string) error
	ClearSynced(ctx context.Context) error
	ClearAll(ctx context.Context) error
	State(ctx context.Context) (State, error)
	Subscribe(fn func(State)) (unsubscribe func())
	Close() error
}

// broadcaster fans State updates out to subscribers.
type broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(State)
}

func (b *broadcaster) Subscribe(fn func(State)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = map[int]func(State){}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

func (b *broadcaster) publish(s State) {
	b.mu.Lock()
	subs := make([]func(State), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.Unlock()
	for _, fn := range subs {
		fn(s)
	}
}
