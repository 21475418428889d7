package queue

import (
	"context"
	"time"
)

// NoopStore is the inert store used when durability is disabled or the
// durable store could not be initialized. Nothing is ever pending.
type NoopStore struct{}

var _ Store = NoopStore{}

func (NoopStore) Add(context.Context, Entity, Action, any, time.Time) (Item, error) {
	return Item{}, ErrDurabilityDisabled
}

func (NoopStore) AddWithID(context.Context, string, Entity, Action, any, time.Time) (Item, error) {
	return Item{}, ErrDurabilityDisabled
}

func (NoopStore) ListPending(context.Context) ([]Item, error)             { return nil, nil }
func (NoopStore) MarkSynced(context.Context, string) error                { return nil }
func (NoopStore) IncrementRetry(context.Context, string, time.Time) error { return nil }
func (NoopStore) MarkFailed(context.Context, string) error                { return nil }
func (NoopStore) ClearSynced(context.Context) error                       { return nil }
func (NoopStore) ClearAll(context.Context) error                          { return nil }
func (NoopStore) Close() error                                            { return nil }

func (NoopStore) State(context.Context) (State, error) {
	return State{ByEntity: map[Entity]int{}}, nil
}

func (NoopStore) Subscribe(func(State)) func() { return func() {} }
