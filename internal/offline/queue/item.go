// Package queue is the client-side durable store of mutations waiting to be synced.
package queue

import (
	"encoding/json"
	"errors"
	"time"
)

// Entity is the logical target of a queued mutation.
type Entity string

const (
	EntityTimeEntry Entity = "time_entry"
	EntityLead      Entity = "lead"
	EntityClient    Entity = "client"
)

// AllEntities lists every entity the agent can queue.
func AllEntities() []Entity {
	return []Entity{EntityTimeEntry, EntityLead, EntityClient}
}

// Action is the mutation kind applied to an entity.
type Action string

const (
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionClockIn  Action = "clock_in"
	ActionClockOut Action = "clock_out"
)

// Item is a single pending mutation.
type Item struct {
	ID          string          `json:"id"`
	Entity      Entity          `json:"entity"`
	Action      Action          `json:"action"`
	Payload     json.RawMessage `json:"payload"`
	EnqueuedAt  time.Time       `json:"enqueuedAt"`
	Retries     int             `json:"retries"`
	Synced      bool            `json:"synced"`
	LastAttempt *time.Time      `json:"lastAttempt,omitempty"`
}

// State is the aggregate queue depth shown on UI badges.
type State struct {
	TotalPending int            `json:"totalPending"`
	ByEntity     map[Entity]int `json:"byEntity"`
}

var (
	// ErrItemNotFound is returned when an id does not exist in the store.
	ErrItemNotFound = errors.New("queue item not found")
	// ErrDurabilityDisabled is returned by Add when the store cannot persist anything.
	ErrDurabilityDisabled = errors.New("offline durability disabled")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("queue store closed")
	// ErrDuplicateID is returned by AddWithID when the id is already queued.
	ErrDuplicateID = errors.New("queue item id already exists")
)

func encodePayload(payload any) (json.RawMessage, error) {
	switch p := payload.(type) {
	case nil:
		return json.RawMessage("null"), nil
	case json.RawMessage:
		if !json.Valid(p) {
			return nil, errors.New("payload is not valid JSON")
		}
		return p, nil
	case []byte:
		if !json.Valid(p) {
			return nil, errors.New("payload is not valid JSON")
		}
		return json.RawMessage(p), nil
	default:
		return json.Marshal(p)
	}
}

func checkID(id string) error {
	if id == "" {
		return errors.New("queue item id is required")
	}
	return nil
}

func stateOf(items []Item) State {
	s := State{ByEntity: map[Entity]int{}}
	for _, it := range items {
		if it.Synced {
			continue
		}
		s.TotalPending++
		s.ByEntity[it.Entity]++
	}
	return s
}
