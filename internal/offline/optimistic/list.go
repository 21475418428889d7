// Package optimistic keeps tentative local records until the authoritative
// outcome is known.
package optimistic

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// LocalIDPrefix marks ids that were never acknowledged by the server.
const LocalIDPrefix = "local-"

// Status of an entry in the list.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

// Entry is one record and its confirmation state.
type Entry[T any] struct {
	ID     string
	Value  T
	Status Status
}

// IsLocal reports whether id is a local marker id.
func IsLocal(id string) bool {
	return len(id) > len(LocalIDPrefix) && strings.HasPrefix(id, LocalIDPrefix)
}

// List is an ordered set of entries. Every transition is applied under one lock.
type List[T any] struct {
	mu      sync.Mutex
	entries []Entry[T]
}

// Insert adds a tentative entry and returns its local id.
func (l *List[T]) Insert(v T) string {
	id := LocalIDPrefix + uuid.NewString()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry[T]{ID: id, Value: v, Status: StatusPending})
	return id
}

// Confirm replaces the tentative entry localID with its authoritative form.
// An empty serverID keeps the local id.
func (l *List[T]) Confirm(localID, serverID string, v T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexOf(localID)
	if i < 0 {
		return false
	}
	if serverID == "" {
		serverID = localID
	}
	l.entries[i] = Entry[T]{ID: serverID, Value: v, Status: StatusConfirmed}
	return true
}

// Replace updates the value of an entry without changing its state.
func (l *List[T]) Replace(id string, v T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.entries[i].Value = v
	return true
}

// Reject removes the tentative entry localID.
func (l *List[T]) Reject(localID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexOf(localID)
	if i < 0 || l.entries[i].Status != StatusPending {
		return false
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return true
}

// Items returns a snapshot in insertion order.
func (l *List[T]) Items() []Entry[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry[T], len(l.entries))
	copy(out, l.entries)
	return out
}

// Pending counts tentative entries.
func (l *List[T]) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.entries {
		if e.Status == StatusPending {
			n++
		}
	}
	return n
}

func (l *List[T]) indexOf(id string) int {
	for i, e := range l.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
