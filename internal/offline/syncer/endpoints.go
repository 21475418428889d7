package syncer

import (
	"fmt"

	"github.com/SscSPs/solar_backoffice/internal/offline/queue"
)

// DefaultEndpoint is the built-in remote path for an entity.
// Every value of queue.AllEntities must have a case here.
func DefaultEndpoint(e queue.Entity) (string, bool) {
	switch e {
	case queue.EntityTimeEntry:
		return "/sync/time-entries", true
	case queue.EntityLead:
		return "/sync/leads", true
	case queue.EntityClient:
		return "/sync/clients", true
	}
	return "", false
}

// Endpoints resolves the remote path of each entity, with optional overrides.
type Endpoints struct {
	overrides map[queue.Entity]string
}

// NewEndpoints builds the table; overrides may replace or add entity paths.
func NewEndpoints(overrides map[string]string) Endpoints {
	o := make(map[queue.Entity]string, len(overrides))
	for entity, path := range overrides {
		o[queue.Entity(entity)] = path
	}
	return Endpoints{overrides: o}
}

// Resolve returns the path for e.
func (t Endpoints) Resolve(e queue.Entity) (string, bool) {
	if path, ok := t.overrides[e]; ok && path != "" {
		return path, true
	}
	return DefaultEndpoint(e)
}

// Validate fails if any known entity has no endpoint.
func (t Endpoints) Validate() error {
	for _, e := range queue.AllEntities() {
		if _, ok := t.Resolve(e); !ok {
			return fmt.Errorf("no sync endpoint configured for entity %q", e)
		}
	}
	return nil
}
