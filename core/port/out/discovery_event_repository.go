package out

import (
	"context"

	"discovery_server/core/domain"

	"github.com/google/uuid"
)

// EventRepository defines the interface for event persistence.
// Events are append-only from the application's point of view: no
// update or delete operations exist.
type EventRepository interface {
	// Insert stores a fully populated event (id and created_at already
	// assigned by the caller).
	Insert(ctx context.Context, event *domain.Event) error

	// Get returns the event with the given id, or (nil, nil) when no
	// such event exists.
	Get(ctx context.Context, id uuid.UUID) (*domain.Event, error)

	// List returns events matching the filter, ordered by start_time
	// ascending with deterministic tie-breaks. A nil filter selects
	// all events.
	List(ctx context.Context, filter *domain.EventFilter) ([]*domain.Event, error)
}
