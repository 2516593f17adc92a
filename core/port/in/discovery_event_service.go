package in

import (
	"context"
	"time"

	"discovery_server/core/domain"

	"github.com/google/uuid"
)

// CreateEventRequest carries the client-supplied fields of a new event.
type CreateEventRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Venue       *string    `json:"venue,omitempty"`
	SourceURL   string     `json:"source_url"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Category    *string    `json:"category,omitempty"`
}

// SearchEventsRequest carries the optional search filters.
type SearchEventsRequest struct {
	Query    *string
	Category *string
	Limit    int
}

// EventService defines event use cases.
type EventService interface {
	CreateEvent(ctx context.Context, req *CreateEventRequest) (*domain.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	ListEvents(ctx context.Context) ([]*domain.Event, error)
	SearchEvents(ctx context.Context, req *SearchEventsRequest) ([]*domain.Event, error)
}
