package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event represents a discoverable local happening.
type Event struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Venue       *string   `json:"venue,omitempty"`
	SourceURL   string    `json:"source_url"`
	StartTime   time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Category    *string   `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks the invariants enforced on event creation.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return &FieldError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(e.SourceURL) == "" {
		return &FieldError{Field: "source_url", Reason: "must not be empty"}
	}
	if e.StartTime.IsZero() {
		return &FieldError{Field: "start_time", Reason: "must be set"}
	}
	if e.EndTime != nil && e.EndTime.Before(e.StartTime) {
		return &FieldError{Field: "end_time", Reason: "must not be before start_time"}
	}
	return nil
}

// EventFilter resolves optional search inputs into one selection
// predicate. The four presence combinations of Query and Category share
// a single code path instead of four templates:
//
//	Query + Category: (title OR description contains query) AND category equals
//	Query only:       title OR description contains query
//	Category only:    category equals
//	neither:          all events
//
// Text containment is case-insensitive on the literal input; category
// comparison is exact and case-sensitive. Limit of 0 means uncapped.
type EventFilter struct {
	Query    *string
	Category *string
	Limit    int
}

// Matches reports whether an event satisfies the filter predicate.
func (f *EventFilter) Matches(e *Event) bool {
	if f.Query != nil {
		q := strings.ToLower(*f.Query)
		title := strings.ToLower(e.Title)
		desc := ""
		if e.Description != nil {
			desc = strings.ToLower(*e.Description)
		}
		if !strings.Contains(title, q) && !strings.Contains(desc, q) {
			return false
		}
	}
	if f.Category != nil {
		if e.Category == nil || *e.Category != *f.Category {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the filter selects all events.
func (f *EventFilter) IsEmpty() bool {
	return f.Query == nil && f.Category == nil
}
