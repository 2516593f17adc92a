package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents an account used for personalization.
type User struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	Name               *string   `json:"name,omitempty"`
	LocationPreference *string   `json:"location_preference,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// Validate checks the invariants enforced on user creation.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return &FieldError{Field: "email", Reason: "must not be empty"}
	}
	return nil
}

// UserPreference is a signed affinity between a user and a category.
// Positive weight = like, negative = dislike, magnitude = strength.
// At most one row exists per (user_id, category) pair; the store
// enforces this with an atomic upsert that keeps the original row id.
type UserPreference struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Category  string    `json:"category"`
	Weight    int       `json:"weight"`
	CreatedAt time.Time `json:"created_at"`
}

// InteractionType tags a user-event interaction. The set is open: the
// values below are the ones the application produces today, but any
// non-empty string is stored as-is.
type InteractionType string

const (
	InteractionView    InteractionType = "view"
	InteractionSave    InteractionType = "save"
	InteractionAttend  InteractionType = "attend"
	InteractionDismiss InteractionType = "dismiss"
)

// UserInteraction is an append-only record of a user acting on an event.
type UserInteraction struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	EventID         uuid.UUID       `json:"event_id"`
	InteractionType InteractionType `json:"interaction_type"`
	CreatedAt       time.Time       `json:"created_at"`
}

// InteractionWithEvent is an interaction joined with event metadata,
// used in profile assembly.
type InteractionWithEvent struct {
	InteractionType InteractionType `json:"interaction_type"`
	EventTitle      string          `json:"event_title"`
	EventCategory   *string         `json:"event_category,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// InteractionFilter narrows an interaction listing. Types empty means
// all types. Results are always newest first.
type InteractionFilter struct {
	UserID uuid.UUID
	Types  []InteractionType
	Limit  int
}

// UserProfile is a read-only aggregate assembled on demand, not stored.
type UserProfile struct {
	User               User                   `json:"user"`
	Preferences        []UserPreference       `json:"preferences"`
	RecentInteractions []InteractionWithEvent `json:"recent_interactions"`
}

// ProfileInteractionLimit caps the recent interactions included in a
// profile.
const ProfileInteractionLimit = 20
