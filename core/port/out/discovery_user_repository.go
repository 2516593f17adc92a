package out

import (
	"context"

	"discovery_server/core/domain"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user, preference and
// interaction persistence.
type UserRepository interface {
	// CreateUser stores a new user. Returns domain-level duplicate
	// information through the adapter's ErrDuplicate when the email is
	// already registered.
	CreateUser(ctx context.Context, user *domain.User) error

	// GetUser returns the user with the given id, or (nil, nil) when
	// absent.
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// ListPreferences returns all preferences for a user.
	ListPreferences(ctx context.Context, userID uuid.UUID) ([]*domain.UserPreference, error)

	// UpsertPreference atomically inserts or overwrites the weight for
	// the (user_id, category) pair and returns the surviving row. On
	// update the original row id and created_at are preserved.
	UpsertPreference(ctx context.Context, pref *domain.UserPreference) (*domain.UserPreference, error)

	// InsertInteraction appends an interaction record.
	InsertInteraction(ctx context.Context, interaction *domain.UserInteraction) error

	// ListInteractions returns interactions matching the filter,
	// newest first.
	ListInteractions(ctx context.Context, filter *domain.InteractionFilter) ([]*domain.UserInteraction, error)

	// RecentInteractionsWithEvents returns the user's most recent
	// interactions joined with their event's title and category,
	// newest first, capped at limit.
	RecentInteractionsWithEvents(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.InteractionWithEvent, error)
}
