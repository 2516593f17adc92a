package in

import (
	"context"

	"discovery_server/core/domain"

	"github.com/google/uuid"
)

// CreateUserRequest carries the client-supplied fields of a new user.
type CreateUserRequest struct {
	Email              string  `json:"email"`
	Name               *string `json:"name,omitempty"`
	LocationPreference *string `json:"location_preference,omitempty"`
}

// UpsertPreferenceRequest sets the weight for a (user, category) pair.
type UpsertPreferenceRequest struct {
	Category string `json:"category"`
	Weight   int    `json:"weight"`
}

// AddInteractionRequest records a user acting on an event.
type AddInteractionRequest struct {
	EventID         uuid.UUID `json:"event_id"`
	InteractionType string    `json:"interaction_type"`
}

// ListInteractionsRequest narrows an interaction listing.
type ListInteractionsRequest struct {
	UserID uuid.UUID
	Types  []domain.InteractionType
	Limit  int
}

// UserService defines user, preference and interaction use cases.
type UserService interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*domain.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error)
	ListPreferences(ctx context.Context, userID uuid.UUID) ([]*domain.UserPreference, error)
	UpsertPreference(ctx context.Context, userID uuid.UUID, req *UpsertPreferenceRequest) (*domain.UserPreference, error)
	ListInteractions(ctx context.Context, req *ListInteractionsRequest) ([]*domain.UserInteraction, error)
	AddInteraction(ctx context.Context, userID uuid.UUID, req *AddInteractionRequest) (*domain.UserInteraction, error)
}
