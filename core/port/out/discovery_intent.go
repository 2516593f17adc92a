package out

import (
	"context"

	"discovery_server/core/domain"

	"github.com/google/uuid"
)

// SearchParams is the structured intent the LLM microservice extracts
// from a natural-language message. DateFrom/DateTo/Location are
// transported but not yet applied as filters.
type SearchParams struct {
	Query    *string `json:"query,omitempty"`
	Category *string `json:"category,omitempty"`
	DateFrom *string `json:"date_from,omitempty"`
	DateTo   *string `json:"date_to,omitempty"`
	Location *string `json:"location,omitempty"`
}

// IntentService is the narrow interface to the external LLM
// microservice. Implementations report unreachability and non-success
// responses as distinct apperr codes so callers and tests can tell the
// two failure modes apart without a live network dependency.
type IntentService interface {
	// ParseIntent converts a natural-language message into search
	// parameters.
	ParseIntent(ctx context.Context, message string) (*SearchParams, error)

	// GenerateReply produces a conversational reply about the given
	// events. userID is optional and enables personalization.
	GenerateReply(ctx context.Context, message string, events []*domain.Event, userID *uuid.UUID) (string, error)

	// HealthCheck probes the microservice's health endpoint.
	HealthCheck(ctx context.Context) error
}
