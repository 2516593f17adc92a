package chat

import (
	"context"
	"fmt"
	"strings"

	"discovery_server/core/domain"
	"discovery_server/core/port/in"
	"discovery_server/core/port/out"
	"discovery_server/pkg/apperr"
	"discovery_server/pkg/logger"
)

// Service implements in.ChatService. It delegates language work to the
// LLM microservice and keeps event selection local: parse-intent
// extracts search parameters, the event filter resolves them against
// the store, and the matched events go back out for reply generation.
type Service struct {
	intents    out.IntentService
	events     out.EventRepository
	eventLimit int
}

// NewService creates a new chat service. eventLimit caps how many
// upcoming events are handed to the reply generator.
func NewService(intents out.IntentService, events out.EventRepository, eventLimit int) in.ChatService {
	if eventLimit <= 0 {
		eventLimit = 20
	}
	return &Service{
		intents:    intents,
		events:     events,
		eventLimit: eventLimit,
	}
}

func (s *Service) Chat(ctx context.Context, req *in.ChatRequest) (*in.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, apperr.MissingField("message")
	}

	params, err := s.intents.ParseIntent(ctx, req.Message)
	if err != nil {
		return nil, fmt.Errorf("parse intent: %w", err)
	}

	// date_from/date_to/location are transported but not applied yet.
	filter := &domain.EventFilter{
		Query:    params.Query,
		Category: params.Category,
		Limit:    s.eventLimit,
	}

	events, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("chat event lookup: %w", err)
	}

	logger.WithContext(ctx).Debug("chat resolved %d events for message", len(events))

	reply, err := s.intents.GenerateReply(ctx, req.Message, events, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("generate reply: %w", err)
	}

	return &in.ChatResponse{
		Reply:  reply,
		Events: events,
	}, nil
}
