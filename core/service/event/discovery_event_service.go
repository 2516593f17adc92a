package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"discovery_server/core/domain"
	"discovery_server/core/port/in"
	"discovery_server/core/port/out"
	"discovery_server/pkg/apperr"

	"github.com/google/uuid"
)

var ErrEventNotFound = errors.New("event not found")

// Service implements in.EventService.
type Service struct {
	repo out.EventRepository
}

// NewService creates a new event service.
func NewService(repo out.EventRepository) in.EventService {
	return &Service{repo: repo}
}

func (s *Service) CreateEvent(ctx context.Context, req *in.CreateEventRequest) (*domain.Event, error) {
	event := &domain.Event{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Venue:       req.Venue,
		SourceURL:   req.SourceURL,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Category:    req.Category,
		CreatedAt:   time.Now().UTC(),
	}

	if err := event.Validate(); err != nil {
		var fieldErr *domain.FieldError
		if errors.As(err, &fieldErr) {
			return nil, apperr.InvalidInput(fieldErr.Field, fieldErr.Reason)
		}
		return nil, apperr.ValidationFailed(err.Error())
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *Service) GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	event, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *Service) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.repo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *Service) SearchEvents(ctx context.Context, req *in.SearchEventsRequest) ([]*domain.Event, error) {
	filter := &domain.EventFilter{
		Query:    req.Query,
		Category: req.Category,
		Limit:    req.Limit,
	}

	events, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	return events, nil
}
