package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"discovery_server/core/domain"
	"discovery_server/core/port/in"
	"discovery_server/core/port/out"
	"discovery_server/pkg/apperr"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

// Service implements in.UserService.
type Service struct {
	repo out.UserRepository
}

// NewService creates a new user service.
func NewService(repo out.UserRepository) in.UserService {
	return &Service{repo: repo}
}

func (s *Service) CreateUser(ctx context.Context, req *in.CreateUserRequest) (*domain.User, error) {
	user := &domain.User{
		ID:                 uuid.New(),
		Email:              req.Email,
		Name:               req.Name,
		LocationPreference: req.LocationPreference,
		CreatedAt:          time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		var fieldErr *domain.FieldError
		if errors.As(err, &fieldErr) {
			return nil, apperr.InvalidInput(fieldErr.Field, fieldErr.Reason)
		}
		return nil, apperr.ValidationFailed(err.Error())
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, out.ErrDuplicate) {
			return nil, apperr.AlreadyExists("user").WithDetail("email", user.Email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetProfile assembles the user row, all their preferences and their
// most recent interactions joined with event metadata. Not-found fires
// only when the user row itself is absent; empty preference and
// interaction lists are valid.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	prefs, err := s.repo.ListPreferences(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile preferences: %w", err)
	}

	recent, err := s.repo.RecentInteractionsWithEvents(ctx, id, domain.ProfileInteractionLimit)
	if err != nil {
		return nil, fmt.Errorf("get profile interactions: %w", err)
	}

	profile := &domain.UserProfile{
		User:               *user,
		Preferences:        make([]domain.UserPreference, len(prefs)),
		RecentInteractions: make([]domain.InteractionWithEvent, len(recent)),
	}
	for i, p := range prefs {
		profile.Preferences[i] = *p
	}
	for i, r := range recent {
		profile.RecentInteractions[i] = *r
	}
	return profile, nil
}

func (s *Service) ListPreferences(ctx context.Context, userID uuid.UUID) ([]*domain.UserPreference, error) {
	prefs, err := s.repo.ListPreferences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	return prefs, nil
}

func (s *Service) UpsertPreference(ctx context.Context, userID uuid.UUID, req *in.UpsertPreferenceRequest) (*domain.UserPreference, error) {
	if strings.TrimSpace(req.Category) == "" {
		return nil, apperr.MissingField("category")
	}

	pref := &domain.UserPreference{
		ID:        uuid.New(),
		UserID:    userID,
		Category:  req.Category,
		Weight:    req.Weight,
		CreatedAt: time.Now().UTC(),
	}

	stored, err := s.repo.UpsertPreference(ctx, pref)
	if err != nil {
		return nil, fmt.Errorf("upsert preference: %w", err)
	}
	return stored, nil
}

func (s *Service) ListInteractions(ctx context.Context, req *in.ListInteractionsRequest) ([]*domain.UserInteraction, error) {
	filter := &domain.InteractionFilter{
		UserID: req.UserID,
		Types:  req.Types,
		Limit:  req.Limit,
	}
	interactions, err := s.repo.ListInteractions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	return interactions, nil
}

func (s *Service) AddInteraction(ctx context.Context, userID uuid.UUID, req *in.AddInteractionRequest) (*domain.UserInteraction, error) {
	if strings.TrimSpace(req.InteractionType) == "" {
		return nil, apperr.MissingField("interaction_type")
	}
	if req.EventID == uuid.Nil {
		return nil, apperr.MissingField("event_id")
	}

	interaction := &domain.UserInteraction{
		ID:              uuid.New(),
		UserID:          userID,
		EventID:         req.EventID,
		InteractionType: domain.InteractionType(req.InteractionType),
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.InsertInteraction(ctx, interaction); err != nil {
		return nil, fmt.Errorf("add interaction: %w", err)
	}
	return interaction, nil
}
