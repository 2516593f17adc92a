package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"discovery_server/core/domain"
	"discovery_server/core/port/in"
	"discovery_server/core/port/out"
	"discovery_server/pkg/apperr"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

// fakeIntentService captures calls and plays back canned responses.
type fakeIntentService struct {
	params      *out.SearchParams
	parseErr    error
	reply       string
	replyErr    error
	lastMessage string
	replyEvents []*domain.Event
	replyUserID *uuid.UUID
}

func (f *fakeIntentService) ParseIntent(_ context.Context, message string) (*out.SearchParams, error) {
	f.lastMessage = message
	if f.parseErr != nil {
		return nil, f.parseErr
	}
	return f.params, nil
}

func (f *fakeIntentService) GenerateReply(_ context.Context, message string, events []*domain.Event, userID *uuid.UUID) (string, error) {
	f.replyEvents = events
	f.replyUserID = userID
	if f.replyErr != nil {
		return "", f.replyErr
	}
	return f.reply, nil
}

func (f *fakeIntentService) HealthCheck(context.Context) error { return nil }

// fakeEventRepository records the filter it was asked to resolve.
type fakeEventRepository struct {
	events     []*domain.Event
	lastFilter *domain.EventFilter
	failure    error
}

func (f *fakeEventRepository) Insert(context.Context, *domain.Event) error { return nil }

func (f *fakeEventRepository) Get(context.Context, uuid.UUID) (*domain.Event, error) {
	return nil, nil
}

func (f *fakeEventRepository) List(_ context.Context, filter *domain.EventFilter) ([]*domain.Event, error) {
	f.lastFilter = filter
	if f.failure != nil {
		return nil, f.failure
	}
	return f.events, nil
}

func TestChatDelegation(t *testing.T) {
	jazzNight := &domain.Event{
		ID:        uuid.New(),
		Title:     "Jazz Night",
		SourceURL: "https://example.com/jazz-night",
		StartTime: time.Date(2026, 1, 25, 20, 0, 0, 0, time.UTC),
	}
	intents := &fakeIntentService{
		params: &out.SearchParams{Query: strPtr("jazz"), Category: strPtr("music")},
		reply:  "Jazz Night is on Saturday at 8pm.",
	}
	repo := &fakeEventRepository{events: []*domain.Event{jazzNight}}
	userID := uuid.New()

	svc := NewService(intents, repo, 0)
	resp, err := svc.Chat(context.Background(), &in.ChatRequest{
		Message: "any jazz this weekend?",
		UserID:  &userID,
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if intents.lastMessage != "any jazz this weekend?" {
		t.Errorf("parse intent got message %q", intents.lastMessage)
	}
	if repo.lastFilter == nil {
		t.Fatal("event repository was never queried")
	}
	if repo.lastFilter.Query == nil || *repo.lastFilter.Query != "jazz" {
		t.Errorf("filter query = %v, want jazz", repo.lastFilter.Query)
	}
	if repo.lastFilter.Category == nil || *repo.lastFilter.Category != "music" {
		t.Errorf("filter category = %v, want music", repo.lastFilter.Category)
	}
	if repo.lastFilter.Limit != 20 {
		t.Errorf("filter limit = %d, want default 20", repo.lastFilter.Limit)
	}
	if len(intents.replyEvents) != 1 || intents.replyEvents[0].ID != jazzNight.ID {
		t.Errorf("reply generator got events %v", intents.replyEvents)
	}
	if intents.replyUserID == nil || *intents.replyUserID != userID {
		t.Errorf("reply generator got user %v, want %s", intents.replyUserID, userID)
	}
	if resp.Reply != "Jazz Night is on Saturday at 8pm." {
		t.Errorf("reply = %q", resp.Reply)
	}
	if len(resp.Events) != 1 {
		t.Errorf("response events = %d, want 1", len(resp.Events))
	}
}

func TestChatCustomEventLimit(t *testing.T) {
	intents := &fakeIntentService{params: &out.SearchParams{}, reply: "ok"}
	repo := &fakeEventRepository{}

	svc := NewService(intents, repo, 5)
	if _, err := svc.Chat(context.Background(), &in.ChatRequest{Message: "what's on?"}); err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if repo.lastFilter.Limit != 5 {
		t.Errorf("filter limit = %d, want 5", repo.lastFilter.Limit)
	}
}

func TestChatBlankMessage(t *testing.T) {
	svc := NewService(&fakeIntentService{}, &fakeEventRepository{}, 0)

	_, err := svc.Chat(context.Background(), &in.ChatRequest{Message: "   "})
	if !apperr.IsAppError(err) {
		t.Fatalf("Chat() error = %v, want AppError", err)
	}
	if status := apperr.GetHTTPStatus(err); status != 400 {
		t.Errorf("status = %d, want 400", status)
	}
}

func TestChatParseIntentFailure(t *testing.T) {
	down := apperr.ServiceUnavailable("llm-service", errors.New("connection refused"))
	svc := NewService(&fakeIntentService{parseErr: down}, &fakeEventRepository{}, 0)

	_, err := svc.Chat(context.Background(), &in.ChatRequest{Message: "hi"})
	if status := apperr.GetHTTPStatus(err); status != 503 {
		t.Errorf("status = %d, want 503", status)
	}
}

func TestChatReplyFailure(t *testing.T) {
	bad := apperr.ExternalError("llm-service", errors.New("upstream 500"))
	intents := &fakeIntentService{params: &out.SearchParams{}, replyErr: bad}
	svc := NewService(intents, &fakeEventRepository{}, 0)

	_, err := svc.Chat(context.Background(), &in.ChatRequest{Message: "hi"})
	if status := apperr.GetHTTPStatus(err); status != 502 {
		t.Errorf("status = %d, want 502", status)
	}
}

func TestChatStorageFailure(t *testing.T) {
	boom := errors.New("connection reset")
	intents := &fakeIntentService{params: &out.SearchParams{}}
	svc := NewService(intents, &fakeEventRepository{failure: boom}, 0)

	_, err := svc.Chat(context.Background(), &in.ChatRequest{Message: "hi"})
	if !errors.Is(err, boom) {
		t.Errorf("Chat() error = %v, want wrapped %v", err, boom)
	}
}
