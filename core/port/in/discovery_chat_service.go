package in

import (
	"context"

	"discovery_server/core/domain"

	"github.com/google/uuid"
)

// ChatRequest is a natural-language message to the discovery assistant.
type ChatRequest struct {
	Message string     `json:"message"`
	UserID  *uuid.UUID `json:"user_id,omitempty"`
}

// ChatResponse pairs the assistant's reply with the events it is
// talking about.
type ChatResponse struct {
	Reply  string          `json:"reply"`
	Events []*domain.Event `json:"events"`
}

// ChatService delegates natural-language queries to the LLM
// microservice and resolves the extracted intent against the event
// store.
type ChatService interface {
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}
