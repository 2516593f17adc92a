package http

import (
	"discovery_server/core/port/in"
	"discovery_server/pkg/apperr"
	"discovery_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ChatHandler handles the natural-language chat endpoint
type ChatHandler struct {
	service in.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(service in.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Register registers chat routes
func (h *ChatHandler) Register(router fiber.Router) {
	router.Post("/chat", h.Chat)
}

// Chat forwards the message to the LLM microservice and returns its
// reply together with the events the reply talks about.
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req in.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body").WithError(err)
	}

	resp, err := h.service.Chat(c.Context(), &req)
	if err != nil {
		if apperr.IsAppError(err) {
			return err
		}
		return apperr.InternalWithError(err)
	}
	return response.OK(c, resp)
}
