package http

import (
	"errors"

	"discovery_server/core/port/in"
	"discovery_server/core/service/event"
	"discovery_server/pkg/apperr"
	"discovery_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EventHandler handles HTTP requests for event operations
type EventHandler struct {
	service in.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(service in.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// Register registers event routes. The literal /search route must come
// before /:id so it is not swallowed by the id wildcard.
func (h *EventHandler) Register(router fiber.Router) {
	events := router.Group("/events")

	events.Get("/", h.List)
	events.Post("/", h.Create)
	events.Get("/search", h.Search)
	events.Get("/:id", h.Get)
}

// List returns all events sorted by start time, soonest first.
func (h *EventHandler) List(c *fiber.Ctx) error {
	events, err := h.service.ListEvents(c.Context())
	if err != nil {
		return apperr.DatabaseError("list events", err)
	}
	return response.OK(c, events)
}

// Create stores a new event and returns it with server-assigned id and
// creation timestamp.
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var req in.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body").WithError(err)
	}

	created, err := h.service.CreateEvent(c.Context(), &req)
	if err != nil {
		if apperr.IsAppError(err) {
			return err
		}
		return apperr.DatabaseError("create event", err)
	}
	return response.Created(c, created)
}

// Search filters events by optional q (case-insensitive text match on
// title/description) and category (exact match) parameters, with an
// optional positive limit.
func (h *EventHandler) Search(c *fiber.Ctx) error {
	req := &in.SearchEventsRequest{}

	if q := c.Query("q"); q != "" {
		req.Query = &q
	}
	if category := c.Query("category"); category != "" {
		req.Category = &category
	}
	if limit := c.QueryInt("limit", 0); limit > 0 {
		req.Limit = limit
	}

	events, err := h.service.SearchEvents(c.Context(), req)
	if err != nil {
		return apperr.DatabaseError("search events", err)
	}
	return response.OKWithMeta(c, events, &response.Meta{Total: len(events), Limit: req.Limit})
}

// Get returns a single event by id.
func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	found, err := h.service.GetEvent(c.Context(), id)
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			return apperr.NotFound("event")
		}
		return apperr.DatabaseError("get event", err)
	}
	return response.OK(c, found)
}
