package http

import (
	"errors"
	"strings"

	"discovery_server/core/domain"
	"discovery_server/core/port/in"
	"discovery_server/core/service/user"
	"discovery_server/pkg/apperr"
	"discovery_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	service in.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service in.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register registers user routes
func (h *UserHandler) Register(router fiber.Router) {
	users := router.Group("/users")

	users.Post("/", h.Create)
	users.Get("/:id", h.Get)
	users.Get("/:id/profile", h.GetProfile)
	users.Get("/:id/preferences", h.ListPreferences)
	users.Post("/:id/preferences", h.UpsertPreference)
	users.Get("/:id/interactions", h.ListInteractions)
	users.Post("/:id/interactions", h.AddInteraction)
}

// Create registers a new user account.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req in.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body").WithError(err)
	}

	created, err := h.service.CreateUser(c.Context(), &req)
	if err != nil {
		if apperr.IsAppError(err) {
			return err
		}
		return apperr.DatabaseError("create user", err)
	}
	return response.Created(c, created)
}

// Get returns a single user by id.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	found, err := h.service.GetUser(c.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return apperr.NotFound("user")
		}
		return apperr.DatabaseError("get user", err)
	}
	return response.OK(c, found)
}

// GetProfile returns the user together with all preferences and the
// most recent interactions joined with event metadata.
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	profile, err := h.service.GetProfile(c.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return apperr.NotFound("user")
		}
		return apperr.DatabaseError("get profile", err)
	}
	return response.OK(c, profile)
}

// ListPreferences returns all category preferences for a user.
func (h *UserHandler) ListPreferences(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	prefs, err := h.service.ListPreferences(c.Context(), id)
	if err != nil {
		return apperr.DatabaseError("list preferences", err)
	}
	return response.OK(c, prefs)
}

// UpsertPreference creates or overwrites the weight for the user's
// (category) preference.
func (h *UserHandler) UpsertPreference(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req in.UpsertPreferenceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body").WithError(err)
	}

	pref, err := h.service.UpsertPreference(c.Context(), id, &req)
	if err != nil {
		if apperr.IsAppError(err) {
			return err
		}
		return apperr.DatabaseError("upsert preference", err)
	}
	return response.Created(c, pref)
}

// ListInteractions returns the user's interactions, newest first, with
// an optional comma-separated type filter.
func (h *UserHandler) ListInteractions(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	req := &in.ListInteractionsRequest{
		UserID: id,
		Limit:  c.QueryInt("limit", 0),
	}
	if types := c.Query("type"); types != "" {
		for _, t := range strings.Split(types, ",") {
			if t = strings.TrimSpace(t); t != "" {
				req.Types = append(req.Types, domain.InteractionType(t))
			}
		}
	}

	interactions, err := h.service.ListInteractions(c.Context(), req)
	if err != nil {
		return apperr.DatabaseError("list interactions", err)
	}
	return response.OK(c, interactions)
}

// AddInteraction appends an interaction record for the user.
func (h *UserHandler) AddInteraction(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req in.AddInteractionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body").WithError(err)
	}

	interaction, err := h.service.AddInteraction(c.Context(), id, &req)
	if err != nil {
		if apperr.IsAppError(err) {
			return err
		}
		return apperr.DatabaseError("add interaction", err)
	}
	return response.Created(c, interaction)
}
