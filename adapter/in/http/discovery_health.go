package http

import (
	"context"
	"time"

	"discovery_server/core/port/out"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	db      *pgxpool.Pool
	redis   *redis.Client
	intents out.IntentService
}

func NewHealthHandler(db *pgxpool.Pool, redisClient *redis.Client, intents out.IntentService) *HealthHandler {
	return &HealthHandler{
		db:      db,
		redis:   redisClient,
		intents: intents,
	}
}

func (h *HealthHandler) Register(app *fiber.App) {
	app.Get("/health", h.Health)
	app.Get("/ready", h.Ready)
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready checks each dependency. The LLM microservice is reported but
// does not fail readiness: the CRUD surface works without it.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	allHealthy := true

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			checks["postgres"] = "unhealthy: " + err.Error()
			allHealthy = false
		} else {
			checks["postgres"] = "ok"
		}
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "unhealthy: " + err.Error()
			allHealthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	if h.intents != nil {
		if err := h.intents.HealthCheck(ctx); err != nil {
			checks["llm_service"] = "unreachable"
		} else {
			checks["llm_service"] = "ok"
		}
	}

	status := fiber.StatusOK
	state := "ready"
	if !allHealthy {
		status = fiber.StatusServiceUnavailable
		state = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{
		"status": state,
		"checks": checks,
	})
}
