// Package llm is the HTTP adapter for the external LLM microservice.
package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"discovery_server/core/domain"
	"discovery_server/core/port/out"
	"discovery_server/pkg/apperr"
	"discovery_server/pkg/httputil"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

const serviceName = "llm-service"

// Adapter implements out.IntentService against the microservice's
// /health, /api/parse-intent and /api/chat endpoints. All calls go
// through a circuit breaker so a dead collaborator fails fast instead
// of tying up request handlers.
type Adapter struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// Config for the adapter. BaseURL is required and always passed in
// explicitly; the adapter never reads the environment itself.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// NewAdapter creates a new Adapter.
func NewAdapter(cfg Config) *Adapter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        serviceName,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Adapter{
		baseURL: cfg.BaseURL,
		client:  httputil.NewClient(httputil.LLMServiceClientConfig(timeout)),
		breaker: breaker,
	}
}

// =============================================================================
// Wire types
// =============================================================================

type parseIntentRequest struct {
	Message string `json:"message"`
}

type parseIntentResponse struct {
	Params out.SearchParams `json:"params"`
}

type chatRequest struct {
	Message string          `json:"message"`
	Events  []*domain.Event `json:"events"`
	UserID  *uuid.UUID      `json:"user_id,omitempty"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// =============================================================================
// out.IntentService
// =============================================================================

func (a *Adapter) ParseIntent(ctx context.Context, message string) (*out.SearchParams, error) {
	var resp parseIntentResponse
	err := a.post(ctx, "/api/parse-intent", &parseIntentRequest{Message: message}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Params, nil
}

func (a *Adapter) GenerateReply(ctx context.Context, message string, events []*domain.Event, userID *uuid.UUID) (string, error) {
	var resp chatResponse
	err := a.post(ctx, "/api/chat", &chatRequest{Message: message, Events: events, UserID: userID}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Reply, nil
}

func (a *Adapter) HealthCheck(ctx context.Context) error {
	_, err := a.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequest(http.MethodGet, a.baseURL+"/health", nil)
		if err != nil {
			return nil, apperr.InternalWithError(err)
		}
		resp, err := httputil.DoWithContext(ctx, a.client, req)
		if err != nil {
			return nil, apperr.ServiceUnavailable(serviceName, err)
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)

		if resp.StatusCode != http.StatusOK {
			return nil, apperr.ExternalError(serviceName, fmt.Errorf("health returned status %d", resp.StatusCode))
		}
		return nil, nil
	})
	return a.mapBreakerError(err)
}

// =============================================================================
// Transport
// =============================================================================

func (a *Adapter) post(ctx context.Context, path string, body, result interface{}) error {
	_, err := a.breaker.Execute(func() (interface{}, error) {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperr.InternalWithError(err)
		}

		req, err := http.NewRequest(http.MethodPost, a.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, apperr.InternalWithError(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := httputil.DoWithContext(ctx, a.client, req)
		if err != nil {
			return nil, apperr.ServiceUnavailable(serviceName, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			// Drain so the connection can be reused.
			io.Copy(io.Discard, resp.Body)
			return nil, apperr.ExternalError(serviceName, fmt.Errorf("%s returned status %d", path, resp.StatusCode))
		}

		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return nil, apperr.ExternalError(serviceName, fmt.Errorf("decode %s response: %w", path, err))
		}
		return nil, nil
	})
	return a.mapBreakerError(err)
}

func (a *Adapter) mapBreakerError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return apperr.ServiceUnavailable(serviceName, err)
	}
	return err
}
