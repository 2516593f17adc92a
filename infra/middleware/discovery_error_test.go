package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"discovery_server/pkg/apperr"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
)

func newTestApp(handler fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/boom", handler)
	return app
}

func doRequest(t *testing.T, app *fiber.App) (int, ErrorResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, body
}

func TestErrorHandlerAppError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found",
			err:        apperr.NotFound("event"),
			wantStatus: http.StatusNotFound,
			wantCode:   apperr.CodeNotFound,
		},
		{
			name:       "conflict",
			err:        apperr.AlreadyExists("user"),
			wantStatus: http.StatusConflict,
			wantCode:   apperr.CodeAlreadyExists,
		},
		{
			name:       "collaborator unreachable",
			err:        apperr.ServiceUnavailable("llm-service", errors.New("connection refused")),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   apperr.CodeServiceUnavailable,
		},
		{
			name:       "collaborator upstream failure",
			err:        apperr.ExternalError("llm-service", errors.New("status 500")),
			wantStatus: http.StatusBadGateway,
			wantCode:   apperr.CodeExternalError,
		},
		{
			// Services wrap app errors with fmt.Errorf before they
			// reach the handler; the original status must survive.
			name:       "wrapped service-unavailable",
			err:        fmt.Errorf("parse intent: %w", apperr.ServiceUnavailable("llm-service", errors.New("connection refused"))),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   apperr.CodeServiceUnavailable,
		},
		{
			name:       "wrapped external error",
			err:        fmt.Errorf("generate reply: %w", apperr.ExternalError("llm-service", errors.New("status 500"))),
			wantStatus: http.StatusBadGateway,
			wantCode:   apperr.CodeExternalError,
		},
		{
			name:       "double-wrapped validation error",
			err:        fmt.Errorf("create event: %w", fmt.Errorf("validate: %w", apperr.InvalidInput("title", "must not be empty"))),
			wantStatus: http.StatusBadRequest,
			wantCode:   apperr.CodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(func(c *fiber.Ctx) error { return tt.err })

			status, body := doRequest(t, app)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if body.Error.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", body.Error.Code, tt.wantCode)
			}
			if body.Success {
				t.Error("error response should not report success")
			}
		})
	}
}

func TestErrorHandlerFiberError(t *testing.T) {
	app := newTestApp(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTooManyRequests, "rate limit exceeded")
	})

	status, body := doRequest(t, app)
	if status != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", status)
	}
	if body.Error.Code != "RATE_LIMITED" {
		t.Errorf("code = %s, want RATE_LIMITED", body.Error.Code)
	}
}

func TestErrorHandlerUnknownError(t *testing.T) {
	app := newTestApp(func(c *fiber.Ctx) error {
		return errors.New("something broke")
	})

	status, body := doRequest(t, app)
	if status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", status)
	}
	if body.Error.Code != apperr.CodeInternalError {
		t.Errorf("code = %s, want %s", body.Error.Code, apperr.CodeInternalError)
	}
	// Internal detail never leaks to the client.
	if body.Error.Message != "An unexpected error occurred" {
		t.Errorf("message = %q", body.Error.Message)
	}
}
