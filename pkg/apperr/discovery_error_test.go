package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructorStatusMapping(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"bad request", BadRequest("nope"), CodeBadRequest, http.StatusBadRequest},
		{"validation failed", ValidationFailed("bad"), CodeValidationFailed, http.StatusBadRequest},
		{"invalid input", InvalidInput("title", "must not be empty"), CodeInvalidInput, http.StatusBadRequest},
		{"missing field", MissingField("category"), CodeMissingField, http.StatusBadRequest},
		{"not found", NotFound("event"), CodeNotFound, http.StatusNotFound},
		{"already exists", AlreadyExists("user"), CodeAlreadyExists, http.StatusConflict},
		{"conflict", Conflict("busy"), CodeConflict, http.StatusConflict},
		{"database error", DatabaseError("list events", cause), CodeDatabaseError, http.StatusInternalServerError},
		{"service unavailable", ServiceUnavailable("llm-service", cause), CodeServiceUnavailable, http.StatusServiceUnavailable},
		{"external error", ExternalError("llm-service", cause), CodeExternalError, http.StatusBadGateway},
		{"internal", Internal(""), CodeInternalError, http.StatusInternalServerError},
		{"timeout", Timeout("fetch"), CodeTimeout, http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.err.Status, tt.wantStatus)
			}
		})
	}
}

func TestWrappedErrorRetainsIdentity(t *testing.T) {
	inner := ServiceUnavailable("llm-service", errors.New("connection refused"))
	wrapped := fmt.Errorf("parse intent: %w", inner)

	if !IsAppError(wrapped) {
		t.Fatal("wrapped app error should still be recognized")
	}
	if got := GetHTTPStatus(wrapped); got != http.StatusServiceUnavailable {
		t.Errorf("GetHTTPStatus() = %d, want 503", got)
	}

	appErr := AsAppError(wrapped)
	if appErr.Code != CodeServiceUnavailable {
		t.Errorf("AsAppError().Code = %s, want %s", appErr.Code, CodeServiceUnavailable)
	}
	if appErr != inner {
		t.Error("AsAppError() should return the original error, not a copy")
	}
}

func TestAsAppErrorFallback(t *testing.T) {
	plain := errors.New("something broke")

	appErr := AsAppError(plain)
	if appErr.Code != CodeInternalError {
		t.Errorf("code = %s, want %s", appErr.Code, CodeInternalError)
	}
	if appErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", appErr.Status)
	}
	if !errors.Is(appErr, plain) {
		t.Error("fallback should wrap the original error")
	}
}

func TestUnwrapChain(t *testing.T) {
	cause := errors.New("row not found")
	appErr := DatabaseError("get event", cause)

	if !errors.Is(appErr, cause) {
		t.Error("app error should unwrap to its cause")
	}
}

func TestWithDetail(t *testing.T) {
	err := AlreadyExists("user").WithDetail("email", "cowboy@okstate.edu")
	if err.Details["email"] != "cowboy@okstate.edu" {
		t.Errorf("details = %v", err.Details)
	}
}
