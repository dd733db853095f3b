package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"research-assistant-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

func requestWithError(t *testing.T, err error) (int, Response[any]) {
	t.Helper()

	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/boom", func(c *fiber.Ctx) error { return err })

	resp, reqErr := app.Test(httptest.NewRequest("GET", "/boom", nil))
	if reqErr != nil {
		t.Fatalf("request failed: %v", reqErr)
	}
	defer resp.Body.Close()

	var body Response[any]
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, body
}

func TestErrorHandlerMapsTypedErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "not found",
			err:        &dto.NotFoundError{Resource: "session"},
			wantStatus: fiber.StatusNotFound,
		},
		{
			name:       "limit exceeded",
			err:        &dto.LimitExceededError{LimitBytes: 10, SizeBytes: 20},
			wantStatus: fiber.StatusRequestEntityTooLarge,
		},
		{
			name:       "unsupported file type",
			err:        &dto.UnsupportedFileTypeError{Extension: ".exe"},
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "generic error",
			err:        errors.New("something broke"),
			wantStatus: fiber.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := requestWithError(t, tt.err)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if body.Success {
				t.Error("error envelope must have success=false")
			}
			if body.Code != tt.wantStatus {
				t.Errorf("envelope code = %d, want %d", body.Code, tt.wantStatus)
			}
		})
	}
}

func TestErrorHandlerNotFoundIsTypeChecked(t *testing.T) {
	// A message merely ending in "not found" is not a 404
	status, _ := requestWithError(t, errors.New("config key not found"))
	if status != fiber.StatusInternalServerError {
		t.Errorf("status = %d, want 500 for untyped errors", status)
	}
}
