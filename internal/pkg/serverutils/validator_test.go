package serverutils

import (
	"errors"
	"strings"
	"testing"
)

type sampleRequest struct {
	Query string `validate:"required"`
	URL   string `validate:"omitempty,url"`
	Limit int    `validate:"omitempty,min=1,max=20"`
}

func TestValidateRequestPasses(t *testing.T) {
	req := sampleRequest{Query: "hello", URL: "https://example.com", Limit: 5}
	if err := ValidateRequest(req); err != nil {
		t.Errorf("ValidateRequest() error = %v, want nil", err)
	}
}

func TestValidateRequestOmitemptySkipsZeroValues(t *testing.T) {
	req := sampleRequest{Query: "hello"}
	if err := ValidateRequest(req); err != nil {
		t.Errorf("ValidateRequest() error = %v, want nil", err)
	}
}

func TestValidateRequestCollectsFieldErrors(t *testing.T) {
	req := sampleRequest{URL: "not-a-url", Limit: 99}
	err := ValidateRequest(req)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if len(vErr.Fields) != 3 {
		t.Errorf("Fields = %v, want 3 failures (Query, URL, Limit)", vErr.Fields)
	}
	msg := vErr.Error()
	for _, want := range []string{"Query", "URL", "Limit"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q missing field %s", msg, want)
		}
	}
}
