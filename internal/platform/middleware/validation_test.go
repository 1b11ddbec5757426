package middleware

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

type sample struct {
	Score int    `json:"score" validate:"min=1,max=5"`
	Mood  string `json:"mood" validate:"required,oneof=Calm Anxious"`
}

func TestValidator_Accepts(t *testing.T) {
	if err := NewValidator().Validate(&sample{Score: 3, Mood: "Calm"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidator_ReportsJSONFieldNames(t *testing.T) {
	err := NewValidator().Validate(&sample{Score: 9})
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", httpErr.Code)
	}
	body, ok := httpErr.Message.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected message type %T", httpErr.Message)
	}
	errs := body["errors"].([]ValidationError)
	if len(errs) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(errs))
	}
	if errs[0].Field != "score" || errs[0].Message != "Value is too large" {
		t.Errorf("unexpected first error: %+v", errs[0])
	}
	if errs[1].Field != "mood" || errs[1].Message != "Field is required" {
		t.Errorf("unexpected second error: %+v", errs[1])
	}
}
