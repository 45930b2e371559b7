package validate

import (
	"testing"

	pkgerrors "github.com/doorsanddrawers/quote-backend/pkg/errors"
)

type sample struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
	Width    string `json:"width" validate:"decimal_gt0"`
	Tax      string `json:"tax" validate:"omitempty,decimal_gte0"`
}

func TestStructAcceptsValidInput(t *testing.T) {
	if err := Struct(sample{Name: "door", Quantity: 1, Width: "12.50", Tax: "0"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructReportsFieldDetails(t *testing.T) {
	err := Struct(sample{Quantity: 0, Width: "abc", Tax: "-1"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected map details, got %T", typed.Details())
	}
	for field, msg := range map[string]string{
		"name":     "is required",
		"quantity": "must be at least 1",
		"width":    "must be a positive decimal",
		"tax":      "must be a non-negative decimal",
	} {
		if details[field] != msg {
			t.Fatalf("field %s: expected %q got %q", field, msg, details[field])
		}
	}
}
