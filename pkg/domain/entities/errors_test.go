package entities

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsMatchSentinels(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{"validation", NewValidationError("servings", "must be positive, got %d", 0), ErrValidation, "invalid servings: must be positive, got 0"},
		{"not found", &NotFoundError{Kind: "listing", Key: "Saffron"}, ErrNotFound, "listing not found: Saffron"},
		{"duplicate", &DuplicateItemError{SupplierID: "fresh-mart", ItemName: "Potatoes"}, ErrDuplicateItem, `item "Potatoes" already listed by supplier fresh-mart`},
		{"index", &IndexOutOfRangeError{Index: 3, Length: 1}, ErrIndexOutOfRange, "index 3 out of range for cart of 1 lines"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("handling request: %w", tc.err)
			if !errors.Is(wrapped, tc.sentinel) {
				t.Errorf("Expected wrapped error to match sentinel %v", tc.sentinel)
			}
			if tc.err.Error() != tc.message {
				t.Errorf("Expected message '%s', got '%s'", tc.message, tc.err.Error())
			}
		})
	}

	if errors.Is(&NotFoundError{Kind: "listing"}, ErrValidation) {
		t.Error("Expected NotFoundError not to match ErrValidation")
	}
}
