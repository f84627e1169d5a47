package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		err := NotFound("shopping list %d not found", 7)
		if !IsNotFound(err) {
			t.Fatalf("Expected IsNotFound to be true for %v", err)
		}
		if IsValidation(err) {
			t.Error("Did not expect a validation error")
		}
		if err.Error() != "shopping list 7 not found" {
			t.Errorf("Unexpected message '%s'", err.Error())
		}
	})

	t.Run("WrappedValidation", func(t *testing.T) {
		err := fmt.Errorf("failed to append item: %w", Invalid("item name is required"))
		if !IsValidation(err) {
			t.Fatalf("Expected wrapped error to match ErrValidation")
		}
		var appErr *Error
		if !errors.As(err, &appErr) {
			t.Fatal("Expected errors.As to find *Error")
		}
		if appErr.Message != "item name is required" {
			t.Errorf("Unexpected message '%s'", appErr.Message)
		}
	})

	t.Run("EmptyMessageFallsBackToKind", func(t *testing.T) {
		err := &Error{Kind: ErrNotFound}
		if err.Error() != "not found" {
			t.Errorf("Expected 'not found', got '%s'", err.Error())
		}
	})
}
