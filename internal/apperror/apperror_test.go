package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("category", int64(42)),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("name", "name is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Conflict wraps ErrConflict",
			err:       Conflict("email already in use"),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "Unauthorized wraps ErrUnauthorized",
			err:       Unauthorized("invalid email or password"),
			target:    ErrUnauthorized,
			wantMatch: true,
		},
		{
			name:      "Forbidden wraps ErrForbidden",
			err:       Forbidden("not your resource"),
			target:    ErrForbidden,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("goal", int64(1)),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "Conflict does NOT match ErrUnauthorized",
			err:       Conflict("email already in use"),
			target:    ErrUnauthorized,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorsIsThroughWrap(t *testing.T) {
	// Services wrap repository errors with fmt.Errorf("%w", ...); the
	// sentinel must still be reachable from the outermost error.
	err := fmt.Errorf("creating transaction: %w", NotFound("category", int64(7)))

	if !errors.Is(err, ErrNotFound) {
		t.Errorf("errors.Is() did not find ErrNotFound through a wrapped chain")
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("errors.As() did not extract *AppError from a wrapped chain")
	}
	if appErr.Message != "category not found with id 7" {
		t.Errorf("Message = %q, want %q", appErr.Message, "category not found with id 7")
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("transaction", int64(9)),
			wantMessage: "transaction not found with id 9",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("amount", "amount must be positive"),
			wantMessage: "amount must be positive",
		},
		{
			name:        "Conflict uses custom message",
			err:         Conflict("email already in use"),
			wantMessage: "email already in use",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestValidationFailedField(t *testing.T) {
	err := ValidationFailed("email", "invalid email format")

	if err.Field != "email" {
		t.Errorf("Field = %q, want %q", err.Field, "email")
	}
}
