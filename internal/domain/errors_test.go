package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("location", "required")

	if got := err.Error(); got != "validation: location: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "vehicleNumber", Message: "required"},
		{Field: "pollutionType", Message: "unknown pollution type"},
	})

	want := "validation: vehicleNumber: required; pollutionType: unknown pollution type"
	if got := err.Error(); got != want {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !err.Has("pollutionType") || err.Has("location") {
		t.Error("Has reports the wrong fields")
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestStorageError_WrapsBoth(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset by peer")
	err := fmt.Errorf("report abc: %w: %w", ErrStorage, cause)

	if !errors.Is(err, ErrStorage) {
		t.Error("errors.Is(err, ErrStorage) = false")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation,
		ErrUnauthorized, ErrForbidden, ErrStorage,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
