package catalogerror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuplicateNameError(t *testing.T) {
	tests := []struct {
		name     string
		err      *DuplicateNameError
		expected string
	}{
		{
			name:     "same spelling",
			err:      &DuplicateNameError{Name: "Fruits", Existing: "Fruits"},
			expected: "category 'Fruits' already exists",
		},
		{
			name:     "different case",
			err:      &DuplicateNameError{Name: "fruits", Existing: "Fruits"},
			expected: "category 'fruits' already exists as 'Fruits'",
		},
		{
			name:     "no existing name",
			err:      &DuplicateNameError{Name: "Snacks"},
			expected: "category 'Snacks' already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestEmptyNameError(t *testing.T) {
	assert.Equal(t, "category name must not be empty", (&EmptyNameError{}).Error())
}

func TestLoadFailure_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("reload: %w", &LoadFailure{Source: "remote", Err: cause})

	var failure *LoadFailure
	assert.True(t, errors.As(err, &failure))
	assert.Equal(t, "remote", failure.Source)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load items from remote: connection refused", failure.Error())
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"name":  "This field is required",
		"image": "This field is required",
	}}
	assert.Equal(t, "validation failed: image: This field is required; name: This field is required", err.Error())
	assert.Equal(t, "validation failed", (&ValidationError{}).Error())
}

func TestRejectedError(t *testing.T) {
	assert.Equal(t, "item rejected by server: duplicate item", (&RejectedError{Message: "duplicate item"}).Error())
	assert.Equal(t, "item rejected by server", (&RejectedError{}).Error())
}

func TestErrReservedCategory_Wrapped(t *testing.T) {
	err := fmt.Errorf("remove category 1: %w", ErrReservedCategory)
	assert.ErrorIs(t, err, ErrReservedCategory)
}
