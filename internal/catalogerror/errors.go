// Package catalogerror defines the typed errors returned by the category
// store, the item catalog and the submission client.
package catalogerror

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrReservedCategory is returned when an operation would remove or rename the
// reserved "All" category.
var ErrReservedCategory = errors.New("category is reserved")

// EmptyNameError is returned when a category name is empty after trimming.
type EmptyNameError struct{}

func (e *EmptyNameError) Error() string {
	return "category name must not be empty"
}

// DuplicateNameError is returned when a category name already exists,
// compared case-insensitively.
type DuplicateNameError struct {
	Name     string
	Existing string
}

func (e *DuplicateNameError) Error() string {
	if e.Existing != "" && e.Existing != e.Name {
		return fmt.Sprintf("category '%s' already exists as '%s'", e.Name, e.Existing)
	}
	return fmt.Sprintf("category '%s' already exists", e.Name)
}

// LoadFailure is returned when an item source could not deliver items.
// The catalog keeps its previous items when this happens.
type LoadFailure struct {
	Source string
	Err    error
}

func (e *LoadFailure) Error() string {
	return fmt.Sprintf("failed to load items from %s: %v", e.Source, e.Err)
}

func (e *LoadFailure) Unwrap() error {
	return e.Err
}

// ValidationError lists the fields of an item submission that failed
// client-side validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, field := range slices.Sorted(maps.Keys(e.Fields)) {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// RejectedError is returned when the remote backend answered success=false.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "item rejected by server"
	}
	return fmt.Sprintf("item rejected by server: %s", e.Message)
}
