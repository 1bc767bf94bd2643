package store

import (
	"context"

	"fjacquet/grocelist/internal/models"
)

// MockCategoryStore is an in-memory stand-in for consumers that only read
// categories.
type MockCategoryStore struct {
	Categories []models.Category

	// ListError is returned by List when set.
	ListError error
	// ListCalls counts List invocations.
	ListCalls int
}

// List returns a copy of the mock categories.
func (m *MockCategoryStore) List(_ context.Context) ([]models.Category, error) {
	m.ListCalls++
	if m.ListError != nil {
		return nil, m.ListError
	}
	out := make([]models.Category, len(m.Categories))
	copy(out, m.Categories)
	return out, nil
}
