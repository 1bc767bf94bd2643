// Package source provides the item sources the catalog loads from: the
// built-in or file-based seed list and the remote item endpoint.
package source

import (
	"context"

	"fjacquet/grocelist/internal/models"
)

// Source delivers a complete item sequence.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string
	Fetch(ctx context.Context) ([]models.GroceryItem, error)
}
