package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/grocelist/internal/common"
	"fjacquet/grocelist/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultItems returns the built-in seed list. Images are local resource
// tokens.
func DefaultItems() []models.GroceryItem {
	return []models.GroceryItem{
		{ID: 1, Name: "Orange", Image: "orange", Category: "Vegetables"},
		{ID: 2, Name: "Turnip", Image: "turnip", Category: "Vegetables"},
		{ID: 3, Name: "Banana", Image: "banana", Category: "Fruits"},
		{ID: 4, Name: "Pear", Image: "pear", Category: "Fruits"},
		{ID: 5, Name: "Sweet Potato", Image: "potato", Category: "Vegetables"},
		{ID: 6, Name: "Onion", Image: "onion", Category: "Vegetables"},
		{ID: 7, Name: "Chicken Breast", Image: "chicken", Category: "Meat"},
		{ID: 8, Name: "Beef", Image: "baka", Category: "Meat"},
		{ID: 9, Name: "C2", Image: "ctwo", Category: "Beverages"},
	}
}

// SeedSource serves a static item list: the built-in one, the items of a YAML
// seed file, or the rows of a CSV file as written by the export command.
type SeedSource struct {
	// File is an optional seed file. When empty the built-in list is used.
	File string
}

// NewSeedSource returns a SeedSource reading file, or the built-in list when
// file is empty.
func NewSeedSource(file string) *SeedSource {
	return &SeedSource{File: file}
}

func (s *SeedSource) Name() string {
	if s.File == "" {
		return "seed"
	}
	return "seed:" + s.File
}

// Fetch returns the seed items. A YAML seed file may either hold an "items"
// list or be a bare list of items; a ".csv" file is read by column header.
func (s *SeedSource) Fetch(_ context.Context) ([]models.GroceryItem, error) {
	if s.File == "" {
		return DefaultItems(), nil
	}
	if strings.EqualFold(filepath.Ext(s.File), ".csv") {
		return common.ReadCSVFile[models.GroceryItem](s.File, nil)
	}

	data, err := os.ReadFile(s.File)
	if err != nil {
		return nil, fmt.Errorf("error reading seed file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing seed file %s: %w", s.File, err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("seed file %s is empty", s.File)
	}

	node := doc.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		var items []models.GroceryItem
		if err := node.Decode(&items); err != nil {
			return nil, fmt.Errorf("error parsing seed file %s: %w", s.File, err)
		}
		return items, nil
	case yaml.MappingNode:
		var envelope struct {
			Items *[]models.GroceryItem `yaml:"items"`
		}
		if err := node.Decode(&envelope); err != nil {
			return nil, fmt.Errorf("error parsing seed file %s: %w", s.File, err)
		}
		if envelope.Items == nil {
			return nil, fmt.Errorf("seed file %s has no items list", s.File)
		}
		return *envelope.Items, nil
	default:
		return nil, fmt.Errorf("seed file %s must hold an items mapping or a list", s.File)
	}
}
