package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/grocelist/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestSeedSource_BuiltIn(t *testing.T) {
	src := NewSeedSource("")
	assert.Equal(t, "seed", src.Name())

	items, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 9)
	assert.Equal(t, models.GroceryItem{ID: 6, Name: "Onion", Image: "onion", Category: "Vegetables"}, items[5])
	for _, item := range items {
		assert.False(t, item.IsRemoteImage())
	}
}

func TestSeedSource_File(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		content   string
		want      []models.GroceryItem
		expectErr bool
	}{
		{
			name: "items key",
			content: `items:
  - id: 1
    name: Onion
    image: onion
    category: Vegetables
  - id: 2
    name: Pear
    image: https://cdn.example.com/pear.png
    category: Fruits
`,
			want: []models.GroceryItem{
				{ID: 1, Name: "Onion", Image: "onion", Category: "Vegetables"},
				{ID: 2, Name: "Pear", Image: "https://cdn.example.com/pear.png", Category: "Fruits"},
			},
		},
		{
			name: "bare list",
			content: `- id: 3
  name: Turnip
  category: Vegetables
`,
			want: []models.GroceryItem{{ID: 3, Name: "Turnip", Category: "Vegetables"}},
		},
		{
			name:    "empty items list",
			content: "items: []\n",
			want:    []models.GroceryItem{},
		},
		{
			name:      "mapping without items key",
			content:   "itemz:\n  - id: 1\n    name: Onion\n",
			expectErr: true,
		},
		{
			name:      "scalar document",
			content:   "onion\n",
			expectErr: true,
		},
		{
			name:      "empty document",
			content:   "",
			expectErr: true,
		},
		{
			name:      "malformed",
			content:   "{malformed: yaml: content}",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			writeFile(t, path, tt.content)

			items, err := NewSeedSource(path).Fetch(context.Background())
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, items)
		})
	}
}

func TestSeedSource_MissingFile(t *testing.T) {
	src := NewSeedSource(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Contains(t, src.Name(), "missing.yaml")

	_, err := src.Fetch(context.Background())
	assert.ErrorContains(t, err, "error reading seed file")
}

func TestDefaultItems_ReturnsFreshSlice(t *testing.T) {
	items := DefaultItems()
	items[0].Name = "changed"
	assert.Equal(t, "Orange", DefaultItems()[0].Name)
}

func TestSeedSource_CSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.CSV")
	writeFile(t, path, "ID,Name,Image,Category\n1,Onion,onion,Vegetables\n2,Pear,pear,Fruits\n")

	items, err := NewSeedSource(path).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.GroceryItem{
		{ID: 1, Name: "Onion", Image: "onion", Category: "Vegetables"},
		{ID: 2, Name: "Pear", Image: "pear", Category: "Fruits"},
	}, items)
}
