package common

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/grocelist/internal/logging"
	"fjacquet/grocelist/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []models.GroceryItem {
	return []models.GroceryItem{
		{ID: 6, Name: "Onion", Image: "onion", Category: "Vegetables"},
		{ID: 4, Name: "Pear", Image: "http://grocelist123.x10.mx/uploads/pear.jpg", Category: "Fruits"},
	}
}

func TestWriteItemsToCSV(t *testing.T) {
	csvFile := filepath.Join(t.TempDir(), "nested", "items.csv")
	logger := logging.NewMockLogger()

	require.NoError(t, WriteItemsToCSV(sampleItems(), csvFile, logger))

	content, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	assert.Equal(t, "ID,Name,Image,Category\n"+
		"6,Onion,onion,Vegetables\n"+
		"4,Pear,http://grocelist123.x10.mx/uploads/pear.jpg,Fruits\n", string(content))
	assert.True(t, logger.HasEntry("INFO", "Successfully wrote items to CSV file"))
}

func TestWriteItemsToCSV_CustomDelimiter(t *testing.T) {
	original := Delimiter
	SetDelimiter(';')
	defer SetDelimiter(original)

	csvFile := filepath.Join(t.TempDir(), "items.csv")
	require.NoError(t, WriteItemsToCSV(sampleItems()[:1], csvFile, nil))

	content, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	assert.Equal(t, "ID;Name;Image;Category\n6;Onion;onion;Vegetables\n", string(content))
}

func TestWriteItemsToCSV_Empty(t *testing.T) {
	csvFile := filepath.Join(t.TempDir(), "items.csv")
	require.NoError(t, WriteItemsToCSV([]models.GroceryItem{}, csvFile, nil))

	content, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	assert.Equal(t, "ID,Name,Image,Category\n", string(content))
}

func TestWriteItemsToCSV_Nil(t *testing.T) {
	err := WriteItemsToCSV(nil, filepath.Join(t.TempDir(), "items.csv"), nil)
	assert.ErrorContains(t, err, "cannot write nil items")
}

func TestReadCSVFile_RoundTrip(t *testing.T) {
	csvFile := filepath.Join(t.TempDir(), "items.csv")
	require.NoError(t, WriteItemsToCSV(sampleItems(), csvFile, nil))

	rows, err := ReadCSVFile[models.GroceryItem](csvFile, logging.NewMockLogger())
	require.NoError(t, err)
	assert.Equal(t, sampleItems(), rows)
}

func TestReadCSVFile_Missing(t *testing.T) {
	_, err := ReadCSVFile[models.GroceryItem](filepath.Join(t.TempDir(), "absent.csv"), nil)
	assert.ErrorContains(t, err, "error opening CSV file")
}
