package importer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectColumnsResolvesTitleSynonyms(t *testing.T) {
	for _, synonym := range []string{"TITLE", "title", "name", "product_name"} {
		t.Run(synonym, func(t *testing.T) {
			mapping, err := DetectColumns([]string{"irrelevant", synonym}, "test.csv", nil)
			require.NoError(t, err)

			col, ok := mapping.Column(FieldTitle)
			assert.True(t, ok)
			assert.Equal(t, synonym, col)
		})
	}
}

func TestDetectColumnsMissingTitle(t *testing.T) {
	headers := []string{"Price", "Description", "Vendor"}

	_, err := DetectColumns(headers, "broken.csv", nil)
	require.Error(t, err)

	var missingErr *MissingRequiredColumnError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, "title", missingErr.Field)
	assert.Equal(t, "broken.csv", missingErr.Filename)
}

func TestDetectColumnsSynonymPriority(t *testing.T) {
	// "TITLE" outranks "name" regardless of header order
	mapping, err := DetectColumns([]string{"name", "TITLE"}, "test.csv", nil)
	require.NoError(t, err)

	col, _ := mapping.Column(FieldTitle)
	assert.Equal(t, "TITLE", col)
}

func TestDetectColumnsCaseSensitive(t *testing.T) {
	// "PRICE" is not a recognized spelling
	mapping, err := DetectColumns([]string{"TITLE", "PRICE"}, "test.csv", nil)
	require.NoError(t, err)

	assert.False(t, mapping.Has(FieldPrice))
}

func TestDetectColumnsOptionalFields(t *testing.T) {
	headers := []string{"TITLE", "Price", "Vendor", "Media Link", "NO.OF PIECES", "Handle", "Option1 Name", "Option1 Value"}

	mapping, err := DetectColumns(headers, "full.csv", nil)
	require.NoError(t, err)

	assert.True(t, mapping.Has(FieldPrice))
	assert.True(t, mapping.Has(FieldVendor))
	assert.True(t, mapping.Has(FieldImage))
	assert.True(t, mapping.Has(FieldQuantity))
	assert.True(t, mapping.Has(FieldHandle))
	assert.True(t, mapping.Has(FieldOption1Name))
	assert.True(t, mapping.Has(FieldOption1Value))
	assert.False(t, mapping.Has(FieldDescription))
	assert.False(t, mapping.Has(FieldOption2Name))

	asMap := mapping.ToMap()
	assert.Equal(t, "Media Link", asMap["image"])
	assert.Equal(t, "NO.OF PIECES", asMap["quantity"])
}
