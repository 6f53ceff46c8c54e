package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-importer/internal/models"
)

func TestAssembleProductScalarsAndDefaults(t *testing.T) {
	rows := buildRows(t,
		[]string{"TITLE", "Price", "Vendor", "Category", "TAGS", "Media Link"},
		map[string]string{
			"TITLE":      "Rose's Oil",
			"Price":      "25",
			"Vendor":     "Atelier",
			"Category":   "Perfume",
			"TAGS":       " floral , oil ",
			"Media Link": "https://cdn.example.com/rose.jpg",
		},
	)

	product, err := AssembleProduct(rows, "rose-oils.csv", testDefaults)
	require.NoError(t, err)

	assert.Equal(t, "Rose's Oil", product.Title)
	assert.Equal(t, "roses-oil", product.Handle)
	assert.Equal(t, "Atelier", product.Vendor)
	assert.Equal(t, "Perfume", product.ProductType)
	assert.Equal(t, "floral, oil", product.Tags)
	assert.Equal(t, models.ProductStatusDraft, product.Status)
	require.Len(t, product.Images, 1)
	assert.Equal(t, "https://cdn.example.com/rose.jpg", product.Images[0].Src)
	assert.Empty(t, product.Options)
	require.Len(t, product.Variants, 1)
}

func TestAssembleProductExplicitHandle(t *testing.T) {
	rows := buildRows(t,
		[]string{"TITLE", "Handle"},
		map[string]string{"TITLE": "Rose Oil", "Handle": "rose-oil-5ml"},
	)

	product, err := AssembleProduct(rows, "rose-oils.csv", testDefaults)
	require.NoError(t, err)
	assert.Equal(t, "rose-oil-5ml", product.Handle)
}

func TestAssembleProductDescriptionDefault(t *testing.T) {
	rows := buildRows(t,
		[]string{"TITLE"},
		map[string]string{"TITLE": "Rose Oil"},
	)

	product, err := AssembleProduct(rows, "rose-oils.csv", testDefaults)
	require.NoError(t, err)
	assert.Equal(t, "<p>Rose Oil</p><p>Imported from rose-oils.</p>", product.BodyHTML)
}

func TestAssembleProductTagDefault(t *testing.T) {
	rows := buildRows(t,
		[]string{"TITLE"},
		map[string]string{"TITLE": "Rose Oil"},
	)

	product, err := AssembleProduct(rows, "rose-oils.csv", testDefaults)
	require.NoError(t, err)
	assert.Equal(t, DefaultTag, product.Tags)
}

func TestAssembleProductConfiguredStatus(t *testing.T) {
	tests := []struct {
		configured string
		want       models.ProductStatus
	}{
		{"draft", models.ProductStatusDraft},
		{"active", models.ProductStatusActive},
		{"archived", models.ProductStatusArchived},
		{"", models.ProductStatusDraft},
		{"published", models.ProductStatusDraft}, // unrecognized values stay draft
	}

	for _, tt := range tests {
		t.Run(tt.configured, func(t *testing.T) {
			defs := testDefaults
			defs.Status = tt.configured

			rows := buildRows(t,
				[]string{"TITLE"},
				map[string]string{"TITLE": "Rose Oil"},
			)
			product, err := AssembleProduct(rows, "rose-oils.csv", defs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, product.Status)
		})
	}
}

func TestAssembleProductImageFiltering(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kept bool
	}{
		{"https kept", "https://cdn.example.com/a.jpg", true},
		{"http kept", "http://cdn.example.com/a.jpg", true},
		{"local path dropped", "/images/a.jpg", false},
		{"note dropped", "see shared drive", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := buildRows(t,
				[]string{"TITLE", "Media Link"},
				map[string]string{"TITLE": "Rose Oil", "Media Link": tt.src},
			)
			product, err := AssembleProduct(rows, "rose-oils.csv", testDefaults)
			require.NoError(t, err)
			if tt.kept {
				require.Len(t, product.Images, 1)
				assert.Equal(t, tt.src, product.Images[0].Src)
			} else {
				assert.Empty(t, product.Images)
			}
		})
	}
}

func TestAssembleProductOptionDefinitions(t *testing.T) {
	rows := buildRows(t,
		[]string{"TITLE", "Option1 Name", "Option1 Value", "Option2 Name", "Option2 Value"},
		map[string]string{
			"TITLE":         "Silk Scarf",
			"Option1 Name":  "Size",
			"Option1 Value": "A,B",
			"Option2 Name":  "Color",
			"Option2 Value": "X,X,Y",
		},
	)

	product, err := AssembleProduct(rows, "scarves.csv", testDefaults)
	require.NoError(t, err)

	require.Len(t, product.Options, 2)
	assert.Equal(t, "Size", product.Options[0].Name)
	assert.Equal(t, []string{"A", "B"}, product.Options[0].Values)
	assert.Equal(t, "Color", product.Options[1].Name)
	// Duplicate source values collapse in the option declaration
	assert.Equal(t, []string{"X", "Y"}, product.Options[1].Values)

	// 2 x 3 cross product keeps the duplicates as variants
	assert.Len(t, product.Variants, 6)
}

func TestAssembleProductNoOptionsForFallbackVariant(t *testing.T) {
	rows := buildRows(t,
		[]string{"TITLE", "size"},
		map[string]string{"TITLE": "Rose Oil", "size": "50"},
	)

	product, err := AssembleProduct(rows, "rose-oils.csv", testDefaults)
	require.NoError(t, err)
	assert.Empty(t, product.Options)
	require.Len(t, product.Variants, 1)
	assert.Equal(t, "50ml", product.Variants[0].Title)
}

func TestAssembleProductEmptyGroup(t *testing.T) {
	_, err := AssembleProduct(nil, "rose-oils.csv", testDefaults)
	assert.Error(t, err)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "roses-oil", Slugify("Rose's Oil"))
	assert.Equal(t, "plain", Slugify("plain"))
	assert.Equal(t, "two-words", Slugify("Two Words"))
}
