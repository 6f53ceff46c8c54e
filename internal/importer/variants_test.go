package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDefaults = Defaults{
	Weight:          0.5,
	WeightUnit:      "kg",
	InventoryPolicy: "deny",
	Quantity:        1,
}

func buildRows(t *testing.T, headers []string, records ...map[string]string) []Row {
	t.Helper()
	mapping, err := DetectColumns(headers, "test.csv", nil)
	require.NoError(t, err)

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, NewRow(record, mapping))
	}
	return rows
}

func TestBuildVariantsSingleOptionList(t *testing.T) {
	rows := buildRows(t,
		[]string{"TITLE", "Price", "Option1 Name", "Option1 Value"},
		map[string]string{"TITLE": "Rose Oil", "Price": "25", "Option1 Name": "Size", "Option1 Value": "5,10"},
	)

	variants := BuildVariants(rows, "rose-oils.csv", testDefaults)
	require.Len(t, variants, 2)

	assert.Equal(t, "5", variants[0].Title)
	assert.Equal(t, "10", variants[1].Title)
	assert.Equal(t, "25.00", variants[0].Price)
	assert.Equal(t, "25.00", variants[1].Price)
	assert.Equal(t, "ROS-ROSE-OIL-5", variants[0].SKU)
	assert.Equal(t, "ROS-ROSE-OIL-10", variants[1].SKU)
}

func TestBuildVariantsPreservesDuplicateValues(t *testing.T) {
	rows := buildRows(t,
		[]string{"TITLE", "Option1 Name", "Option1 Value"},
		map[string]string{"TITLE": "Rose Oil", "Option1 Name": "Size", "Option1 Value": "5, 5, 10"},
	)

	variants := BuildVariants(rows, "rose-oils.csv", testDefaults)
	require.Len(t, variants, 3)
	assert.Equal(t, "5", variants[0].Title)
	assert.Equal(t, "5", variants[1].Title)
	assert.Equal(t, "10", variants[2].Title)
}

func TestBuildVariantsCrossProduct(t *testing.T) {
	rows := buildRows(t,
		[]string{"TITLE", "Option1 Name", "Option1 Value", "Option2 Name", "Option2 Value"},
		map[string]string{
			"TITLE":         "Silk Scarf",
			"Option1 Name":  "Size",
			"Option1 Value": "A,B",
			"Option2 Name":  "Color",
			"Option2 Value": "X,Y",
		},
	)

	variants := BuildVariants(rows, "scarves.csv", testDefaults)
	require.Len(t, variants, 4)

	titles := []string{variants[0].Title, variants[1].Title, variants[2].Title, variants[3].Title}
	assert.Equal(t, []string{"A / X", "A / Y", "B / X", "B / Y"}, titles)

	assert.Equal(t, "A", variants[0].Option1)
	assert.Equal(t, "X", variants[0].Option2)
	assert.Equal(t, "SCA-SILK-SCARF-A-X", variants[0].SKU)
	assert.Equal(t, "SCA-SILK-SCARF-B-Y", variants[3].SKU)
}

func TestBuildVariantsFallbackNumericDisplay(t *testing.T) {
	rows := buildRows(t,
		[]string{"TITLE", "Price", "size"},
		map[string]string{"TITLE": "Rose Oil", "Price": "25", "size": "50"},
	)

	variants := BuildVariants(rows, "rose-oils.csv", testDefaults)
	require.Len(t, variants, 1)
	assert.Equal(t, "50ml", variants[0].Title)
	assert.Equal(t, "ROS-ROSE-OIL-50", variants[0].SKU)
}

func TestBuildVariantsFallbackNonNumericKeptAsIs(t *testing.T) {
	rows := buildRows(t,
		[]string{"TITLE", "size"},
		map[string]string{"TITLE": "Rose Oil", "size": "Large"},
	)

	variants := BuildVariants(rows, "rose-oils.csv", testDefaults)
	require.Len(t, variants, 1)
	assert.Equal(t, "Large", variants[0].Title)
}

func TestBuildVariantsFallbackWithoutSizeColumn(t *testing.T) {
	rows := buildRows(t,
		[]string{"TITLE", "Price"},
		map[string]string{"TITLE": "Rose Oil", "Price": "25"},
	)

	variants := BuildVariants(rows, "rose-oils.csv", testDefaults)
	require.Len(t, variants, 1)
	assert.Equal(t, "Default Title", variants[0].Title)
	assert.Equal(t, "ROS-ROSE-OIL-DEFAULT", variants[0].SKU)
	assert.Equal(t, 1, variants[0].InventoryQuantity)
}

func TestBuildVariantsQuantityAggregation(t *testing.T) {
	headers := []string{"TITLE", "quantity", "size"}
	rows := buildRows(t, headers,
		map[string]string{"TITLE": "Rose Oil", "quantity": "3", "size": "50"},
		map[string]string{"TITLE": "Rose Oil", "quantity": "5", "size": "50"},
	)

	variants := BuildVariants(rows, "rose-oils.csv", testDefaults)
	require.Len(t, variants, 1)
	assert.Equal(t, 8, variants[0].InventoryQuantity)
}

func TestBuildVariantsNegativeQuantityUsesDefault(t *testing.T) {
	rows := buildRows(t,
		[]string{"TITLE", "quantity"},
		map[string]string{"TITLE": "Rose Oil", "quantity": "-3"},
	)

	variants := BuildVariants(rows, "rose-oils.csv", testDefaults)
	require.Len(t, variants, 1)
	assert.Equal(t, 1, variants[0].InventoryQuantity)
	assert.GreaterOrEqual(t, variants[0].InventoryQuantity, 0)
}

func TestBuildVariantsDefaults(t *testing.T) {
	rows := buildRows(t,
		[]string{"TITLE"},
		map[string]string{"TITLE": "Rose Oil"},
	)

	variants := BuildVariants(rows, "rose-oils.csv", testDefaults)
	require.Len(t, variants, 1)

	v := variants[0]
	assert.True(t, v.RequiresShipping)
	assert.True(t, v.Taxable)
	assert.Equal(t, InventoryManagedBy, v.InventoryManagement)
	assert.Equal(t, "deny", v.InventoryPolicy)
	assert.Equal(t, 0.5, v.Weight)
	assert.Equal(t, "kg", v.WeightUnit)
	assert.Equal(t, "0.00", v.Price)
}

func TestBuildVariantsTaxFlag(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"false", false},
		{"FALSE", false},
		{"true", true},
		{"TRUE", true},
		{"no", true}, // only an exact "false" disables tax
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			rows := buildRows(t,
				[]string{"TITLE", "tax"},
				map[string]string{"TITLE": "Rose Oil", "tax": tt.raw},
			)
			variants := BuildVariants(rows, "rose-oils.csv", testDefaults)
			require.Len(t, variants, 1)
			assert.Equal(t, tt.want, variants[0].Taxable)
		})
	}
}

func TestDeriveSKUDeterminism(t *testing.T) {
	first := DeriveSKU("perfume-list.csv", "Rose's Night Garden", "5", "Red")
	second := DeriveSKU("perfume-list.csv", "Rose's Night Garden", "5", "Red")
	assert.Equal(t, first, second)

	// Apostrophes stripped, spaces dashed, 10-char title segment
	assert.Equal(t, "PER-ROSES-NIGH-5-Red", first)
}

func TestFilePrefix(t *testing.T) {
	assert.Equal(t, "ROS", filePrefix("product-data/rose-oils.csv"))
	assert.Equal(t, "YSL", filePrefix("YSL-PERFUME-LIST.csv"))
	assert.Equal(t, "AB", filePrefix("a-b.csv"))
}
