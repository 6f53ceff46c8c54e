package importer

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is one raw CSV record exposed through the column mapping. Fields that
// did not resolve to a column, or whose value is blank, read as absent.
type Row struct {
	values  map[string]string
	mapping *ColumnMapping
}

// NewRow wraps a raw record keyed by source column name
func NewRow(values map[string]string, mapping *ColumnMapping) Row {
	return Row{values: values, mapping: mapping}
}

// Field returns the trimmed value for a semantic field and whether it is
// present (column resolved and value non-blank).
func (r Row) Field(f Field) (string, bool) {
	col, ok := r.mapping.Column(f)
	if !ok {
		return "", false
	}
	value := strings.TrimSpace(r.values[col])
	if value == "" {
		return "", false
	}
	return value, true
}

// FieldOr returns the field value or def when absent
func (r Row) FieldOr(f Field, def string) string {
	if value, ok := r.Field(f); ok {
		return value
	}
	return def
}

// Quantity returns the row's inventory quantity, defaulting to def when the
// quantity column is absent, unparsable, or negative. Inventory quantities
// are never below zero.
func (r Row) Quantity(def int) int {
	raw, ok := r.Field(FieldQuantity)
	if !ok {
		return def
	}
	qty, err := strconv.Atoi(raw)
	if err != nil {
		// Some sources export quantities as floats ("5.0")
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			return def
		}
		qty = int(f)
	}
	if qty < 0 {
		return def
	}
	return qty
}

// Clean substitutes def for blank input and trims surrounding whitespace
// otherwise.
func Clean(raw, def string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return def
	}
	return trimmed
}

// CleanPrice normalizes a price value to a fixed-point string with exactly
// two fractional digits. Unparsable input formats as "0.00".
func CleanPrice(raw string) string {
	cleaned := Clean(raw, "")
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		price = 0.0
	}
	return fmt.Sprintf("%.2f", price)
}
