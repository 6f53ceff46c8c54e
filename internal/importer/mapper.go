package importer

import (
	"github.com/sirupsen/logrus"
)

// Field is a semantic field name resolved against CSV headers
type Field string

const (
	FieldTitle        Field = "title"
	FieldDescription  Field = "description"
	FieldPrice        Field = "price"
	FieldVariantSize  Field = "variantSize"
	FieldQuantity     Field = "quantity"
	FieldTags         Field = "tags"
	FieldVendor       Field = "vendor"
	FieldCategory     Field = "category"
	FieldImage        Field = "image"
	FieldTax          Field = "tax"
	FieldTrack        Field = "track"
	FieldHandle       Field = "handle"
	FieldOption1Name  Field = "option1Name"
	FieldOption1Value Field = "option1Value"
	FieldOption2Name  Field = "option2Name"
	FieldOption2Value Field = "option2Value"
)

// fieldSynonyms maps each semantic field to its accepted header spellings,
// in priority order. Matching is case-sensitive; the first synonym present
// among the headers wins.
var fieldSynonyms = map[Field][]string{
	FieldTitle:        {"TITLE", "title", "name", "product_name"},
	FieldDescription:  {"Description", "description", "body_html", "desc", "details"},
	FieldPrice:        {"Price", "price", "cost", "amount", "unit_price"},
	FieldVariantSize:  {"variants", "variant", "size", "ml", "volume"},
	FieldQuantity:     {"NO.OF PIECES", "quantity", "stock", "inventory", "pieces"},
	FieldTags:         {"TAGS", "tags", "tag", "keywords"},
	FieldVendor:       {"Vendor", "vendor", "brand", "supplier", "manufacturer"},
	FieldCategory:     {"Category", "category", "type", "product_type"},
	FieldImage:        {"Media Link", "image", "photo", "media", "image_url"},
	FieldTax:          {"Charge tax on this product", "tax", "taxable"},
	FieldTrack:        {"Track quantity", "track", "inventory_tracking"},
	FieldHandle:       {"Handle", "handle"},
	FieldOption1Name:  {"Option1 Name", "option1 name", "option1_name"},
	FieldOption1Value: {"Option1 Value", "option1 value", "option1_value"},
	FieldOption2Name:  {"Option2 Name", "option2 name", "option2_name"},
	FieldOption2Value: {"Option2 Value", "option2 value", "option2_value"},
}

// fieldOrder keeps diagnostic output stable
var fieldOrder = []Field{
	FieldTitle, FieldDescription, FieldPrice, FieldVariantSize, FieldQuantity,
	FieldTags, FieldVendor, FieldCategory, FieldImage, FieldTax, FieldTrack,
	FieldHandle, FieldOption1Name, FieldOption1Value, FieldOption2Name, FieldOption2Value,
}

// ColumnMapping maps semantic fields to the source column names present in
// one file. Built once per file, immutable afterwards.
type ColumnMapping struct {
	columns map[Field]string
}

// Column returns the source column resolved for a field, if any
func (m *ColumnMapping) Column(f Field) (string, bool) {
	col, ok := m.columns[f]
	return col, ok
}

// Has reports whether a field resolved to a column
func (m *ColumnMapping) Has(f Field) bool {
	_, ok := m.columns[f]
	return ok
}

// ToMap returns a plain field name to column name map for reporting
func (m *ColumnMapping) ToMap() map[string]string {
	out := make(map[string]string, len(m.columns))
	for f, col := range m.columns {
		out[string(f)] = col
	}
	return out
}

// DetectColumns resolves each semantic field against the file's headers.
// Returns MissingRequiredColumnError when no title synonym is present.
func DetectColumns(headers []string, filename string, logger *logrus.Entry) (*ColumnMapping, error) {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	mapping := &ColumnMapping{columns: make(map[Field]string)}
	for _, field := range fieldOrder {
		for _, synonym := range fieldSynonyms[field] {
			if present[synonym] {
				mapping.columns[field] = synonym
				break
			}
		}
	}

	if !mapping.Has(FieldTitle) {
		return nil, &MissingRequiredColumnError{Field: string(FieldTitle), Filename: filename}
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"file":    filename,
			"columns": headers,
			"mapping": mapping.ToMap(),
		}).Info("Detected column mapping")
	}

	return mapping, nil
}
