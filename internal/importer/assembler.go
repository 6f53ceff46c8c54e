package importer

import (
	"fmt"
	"strings"

	"catalog-importer/internal/models"
)

// DefaultTag is applied when a product has no tags column or value
const DefaultTag = "imported"

// AssembleProduct combines one raw-row group into a normalized product
// record. Scalar fields come from the first row; the full group drives
// variant and option derivation.
func AssembleProduct(group []Row, filename string, defs Defaults) (*models.ProductRecord, error) {
	if len(group) == 0 {
		return nil, fmt.Errorf("empty product group")
	}
	base := group[0]

	title, ok := base.Field(FieldTitle)
	if !ok {
		return nil, fmt.Errorf("product group has no title")
	}

	handle := base.FieldOr(FieldHandle, "")
	if handle == "" {
		handle = Slugify(title)
	}

	body := base.FieldOr(FieldDescription, "")
	if body == "" {
		body = fmt.Sprintf("<p>%s</p><p>Imported from %s.</p>", title, FileStem(filename))
	}

	variants := BuildVariants(group, filename, defs)

	product := &models.ProductRecord{
		Title:       title,
		Handle:      handle,
		BodyHTML:    body,
		Vendor:      base.FieldOr(FieldVendor, ""),
		ProductType: base.FieldOr(FieldCategory, ""),
		Tags:        normalizeTags(base.FieldOr(FieldTags, "")),
		Status:      productStatus(defs.Status),
		Variants:    variants,
		Images:      collectImages(base),
		Options:     deriveOptions(base, variants),
	}

	return product, nil
}

// productStatus maps the configured default status onto a known status,
// falling back to draft for anything unrecognized.
func productStatus(configured string) models.ProductStatus {
	switch models.ProductStatus(configured) {
	case models.ProductStatusActive:
		return models.ProductStatusActive
	case models.ProductStatusArchived:
		return models.ProductStatusArchived
	default:
		return models.ProductStatusDraft
	}
}

// Slugify derives a handle from a title: lowercase, spaces to dashes,
// apostrophes stripped.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = strings.ReplaceAll(slug, "'", "")
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}

// normalizeTags trims and rejoins a comma-separated tag list, substituting
// the sentinel tag when empty.
func normalizeTags(raw string) string {
	tags := splitList(raw)
	if len(tags) == 0 {
		return DefaultTag
	}
	return strings.Join(tags, ", ")
}

// collectImages keeps only values with an HTTP(S) scheme; anything else is
// silently dropped.
func collectImages(base Row) []models.ImageRef {
	raw, ok := base.Field(FieldImage)
	if !ok {
		return nil
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return nil
	}
	return []models.ImageRef{{Src: raw}}
}

// deriveOptions declares option axes only when the variant builder actually
// took an explicit-option branch; the mirror conditions keep declared options
// consistent with the built variants. Values are the ones present across the
// variants, in order, deduplicated.
func deriveOptions(base Row, variants []models.VariantRecord) []models.OptionDefinition {
	opt1Name, hasOpt1 := base.Field(FieldOption1Name)
	opt2Name, hasOpt2 := base.Field(FieldOption2Name)
	hasOpt1Values := len(splitList(base.FieldOr(FieldOption1Value, ""))) > 0
	hasOpt2Values := len(splitList(base.FieldOr(FieldOption2Value, ""))) > 0

	if !hasOpt1 || !hasOpt1Values {
		return nil
	}

	option1 := models.OptionDefinition{
		Name:   opt1Name,
		Values: uniqueValues(variants, func(v models.VariantRecord) string { return v.Option1 }),
	}

	if !hasOpt2 {
		return []models.OptionDefinition{option1}
	}
	if !hasOpt2Values {
		// Option2 named but valueless: the builder fell back to a single
		// generic variant, so no options are declared.
		return nil
	}

	return []models.OptionDefinition{option1, {
		Name:   opt2Name,
		Values: uniqueValues(variants, func(v models.VariantRecord) string { return v.Option2 }),
	}}
}

func uniqueValues(variants []models.VariantRecord, get func(models.VariantRecord) string) []string {
	seen := make(map[string]bool, len(variants))
	values := make([]string, 0, len(variants))
	for _, v := range variants {
		value := get(v)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		values = append(values, value)
	}
	return values
}
