package importer

import (
	"path/filepath"
	"strconv"
	"strings"

	"catalog-importer/internal/models"
)

// InventoryManagedBy is the inventory_management value stamped on every
// variant: stock levels are tracked by the remote catalog.
const InventoryManagedBy = "shopify"

// Defaults carries the configured product and variant defaults threaded
// into the assembler and builder.
type Defaults struct {
	Weight          float64
	WeightUnit      string
	InventoryPolicy string
	Quantity        int
	Status          string
}

// BuildVariants derives the ordered variant list for one product group.
// Deterministic given identical inputs. Branches, in priority order:
//  1. option1 name + values present, no option2 name: one variant per value
//  2. option1 and option2 both present: full cross product, option1 outer
//  3. otherwise: a single variant from the generic variant-size column, with
//     quantity summed across the group when it spans multiple rows
func BuildVariants(group []Row, filename string, defs Defaults) []models.VariantRecord {
	base := group[0]

	price := CleanPrice(base.FieldOr(FieldPrice, ""))
	taxable := parseTaxFlag(base)
	quantity := base.Quantity(defs.Quantity)

	_, hasOpt1Name := base.Field(FieldOption1Name)
	_, hasOpt2Name := base.Field(FieldOption2Name)
	opt1Values := splitList(base.FieldOr(FieldOption1Value, ""))
	opt2Values := splitList(base.FieldOr(FieldOption2Value, ""))

	newVariant := func(title, opt1, opt2, sku string, qty int) models.VariantRecord {
		return models.VariantRecord{
			Title:               title,
			Option1:             opt1,
			Option2:             opt2,
			Price:               price,
			SKU:                 sku,
			InventoryQuantity:   qty,
			InventoryManagement: InventoryManagedBy,
			InventoryPolicy:     defs.InventoryPolicy,
			Weight:              defs.Weight,
			WeightUnit:          defs.WeightUnit,
			RequiresShipping:    true,
			Taxable:             taxable,
		}
	}

	title := base.FieldOr(FieldTitle, "")

	if hasOpt1Name && len(opt1Values) > 0 && !hasOpt2Name {
		variants := make([]models.VariantRecord, 0, len(opt1Values))
		for _, v1 := range opt1Values {
			variants = append(variants, newVariant(v1, v1, "", DeriveSKU(filename, title, v1), quantity))
		}
		return variants
	}

	if hasOpt1Name && len(opt1Values) > 0 && hasOpt2Name && len(opt2Values) > 0 {
		variants := make([]models.VariantRecord, 0, len(opt1Values)*len(opt2Values))
		for _, v1 := range opt1Values {
			for _, v2 := range opt2Values {
				variantTitle := v1 + " / " + v2
				variants = append(variants, newVariant(variantTitle, v1, v2, DeriveSKU(filename, title, v1, v2), quantity))
			}
		}
		return variants
	}

	// Fallback: single variant keyed off the generic variant-size column
	skuValue := "DEFAULT"
	variantTitle := "Default Title"
	if raw, ok := base.Field(FieldVariantSize); ok {
		skuValue = raw
		if isNumeric(raw) {
			variantTitle = raw + "ml"
		} else {
			variantTitle = raw
		}
	}

	if len(group) > 1 && base.mapping.Has(FieldQuantity) {
		total := 0
		for _, r := range group {
			total += r.Quantity(defs.Quantity)
		}
		quantity = total
	}

	return []models.VariantRecord{newVariant(variantTitle, variantTitle, "", DeriveSKU(filename, title, skuValue), quantity)}
}

// DeriveSKU builds the deterministic SKU for a variant:
// a 3-character file prefix, a 10-character title segment, and the option
// value(s). Stable across re-runs of the same input.
func DeriveSKU(filename, title string, values ...string) string {
	parts := []string{filePrefix(filename), titleSegment(title)}
	parts = append(parts, values...)
	return strings.Join(parts, "-")
}

// filePrefix takes the first 3 uppercased alphanumeric characters of the
// filename stem.
func filePrefix(filename string) string {
	stem := FileStem(filename)
	var b strings.Builder
	for _, r := range strings.ToUpper(stem) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() >= 3 {
				break
			}
		}
	}
	return b.String()
}

// titleSegment takes the first 10 uppercased characters of the title with
// spaces replaced by dashes and apostrophes removed.
func titleSegment(title string) string {
	cleaned := strings.ReplaceAll(title, "'", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "-")
	cleaned = strings.ToUpper(cleaned)
	runes := []rune(cleaned)
	if len(runes) > 10 {
		runes = runes[:10]
	}
	return string(runes)
}

// FileStem returns the filename without directory or extension
func FileStem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// parseTaxFlag honors an explicit tax column; anything other than an exact
// case-insensitive "false" leaves the variant taxable.
func parseTaxFlag(r Row) bool {
	raw, ok := r.Field(FieldTax)
	if !ok {
		return true
	}
	return !strings.EqualFold(raw, "false")
}

// splitList splits a comma-separated value list, trimming entries and
// dropping blanks. Duplicates are preserved in source order.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
