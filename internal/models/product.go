package models

// ProductStatus represents the catalog lifecycle status of a product
type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusActive   ProductStatus = "active"
	ProductStatusArchived ProductStatus = "archived"
)

// VariantRecord represents one purchasable option combination of a product.
// Price is always rendered as a fixed-point string with two fractional digits.
type VariantRecord struct {
	Title               string  `json:"title"`
	Option1             string  `json:"option1,omitempty"`
	Option2             string  `json:"option2,omitempty"`
	Price               string  `json:"price"`
	SKU                 string  `json:"sku"`
	InventoryQuantity   int     `json:"inventory_quantity"`
	InventoryManagement string  `json:"inventory_management"`
	InventoryPolicy     string  `json:"inventory_policy"`
	Weight              float64 `json:"weight"`
	WeightUnit          string  `json:"weight_unit"`
	RequiresShipping    bool    `json:"requires_shipping"`
	Taxable             bool    `json:"taxable"`
}

// OptionDefinition declares an option axis and the values present across a
// product's variants, in source order, deduplicated.
type OptionDefinition struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// ImageRef references an externally hosted product image
type ImageRef struct {
	Src string `json:"src"`
}

// ProductRecord is a normalized product ready for upsert into the catalog API.
// Assembled once per raw-row group and never mutated afterwards.
type ProductRecord struct {
	Title       string             `json:"title"`
	Handle      string             `json:"handle"`
	BodyHTML    string             `json:"body_html"`
	Vendor      string             `json:"vendor"`
	ProductType string             `json:"product_type"`
	Tags        string             `json:"tags"`
	Status      ProductStatus      `json:"status"`
	Variants    []VariantRecord    `json:"variants"`
	Images      []ImageRef         `json:"images,omitempty"`
	Options     []OptionDefinition `json:"options,omitempty"`
}
