package shopify

import (
	"time"

	"catalog-importer/internal/clients"
	"catalog-importer/internal/models"
)

// Wire representations of the Shopify Admin REST product payloads
type wireProduct struct {
	ID          int64         `json:"id,omitempty"`
	Title       string        `json:"title"`
	Handle      string        `json:"handle,omitempty"`
	BodyHTML    string        `json:"body_html,omitempty"`
	Vendor      string        `json:"vendor,omitempty"`
	ProductType string        `json:"product_type,omitempty"`
	Tags        string        `json:"tags,omitempty"`
	Status      string        `json:"status,omitempty"`
	Variants    []wireVariant `json:"variants,omitempty"`
	Images      []wireImage   `json:"images,omitempty"`
	Options     []wireOption  `json:"options,omitempty"`
	CreatedAt   time.Time     `json:"created_at,omitempty"`
	UpdatedAt   time.Time     `json:"updated_at,omitempty"`
}

type wireVariant struct {
	ID                  int64   `json:"id,omitempty"`
	Title               string  `json:"title,omitempty"`
	SKU                 string  `json:"sku,omitempty"`
	Price               string  `json:"price"`
	Option1             string  `json:"option1,omitempty"`
	Option2             string  `json:"option2,omitempty"`
	InventoryQuantity   int     `json:"inventory_quantity"`
	InventoryManagement string  `json:"inventory_management,omitempty"`
	InventoryPolicy     string  `json:"inventory_policy,omitempty"`
	Weight              float64 `json:"weight,omitempty"`
	WeightUnit          string  `json:"weight_unit,omitempty"`
	RequiresShipping    bool    `json:"requires_shipping"`
	Taxable             bool    `json:"taxable"`
}

type wireImage struct {
	ID  int64  `json:"id,omitempty"`
	Src string `json:"src"`
}

type wireOption struct {
	ID     int64    `json:"id,omitempty"`
	Name   string   `json:"name"`
	Values []string `json:"values,omitempty"`
}

// toWireProduct maps a normalized record onto the API payload field by field
func toWireProduct(p *models.ProductRecord) wireProduct {
	wire := wireProduct{
		Title:       p.Title,
		Handle:      p.Handle,
		BodyHTML:    p.BodyHTML,
		Vendor:      p.Vendor,
		ProductType: p.ProductType,
		Tags:        p.Tags,
		Status:      string(p.Status),
	}

	for _, v := range p.Variants {
		wire.Variants = append(wire.Variants, wireVariant{
			Title:               v.Title,
			SKU:                 v.SKU,
			Price:               v.Price,
			Option1:             v.Option1,
			Option2:             v.Option2,
			InventoryQuantity:   v.InventoryQuantity,
			InventoryManagement: v.InventoryManagement,
			InventoryPolicy:     v.InventoryPolicy,
			Weight:              v.Weight,
			WeightUnit:          v.WeightUnit,
			RequiresShipping:    v.RequiresShipping,
			Taxable:             v.Taxable,
		})
	}

	for _, img := range p.Images {
		wire.Images = append(wire.Images, wireImage{Src: img.Src})
	}

	for _, opt := range p.Options {
		wire.Options = append(wire.Options, wireOption{Name: opt.Name, Values: opt.Values})
	}

	return wire
}

func convertProduct(p wireProduct) clients.RemoteProduct {
	return clients.RemoteProduct{
		ID:        p.ID,
		Title:     p.Title,
		Handle:    p.Handle,
		Status:    p.Status,
		Variants:  len(p.Variants),
		UpdatedAt: p.UpdatedAt,
	}
}
