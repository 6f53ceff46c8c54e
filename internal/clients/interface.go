package clients

import (
	"context"
	"time"

	"catalog-importer/internal/models"
)

// CatalogClient defines the remote catalog operations the importer needs.
// Create-or-update semantics live with the caller; the client only exposes
// the primitives.
type CatalogClient interface {
	// TestConnection verifies credentials against the remote catalog
	TestConnection(ctx context.Context) error

	// FindProductByTitle returns the first product with an exactly matching
	// title, or nil when none exists.
	FindProductByTitle(ctx context.Context, title string) (*RemoteProduct, error)

	// CreateProduct creates a new product from a normalized record
	CreateProduct(ctx context.Context, product *models.ProductRecord) (*RemoteProduct, error)

	// UpdateProduct overwrites an existing product with a normalized record
	UpdateProduct(ctx context.Context, id int64, product *models.ProductRecord) (*RemoteProduct, error)
}

// RemoteProduct is the catalog's view of a product after a save or lookup
type RemoteProduct struct {
	ID        int64
	Title     string
	Handle    string
	Status    string
	Variants  int
	UpdatedAt time.Time
}
