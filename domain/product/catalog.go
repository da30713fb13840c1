// Package product exposes the catalog lookup port. Product CRUD, stock
// history and images belong to the catalog service; the order core only
// snapshots price and ownership at placement time.
package product

import (
	"context"

	"github.com/Gift5848/gethub222-sub001/domain/shared"
)

// Product is the catalog read model used during order placement.
// ShopID is denormalized onto the product by the catalog service and must
// track the seller's current shop; the core treats it as authoritative for
// fee routing but never writes it back.
type Product struct {
	ID       string
	Name     string
	SellerID string
	ShopID   string
	Price    shared.Money
	Stock    int
}

// Catalog is the lookup port onto the external product service.
type Catalog interface {
	// FindByID returns the product or shared.ErrNotFound.
	FindByID(ctx context.Context, id string) (Product, error)
}
