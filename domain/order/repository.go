package order

import (
	"context"

	"github.com/Gift5848/gethub222-sub001/domain/shared"
)

// Repository persists the order aggregate. Save performs the update as a
// version-guarded write and returns ErrConcurrentModification on a stale
// version so the caller can retry against a fresh read. Remove implements
// cancellation: a cancelled order is a deleted row, there is no cancelled
// status.
type Repository interface {
	// NextIdentity generates a new order ID.
	NextIdentity() string

	// Save creates or updates the order with its line items.
	Save(ctx context.Context, o *Order) error

	// FindByID returns the order or ErrOrderNotFound.
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindByBuyerID returns the buyer's orders, newest first.
	FindByBuyerID(ctx context.Context, buyerID string) ([]*Order, error)

	// FindBySellerID returns the seller's orders, newest first.
	FindBySellerID(ctx context.Context, sellerID string) ([]*Order, error)

	// FindByShopID returns a shop's orders, newest first.
	FindByShopID(ctx context.Context, shopID string) ([]*Order, error)

	// FindByDeliveryPersonID returns the courier's assigned orders.
	FindByDeliveryPersonID(ctx context.Context, deliveryPersonID string) ([]*Order, error)

	// FindAll returns every order, newest first. Used for admin views and
	// the dashboard broadcast.
	FindAll(ctx context.Context) ([]*Order, error)

	// FindMatching returns the orders satisfying spec, newest first. A nil
	// spec matches everything.
	FindMatching(ctx context.Context, spec shared.Specification) ([]*Order, error)

	// Remove deletes the order and its line items.
	Remove(ctx context.Context, o *Order) error
}
