package shop

import "context"

// Repository persists the shop aggregate. Save is a version-guarded write
// returning ErrConcurrentModification on a stale version.
type Repository interface {
	// NextIdentity generates a new shop ID.
	NextIdentity() string

	// Save creates or updates the shop.
	Save(ctx context.Context, s *Shop) error

	// FindByID returns the shop or ErrShopNotFound.
	FindByID(ctx context.Context, id string) (*Shop, error)

	// FindByOwnerID returns the shops registered by a subadmin.
	FindByOwnerID(ctx context.Context, ownerID string) ([]*Shop, error)

	// FindByStatus returns shops in the given approval status, oldest first
	// so the review queue is FIFO.
	FindByStatus(ctx context.Context, status ApprovalStatus) ([]*Shop, error)
}
