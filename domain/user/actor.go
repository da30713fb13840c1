// Package user models the acting parties of the marketplace. User CRUD and
// authentication live in a separate service; the order and wallet core only
// needs role, approval/active flags, shop membership and delivery
// eligibility, so the package exposes a read model (Actor) and a lookup
// port (Directory) instead of a full aggregate.
package user

import "context"

// Role of a marketplace actor.
type Role string

const (
	RoleBuyer    Role = "buyer"
	RoleSubadmin Role = "subadmin"
	RoleSeller   Role = "seller"
	RoleDelivery Role = "delivery"
	RoleAdmin    Role = "admin"
)

// Actor is the read model the core consults for authorization and routing.
// A seller is owned by exactly one subadmin and belongs to exactly one shop;
// the owning subadmin belongs to the same shop (seller.ShopID ==
// owner(subadmin).ShopID always; the directory service maintains this).
type Actor struct {
	ID       string
	Role     Role
	ShopID   string // empty for buyers and platform admins
	OwnerID  string // owning subadmin, sellers only
	Email    string
	Phone    string
	Location string
	Active   bool
	Approved bool
}

// IsOperational reports whether the actor may act on shop resources.
func (a Actor) IsOperational() bool {
	return a.Active && a.Approved
}

// CanDeliver reports delivery eligibility.
func (a Actor) CanDeliver() bool {
	return a.Role == RoleDelivery && a.IsOperational()
}

// Directory is the lookup port onto the external user service.
type Directory interface {
	// FindByID returns the actor or shared.ErrNotFound.
	FindByID(ctx context.Context, id string) (Actor, error)

	// FindShopOwner returns the subadmin managing the given shop.
	FindShopOwner(ctx context.Context, shopID string) (Actor, error)

	// FindAvailableDelivery returns an active and approved delivery person,
	// or shared.ErrNotFound when none is available.
	FindAvailableDelivery(ctx context.Context) (Actor, error)
}
