package order

import "github.com/Gift5848/gethub222-sub001/domain/user"

// rule decides whether the actor may apply the transition to the order.
type rule func(actor user.Actor, o *Order) bool

// transitionRules is the authorization table. One entry per transition;
// a transition with no entry is denied for everyone.
var transitionRules = map[Transition]rule{
	// Buyers cancel their own pending orders; the owning seller, the
	// subadmin running the shop, or an admin can also withdraw one. Other
	// sellers of the same shop cannot.
	TransitionCancel: func(a user.Actor, o *Order) bool {
		switch a.Role {
		case user.RoleAdmin:
			return true
		case user.RoleBuyer:
			return a.ID == o.BuyerID()
		case user.RoleSeller:
			return a.ID == o.SellerID()
		case user.RoleSubadmin:
			return sameShop(a, o)
		}
		return false
	},

	// Manual payment reconciliation is a platform admin concern.
	TransitionApprovePayment: adminOnly,
	TransitionRejectPayment:  adminOnly,

	// Handover is performed shop-side: the order's seller, the subadmin
	// running the shop, or another operational member of the same shop.
	TransitionHandover: func(a user.Actor, o *Order) bool {
		if a.Role == user.RoleAdmin {
			return true
		}
		if a.ID == o.SellerID() {
			return true
		}
		return a.IsOperational() && sameShop(a, o)
	},

	// Courier actions belong to the assigned delivery person.
	TransitionAcceptDelivery: assignedCourier,
	TransitionRejectDelivery: assignedCourier,
	TransitionMarkDelivered:  assignedCourier,
	TransitionConfirm:        assignedCourier,

	TransitionBuyerReceived: func(a user.Actor, o *Order) bool {
		return a.Role == user.RoleBuyer && a.ID == o.BuyerID()
	},

	TransitionAdminOverride: func(a user.Actor, o *Order) bool {
		switch a.Role {
		case user.RoleAdmin:
			return true
		case user.RoleSubadmin:
			return sameShop(a, o)
		}
		return false
	},
}

func adminOnly(a user.Actor, _ *Order) bool {
	return a.Role == user.RoleAdmin
}

func assignedCourier(a user.Actor, o *Order) bool {
	return a.Role == user.RoleDelivery && a.ID == o.DeliveryPersonID() && o.DeliveryPersonID() != ""
}

func sameShop(a user.Actor, o *Order) bool {
	return a.ShopID != "" && a.ShopID == o.ShopID()
}

// Authorize checks whether the actor may apply the transition to the
// order. It is a pure capability check; the status guard lives in the
// transition table and runs separately.
func Authorize(actor user.Actor, o *Order, t Transition) error {
	allowed, ok := transitionRules[t]
	if !ok || !allowed(actor, o) {
		return NewForbiddenError(actor.ID, t)
	}
	return nil
}
