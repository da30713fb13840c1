package order

import (
	"context"

	"github.com/Gift5848/gethub222-sub001/domain/order"
)

// Basis points of the order total quoted to couriers as the estimated
// delivery price (5%).
const deliveryPriceBps = 500

// notifyAndBroadcast dispatches the post-commit fan-out for one order:
// a typed notification to the involved parties plus the enriched dashboard
// view. Best-effort throughout.
func (s *ApplicationService) notifyAndBroadcast(ctx context.Context, o *order.Order, notifType, message string) {
	if s.notifier == nil {
		return
	}

	recipients := s.recipients(o)
	s.notifier.OrderNotification(ctx, notifType, o.ID(), message, recipients)
	s.notifier.OrdersUpdate(ctx, recipients, s.buildBroadcast(ctx, o))
}

// recipients returns the parties attached to the order. The admin room is
// always added by the fan-out itself.
func (s *ApplicationService) recipients(o *order.Order) []string {
	ids := []string{o.BuyerID(), o.SellerID()}
	if o.DeliveryPersonID() != "" {
		ids = append(ids, o.DeliveryPersonID())
	}
	return ids
}

// buildBroadcast enriches the order with the derived fields the dashboard
// and courier clients render: pickup location, drop-off contact and the
// estimated delivery price. Lookup failures leave the field empty rather
// than blocking the push.
func (s *ApplicationService) buildBroadcast(ctx context.Context, o *order.Order) *BroadcastOrder {
	view := &BroadcastOrder{
		OrderResponse:          *toOrderResponse(o),
		EstimatedDeliveryPrice: o.Total().CeilPercent(deliveryPriceBps).Amount(),
	}

	if sh, err := s.shopRepo.FindByID(ctx, o.ShopID()); err == nil {
		view.ShopLocation = sh.Location()
	}
	if buyer, err := s.directory.FindByID(ctx, o.BuyerID()); err == nil {
		view.BuyerLocation = buyer.Location
		view.BuyerPhone = buyer.Phone
	}
	return view
}
