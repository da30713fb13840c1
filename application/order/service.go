/*
Package order Application layer - order lifecycle orchestration.

Responsibilities:
 1. Resolve actors and catalog data through the external-service ports.
 2. Run the capability check (who) and the aggregate transition (when)
    before any write.
 3. Use the unit of work so the status change, the version bump and the
    outbox events commit atomically.
 4. Dispatch notifications strictly after commit, best-effort.

The fee coordinator lives in fees.go, the dashboard broadcast in
broadcast.go.
*/
package order

import (
	"context"

	"github.com/Gift5848/gethub222-sub001/domain/order"
	"github.com/Gift5848/gethub222-sub001/domain/product"
	"github.com/Gift5848/gethub222-sub001/domain/shared"
	"github.com/Gift5848/gethub222-sub001/domain/shop"
	"github.com/Gift5848/gethub222-sub001/domain/user"
	"github.com/Gift5848/gethub222-sub001/domain/wallet"
	"github.com/Gift5848/gethub222-sub001/pkg/logger"

	"go.uber.org/zap"
)

// Notifier is the post-commit notification port. All methods are
// best-effort and return nothing.
type Notifier interface {
	OrderNotification(ctx context.Context, notifType, orderID, message string, userIDs []string)
	OrdersUpdate(ctx context.Context, userIDs []string, view interface{})
	Notice(ctx context.Context, userID, subject, body string)
}

// ApplicationService coordinates order lifecycle operations.
type ApplicationService struct {
	orderRepo  order.Repository
	walletRepo wallet.Repository
	shopRepo   shop.Repository
	catalog    product.Catalog
	directory  user.Directory
	uowFactory shared.UnitOfWorkFactory
	notifier   Notifier
}

func NewApplicationService(
	orderRepo order.Repository,
	walletRepo wallet.Repository,
	shopRepo shop.Repository,
	catalog product.Catalog,
	directory user.Directory,
	uowFactory shared.UnitOfWorkFactory,
	notifier Notifier,
) *ApplicationService {
	return &ApplicationService{
		orderRepo:  orderRepo,
		walletRepo: walletRepo,
		shopRepo:   shopRepo,
		catalog:    catalog,
		directory:  directory,
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// PlaceOrder creates an order from a cart. Prices, product names and shop
// routing come from the catalog, never from the client. Fee collection is
// soft-fail: the order commits first, fee debits follow per shop and a
// failed debit is logged, never blocking placement.
func (s *ApplicationService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error) {
	buyer, err := s.directory.FindByID(ctx, req.BuyerID)
	if err != nil {
		return nil, err
	}
	if !buyer.Active {
		return nil, shared.NewForbiddenError("order", "buyer account is not active")
	}

	requests := make([]order.ItemRequest, len(req.Items))
	var sellerID, shopID string
	for i, line := range req.Items {
		p, err := s.catalog.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if p.Stock < line.Quantity {
			return nil, shared.NewValidationError("order", "quantity",
				"insufficient stock for product "+p.Name)
		}
		if i == 0 {
			sellerID = p.SellerID
			shopID = p.ShopID
		}
		requests[i] = order.ItemRequest{
			ProductID:   p.ID,
			ProductName: p.Name,
			ShopID:      p.ShopID,
			Quantity:    line.Quantity,
			UnitPrice:   p.Price,
		}
	}

	var o *order.Order
	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		o, err = order.NewOrder(req.BuyerID, sellerID, shopID, requests, order.PaymentMethod(req.PaymentMethod), order.Address{
			Line:     req.Shipping.Line,
			City:     req.Shipping.City,
			Phone:    req.Shipping.Phone,
			Location: req.Shipping.Location,
		})
		if err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterNew(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Order is durable from here on: everything below is best-effort.
	s.collectFees(ctx, o)
	s.notifyAndBroadcast(ctx, o, "order_placed", "A new order has been placed")
	return toOrderResponse(o), nil
}

// Cancel removes a pending order. The row is deleted; a cancelled order
// simply no longer exists.
func (s *ApplicationService) Cancel(ctx context.Context, req CancelRequest) error {
	actor, err := s.directory.FindByID(ctx, req.ActorID)
	if err != nil {
		return err
	}

	var o *order.Order
	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		o, err = s.orderRepo.FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}
		if err := order.Authorize(actor, o, order.TransitionCancel); err != nil {
			return err
		}
		if err := o.CanCancel(); err != nil {
			return err
		}
		o.RecordCancelled(req.ActorID, req.Reason)
		if err := s.orderRepo.Remove(ctx, o); err != nil {
			return err
		}
		uow.RegisterRemoved(o)
		return nil
	})
	if err != nil {
		return err
	}

	s.notifyAndBroadcast(ctx, o, "order_cancelled", "Order has been cancelled")
	return nil
}

// ApprovePayment confirms a manually reconciled payment, moves the order
// to processing and auto-assigns an available delivery person. A missing
// courier does not fail the approval; assignment can be done later via
// override.
func (s *ApplicationService) ApprovePayment(ctx context.Context, req TransitionRequest) (*OrderResponse, error) {
	return s.transition(ctx, req.OrderID, req.ActorID, order.TransitionApprovePayment,
		"payment_approved", "Payment approved, order is being processed",
		func(ctx context.Context, o *order.Order) error {
			if err := o.ApprovePayment(req.ActorID); err != nil {
				return err
			}
			courier, err := s.directory.FindAvailableDelivery(ctx)
			if err != nil {
				logger.Warn("No delivery person available for auto-assignment",
					zap.String("order_id", o.ID()),
					zap.Error(err),
				)
				return nil
			}
			return o.AssignDeliveryPerson(courier.ID)
		})
}

// RejectPayment records a failed manual reconciliation.
func (s *ApplicationService) RejectPayment(ctx context.Context, req TransitionRequest) (*OrderResponse, error) {
	return s.transition(ctx, req.OrderID, req.ActorID, order.TransitionRejectPayment,
		"payment_rejected", "Payment could not be verified",
		func(_ context.Context, o *order.Order) error {
			return o.RejectPayment(req.ActorID)
		})
}

// Handover records transfer of custody from the shop to the courier.
func (s *ApplicationService) Handover(ctx context.Context, req TransitionRequest) (*OrderResponse, error) {
	return s.transition(ctx, req.OrderID, req.ActorID, order.TransitionHandover,
		"order_handedover", "Order handed over for delivery",
		func(_ context.Context, o *order.Order) error {
			return o.Handover(req.ActorID)
		})
}

// AcceptDelivery is the assigned courier taking the job.
func (s *ApplicationService) AcceptDelivery(ctx context.Context, req TransitionRequest) (*OrderResponse, error) {
	return s.transition(ctx, req.OrderID, req.ActorID, order.TransitionAcceptDelivery,
		"delivery_accepted", "Delivery person accepted the order",
		func(_ context.Context, o *order.Order) error {
			return o.AcceptDelivery(req.ActorID)
		})
}

// RejectDelivery releases the courier so an admin can reassign.
func (s *ApplicationService) RejectDelivery(ctx context.Context, req TransitionRequest) (*OrderResponse, error) {
	return s.transition(ctx, req.OrderID, req.ActorID, order.TransitionRejectDelivery,
		"delivery_rejected", "Delivery person rejected the order",
		func(_ context.Context, o *order.Order) error {
			return o.RejectDelivery(req.ActorID)
		})
}

// MarkDelivered records delivery with proof.
func (s *ApplicationService) MarkDelivered(ctx context.Context, req MarkDeliveredRequest) (*OrderResponse, error) {
	return s.transition(ctx, req.OrderID, req.ActorID, order.TransitionMarkDelivered,
		"order_delivered", "Order has been delivered",
		func(_ context.Context, o *order.Order) error {
			return o.MarkDelivered(req.ActorID, req.ProofRef)
		})
}

// Confirm is the courier's final confirmation toward the seller.
func (s *ApplicationService) Confirm(ctx context.Context, req TransitionRequest) (*OrderResponse, error) {
	return s.transition(ctx, req.OrderID, req.ActorID, order.TransitionConfirm,
		"order_confirmed", "Delivery confirmed",
		func(_ context.Context, o *order.Order) error {
			return o.Confirm(req.ActorID)
		})
}

// BuyerReceived is the buyer acknowledging receipt.
func (s *ApplicationService) BuyerReceived(ctx context.Context, req TransitionRequest) (*OrderResponse, error) {
	return s.transition(ctx, req.OrderID, req.ActorID, order.TransitionBuyerReceived,
		"buyer_received", "Buyer confirmed receipt",
		func(_ context.Context, o *order.Order) error {
			return o.BuyerReceived(req.ActorID)
		})
}

// Override is the admin/subadmin escape hatch.
func (s *ApplicationService) Override(ctx context.Context, req OverrideRequest) (*OrderResponse, error) {
	return s.transition(ctx, req.OrderID, req.ActorID, order.TransitionAdminOverride,
		"order_updated", "Order was updated by an administrator",
		func(_ context.Context, o *order.Order) error {
			o.Override(req.ActorID, order.Status(req.Status), req.DeliveryPersonID)
			return nil
		})
}

// HandlePaymentWebhook is the gateway settlement callback. No actor
// authorization: the caller is the payment gateway, authenticated at the
// transport layer.
func (s *ApplicationService) HandlePaymentWebhook(ctx context.Context, req PaymentWebhookRequest) error {
	var o *order.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orderRepo.FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}
		o.SetPaymentStatus(order.PaymentStatus(req.Status))
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return err
	}

	message := "Payment received"
	if order.PaymentStatus(req.Status) == order.PaymentFailed {
		message = "Payment failed"
	}
	s.notifyAndBroadcast(ctx, o, "payment_status", message)
	return nil
}

// transition is the shared skeleton of every lifecycle operation: resolve
// actor, authorize, re-read the order inside the unit of work, apply,
// save, then notify after commit.
func (s *ApplicationService) transition(
	ctx context.Context,
	orderID, actorID string,
	t order.Transition,
	notifType, message string,
	apply func(ctx context.Context, o *order.Order) error,
) (*OrderResponse, error) {
	actor, err := s.directory.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var o *order.Order
	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		o, err = s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.Authorize(actor, o, t); err != nil {
			return err
		}
		if err := apply(ctx, o); err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyAndBroadcast(ctx, o, notifType, message)
	return toOrderResponse(o), nil
}

// GetOrder returns a single order.
func (s *ApplicationService) GetOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// GetBuyerOrders returns the buyer's orders, newest first.
func (s *ApplicationService) GetBuyerOrders(ctx context.Context, buyerID string) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.FindByBuyerID(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}

// GetSellerOrders returns the seller's orders, newest first.
func (s *ApplicationService) GetSellerOrders(ctx context.Context, sellerID string) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.FindBySellerID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}

// GetShopOrders returns a shop's orders, newest first.
func (s *ApplicationService) GetShopOrders(ctx context.Context, shopID string) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.FindByShopID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}

// GetDeliveryOrders returns the courier's assigned orders.
func (s *ApplicationService) GetDeliveryOrders(ctx context.Context, deliveryPersonID string) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.FindByDeliveryPersonID(ctx, deliveryPersonID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}

// GetAllOrders returns orders for admin views, narrowed by the filter.
// An empty filter returns everything.
func (s *ApplicationService) GetAllOrders(ctx context.Context, filter ListFilter) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.FindMatching(ctx, toSpecification(filter))
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}

// toSpecification builds the conjunction of the filter's set dimensions.
// Returns nil for an empty filter.
func toSpecification(filter ListFilter) shared.Specification {
	var spec shared.Specification
	add := func(next shared.Specification) {
		if spec == nil {
			spec = next
		} else {
			spec = shared.And(spec, next)
		}
	}

	if filter.Status != "" {
		add(order.ByStatusSpecification{Status: order.Status(filter.Status)})
	}
	if filter.PaymentStatus != "" {
		add(order.ByPaymentStatusSpecification{Status: order.PaymentStatus(filter.PaymentStatus)})
	}
	if filter.ShopID != "" {
		add(order.ByShopSpecification{ShopID: filter.ShopID})
	}
	if !filter.From.IsZero() || !filter.To.IsZero() {
		add(order.ByPlacedRangeSpecification{Start: filter.From, End: filter.To})
	}
	return spec
}
