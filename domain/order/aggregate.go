/*
Package order implements the order aggregate and its lifecycle state
machine. The aggregate owns the consistency boundary: line items, the unit
price snapshot, the status machine, the payment sub-states and the
delivery assignment all change only through its methods.

Pricing rule: unit prices are snapshotted at placement time and never
recomputed from the live catalog. The same applies to the shipping
address, which delivery depends on being stable.
*/
package order

import (
	"fmt"
	"time"

	"github.com/Gift5848/gethub222-sub001/domain/shared"

	"github.com/google/uuid"
)

// Order aggregate root.
type Order struct {
	id       string
	buyerID  string
	sellerID string
	shopID   string

	items []Item
	total shared.Money

	status                Status
	paymentMethod         PaymentMethod
	paymentStatus         PaymentStatus
	paymentApprovalStatus ApprovalStatus

	deliveryPersonID string // empty until payment approval assigns one
	proofOfDelivery  string // attachment reference, set by mark-delivered

	shippingAddress Address

	version   int
	createdAt time.Time
	updatedAt time.Time

	events []shared.DomainEvent
	isNew  bool
}

// Item is a line item inside the aggregate. It has no identity outside the
// order and carries the placement-time price snapshot.
type Item struct {
	id          string
	productID   string
	productName string
	shopID      string // owning shop of the product, for fee routing
	quantity    int
	unitPrice   shared.Money
	subtotal    shared.Money
}

func (i Item) ID() string              { return i.id }
func (i Item) ProductID() string       { return i.productID }
func (i Item) ProductName() string     { return i.productName }
func (i Item) ShopID() string          { return i.shopID }
func (i Item) Quantity() int           { return i.quantity }
func (i Item) UnitPrice() shared.Money { return i.unitPrice }
func (i Item) Subtotal() shared.Money  { return i.subtotal }

// Address is the shipping destination captured once at placement.
type Address struct {
	Line     string
	City     string
	Phone    string
	Location string // "lat,lng" as supplied by the client, no geocoding
}

// ItemRequest describes one cart line at placement time.
type ItemRequest struct {
	ProductID   string
	ProductName string
	ShopID      string
	Quantity    int
	UnitPrice   shared.Money
}

// NewOrder creates the aggregate from a validated cart. The only entry
// point for placement; enforces non-empty cart, positive quantities and
// the total == Σ quantity×price invariant by construction.
func NewOrder(buyerID, sellerID, shopID string, requests []ItemRequest, method PaymentMethod, addr Address) (*Order, error) {
	if buyerID == "" {
		return nil, shared.NewValidationError("order", "buyer_id", "buyer is required")
	}
	if shopID == "" {
		return nil, shared.NewValidationError("order", "shop_id", "shop could not be resolved")
	}
	if len(requests) == 0 {
		return nil, ErrEmptyOrderItems
	}

	items := make([]Item, len(requests))
	total := shared.NewBirr(0)
	for i, req := range requests {
		if req.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		subtotal, err := req.UnitPrice.Multiply(req.Quantity)
		if err != nil {
			return nil, err
		}

		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate order item ID: %w", err)
		}
		items[i] = Item{
			id:          id.String(),
			productID:   req.ProductID,
			productName: req.ProductName,
			shopID:      req.ShopID,
			quantity:    req.Quantity,
			unitPrice:   req.UnitPrice,
			subtotal:    *subtotal,
		}
		total, err = total.Add(*subtotal)
		if err != nil {
			return nil, err
		}
	}
	if !total.IsPositive() {
		return nil, ErrTotalNotPositive
	}

	orderID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order ID: %w", err)
	}

	now := time.Now()
	o := &Order{
		id:                    orderID.String(),
		buyerID:               buyerID,
		sellerID:              sellerID,
		shopID:                shopID,
		items:                 items,
		total:                 *total,
		status:                StatusPending,
		paymentMethod:         method,
		paymentStatus:         PaymentUnpaid,
		paymentApprovalStatus: ApprovalPending,
		shippingAddress:       addr,
		version:               0,
		createdAt:             now,
		updatedAt:             now,
		events:                make([]shared.DomainEvent, 0),
		isNew:                 true,
	}
	o.events = append(o.events, NewOrderPlacedEvent(o.id, buyerID, sellerID, shopID, o.total))
	return o, nil
}

// CanCancel guards cancellation: only pending orders may be removed.
// The deletion itself happens in the repository (virtual cancelled state).
func (o *Order) CanCancel() error {
	if o.status != StatusPending {
		return NewStateConflictError(o.id, o.status, TransitionCancel)
	}
	return nil
}

// ApprovePayment confirms a manually reconciled payment and moves the
// order to processing. Gateway methods never pass through here.
func (o *Order) ApprovePayment(actorID string) error {
	if !o.paymentMethod.RequiresManualApproval() {
		return NewStateConflictError(o.id, o.status, TransitionApprovePayment)
	}
	to, ok := CanTransition(o.status, TransitionApprovePayment)
	if !ok {
		return NewStateConflictError(o.id, o.status, TransitionApprovePayment)
	}

	o.paymentApprovalStatus = ApprovalApproved
	o.paymentStatus = PaymentPaid
	o.applyStatus(to, TransitionApprovePayment, actorID)
	return nil
}

// RejectPayment records a failed reconciliation; the order stays pending.
func (o *Order) RejectPayment(actorID string) error {
	if _, ok := CanTransition(o.status, TransitionRejectPayment); !ok {
		return NewStateConflictError(o.id, o.status, TransitionRejectPayment)
	}

	o.paymentApprovalStatus = ApprovalRejected
	o.paymentStatus = PaymentUnpaid
	o.updatedAt = time.Now()
	o.events = append(o.events, NewStatusChangedEvent(o.id, o.status, o.status, TransitionRejectPayment, actorID))
	return nil
}

// SetPaymentStatus is the gateway webhook path; it bypasses manual
// approval and touches only the payment sub-state.
func (o *Order) SetPaymentStatus(status PaymentStatus) {
	o.paymentStatus = status
	o.updatedAt = time.Now()
	o.events = append(o.events, NewPaymentStatusEvent(o.id, status))
}

// AssignDeliveryPerson sets the courier once payment is approved.
func (o *Order) AssignDeliveryPerson(deliveryPersonID string) error {
	if o.paymentApprovalStatus != ApprovalApproved && o.paymentStatus != PaymentPaid {
		return NewStateConflictError(o.id, o.status, TransitionAdminOverride)
	}
	o.deliveryPersonID = deliveryPersonID
	o.updatedAt = time.Now()
	o.events = append(o.events, NewDeliveryAssignedEvent(o.id, deliveryPersonID))
	return nil
}

// Handover records transfer of custody from seller to delivery person.
func (o *Order) Handover(actorID string) error {
	return o.transition(TransitionHandover, actorID)
}

// AcceptDelivery is the assigned courier taking the job.
func (o *Order) AcceptDelivery(actorID string) error {
	return o.transition(TransitionAcceptDelivery, actorID)
}

// RejectDelivery releases the courier; the assignment is cleared so an
// admin can reassign.
func (o *Order) RejectDelivery(actorID string) error {
	if err := o.transition(TransitionRejectDelivery, actorID); err != nil {
		return err
	}
	o.deliveryPersonID = ""
	return nil
}

// MarkDelivered records delivery with a proof-of-delivery attachment.
func (o *Order) MarkDelivered(actorID, proofRef string) error {
	if err := o.transition(TransitionMarkDelivered, actorID); err != nil {
		return err
	}
	o.proofOfDelivery = proofRef
	return nil
}

// Confirm is the courier's final confirmation toward the seller.
func (o *Order) Confirm(actorID string) error {
	return o.transition(TransitionConfirm, actorID)
}

// BuyerReceived is the buyer acknowledging receipt.
func (o *Order) BuyerReceived(actorID string) error {
	return o.transition(TransitionBuyerReceived, actorID)
}

// Override is the admin/subadmin escape hatch: direct status and courier
// overwrite, independent of the transition table.
func (o *Order) Override(actorID string, status Status, deliveryPersonID string) {
	from := o.status
	if status != "" {
		o.status = status
	}
	if deliveryPersonID != "" {
		o.deliveryPersonID = deliveryPersonID
	}
	o.updatedAt = time.Now()
	o.events = append(o.events, NewStatusChangedEvent(o.id, from, o.status, TransitionAdminOverride, actorID))
}

func (o *Order) transition(t Transition, actorID string) error {
	to, ok := CanTransition(o.status, t)
	if !ok {
		return NewStateConflictError(o.id, o.status, t)
	}
	o.applyStatus(to, t, actorID)
	return nil
}

func (o *Order) applyStatus(to Status, t Transition, actorID string) {
	from := o.status
	o.status = to
	o.updatedAt = time.Now()
	o.events = append(o.events, NewStatusChangedEvent(o.id, from, to, t, actorID))
}

func (o *Order) ID() string                            { return o.id }
func (o *Order) BuyerID() string                       { return o.buyerID }
func (o *Order) SellerID() string                      { return o.sellerID }
func (o *Order) ShopID() string                        { return o.shopID }
func (o *Order) Total() shared.Money                   { return o.total }
func (o *Order) Status() Status                        { return o.status }
func (o *Order) PaymentMethod() PaymentMethod          { return o.paymentMethod }
func (o *Order) PaymentStatus() PaymentStatus          { return o.paymentStatus }
func (o *Order) PaymentApprovalStatus() ApprovalStatus { return o.paymentApprovalStatus }
func (o *Order) DeliveryPersonID() string              { return o.deliveryPersonID }
func (o *Order) ProofOfDelivery() string               { return o.proofOfDelivery }
func (o *Order) ShippingAddress() Address              { return o.shippingAddress }
func (o *Order) Version() int                          { return o.version }
func (o *Order) CreatedAt() time.Time                  { return o.createdAt }
func (o *Order) UpdatedAt() time.Time                  { return o.updatedAt }

// Items returns a copy; line items are immutable after placement.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// FeeShopIDs returns the distinct product-owning shops in the cart, in
// first-appearance order. The fee coordinator debits each exactly once
// per line item's shop.
func (o *Order) FeeShopIDs() []string {
	seen := make(map[string]bool, len(o.items))
	var ids []string
	for _, item := range o.items {
		if !seen[item.shopID] {
			seen[item.shopID] = true
			ids = append(ids, item.shopID)
		}
	}
	return ids
}

// IsNew reports whether the aggregate was created in this session.
func (o *Order) IsNew() bool { return o.isNew }

// ClearDirtyTracking resets change tracking after a successful save.
func (o *Order) ClearDirtyTracking() { o.isNew = false }

// IncrementVersionForSave bumps the optimistic-lock version after the
// repository committed the guarded update.
func (o *Order) IncrementVersionForSave() {
	o.version++
	o.updatedAt = time.Now()
}

// PullEvents returns and clears recorded domain events.
func (o *Order) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(o.events))
	copy(events, o.events)
	o.events = make([]shared.DomainEvent, 0)
	return events
}

// RecordCancelled lets the application layer record the cancellation event
// before the repository deletes the row.
func (o *Order) RecordCancelled(actorID, reason string) {
	o.events = append(o.events, NewOrderCancelledEvent(o.id, actorID, reason))
}

// ReconstructionDTO rebuilds an order from persistence. Repository use only.
type ReconstructionDTO struct {
	ID                    string
	BuyerID               string
	SellerID              string
	ShopID                string
	Items                 []Item
	Total                 shared.Money
	Status                Status
	PaymentMethod         PaymentMethod
	PaymentStatus         PaymentStatus
	PaymentApprovalStatus ApprovalStatus
	DeliveryPersonID      string
	ProofOfDelivery       string
	ShippingAddress       Address
	Version               int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// RebuildFromDTO reconstructs the aggregate without triggering events.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:                    dto.ID,
		buyerID:               dto.BuyerID,
		sellerID:              dto.SellerID,
		shopID:                dto.ShopID,
		items:                 dto.Items,
		total:                 dto.Total,
		status:                dto.Status,
		paymentMethod:         dto.PaymentMethod,
		paymentStatus:         dto.PaymentStatus,
		paymentApprovalStatus: dto.PaymentApprovalStatus,
		deliveryPersonID:      dto.DeliveryPersonID,
		proofOfDelivery:       dto.ProofOfDelivery,
		shippingAddress:       dto.ShippingAddress,
		version:               dto.Version,
		createdAt:             dto.CreatedAt,
		updatedAt:             dto.UpdatedAt,
	}
}

// ItemReconstructionDTO rebuilds a line item from persistence.
type ItemReconstructionDTO struct {
	ID          string
	ProductID   string
	ProductName string
	ShopID      string
	Quantity    int
	UnitPrice   shared.Money
	Subtotal    shared.Money
}

// RebuildItemFromDTO reconstructs a line item.
func RebuildItemFromDTO(dto ItemReconstructionDTO) Item {
	return Item{
		id:          dto.ID,
		productID:   dto.ProductID,
		productName: dto.ProductName,
		shopID:      dto.ShopID,
		quantity:    dto.Quantity,
		unitPrice:   dto.UnitPrice,
		subtotal:    dto.Subtotal,
	}
}

var _ shared.AggregateRoot = (*Order)(nil)
