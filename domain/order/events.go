package order

import (
	"time"

	"github.com/Gift5848/gethub222-sub001/domain/shared"
)

type OrderPlacedEvent struct {
	orderID    string
	buyerID    string
	sellerID   string
	shopID     string
	total      shared.Money
	occurredOn time.Time
}

func NewOrderPlacedEvent(orderID, buyerID, sellerID, shopID string, total shared.Money) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		orderID:    orderID,
		buyerID:    buyerID,
		sellerID:   sellerID,
		shopID:     shopID,
		total:      total,
		occurredOn: time.Now(),
	}
}

func (e *OrderPlacedEvent) EventName() string      { return "order.placed" }
func (e *OrderPlacedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderPlacedEvent) GetAggregateID() string { return e.orderID }
func (e *OrderPlacedEvent) OrderID() string        { return e.orderID }
func (e *OrderPlacedEvent) BuyerID() string        { return e.buyerID }
func (e *OrderPlacedEvent) SellerID() string       { return e.sellerID }
func (e *OrderPlacedEvent) ShopID() string         { return e.shopID }
func (e *OrderPlacedEvent) Total() shared.Money    { return e.total }

// StatusChangedEvent is recorded for every lifecycle transition, including
// admin overrides and payment rejections that leave the status unchanged.
type StatusChangedEvent struct {
	orderID    string
	from       Status
	to         Status
	transition Transition
	actorID    string
	occurredOn time.Time
}

func NewStatusChangedEvent(orderID string, from, to Status, t Transition, actorID string) *StatusChangedEvent {
	return &StatusChangedEvent{
		orderID:    orderID,
		from:       from,
		to:         to,
		transition: t,
		actorID:    actorID,
		occurredOn: time.Now(),
	}
}

func (e *StatusChangedEvent) EventName() string      { return "order.status_changed" }
func (e *StatusChangedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *StatusChangedEvent) GetAggregateID() string { return e.orderID }
func (e *StatusChangedEvent) OrderID() string        { return e.orderID }
func (e *StatusChangedEvent) From() Status           { return e.from }
func (e *StatusChangedEvent) To() Status             { return e.to }
func (e *StatusChangedEvent) Transition() Transition { return e.transition }
func (e *StatusChangedEvent) ActorID() string        { return e.actorID }

type DeliveryAssignedEvent struct {
	orderID          string
	deliveryPersonID string
	occurredOn       time.Time
}

func NewDeliveryAssignedEvent(orderID, deliveryPersonID string) *DeliveryAssignedEvent {
	return &DeliveryAssignedEvent{
		orderID:          orderID,
		deliveryPersonID: deliveryPersonID,
		occurredOn:       time.Now(),
	}
}

func (e *DeliveryAssignedEvent) EventName() string        { return "order.delivery_assigned" }
func (e *DeliveryAssignedEvent) OccurredOn() time.Time    { return e.occurredOn }
func (e *DeliveryAssignedEvent) GetAggregateID() string   { return e.orderID }
func (e *DeliveryAssignedEvent) OrderID() string          { return e.orderID }
func (e *DeliveryAssignedEvent) DeliveryPersonID() string { return e.deliveryPersonID }

type PaymentStatusEvent struct {
	orderID    string
	status     PaymentStatus
	occurredOn time.Time
}

func NewPaymentStatusEvent(orderID string, status PaymentStatus) *PaymentStatusEvent {
	return &PaymentStatusEvent{orderID: orderID, status: status, occurredOn: time.Now()}
}

func (e *PaymentStatusEvent) EventName() string      { return "order.payment_status" }
func (e *PaymentStatusEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *PaymentStatusEvent) GetAggregateID() string { return e.orderID }
func (e *PaymentStatusEvent) OrderID() string        { return e.orderID }
func (e *PaymentStatusEvent) Status() PaymentStatus  { return e.status }

type OrderCancelledEvent struct {
	orderID    string
	actorID    string
	reason     string
	occurredOn time.Time
}

func NewOrderCancelledEvent(orderID, actorID, reason string) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		orderID:    orderID,
		actorID:    actorID,
		reason:     reason,
		occurredOn: time.Now(),
	}
}

func (e *OrderCancelledEvent) EventName() string      { return "order.cancelled" }
func (e *OrderCancelledEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderCancelledEvent) GetAggregateID() string { return e.orderID }
func (e *OrderCancelledEvent) OrderID() string        { return e.orderID }
func (e *OrderCancelledEvent) ActorID() string        { return e.actorID }
func (e *OrderCancelledEvent) Reason() string         { return e.reason }
