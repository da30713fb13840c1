package order

import "time"

// PlaceOrderRequest Order placement input.
type PlaceOrderRequest struct {
	BuyerID       string            `json:"buyer_id" binding:"required"`
	Items         []CartItemRequest `json:"items" binding:"required,min=1"`
	PaymentMethod string            `json:"payment_method" binding:"required,oneof=cbe telebirr chapa"`
	Shipping      ShippingRequest   `json:"shipping"`
}

// CartItemRequest One cart line. Prices come from the catalog, never from
// the client.
type CartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// ShippingRequest Shipping destination, captured once at placement.
type ShippingRequest struct {
	Line     string `json:"line"`
	City     string `json:"city"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// TransitionRequest Input shared by the lifecycle transition operations.
type TransitionRequest struct {
	OrderID string `json:"order_id"`
	ActorID string `json:"actor_id" binding:"required"`
}

// MarkDeliveredRequest Courier delivery confirmation with proof reference.
type MarkDeliveredRequest struct {
	OrderID  string `json:"order_id"`
	ActorID  string `json:"actor_id" binding:"required"`
	ProofRef string `json:"proof_ref"`
}

// CancelRequest Order cancellation input.
type CancelRequest struct {
	OrderID string `json:"order_id"`
	ActorID string `json:"actor_id" binding:"required"`
	Reason  string `json:"reason"`
}

// OverrideRequest Admin escape hatch: direct status/courier overwrite.
type OverrideRequest struct {
	OrderID          string `json:"order_id"`
	ActorID          string `json:"actor_id" binding:"required"`
	Status           string `json:"status"`
	DeliveryPersonID string `json:"delivery_person_id"`
}

// PaymentWebhookRequest Gateway settlement callback.
type PaymentWebhookRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Status  string `json:"status" binding:"required,oneof=paid failed"`
}

// ListFilter Admin listing filter. Zero values leave that dimension
// unfiltered.
type ListFilter struct {
	Status        string
	PaymentStatus string
	ShopID        string
	From          time.Time
	To            time.Time
}

// OrderResponse Order return model.
type OrderResponse struct {
	ID                    string              `json:"id"`
	BuyerID               string              `json:"buyer_id"`
	SellerID              string              `json:"seller_id"`
	ShopID                string              `json:"shop_id"`
	Items                 []OrderItemResponse `json:"items"`
	Total                 MoneyResponse       `json:"total"`
	Status                string              `json:"status"`
	PaymentMethod         string              `json:"payment_method"`
	PaymentStatus         string              `json:"payment_status"`
	PaymentApprovalStatus string              `json:"payment_approval_status"`
	DeliveryPersonID      string              `json:"delivery_person_id,omitempty"`
	ProofOfDelivery       string              `json:"proof_of_delivery,omitempty"`
	Shipping              ShippingRequest     `json:"shipping"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
}

// OrderItemResponse Order line item return model.
type OrderItemResponse struct {
	ProductID   string        `json:"product_id"`
	ProductName string        `json:"product_name"`
	ShopID      string        `json:"shop_id"`
	Quantity    int           `json:"quantity"`
	UnitPrice   MoneyResponse `json:"unit_price"`
	Subtotal    MoneyResponse `json:"subtotal"`
}

// MoneyResponse Money return model.
type MoneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// BroadcastOrder is the dashboard view: the full order plus the derived
// fields the clients need without extra lookups.
type BroadcastOrder struct {
	OrderResponse
	ShopLocation           string `json:"shopLocation,omitempty"`
	BuyerLocation          string `json:"buyerLocation,omitempty"`
	BuyerPhone             string `json:"buyerPhone,omitempty"`
	EstimatedDeliveryPrice int64  `json:"estimatedDeliveryPrice"`
}
