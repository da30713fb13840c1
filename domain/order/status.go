package order

// Status of an order. Values are wire-compatible with the dashboards that
// consume order broadcasts, hence the lowercase spelling.
type Status string

const (
	StatusPending          Status = "pending"
	StatusProcessing       Status = "processing"
	StatusHandedOver       Status = "handedover"
	StatusDeliveryAccepted Status = "delivery_accepted"
	StatusDeliveryRejected Status = "delivery_rejected"
	StatusConfirmed        Status = "confirmed"
	StatusDelivered        Status = "delivered"
	StatusBuyerReceived    Status = "buyerreceived"
)

// Transition names every lifecycle event the state machine understands.
type Transition string

const (
	TransitionCancel         Transition = "cancel"
	TransitionApprovePayment Transition = "approve_payment"
	TransitionRejectPayment  Transition = "reject_payment"
	TransitionHandover       Transition = "handover"
	TransitionAcceptDelivery Transition = "accept_delivery"
	TransitionRejectDelivery Transition = "reject_delivery"
	TransitionMarkDelivered  Transition = "mark_delivered"
	TransitionConfirm        Transition = "confirm"
	TransitionBuyerReceived  Transition = "buyer_received"
	TransitionAdminOverride  Transition = "admin_override"
)

// validNext is the transition table. A missing entry means the transition
// is a state conflict from that status.
//
// Delivery accept/reject are deliberately valid from both processing and
// handedover: the assigned delivery person may act as soon as payment
// approval assigns them, and a seller handover does not revoke that.
// mark-delivered and confirm accept delivery_accepted as a source for the
// same reason. reject_payment keeps the order pending; only the payment
// sub-state changes.
var validNext = map[Status]map[Transition]Status{
	StatusPending: {
		TransitionApprovePayment: StatusProcessing,
		TransitionRejectPayment:  StatusPending,
	},
	StatusProcessing: {
		TransitionHandover:       StatusHandedOver,
		TransitionAcceptDelivery: StatusDeliveryAccepted,
		TransitionRejectDelivery: StatusDeliveryRejected,
		TransitionBuyerReceived:  StatusBuyerReceived,
	},
	StatusHandedOver: {
		TransitionAcceptDelivery: StatusDeliveryAccepted,
		TransitionRejectDelivery: StatusDeliveryRejected,
		TransitionMarkDelivered:  StatusDelivered,
		TransitionConfirm:        StatusConfirmed,
		TransitionBuyerReceived:  StatusBuyerReceived,
	},
	StatusDeliveryAccepted: {
		TransitionMarkDelivered: StatusDelivered,
		TransitionConfirm:       StatusConfirmed,
		TransitionBuyerReceived: StatusBuyerReceived,
	},
	StatusDelivered: {
		TransitionConfirm:       StatusConfirmed,
		TransitionBuyerReceived: StatusBuyerReceived,
	},
	StatusConfirmed: {
		TransitionBuyerReceived: StatusBuyerReceived,
	},
	StatusDeliveryRejected: {},
	StatusBuyerReceived:    {},
}

// CanTransition reports whether the transition is valid from the status.
func CanTransition(from Status, t Transition) (Status, bool) {
	to, ok := validNext[from][t]
	return to, ok
}

// PaymentMethod of an order. cbe and telebirr settlements are reconciled
// manually by a platform admin; chapa settles through the gateway webhook.
type PaymentMethod string

const (
	PaymentCBE      PaymentMethod = "cbe"
	PaymentTelebirr PaymentMethod = "telebirr"
	PaymentChapa    PaymentMethod = "chapa"
)

// RequiresManualApproval reports whether order progression beyond pending
// is gated on admin payment approval.
func (m PaymentMethod) RequiresManualApproval() bool {
	return m == PaymentCBE || m == PaymentTelebirr
}

// PaymentStatus tracks settlement, orthogonal to the order status.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
	PaymentFailed PaymentStatus = "failed"
)

// ApprovalStatus tracks manual payment reconciliation.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)
