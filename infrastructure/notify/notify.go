/*
Package notify implements the post-commit notification fan-out.

Delivery is strictly best-effort: every emission happens after the owning
database transaction committed, and a failed push is logged and dropped,
never propagated to the caller. Business state is the source of truth;
notifications are a projection of it.
*/
package notify

import "context"

// Push event names consumed by the dashboards.
const (
	EventOrderNotification  = "orderNotification"
	EventOrdersUpdate       = "orders_update"
	EventWalletNotification = "walletNotification"
	EventNewMessage         = "newMessage"
	EventMessagesRead       = "messagesRead"
	EventMessageDelivered   = "messageDelivered"
	EventTyping             = "typing"
)

// RoomAdmin is the shared room every platform admin dashboard joins.
const RoomAdmin = "push:admin"

// RoomUser is the per-user push room.
func RoomUser(userID string) string {
	return "push:" + userID
}

// Payload is the typed order notification body.
type Payload struct {
	Type    string `json:"type"`
	OrderID string `json:"orderId,omitempty"`
	Message string `json:"message"`
}

// Pusher delivers a realtime event to a room. Implementations must be safe
// for concurrent use.
type Pusher interface {
	Push(ctx context.Context, room, event string, payload interface{}) error
}

// Noticer durably enqueues a notice for out-of-band delivery (email, sms).
type Noticer interface {
	Notice(ctx context.Context, userID, subject, body string) error
}

// ActivityRecorder appends one row to the bounded activity log.
type ActivityRecorder interface {
	Record(ctx context.Context, entryType, orderID, userID, message string) error
}
