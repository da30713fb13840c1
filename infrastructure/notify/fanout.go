package notify

import (
	"context"

	"github.com/Gift5848/gethub222-sub001/pkg/logger"

	"go.uber.org/zap"
)

// Fanout distributes a notification to every interested room, records it in
// the activity log and optionally enqueues a durable notice. All failures
// are logged and swallowed.
type Fanout struct {
	pusher   Pusher
	activity ActivityRecorder
	noticer  Noticer // nil disables durable notices
}

func NewFanout(pusher Pusher, activity ActivityRecorder, noticer Noticer) *Fanout {
	return &Fanout{
		pusher:   pusher,
		activity: activity,
		noticer:  noticer,
	}
}

// OrderNotification pushes a typed order notification to each user's room
// and to the admin room, and appends one activity row per recipient.
func (f *Fanout) OrderNotification(ctx context.Context, notifType, orderID, message string, userIDs []string) {
	payload := Payload{Type: notifType, OrderID: orderID, Message: message}

	for _, userID := range userIDs {
		if userID == "" {
			continue
		}
		f.push(ctx, RoomUser(userID), EventOrderNotification, payload)
		f.record(ctx, notifType, orderID, userID, message)
	}
	f.push(ctx, RoomAdmin, EventOrderNotification, payload)
}

// OrdersUpdate broadcasts the full order list view to each user's room and
// always to the admin room. Duplicate and empty recipients are skipped.
func (f *Fanout) OrdersUpdate(ctx context.Context, userIDs []string, view interface{}) {
	seen := make(map[string]bool, len(userIDs))
	for _, userID := range userIDs {
		if userID == "" || seen[userID] {
			continue
		}
		seen[userID] = true
		f.push(ctx, RoomUser(userID), EventOrdersUpdate, view)
	}
	f.push(ctx, RoomAdmin, EventOrdersUpdate, view)
}

// WalletNotification pushes a wallet event to the shop owner's room.
func (f *Fanout) WalletNotification(ctx context.Context, userID, message string) {
	if userID == "" {
		return
	}
	f.push(ctx, RoomUser(userID), EventWalletNotification, map[string]string{"message": message})
	f.record(ctx, "wallet", "", userID, message)
}

// Notice enqueues a durable out-of-band notice. Best-effort like the rest.
func (f *Fanout) Notice(ctx context.Context, userID, subject, body string) {
	if f.noticer == nil || userID == "" {
		return
	}
	if err := f.noticer.Notice(ctx, userID, subject, body); err != nil {
		logger.Warn("Failed to enqueue notice",
			zap.String("user_id", userID),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}

func (f *Fanout) push(ctx context.Context, room, event string, payload interface{}) {
	if f.pusher == nil {
		return
	}
	if err := f.pusher.Push(ctx, room, event, payload); err != nil {
		logger.Warn("Failed to push notification",
			zap.String("room", room),
			zap.String("event", event),
			zap.Error(err),
		)
	}
}

func (f *Fanout) record(ctx context.Context, entryType, orderID, userID, message string) {
	if f.activity == nil {
		return
	}
	if err := f.activity.Record(ctx, entryType, orderID, userID, message); err != nil {
		logger.Warn("Failed to record notification activity",
			zap.String("type", entryType),
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}
}
