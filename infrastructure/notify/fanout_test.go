package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePusher struct {
	pushes []string // room + "/" + event
	fail   bool
}

func (p *fakePusher) Push(_ context.Context, room, event string, _ interface{}) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.pushes = append(p.pushes, room+"/"+event)
	return nil
}

type fakeActivity struct {
	rows []string
	fail bool
}

func (a *fakeActivity) Record(_ context.Context, entryType, orderID, userID, _ string) error {
	if a.fail {
		return errors.New("db down")
	}
	a.rows = append(a.rows, entryType+"/"+orderID+"/"+userID)
	return nil
}

type fakeNoticer struct {
	notices []string
	fail    bool
}

func (n *fakeNoticer) Notice(_ context.Context, userID, subject, _ string) error {
	if n.fail {
		return errors.New("queue down")
	}
	n.notices = append(n.notices, userID+"/"+subject)
	return nil
}

func TestOrderNotificationFansOutToUsersAndAdmin(t *testing.T) {
	pusher := &fakePusher{}
	activity := &fakeActivity{}
	f := NewFanout(pusher, activity, nil)

	f.OrderNotification(context.Background(), "status", "o-1", "order approved", []string{"buyer-1", "seller-1"})

	assert.Equal(t, []string{
		"push:buyer-1/orderNotification",
		"push:seller-1/orderNotification",
		"push:admin/orderNotification",
	}, pusher.pushes)
	assert.Equal(t, []string{
		"status/o-1/buyer-1",
		"status/o-1/seller-1",
	}, activity.rows)
}

func TestOrderNotificationSkipsEmptyRecipients(t *testing.T) {
	pusher := &fakePusher{}
	f := NewFanout(pusher, &fakeActivity{}, nil)

	f.OrderNotification(context.Background(), "status", "o-1", "msg", []string{"", "buyer-1"})

	assert.Equal(t, []string{
		"push:buyer-1/orderNotification",
		"push:admin/orderNotification",
	}, pusher.pushes)
}

// The fan-out must swallow every delivery failure: a dead broker cannot be
// allowed to surface into the business operation that triggered the push.
func TestFanoutNeverPropagatesFailures(t *testing.T) {
	f := NewFanout(&fakePusher{fail: true}, &fakeActivity{fail: true}, &fakeNoticer{fail: true})

	assert.NotPanics(t, func() {
		f.OrderNotification(context.Background(), "status", "o-1", "msg", []string{"buyer-1"})
		f.OrdersUpdate(context.Background(), []string{"push:admin"}, map[string]string{})
		f.WalletNotification(context.Background(), "owner-1", "fee collected")
		f.Notice(context.Background(), "owner-1", "subject", "body")
	})
}

func TestFanoutTolerantOfNilDependencies(t *testing.T) {
	f := NewFanout(nil, nil, nil)

	assert.NotPanics(t, func() {
		f.OrderNotification(context.Background(), "status", "o-1", "msg", []string{"buyer-1"})
		f.Notice(context.Background(), "owner-1", "s", "b")
	})
}

func TestOrdersUpdateDeduplicatesRecipients(t *testing.T) {
	pusher := &fakePusher{}
	f := NewFanout(pusher, nil, nil)

	// Buyer and seller can be the same user when a seller buys from their
	// own shop; the broadcast must not double-send.
	f.OrdersUpdate(context.Background(), []string{"u-1", "u-1", "", "u-2"}, nil)

	assert.Equal(t, []string{
		"push:u-1/orders_update",
		"push:u-2/orders_update",
		"push:admin/orders_update",
	}, pusher.pushes)
}

func TestNoticeDelegates(t *testing.T) {
	noticer := &fakeNoticer{}
	f := NewFanout(nil, nil, noticer)

	f.Notice(context.Background(), "owner-1", "Wallet credited", "500 birr deposited")

	assert.Equal(t, []string{"owner-1/Wallet credited"}, noticer.notices)
}
