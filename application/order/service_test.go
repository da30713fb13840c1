package order

import (
	"context"
	"testing"
	"time"

	"github.com/Gift5848/gethub222-sub001/domain/order"
	"github.com/Gift5848/gethub222-sub001/domain/product"
	"github.com/Gift5848/gethub222-sub001/domain/shared"
	"github.com/Gift5848/gethub222-sub001/domain/shop"
	"github.com/Gift5848/gethub222-sub001/domain/user"
	"github.com/Gift5848/gethub222-sub001/domain/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"
)

// --- in-memory collaborators ---

type memUnitOfWork struct{}

func (u *memUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
func (u *memUnitOfWork) RegisterNew(shared.AggregateRoot)     {}
func (u *memUnitOfWork) RegisterDirty(shared.AggregateRoot)   {}
func (u *memUnitOfWork) RegisterRemoved(shared.AggregateRoot) {}

type memUoWFactory struct{}

func (f *memUoWFactory) New() shared.UnitOfWork { return &memUnitOfWork{} }

type memOrderRepo struct {
	orders  map[string]*order.Order
	removed []string
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*order.Order)}
}

func (r *memOrderRepo) NextIdentity() string { return uuid.NewString() }

func (r *memOrderRepo) Save(_ context.Context, o *order.Order) error {
	r.orders[o.ID()] = o
	o.IncrementVersionForSave()
	o.ClearDirtyTracking()
	return nil
}

func (r *memOrderRepo) FindByID(_ context.Context, id string) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, order.NewOrderNotFoundError(id)
	}
	return o, nil
}

func (r *memOrderRepo) FindByBuyerID(_ context.Context, buyerID string) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.orders {
		if o.BuyerID() == buyerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) FindBySellerID(_ context.Context, sellerID string) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.orders {
		if o.SellerID() == sellerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) FindByShopID(_ context.Context, shopID string) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.orders {
		if o.ShopID() == shopID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) FindByDeliveryPersonID(_ context.Context, id string) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.orders {
		if o.DeliveryPersonID() == id {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) FindAll(_ context.Context) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r *memOrderRepo) FindMatching(ctx context.Context, spec shared.Specification) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.orders {
		if spec == nil || spec.IsSatisfiedBy(ctx, o) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) Remove(_ context.Context, o *order.Order) error {
	if _, ok := r.orders[o.ID()]; !ok {
		return order.NewOrderNotFoundError(o.ID())
	}
	delete(r.orders, o.ID())
	r.removed = append(r.removed, o.ID())
	return nil
}

type memWalletRepo struct {
	wallets map[string]*wallet.Wallet // keyed by shop ID
}

func newMemWalletRepo() *memWalletRepo {
	return &memWalletRepo{wallets: make(map[string]*wallet.Wallet)}
}

func (r *memWalletRepo) NextIdentity() string { return uuid.NewString() }

func (r *memWalletRepo) Save(_ context.Context, w *wallet.Wallet) error {
	r.wallets[w.ShopID()] = w
	w.IncrementVersionForSave()
	w.ClearDirtyTracking()
	return nil
}

func (r *memWalletRepo) FindByShopID(_ context.Context, shopID string) (*wallet.Wallet, error) {
	w, ok := r.wallets[shopID]
	if !ok {
		return nil, wallet.NewWalletNotFoundError(shopID)
	}
	return w, nil
}

func (r *memWalletRepo) FindEntries(context.Context, string, int) ([]wallet.Entry, error) {
	return nil, nil
}

// fund creates a wallet for the shop with the given frozen amount.
func (r *memWalletRepo) fund(t *testing.T, shopID string, frozen int64) *wallet.Wallet {
	t.Helper()
	w, err := wallet.NewWallet(shopID)
	require.NoError(t, err)
	if frozen > 0 {
		require.NoError(t, w.Deposit(*shared.NewBirr(frozen), "seed"))
		require.NoError(t, w.Freeze(*shared.NewBirr(frozen), "seed"))
	}
	w.ClearDirtyTracking()
	r.wallets[shopID] = w
	return w
}

type memShopRepo struct {
	shops map[string]*shop.Shop
}

func (r *memShopRepo) NextIdentity() string { return uuid.NewString() }
func (r *memShopRepo) Save(_ context.Context, s *shop.Shop) error {
	r.shops[s.ID()] = s
	return nil
}
func (r *memShopRepo) FindByID(_ context.Context, id string) (*shop.Shop, error) {
	s, ok := r.shops[id]
	if !ok {
		return nil, shop.NewShopNotFoundError(id)
	}
	return s, nil
}
func (r *memShopRepo) FindByOwnerID(context.Context, string) ([]*shop.Shop, error) {
	return nil, nil
}
func (r *memShopRepo) FindByStatus(context.Context, shop.ApprovalStatus) ([]*shop.Shop, error) {
	return nil, nil
}

type memCatalog struct {
	products map[string]product.Product
}

func (c *memCatalog) FindByID(_ context.Context, id string) (product.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return product.Product{}, shared.NewNotFoundError("product " + id)
	}
	return p, nil
}

type memDirectory struct {
	actors  map[string]user.Actor
	courier *user.Actor
}

func (d *memDirectory) FindByID(_ context.Context, id string) (user.Actor, error) {
	a, ok := d.actors[id]
	if !ok {
		return user.Actor{}, shared.NewNotFoundError("user " + id)
	}
	return a, nil
}

func (d *memDirectory) FindShopOwner(_ context.Context, shopID string) (user.Actor, error) {
	for _, a := range d.actors {
		if a.Role == user.RoleSubadmin && a.ShopID == shopID {
			return a, nil
		}
	}
	return user.Actor{}, shared.NewNotFoundError("shop owner")
}

func (d *memDirectory) FindAvailableDelivery(context.Context) (user.Actor, error) {
	if d.courier == nil {
		return user.Actor{}, shared.NewNotFoundError("delivery person")
	}
	return *d.courier, nil
}

type recordedPush struct {
	notifType string
	orderID   string
	userIDs   []string
}

type recNotifier struct {
	pushes  []recordedPush
	views   []interface{}
	notices []string
}

func (n *recNotifier) OrderNotification(_ context.Context, notifType, orderID, _ string, userIDs []string) {
	n.pushes = append(n.pushes, recordedPush{notifType: notifType, orderID: orderID, userIDs: userIDs})
}

func (n *recNotifier) OrdersUpdate(_ context.Context, _ []string, view interface{}) {
	n.views = append(n.views, view)
}

func (n *recNotifier) Notice(_ context.Context, userID, subject, _ string) {
	n.notices = append(n.notices, userID+"/"+subject)
}

// --- fixture ---

type fixture struct {
	svc       *ApplicationService
	orders    *memOrderRepo
	wallets   *memWalletRepo
	shops     *memShopRepo
	directory *memDirectory
	notifier  *recNotifier
}

func newFixture() *fixture {
	orders := newMemOrderRepo()
	wallets := newMemWalletRepo()
	shops := &memShopRepo{shops: make(map[string]*shop.Shop)}
	catalog := &memCatalog{products: map[string]product.Product{
		"p-1": {ID: "p-1", Name: "Brake pads", SellerID: "seller-1", ShopID: "shop-1", Price: *shared.NewBirr(100), Stock: 10},
		"p-2": {ID: "p-2", Name: "Oil filter", SellerID: "seller-2", ShopID: "shop-2", Price: *shared.NewBirr(80), Stock: 5},
	}}
	courier := user.Actor{ID: "rider-1", Role: user.RoleDelivery, Active: true, Approved: true}
	directory := &memDirectory{
		actors: map[string]user.Actor{
			"buyer-1":  {ID: "buyer-1", Role: user.RoleBuyer, Active: true, Approved: true},
			"buyer-2":  {ID: "buyer-2", Role: user.RoleBuyer, Active: true, Approved: true},
			"banned-1": {ID: "banned-1", Role: user.RoleBuyer, Active: false},
			"admin-1":  {ID: "admin-1", Role: user.RoleAdmin, Active: true, Approved: true},
			"seller-1": {ID: "seller-1", Role: user.RoleSeller, ShopID: "shop-1", Active: true, Approved: true},
			"rider-1":  courier,
		},
		courier: &courier,
	}
	notifier := &recNotifier{}
	svc := NewApplicationService(orders, wallets, shops, catalog, directory, &memUoWFactory{}, notifier)
	return &fixture{svc: svc, orders: orders, wallets: wallets, shops: shops, directory: directory, notifier: notifier}
}

func (f *fixture) place(t *testing.T, productIDs ...string) *OrderResponse {
	t.Helper()
	items := make([]CartItemRequest, len(productIDs))
	for i, id := range productIDs {
		items[i] = CartItemRequest{ProductID: id, Quantity: 1}
	}
	resp, err := f.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		BuyerID:       "buyer-1",
		Items:         items,
		PaymentMethod: "cbe",
		Shipping:      ShippingRequest{City: "Addis Ababa", Phone: "0911000000"},
	})
	require.NoError(t, err)
	return resp
}

// --- placement ---

func TestPlaceOrderSnapshotsCatalogPrices(t *testing.T) {
	f := newFixture()
	f.wallets.fund(t, "shop-1", 100)

	resp, err := f.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		BuyerID:       "buyer-1",
		Items:         []CartItemRequest{{ProductID: "p-1", Quantity: 2}},
		PaymentMethod: "cbe",
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "seller-1", resp.SellerID)
	assert.Equal(t, "shop-1", resp.ShopID)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(100), resp.Items[0].UnitPrice.Amount)
	assert.Equal(t, int64(200), resp.Total.Amount)

	stored, err := f.orders.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, stored.Status())
}

func TestPlaceOrderRejectsInactiveBuyer(t *testing.T) {
	f := newFixture()

	_, err := f.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		BuyerID:       "banned-1",
		Items:         []CartItemRequest{{ProductID: "p-1", Quantity: 1}},
		PaymentMethod: "cbe",
	})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestPlaceOrderRejectsInsufficientStock(t *testing.T) {
	f := newFixture()

	_, err := f.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		BuyerID:       "buyer-1",
		Items:         []CartItemRequest{{ProductID: "p-2", Quantity: 6}},
		PaymentMethod: "cbe",
	})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

// --- fee collection ---

func TestPlaceOrderDebitsFeePerShop(t *testing.T) {
	f := newFixture()
	f.wallets.fund(t, "shop-1", 50)
	f.wallets.fund(t, "shop-2", 50)

	// Unit prices 100 and 80: fee is ceil(2%) of each, charged to the
	// product's owning shop.
	f.place(t, "p-1", "p-2")

	w1, _ := f.wallets.FindByShopID(context.Background(), "shop-1")
	w2, _ := f.wallets.FindByShopID(context.Background(), "shop-2")
	assert.Equal(t, int64(48), w1.Frozen().Amount())
	assert.Equal(t, int64(48), w2.Frozen().Amount())
}

func TestPlaceOrderFeeUsesUnitPriceNotSubtotal(t *testing.T) {
	f := newFixture()
	f.wallets.fund(t, "shop-1", 50)

	resp, err := f.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		BuyerID:       "buyer-1",
		Items:         []CartItemRequest{{ProductID: "p-1", Quantity: 2}},
		PaymentMethod: "cbe",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(200), resp.Total.Amount)

	// Fee is 2% of the 100 birr unit price, not of the 200 birr subtotal.
	w, _ := f.wallets.FindByShopID(context.Background(), "shop-1")
	assert.Equal(t, int64(48), w.Frozen().Amount())
}

func TestPlaceOrderSucceedsWhenFeeDebitFails(t *testing.T) {
	f := newFixture()
	f.wallets.fund(t, "shop-1", 0) // nothing frozen, debit must fail

	resp := f.place(t, "p-1")

	// Placement committed despite the failed fee debit.
	_, err := f.orders.FindByID(context.Background(), resp.ID)
	assert.NoError(t, err)

	w, _ := f.wallets.FindByShopID(context.Background(), "shop-1")
	assert.Equal(t, int64(0), w.Frozen().Amount())
	assert.Equal(t, int64(0), w.Balance().Amount())
}

func TestPlaceOrderSucceedsWithoutWallet(t *testing.T) {
	f := newFixture()

	resp := f.place(t, "p-1")

	_, err := f.orders.FindByID(context.Background(), resp.ID)
	assert.NoError(t, err)
}

// --- cancellation ---

func TestCancelRemovesPendingOrder(t *testing.T) {
	f := newFixture()
	resp := f.place(t, "p-1")

	err := f.svc.Cancel(context.Background(), CancelRequest{
		OrderID: resp.ID, ActorID: "buyer-1", Reason: "changed my mind",
	})
	require.NoError(t, err)

	_, err = f.orders.FindByID(context.Background(), resp.ID)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
	assert.Contains(t, f.orders.removed, resp.ID)
}

func TestCancelRejectedAfterPaymentApproval(t *testing.T) {
	f := newFixture()
	resp := f.place(t, "p-1")

	_, err := f.svc.ApprovePayment(context.Background(), TransitionRequest{OrderID: resp.ID, ActorID: "admin-1"})
	require.NoError(t, err)

	err = f.svc.Cancel(context.Background(), CancelRequest{OrderID: resp.ID, ActorID: "buyer-1"})
	assert.ErrorIs(t, err, order.ErrStateConflict)

	_, err = f.orders.FindByID(context.Background(), resp.ID)
	assert.NoError(t, err)
}

func TestCancelForbiddenForOtherBuyer(t *testing.T) {
	f := newFixture()
	resp := f.place(t, "p-1")

	err := f.svc.Cancel(context.Background(), CancelRequest{OrderID: resp.ID, ActorID: "buyer-2"})
	assert.ErrorIs(t, err, order.ErrForbidden)
}

// --- payment approval ---

func TestApprovePaymentAssignsAvailableCourier(t *testing.T) {
	f := newFixture()
	resp := f.place(t, "p-1")

	approved, err := f.svc.ApprovePayment(context.Background(), TransitionRequest{OrderID: resp.ID, ActorID: "admin-1"})
	require.NoError(t, err)

	assert.Equal(t, "processing", approved.Status)
	assert.Equal(t, "paid", approved.PaymentStatus)
	assert.Equal(t, "approved", approved.PaymentApprovalStatus)
	assert.Equal(t, "rider-1", approved.DeliveryPersonID)
}

func TestApprovePaymentProceedsWithoutCourier(t *testing.T) {
	f := newFixture()
	f.directory.courier = nil
	resp := f.place(t, "p-1")

	approved, err := f.svc.ApprovePayment(context.Background(), TransitionRequest{OrderID: resp.ID, ActorID: "admin-1"})
	require.NoError(t, err)

	assert.Equal(t, "processing", approved.Status)
	assert.Empty(t, approved.DeliveryPersonID)
}

func TestApprovePaymentForbiddenForBuyer(t *testing.T) {
	f := newFixture()
	resp := f.place(t, "p-1")

	_, err := f.svc.ApprovePayment(context.Background(), TransitionRequest{OrderID: resp.ID, ActorID: "buyer-1"})
	assert.ErrorIs(t, err, order.ErrForbidden)
}

func TestRejectPaymentKeepsOrderPending(t *testing.T) {
	f := newFixture()
	resp := f.place(t, "p-1")

	rejected, err := f.svc.RejectPayment(context.Background(), TransitionRequest{OrderID: resp.ID, ActorID: "admin-1"})
	require.NoError(t, err)

	assert.Equal(t, "pending", rejected.Status)
	assert.Equal(t, "rejected", rejected.PaymentApprovalStatus)
	assert.Equal(t, "unpaid", rejected.PaymentStatus)
}

// --- lifecycle ---

func TestFullDeliveryLifecycle(t *testing.T) {
	f := newFixture()
	resp := f.place(t, "p-1")
	ctx := context.Background()

	_, err := f.svc.ApprovePayment(ctx, TransitionRequest{OrderID: resp.ID, ActorID: "admin-1"})
	require.NoError(t, err)

	_, err = f.svc.Handover(ctx, TransitionRequest{OrderID: resp.ID, ActorID: "seller-1"})
	require.NoError(t, err)

	_, err = f.svc.AcceptDelivery(ctx, TransitionRequest{OrderID: resp.ID, ActorID: "rider-1"})
	require.NoError(t, err)

	delivered, err := f.svc.MarkDelivered(ctx, MarkDeliveredRequest{OrderID: resp.ID, ActorID: "rider-1", ProofRef: "uploads/pod-1.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "delivered", delivered.Status)
	assert.Equal(t, "uploads/pod-1.jpg", delivered.ProofOfDelivery)

	received, err := f.svc.BuyerReceived(ctx, TransitionRequest{OrderID: resp.ID, ActorID: "buyer-1"})
	require.NoError(t, err)
	assert.Equal(t, "buyerreceived", received.Status)
}

func TestRejectDeliveryClearsAssignment(t *testing.T) {
	f := newFixture()
	resp := f.place(t, "p-1")
	ctx := context.Background()

	_, err := f.svc.ApprovePayment(ctx, TransitionRequest{OrderID: resp.ID, ActorID: "admin-1"})
	require.NoError(t, err)

	rejected, err := f.svc.RejectDelivery(ctx, TransitionRequest{OrderID: resp.ID, ActorID: "rider-1"})
	require.NoError(t, err)
	assert.Equal(t, "delivery_rejected", rejected.Status)
	assert.Empty(t, rejected.DeliveryPersonID)
}

func TestTransitionGuardFailureSkipsNotification(t *testing.T) {
	f := newFixture()
	resp := f.place(t, "p-1")
	before := len(f.notifier.pushes)

	// Handover from pending is invalid.
	_, err := f.svc.Handover(context.Background(), TransitionRequest{OrderID: resp.ID, ActorID: "seller-1"})
	assert.ErrorIs(t, err, order.ErrStateConflict)
	assert.Len(t, f.notifier.pushes, before)
}

func TestOverrideByAdmin(t *testing.T) {
	f := newFixture()
	resp := f.place(t, "p-1")

	updated, err := f.svc.Override(context.Background(), OverrideRequest{
		OrderID: resp.ID, ActorID: "admin-1", Status: "handedover", DeliveryPersonID: "rider-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "handedover", updated.Status)
	assert.Equal(t, "rider-1", updated.DeliveryPersonID)
}

// --- gateway webhook ---

func TestPaymentWebhookMarksPaid(t *testing.T) {
	f := newFixture()
	resp, err := f.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		BuyerID:       "buyer-1",
		Items:         []CartItemRequest{{ProductID: "p-1", Quantity: 1}},
		PaymentMethod: "chapa",
	})
	require.NoError(t, err)

	err = f.svc.HandlePaymentWebhook(context.Background(), PaymentWebhookRequest{OrderID: resp.ID, Status: "paid"})
	require.NoError(t, err)

	stored, err := f.orders.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, order.PaymentPaid, stored.PaymentStatus())

	last := f.notifier.pushes[len(f.notifier.pushes)-1]
	assert.Equal(t, "payment_status", last.notifType)
}

// --- notifications ---

func TestPlacementNotifiesBuyerAndSeller(t *testing.T) {
	f := newFixture()
	resp := f.place(t, "p-1")

	require.NotEmpty(t, f.notifier.pushes)
	first := f.notifier.pushes[0]
	assert.Equal(t, "order_placed", first.notifType)
	assert.Equal(t, resp.ID, first.orderID)
	assert.Equal(t, []string{"buyer-1", "seller-1"}, first.userIDs)
	require.NotEmpty(t, f.notifier.views)
}

func TestBroadcastIncludesDerivedFields(t *testing.T) {
	f := newFixture()
	sh, err := shop.NewShop("Bole Auto Parts", "subadmin-1", "9.005,38.763", "0911222333")
	require.NoError(t, err)
	f.shops.shops["shop-1"] = sh

	catalogShopID := sh.ID()
	f.svc.catalog.(*memCatalog).products["p-1"] = product.Product{
		ID: "p-1", Name: "Brake pads", SellerID: "seller-1", ShopID: catalogShopID,
		Price: *shared.NewBirr(100), Stock: 10,
	}
	f.shops.shops[catalogShopID] = sh

	f.place(t, "p-1")

	require.NotEmpty(t, f.notifier.views)
	view, ok := f.notifier.views[0].(*BroadcastOrder)
	require.True(t, ok)
	assert.Equal(t, "9.005,38.763", view.ShopLocation)
	// 5% of the 100 birr total, rounded up.
	assert.Equal(t, int64(5), view.EstimatedDeliveryPrice)
}

// --- admin listing ---

func TestListOrdersFiltersByStatusAndShop(t *testing.T) {
	f := newFixture()
	first := f.place(t, "p-1")
	second := f.place(t, "p-2")

	_, err := f.svc.ApprovePayment(context.Background(), TransitionRequest{OrderID: first.ID, ActorID: "admin-1"})
	require.NoError(t, err)

	all, err := f.svc.GetAllOrders(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	processing, err := f.svc.GetAllOrders(context.Background(), ListFilter{Status: "processing"})
	require.NoError(t, err)
	require.Len(t, processing, 1)
	assert.Equal(t, first.ID, processing[0].ID)

	shopTwo, err := f.svc.GetAllOrders(context.Background(), ListFilter{ShopID: "shop-2"})
	require.NoError(t, err)
	require.Len(t, shopTwo, 1)
	assert.Equal(t, second.ID, shopTwo[0].ID)

	none, err := f.svc.GetAllOrders(context.Background(), ListFilter{Status: "processing", ShopID: "shop-2"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListOrdersFiltersByPlacementWindow(t *testing.T) {
	f := newFixture()
	f.place(t, "p-1")

	future, err := f.svc.GetAllOrders(context.Background(), ListFilter{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, future)

	window, err := f.svc.GetAllOrders(context.Background(), ListFilter{
		From: time.Now().Add(-time.Hour),
		To:   time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Len(t, window, 1)
}
