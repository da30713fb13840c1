package shop

import (
	"context"
	"testing"

	"github.com/Gift5848/gethub222-sub001/domain/shared"
	"github.com/Gift5848/gethub222-sub001/domain/shop"
	"github.com/Gift5848/gethub222-sub001/domain/user"
	"github.com/Gift5848/gethub222-sub001/domain/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"
)

type memUnitOfWork struct{}

func (u *memUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
func (u *memUnitOfWork) RegisterNew(shared.AggregateRoot)     {}
func (u *memUnitOfWork) RegisterDirty(shared.AggregateRoot)   {}
func (u *memUnitOfWork) RegisterRemoved(shared.AggregateRoot) {}

type memUoWFactory struct{}

func (f *memUoWFactory) New() shared.UnitOfWork { return &memUnitOfWork{} }

type memShopRepo struct {
	shops map[string]*shop.Shop
}

func (r *memShopRepo) NextIdentity() string { return uuid.NewString() }
func (r *memShopRepo) Save(_ context.Context, s *shop.Shop) error {
	r.shops[s.ID()] = s
	s.IncrementVersionForSave()
	s.ClearDirtyTracking()
	return nil
}
func (r *memShopRepo) FindByID(_ context.Context, id string) (*shop.Shop, error) {
	s, ok := r.shops[id]
	if !ok {
		return nil, shop.NewShopNotFoundError(id)
	}
	return s, nil
}
func (r *memShopRepo) FindByOwnerID(_ context.Context, ownerID string) ([]*shop.Shop, error) {
	var out []*shop.Shop
	for _, s := range r.shops {
		if s.OwnerID() == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}
func (r *memShopRepo) FindByStatus(_ context.Context, status shop.ApprovalStatus) ([]*shop.Shop, error) {
	var out []*shop.Shop
	for _, s := range r.shops {
		if s.ApprovalStatus() == status {
			out = append(out, s)
		}
	}
	return out, nil
}

type memWalletRepo struct {
	wallets map[string]*wallet.Wallet
}

func (r *memWalletRepo) NextIdentity() string { return uuid.NewString() }
func (r *memWalletRepo) Save(_ context.Context, w *wallet.Wallet) error {
	if _, exists := r.wallets[w.ShopID()]; exists && w.IsNew() {
		return wallet.ErrWalletExists
	}
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

type memDirectory struct {
	actors map[string]user.Actor
}

func (d *memDirectory) FindByID(_ context.Context, id string) (user.Actor, error) {
	a, ok := d.actors[id]
	if !ok {
		return user.Actor{}, shared.NewNotFoundError("user " + id)
	}
	return a, nil
}
func (d *memDirectory) FindShopOwner(context.Context, string) (user.Actor, error) {
	return user.Actor{}, shared.NewNotFoundError("shop owner")
}
func (d *memDirectory) FindAvailableDelivery(context.Context) (user.Actor, error) {
	return user.Actor{}, shared.NewNotFoundError("delivery person")
}

type recNotifier struct {
	notices []string
}

func (n *recNotifier) Notice(_ context.Context, userID, subject, _ string) {
	n.notices = append(n.notices, userID+"/"+subject)
}

type fixture struct {
	svc      *ApplicationService
	shops    *memShopRepo
	wallets  *memWalletRepo
	notifier *recNotifier
}

func newFixture() *fixture {
	shops := &memShopRepo{shops: make(map[string]*shop.Shop)}
	wallets := &memWalletRepo{wallets: make(map[string]*wallet.Wallet)}
	directory := &memDirectory{actors: map[string]user.Actor{
		"admin-1":    {ID: "admin-1", Role: user.RoleAdmin, Active: true, Approved: true},
		"subadmin-1": {ID: "subadmin-1", Role: user.RoleSubadmin, Active: true, Approved: true},
		"buyer-1":    {ID: "buyer-1", Role: user.RoleBuyer, Active: true, Approved: true},
	}}
	notifier := &recNotifier{}
	svc := NewApplicationService(shops, wallets, directory, &memUoWFactory{}, notifier)
	return &fixture{svc: svc, shops: shops, wallets: wallets, notifier: notifier}
}

func (f *fixture) register(t *testing.T) *ShopResponse {
	t.Helper()
	resp, err := f.svc.Register(context.Background(), RegisterShopRequest{
		OwnerID:  "subadmin-1",
		Name:     "Bole Auto Parts",
		Location: "9.005,38.763",
		Phone:    "0911222333",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterStartsPending(t *testing.T) {
	f := newFixture()

	resp := f.register(t)

	assert.Equal(t, "pending", resp.ApprovalStatus)
	assert.Equal(t, "subadmin-1", resp.OwnerID)
}

func TestRegisterForbiddenForBuyer(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Register(context.Background(), RegisterShopRequest{
		OwnerID: "buyer-1", Name: "Side Hustle",
	})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestApproveProvisionsWallet(t *testing.T) {
	f := newFixture()
	resp := f.register(t)

	approved, err := f.svc.Approve(context.Background(), ReviewRequest{ShopID: resp.ID, ActorID: "admin-1"})
	require.NoError(t, err)

	assert.Equal(t, "approved", approved.ApprovalStatus)
	w, err := f.wallets.FindByShopID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), w.Balance().Amount())
	assert.Contains(t, f.notifier.notices, "subadmin-1/Shop approved")
}

func TestApproveIdempotentWalletProvisioning(t *testing.T) {
	f := newFixture()
	resp := f.register(t)

	// Wallet already exists (created out of band); approval must not fail
	// or replace it.
	w, err := wallet.NewWallet(resp.ID)
	require.NoError(t, err)
	require.NoError(t, w.Deposit(*shared.NewBirr(100), "seed"))
	w.ClearDirtyTracking()
	f.wallets.wallets[resp.ID] = w

	_, err = f.svc.Approve(context.Background(), ReviewRequest{ShopID: resp.ID, ActorID: "admin-1"})
	require.NoError(t, err)

	kept, _ := f.wallets.FindByShopID(context.Background(), resp.ID)
	assert.Equal(t, int64(100), kept.Balance().Amount())
}

func TestReviewIsOneShot(t *testing.T) {
	f := newFixture()
	resp := f.register(t)

	_, err := f.svc.Approve(context.Background(), ReviewRequest{ShopID: resp.ID, ActorID: "admin-1"})
	require.NoError(t, err)

	_, err = f.svc.Reject(context.Background(), ReviewRequest{ShopID: resp.ID, ActorID: "admin-1", Note: "too late"})
	assert.ErrorIs(t, err, shop.ErrReviewConflict)
}

func TestReviewForbiddenForNonAdmin(t *testing.T) {
	f := newFixture()
	resp := f.register(t)

	_, err := f.svc.Approve(context.Background(), ReviewRequest{ShopID: resp.ID, ActorID: "subadmin-1"})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestRejectCarriesNoteToOwner(t *testing.T) {
	f := newFixture()
	resp := f.register(t)

	rejected, err := f.svc.Reject(context.Background(), ReviewRequest{
		ShopID: resp.ID, ActorID: "admin-1", Note: "missing trade license",
	})
	require.NoError(t, err)

	assert.Equal(t, "rejected", rejected.ApprovalStatus)
	assert.Equal(t, "missing trade license", rejected.ReviewNote)
	assert.Contains(t, f.notifier.notices, "subadmin-1/Shop rejected")
}

func TestRequestInfoThenResubmit(t *testing.T) {
	f := newFixture()
	resp := f.register(t)
	ctx := context.Background()

	_, err := f.svc.RequestInfo(ctx, ReviewRequest{ShopID: resp.ID, ActorID: "admin-1", Note: "add a phone number"})
	require.NoError(t, err)

	resubmitted, err := f.svc.Resubmit(ctx, ResubmitRequest{
		ShopID: resp.ID, ActorID: "subadmin-1", Phone: "0911999888",
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", resubmitted.ApprovalStatus)
	assert.Equal(t, "0911999888", resubmitted.Phone)
	assert.Empty(t, resubmitted.ReviewNote)

	// Back in the queue, the request can be decided.
	approved, err := f.svc.Approve(ctx, ReviewRequest{ShopID: resp.ID, ActorID: "admin-1"})
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.ApprovalStatus)
}

func TestResubmitOwnerOnly(t *testing.T) {
	f := newFixture()
	resp := f.register(t)
	ctx := context.Background()

	_, err := f.svc.RequestInfo(ctx, ReviewRequest{ShopID: resp.ID, ActorID: "admin-1"})
	require.NoError(t, err)

	_, err = f.svc.Resubmit(ctx, ResubmitRequest{ShopID: resp.ID, ActorID: "buyer-1"})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestGetReviewQueue(t *testing.T) {
	f := newFixture()
	f.register(t)
	f.register(t)

	queue, err := f.svc.GetReviewQueue(context.Background(), "pending")
	require.NoError(t, err)
	assert.Len(t, queue, 2)
}
