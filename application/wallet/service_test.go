package wallet

import (
	"context"
	"testing"

	"github.com/Gift5848/gethub222-sub001/domain/shared"
	"github.com/Gift5848/gethub222-sub001/domain/user"
	"github.com/Gift5848/gethub222-sub001/domain/wallet"
	"github.com/Gift5848/gethub222-sub001/infrastructure/persistence/retry"

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

type memWalletRepo struct {
	wallets map[string]*wallet.Wallet
	entries map[string][]wallet.Entry
}

func newMemWalletRepo() *memWalletRepo {
	return &memWalletRepo{
		wallets: make(map[string]*wallet.Wallet),
		entries: make(map[string][]wallet.Entry),
	}
}

func (r *memWalletRepo) NextIdentity() string { return uuid.NewString() }

func (r *memWalletRepo) Save(_ context.Context, w *wallet.Wallet) error {
	if _, exists := r.wallets[w.ShopID()]; exists && w.IsNew() {
		return wallet.ErrWalletExists
	}
	r.entries[w.ID()] = append(r.entries[w.ID()], w.AddedEntries()...)
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

func (r *memWalletRepo) FindEntries(_ context.Context, walletID string, limit int) ([]wallet.Entry, error) {
	entries := r.entries[walletID]
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

type memDirectory struct {
	owner user.Actor
}

func (d *memDirectory) FindByID(_ context.Context, id string) (user.Actor, error) {
	return user.Actor{}, shared.NewNotFoundError("user " + id)
}
func (d *memDirectory) FindShopOwner(context.Context, string) (user.Actor, error) {
	return d.owner, nil
}
func (d *memDirectory) FindAvailableDelivery(context.Context) (user.Actor, error) {
	return user.Actor{}, shared.NewNotFoundError("delivery person")
}

type recNotifier struct {
	walletPushes []string // userID + "/" + message
	notices      []string
}

func (n *recNotifier) WalletNotification(_ context.Context, userID, message string) {
	n.walletPushes = append(n.walletPushes, userID+"/"+message)
}
func (n *recNotifier) Notice(_ context.Context, userID, subject, _ string) {
	n.notices = append(n.notices, userID+"/"+subject)
}

func newService() (*ApplicationService, *memWalletRepo, *recNotifier) {
	repo := newMemWalletRepo()
	notifier := &recNotifier{}
	directory := &memDirectory{owner: user.Actor{ID: "subadmin-1", Role: user.RoleSubadmin, ShopID: "shop-1"}}
	return NewApplicationService(repo, directory, &memUoWFactory{}, notifier), repo, notifier
}

func TestCreateWalletStartsAtZero(t *testing.T) {
	svc, _, _ := newService()

	resp, err := svc.CreateWallet(context.Background(), "shop-1")
	require.NoError(t, err)

	assert.Equal(t, "shop-1", resp.ShopID)
	assert.Equal(t, int64(0), resp.Balance.Amount)
	assert.Equal(t, int64(0), resp.Frozen.Amount)
}

func TestCreateWalletIsIdempotent(t *testing.T) {
	svc, repo, _ := newService()

	first, err := svc.CreateWallet(context.Background(), "shop-1")
	require.NoError(t, err)

	_, err = svc.Deposit(context.Background(), MutateRequest{ShopID: "shop-1", Amount: 500})
	require.NoError(t, err)

	second, err := svc.CreateWallet(context.Background(), "shop-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(500), second.Balance.Amount)
	assert.Len(t, repo.wallets, 1)
}

func TestDepositCreditsAndNotifiesOwner(t *testing.T) {
	svc, _, notifier := newService()
	_, err := svc.CreateWallet(context.Background(), "shop-1")
	require.NoError(t, err)

	resp, err := svc.Deposit(context.Background(), MutateRequest{ShopID: "shop-1", Amount: 500, Description: "bank transfer"})
	require.NoError(t, err)

	assert.Equal(t, int64(500), resp.Balance.Amount)
	require.Len(t, notifier.walletPushes, 1)
	assert.Contains(t, notifier.walletPushes[0], "subadmin-1/")
}

func TestFreezeAndUnfreezeNotifyOwner(t *testing.T) {
	svc, _, notifier := newService()
	ctx := context.Background()
	_, err := svc.CreateWallet(ctx, "shop-1")
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, MutateRequest{ShopID: "shop-1", Amount: 100})
	require.NoError(t, err)
	before := len(notifier.walletPushes)

	_, err = svc.Freeze(ctx, MutateRequest{ShopID: "shop-1", Amount: 10, Description: "listing hold"})
	require.NoError(t, err)
	require.Len(t, notifier.walletPushes, before+1)
	assert.Contains(t, notifier.walletPushes[before], "subadmin-1/")

	_, err = svc.Unfreeze(ctx, MutateRequest{ShopID: "shop-1", Amount: 10, Description: "hold released"})
	require.NoError(t, err)
	require.Len(t, notifier.walletPushes, before+2)
	assert.Contains(t, notifier.walletPushes[before+1], "subadmin-1/")
}

func TestFreezeThenDebitRealizesFee(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	_, err := svc.CreateWallet(ctx, "shop-1")
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, MutateRequest{ShopID: "shop-1", Amount: 1000})
	require.NoError(t, err)

	frozen, err := svc.Freeze(ctx, MutateRequest{ShopID: "shop-1", Amount: 20, Description: "listing fee hold"})
	require.NoError(t, err)
	assert.Equal(t, int64(980), frozen.Balance.Amount)
	assert.Equal(t, int64(20), frozen.Frozen.Amount)

	debited, err := svc.DebitFrozen(ctx, MutateRequest{ShopID: "shop-1", Amount: 20, Description: "order fee"})
	require.NoError(t, err)
	assert.Equal(t, int64(980), debited.Balance.Amount)
	assert.Equal(t, int64(0), debited.Frozen.Amount)
}

func TestFreezeFailsOnInsufficientBalance(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	_, err := svc.CreateWallet(ctx, "shop-1")
	require.NoError(t, err)

	_, err = svc.Freeze(ctx, MutateRequest{ShopID: "shop-1", Amount: 1})
	assert.ErrorIs(t, err, wallet.ErrInsufficientBalance)
}

func TestMutationsRequireExistingWallet(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Deposit(context.Background(), MutateRequest{ShopID: "shop-9", Amount: 10})
	assert.ErrorIs(t, err, wallet.ErrWalletNotFound)
}

func TestGetEntriesReturnsLog(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	_, err := svc.CreateWallet(ctx, "shop-1")
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, MutateRequest{ShopID: "shop-1", Amount: 100, Description: "first"})
	require.NoError(t, err)
	_, err = svc.Freeze(ctx, MutateRequest{ShopID: "shop-1", Amount: 2, Description: "hold"})
	require.NoError(t, err)

	entries, err := svc.GetEntries(ctx, "shop-1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, string(wallet.EntryDeposit), entries[0].Type)
	assert.Equal(t, string(wallet.EntryFreeze), entries[1].Type)
}

func TestQuoteFreezeValidatesPrice(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	_, err := svc.CreateWallet(ctx, "shop-1")
	require.NoError(t, err)

	_, err = svc.QuoteFreeze(ctx, "shop-1", 0)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Deposit(ctx, MutateRequest{ShopID: "shop-1", Amount: 1000})
	require.NoError(t, err)

	q, err := svc.QuoteFreeze(ctx, "shop-1", 500)
	require.NoError(t, err)
	assert.Equal(t, int64(10), q.RequiredFrozen)
	assert.Equal(t, int64(990), q.AvailableAfter)
}

// --- concurrency ---

// retryingUoW runs the closure under the production retry policy with the
// backoff collapsed, so a version conflict retries immediately.
type retryingUoW struct{ cfg retry.Config }

func (u *retryingUoW) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return retry.ExecuteWithRetry(ctx, u.cfg, fn)
}
func (u *retryingUoW) RegisterNew(shared.AggregateRoot)     {}
func (u *retryingUoW) RegisterDirty(shared.AggregateRoot)   {}
func (u *retryingUoW) RegisterRemoved(shared.AggregateRoot) {}

type retryingUoWFactory struct{ cfg retry.Config }

func (f *retryingUoWFactory) New() shared.UnitOfWork { return &retryingUoW{cfg: f.cfg} }

// versionedWalletRepo stores one committed snapshot and rebuilds a fresh
// aggregate on every read, so each retry attempt sees the last commit.
// Save enforces the optimistic lock the way the guarded UPDATE does: a
// stale loaded version is rejected with a concurrent modification error.
type versionedWalletRepo struct {
	snapshot  wallet.ReconstructionDTO
	hasWallet bool
	conflicts int
}

func (r *versionedWalletRepo) NextIdentity() string { return uuid.NewString() }

func (r *versionedWalletRepo) FindByShopID(_ context.Context, shopID string) (*wallet.Wallet, error) {
	if !r.hasWallet || r.snapshot.ShopID != shopID {
		return nil, wallet.NewWalletNotFoundError(shopID)
	}
	return wallet.RebuildFromDTO(r.snapshot), nil
}

func (r *versionedWalletRepo) Save(_ context.Context, w *wallet.Wallet) error {
	if !w.IsNew() && w.Version() != r.snapshot.Version {
		r.conflicts++
		return wallet.NewConcurrentModificationError(w.ID())
	}
	r.snapshot = wallet.ReconstructionDTO{
		ID:        w.ID(),
		ShopID:    w.ShopID(),
		Balance:   w.Balance(),
		Frozen:    w.Frozen(),
		Version:   w.Version() + 1,
		CreatedAt: w.CreatedAt(),
		UpdatedAt: w.UpdatedAt(),
	}
	r.hasWallet = true
	w.IncrementVersionForSave()
	w.ClearDirtyTracking()
	return nil
}

func (r *versionedWalletRepo) FindEntries(context.Context, string, int) ([]wallet.Entry, error) {
	return nil, nil
}

// racingWalletRepo commits a competing freeze of the whole balance right
// before the armed save, so the caller's version check loses the race.
type racingWalletRepo struct {
	*versionedWalletRepo
	armed bool
}

func (r *racingWalletRepo) Save(ctx context.Context, w *wallet.Wallet) error {
	if r.armed && !w.IsNew() {
		r.armed = false
		winner := wallet.RebuildFromDTO(r.snapshot)
		if err := winner.Freeze(winner.Balance(), "competing hold"); err != nil {
			return err
		}
		if err := r.versionedWalletRepo.Save(ctx, winner); err != nil {
			return err
		}
	}
	return r.versionedWalletRepo.Save(ctx, w)
}

func collapsedRetryConfig() retry.Config {
	cfg := retry.DefaultConfig
	cfg.InitialDelay = 0
	cfg.MaxDelay = 0
	cfg.JitterEnabled = false
	return cfg
}

func TestFreezeRetriesOnVersionConflictThenFailsGuard(t *testing.T) {
	repo := &racingWalletRepo{versionedWalletRepo: &versionedWalletRepo{}}
	svc := NewApplicationService(repo, nil, &retryingUoWFactory{cfg: collapsedRetryConfig()}, nil)
	ctx := context.Background()

	_, err := svc.CreateWallet(ctx, "shop-1")
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, MutateRequest{ShopID: "shop-1", Amount: 10})
	require.NoError(t, err)

	// Two freezes race for the same 10 birr. The competing one commits
	// between this call's read and its guarded save; the retry re-reads
	// the drained balance and the guard fails loudly.
	repo.armed = true
	_, err = svc.Freeze(ctx, MutateRequest{ShopID: "shop-1", Amount: 10})
	require.Error(t, err)
	assert.ErrorIs(t, err, wallet.ErrInsufficientBalance)

	assert.Equal(t, 1, repo.conflicts)

	// Exactly one freeze committed; the balance never went negative.
	w, err := repo.FindByShopID(ctx, "shop-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), w.Balance().Amount())
	assert.Equal(t, int64(10), w.Frozen().Amount())
}

func TestStaleWriterRejectedByVersionGuard(t *testing.T) {
	repo := &versionedWalletRepo{}
	svc := NewApplicationService(repo, nil, &retryingUoWFactory{cfg: collapsedRetryConfig()}, nil)
	ctx := context.Background()

	_, err := svc.CreateWallet(ctx, "shop-1")
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, MutateRequest{ShopID: "shop-1", Amount: 100})
	require.NoError(t, err)

	// A writer holding a copy read before another commit must not be able
	// to save over it.
	stale, err := repo.FindByShopID(ctx, "shop-1")
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, MutateRequest{ShopID: "shop-1", Amount: 50})
	require.NoError(t, err)
	require.NoError(t, stale.Freeze(*shared.NewBirr(20), "stale hold"))
	require.ErrorIs(t, repo.Save(ctx, stale), wallet.ErrConcurrentModification)

	// A fresh read with funds to spare commits normally.
	resp, err := svc.Freeze(ctx, MutateRequest{ShopID: "shop-1", Amount: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(130), resp.Balance.Amount)
	assert.Equal(t, int64(20), resp.Frozen.Amount)
}
