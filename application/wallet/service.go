/*
Package wallet Application layer - wallet ledger orchestration.

Every balance mutation runs inside a unit of work: the aggregate is
re-read, the guard runs against current persisted state, and the balance
update plus its log entry commit atomically. The owner's realtime
notification is dispatched only after the commit and never affects the
outcome.
*/
package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gift5848/gethub222-sub001/domain/shared"
	"github.com/Gift5848/gethub222-sub001/domain/user"
	"github.com/Gift5848/gethub222-sub001/domain/wallet"
)

// Notifier is the post-commit notification port. Implementations are
// best-effort; the methods deliberately return nothing.
type Notifier interface {
	WalletNotification(ctx context.Context, userID, message string)
	Notice(ctx context.Context, userID, subject, body string)
}

// ApplicationService coordinates wallet ledger operations.
type ApplicationService struct {
	walletRepo wallet.Repository
	directory  user.Directory
	uowFactory shared.UnitOfWorkFactory
	notifier   Notifier
}

// NewApplicationService creates the wallet application service. notifier
// may be nil (worker processes that only mutate).
func NewApplicationService(
	walletRepo wallet.Repository,
	directory user.Directory,
	uowFactory shared.UnitOfWorkFactory,
	notifier Notifier,
) *ApplicationService {
	return &ApplicationService{
		walletRepo: walletRepo,
		directory:  directory,
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// CreateWallet provisions a zero-balance wallet for a shop. Idempotent:
// if the shop already has a wallet it is returned unchanged.
func (s *ApplicationService) CreateWallet(ctx context.Context, shopID string) (*WalletResponse, error) {
	existing, err := s.walletRepo.FindByShopID(ctx, shopID)
	if err == nil {
		return toWalletResponse(existing), nil
	}
	if !errors.Is(err, wallet.ErrWalletNotFound) {
		return nil, err
	}

	var w *wallet.Wallet
	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		w, err = wallet.NewWallet(shopID)
		if err != nil {
			return err
		}
		if err := s.walletRepo.Save(ctx, w); err != nil {
			// A concurrent CreateWallet won the race; treat as success.
			if errors.Is(err, wallet.ErrWalletExists) {
				w, err = s.walletRepo.FindByShopID(ctx, shopID)
				return err
			}
			return err
		}
		uow.RegisterNew(w)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toWalletResponse(w), nil
}

// Deposit credits a shop wallet.
func (s *ApplicationService) Deposit(ctx context.Context, req MutateRequest) (*WalletResponse, error) {
	resp, err := s.mutate(ctx, req.ShopID, func(w *wallet.Wallet) error {
		return w.Deposit(*shared.NewBirr(req.Amount), req.Description)
	})
	if err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, req.ShopID, fmt.Sprintf("Wallet credited: %d birr", req.Amount))
	return resp, nil
}

// Freeze earmarks available funds against future fee obligations.
func (s *ApplicationService) Freeze(ctx context.Context, req MutateRequest) (*WalletResponse, error) {
	resp, err := s.mutate(ctx, req.ShopID, func(w *wallet.Wallet) error {
		return w.Freeze(*shared.NewBirr(req.Amount), req.Description)
	})
	if err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, req.ShopID, fmt.Sprintf("Funds frozen: %d birr", req.Amount))
	return resp, nil
}

// DebitFrozen realizes a platform fee against frozen funds.
func (s *ApplicationService) DebitFrozen(ctx context.Context, req MutateRequest) (*WalletResponse, error) {
	resp, err := s.mutate(ctx, req.ShopID, func(w *wallet.Wallet) error {
		return w.DebitFrozen(*shared.NewBirr(req.Amount), req.Description)
	})
	if err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, req.ShopID, fmt.Sprintf("Platform fee collected: %d birr", req.Amount))
	return resp, nil
}

// Unfreeze releases earmarked funds back to the available balance.
func (s *ApplicationService) Unfreeze(ctx context.Context, req MutateRequest) (*WalletResponse, error) {
	resp, err := s.mutate(ctx, req.ShopID, func(w *wallet.Wallet) error {
		return w.Unfreeze(*shared.NewBirr(req.Amount), req.Description)
	})
	if err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, req.ShopID, fmt.Sprintf("Funds unfrozen: %d birr", req.Amount))
	return resp, nil
}

// Refund credits a wallet from a privileged caller (order refund or admin
// top-up). Distinct log entry type from Deposit.
func (s *ApplicationService) Refund(ctx context.Context, req MutateRequest) (*WalletResponse, error) {
	resp, err := s.mutate(ctx, req.ShopID, func(w *wallet.Wallet) error {
		return w.Refund(*shared.NewBirr(req.Amount), req.Description)
	})
	if err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, req.ShopID, fmt.Sprintf("Wallet refunded: %d birr", req.Amount))
	return resp, nil
}

// mutate re-reads the wallet inside the unit of work, applies the change
// and saves. The UoW retries the whole closure on a version conflict, so
// the guard always runs against freshly read state.
func (s *ApplicationService) mutate(ctx context.Context, shopID string, apply func(w *wallet.Wallet) error) (*WalletResponse, error) {
	var w *wallet.Wallet

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		w, err = s.walletRepo.FindByShopID(ctx, shopID)
		if err != nil {
			return err
		}
		if err := apply(w); err != nil {
			return err
		}
		if err := s.walletRepo.Save(ctx, w); err != nil {
			return err
		}
		uow.RegisterDirty(w)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toWalletResponse(w), nil
}

// GetWallet returns a shop's wallet.
func (s *ApplicationService) GetWallet(ctx context.Context, shopID string) (*WalletResponse, error) {
	w, err := s.walletRepo.FindByShopID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return toWalletResponse(w), nil
}

// GetEntries returns the newest transaction log entries for a shop wallet.
func (s *ApplicationService) GetEntries(ctx context.Context, shopID string, limit int) ([]EntryResponse, error) {
	w, err := s.walletRepo.FindByShopID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	entries, err := s.walletRepo.FindEntries(ctx, w.ID(), limit)
	if err != nil {
		return nil, err
	}
	return toEntryResponses(entries), nil
}

// QuoteFreeze previews the fee freeze for a listing price without touching
// wallet state.
func (s *ApplicationService) QuoteFreeze(ctx context.Context, shopID string, price int64) (*FreezeQuoteResponse, error) {
	if price <= 0 {
		return nil, shared.NewValidationError("wallet", "price", "price must be positive")
	}
	w, err := s.walletRepo.FindByShopID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	q := w.QuoteFreeze(*shared.NewBirr(price))
	return &FreezeQuoteResponse{
		CurrentBalance: q.CurrentBalance,
		RequiredFrozen: q.RequiredFrozen,
		AvailableAfter: q.AvailableAfter,
		FrozenBalance:  q.FrozenBalance,
	}, nil
}

// notifyOwner pushes a wallet notification to the shop's owning subadmin.
// Best-effort: a missing owner or nil notifier is simply skipped.
func (s *ApplicationService) notifyOwner(ctx context.Context, shopID, message string) {
	if s.notifier == nil || s.directory == nil {
		return
	}
	owner, err := s.directory.FindShopOwner(ctx, shopID)
	if err != nil {
		return
	}
	s.notifier.WalletNotification(ctx, owner.ID, message)
}
