/*
Package shop Application layer - shop registration and review.

Approval is what brings a shop online: the review decision and the
wallet provisioning commit in the same unit of work so an approved shop
can never exist without its ledger.
*/
package shop

import (
	"context"
	"errors"

	"github.com/Gift5848/gethub222-sub001/domain/shared"
	"github.com/Gift5848/gethub222-sub001/domain/shop"
	"github.com/Gift5848/gethub222-sub001/domain/user"
	"github.com/Gift5848/gethub222-sub001/domain/wallet"
)

// Notifier is the post-commit notification port.
type Notifier interface {
	Notice(ctx context.Context, userID, subject, body string)
}

// ApplicationService coordinates shop registration and review.
type ApplicationService struct {
	shopRepo   shop.Repository
	walletRepo wallet.Repository
	directory  user.Directory
	uowFactory shared.UnitOfWorkFactory
	notifier   Notifier
}

func NewApplicationService(
	shopRepo shop.Repository,
	walletRepo wallet.Repository,
	directory user.Directory,
	uowFactory shared.UnitOfWorkFactory,
	notifier Notifier,
) *ApplicationService {
	return &ApplicationService{
		shopRepo:   shopRepo,
		walletRepo: walletRepo,
		directory:  directory,
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Register files a shop registration request in pending status.
func (s *ApplicationService) Register(ctx context.Context, req RegisterShopRequest) (*ShopResponse, error) {
	owner, err := s.directory.FindByID(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner.Role != user.RoleSubadmin && owner.Role != user.RoleAdmin {
		return nil, shared.NewForbiddenError("shop", "only a subadmin may register a shop")
	}

	var sh *shop.Shop
	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		sh, err = shop.NewShop(req.Name, req.OwnerID, req.Location, req.Phone)
		if err != nil {
			return err
		}
		if err := s.shopRepo.Save(ctx, sh); err != nil {
			return err
		}
		uow.RegisterNew(sh)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toShopResponse(sh), nil
}

// Approve accepts a pending request and provisions the shop's wallet in
// the same transaction. Provisioning is idempotent: an already existing
// wallet is left untouched.
func (s *ApplicationService) Approve(ctx context.Context, req ReviewRequest) (*ShopResponse, error) {
	if err := s.requireAdmin(ctx, req.ActorID); err != nil {
		return nil, err
	}

	var sh *shop.Shop
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		sh, err = s.shopRepo.FindByID(ctx, req.ShopID)
		if err != nil {
			return err
		}
		if err := sh.Approve(req.ActorID); err != nil {
			return err
		}
		if err := s.shopRepo.Save(ctx, sh); err != nil {
			return err
		}
		uow.RegisterDirty(sh)
		return s.provisionWallet(ctx, uow, sh.ID())
	})
	if err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, sh, "Shop approved", "Your shop "+sh.Name()+" is now live")
	return toShopResponse(sh), nil
}

// Reject declines a pending request with a note for the owner.
func (s *ApplicationService) Reject(ctx context.Context, req ReviewRequest) (*ShopResponse, error) {
	sh, err := s.review(ctx, req, func(sh *shop.Shop) error {
		return sh.Reject(req.ActorID, req.Note)
	})
	if err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, sh, "Shop rejected", req.Note)
	return toShopResponse(sh), nil
}

// RequestInfo asks the owner for more information, leaving the request
// open for resubmission.
func (s *ApplicationService) RequestInfo(ctx context.Context, req ReviewRequest) (*ShopResponse, error) {
	sh, err := s.review(ctx, req, func(sh *shop.Shop) error {
		return sh.RequestInfo(req.ActorID, req.Note)
	})
	if err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, sh, "More information needed", req.Note)
	return toShopResponse(sh), nil
}

// Resubmit moves an info_requested shop back into the review queue with
// updated details. Owner only.
func (s *ApplicationService) Resubmit(ctx context.Context, req ResubmitRequest) (*ShopResponse, error) {
	var sh *shop.Shop
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		sh, err = s.shopRepo.FindByID(ctx, req.ShopID)
		if err != nil {
			return err
		}
		if sh.OwnerID() != req.ActorID {
			return shared.NewForbiddenError("shop", "only the owner may resubmit")
		}
		if err := sh.Resubmit(req.Name, req.Location, req.Phone); err != nil {
			return err
		}
		if err := s.shopRepo.Save(ctx, sh); err != nil {
			return err
		}
		uow.RegisterDirty(sh)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toShopResponse(sh), nil
}

// GetShop returns a single shop.
func (s *ApplicationService) GetShop(ctx context.Context, shopID string) (*ShopResponse, error) {
	sh, err := s.shopRepo.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return toShopResponse(sh), nil
}

// GetOwnerShops returns the owner's shops.
func (s *ApplicationService) GetOwnerShops(ctx context.Context, ownerID string) ([]*ShopResponse, error) {
	shops, err := s.shopRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return toShopResponses(shops), nil
}

// GetReviewQueue returns shops in the given status, oldest first.
func (s *ApplicationService) GetReviewQueue(ctx context.Context, status string) ([]*ShopResponse, error) {
	shops, err := s.shopRepo.FindByStatus(ctx, shop.ApprovalStatus(status))
	if err != nil {
		return nil, err
	}
	return toShopResponses(shops), nil
}

// review is the shared skeleton of reject and request-info.
func (s *ApplicationService) review(ctx context.Context, req ReviewRequest, apply func(sh *shop.Shop) error) (*shop.Shop, error) {
	if err := s.requireAdmin(ctx, req.ActorID); err != nil {
		return nil, err
	}

	var sh *shop.Shop
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		sh, err = s.shopRepo.FindByID(ctx, req.ShopID)
		if err != nil {
			return err
		}
		if err := apply(sh); err != nil {
			return err
		}
		if err := s.shopRepo.Save(ctx, sh); err != nil {
			return err
		}
		uow.RegisterDirty(sh)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sh, nil
}

func (s *ApplicationService) requireAdmin(ctx context.Context, actorID string) error {
	actor, err := s.directory.FindByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.Role != user.RoleAdmin {
		return shared.NewForbiddenError("shop", "only a platform admin may review shop requests")
	}
	return nil
}

func (s *ApplicationService) provisionWallet(ctx context.Context, uow shared.UnitOfWork, shopID string) error {
	_, err := s.walletRepo.FindByShopID(ctx, shopID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, wallet.ErrWalletNotFound) {
		return err
	}

	w, err := wallet.NewWallet(shopID)
	if err != nil {
		return err
	}
	if err := s.walletRepo.Save(ctx, w); err != nil {
		if errors.Is(err, wallet.ErrWalletExists) {
			return nil
		}
		return err
	}
	uow.RegisterNew(w)
	return nil
}

// notifyOwner is best-effort post-commit messaging to the shop owner.
func (s *ApplicationService) notifyOwner(ctx context.Context, sh *shop.Shop, subject, body string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notice(ctx, sh.OwnerID(), subject, body)
}
