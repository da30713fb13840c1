package order

import (
	"context"
	"fmt"

	"github.com/Gift5848/gethub222-sub001/domain/order"
	"github.com/Gift5848/gethub222-sub001/domain/shared"
	"github.com/Gift5848/gethub222-sub001/domain/wallet"
	"github.com/Gift5848/gethub222-sub001/pkg/logger"

	"go.uber.org/zap"
)

// collectFees debits the 2% platform fee from each product-owning shop's
// frozen funds after an order committed. One debit per distinct shop, in
// first-appearance order, each in its own transaction.
//
// Soft-fail by contract: a shop with insufficient frozen funds (or a
// transient write failure) is logged and skipped; placement already
// succeeded and must never be rolled back over fees.
func (s *ApplicationService) collectFees(ctx context.Context, o *order.Order) {
	fees := make(map[string]shared.Money, len(o.Items()))
	for _, item := range o.Items() {
		fee := wallet.PlatformFee(item.UnitPrice())
		if current, ok := fees[item.ShopID()]; ok {
			sum, err := current.Add(fee)
			if err != nil {
				continue
			}
			fees[item.ShopID()] = *sum
		} else {
			fees[item.ShopID()] = fee
		}
	}

	for _, shopID := range o.FeeShopIDs() {
		fee := fees[shopID]
		if err := s.debitFee(ctx, shopID, fee, o.ID()); err != nil {
			logger.Warn("Platform fee collection failed",
				zap.String("order_id", o.ID()),
				zap.String("shop_id", shopID),
				zap.Int64("fee", fee.Amount()),
				zap.Error(err),
			)
		}
	}
}

func (s *ApplicationService) debitFee(ctx context.Context, shopID string, fee shared.Money, orderID string) error {
	uow := s.uowFactory.New()
	return uow.Execute(ctx, func(ctx context.Context) error {
		w, err := s.walletRepo.FindByShopID(ctx, shopID)
		if err != nil {
			return err
		}
		if err := w.DebitFrozen(fee, fmt.Sprintf("Platform fee for order %s", orderID)); err != nil {
			return err
		}
		if err := s.walletRepo.Save(ctx, w); err != nil {
			return err
		}
		uow.RegisterDirty(w)
		return nil
	})
}
