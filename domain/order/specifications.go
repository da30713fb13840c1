package order

import (
	"context"
	"time"

	"github.com/Gift5848/gethub222-sub001/domain/shared"
)

// Query specifications for the admin order listing. Each one narrows the
// result set; they compose with shared.And.

// ByStatusSpecification matches orders in a lifecycle status.
type ByStatusSpecification struct {
	Status Status
}

func (s ByStatusSpecification) IsSatisfiedBy(_ context.Context, entity interface{}) bool {
	o, ok := entity.(*Order)
	return ok && o.Status() == s.Status
}

// ByPaymentStatusSpecification matches orders in a payment sub-state.
type ByPaymentStatusSpecification struct {
	Status PaymentStatus
}

func (s ByPaymentStatusSpecification) IsSatisfiedBy(_ context.Context, entity interface{}) bool {
	o, ok := entity.(*Order)
	return ok && o.PaymentStatus() == s.Status
}

// ByShopSpecification matches a shop's orders.
type ByShopSpecification struct {
	ShopID string
}

func (s ByShopSpecification) IsSatisfiedBy(_ context.Context, entity interface{}) bool {
	o, ok := entity.(*Order)
	return ok && o.ShopID() == s.ShopID
}

// ByPlacedRangeSpecification matches orders placed inside a time window.
// A zero Start or End leaves that side open.
type ByPlacedRangeSpecification struct {
	Start time.Time
	End   time.Time
}

func (s ByPlacedRangeSpecification) IsSatisfiedBy(_ context.Context, entity interface{}) bool {
	o, ok := entity.(*Order)
	if !ok {
		return false
	}
	if !s.Start.IsZero() && o.CreatedAt().Before(s.Start) {
		return false
	}
	if !s.End.IsZero() && o.CreatedAt().After(s.End) {
		return false
	}
	return true
}

var (
	_ shared.Specification = ByStatusSpecification{}
	_ shared.Specification = ByPaymentStatusSpecification{}
	_ shared.Specification = ByShopSpecification{}
	_ shared.Specification = ByPlacedRangeSpecification{}
)
