package specification

import (
	"github.com/Gift5848/gethub222-sub001/domain/order"
	"github.com/Gift5848/gethub222-sub001/domain/shared"

	"gorm.io/gorm"
)

// Translator converts domain specifications to GORM scopes so list
// filtering happens in SQL instead of in memory.
type Translator interface {
	// Translate returns a scope for the specification, or nil when the
	// specification type is not known to the persistence layer.
	Translate(spec shared.Specification) func(*gorm.DB) *gorm.DB
}

// GormTranslator implements Translator for GORM.
type GormTranslator struct{}

func NewGormTranslator() *GormTranslator {
	return &GormTranslator{}
}

// Translate converts a specification to a GORM scope. Composition is
// conjunctive, matching shared.And.
func (t *GormTranslator) Translate(spec shared.Specification) func(*gorm.DB) *gorm.DB {
	if spec == nil {
		return nil
	}

	if s, ok := spec.(shared.AndSpecification); ok {
		return t.translateAnd(s)
	}

	return t.translateConcrete(spec)
}

func (t *GormTranslator) translateAnd(spec shared.AndSpecification) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if left := t.Translate(spec.Left); left != nil {
			db = left(db)
		}
		if right := t.Translate(spec.Right); right != nil {
			db = right(db)
		}
		return db
	}
}

// translateConcrete maps the known order specifications onto columns of the
// orders table. The type switch is acceptable here because infrastructure
// already depends on the domain.
func (t *GormTranslator) translateConcrete(spec shared.Specification) func(*gorm.DB) *gorm.DB {
	switch s := spec.(type) {
	case order.ByStatusSpecification:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", string(s.Status))
		}
	case order.ByPaymentStatusSpecification:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("payment_status = ?", string(s.Status))
		}
	case order.ByShopSpecification:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("shop_id = ?", s.ShopID)
		}
	case order.ByPlacedRangeSpecification:
		return func(db *gorm.DB) *gorm.DB {
			if !s.Start.IsZero() {
				db = db.Where("created_at >= ?", s.Start)
			}
			if !s.End.IsZero() {
				db = db.Where("created_at <= ?", s.End)
			}
			return db
		}
	}

	return nil
}
