package mysql

import (
	"context"
	"errors"

	"github.com/Gift5848/gethub222-sub001/domain/order"
	"github.com/Gift5848/gethub222-sub001/domain/shared"
	"github.com/Gift5848/gethub222-sub001/infrastructure/persistence"
	"github.com/Gift5848/gethub222-sub001/infrastructure/persistence/mysql/po"
	"github.com/Gift5848/gethub222-sub001/infrastructure/persistence/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository MySQL/GORM implementation of the order repository.
// Repository is only responsible for persistence of the aggregate root, not
// event publishing. GORM associations are prohibited so the aggregate
// boundary stays explicit: line items are loaded and saved by hand.
type OrderRepository struct {
	db         *gorm.DB
	translator specification.Translator
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{
		db:         db,
		translator: specification.NewGormTranslator(),
	}
}

func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// NextIdentity Generate new order ID.
func (r *OrderRepository) NextIdentity() string {
	return "order-" + uuid.New().String()
}

// Save Save order (create or update) with its line items.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, o)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, o)
	})
}

func (r *OrderRepository) saveWithTx(tx *gorm.DB, o *order.Order) error {
	orderPO, itemPOs := po.FromOrderDomain(o)

	if o.IsNew() {
		if err := tx.Create(orderPO).Error; err != nil {
			return err
		}
		if len(itemPOs) > 0 {
			if err := tx.Create(&itemPOs).Error; err != nil {
				return err
			}
		}
		o.ClearDirtyTracking()
		return nil
	}

	expectedVersion := o.Version()

	// Strict optimistic lock: the loaded version is the update condition so
	// two racing transitions cannot both commit.
	result := tx.Model(&po.OrderPO{}).
		Where("id = ? AND version = ?", o.ID(), expectedVersion).
		Updates(map[string]interface{}{
			"status":                  orderPO.Status,
			"payment_status":          orderPO.PaymentStatus,
			"payment_approval_status": orderPO.PaymentApprovalStatus,
			"delivery_person_id":      orderPO.DeliveryPersonID,
			"proof_of_delivery":       orderPO.ProofOfDelivery,
			"version":                 expectedVersion + 1,
			"updated_at":              orderPO.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&po.OrderPO{}).Where("id = ?", o.ID()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return order.NewOrderNotFoundError(o.ID())
		}
		return order.NewConcurrentModificationError(o.ID())
	}

	o.IncrementVersionForSave()
	return nil
}

// FindByID Find order by ID.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	db := r.getDB(ctx)
	var orderPO po.OrderPO

	result := db.First(&orderPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, result.Error
	}

	// Line items are queried manually, never Preloaded.
	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id = ?", id).Find(&itemPOs).Error; err != nil {
		return nil, err
	}

	return orderPO.ToDomain(itemPOs), nil
}

func (r *OrderRepository) FindByBuyerID(ctx context.Context, buyerID string) ([]*order.Order, error) {
	return r.findWhere(ctx, "buyer_id = ?", buyerID)
}

func (r *OrderRepository) FindBySellerID(ctx context.Context, sellerID string) ([]*order.Order, error) {
	return r.findWhere(ctx, "seller_id = ?", sellerID)
}

func (r *OrderRepository) FindByShopID(ctx context.Context, shopID string) ([]*order.Order, error) {
	return r.findWhere(ctx, "shop_id = ?", shopID)
}

func (r *OrderRepository) FindByDeliveryPersonID(ctx context.Context, deliveryPersonID string) ([]*order.Order, error) {
	return r.findWhere(ctx, "delivery_person_id = ?", deliveryPersonID)
}

// FindAll Return every order, newest first.
func (r *OrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	db := r.getDB(ctx)
	var orderPOs []po.OrderPO
	if err := db.Order("created_at DESC").Find(&orderPOs).Error; err != nil {
		return nil, err
	}
	return r.loadItems(db, orderPOs)
}

// FindMatching Return orders satisfying spec, newest first. The spec is
// translated to SQL; an untranslatable spec falls back to an unfiltered
// scan, so only known specification types should reach this point.
func (r *OrderRepository) FindMatching(ctx context.Context, spec shared.Specification) ([]*order.Order, error) {
	db := r.getDB(ctx)
	if scope := r.translator.Translate(spec); scope != nil {
		db = scope(db)
	}

	var orderPOs []po.OrderPO
	if err := db.Order("created_at DESC").Find(&orderPOs).Error; err != nil {
		return nil, err
	}
	return r.loadItems(r.getDB(ctx), orderPOs)
}

func (r *OrderRepository) findWhere(ctx context.Context, query string, arg interface{}) ([]*order.Order, error) {
	db := r.getDB(ctx)
	var orderPOs []po.OrderPO
	if err := db.Where(query, arg).
		Order("created_at DESC").
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}
	return r.loadItems(db, orderPOs)
}

func (r *OrderRepository) loadItems(db *gorm.DB, orderPOs []po.OrderPO) ([]*order.Order, error) {
	orders := make([]*order.Order, len(orderPOs))
	for i, orderPO := range orderPOs {
		var itemPOs []po.OrderItemPO
		if err := db.Where("order_id = ?", orderPO.ID).Find(&itemPOs).Error; err != nil {
			return nil, err
		}
		orders[i] = orderPO.ToDomain(itemPOs)
	}
	return orders, nil
}

// Remove Delete the order and its line items. Cancellation is a physical
// delete: the system has no cancelled status, a removed order simply no
// longer exists.
func (r *OrderRepository) Remove(ctx context.Context, o *order.Order) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.removeWithTx(tx, o)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.removeWithTx(tx, o)
	})
}

func (r *OrderRepository) removeWithTx(tx *gorm.DB, o *order.Order) error {
	if err := tx.Where("order_id = ?", o.ID()).Delete(&po.OrderItemPO{}).Error; err != nil {
		return err
	}

	result := tx.Where("id = ?", o.ID()).Delete(&po.OrderPO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.NewOrderNotFoundError(o.ID())
	}
	return nil
}

// Compile-time interface implementation check
var _ order.Repository = (*OrderRepository)(nil)
