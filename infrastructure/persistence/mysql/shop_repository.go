package mysql

import (
	"context"
	"errors"

	"github.com/Gift5848/gethub222-sub001/domain/shop"
	"github.com/Gift5848/gethub222-sub001/infrastructure/persistence"
	"github.com/Gift5848/gethub222-sub001/infrastructure/persistence/mysql/po"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShopRepository MySQL/GORM implementation of the shop repository.
type ShopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

func (r *ShopRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// NextIdentity Generate new shop ID.
func (r *ShopRepository) NextIdentity() string {
	return "shop-" + uuid.New().String()
}

// Save Save shop (create or update).
func (r *ShopRepository) Save(ctx context.Context, s *shop.Shop) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, s)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, s)
	})
}

func (r *ShopRepository) saveWithTx(tx *gorm.DB, s *shop.Shop) error {
	shopPO := po.FromShopDomain(s)

	if s.IsNew() {
		if err := tx.Create(shopPO).Error; err != nil {
			return err
		}
		s.ClearDirtyTracking()
		return nil
	}

	expectedVersion := s.Version()

	result := tx.Model(&po.ShopPO{}).
		Where("id = ? AND version = ?", s.ID(), expectedVersion).
		Updates(map[string]interface{}{
			"name":            shopPO.Name,
			"location":        shopPO.Location,
			"phone":           shopPO.Phone,
			"approval_status": shopPO.ApprovalStatus,
			"review_note":     shopPO.ReviewNote,
			"reviewed_by":     shopPO.ReviewedBy,
			"reviewed_at":     shopPO.ReviewedAt,
			"version":         expectedVersion + 1,
			"updated_at":      shopPO.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&po.ShopPO{}).Where("id = ?", s.ID()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shop.NewShopNotFoundError(s.ID())
		}
		return shop.NewConcurrentModificationError(s.ID())
	}

	s.IncrementVersionForSave()
	return nil
}

// FindByID Find shop by ID.
func (r *ShopRepository) FindByID(ctx context.Context, id string) (*shop.Shop, error) {
	var shopPO po.ShopPO
	result := r.getDB(ctx).First(&shopPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shop.NewShopNotFoundError(id)
		}
		return nil, result.Error
	}
	return shopPO.ToDomain(), nil
}

// FindByOwnerID Find the shops registered by a subadmin.
func (r *ShopRepository) FindByOwnerID(ctx context.Context, ownerID string) ([]*shop.Shop, error) {
	var shopPOs []po.ShopPO
	if err := r.getDB(ctx).Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&shopPOs).Error; err != nil {
		return nil, err
	}
	return toDomainShops(shopPOs), nil
}

// FindByStatus Find shops by approval status, oldest first (FIFO review queue).
func (r *ShopRepository) FindByStatus(ctx context.Context, status shop.ApprovalStatus) ([]*shop.Shop, error) {
	var shopPOs []po.ShopPO
	if err := r.getDB(ctx).Where("approval_status = ?", string(status)).
		Order("created_at ASC").
		Find(&shopPOs).Error; err != nil {
		return nil, err
	}
	return toDomainShops(shopPOs), nil
}

func toDomainShops(shopPOs []po.ShopPO) []*shop.Shop {
	shops := make([]*shop.Shop, len(shopPOs))
	for i, shopPO := range shopPOs {
		shops[i] = shopPO.ToDomain()
	}
	return shops
}

// Compile-time interface implementation check
var _ shop.Repository = (*ShopRepository)(nil)
