package po

import (
	"time"

	"github.com/Gift5848/gethub222-sub001/domain/shop"
)

// ShopPO Shop persistence object.
type ShopPO struct {
	ID             string    `gorm:"primaryKey;size:64"`
	Name           string    `gorm:"size:255;not null"`
	OwnerID        string    `gorm:"size:64;index;not null"`
	Location       string    `gorm:"size:64"`
	Phone          string    `gorm:"size:32"`
	ApprovalStatus string    `gorm:"size:20;index;not null"`
	ReviewNote     string    `gorm:"size:500"`
	ReviewedBy     string    `gorm:"size:64"`
	ReviewedAt     time.Time
	Version        int       `gorm:"default:0"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (ShopPO) TableName() string {
	return "shops"
}

// FromShopDomain Convert domain model to persistence object.
func FromShopDomain(s *shop.Shop) *ShopPO {
	return &ShopPO{
		ID:             s.ID(),
		Name:           s.Name(),
		OwnerID:        s.OwnerID(),
		Location:       s.Location(),
		Phone:          s.Phone(),
		ApprovalStatus: string(s.ApprovalStatus()),
		ReviewNote:     s.ReviewNote(),
		ReviewedBy:     s.ReviewedBy(),
		ReviewedAt:     s.ReviewedAt(),
		Version:        s.Version(),
		CreatedAt:      s.CreatedAt(),
		UpdatedAt:      s.UpdatedAt(),
	}
}

// ToDomain Convert persistence object back to the domain model.
func (po *ShopPO) ToDomain() *shop.Shop {
	return shop.RebuildFromDTO(shop.ReconstructionDTO{
		ID:             po.ID,
		Name:           po.Name,
		OwnerID:        po.OwnerID,
		Location:       po.Location,
		Phone:          po.Phone,
		ApprovalStatus: shop.ApprovalStatus(po.ApprovalStatus),
		ReviewNote:     po.ReviewNote,
		ReviewedBy:     po.ReviewedBy,
		ReviewedAt:     po.ReviewedAt,
		Version:        po.Version,
		CreatedAt:      po.CreatedAt,
		UpdatedAt:      po.UpdatedAt,
	})
}
