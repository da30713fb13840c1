package mysql

import (
	"context"
	"errors"

	"github.com/Gift5848/gethub222-sub001/domain/product"
	"github.com/Gift5848/gethub222-sub001/domain/shared"

	"gorm.io/gorm"
)

// productRow is a read-only projection of the products table, owned by
// the catalog service. Not part of AutoMigrate.
type productRow struct {
	ID       string `gorm:"column:id;primaryKey"`
	Name     string `gorm:"column:name"`
	SellerID string `gorm:"column:seller_id"`
	ShopID   string `gorm:"column:shop_id"`
	Price    int64  `gorm:"column:price"`
	Stock    int    `gorm:"column:stock"`
}

func (productRow) TableName() string {
	return "products"
}

// ProductCatalog implements product.Catalog against the shared database.
type ProductCatalog struct {
	db *gorm.DB
}

func NewProductCatalog(db *gorm.DB) *ProductCatalog {
	return &ProductCatalog{db: db}
}

// FindByID returns the product or shared.ErrNotFound.
func (c *ProductCatalog) FindByID(ctx context.Context, id string) (product.Product, error) {
	var row productRow
	err := c.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return product.Product{}, shared.NewNotFoundError("product " + id)
		}
		return product.Product{}, err
	}

	return product.Product{
		ID:       row.ID,
		Name:     row.Name,
		SellerID: row.SellerID,
		ShopID:   row.ShopID,
		Price:    *shared.NewBirr(row.Price),
		Stock:    row.Stock,
	}, nil
}
