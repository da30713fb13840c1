package mysql

import (
	"github.com/Gift5848/gethub222-sub001/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema. Development convenience;
// production schemas are managed by migration scripts.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&po.OrderPO{},
		&po.OrderItemPO{},
		&po.WalletPO{},
		&po.WalletEntryPO{},
		&po.ShopPO{},
		&po.OutboxEventPO{},
		&po.ActivityLogPO{},
	)
}
