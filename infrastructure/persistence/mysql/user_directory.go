package mysql

import (
	"context"
	"errors"

	"github.com/Gift5848/gethub222-sub001/domain/shared"
	"github.com/Gift5848/gethub222-sub001/domain/user"

	"gorm.io/gorm"
)

// userRow is a read-only projection of the users table. The table is
// owned by the account service; this adapter never writes it and it is
// deliberately absent from AutoMigrate.
type userRow struct {
	ID       string `gorm:"column:id;primaryKey"`
	Role     string `gorm:"column:role"`
	ShopID   string `gorm:"column:shop_id"`
	OwnerID  string `gorm:"column:owner_id"`
	Email    string `gorm:"column:email"`
	Phone    string `gorm:"column:phone"`
	Location string `gorm:"column:location"`
	Active   bool   `gorm:"column:active"`
	Approved bool   `gorm:"column:approved"`
}

func (userRow) TableName() string {
	return "users"
}

func (r userRow) toActor() user.Actor {
	return user.Actor{
		ID:       r.ID,
		Role:     user.Role(r.Role),
		ShopID:   r.ShopID,
		OwnerID:  r.OwnerID,
		Email:    r.Email,
		Phone:    r.Phone,
		Location: r.Location,
		Active:   r.Active,
		Approved: r.Approved,
	}
}

// UserDirectory implements user.Directory against the shared database.
type UserDirectory struct {
	db *gorm.DB
}

func NewUserDirectory(db *gorm.DB) *UserDirectory {
	return &UserDirectory{db: db}
}

// FindByID returns the actor or shared.ErrNotFound.
func (d *UserDirectory) FindByID(ctx context.Context, id string) (user.Actor, error) {
	var row userRow
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.Actor{}, shared.NewNotFoundError("user " + id)
		}
		return user.Actor{}, err
	}
	return row.toActor(), nil
}

// FindShopOwner returns the subadmin managing the given shop.
func (d *UserDirectory) FindShopOwner(ctx context.Context, shopID string) (user.Actor, error) {
	var row userRow
	err := d.db.WithContext(ctx).
		Where("role = ? AND shop_id = ?", string(user.RoleSubadmin), shopID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.Actor{}, shared.NewNotFoundError("owner of shop " + shopID)
		}
		return user.Actor{}, err
	}
	return row.toActor(), nil
}

// FindAvailableDelivery returns the least recently assigned active and
// approved delivery person, or shared.ErrNotFound when none exists.
func (d *UserDirectory) FindAvailableDelivery(ctx context.Context) (user.Actor, error) {
	var row userRow
	err := d.db.WithContext(ctx).
		Where("role = ? AND active = ? AND approved = ?", string(user.RoleDelivery), true, true).
		Joins("LEFT JOIN orders ON orders.delivery_person_id = users.id AND orders.status NOT IN ?",
			[]string{"delivered", "buyerreceived"}).
		Group("users.id").
		Order("COUNT(orders.id) ASC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.Actor{}, shared.NewNotFoundError("available delivery person")
		}
		return user.Actor{}, err
	}
	return row.toActor(), nil
}
