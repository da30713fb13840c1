package po

import (
	"time"

	"github.com/Gift5848/gethub222-sub001/domain/order"
	"github.com/Gift5848/gethub222-sub001/domain/shared"
)

// OrderPO Order persistence object.
// Only used for database mapping, no business logic and no GORM associations:
// line items are loaded and saved explicitly to keep the aggregate boundary
// in the repository's hands.
type OrderPO struct {
	ID       string `gorm:"primaryKey;size:64"`
	BuyerID  string `gorm:"size:64;index;not null"`
	SellerID string `gorm:"size:64;index;not null"`
	ShopID   string `gorm:"size:64;index;not null"`

	Status                string `gorm:"size:20;not null"`
	PaymentMethod         string `gorm:"size:20;not null"`
	PaymentStatus         string `gorm:"size:20;not null"`
	PaymentApprovalStatus string `gorm:"size:20;not null"`

	DeliveryPersonID string `gorm:"size:64;index"`
	ProofOfDelivery  string `gorm:"size:255"`

	ShippingLine     string `gorm:"size:255"`
	ShippingCity     string `gorm:"size:100"`
	ShippingPhone    string `gorm:"size:32"`
	ShippingLocation string `gorm:"size:64"`

	TotalAmount   int64  `gorm:"not null"`
	TotalCurrency string `gorm:"size:3;not null"`

	Version   int       `gorm:"default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (OrderPO) TableName() string {
	return "orders"
}

// OrderItemPO Order line item persistence object.
type OrderItemPO struct {
	ID               string `gorm:"primaryKey;size:128"`
	OrderID          string `gorm:"size:64;index;not null"`
	ProductID        string `gorm:"size:64;not null"`
	ProductName      string `gorm:"size:255;not null"`
	ShopID           string `gorm:"size:64;index;not null"`
	Quantity         int    `gorm:"not null"`
	UnitPrice        int64  `gorm:"not null"`
	UnitCurrency     string `gorm:"size:3;not null"`
	Subtotal         int64  `gorm:"not null"`
	SubtotalCurrency string `gorm:"size:3;not null"`
}

func (OrderItemPO) TableName() string {
	return "order_items"
}

// FromOrderDomain Convert domain model to persistence objects.
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderItemPO) {
	addr := o.ShippingAddress()
	orderPO := &OrderPO{
		ID:                    o.ID(),
		BuyerID:               o.BuyerID(),
		SellerID:              o.SellerID(),
		ShopID:                o.ShopID(),
		Status:                string(o.Status()),
		PaymentMethod:         string(o.PaymentMethod()),
		PaymentStatus:         string(o.PaymentStatus()),
		PaymentApprovalStatus: string(o.PaymentApprovalStatus()),
		DeliveryPersonID:      o.DeliveryPersonID(),
		ProofOfDelivery:       o.ProofOfDelivery(),
		ShippingLine:          addr.Line,
		ShippingCity:          addr.City,
		ShippingPhone:         addr.Phone,
		ShippingLocation:      addr.Location,
		TotalAmount:           o.Total().Amount(),
		TotalCurrency:         o.Total().Currency(),
		Version:               o.Version(),
		CreatedAt:             o.CreatedAt(),
		UpdatedAt:             o.UpdatedAt(),
	}

	items := o.Items()
	itemPOs := make([]OrderItemPO, len(items))
	for i, item := range items {
		itemPOs[i] = OrderItemPO{
			ID:               item.ID(),
			OrderID:          o.ID(),
			ProductID:        item.ProductID(),
			ProductName:      item.ProductName(),
			ShopID:           item.ShopID(),
			Quantity:         item.Quantity(),
			UnitPrice:        item.UnitPrice().Amount(),
			UnitCurrency:     item.UnitPrice().Currency(),
			Subtotal:         item.Subtotal().Amount(),
			SubtotalCurrency: item.Subtotal().Currency(),
		}
	}

	return orderPO, itemPOs
}

// ToDomain Convert persistence objects back to the domain model.
func (po *OrderPO) ToDomain(itemPOs []OrderItemPO) *order.Order {
	items := make([]order.Item, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = order.RebuildItemFromDTO(order.ItemReconstructionDTO{
			ID:          itemPO.ID,
			ProductID:   itemPO.ProductID,
			ProductName: itemPO.ProductName,
			ShopID:      itemPO.ShopID,
			Quantity:    itemPO.Quantity,
			UnitPrice:   *shared.NewMoney(itemPO.UnitPrice, itemPO.UnitCurrency),
			Subtotal:    *shared.NewMoney(itemPO.Subtotal, itemPO.SubtotalCurrency),
		})
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:                    po.ID,
		BuyerID:               po.BuyerID,
		SellerID:              po.SellerID,
		ShopID:                po.ShopID,
		Items:                 items,
		Total:                 *shared.NewMoney(po.TotalAmount, po.TotalCurrency),
		Status:                order.Status(po.Status),
		PaymentMethod:         order.PaymentMethod(po.PaymentMethod),
		PaymentStatus:         order.PaymentStatus(po.PaymentStatus),
		PaymentApprovalStatus: order.ApprovalStatus(po.PaymentApprovalStatus),
		DeliveryPersonID:      po.DeliveryPersonID,
		ProofOfDelivery:       po.ProofOfDelivery,
		ShippingAddress: order.Address{
			Line:     po.ShippingLine,
			City:     po.ShippingCity,
			Phone:    po.ShippingPhone,
			Location: po.ShippingLocation,
		},
		Version:   po.Version,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	})
}
