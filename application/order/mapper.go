package order

import "github.com/Gift5848/gethub222-sub001/domain/order"

func toOrderResponse(o *order.Order) *OrderResponse {
	items := make([]OrderItemResponse, len(o.Items()))
	for i, item := range o.Items() {
		items[i] = OrderItemResponse{
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			ShopID:      item.ShopID(),
			Quantity:    item.Quantity(),
			UnitPrice: MoneyResponse{
				Amount:   item.UnitPrice().Amount(),
				Currency: item.UnitPrice().Currency(),
			},
			Subtotal: MoneyResponse{
				Amount:   item.Subtotal().Amount(),
				Currency: item.Subtotal().Currency(),
			},
		}
	}

	addr := o.ShippingAddress()
	return &OrderResponse{
		ID:       o.ID(),
		BuyerID:  o.BuyerID(),
		SellerID: o.SellerID(),
		ShopID:   o.ShopID(),
		Items:    items,
		Total: MoneyResponse{
			Amount:   o.Total().Amount(),
			Currency: o.Total().Currency(),
		},
		Status:                string(o.Status()),
		PaymentMethod:         string(o.PaymentMethod()),
		PaymentStatus:         string(o.PaymentStatus()),
		PaymentApprovalStatus: string(o.PaymentApprovalStatus()),
		DeliveryPersonID:      o.DeliveryPersonID(),
		ProofOfDelivery:       o.ProofOfDelivery(),
		Shipping: ShippingRequest{
			Line:     addr.Line,
			City:     addr.City,
			Phone:    addr.Phone,
			Location: addr.Location,
		},
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
}

func toOrderResponses(orders []*order.Order) []*OrderResponse {
	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = toOrderResponse(o)
	}
	return responses
}
