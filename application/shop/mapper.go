package shop

import "github.com/Gift5848/gethub222-sub001/domain/shop"

func toShopResponse(s *shop.Shop) *ShopResponse {
	return &ShopResponse{
		ID:             s.ID(),
		Name:           s.Name(),
		OwnerID:        s.OwnerID(),
		Location:       s.Location(),
		Phone:          s.Phone(),
		ApprovalStatus: string(s.ApprovalStatus()),
		ReviewNote:     s.ReviewNote(),
		ReviewedBy:     s.ReviewedBy(),
		CreatedAt:      s.CreatedAt(),
		UpdatedAt:      s.UpdatedAt(),
	}
}

func toShopResponses(shops []*shop.Shop) []*ShopResponse {
	responses := make([]*ShopResponse, len(shops))
	for i, s := range shops {
		responses[i] = toShopResponse(s)
	}
	return responses
}
