package shop

import "time"

// RegisterShopRequest Shop registration input.
type RegisterShopRequest struct {
	OwnerID  string `json:"owner_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
}

// ReviewRequest Input shared by the admin review operations.
type ReviewRequest struct {
	ShopID  string `json:"shop_id"`
	ActorID string `json:"actor_id" binding:"required"`
	Note    string `json:"note"`
}

// ResubmitRequest Owner resubmission after an info request. Empty fields
// keep their current value.
type ResubmitRequest struct {
	ShopID   string `json:"shop_id"`
	ActorID  string `json:"actor_id" binding:"required"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
}

// ShopResponse Shop return model.
type ShopResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	OwnerID        string    `json:"owner_id"`
	Location       string    `json:"location"`
	Phone          string    `json:"phone"`
	ApprovalStatus string    `json:"approval_status"`
	ReviewNote     string    `json:"review_note,omitempty"`
	ReviewedBy     string    `json:"reviewed_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
