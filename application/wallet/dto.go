package wallet

import "time"

// MutateRequest is the shared input for deposit, freeze, debit, unfreeze
// and refund operations.
type MutateRequest struct {
	ShopID      string `json:"shop_id"`
	Amount      int64  `json:"amount" binding:"required,min=1"`
	Description string `json:"description"`
}

// WalletResponse Wallet return model.
type WalletResponse struct {
	ID        string        `json:"id"`
	ShopID    string        `json:"shop_id"`
	Balance   MoneyResponse `json:"balance"`
	Frozen    MoneyResponse `json:"frozen"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// MoneyResponse Money return model.
type MoneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// EntryResponse Transaction log entry return model.
type EntryResponse struct {
	ID          string        `json:"id"`
	Type        string        `json:"type"`
	Amount      MoneyResponse `json:"amount"`
	Date        time.Time     `json:"date"`
	Description string        `json:"description"`
}

// FreezeQuoteResponse Read-only fee freeze preview.
type FreezeQuoteResponse struct {
	CurrentBalance int64 `json:"current_balance"`
	RequiredFrozen int64 `json:"required_frozen"`
	AvailableAfter int64 `json:"available_after"`
	FrozenBalance  int64 `json:"frozen_balance"`
}
