package wallet

import "github.com/Gift5848/gethub222-sub001/domain/wallet"

func toWalletResponse(w *wallet.Wallet) *WalletResponse {
	return &WalletResponse{
		ID:     w.ID(),
		ShopID: w.ShopID(),
		Balance: MoneyResponse{
			Amount:   w.Balance().Amount(),
			Currency: w.Balance().Currency(),
		},
		Frozen: MoneyResponse{
			Amount:   w.Frozen().Amount(),
			Currency: w.Frozen().Currency(),
		},
		UpdatedAt: w.UpdatedAt(),
	}
}

func toEntryResponses(entries []wallet.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = EntryResponse{
			ID:   entry.ID(),
			Type: string(entry.Type()),
			Amount: MoneyResponse{
				Amount:   entry.Amount().Amount(),
				Currency: entry.Amount().Currency(),
			},
			Date:        entry.Date(),
			Description: entry.Description(),
		}
	}
	return responses
}
