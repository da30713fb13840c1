package po

import (
	"time"

	"github.com/Gift5848/gethub222-sub001/domain/shared"
	"github.com/Gift5848/gethub222-sub001/domain/wallet"
)

// WalletPO Wallet persistence object.
type WalletPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	ShopID    string    `gorm:"size:64;uniqueIndex;not null"`
	Balance   int64     `gorm:"not null"`
	Frozen    int64     `gorm:"not null"`
	Currency  string    `gorm:"size:3;not null"`
	Version   int       `gorm:"default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (WalletPO) TableName() string {
	return "wallets"
}

// WalletEntryPO Transaction log row. Append-only: rows are only ever
// inserted, in the same transaction as the wallet balance update.
type WalletEntryPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	WalletID    string    `gorm:"size:64;index;not null"`
	Type        string    `gorm:"size:20;not null"`
	Amount      int64     `gorm:"not null"`
	Currency    string    `gorm:"size:3;not null"`
	Date        time.Time `gorm:"index;not null"`
	Description string    `gorm:"size:255"`
}

func (WalletEntryPO) TableName() string {
	return "wallet_transactions"
}

// FromWalletDomain Convert domain model to persistence objects.
func FromWalletDomain(w *wallet.Wallet) (*WalletPO, []WalletEntryPO) {
	walletPO := &WalletPO{
		ID:        w.ID(),
		ShopID:    w.ShopID(),
		Balance:   w.Balance().Amount(),
		Frozen:    w.Frozen().Amount(),
		Currency:  w.Balance().Currency(),
		Version:   w.Version(),
		CreatedAt: w.CreatedAt(),
		UpdatedAt: w.UpdatedAt(),
	}

	added := w.AddedEntries()
	entryPOs := make([]WalletEntryPO, len(added))
	for i, entry := range added {
		entryPOs[i] = WalletEntryPO{
			ID:          entry.ID(),
			WalletID:    w.ID(),
			Type:        string(entry.Type()),
			Amount:      entry.Amount().Amount(),
			Currency:    entry.Amount().Currency(),
			Date:        entry.Date(),
			Description: entry.Description(),
		}
	}

	return walletPO, entryPOs
}

// ToDomain Convert persistence object back to the domain model.
func (po *WalletPO) ToDomain() *wallet.Wallet {
	return wallet.RebuildFromDTO(wallet.ReconstructionDTO{
		ID:        po.ID,
		ShopID:    po.ShopID,
		Balance:   *shared.NewMoney(po.Balance, po.Currency),
		Frozen:    *shared.NewMoney(po.Frozen, po.Currency),
		Version:   po.Version,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	})
}

// ToDomainEntry Convert a log row back to the domain value.
func (po *WalletEntryPO) ToDomainEntry() wallet.Entry {
	return wallet.RebuildEntryFromDTO(wallet.EntryReconstructionDTO{
		ID:          po.ID,
		Type:        wallet.EntryType(po.Type),
		Amount:      *shared.NewMoney(po.Amount, po.Currency),
		Date:        po.Date,
		Description: po.Description,
	})
}
