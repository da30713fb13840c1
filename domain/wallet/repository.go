package wallet

import "context"

// Repository persists the wallet aggregate. Save must perform the balance
// update as a version-guarded write and insert AddedEntries in the same
// transaction; on a version mismatch it returns ErrConcurrentModification
// so the unit of work can retry against a fresh read.
type Repository interface {
	// NextIdentity generates a new wallet ID.
	NextIdentity() string

	// Save creates or updates the wallet and appends its new log entries.
	Save(ctx context.Context, w *Wallet) error

	// FindByShopID returns the shop's wallet or ErrWalletNotFound.
	FindByShopID(ctx context.Context, shopID string) (*Wallet, error)

	// FindEntries returns the most recent log entries, newest first.
	FindEntries(ctx context.Context, walletID string, limit int) ([]Entry, error)
}
