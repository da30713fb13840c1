package mysql

import (
	"context"
	"errors"
	"strings"

	"github.com/Gift5848/gethub222-sub001/domain/wallet"
	"github.com/Gift5848/gethub222-sub001/infrastructure/persistence"
	"github.com/Gift5848/gethub222-sub001/infrastructure/persistence/mysql/po"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WalletRepository MySQL/GORM implementation of the wallet repository.
// The balance update is a strict optimistic-lock write and the new log
// entries are inserted in the same transaction, so a committed balance
// change always has its ledger rows and vice versa.
type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Duplicate entry") ||
		strings.Contains(errStr, "1062")
}

// NextIdentity Generate new wallet ID.
func (r *WalletRepository) NextIdentity() string {
	return "wallet-" + uuid.New().String()
}

// Save Save wallet (create or update) plus its appended log entries.
// Uses the transaction from context when called within UoW.Execute();
// creates its own otherwise so the entry insert stays atomic.
func (r *WalletRepository) Save(ctx context.Context, w *wallet.Wallet) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, w)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, w)
	})
}

func (r *WalletRepository) saveWithTx(tx *gorm.DB, w *wallet.Wallet) error {
	walletPO, entryPOs := po.FromWalletDomain(w)

	if w.IsNew() {
		if err := tx.Create(walletPO).Error; err != nil {
			if isDuplicateKeyError(err) {
				return wallet.ErrWalletExists
			}
			return err
		}
	} else {
		expectedVersion := w.Version()

		// Strict optimistic lock: the aggregate's loaded version is the
		// update condition so a concurrent write is never silently
		// overwritten.
		result := tx.Model(&po.WalletPO{}).
			Where("id = ? AND version = ?", w.ID(), expectedVersion).
			Updates(map[string]interface{}{
				"balance":    walletPO.Balance,
				"frozen":     walletPO.Frozen,
				"version":    expectedVersion + 1,
				"updated_at": walletPO.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.WalletPO{}).Where("id = ?", w.ID()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return wallet.NewWalletNotFoundError(w.ShopID())
			}
			return wallet.NewConcurrentModificationError(w.ID())
		}

		w.IncrementVersionForSave()
	}

	if len(entryPOs) > 0 {
		if err := tx.Create(&entryPOs).Error; err != nil {
			return err
		}
	}

	w.ClearDirtyTracking()
	return nil
}

// FindByShopID Find a shop's wallet.
func (r *WalletRepository) FindByShopID(ctx context.Context, shopID string) (*wallet.Wallet, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var walletPO po.WalletPO
	result := r.getDB(ctx).First(&walletPO, "shop_id = ?", shopID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, wallet.NewWalletNotFoundError(shopID)
		}
		return nil, result.Error
	}

	return walletPO.ToDomain(), nil
}

// FindEntries Return the newest log entries for a wallet.
func (r *WalletRepository) FindEntries(ctx context.Context, walletID string, limit int) ([]wallet.Entry, error) {
	db := r.getDB(ctx)
	query := db.Where("wallet_id = ?", walletID).Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var entryPOs []po.WalletEntryPO
	if err := query.Find(&entryPOs).Error; err != nil {
		return nil, err
	}

	entries := make([]wallet.Entry, len(entryPOs))
	for i, entryPO := range entryPOs {
		entries[i] = entryPO.ToDomainEntry()
	}
	return entries, nil
}

// Compile-time interface implementation check
var _ wallet.Repository = (*WalletRepository)(nil)
