/*
Package wallet implements the per-shop ledger: an available balance, a
frozen (fee-earmarked) balance and an append-only transaction log.

Invariants maintained by the aggregate:
 1. balance >= 0 and frozen >= 0 after every operation.
 2. Every mutation of balance/frozen records exactly one transaction entry;
    the repository persists the entry in the same database transaction.
 3. Entries are append-only; nothing ever updates or deletes them.
*/
package wallet

import (
	"fmt"
	"time"

	"github.com/Gift5848/gethub222-sub001/domain/shared"

	"github.com/google/uuid"
)

// FeeBps is the platform fee rate in basis points (2% of unit price,
// charged per sold line item to the product's owning shop).
const FeeBps = 200

// PlatformFee returns ceil(price × 2%).
func PlatformFee(price shared.Money) shared.Money {
	return price.CeilPercent(FeeBps)
}

// EntryType classifies a ledger transaction entry.
type EntryType string

const (
	EntryDeposit  EntryType = "deposit"
	EntryFreeze   EntryType = "freeze"
	EntryDebit    EntryType = "debit"
	EntryUnfreeze EntryType = "unfreeze"
	EntryFee      EntryType = "fee"
	EntryRefund   EntryType = "refund"
)

// Wallet aggregate root. One wallet per shop; all balance mutations go
// through its methods so the invariants above cannot be bypassed.
type Wallet struct {
	id        string
	shopID    string
	balance   shared.Money
	frozen    shared.Money
	version   int // optimistic lock, managed by the persistence layer
	createdAt time.Time
	updatedAt time.Time

	events []shared.DomainEvent

	// Dirty tracking: entries appended since load. The repository inserts
	// exactly these rows alongside the balance update.
	addedEntries []Entry
	isNew        bool
}

// Entry is one immutable row of the transaction log.
type Entry struct {
	id          string
	entryType   EntryType
	amount      shared.Money
	date        time.Time
	description string
}

func (e Entry) ID() string           { return e.id }
func (e Entry) Type() EntryType      { return e.entryType }
func (e Entry) Amount() shared.Money { return e.amount }
func (e Entry) Date() time.Time      { return e.date }
func (e Entry) Description() string  { return e.description }

// NewWallet creates a zero-balance wallet for a shop.
func NewWallet(shopID string) (*Wallet, error) {
	if shopID == "" {
		return nil, shared.NewValidationError("wallet", "shop_id", "shop id is required")
	}

	walletID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate wallet ID: %w", err)
	}

	now := time.Now()
	w := &Wallet{
		id:        walletID.String(),
		shopID:    shopID,
		balance:   *shared.NewBirr(0),
		frozen:    *shared.NewBirr(0),
		version:   0,
		createdAt: now,
		updatedAt: now,
		events:    make([]shared.DomainEvent, 0),
		isNew:     true,
	}
	w.events = append(w.events, NewWalletCreatedEvent(w.id, shopID))
	return w, nil
}

// Deposit credits available balance.
func (w *Wallet) Deposit(amount shared.Money, description string) error {
	if err := w.checkAmount(amount); err != nil {
		return err
	}

	newBalance, err := w.balance.Add(amount)
	if err != nil {
		return err
	}
	w.balance = *newBalance
	w.appendEntry(EntryDeposit, amount, description)
	w.events = append(w.events, NewFundsCreditedEvent(w.id, w.shopID, EntryDeposit, amount))
	return nil
}

// Refund credits available balance from a privileged caller (refund or
// admin top-up). Same balance effect as Deposit, distinct log entry type.
func (w *Wallet) Refund(amount shared.Money, description string) error {
	if err := w.checkAmount(amount); err != nil {
		return err
	}

	newBalance, err := w.balance.Add(amount)
	if err != nil {
		return err
	}
	w.balance = *newBalance
	w.appendEntry(EntryRefund, amount, description)
	w.events = append(w.events, NewFundsCreditedEvent(w.id, w.shopID, EntryRefund, amount))
	return nil
}

// Freeze earmarks available funds against a future fee obligation.
// Requires balance >= amount.
func (w *Wallet) Freeze(amount shared.Money, description string) error {
	if err := w.checkAmount(amount); err != nil {
		return err
	}
	if !w.balance.IsGreaterThanOrEqual(amount) {
		return NewInsufficientBalanceError(w.shopID, w.balance.Amount(), amount.Amount())
	}

	newBalance, err := w.balance.Subtract(amount)
	if err != nil {
		return err
	}
	newFrozen, err := w.frozen.Add(amount)
	if err != nil {
		return err
	}
	w.balance = *newBalance
	w.frozen = *newFrozen
	w.appendEntry(EntryFreeze, amount, description)
	w.events = append(w.events, NewFundsFrozenEvent(w.id, w.shopID, amount))
	return nil
}

// DebitFrozen realizes a platform fee against previously frozen funds.
// Requires frozen >= amount.
func (w *Wallet) DebitFrozen(amount shared.Money, description string) error {
	if err := w.checkAmount(amount); err != nil {
		return err
	}
	if !w.frozen.IsGreaterThanOrEqual(amount) {
		return NewInsufficientFrozenError(w.shopID, w.frozen.Amount(), amount.Amount())
	}

	newFrozen, err := w.frozen.Subtract(amount)
	if err != nil {
		return err
	}
	w.frozen = *newFrozen
	w.appendEntry(EntryFee, amount, description)
	w.events = append(w.events, NewFeeCollectedEvent(w.id, w.shopID, amount))
	return nil
}

// Unfreeze releases earmarked funds back to the available balance.
// Requires frozen >= amount.
func (w *Wallet) Unfreeze(amount shared.Money, description string) error {
	if err := w.checkAmount(amount); err != nil {
		return err
	}
	if !w.frozen.IsGreaterThanOrEqual(amount) {
		return NewInsufficientFrozenError(w.shopID, w.frozen.Amount(), amount.Amount())
	}

	newFrozen, err := w.frozen.Subtract(amount)
	if err != nil {
		return err
	}
	newBalance, err := w.balance.Add(amount)
	if err != nil {
		return err
	}
	w.frozen = *newFrozen
	w.balance = *newBalance
	w.appendEntry(EntryUnfreeze, amount, description)
	w.events = append(w.events, NewFundsUnfrozenEvent(w.id, w.shopID, amount))
	return nil
}

// FreezeQuote is the read-only answer to "what would freezing the fee for
// this price do to the wallet". Computed from a snapshot, mutates nothing.
type FreezeQuote struct {
	CurrentBalance int64
	RequiredFrozen int64
	AvailableAfter int64
	FrozenBalance  int64
}

// QuoteFreeze prices the 2% fee freeze for a listing without touching state.
func (w *Wallet) QuoteFreeze(price shared.Money) FreezeQuote {
	fee := PlatformFee(price)
	return FreezeQuote{
		CurrentBalance: w.balance.Amount(),
		RequiredFrozen: fee.Amount(),
		AvailableAfter: w.balance.Amount() - fee.Amount(),
		FrozenBalance:  w.frozen.Amount(),
	}
}

func (w *Wallet) checkAmount(amount shared.Money) error {
	if !amount.IsPositive() {
		return NewInvalidAmountError(amount.Amount())
	}
	if amount.Currency() != w.balance.Currency() {
		return shared.NewValidationError("wallet", "currency",
			"currency mismatch: wallet holds "+w.balance.Currency())
	}
	return nil
}

func (w *Wallet) appendEntry(t EntryType, amount shared.Money, description string) {
	w.addedEntries = append(w.addedEntries, Entry{
		id:          uuid.NewString(),
		entryType:   t,
		amount:      amount,
		date:        time.Now(),
		description: description,
	})
	w.updatedAt = time.Now()
}

func (w *Wallet) ID() string            { return w.id }
func (w *Wallet) ShopID() string        { return w.shopID }
func (w *Wallet) Balance() shared.Money { return w.balance }
func (w *Wallet) Frozen() shared.Money  { return w.frozen }
func (w *Wallet) Version() int          { return w.version }
func (w *Wallet) CreatedAt() time.Time  { return w.createdAt }
func (w *Wallet) UpdatedAt() time.Time  { return w.updatedAt }

// IsNew reports whether the aggregate was created in this session.
func (w *Wallet) IsNew() bool { return w.isNew }

// AddedEntries returns the log entries recorded since load. The repository
// must insert them in the same transaction as the balance update.
func (w *Wallet) AddedEntries() []Entry {
	entries := make([]Entry, len(w.addedEntries))
	copy(entries, w.addedEntries)
	return entries
}

// ClearDirtyTracking resets change tracking after a successful save.
func (w *Wallet) ClearDirtyTracking() {
	w.addedEntries = nil
	w.isNew = false
}

// IncrementVersionForSave bumps the optimistic-lock version after the
// repository committed the guarded update.
func (w *Wallet) IncrementVersionForSave() {
	w.version++
	w.updatedAt = time.Now()
}

// PullEvents returns and clears recorded domain events.
func (w *Wallet) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(w.events))
	copy(events, w.events)
	w.events = make([]shared.DomainEvent, 0)
	return events
}

// ReconstructionDTO rebuilds a wallet from persistence. Repository use only.
type ReconstructionDTO struct {
	ID        string
	ShopID    string
	Balance   shared.Money
	Frozen    shared.Money
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RebuildFromDTO reconstructs the aggregate without triggering events.
func RebuildFromDTO(dto ReconstructionDTO) *Wallet {
	return &Wallet{
		id:        dto.ID,
		shopID:    dto.ShopID,
		balance:   dto.Balance,
		frozen:    dto.Frozen,
		version:   dto.Version,
		createdAt: dto.CreatedAt,
		updatedAt: dto.UpdatedAt,
	}
}

// EntryReconstructionDTO rebuilds a log entry from persistence.
type EntryReconstructionDTO struct {
	ID          string
	Type        EntryType
	Amount      shared.Money
	Date        time.Time
	Description string
}

// RebuildEntryFromDTO reconstructs a log entry.
func RebuildEntryFromDTO(dto EntryReconstructionDTO) Entry {
	return Entry{
		id:          dto.ID,
		entryType:   dto.Type,
		amount:      dto.Amount,
		date:        dto.Date,
		description: dto.Description,
	}
}

var _ shared.AggregateRoot = (*Wallet)(nil)
