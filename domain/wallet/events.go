package wallet

import (
	"time"

	"github.com/Gift5848/gethub222-sub001/domain/shared"
)

type WalletCreatedEvent struct {
	walletID   string
	shopID     string
	occurredOn time.Time
}

func NewWalletCreatedEvent(walletID, shopID string) *WalletCreatedEvent {
	return &WalletCreatedEvent{walletID: walletID, shopID: shopID, occurredOn: time.Now()}
}

func (e *WalletCreatedEvent) EventName() string      { return "wallet.created" }
func (e *WalletCreatedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *WalletCreatedEvent) GetAggregateID() string { return e.walletID }
func (e *WalletCreatedEvent) ShopID() string         { return e.shopID }

// FundsCreditedEvent covers deposits, refunds and admin top-ups; the entry
// type distinguishes them.
type FundsCreditedEvent struct {
	walletID   string
	shopID     string
	entryType  EntryType
	amount     shared.Money
	occurredOn time.Time
}

func NewFundsCreditedEvent(walletID, shopID string, t EntryType, amount shared.Money) *FundsCreditedEvent {
	return &FundsCreditedEvent{
		walletID:   walletID,
		shopID:     shopID,
		entryType:  t,
		amount:     amount,
		occurredOn: time.Now(),
	}
}

func (e *FundsCreditedEvent) EventName() string      { return "wallet.credited" }
func (e *FundsCreditedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *FundsCreditedEvent) GetAggregateID() string { return e.walletID }
func (e *FundsCreditedEvent) ShopID() string         { return e.shopID }
func (e *FundsCreditedEvent) EntryType() EntryType   { return e.entryType }
func (e *FundsCreditedEvent) Amount() shared.Money   { return e.amount }

type FundsFrozenEvent struct {
	walletID   string
	shopID     string
	amount     shared.Money
	occurredOn time.Time
}

func NewFundsFrozenEvent(walletID, shopID string, amount shared.Money) *FundsFrozenEvent {
	return &FundsFrozenEvent{walletID: walletID, shopID: shopID, amount: amount, occurredOn: time.Now()}
}

func (e *FundsFrozenEvent) EventName() string      { return "wallet.frozen" }
func (e *FundsFrozenEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *FundsFrozenEvent) GetAggregateID() string { return e.walletID }
func (e *FundsFrozenEvent) ShopID() string         { return e.shopID }
func (e *FundsFrozenEvent) Amount() shared.Money   { return e.amount }

type FundsUnfrozenEvent struct {
	walletID   string
	shopID     string
	amount     shared.Money
	occurredOn time.Time
}

func NewFundsUnfrozenEvent(walletID, shopID string, amount shared.Money) *FundsUnfrozenEvent {
	return &FundsUnfrozenEvent{walletID: walletID, shopID: shopID, amount: amount, occurredOn: time.Now()}
}

func (e *FundsUnfrozenEvent) EventName() string      { return "wallet.unfrozen" }
func (e *FundsUnfrozenEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *FundsUnfrozenEvent) GetAggregateID() string { return e.walletID }
func (e *FundsUnfrozenEvent) ShopID() string         { return e.shopID }
func (e *FundsUnfrozenEvent) Amount() shared.Money   { return e.amount }

// FeeCollectedEvent records realized platform fee revenue.
type FeeCollectedEvent struct {
	walletID   string
	shopID     string
	amount     shared.Money
	occurredOn time.Time
}

func NewFeeCollectedEvent(walletID, shopID string, amount shared.Money) *FeeCollectedEvent {
	return &FeeCollectedEvent{walletID: walletID, shopID: shopID, amount: amount, occurredOn: time.Now()}
}

func (e *FeeCollectedEvent) EventName() string      { return "wallet.fee_collected" }
func (e *FeeCollectedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *FeeCollectedEvent) GetAggregateID() string { return e.walletID }
func (e *FeeCollectedEvent) ShopID() string         { return e.shopID }
func (e *FeeCollectedEvent) Amount() shared.Money   { return e.amount }
