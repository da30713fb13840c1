package wallet

import (
	"errors"
	"fmt"

	"github.com/Gift5848/gethub222-sub001/domain/shared"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrWalletNotFound the shop has no wallet.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrWalletExists a wallet already exists for the shop.
	ErrWalletExists = errors.New("wallet already exists for shop")

	// ErrInvalidAmount the amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientBalance the available balance cannot cover the operation.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInsufficientFrozen the frozen balance cannot cover the operation.
	ErrInsufficientFrozen = errors.New("insufficient frozen balance")

	// ErrConcurrentModification optimistic lock conflict; the caller's unit
	// of work retries on this.
	ErrConcurrentModification = errors.New("wallet was modified by another transaction, please retry")
)

// NewWalletNotFoundError creates a "wallet not found" error with stack.
func NewWalletNotFoundError(shopID string) error {
	return &walletDomainError{
		sentinel: ErrWalletNotFound,
		message:  "no wallet for shop " + shopID,
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidAmountError creates an invalid-amount validation error.
func NewInvalidAmountError(amount int64) error {
	return &walletDomainError{
		sentinel: ErrInvalidAmount,
		message:  fmt.Sprintf("amount must be positive, got %d", amount),
		stack:    shared.CaptureStack(3),
	}
}

// NewInsufficientBalanceError carries the current balance so the caller can
// report how much was actually available.
func NewInsufficientBalanceError(shopID string, balance, requested int64) error {
	return &walletDomainError{
		sentinel: ErrInsufficientBalance,
		message:  fmt.Sprintf("shop %s: balance %d cannot cover %d", shopID, balance, requested),
		stack:    shared.CaptureStack(3),
	}
}

// NewInsufficientFrozenError carries the current frozen balance.
func NewInsufficientFrozenError(shopID string, frozen, requested int64) error {
	return &walletDomainError{
		sentinel: ErrInsufficientFrozen,
		message:  fmt.Sprintf("shop %s: frozen %d cannot cover %d", shopID, frozen, requested),
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError creates an optimistic-lock conflict error.
func NewConcurrentModificationError(walletID string) error {
	return &walletDomainError{
		sentinel: ErrConcurrentModification,
		message:  "wallet " + walletID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

type walletDomainError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *walletDomainError) Error() string {
	return e.message
}

func (e *walletDomainError) Unwrap() error {
	return e.sentinel
}

// Stack implements shared.Stacker.
func (e *walletDomainError) Stack() []string {
	return shared.FormatStack(e.stack)
}
