package order

import (
	"errors"
	"fmt"

	"github.com/Gift5848/gethub222-sub001/domain/shared"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrOrderNotFound the order does not exist (or was cancelled).
	ErrOrderNotFound = errors.New("order not found")

	// ErrConcurrentModification optimistic lock conflict, retryable.
	ErrConcurrentModification = errors.New("order was modified by another transaction, please retry")

	// ErrStateConflict the transition is invalid from the current status.
	ErrStateConflict = errors.New("invalid order state transition")

	// ErrForbidden the actor lacks the role or ownership for the transition.
	ErrForbidden = errors.New("actor is not allowed to perform this transition")

	// ErrEmptyOrderItems the cart is empty.
	ErrEmptyOrderItems = errors.New("order must have at least one item")

	// ErrInvalidQuantity a line item quantity is not positive.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrTotalNotPositive the order total must be positive.
	ErrTotalNotPositive = errors.New("order total amount must be positive")
)

// NewOrderNotFoundError creates an "order not found" error with stack.
func NewOrderNotFoundError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrOrderNotFound,
		message:  "order not found: " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError creates an optimistic-lock conflict error.
func NewConcurrentModificationError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrConcurrentModification,
		message:  "order " + orderID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

// NewStateConflictError reports an invalid transition with the current
// status so the caller can act on it.
func NewStateConflictError(orderID string, current Status, t Transition) error {
	return &orderDomainError{
		sentinel: ErrStateConflict,
		message:  fmt.Sprintf("order %s: cannot %s while %s", orderID, t, current),
		stack:    shared.CaptureStack(3),
	}
}

// NewForbiddenError reports a failed actor capability check.
func NewForbiddenError(actorID string, t Transition) error {
	return &orderDomainError{
		sentinel: ErrForbidden,
		message:  fmt.Sprintf("actor %s may not %s this order", actorID, t),
		stack:    shared.CaptureStack(3),
	}
}

type orderDomainError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *orderDomainError) Error() string {
	return e.message
}

func (e *orderDomainError) Unwrap() error {
	return e.sentinel
}

// Stack implements shared.Stacker.
func (e *orderDomainError) Stack() []string {
	return shared.FormatStack(e.stack)
}
