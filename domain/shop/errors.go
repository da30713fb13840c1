package shop

import (
	"errors"
	"fmt"

	"github.com/Gift5848/gethub222-sub001/domain/shared"
)

var (
	// ErrShopNotFound the shop does not exist.
	ErrShopNotFound = errors.New("shop not found")

	// ErrReviewConflict the request was already reviewed.
	ErrReviewConflict = errors.New("shop request already reviewed")

	// ErrConcurrentModification optimistic lock conflict, retryable.
	ErrConcurrentModification = errors.New("shop was modified by another transaction, please retry")
)

// NewShopNotFoundError creates a "shop not found" error with stack.
func NewShopNotFoundError(shopID string) error {
	return &shopDomainError{
		sentinel: ErrShopNotFound,
		message:  "shop not found: " + shopID,
		stack:    shared.CaptureStack(3),
	}
}

// NewReviewConflictError reports a second review attempt on a decided
// request.
func NewReviewConflictError(shopID string, current ApprovalStatus) error {
	return &shopDomainError{
		sentinel: ErrReviewConflict,
		message:  fmt.Sprintf("shop %s: already %s, review is one-shot", shopID, current),
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError creates an optimistic-lock conflict error.
func NewConcurrentModificationError(shopID string) error {
	return &shopDomainError{
		sentinel: ErrConcurrentModification,
		message:  "shop " + shopID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

type shopDomainError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *shopDomainError) Error() string {
	return e.message
}

func (e *shopDomainError) Unwrap() error {
	return e.sentinel
}

// Stack implements shared.Stacker.
func (e *shopDomainError) Stack() []string {
	return shared.FormatStack(e.stack)
}
