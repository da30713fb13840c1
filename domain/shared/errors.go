/*
Package shared holds the building blocks common to every subdomain:
the Money value object, domain event contracts, the aggregate root
interface, unit-of-work abstractions and error plumbing.

Error design:
1. Subdomains define sentinel errors for errors.Is() checks.
2. DomainError captures the stack at creation time and formats it lazily.
3. Domain errors carry no transport concepts (no HTTP status codes).
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Sentinel errors shared across subdomains. They carry no context of their
// own; wrap them in a DomainError for that.
var (
	// ErrNotFound resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict resource conflict (concurrent modification, unique constraint).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput validation failed; caller's fault, not retryable.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden the actor lacks the role or ownership for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrStateConflict the operation is incompatible with current state.
	ErrStateConflict = errors.New("state conflict")
)

// DomainError is a structured error carrying business context and the stack
// of its creation point. Supports errors.Is() and errors.As() via Unwrap.
type DomainError struct {
	// Err is the underlying sentinel, used by errors.Is().
	Err error

	// Entity names the aggregate the error belongs to ("order", "wallet").
	Entity string

	// Message is the human-readable description.
	Message string

	// Field optionally names the offending field for validation errors.
	Field string

	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured stack on demand (only when logging).
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack captures the current call stack. skip is usually 3:
// Callers, CaptureStack, and the NewXxxError constructor.
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders stack frames, filtering runtime internals; at most 10 frames.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// NewNotFoundError creates a "not found" domain error.
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewConflictError creates a "conflict" domain error.
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError creates a "validation failed" domain error.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewForbiddenError creates a "forbidden" domain error.
func NewForbiddenError(entity, reason string) error {
	return &DomainError{
		Err:     ErrForbidden,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewStateConflictError creates a "state conflict" domain error.
func NewStateConflictError(entity, reason string) error {
	return &DomainError{
		Err:     ErrStateConflict,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// Stacker is implemented by errors that carry a creation-point stack.
// The API layer uses it to extract stacks uniformly for logging.
type Stacker interface {
	Stack() []string
}
