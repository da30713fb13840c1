// Package errors defines the application error type and the mapping from
// domain errors to transport-facing codes. HTTP status selection lives
// here so controllers never switch on domain sentinels themselves.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Gift5848/gethub222-sub001/domain/order"
	"github.com/Gift5848/gethub222-sub001/domain/shared"
	"github.com/Gift5848/gethub222-sub001/domain/shop"
	"github.com/Gift5848/gethub222-sub001/domain/wallet"
)

// ErrorCode classifies an application error.
type ErrorCode string

const (
	// Generic codes
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	// Business codes
	CodeOrderNotFound       ErrorCode = "ORDER_NOT_FOUND"
	CodeInvalidOrderState   ErrorCode = "INVALID_ORDER_STATE"
	CodeWalletNotFound      ErrorCode = "WALLET_NOT_FOUND"
	CodeWalletExists        ErrorCode = "WALLET_EXISTS"
	CodeInsufficientBalance ErrorCode = "INSUFFICIENT_BALANCE"
	CodeInsufficientFrozen  ErrorCode = "INSUFFICIENT_FROZEN_BALANCE"
	CodeInvalidAmount       ErrorCode = "INVALID_AMOUNT"
	CodeShopNotFound        ErrorCode = "SHOP_NOT_FOUND"
	CodeReviewConflict      ErrorCode = "SHOP_ALREADY_REVIEWED"
)

// AppError is the application-level error carried up to the API layer.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode maps the code to an HTTP status.
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation, CodeInvalidAmount:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound, CodeOrderNotFound, CodeWalletNotFound, CodeShopNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeWalletExists, CodeReviewConflict:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeInvalidOrderState, CodeInsufficientBalance, CodeInsufficientFrozen:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an underlying error with a code and message.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common constructors

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// Is reports whether the error carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// AsAppError converts any error to an AppError.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeInternal, "internal server error")
}

// FromDomainError maps a domain error to an application error by sentinel.
// The original message is preserved; only the classification is added.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	msg := err.Error()
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		return Wrap(err, CodeOrderNotFound, msg)
	case errors.Is(err, order.ErrStateConflict):
		return Wrap(err, CodeInvalidOrderState, msg)
	case errors.Is(err, order.ErrForbidden):
		return Wrap(err, CodeForbidden, msg)
	case errors.Is(err, order.ErrEmptyOrderItems),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrTotalNotPositive):
		return Wrap(err, CodeValidation, msg)
	case errors.Is(err, order.ErrConcurrentModification),
		errors.Is(err, wallet.ErrConcurrentModification),
		errors.Is(err, shop.ErrConcurrentModification):
		return Wrap(err, CodeConflict, msg)

	case errors.Is(err, wallet.ErrWalletNotFound):
		return Wrap(err, CodeWalletNotFound, msg)
	case errors.Is(err, wallet.ErrWalletExists):
		return Wrap(err, CodeWalletExists, msg)
	case errors.Is(err, wallet.ErrInsufficientBalance):
		return Wrap(err, CodeInsufficientBalance, msg)
	case errors.Is(err, wallet.ErrInsufficientFrozen):
		return Wrap(err, CodeInsufficientFrozen, msg)
	case errors.Is(err, wallet.ErrInvalidAmount):
		return Wrap(err, CodeInvalidAmount, msg)

	case errors.Is(err, shop.ErrShopNotFound):
		return Wrap(err, CodeShopNotFound, msg)
	case errors.Is(err, shop.ErrReviewConflict):
		return Wrap(err, CodeReviewConflict, msg)

	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, msg)
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, msg)
	case errors.Is(err, shared.ErrForbidden):
		return Wrap(err, CodeForbidden, msg)
	case errors.Is(err, shared.ErrStateConflict):
		return Wrap(err, CodeInvalidOrderState, msg)
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, msg)
	default:
		return Wrap(err, CodeInternal, msg)
	}
}
