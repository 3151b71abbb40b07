package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an Error; handlers map each kind to an HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindStockExceeded
	KindInsufficientStock
	KindEmptyCart
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindNotFound:
		return "NOT_FOUND"
	case KindStockExceeded:
		return "STOCK_EXCEEDED"
	case KindInsufficientStock:
		return "INSUFFICIENT_STOCK"
	case KindEmptyCart:
		return "EMPTY_CART"
	case KindAuth:
		return "AUTH"
	default:
		return "INTERNAL"
	}
}

// Error is the result every core operation reports on a recoverable failure.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

// Is matches the bare sentinels below by kind, so errors.Is(err, ErrNotFound) works
// for any not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Field == "" && t.Message == ""
}

var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrStockExceeded     = &Error{Kind: KindStockExceeded}
	ErrInsufficientStock = &Error{Kind: KindInsufficientStock}
	ErrEmptyCart         = &Error{Kind: KindEmptyCart}
	ErrAuth              = &Error{Kind: KindAuth}
)

// Invalid reports a bad input field.
func Invalid(field, msg string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: msg}
}

// NotFoundf reports a missing product, order or cart line.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// StockExceededf reports a cart quantity above live stock.
func StockExceededf(format string, args ...any) *Error {
	return &Error{Kind: KindStockExceeded, Message: fmt.Sprintf(format, args...)}
}

// InsufficientStockf reports stock that ran out between cart and checkout.
func InsufficientStockf(format string, args ...any) *Error {
	return &Error{Kind: KindInsufficientStock, Message: fmt.Sprintf(format, args...)}
}

// EmptyCart reports a checkout attempted with no lines.
func EmptyCart() *Error {
	return &Error{Kind: KindEmptyCart, Message: "cart is empty"}
}

// AuthFailed reports rejected admin credentials.
func AuthFailed(msg string) *Error {
	return &Error{Kind: KindAuth, Message: msg}
}

// KindOf reports the kind of err, or KindInternal for anything that is not a *Error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
