// Package apperror defines the error taxonomy shared by the stores, the sale
// engine and the HTTP delivery layer.
package apperror

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind categorizes application errors.
type Kind int

const (
	// KindStore indicates an underlying persistence failure.
	KindStore Kind = iota
	// KindValidation indicates missing or malformed input.
	KindValidation
	// KindNotFound indicates an unknown product, supply, discount or sale.
	KindNotFound
	// KindInsufficientStock indicates a business-rule rejection on stock.
	KindInsufficientStock
	// KindConflict indicates a concurrent write was detected; the caller may retry.
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindInsufficientStock:
		return "insufficient_stock"
	case KindConflict:
		return "conflict"
	default:
		return "store"
	}
}

// Error is the typed error returned by every operation in this module.
type Error struct {
	Kind    Kind
	Message string
	Cause   error

	// Shortage is set for KindInsufficientStock.
	Shortage *Shortage
}

// Shortage describes the first supply that blocked a sale.
type Shortage struct {
	SupplyID   uint            `json:"supply_id"`
	SupplyName string          `json:"supply_name"`
	Available  decimal.Decimal `json:"available"`
	Required   decimal.Decimal `json:"required"`
	Unit       string          `json:"unit"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Retryable reports whether the whole operation may be retried.
func (e *Error) Retryable() bool {
	return e.Kind == KindConflict
}

// Validation returns a KindValidation error.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a KindNotFound error for the given entity.
func NotFound(entity string, id uint) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %d not found", entity, id)}
}

// Insufficient returns a KindInsufficientStock error.
func Insufficient(s Shortage) *Error {
	return &Error{
		Kind: KindInsufficientStock,
		Message: fmt.Sprintf("insufficient stock of %s: available %s %s, required %s",
			s.SupplyName, s.Available.String(), s.Unit, s.Required.String()),
		Shortage: &s,
	}
}

// Conflict returns a retryable KindConflict error.
func Conflict(cause error) *Error {
	return &Error{Kind: KindConflict, Message: "concurrent update detected", Cause: cause}
}

// Store wraps a persistence failure for the named operation.
func Store(op string, cause error) *Error {
	return &Error{Kind: KindStore, Message: op + " failed", Cause: cause}
}

// KindOf returns the kind of err. Errors outside the taxonomy are KindStore.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStore
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

// ShortageOf extracts the shortage details from an insufficient stock error.
func ShortageOf(err error) (*Shortage, bool) {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Shortage != nil {
		return appErr.Shortage, true
	}
	return nil, false
}
