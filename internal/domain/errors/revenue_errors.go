package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates the caller does not own the product
	ErrUnauthorized = errors.New("caller does not own this product")

	// ErrProductNotFound indicates the referenced product does not exist
	ErrProductNotFound = errors.New("product not found")

	// ErrNotConnected indicates the operation needs a linked payment account
	ErrNotConnected = errors.New("no payment account connected")

	// ErrInvalidState indicates the OAuth state token could not be decoded
	ErrInvalidState = errors.New("invalid oauth state")

	// ErrExchangeFailed matches an UpstreamError raised by the OAuth code exchange
	ErrExchangeFailed = errors.New("oauth code exchange failed")

	// ErrUpstream matches any UpstreamError
	ErrUpstream = errors.New("payment platform error")
)

// Upstream operations
const (
	OpExchangeCode      = "exchange_code"
	OpListSubscriptions = "list_subscriptions"
	OpListProducts      = "list_products"
)

// UpstreamError is returned when the payment platform rejects a call.
// Message carries the platform's own message when one was available.
type UpstreamError struct {
	Op      string
	Message string
	Cause   error
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
	return e.Op
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match ErrUpstream for every op and ErrExchangeFailed for the code exchange.
func (e *UpstreamError) Is(target error) bool {
	switch target {
	case ErrUpstream:
		return true
	case ErrExchangeFailed:
		return e.Op == OpExchangeCode
	}
	return false
}

// NewUpstreamError creates a new UpstreamError
func NewUpstreamError(op, message string, cause error) *UpstreamError {
	return &UpstreamError{Op: op, Message: message, Cause: cause}
}
