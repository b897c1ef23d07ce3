package http

import (
	"errors"

	domainErrors "github.com/wekeepgrowing/launch-revenue/internal/domain/errors"
	pkgErrors "github.com/wekeepgrowing/launch-revenue/pkg/errors"
)

// toAppError maps engine errors onto the shared error codes. The message is what the client sees.
func toAppError(err error) *pkgErrors.AppError {
	switch {
	case errors.Is(err, domainErrors.ErrUnauthorized):
		return pkgErrors.NewAppError(pkgErrors.ErrUnauthorized, "You do not own this product", err)
	case errors.Is(err, domainErrors.ErrProductNotFound):
		return pkgErrors.NewAppError(pkgErrors.ErrNotFound, "Product not found", err)
	case errors.Is(err, domainErrors.ErrNotConnected):
		return pkgErrors.NewAppError(pkgErrors.ErrNotConnected, "No payment account connected", err)
	case errors.Is(err, domainErrors.ErrInvalidState):
		return pkgErrors.NewAppError(pkgErrors.ErrInvalidState, "Invalid or tampered link state", err)
	case errors.Is(err, domainErrors.ErrExchangeFailed):
		return pkgErrors.NewAppError(pkgErrors.ErrUpstream, upstreamMessage(err, "Payment platform rejected the authorization code"), err)
	case errors.Is(err, domainErrors.ErrUpstream):
		return pkgErrors.NewAppError(pkgErrors.ErrUpstream, upstreamMessage(err, "Payment platform request failed"), err)
	default:
		return pkgErrors.NewAppError(pkgErrors.ErrInternal, "Internal server error", err)
	}
}

// upstreamMessage prefers the payment platform's own message over the generic fallback.
func upstreamMessage(err error, fallback string) string {
	var upstream *domainErrors.UpstreamError
	if errors.As(err, &upstream) && upstream.Message != "" {
		return upstream.Message
	}
	return fallback
}
