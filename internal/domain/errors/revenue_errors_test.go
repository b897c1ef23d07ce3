package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpstreamError_Is(t *testing.T) {
	exchange := NewUpstreamError(OpExchangeCode, "invalid_grant", nil)
	listing := NewUpstreamError(OpListSubscriptions, "", errors.New("timeout"))

	assert.True(t, errors.Is(exchange, ErrExchangeFailed))
	assert.True(t, errors.Is(exchange, ErrUpstream))
	assert.False(t, errors.Is(listing, ErrExchangeFailed))
	assert.True(t, errors.Is(fmt.Errorf("refresh: %w", listing), ErrUpstream))

	assert.Equal(t, "exchange_code: invalid_grant", exchange.Error())
	assert.Equal(t, "list_subscriptions: timeout", listing.Error())
}
