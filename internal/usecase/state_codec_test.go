package usecase

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/wekeepgrowing/launch-revenue/internal/domain/errors"
	"github.com/wekeepgrowing/launch-revenue/internal/infrastructure/crypto"
)

const testStateKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestStateCodec_RoundTrip(t *testing.T) {
	sealer, err := crypto.NewAESEncryptionService(testStateKey)
	require.NoError(t, err)

	codecs := map[string]*StateCodec{
		"plain":  NewStateCodec(nil),
		"sealed": NewStateCodec(sealer),
	}

	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			state := LinkState{ProductID: "prod-1", UserID: "user-1"}

			token, err := codec.Encode(state)
			require.NoError(t, err)
			assert.NotContains(t, token, "=")

			decoded, err := codec.Decode(token)
			require.NoError(t, err)
			assert.Equal(t, state, decoded)
		})
	}
}

func TestStateCodec_PlainFormat(t *testing.T) {
	token, err := NewStateCodec(nil).Encode(LinkState{ProductID: "p", UserID: "u"})
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.JSONEq(t, `{"productId":"p","userId":"u"}`, string(raw))

	padded := base64.StdEncoding.EncodeToString(raw)
	decoded, err := NewStateCodec(nil).Decode(padded)
	require.NoError(t, err)
	assert.Equal(t, "p", decoded.ProductID)
}

func TestStateCodec_DecodeRejects(t *testing.T) {
	sealer, err := crypto.NewAESEncryptionService(testStateKey)
	require.NoError(t, err)
	sealed := NewStateCodec(sealer)

	validSealed, err := sealed.Encode(LinkState{ProductID: "p", UserID: "u"})
	require.NoError(t, err)
	iv, ct, _ := strings.Cut(validSealed, ".")
	flipped := "A"
	if ct[0] == 'A' {
		flipped = "B"
	}
	tampered := iv + "." + flipped + ct[1:]

	tests := []struct {
		name  string
		codec *StateCodec
		token string
	}{
		{"empty", NewStateCodec(nil), ""},
		{"not base64", NewStateCodec(nil), "%%%"},
		{"not json", NewStateCodec(nil), base64.RawURLEncoding.EncodeToString([]byte("nope"))},
		{"missing user", NewStateCodec(nil), base64.RawURLEncoding.EncodeToString([]byte(`{"productId":"p"}`))},
		{"missing product", NewStateCodec(nil), base64.RawURLEncoding.EncodeToString([]byte(`{"userId":"u"}`))},
		{"sealed without separator", sealed, "abc"},
		{"sealed tampered", sealed, tampered},
		{"plain token to sealed codec", sealed, base64.RawURLEncoding.EncodeToString([]byte(`{"productId":"p","userId":"u"}`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.codec.Decode(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, domainErrors.ErrInvalidState)
		})
	}
}
