package usecase

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	domainErrors "github.com/wekeepgrowing/launch-revenue/internal/domain/errors"
	"github.com/wekeepgrowing/launch-revenue/internal/infrastructure/crypto"
)

// LinkState is carried through the OAuth round trip.
type LinkState struct {
	ProductID string `json:"productId"`
	UserID    string `json:"userId"`
}

// StateCodec encodes LinkState into the OAuth state parameter.
//
// Without a sealer the token is base64 JSON: malformed input fails to decode, but
// the token is not signed and a caller could forge one. CompleteLink therefore
// re-checks the identity of the caller against both the state and the product owner.
// With a sealer the JSON is AES-GCM sealed and any modification fails to decode.
type StateCodec struct {
	sealer crypto.EncryptionService
}

// NewStateCodec creates a codec. sealer may be nil.
func NewStateCodec(sealer crypto.EncryptionService) *StateCodec {
	return &StateCodec{sealer: sealer}
}

func (c *StateCodec) Encode(state LinkState) (string, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("failed to marshal state: %w", err)
	}

	if c.sealer == nil {
		return base64.RawURLEncoding.EncodeToString(payload), nil
	}

	ciphertext, iv, err := c.sealer.Encrypt(payload)
	if err != nil {
		return "", fmt.Errorf("failed to seal state: %w", err)
	}
	return iv + "." + ciphertext, nil
}

// Decode returns ErrInvalidState for anything that is not a complete token.
func (c *StateCodec) Decode(token string) (LinkState, error) {
	var state LinkState

	payload, err := c.open(strings.TrimSpace(token))
	if err != nil {
		return state, fmt.Errorf("%w: %v", domainErrors.ErrInvalidState, err)
	}

	if err := json.Unmarshal(payload, &state); err != nil {
		return state, fmt.Errorf("%w: %v", domainErrors.ErrInvalidState, err)
	}

	if state.ProductID == "" || state.UserID == "" {
		return state, fmt.Errorf("%w: missing product or user", domainErrors.ErrInvalidState)
	}

	return state, nil
}

func (c *StateCodec) open(token string) ([]byte, error) {
	if token == "" {
		return nil, fmt.Errorf("empty token")
	}

	if c.sealer == nil {
		// Accept padded standard encodings too; some clients re-encode the parameter.
		if payload, err := base64.RawURLEncoding.DecodeString(token); err == nil {
			return payload, nil
		}
		return base64.StdEncoding.DecodeString(token)
	}

	iv, ciphertext, ok := strings.Cut(token, ".")
	if !ok {
		return nil, fmt.Errorf("malformed sealed token")
	}
	return c.sealer.Decrypt(ciphertext, iv)
}
