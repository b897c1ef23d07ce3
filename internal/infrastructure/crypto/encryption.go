package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"
)

// EncryptionService seals short values (OAuth state tokens) with AES-256-GCM.
type EncryptionService interface {
	Encrypt(plaintext []byte) (ciphertext, iv string, err error)
	Decrypt(ciphertext, iv string) ([]byte, error)
}

type AESEncryptionService struct {
	gcm cipher.AEAD
}

// NewAESEncryptionService builds the service from a 64 hex char key.
func NewAESEncryptionService(hexKey string) (*AESEncryptionService, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, errors.New("invalid encryption key format")
	}
	if len(key) != 32 {
		return nil, errors.New("encryption key must be 32 bytes (64 hex chars)")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &AESEncryptionService{gcm: gcm}, nil
}

// Encrypt returns URL-safe base64 ciphertext and nonce.
func (s *AESEncryptionService) Encrypt(plaintext []byte) (string, string, error) {
	iv := make([]byte, s.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", "", err
	}

	ciphertext := s.gcm.Seal(nil, iv, plaintext, nil)

	return base64.RawURLEncoding.EncodeToString(ciphertext),
		base64.RawURLEncoding.EncodeToString(iv),
		nil
}

func (s *AESEncryptionService) Decrypt(ciphertextB64, ivB64 string) ([]byte, error) {
	ciphertext, err := base64.RawURLEncoding.DecodeString(ciphertextB64)
	if err != nil {
		return nil, err
	}

	iv, err := base64.RawURLEncoding.DecodeString(ivB64)
	if err != nil {
		return nil, err
	}
	if len(iv) != s.gcm.NonceSize() {
		return nil, errors.New("invalid nonce size")
	}

	return s.gcm.Open(nil, iv, ciphertext, nil)
}
