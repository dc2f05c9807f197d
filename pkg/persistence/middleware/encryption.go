package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/lobster/pkg/ports"
)

// envelopePrefix marks values written by the encryption middleware.
const envelopePrefix = "enc:v1:"

// ErrNotEncrypted is returned when a stored value is not an encryption envelope.
var ErrNotEncrypted = errors.New("value is missing encrypted data envelope")

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.Cache
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that encrypts values using AES-GCM.
func NewEncryptionMiddleware(config EncryptionConfig) (Middleware, error) {
	if len(config.ActiveKey) != 32 {
		return nil, fmt.Errorf("active key must be 32 bytes (AES-256), got %d", len(config.ActiveKey))
	}
	for i, k := range config.FallbackKeys {
		if len(k) != 32 {
			return nil, fmt.Errorf("fallback key %d must be 32 bytes (AES-256), got %d", i, len(k))
		}
	}
	return func(next ports.Cache) ports.Cache {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}, nil
}

func (m *encryptionMiddleware) SetString(ctx context.Context, key, value string) error {
	ciphertext, err := encrypt([]byte(value), m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt value: %w", err)
	}
	return m.next.SetString(ctx, key, envelopePrefix+base64.StdEncoding.EncodeToString(ciphertext))
}

func (m *encryptionMiddleware) GetString(ctx context.Context, key string) (string, error) {
	envelope, err := m.next.GetString(ctx, key)
	if err != nil {
		return "", err
	}

	// Plain values are rejected rather than passed through.
	encoded, ok := strings.CutPrefix(envelope, envelopePrefix)
	if !ok {
		return "", ErrNotEncrypted
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt value: %w", err)
	}
	return string(plainText), nil
}

func (m *encryptionMiddleware) Remove(ctx context.Context, key string) error {
	return m.next.Remove(ctx, key)
}

func (m *encryptionMiddleware) Keys(ctx context.Context, prefix string) ([]string, error) {
	lister, ok := m.next.(ports.KeyLister)
	if !ok {
		return nil, ports.ErrKeysUnsupported
	}
	return lister.Keys(ctx, prefix)
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	// Try active key first
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	ciphertextBytes := ciphertext[gcm.NonceSize():]

	return gcm.Open(nil, nonce, ciphertextBytes, nil)
}
