// Package crypto seals third-party OAuth tokens before they are written to
// the database.
package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	nonceSize = 24
	// sealed values carry this prefix so plaintext rows written before
	// encryption was configured can still be read
	sealedPrefix = "sb1:"
)

var ErrDecrypt = errors.New("token cipher: unable to decrypt value")

// TokenCipher encrypts and decrypts short secrets with NaCl secretbox.
// A zero-length key disables encryption (values pass through unchanged).
type TokenCipher struct {
	key     [32]byte
	enabled bool
}

// NewTokenCipher derives a 32 byte key from the given passphrase.
func NewTokenCipher(passphrase string) *TokenCipher {
	if passphrase == "" {
		return &TokenCipher{}
	}
	return &TokenCipher{key: sha256.Sum256([]byte(passphrase)), enabled: true}
}

func (c *TokenCipher) Enabled() bool {
	return c != nil && c.enabled
}

func (c *TokenCipher) Encrypt(plain string) (string, error) {
	if plain == "" || !c.Enabled() {
		return plain, nil
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}

	sealed := secretbox.Seal(nonce[:], []byte(plain), &nonce, &c.key)
	return sealedPrefix + base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (c *TokenCipher) Decrypt(value string) (string, error) {
	if !strings.HasPrefix(value, sealedPrefix) {
		return value, nil
	}
	if !c.Enabled() {
		return "", ErrDecrypt
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(value, sealedPrefix))
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrDecrypt
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])

	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &c.key)
	if !ok {
		return "", ErrDecrypt
	}
	return string(plain), nil
}
