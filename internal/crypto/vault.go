package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"

	"LoanSentinel/internal/model"
)

const (
	keySize   = 32
	nonceSize = 24
)

var (
	// ErrNoCredential is returned when a user has not linked a provider token.
	ErrNoCredential = errors.New("no provider credential linked")
	// ErrDecrypt is returned when a stored ciphertext cannot be opened.
	ErrDecrypt = errors.New("could not decrypt credential")
)

// Vault encrypts provider access tokens at rest with NaCl secretbox.
type Vault struct {
	key  [keySize]byte
	rand io.Reader
}

// NewVault creates a vault from a hex encoded 32-byte key.
func NewVault(hexKey string) (*Vault, error) {
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decode secret key: %w", err)
	}
	if len(raw) != keySize {
		return nil, fmt.Errorf("secret key must be %d bytes, got %d", keySize, len(raw))
	}
	v := &Vault{rand: rand.Reader}
	copy(v.key[:], raw)
	return v, nil
}

// Seal encrypts plaintext and returns base64(nonce || box).
func (v *Vault) Seal(plaintext string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(v.rand, nonce[:]); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	out := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &v.key)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Open decrypts the access token stored on an identity.
func (v *Vault) Open(identity *model.Identity) (model.ProviderCredential, error) {
	if !identity.HasCredential() {
		return model.ProviderCredential{}, ErrNoCredential
	}
	plaintext, err := v.open(identity.EncryptedToken)
	if err != nil {
		return model.ProviderCredential{}, err
	}
	return model.ProviderCredential{AccessToken: plaintext}, nil
}

func (v *Vault) open(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	if len(raw) < nonceSize+secretbox.Overhead {
		return "", fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &v.key)
	if !ok {
		return "", fmt.Errorf("%w: authentication failed", ErrDecrypt)
	}
	return string(plain), nil
}
