package crypto

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LoanSentinel/internal/model"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestVault_SealOpen(t *testing.T) {
	v, err := NewVault(testKey)
	require.NoError(t, err)

	sealed, err := v.Seal("access-sandbox-123")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "access-sandbox-123")

	cred, err := v.Open(&model.Identity{Wallet: "w1", EncryptedToken: sealed})
	require.NoError(t, err)
	assert.Equal(t, "access-sandbox-123", cred.AccessToken)

	// fresh nonce per seal
	again, err := v.Seal("access-sandbox-123")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again)
}

func TestVault_OpenErrors(t *testing.T) {
	v, err := NewVault(testKey)
	require.NoError(t, err)

	_, err = v.Open(&model.Identity{Wallet: "w1"})
	assert.ErrorIs(t, err, ErrNoCredential)

	_, err = v.Open(nil)
	assert.ErrorIs(t, err, ErrNoCredential)

	_, err = v.Open(&model.Identity{EncryptedToken: "%%%not-base64"})
	assert.ErrorIs(t, err, ErrDecrypt)

	_, err = v.Open(&model.Identity{EncryptedToken: base64.StdEncoding.EncodeToString([]byte("short"))})
	assert.ErrorIs(t, err, ErrDecrypt)

	sealed, err := v.Seal("token")
	require.NoError(t, err)
	other, err := NewVault(strings.Repeat("ff", 32))
	require.NoError(t, err)
	_, err = other.Open(&model.Identity{EncryptedToken: sealed})
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestNewVault_BadKey(t *testing.T) {
	_, err := NewVault("zz")
	assert.Error(t, err)

	_, err = NewVault("0011")
	assert.Error(t, err)
}

func TestProviderCredential_Redacted(t *testing.T) {
	cred := model.ProviderCredential{AccessToken: "secret"}
	assert.NotContains(t, cred.String(), "secret")
}
