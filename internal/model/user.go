package model

import (
	"encoding/json"
	"time"
)

// Identity is a borrower resolved from a wallet ID.
type Identity struct {
	ID             int64           `json:"id"`
	Wallet         string          `json:"wallet"`
	EncryptedToken string          `json:"-"`
	Income         json.RawMessage `json:"income,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// HasCredential reports whether a provider token has been linked.
func (i *Identity) HasCredential() bool {
	return i != nil && i.EncryptedToken != ""
}

// ProviderCredential is a decrypted provider access token. It lives only
// for the duration of a request.
type ProviderCredential struct {
	AccessToken string
}

func (c ProviderCredential) String() string { return "ProviderCredential{redacted}" }

// GoString keeps the token out of %#v output as well.
func (c ProviderCredential) GoString() string { return c.String() }

// LinkedAccount is a (wallet, account) pair with a persisted transaction window.
type LinkedAccount struct {
	Wallet    string
	AccountID string
}
