package service

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"LoanSentinel/internal/model"
	"LoanSentinel/internal/recorder"
)

// IdentityStore resolves borrowers and persists what is learned about them.
//
//go:generate mockgen -destination=mocks/mock_interface.go -source=interface.go
type IdentityStore interface {
	ResolveIdentity(ctx context.Context, wallet string) (*model.Identity, error)
	SaveCredential(ctx context.Context, wallet, ciphertext string) error
	SaveIncome(ctx context.Context, wallet string, income json.RawMessage) error
	WalletAccounts(ctx context.Context, wallet string) ([]string, error)
}

// CredentialVault seals and opens provider access tokens.
type CredentialVault interface {
	Seal(plaintext string) (string, error)
	Open(identity *model.Identity) (model.ProviderCredential, error)
}

// AccountData reads account state from the data provider. Transactions may
// be served from a cache; Refresh always asks the provider.
type AccountData interface {
	AvailableBalance(ctx context.Context, cred model.ProviderCredential, accountID string) (decimal.Decimal, error)
	Transactions(ctx context.Context, wallet, accountID string, cred model.ProviderCredential, windowDays int) ([]model.Transaction, error)
	Refresh(ctx context.Context, wallet, accountID string, cred model.ProviderCredential, windowDays int) ([]model.Transaction, error)
	Forget(ctx context.Context, wallet, accountID string, windowDays int) error
	ExchangePublicToken(ctx context.Context, publicToken string) (model.ProviderCredential, error)
	Income(ctx context.Context, cred model.ProviderCredential) (json.RawMessage, error)
}

// AssessmentRecorder keeps an audit trail of computed terms.
type AssessmentRecorder interface {
	RecordAssessment(evt *recorder.AssessmentEvent) error
}
