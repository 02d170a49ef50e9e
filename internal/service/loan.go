package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"LoanSentinel/internal/calculator"
	"LoanSentinel/internal/model"
	"LoanSentinel/internal/recorder"
	"LoanSentinel/internal/risk"
)

// LoanTermsRequest asks for the terms of a loan of LoanSize against the
// given wallet's linked account.
type LoanTermsRequest struct {
	LoanSize decimal.Decimal
	Account  string
	Wallet   string
}

// LoanService derives loan terms from a borrower's linked bank account.
type LoanService struct {
	identities IdentityStore
	vault      CredentialVault
	accounts   AccountData
	recorder   AssessmentRecorder
	policy     risk.Policy
	windowDays int
	logger     *logrus.Logger
}

// NewLoanService wires the service. rec may be nil.
func NewLoanService(identities IdentityStore, vault CredentialVault, accounts AccountData, rec AssessmentRecorder, policy risk.Policy, windowDays int, logger *logrus.Logger) *LoanService {
	return &LoanService{
		identities: identities,
		vault:      vault,
		accounts:   accounts,
		recorder:   rec,
		policy:     policy,
		windowDays: windowDays,
		logger:     logger,
	}
}

// GetLoanTerms computes collateral percent, interest rate and max loan for
// the request. The request is validated before any collaborator is called.
func (s *LoanService) GetLoanTerms(ctx context.Context, req LoanTermsRequest) (model.LoanTermsResponse, error) {
	if !req.LoanSize.IsPositive() {
		return model.LoanTermsResponse{}, fmt.Errorf("%w: loan size must be positive, got %s", risk.ErrInvalidRequest, req.LoanSize)
	}
	if err := requireField("wallet", req.Wallet); err != nil {
		return model.LoanTermsResponse{}, err
	}
	if err := requireField("account", req.Account); err != nil {
		return model.LoanTermsResponse{}, err
	}

	cred, err := s.credential(ctx, req.Wallet)
	if err != nil {
		return model.LoanTermsResponse{}, err
	}

	balance, err := s.accounts.AvailableBalance(ctx, cred, req.Account)
	if err != nil {
		return model.LoanTermsResponse{}, upstream(StageFetchBalance, err)
	}
	// The walk starts from the live balance, so the window must be just as fresh.
	txns, err := s.accounts.Refresh(ctx, req.Wallet, req.Account, cred, s.windowDays)
	if err != nil {
		return model.LoanTermsResponse{}, upstream(StageFetchTransactions, err)
	}

	riskBase, lowIndex := calculator.LowWaterMark(balance, txns)
	terms, err := risk.ComputeLoanTerms(riskBase, req.LoanSize, s.policy)
	if err != nil {
		return model.LoanTermsResponse{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"wallet":             req.Wallet,
		"account":            req.Account,
		"loan_size":          req.LoanSize.String(),
		"balance":            balance.String(),
		"risk_base":          riskBase.String(),
		"low_index":          lowIndex,
		"transactions":       len(txns),
		"collateral_percent": terms.CollateralPercent.String(),
		"ir":                 terms.InterestRate.String(),
	}).Info("loan terms computed")

	if s.recorder != nil {
		evt := &recorder.AssessmentEvent{
			Wallet:           req.Wallet,
			AccountID:        req.Account,
			LoanSize:         req.LoanSize,
			Balance:          balance,
			TransactionCount: len(txns),
			Terms:            terms,
		}
		if err := s.recorder.RecordAssessment(evt); err != nil {
			s.logger.WithError(err).Warn("record assessment failed")
		}
	}

	return terms.Response(), nil
}

// LinkAccount exchanges a provider link token and stores the resulting
// access token encrypted on the wallet's record.
func (s *LoanService) LinkAccount(ctx context.Context, wallet, publicToken string) error {
	if err := requireField("wallet", wallet); err != nil {
		return err
	}
	if err := requireField("public token", publicToken); err != nil {
		return err
	}
	if _, err := s.identities.ResolveIdentity(ctx, wallet); err != nil {
		return upstream(StageResolveIdentity, err)
	}

	cred, err := s.accounts.ExchangePublicToken(ctx, publicToken)
	if err != nil {
		return upstream(StageExchangeToken, err)
	}
	sealed, err := s.vault.Seal(cred.AccessToken)
	if err != nil {
		return upstream(StageEncryptCredential, err)
	}
	if err := s.identities.SaveCredential(ctx, wallet, sealed); err != nil {
		return upstream(StageSaveCredential, err)
	}
	s.forgetWindows(ctx, wallet)

	s.logger.WithField("wallet", wallet).Info("provider account linked")
	return nil
}

// GetTransactions returns the account's transaction window, most recent first.
func (s *LoanService) GetTransactions(ctx context.Context, wallet, account string) ([]model.Transaction, error) {
	if err := requireField("wallet", wallet); err != nil {
		return nil, err
	}
	if err := requireField("account", account); err != nil {
		return nil, err
	}
	cred, err := s.credential(ctx, wallet)
	if err != nil {
		return nil, err
	}
	txns, err := s.accounts.Transactions(ctx, wallet, account, cred, s.windowDays)
	if err != nil {
		return nil, upstream(StageFetchTransactions, err)
	}
	return txns, nil
}

// GetIncome fetches the provider income report and stores it on the user.
func (s *LoanService) GetIncome(ctx context.Context, wallet string) (json.RawMessage, error) {
	if err := requireField("wallet", wallet); err != nil {
		return nil, err
	}
	cred, err := s.credential(ctx, wallet)
	if err != nil {
		return nil, err
	}
	income, err := s.accounts.Income(ctx, cred)
	if err != nil {
		return nil, upstream(StageFetchIncome, err)
	}
	if err := s.identities.SaveIncome(ctx, wallet, income); err != nil {
		return nil, upstream(StageSaveIncome, err)
	}
	return income, nil
}

// forgetWindows drops cached windows fetched under a previous credential.
func (s *LoanService) forgetWindows(ctx context.Context, wallet string) {
	log := s.logger.WithField("wallet", wallet)
	accounts, err := s.identities.WalletAccounts(ctx, wallet)
	if err != nil {
		log.WithError(err).Warn("list wallet accounts")
		return
	}
	for _, account := range accounts {
		if err := s.accounts.Forget(ctx, wallet, account, s.windowDays); err != nil {
			log.WithError(err).WithField("account", account).Warn("forget cached window")
		}
	}
}

func (s *LoanService) credential(ctx context.Context, wallet string) (model.ProviderCredential, error) {
	identity, err := s.identities.ResolveIdentity(ctx, wallet)
	if err != nil {
		return model.ProviderCredential{}, upstream(StageResolveIdentity, err)
	}
	cred, err := s.vault.Open(identity)
	if err != nil {
		return model.ProviderCredential{}, upstream(StageDecryptCredential, err)
	}
	return cred, nil
}

func requireField(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", risk.ErrInvalidRequest, name)
	}
	return nil
}
