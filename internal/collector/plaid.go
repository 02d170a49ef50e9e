package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"LoanSentinel/internal/model"
)

const plaidPageSize = 500

// PlaidFetcher implements Fetcher against the Plaid REST API.
type PlaidFetcher struct {
	BaseURL  string
	ClientID string
	Secret   string
	Client   *http.Client
}

// NewPlaidFetcher creates a new fetcher with optional proxy support.
func NewPlaidFetcher(baseURL, clientID, secret, proxyURL string) *PlaidFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &PlaidFetcher{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		ClientID: clientID,
		Secret:   secret,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *PlaidFetcher) Name() string { return "plaid" }

// ProviderError is an error body returned by Plaid.
type ProviderError struct {
	Status    int    `json:"-"`
	ErrorType string `json:"error_type"`
	ErrorCode string `json:"error_code"`
	Message   string `json:"error_message"`
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("plaid: status %d: %s/%s: %s", e.Status, e.ErrorType, e.ErrorCode, e.Message)
}

type plaidAuth struct {
	ClientID string `json:"client_id"`
	Secret   string `json:"secret"`
}

type plaidAccount struct {
	AccountID string `json:"account_id"`
	Balances  struct {
		Available decimal.NullDecimal `json:"available"`
	} `json:"balances"`
}

type plaidTransaction struct {
	TransactionID string          `json:"transaction_id"`
	AccountID     string          `json:"account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	Name          string          `json:"name"`
	Pending       bool            `json:"pending"`
}

func (f *PlaidFetcher) FetchBalance(ctx context.Context, accessToken, accountID string) (decimal.Decimal, error) {
	req := struct {
		plaidAuth
		AccessToken string `json:"access_token"`
		Options     struct {
			AccountIDs []string `json:"account_ids"`
		} `json:"options"`
	}{plaidAuth: f.auth(), AccessToken: accessToken}
	req.Options.AccountIDs = []string{accountID}

	var resp struct {
		Accounts []plaidAccount `json:"accounts"`
	}
	if err := f.post(ctx, "/accounts/balance/get", req, &resp); err != nil {
		return decimal.Zero, fmt.Errorf("fetch balance: %w", err)
	}
	for _, a := range resp.Accounts {
		if a.AccountID != accountID {
			continue
		}
		// Only available counts; current does not net out pending debits.
		if !a.Balances.Available.Valid {
			return decimal.Zero, fmt.Errorf("fetch balance: account %s reports no available balance", accountID)
		}
		return a.Balances.Available.Decimal, nil
	}
	return decimal.Zero, fmt.Errorf("fetch balance: account %s not returned", accountID)
}

// FetchTransactions pages through /transactions/get. Plaid returns
// transactions newest first.
func (f *PlaidFetcher) FetchTransactions(ctx context.Context, accessToken, accountID string, start, end time.Time) ([]model.Transaction, error) {
	type options struct {
		AccountIDs []string `json:"account_ids"`
		Count      int      `json:"count"`
		Offset     int      `json:"offset"`
	}
	type request struct {
		plaidAuth
		AccessToken string  `json:"access_token"`
		StartDate   string  `json:"start_date"`
		EndDate     string  `json:"end_date"`
		Options     options `json:"options"`
	}

	var out []model.Transaction
	for {
		req := request{
			plaidAuth:   f.auth(),
			AccessToken: accessToken,
			StartDate:   start.Format(time.DateOnly),
			EndDate:     end.Format(time.DateOnly),
			Options:     options{AccountIDs: []string{accountID}, Count: plaidPageSize, Offset: len(out)},
		}
		var resp struct {
			Transactions      []plaidTransaction `json:"transactions"`
			TotalTransactions int                `json:"total_transactions"`
		}
		if err := f.post(ctx, "/transactions/get", req, &resp); err != nil {
			return nil, fmt.Errorf("fetch transactions: %w", err)
		}
		for _, pt := range resp.Transactions {
			date, err := time.Parse(time.DateOnly, pt.Date)
			if err != nil {
				return nil, fmt.Errorf("parse transaction date %q: %w", pt.Date, err)
			}
			out = append(out, model.Transaction{
				ID:        pt.TransactionID,
				AccountID: pt.AccountID,
				Amount:    pt.Amount,
				Date:      date,
				Name:      pt.Name,
				Pending:   pt.Pending,
			})
		}
		if len(resp.Transactions) == 0 || len(out) >= resp.TotalTransactions {
			return out, nil
		}
	}
}

func (f *PlaidFetcher) ExchangePublicToken(ctx context.Context, publicToken string) (string, error) {
	req := struct {
		plaidAuth
		PublicToken string `json:"public_token"`
	}{f.auth(), publicToken}

	var resp struct {
		AccessToken string `json:"access_token"`
		ItemID      string `json:"item_id"`
	}
	if err := f.post(ctx, "/item/public_token/exchange", req, &resp); err != nil {
		return "", fmt.Errorf("exchange public token: %w", err)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("exchange public token: empty access token")
	}
	return resp.AccessToken, nil
}

func (f *PlaidFetcher) FetchIncome(ctx context.Context, accessToken string) (json.RawMessage, error) {
	req := struct {
		plaidAuth
		AccessToken string `json:"access_token"`
	}{f.auth(), accessToken}

	var resp struct {
		Income json.RawMessage `json:"income"`
	}
	if err := f.post(ctx, "/income/get", req, &resp); err != nil {
		return nil, fmt.Errorf("fetch income: %w", err)
	}
	return resp.Income, nil
}

func (f *PlaidFetcher) auth() plaidAuth {
	return plaidAuth{ClientID: f.ClientID, Secret: f.Secret}
}

func (f *PlaidFetcher) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("plaid %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("plaid read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		pe := &ProviderError{Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(respBody, pe); jsonErr != nil || pe.ErrorCode == "" {
			pe.Message = string(respBody)
		}
		return pe
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("plaid decode %s: %w", path, err)
	}
	return nil
}
