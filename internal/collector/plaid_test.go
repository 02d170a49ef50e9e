package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlaidServer(t *testing.T, handler func(path string, body map[string]any) (int, string)) *PlaidFetcher {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "client", body["client_id"])
		assert.Equal(t, "secret", body["secret"])
		status, resp := handler(r.URL.Path, body)
		w.WriteHeader(status)
		fmt.Fprint(w, resp)
	}))
	t.Cleanup(srv.Close)
	return NewPlaidFetcher(srv.URL+"/", "client", "secret", "")
}

func TestPlaidFetcher_FetchBalance(t *testing.T) {
	f := newPlaidServer(t, func(path string, body map[string]any) (int, string) {
		require.Equal(t, "/accounts/balance/get", path)
		assert.Equal(t, "access-1", body["access_token"])
		return http.StatusOK, `{"accounts":[
			{"account_id":"other","balances":{"available":1,"current":1}},
			{"account_id":"acc-1","balances":{"available":1234.56,"current":1300}},
			{"account_id":"acc-2","balances":{"available":null,"current":88.10}},
			{"account_id":"acc-3","balances":{"available":null,"current":null}}
		]}`
	})
	ctx := context.Background()

	bal, err := f.FetchBalance(ctx, "access-1", "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", bal.String())

	_, err = f.FetchBalance(ctx, "access-1", "acc-2")
	assert.ErrorContains(t, err, "no available balance", "current balance is never used")

	_, err = f.FetchBalance(ctx, "access-1", "acc-3")
	assert.ErrorContains(t, err, "no available balance")

	_, err = f.FetchBalance(ctx, "access-1", "missing")
	assert.Error(t, err)
}

func TestPlaidFetcher_FetchTransactionsPaginates(t *testing.T) {
	var offsets []float64
	f := newPlaidServer(t, func(path string, body map[string]any) (int, string) {
		require.Equal(t, "/transactions/get", path)
		assert.Equal(t, "2026-08-18", body["start_date"])
		assert.Equal(t, "2026-10-17", body["end_date"])
		opts := body["options"].(map[string]any)
		offset := opts["offset"].(float64)
		offsets = append(offsets, offset)
		assert.Equal(t, float64(plaidPageSize), opts["count"])
		if offset == 0 {
			return http.StatusOK, `{"total_transactions":3,"transactions":[
				{"transaction_id":"t1","account_id":"acc","amount":12.5,"date":"2026-10-16","name":"Coffee"},
				{"transaction_id":"t2","account_id":"acc","amount":-200,"date":"2026-10-15","name":"Payroll"}
			]}`
		}
		return http.StatusOK, `{"total_transactions":3,"transactions":[
			{"transaction_id":"t3","account_id":"acc","amount":40,"date":"2026-10-01","pending":true}
		]}`
	})

	end := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	txns, err := f.FetchTransactions(context.Background(), "tok", "acc", end.AddDate(0, 0, -60), end)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, []float64{0, 2}, offsets)
	assert.Equal(t, "t1", txns[0].ID)
	assert.Equal(t, "12.5", txns[0].Amount.String())
	assert.Equal(t, "-200", txns[1].Amount.String())
	assert.True(t, txns[2].Pending)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), txns[2].Date)
}

func TestPlaidFetcher_ExchangeAndIncome(t *testing.T) {
	f := newPlaidServer(t, func(path string, body map[string]any) (int, string) {
		switch path {
		case "/item/public_token/exchange":
			assert.Equal(t, "public-sandbox-1", body["public_token"])
			return http.StatusOK, `{"access_token":"access-sandbox-1","item_id":"item"}`
		case "/income/get":
			assert.Equal(t, "access-sandbox-1", body["access_token"])
			return http.StatusOK, `{"income":{"last_year_income":52000}}`
		}
		return http.StatusNotFound, `{}`
	})
	ctx := context.Background()

	token, err := f.ExchangePublicToken(ctx, "public-sandbox-1")
	require.NoError(t, err)
	assert.Equal(t, "access-sandbox-1", token)

	income, err := f.FetchIncome(ctx, token)
	require.NoError(t, err)
	assert.JSONEq(t, `{"last_year_income":52000}`, string(income))
}

func TestPlaidFetcher_ProviderError(t *testing.T) {
	f := newPlaidServer(t, func(string, map[string]any) (int, string) {
		return http.StatusBadRequest, `{"error_type":"INVALID_INPUT","error_code":"INVALID_PUBLIC_TOKEN","error_message":"bad token"}`
	})

	_, err := f.ExchangePublicToken(context.Background(), "nope")
	require.Error(t, err)

	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, http.StatusBadRequest, pe.Status)
	assert.Equal(t, "INVALID_PUBLIC_TOKEN", pe.ErrorCode)
}

func TestPlaidFetcher_NonJSONError(t *testing.T) {
	f := newPlaidServer(t, func(string, map[string]any) (int, string) {
		return http.StatusBadGateway, "upstream down"
	})

	_, err := f.FetchIncome(context.Background(), "tok")
	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "upstream down", pe.Message)
}
