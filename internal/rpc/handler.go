package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"LoanSentinel/internal/model"
	"LoanSentinel/internal/risk"
	"LoanSentinel/internal/service"
)

const maxBodyBytes = 1 << 20

// LoanAPI is the service surface exposed over JSON-RPC.
type LoanAPI interface {
	GetLoanTerms(ctx context.Context, req service.LoanTermsRequest) (model.LoanTermsResponse, error)
	LinkAccount(ctx context.Context, wallet, publicToken string) error
	GetTransactions(ctx context.Context, wallet, account string) ([]model.Transaction, error)
	GetIncome(ctx context.Context, wallet string) (json.RawMessage, error)
}

type methodFunc func(ctx context.Context, params json.RawMessage) (any, error)

// Handler dispatches JSON-RPC calls to the loan service.
type Handler struct {
	api          LoanAPI
	logger       *logrus.Logger
	exposeDetail bool
	methods      map[string]methodFunc
}

// NewHandler creates a new Handler. When exposeDetail is set, upstream
// failures carry their stage and cause in error.data.
func NewHandler(api LoanAPI, logger *logrus.Logger, exposeDetail bool) *Handler {
	h := &Handler{api: api, logger: logger, exposeDetail: exposeDetail}
	h.methods = map[string]methodFunc{
		"getLoanTerms":         h.getLoanTerms,
		"savePlaidAccessToken": h.savePlaidAccessToken,
		"getPlaidTransactions": h.getPlaidTransactions,
		"getPlaidIncome":       h.getPlaidIncome,
	}
	return h
}

// RegisterRoutes registers the RPC endpoint and the health check.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", h.ServeRPC).Methods(http.MethodPost)
	router.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

// ServeRPC decodes one JSON-RPC request and writes its response.
func (h *Handler) ServeRPC(w http.ResponseWriter, r *http.Request) {
	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		h.logger.WithError(err).WithField("request_id", RequestIDFromContext(r.Context())).Warn("rpc parse error")
		writeResponse(w, Response{JSONRPC: version, Error: errParse})
		return
	}

	resp := Response{JSONRPC: version, ID: req.ID}
	log := h.logger.WithFields(logrus.Fields{
		"request_id": RequestIDFromContext(r.Context()),
		"method":     req.Method,
	})

	if req.JSONRPC != version || req.Method == "" {
		resp.Error = errInvalidRequest
		writeResponse(w, resp)
		return
	}
	method, ok := h.methods[req.Method]
	if !ok {
		resp.Error = errMethodNotFound
		writeResponse(w, resp)
		return
	}

	result, err := method(r.Context(), req.Params)
	if err != nil {
		log.WithError(err).Error("rpc call failed")
		resp.Error = h.toRPCError(err)
	} else {
		resp.Result = result
	}
	writeResponse(w, resp)
}

func (h *Handler) toRPCError(err error) *Error {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	if errors.Is(err, risk.ErrInvalidRequest) {
		if h.exposeDetail {
			return errInvalidRequest.withData(err.Error())
		}
		return errInvalidRequest
	}
	if !h.exposeDetail {
		return errUnknown
	}
	detail := map[string]string{"error": err.Error()}
	var ue *service.UpstreamError
	if errors.As(err, &ue) {
		detail["stage"] = ue.Stage
		detail["error"] = ue.Err.Error()
	}
	return errUnknown.withData(detail)
}

type loanTermsParams struct {
	LoanSize json.Number `json:"loanSize"`
	Account  string      `json:"account"`
	Wallet   string      `json:"wallet"`
}

func (h *Handler) getLoanTerms(ctx context.Context, raw json.RawMessage) (any, error) {
	var p loanTermsParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	size, err := parseLoanSize(p.LoanSize)
	if err != nil {
		return nil, err
	}
	return h.api.GetLoanTerms(ctx, service.LoanTermsRequest{
		LoanSize: size,
		Account:  p.Account,
		Wallet:   p.Wallet,
	})
}

func (h *Handler) savePlaidAccessToken(ctx context.Context, raw json.RawMessage) (any, error) {
	var p struct {
		Wallet      string `json:"wallet"`
		PublicToken string `json:"publicToken"`
	}
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	if err := h.api.LinkAccount(ctx, p.Wallet, p.PublicToken); err != nil {
		return nil, err
	}
	return "Ok", nil
}

func (h *Handler) getPlaidTransactions(ctx context.Context, raw json.RawMessage) (any, error) {
	var p struct {
		Wallet  string `json:"wallet"`
		Account string `json:"account"`
	}
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	txns, err := h.api.GetTransactions(ctx, p.Wallet, p.Account)
	if err != nil {
		return nil, err
	}
	if txns == nil {
		txns = []model.Transaction{}
	}
	return txns, nil
}

func (h *Handler) getPlaidIncome(ctx context.Context, raw json.RawMessage) (any, error) {
	var p struct {
		Wallet string `json:"wallet"`
	}
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	return h.api.GetIncome(ctx, p.Wallet)
}

func decodeParams(raw json.RawMessage, out any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Errorf("%w: params are required", risk.ErrInvalidRequest)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: malformed params: %v", risk.ErrInvalidRequest, err)
	}
	return nil
}

// parseLoanSize accepts any JSON number. Literals outside the decimal
// parser's range go through the float path, which rejects infinities.
func parseLoanSize(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, fmt.Errorf("%w: loanSize is required", risk.ErrInvalidRequest)
	}
	if d, err := decimal.NewFromString(n.String()); err == nil {
		return d, nil
	}
	f, err := n.Float64()
	if err != nil && !math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: loanSize %q is not a number", risk.ErrInvalidRequest, n)
	}
	return risk.LoanSizeFromFloat(f)
}

func writeResponse(w http.ResponseWriter, resp Response) {
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
