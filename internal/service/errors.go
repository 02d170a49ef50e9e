package service

import "fmt"

// UpstreamError reports a failed collaborator call and the step it failed in.
type UpstreamError struct {
	Stage string
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func upstream(stage string, err error) error {
	return &UpstreamError{Stage: stage, Err: err}
}

const (
	StageResolveIdentity   = "resolve identity"
	StageDecryptCredential = "decrypt credential"
	StageFetchBalance      = "fetch balance"
	StageFetchTransactions = "fetch transactions"
	StageExchangeToken     = "exchange public token"
	StageEncryptCredential = "encrypt credential"
	StageSaveCredential    = "save credential"
	StageFetchIncome       = "fetch income"
	StageSaveIncome        = "save income"
)
