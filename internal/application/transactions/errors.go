package transactions

import "errors"

var (
	ErrTransactionNotFound = errors.New("Transaction not found")
	ErrInvalidSubmission   = errors.New("invalid transaction submission")
	ErrFormOptions         = errors.New("failed to load transaction types")
	// ErrFeeCascade marks a failure after the transaction row was already written.
	ErrFeeCascade = errors.New("fee cascade failed")
)
