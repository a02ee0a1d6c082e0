package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrAssetNotFound indicates that an asset with the given ticker does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrUserNotFound indicates that a user account does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrQuoteNotFound indicates no stored quote exists for an asset.
	ErrQuoteNotFound = errors.New("quote not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrUserExists indicates that a user with the same username or email already exists.
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidCredentials indicates a failed username/password check.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")
)

// Authorization errors come from the auth collaborator and are propagated to
// the caller unchanged.
var (
	// ErrForbidden indicates the principal may not access the requested portfolio.
	ErrForbidden = errors.New("access to portfolio denied")

	// ErrInvalidToken indicates a missing, malformed or expired auth token.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// OversellError reports a sell whose quantity exceeds the quantity held at
// that point in ledger order. It is discovered during aggregation, not at
// append time, and identifies the first offending transaction. Retrying the
// same read fails identically until the ledger contents change.
type OversellError struct {
	TransactionID string
	Ticker        string
	Requested     decimal.Decimal
	Held          decimal.Decimal
}

func (e *OversellError) Error() string {
	return fmt.Sprintf(
		"oversell of %s: transaction %s sells %s but only %s held",
		e.Ticker, e.TransactionID, e.Requested, e.Held,
	)
}
