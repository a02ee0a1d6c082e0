package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the direction of a transaction.
type TransactionType string

// Allowed transaction types.
const (
	TransactionBuy  TransactionType = "buy"
	TransactionSell TransactionType = "sell"
)

// Transaction represents a single buy or sell recorded against a portfolio.
// Transactions are immutable once appended; corrections are modeled as new
// offsetting transactions, never as edits.
type Transaction struct {
	ID          string          `json:"id"`
	PortfolioID string          `json:"portfolioId"`
	AssetID     string          `json:"assetId"`
	Ticker      string          `json:"assetTicker"`
	Type        TransactionType `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Sequence    int64           `json:"sequence"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// TransactionInput carries the caller-supplied fields of a new transaction.
// ID, sequence number and timestamps are assigned by the ledger on append.
type TransactionInput struct {
	PortfolioID string
	Ticker      string
	Type        TransactionType
	Quantity    decimal.Decimal
	Price       decimal.Decimal
}
