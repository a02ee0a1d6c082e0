package request

import "github.com/shopspring/decimal"

// CreateTransactionRequest represents the request body for creating a transaction.
// Quantity and price accept both JSON numbers and decimal strings; they are
// carried as exact decimals end to end, never binary floats.
type CreateTransactionRequest struct {
	PortfolioID string          `json:"portfolio_id"`
	AssetTicker string          `json:"asset_ticker"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}
