package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote represents a stored daily price record for an asset.
type Quote struct {
	ID        string          `json:"id"`
	AssetID   string          `json:"assetId"`
	Ticker    string          `json:"ticker"`
	QuoteDate time.Time       `json:"quoteDate"`
	Open      decimal.Decimal `json:"open"`
	Close     decimal.Decimal `json:"close"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Volume    int64           `json:"volume"`
}
