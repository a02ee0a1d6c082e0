package model

import "github.com/shopspring/decimal"

// Position is the derived per-asset holding state: quantity currently held and
// the cost basis tied up in the open position. AverageCost is always
// TotalInvested / Quantity recomputed from the running totals, never stored
// independently, so the three fields cannot drift apart.
type Position struct {
	Quantity      decimal.Decimal `json:"quantity"`
	TotalInvested decimal.Decimal `json:"totalInvested"`
	AverageCost   decimal.Decimal `json:"averageCost"`
}

// NewPosition builds a Position from running totals, deriving the average cost.
func NewPosition(quantity, totalInvested decimal.Decimal) Position {
	p := Position{
		Quantity:      quantity,
		TotalInvested: totalInvested,
	}
	if quantity.IsPositive() {
		p.AverageCost = totalInvested.Div(quantity)
	} else {
		p.AverageCost = decimal.Zero
	}
	return p
}

// PortfolioSummary maps every ticker that has ever appeared in a portfolio's
// ledger to its current Position. Fully closed tickers are included with a
// zero quantity. LedgerVersion is the maximum sequence number the summary was
// computed against.
type PortfolioSummary struct {
	PortfolioID   string              `json:"portfolioId"`
	LedgerVersion int64               `json:"ledgerVersion"`
	Positions     map[string]Position `json:"summary"`
}
