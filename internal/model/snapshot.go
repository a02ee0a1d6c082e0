package model

import "time"

// SummarySnapshot is a materialized portfolio summary captured at a specific
// ledger version. Snapshots are pre-calculated so that charting the growth of
// a portfolio does not require re-folding the full ledger per data point.
type SummarySnapshot struct {
	ID            string              `json:"id"`
	PortfolioID   string              `json:"portfolioId"`
	LedgerVersion int64               `json:"ledgerVersion"`
	Positions     map[string]Position `json:"summary"`
	CalculatedAt  time.Time           `json:"calculatedAt"`
}
