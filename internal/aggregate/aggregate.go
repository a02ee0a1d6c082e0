// Package aggregate implements the position aggregation engine: a pure,
// deterministic fold of an ordered transaction slice into per-asset positions
// using a single weighted-average-cost model.
package aggregate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mheijden/portfolio-tracker/internal/apperrors"
	"github.com/mheijden/portfolio-tracker/internal/model"
)

// Aggregator folds transactions into positions. The zero value rejects
// oversells, which is the default policy; a permissive clamping mode can be
// enabled with WithClampOversell.
type Aggregator struct {
	clampOversell bool
	logf          func(format string, v ...any)
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClampOversell makes the aggregator clamp an oversold position to zero
// and log a warning instead of failing the whole summary. logf may be nil.
func WithClampOversell(logf func(format string, v ...any)) Option {
	return func(a *Aggregator) {
		a.clampOversell = true
		a.logf = logf
	}
}

// New creates an Aggregator with the given options.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// running holds the per-ticker fold state.
type running struct {
	quantity decimal.Decimal
	invested decimal.Decimal
}

// Aggregate reduces the transactions, in slice order, into a position per
// ticker. Every ticker that appears in the input appears in the result,
// including positions that have since been fully closed.
//
// The fold is strict left-to-right over exact decimals: re-running it over the
// same input always yields identical results, which is what makes historical
// "as of sequence N" queries well-defined.
//
// Under the default policy a sell exceeding the quantity held at that point
// fails the whole computation with *apperrors.OversellError; partial per-asset
// results are never returned.
func (a *Aggregator) Aggregate(transactions []model.Transaction) (map[string]model.Position, error) {
	totals := make(map[string]*running)

	for _, tx := range transactions {
		// The ledger rejects these on append, but the fold is callable with
		// arbitrary input and must fail rather than divide by zero or grow a
		// position from a negative sell.
		if !tx.Quantity.IsPositive() {
			return nil, fmt.Errorf("non-positive quantity %s on transaction %s", tx.Quantity, tx.ID)
		}

		state, ok := totals[tx.Ticker]
		if !ok {
			state = &running{quantity: decimal.Zero, invested: decimal.Zero}
			totals[tx.Ticker] = state
		}

		switch tx.Type {
		case model.TransactionBuy:
			state.invested = state.invested.Add(tx.Quantity.Mul(tx.Price))
			state.quantity = state.quantity.Add(tx.Quantity)

		case model.TransactionSell:
			if tx.Quantity.GreaterThan(state.quantity) {
				if !a.clampOversell {
					return nil, &apperrors.OversellError{
						TransactionID: tx.ID,
						Ticker:        tx.Ticker,
						Requested:     tx.Quantity,
						Held:          state.quantity,
					}
				}
				if a.logf != nil {
					a.logf("clamping oversell of %s: transaction %s sells %s but only %s held",
						tx.Ticker, tx.ID, tx.Quantity, state.quantity)
				}
				state.quantity = decimal.Zero
				state.invested = decimal.Zero
				continue
			}

			// Weighted-average cost: remove the sold units at the current
			// average cost, leaving the average of the remainder unchanged.
			averageCost := state.invested.Div(state.quantity)
			state.quantity = state.quantity.Sub(tx.Quantity)
			if state.quantity.IsZero() {
				state.invested = decimal.Zero
			} else {
				state.invested = state.invested.Sub(averageCost.Mul(tx.Quantity))
			}

		default:
			return nil, fmt.Errorf("unknown transaction type %q on transaction %s", tx.Type, tx.ID)
		}
	}

	positions := make(map[string]model.Position, len(totals))
	for ticker, state := range totals {
		positions[ticker] = model.NewPosition(state.quantity, state.invested)
	}
	return positions, nil
}

// Aggregate folds transactions with the default reject-on-oversell policy.
func Aggregate(transactions []model.Transaction) (map[string]model.Position, error) {
	return New().Aggregate(transactions)
}
