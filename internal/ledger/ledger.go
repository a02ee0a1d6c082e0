// Package ledger implements the append-only transaction ledger. It is the
// only writer of transaction rows: every transaction enters the system
// through Append, which assigns the per-portfolio sequence number that fixes
// the order all later aggregation folds over.
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mheijden/portfolio-tracker/internal/model"
	"github.com/mheijden/portfolio-tracker/internal/repository"
	"github.com/mheijden/portfolio-tracker/internal/validation"
)

// Ledger appends and lists transactions. Sequence assignment is serialized
// per portfolio; appends to different portfolios proceed in parallel.
type Ledger struct {
	transactions *repository.TransactionRepository
	portfolios   *repository.PortfolioRepository
	assets       *repository.AssetRepository

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	onAppend []func(portfolioID string)
}

// New creates a Ledger backed by the given repositories.
func New(
	transactions *repository.TransactionRepository,
	portfolios *repository.PortfolioRepository,
	assets *repository.AssetRepository,
) *Ledger {
	return &Ledger{
		transactions: transactions,
		portfolios:   portfolios,
		assets:       assets,
		locks:        make(map[string]*sync.Mutex),
	}
}

// OnAppend registers a callback invoked after every successful append, before
// the append returns to its caller. The summary cache subscribes its
// invalidation here, which gives the invalidate-then-acknowledge ordering.
// Not safe to call concurrently with Append; register subscribers at startup.
func (l *Ledger) OnAppend(fn func(portfolioID string)) {
	l.onAppend = append(l.onAppend, fn)
}

// portfolioLock returns the mutex serializing appends for one portfolio,
// allocating it on first use.
func (l *Ledger) portfolioLock(portfolioID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[portfolioID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[portfolioID] = lock
	}
	return lock
}

// Append validates the input, assigns an ID and the next sequence number for
// the portfolio, persists the transaction and notifies append subscribers.
//
// Returns a *validation.Error for non-positive quantity/price or a malformed
// ticker, and apperrors.ErrPortfolioNotFound for an unknown portfolio. No
// per-asset balance is enforced here: oversells are a read-time concern of
// the aggregator, since a sell that is invalid against today's prefix may be
// legitimate against the prefix a historical query sees.
func (l *Ledger) Append(ctx context.Context, input model.TransactionInput) (model.Transaction, error) {
	if err := validateInput(input); err != nil {
		return model.Transaction{}, err
	}
	ticker := validation.NormalizeTicker(input.Ticker)

	// Unknown portfolios are rejected before anything is written.
	if _, err := l.portfolios.GetPortfolioOnID(ctx, input.PortfolioID); err != nil {
		return model.Transaction{}, err
	}

	asset, err := l.assets.FindOrCreateAsset(ctx, ticker)
	if err != nil {
		return model.Transaction{}, err
	}

	transaction := model.Transaction{
		ID:          uuid.New().String(),
		PortfolioID: input.PortfolioID,
		AssetID:     asset.ID,
		Ticker:      asset.Ticker,
		Type:        input.Type,
		Quantity:    input.Quantity,
		Price:       input.Price,
		CreatedAt:   time.Now().UTC(),
	}

	// Sequence assignment and insert form the per-portfolio critical
	// section: two concurrent appends must never observe the same max.
	lock := l.portfolioLock(input.PortfolioID)
	lock.Lock()

	maxSeq, err := l.transactions.MaxSequence(ctx, input.PortfolioID)
	if err != nil {
		lock.Unlock()
		return model.Transaction{}, err
	}
	transaction.Sequence = maxSeq + 1

	if err := l.transactions.InsertTransaction(ctx, &transaction); err != nil {
		lock.Unlock()
		return model.Transaction{}, fmt.Errorf("failed to append transaction: %w", err)
	}
	lock.Unlock()

	for _, fn := range l.onAppend {
		fn(input.PortfolioID)
	}

	return transaction, nil
}

// List returns the portfolio's transactions with sequence <= upTo in
// ascending sequence order. upTo <= 0 means "the full ledger as of now": the
// bound is then fixed from the current max sequence before reading, so the
// returned slice is a stable snapshot even while appends continue.
func (l *Ledger) List(ctx context.Context, portfolioID string, upTo int64) ([]model.Transaction, error) {
	if upTo <= 0 {
		version, err := l.Version(ctx, portfolioID)
		if err != nil {
			return nil, err
		}
		upTo = version
	}
	return l.transactions.GetTransactions(ctx, portfolioID, upTo)
}

// Get retrieves a single transaction by ID.
func (l *Ledger) Get(ctx context.Context, transactionID string) (model.Transaction, error) {
	return l.transactions.GetTransaction(ctx, transactionID)
}

// Version returns the highest sequence number assigned in the portfolio's
// ledger, 0 when empty.
func (l *Ledger) Version(ctx context.Context, portfolioID string) (int64, error) {
	return l.transactions.MaxSequence(ctx, portfolioID)
}

func validateInput(input model.TransactionInput) error {
	errors := make(map[string]string)

	if validation.NormalizeTicker(input.Ticker) == "" {
		errors["assetTicker"] = "asset ticker is required"
	}
	if input.Type != model.TransactionBuy && input.Type != model.TransactionSell {
		errors["transactionType"] = fmt.Sprintf("invalid type: %s", input.Type)
	}
	if !input.Quantity.IsPositive() {
		errors["quantity"] = "quantity must be positive"
	}
	if !input.Price.IsPositive() {
		errors["price"] = "price must be positive"
	}

	if len(errors) > 0 {
		return &validation.Error{Fields: errors}
	}
	return nil
}
