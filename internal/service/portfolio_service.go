package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mheijden/portfolio-tracker/internal/aggregate"
	"github.com/mheijden/portfolio-tracker/internal/apperrors"
	"github.com/mheijden/portfolio-tracker/internal/auth"
	"github.com/mheijden/portfolio-tracker/internal/cache"
	"github.com/mheijden/portfolio-tracker/internal/ledger"
	"github.com/mheijden/portfolio-tracker/internal/model"
	"github.com/mheijden/portfolio-tracker/internal/repository"
)

// PortfolioService is the thin shell around the ledger/aggregator/cache trio.
// It owns no business rule beyond authorization and call sequencing, which
// keeps the trio independently testable without an auth or transport stack.
type PortfolioService struct {
	portfolioRepo *repository.PortfolioRepository
	snapshotRepo  *repository.SnapshotRepository
	ledger        *ledger.Ledger
	summaryCache  *cache.SummaryCache
	aggregator    *aggregate.Aggregator
	authorizer    auth.Authorizer
}

// NewPortfolioService creates a new PortfolioService. The summary cache is
// subscribed to ledger appends here, so an acknowledged append can never be
// followed by a stale cached read.
func NewPortfolioService(
	portfolioRepo *repository.PortfolioRepository,
	snapshotRepo *repository.SnapshotRepository,
	txLedger *ledger.Ledger,
	summaryCache *cache.SummaryCache,
	authorizer auth.Authorizer,
) *PortfolioService {
	txLedger.OnAppend(summaryCache.Invalidate)

	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		snapshotRepo:  snapshotRepo,
		ledger:        txLedger,
		summaryCache:  summaryCache,
		aggregator:    aggregate.New(),
		authorizer:    authorizer,
	}
}

// authorize resolves the capability check against the auth collaborator,
// mapping a negative answer to ErrForbidden and passing every other error
// through unchanged.
func (s *PortfolioService) authorize(ctx context.Context, principal auth.Principal, portfolioID string) error {
	ok, err := s.authorizer.CanAccess(ctx, principal, portfolioID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrForbidden
	}
	return nil
}

// CreatePortfolio creates a portfolio owned by the principal.
func (s *PortfolioService) CreatePortfolio(ctx context.Context, principal auth.Principal, name, description string) (model.Portfolio, error) {
	portfolio := model.Portfolio{
		ID:          uuid.New().String(),
		UserID:      principal.UserID,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.portfolioRepo.InsertPortfolio(ctx, portfolio); err != nil {
		return model.Portfolio{}, err
	}
	return portfolio, nil
}

// GetPortfolios lists the portfolios owned by the principal.
func (s *PortfolioService) GetPortfolios(ctx context.Context, principal auth.Principal) ([]model.Portfolio, error) {
	return s.portfolioRepo.GetPortfoliosByUser(ctx, principal.UserID)
}

// GetPortfolio retrieves a single portfolio after authorizing the principal.
func (s *PortfolioService) GetPortfolio(ctx context.Context, principal auth.Principal, portfolioID string) (model.Portfolio, error) {
	if err := s.authorize(ctx, principal, portfolioID); err != nil {
		return model.Portfolio{}, err
	}
	return s.portfolioRepo.GetPortfolioOnID(ctx, portfolioID)
}

// RecordTransaction authorizes the principal against the portfolio and
// appends the transaction to its ledger.
func (s *PortfolioService) RecordTransaction(ctx context.Context, principal auth.Principal, input model.TransactionInput) (model.Transaction, error) {
	if err := s.authorize(ctx, principal, input.PortfolioID); err != nil {
		return model.Transaction{}, err
	}
	return s.ledger.Append(ctx, input)
}

// GetTransactions lists the portfolio's full ledger in append order.
func (s *PortfolioService) GetTransactions(ctx context.Context, principal auth.Principal, portfolioID string) ([]model.Transaction, error) {
	if err := s.authorize(ctx, principal, portfolioID); err != nil {
		return nil, err
	}
	return s.ledger.List(ctx, portfolioID, 0)
}

// GetTransaction retrieves a single transaction, authorizing the principal
// against its owning portfolio.
func (s *PortfolioService) GetTransaction(ctx context.Context, principal auth.Principal, transactionID string) (model.Transaction, error) {
	transaction, err := s.ledger.Get(ctx, transactionID)
	if err != nil {
		return model.Transaction{}, err
	}
	if err := s.authorize(ctx, principal, transaction.PortfolioID); err != nil {
		return model.Transaction{}, err
	}
	return transaction, nil
}

// GetSummary returns the portfolio's current per-asset summary, served from
// the cache when the ledger version has not moved since the last fold.
func (s *PortfolioService) GetSummary(ctx context.Context, principal auth.Principal, portfolioID string) (model.PortfolioSummary, error) {
	if err := s.authorize(ctx, principal, portfolioID); err != nil {
		return model.PortfolioSummary{}, err
	}

	version, err := s.ledger.Version(ctx, portfolioID)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	return s.summaryCache.GetOrCompute(portfolioID, version, func() (model.PortfolioSummary, error) {
		return s.computeSummary(ctx, portfolioID, version)
	})
}

// GetSummaryAsOf returns the summary over the ledger prefix with sequence
// <= upTo. Historical prefixes are immutable, so this read is deterministic;
// it is computed on demand and not cached.
func (s *PortfolioService) GetSummaryAsOf(ctx context.Context, principal auth.Principal, portfolioID string, upTo int64) (model.PortfolioSummary, error) {
	if err := s.authorize(ctx, principal, portfolioID); err != nil {
		return model.PortfolioSummary{}, err
	}
	return s.computeSummary(ctx, portfolioID, upTo)
}

// GetHistory returns the materialized summary snapshots for charting.
func (s *PortfolioService) GetHistory(ctx context.Context, principal auth.Principal, portfolioID string) ([]model.SummarySnapshot, error) {
	if err := s.authorize(ctx, principal, portfolioID); err != nil {
		return nil, err
	}
	return s.snapshotRepo.GetSnapshots(ctx, portfolioID)
}

func (s *PortfolioService) computeSummary(ctx context.Context, portfolioID string, upTo int64) (model.PortfolioSummary, error) {
	transactions, err := s.ledger.List(ctx, portfolioID, upTo)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	positions, err := s.aggregator.Aggregate(transactions)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	return model.PortfolioSummary{
		PortfolioID:   portfolioID,
		LedgerVersion: upTo,
		Positions:     positions,
	}, nil
}
