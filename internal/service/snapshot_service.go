package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mheijden/portfolio-tracker/internal/aggregate"
	"github.com/mheijden/portfolio-tracker/internal/ledger"
	"github.com/mheijden/portfolio-tracker/internal/model"
	"github.com/mheijden/portfolio-tracker/internal/repository"
)

// snapshotWorkers bounds how many portfolios are folded concurrently.
const snapshotWorkers = 4

// SnapshotService materializes portfolio summaries into the summary_snapshot
// table so the growth of a portfolio can be charted without re-folding the
// full ledger per data point. Portfolios are independent, so they are
// captured in parallel.
type SnapshotService struct {
	portfolioRepo *repository.PortfolioRepository
	snapshotRepo  *repository.SnapshotRepository
	ledger        *ledger.Ledger
	aggregator    *aggregate.Aggregator
}

// NewSnapshotService creates a new SnapshotService with the provided dependencies.
func NewSnapshotService(
	portfolioRepo *repository.PortfolioRepository,
	snapshotRepo *repository.SnapshotRepository,
	txLedger *ledger.Ledger,
) *SnapshotService {
	return &SnapshotService{
		portfolioRepo: portfolioRepo,
		snapshotRepo:  snapshotRepo,
		ledger:        txLedger,
		aggregator:    aggregate.New(),
	}
}

// CaptureAll captures a snapshot for every portfolio whose ledger has moved
// since its last snapshot. Errors on individual portfolios (an oversold
// ledger, for example) are logged and skipped: one broken portfolio must not
// starve the others of history.
func (s *SnapshotService) CaptureAll(ctx context.Context) error {
	portfolios, err := s.portfolioRepo.GetAllPortfolios(ctx)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(snapshotWorkers)

	for _, portfolio := range portfolios {
		portfolio := portfolio
		g.Go(func() error {
			if err := s.Capture(ctx, portfolio.ID); err != nil {
				log.Printf("snapshot of portfolio %s failed: %v", portfolio.ID, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// Capture folds the portfolio's current ledger and stores the result.
// A ledger unchanged since the last snapshot is skipped.
func (s *SnapshotService) Capture(ctx context.Context, portfolioID string) error {
	version, err := s.ledger.Version(ctx, portfolioID)
	if err != nil {
		return err
	}

	latest, err := s.snapshotRepo.LatestVersion(ctx, portfolioID)
	if err != nil {
		return err
	}
	if version == latest {
		return nil
	}

	transactions, err := s.ledger.List(ctx, portfolioID, version)
	if err != nil {
		return err
	}

	positions, err := s.aggregator.Aggregate(transactions)
	if err != nil {
		return err
	}

	return s.snapshotRepo.InsertSnapshot(ctx, model.SummarySnapshot{
		ID:            uuid.New().String(),
		PortfolioID:   portfolioID,
		LedgerVersion: version,
		Positions:     positions,
		CalculatedAt:  time.Now().UTC(),
	})
}
