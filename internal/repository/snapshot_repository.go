package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mheijden/portfolio-tracker/internal/model"
)

// SnapshotRepository provides data access methods for the summary_snapshot
// table, which holds materialized portfolio summaries for charting.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// InsertSnapshot persists a materialized summary. The per-ticker positions
// are stored as a JSON document; decimals serialize as strings, so the stored
// snapshot is exact.
func (s *SnapshotRepository) InsertSnapshot(ctx context.Context, snapshot model.SummarySnapshot) error {
	positions, err := json.Marshal(snapshot.Positions)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot positions: %w", err)
	}

	query := `
		INSERT INTO summary_snapshot (id, portfolio_id, ledger_version, positions, calculated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		snapshot.ID,
		snapshot.PortfolioID,
		snapshot.LedgerVersion,
		string(positions),
		snapshot.CalculatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return nil
}

// GetSnapshots retrieves all snapshots for a portfolio, oldest ledger version
// first. Returns an empty slice when none have been captured yet.
func (s *SnapshotRepository) GetSnapshots(ctx context.Context, portfolioID string) ([]model.SummarySnapshot, error) {
	query := `
		SELECT id, portfolio_id, ledger_version, positions, calculated_at
		FROM summary_snapshot
		WHERE portfolio_id = ?
		ORDER BY ledger_version ASC, calculated_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query summary_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.SummarySnapshot{}

	for rows.Next() {
		var snapshot model.SummarySnapshot
		var positionsStr, calculatedAtStr string

		err := rows.Scan(
			&snapshot.ID,
			&snapshot.PortfolioID,
			&snapshot.LedgerVersion,
			&positionsStr,
			&calculatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary_snapshot table results: %w", err)
		}

		if err := json.Unmarshal([]byte(positionsStr), &snapshot.Positions); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot positions: %w", err)
		}

		snapshot.CalculatedAt, err = ParseTime(calculatedAtStr)
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summary_snapshot table: %w", err)
	}

	return snapshots, nil
}

// LatestVersion returns the highest ledger version already snapshotted for
// the portfolio, or 0 when none exists. Used to skip recapturing an
// unchanged ledger.
func (s *SnapshotRepository) LatestVersion(ctx context.Context, portfolioID string) (int64, error) {
	query := `
		SELECT COALESCE(MAX(ledger_version), 0)
		FROM summary_snapshot
		WHERE portfolio_id = ?
	`
	var version int64
	if err := s.db.QueryRowContext(ctx, query, portfolioID).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to query latest snapshot version: %w", err)
	}
	return version, nil
}
