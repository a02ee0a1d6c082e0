package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mheijden/portfolio-tracker/internal/model"

	"github.com/mheijden/portfolio-tracker/internal/apperrors"
)

// QuoteRepository provides data access methods for the quote table.
type QuoteRepository struct {
	db *sql.DB
}

// NewQuoteRepository creates a new QuoteRepository with the provided database connection.
func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// InsertQuote persists a daily quote record for an asset.
func (s *QuoteRepository) InsertQuote(ctx context.Context, q model.Quote) error {
	query := `
		INSERT INTO quote (id, asset_id, quote_date, open, close, high, low, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		q.ID,
		q.AssetID,
		q.QuoteDate.Format("2006-01-02"),
		q.Open.String(),
		q.Close.String(),
		q.High.String(),
		q.Low.String(),
		q.Volume,
	)
	if err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}
	return nil
}

// GetLatestQuote retrieves the most recent stored quote for an asset.
// Returns apperrors.ErrQuoteNotFound when no quote is stored.
func (s *QuoteRepository) GetLatestQuote(ctx context.Context, assetID string) (model.Quote, error) {
	query := `
		SELECT q.id, q.asset_id, a.ticker, q.quote_date, q.open, q.close, q.high, q.low, q.volume
		FROM quote q
		JOIN asset a ON q.asset_id = a.id
		WHERE q.asset_id = ?
		ORDER BY q.quote_date DESC
		LIMIT 1
	`
	var q model.Quote
	var dateStr, openStr, closeStr, highStr, lowStr string

	err := s.db.QueryRowContext(ctx, query, assetID).Scan(
		&q.ID,
		&q.AssetID,
		&q.Ticker,
		&dateStr,
		&openStr,
		&closeStr,
		&highStr,
		&lowStr,
		&q.Volume,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Quote{}, apperrors.ErrQuoteNotFound
	}
	if err != nil {
		return model.Quote{}, fmt.Errorf("failed to query quote: %w", err)
	}

	if q.QuoteDate, err = ParseTime(dateStr); err != nil {
		return model.Quote{}, err
	}
	if q.Open, err = ParseDecimal(openStr); err != nil {
		return model.Quote{}, err
	}
	if q.Close, err = ParseDecimal(closeStr); err != nil {
		return model.Quote{}, err
	}
	if q.High, err = ParseDecimal(highStr); err != nil {
		return model.Quote{}, err
	}
	if q.Low, err = ParseDecimal(lowStr); err != nil {
		return model.Quote{}, err
	}

	return q, nil
}
