package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mheijden/portfolio-tracker/internal/apperrors"
	"github.com/mheijden/portfolio-tracker/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
// The table is append-only: there are deliberately no update or delete
// methods, corrections are modeled as new offsetting transactions.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// InsertTransaction persists a new transaction row. Quantity and price are
// stored as canonical decimal strings.
func (s *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, portfolio_id, asset_id, type, quantity, price, seq, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		t.ID,
		t.PortfolioID,
		t.AssetID,
		string(t.Type),
		t.Quantity.String(),
		t.Price.String(),
		t.Sequence,
		t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// MaxSequence returns the highest sequence number assigned in the portfolio's
// ledger, or 0 when the ledger is empty. This is the ledger version the
// summary cache keys on.
func (s *TransactionRepository) MaxSequence(ctx context.Context, portfolioID string) (int64, error) {
	query := `
		SELECT COALESCE(MAX(seq), 0)
		FROM "transaction"
		WHERE portfolio_id = ?
	`
	var maxSeq int64
	if err := s.db.QueryRowContext(ctx, query, portfolioID).Scan(&maxSeq); err != nil {
		return 0, fmt.Errorf("failed to query max sequence: %w", err)
	}
	return maxSeq, nil
}

// GetTransactions retrieves the portfolio's transactions with sequence number
// <= upToSeq, in ascending sequence order. Callers resolve upToSeq from
// MaxSequence first, so the result is a fixed snapshot of the ledger prefix.
func (s *TransactionRepository) GetTransactions(ctx context.Context, portfolioID string, upToSeq int64) ([]model.Transaction, error) {
	query := `
		SELECT t.id, t.portfolio_id, t.asset_id, a.ticker, t.type, t.quantity, t.price, t.seq, t.created_at
		FROM "transaction" t
		JOIN asset a ON t.asset_id = a.id
		WHERE t.portfolio_id = ?
		AND t.seq <= ?
		ORDER BY t.seq ASC
	`
	rows, err := s.db.QueryContext(ctx, query, portfolioID, upToSeq)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by its ID.
// Returns apperrors.ErrTransactionNotFound when no such transaction exists.
func (s *TransactionRepository) GetTransaction(ctx context.Context, transactionID string) (model.Transaction, error) {
	query := `
		SELECT t.id, t.portfolio_id, t.asset_id, a.ticker, t.type, t.quantity, t.price, t.seq, t.created_at
		FROM "transaction" t
		JOIN asset a ON t.asset_id = a.id
		WHERE t.id = ?
	`
	row := s.db.QueryRowContext(ctx, query, transactionID)

	t, err := scanTransaction(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}

func scanTransaction(scan func(dest ...any) error) (model.Transaction, error) {
	var t model.Transaction
	var txType, quantityStr, priceStr, createdAtStr string

	err := scan(
		&t.ID,
		&t.PortfolioID,
		&t.AssetID,
		&t.Ticker,
		&txType,
		&quantityStr,
		&priceStr,
		&t.Sequence,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, err
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	t.Type = model.TransactionType(txType)

	if t.Quantity, err = ParseDecimal(quantityStr); err != nil {
		return model.Transaction{}, err
	}
	if t.Price, err = ParseDecimal(priceStr); err != nil {
		return model.Transaction{}, err
	}
	if t.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}
