package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mheijden/portfolio-tracker/internal/apperrors"
	"github.com/mheijden/portfolio-tracker/internal/model"
)

// PortfolioRepository provides data access methods for the portfolio table.
type PortfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// InsertPortfolio persists a new portfolio.
func (s *PortfolioRepository) InsertPortfolio(ctx context.Context, p model.Portfolio) error {
	query := `
		INSERT INTO portfolio (id, user_id, name, description, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		p.ID,
		p.UserID,
		p.Name,
		p.Description,
		p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}
	return nil
}

// GetPortfolioOnID retrieves a single portfolio by its ID.
// Returns apperrors.ErrPortfolioNotFound when no such portfolio exists.
func (s *PortfolioRepository) GetPortfolioOnID(ctx context.Context, portfolioID string) (model.Portfolio, error) {
	query := `
		SELECT id, user_id, name, description, created_at
		FROM portfolio
		WHERE id = ?
	`
	var p model.Portfolio
	var createdAtStr string

	err := s.db.QueryRowContext(ctx, query, portfolioID).Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Description,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio: %w", err)
	}

	p.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Portfolio{}, err
	}

	return p, nil
}

// GetPortfoliosByUser retrieves all portfolios owned by the given user,
// oldest first. Returns an empty slice when the user owns none.
func (s *PortfolioRepository) GetPortfoliosByUser(ctx context.Context, userID string) ([]model.Portfolio, error) {
	query := `
		SELECT id, user_id, name, description, created_at
		FROM portfolio
		WHERE user_id = ?
		ORDER BY created_at ASC
	`
	return s.queryPortfolios(ctx, query, userID)
}

// GetAllPortfolios retrieves every portfolio in the system. Used by the
// snapshot materializer, which runs outside any user context.
func (s *PortfolioRepository) GetAllPortfolios(ctx context.Context) ([]model.Portfolio, error) {
	query := `
		SELECT id, user_id, name, description, created_at
		FROM portfolio
		ORDER BY created_at ASC
	`
	return s.queryPortfolios(ctx, query)
}

func (s *PortfolioRepository) queryPortfolios(ctx context.Context, query string, args ...any) ([]model.Portfolio, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}

	for rows.Next() {
		var p model.Portfolio
		var createdAtStr string

		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Name,
			&p.Description,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}

		p.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}

		portfolios = append(portfolios, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return portfolios, nil
}
