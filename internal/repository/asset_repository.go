package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mheijden/portfolio-tracker/internal/apperrors"
	"github.com/mheijden/portfolio-tracker/internal/model"
)

// AssetRepository provides data access methods for the asset table.
// Assets are created lazily: the first transaction referencing an unknown
// ticker creates the row.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// GetAssetByTicker retrieves an asset by its normalized ticker.
// Returns apperrors.ErrAssetNotFound when no such asset exists.
func (s *AssetRepository) GetAssetByTicker(ctx context.Context, ticker string) (model.Asset, error) {
	query := `
		SELECT id, ticker, name, asset_type
		FROM asset
		WHERE ticker = ?
	`
	var a model.Asset

	err := s.db.QueryRowContext(ctx, query, ticker).Scan(
		&a.ID,
		&a.Ticker,
		&a.Name,
		&a.AssetType,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to query asset: %w", err)
	}

	return a, nil
}

// FindOrCreateAsset returns the asset for the given normalized ticker,
// creating it with the ticker as its name when it does not exist yet. A
// concurrent creation of the same ticker is absorbed by the unique constraint
// and resolved with a re-read.
func (s *AssetRepository) FindOrCreateAsset(ctx context.Context, ticker string) (model.Asset, error) {
	asset, err := s.GetAssetByTicker(ctx, ticker)
	if err == nil {
		return asset, nil
	}
	if !errors.Is(err, apperrors.ErrAssetNotFound) {
		return model.Asset{}, err
	}

	asset = model.Asset{
		ID:        uuid.New().String(),
		Ticker:    ticker,
		Name:      ticker,
		AssetType: "stock",
	}

	query := `
		INSERT OR IGNORE INTO asset (id, ticker, name, asset_type)
		VALUES (?, ?, ?, ?)
	`
	if _, err := s.db.ExecContext(ctx, query, asset.ID, asset.Ticker, asset.Name, asset.AssetType); err != nil {
		return model.Asset{}, fmt.Errorf("failed to insert asset: %w", err)
	}

	// Re-read: either our row or the one a concurrent append won with.
	return s.GetAssetByTicker(ctx, ticker)
}

// GetAssets retrieves all known assets, ordered by ticker.
func (s *AssetRepository) GetAssets(ctx context.Context) ([]model.Asset, error) {
	query := `
		SELECT id, ticker, name, asset_type
		FROM asset
		ORDER BY ticker ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}

	for rows.Next() {
		var a model.Asset
		if err := rows.Scan(&a.ID, &a.Ticker, &a.Name, &a.AssetType); err != nil {
			return nil, fmt.Errorf("failed to scan asset table results: %w", err)
		}
		assets = append(assets, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}

	return assets, nil
}
