package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/mheijden/portfolio-tracker/internal/apperrors"
	"github.com/mheijden/portfolio-tracker/internal/repository"
	"github.com/mheijden/portfolio-tracker/internal/service"
	"github.com/mheijden/portfolio-tracker/internal/testutil"
)

func setupAssetService(t *testing.T) (*service.AssetService, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := service.NewAssetService(
		repository.NewAssetRepository(db),
		repository.NewQuoteRepository(db),
	)
	return svc, db
}

func TestAssetService_GetQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the latest stored quote", func(t *testing.T) {
		svc, db := setupAssetService(t)
		asset := testutil.NewAsset("VWRL").Build(t, db)
		testutil.NewQuote(asset.ID).WithClose("103.20").Build(t, db)

		quote, err := svc.GetQuote(ctx, "vwrl")
		if err != nil {
			t.Fatalf("GetQuote failed: %v", err)
		}
		if quote.Close.String() != "103.2" {
			t.Errorf("Expected close 103.2, got %s", quote.Close)
		}
		if quote.Ticker != "VWRL" {
			t.Errorf("Expected ticker VWRL, got %s", quote.Ticker)
		}
	})

	t.Run("returns a placeholder when no quote is stored", func(t *testing.T) {
		svc, db := setupAssetService(t)
		asset := testutil.NewAsset("VUSA").Build(t, db)

		quote, err := svc.GetQuote(ctx, "VUSA")
		if err != nil {
			t.Fatalf("GetQuote failed: %v", err)
		}
		if quote.AssetID != asset.ID {
			t.Errorf("Expected asset %s, got %s", asset.ID, quote.AssetID)
		}
		if quote.Close.String() != "105" {
			t.Errorf("Expected placeholder close 105, got %s", quote.Close)
		}
	})

	t.Run("returns ErrAssetNotFound for an unknown ticker", func(t *testing.T) {
		svc, _ := setupAssetService(t)

		_, err := svc.GetQuote(ctx, "NOPE")
		if !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound, got %v", err)
		}
	})
}

func TestAssetService_GetAssets(t *testing.T) {
	svc, db := setupAssetService(t)
	testutil.NewAsset("VWRL").Build(t, db)
	testutil.NewAsset("VUSA").Build(t, db)

	assets, err := svc.GetAssets(context.Background())
	if err != nil {
		t.Fatalf("GetAssets failed: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("Expected 2 assets, got %d", len(assets))
	}
}
