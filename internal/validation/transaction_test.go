package validation_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mheijden/portfolio-tracker/internal/api/request"
	"github.com/mheijden/portfolio-tracker/internal/validation"
)

func validRequest() request.CreateTransactionRequest {
	return request.CreateTransactionRequest{
		PortfolioID: "b9a1c2d3-0000-4000-8000-000000000001",
		AssetTicker: "aapl",
		Type:        "buy",
		Quantity:    decimal.RequireFromString("10"),
		Price:       decimal.RequireFromString("150.25"),
	}
}

func TestValidateCreateTransaction(t *testing.T) {
	if err := validation.ValidateCreateTransaction(validRequest()); err != nil {
		t.Fatalf("Valid request rejected: %v", err)
	}
}

func TestValidateCreateTransactionRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*request.CreateTransactionRequest)
		message string
	}{
		{
			name:    "zero quantity",
			mutate:  func(r *request.CreateTransactionRequest) { r.Quantity = decimal.Zero },
			message: "quantity must be positive",
		},
		{
			name: "negative quantity",
			mutate: func(r *request.CreateTransactionRequest) {
				r.Quantity = decimal.RequireFromString("-1")
			},
			message: "quantity must be positive",
		},
		{
			name:    "zero price",
			mutate:  func(r *request.CreateTransactionRequest) { r.Price = decimal.Zero },
			message: "price must be positive",
		},
		{
			name:    "invalid type",
			mutate:  func(r *request.CreateTransactionRequest) { r.Type = "short" },
			message: "invalid type",
		},
		{
			name:    "missing ticker",
			mutate:  func(r *request.CreateTransactionRequest) { r.AssetTicker = "  " },
			message: "asset ticker is required",
		},
		{
			name:    "malformed ticker",
			mutate:  func(r *request.CreateTransactionRequest) { r.AssetTicker = "WAY TOO LONG TICKER" },
			message: "malformed ticker",
		},
		{
			name:    "bad portfolio id",
			mutate:  func(r *request.CreateTransactionRequest) { r.PortfolioID = "not-a-uuid" },
			message: "invalid UUID",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)

			err := validation.ValidateCreateTransaction(req)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tc.message) {
				t.Errorf("Error %q does not mention %q", err.Error(), tc.message)
			}
		})
	}
}

func TestNormalizeTicker(t *testing.T) {
	if got := validation.NormalizeTicker("  aapl "); got != "AAPL" {
		t.Errorf("NormalizeTicker = %q, want AAPL", got)
	}
}
