package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mheijden/portfolio-tracker/internal/apperrors"
	"github.com/mheijden/portfolio-tracker/internal/auth"
	"github.com/mheijden/portfolio-tracker/internal/repository"
	"github.com/mheijden/portfolio-tracker/internal/testutil"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens, err := auth.NewTokenService("")
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}

	token, err := tokens.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	principal, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if principal.UserID != "user-123" {
		t.Errorf("UserID = %q, want user-123", principal.UserID)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tokens, err := auth.NewTokenService("")
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}

	if _, err := tokens.Verify("not-a-token"); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	issuer, err := auth.NewTokenService("")
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}
	verifier, err := auth.NewTokenService("")
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("Token signed with a different key must be rejected, got %v", err)
	}
}

func TestOwnerAuthorizer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.NewUser().Build(t, db)
	other := testutil.NewUser().Build(t, db)
	portfolio := testutil.NewPortfolio().WithUserID(owner.ID).Build(t, db)

	authorizer := auth.NewOwnerAuthorizer(repository.NewPortfolioRepository(db))
	ctx := context.Background()

	ok, err := authorizer.CanAccess(ctx, auth.Principal{UserID: owner.ID}, portfolio.ID)
	if err != nil {
		t.Fatalf("CanAccess returned error: %v", err)
	}
	if !ok {
		t.Error("Owner must be able to access their portfolio")
	}

	ok, err = authorizer.CanAccess(ctx, auth.Principal{UserID: other.ID}, portfolio.ID)
	if err != nil {
		t.Fatalf("CanAccess returned error: %v", err)
	}
	if ok {
		t.Error("Non-owner must not be able to access the portfolio")
	}

	_, err = authorizer.CanAccess(ctx, auth.Principal{UserID: owner.ID}, testutil.MakeID())
	if !errors.Is(err, apperrors.ErrPortfolioNotFound) {
		t.Errorf("Expected ErrPortfolioNotFound for unknown portfolio, got %v", err)
	}
}
