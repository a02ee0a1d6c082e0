// Package auth is the authentication and authorization collaborator. The
// core service layer only consumes the Authorizer capability check; token
// issuing and verification live here, at the edge, and never inside the
// ledger/aggregator/cache trio.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/mheijden/portfolio-tracker/internal/apperrors"
	"github.com/mheijden/portfolio-tracker/internal/repository"
)

// Principal identifies an authenticated caller.
type Principal struct {
	UserID string
}

// Authorizer answers the capability question "may this principal access this
// portfolio". Implementations must not mutate anything.
type Authorizer interface {
	CanAccess(ctx context.Context, principal Principal, portfolioID string) (bool, error)
}

// OwnerAuthorizer grants access to the owner of the portfolio and nobody
// else.
type OwnerAuthorizer struct {
	portfolios *repository.PortfolioRepository
}

// NewOwnerAuthorizer creates an OwnerAuthorizer backed by the portfolio repository.
func NewOwnerAuthorizer(portfolios *repository.PortfolioRepository) *OwnerAuthorizer {
	return &OwnerAuthorizer{portfolios: portfolios}
}

// CanAccess reports whether the principal owns the portfolio. An unknown
// portfolio propagates apperrors.ErrPortfolioNotFound rather than answering
// false, so callers can distinguish "no such portfolio" from "not yours".
func (a *OwnerAuthorizer) CanAccess(ctx context.Context, principal Principal, portfolioID string) (bool, error) {
	portfolio, err := a.portfolios.GetPortfolioOnID(ctx, portfolioID)
	if err != nil {
		return false, err
	}
	return portfolio.UserID == principal.UserID, nil
}

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

// TokenService issues and verifies fernet tokens whose payload is the user ID.
type TokenService struct {
	keys []*fernet.Key
}

// NewTokenService creates a TokenService from a base64 fernet key. An empty
// key generates an ephemeral one, which invalidates all outstanding tokens
// when the process restarts.
func NewTokenService(encodedKey string) (*TokenService, error) {
	if encodedKey == "" {
		key := &fernet.Key{}
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate token key: %w", err)
		}
		return &TokenService{keys: []*fernet.Key{key}}, nil
	}

	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode token key: %w", err)
	}
	return &TokenService{keys: []*fernet.Key{key}}, nil
}

// Issue creates a token for the given user ID.
func (s *TokenService) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("cannot issue token for empty user ID")
	}
	token, err := fernet.EncryptAndSign([]byte(userID), s.keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return string(token), nil
}

// Verify validates a token and returns the principal it was issued for.
// Returns apperrors.ErrInvalidToken for a malformed, forged or expired token.
func (s *TokenService) Verify(token string) (Principal, error) {
	payload := fernet.VerifyAndDecrypt([]byte(token), TokenTTL, s.keys)
	if payload == nil {
		return Principal{}, apperrors.ErrInvalidToken
	}
	return Principal{UserID: string(payload)}, nil
}
