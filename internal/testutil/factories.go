package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mheijden/portfolio-tracker/internal/model"
	"github.com/mheijden/portfolio-tracker/internal/repository"
)

// MakeID returns a fresh UUID string.
func MakeID() string {
	return uuid.New().String()
}

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	user := testutil.NewUser().WithUsername("alice").Build(t, db)
type UserBuilder struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	id := MakeID()
	return &UserBuilder{
		ID:           id,
		Username:     "user-" + id[:8],
		Email:        "user-" + id[:8] + "@example.com",
		PasswordHash: "$2a$10$testhashtesthashtesthashtesthashtesthashtesthashtest",
	}
}

// WithUsername sets a custom username.
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.Username = username
	return b
}

// WithPasswordHash sets a custom password hash.
func (b *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	b.PasswordHash = hash
	return b
}

// Build inserts the user and returns the model.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	user := model.User{
		ID:           b.ID,
		Username:     b.Username,
		Email:        b.Email,
		PasswordHash: b.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := db.Exec(
		`INSERT INTO user (id, username, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to insert test user: %v", err)
	}

	return user
}

// PortfolioBuilder provides a fluent interface for creating test portfolios.
//
// Example usage:
//
//	portfolio := testutil.NewPortfolio().
//	    WithUserID(user.ID).
//	    WithName("Retirement").
//	    Build(t, db)
type PortfolioBuilder struct {
	ID          string
	UserID      string
	Name        string
	Description string
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
// WithUserID is required unless the owning user row already exists.
func NewPortfolio() *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:          MakeID(),
		Name:        "Test Portfolio",
		Description: "Test description",
	}
}

// WithID sets a custom ID.
func (b *PortfolioBuilder) WithID(id string) *PortfolioBuilder {
	b.ID = id
	return b
}

// WithUserID sets the owning user.
func (b *PortfolioBuilder) WithUserID(userID string) *PortfolioBuilder {
	b.UserID = userID
	return b
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// Build inserts the portfolio and returns the model. Creates an owning user
// on the fly when none was set.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	if b.UserID == "" {
		b.UserID = NewUser().Build(t, db).ID
	}

	portfolio := model.Portfolio{
		ID:          b.ID,
		UserID:      b.UserID,
		Name:        b.Name,
		Description: b.Description,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := db.Exec(
		`INSERT INTO portfolio (id, user_id, name, description, created_at) VALUES (?, ?, ?, ?, ?)`,
		portfolio.ID, portfolio.UserID, portfolio.Name, portfolio.Description,
		portfolio.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to insert test portfolio: %v", err)
	}

	return portfolio
}

// AssetBuilder provides a fluent interface for creating test assets.
type AssetBuilder struct {
	ID     string
	Ticker string
	Name   string
}

// NewAsset creates an AssetBuilder with sensible defaults.
func NewAsset(ticker string) *AssetBuilder {
	return &AssetBuilder{
		ID:     MakeID(),
		Ticker: ticker,
		Name:   ticker,
	}
}

// Build inserts the asset and returns the model.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	asset := model.Asset{
		ID:        b.ID,
		Ticker:    b.Ticker,
		Name:      b.Name,
		AssetType: "stock",
	}

	_, err := db.Exec(
		`INSERT INTO asset (id, ticker, name, asset_type) VALUES (?, ?, ?, ?)`,
		asset.ID, asset.Ticker, asset.Name, asset.AssetType,
	)
	if err != nil {
		t.Fatalf("Failed to insert test asset: %v", err)
	}

	return asset
}

// TransactionBuilder provides a fluent interface for inserting transaction
// rows directly, bypassing the ledger. Use the ledger itself in tests that
// exercise sequence assignment.
type TransactionBuilder struct {
	ID          string
	PortfolioID string
	AssetID     string
	Type        model.TransactionType
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Sequence    int64
}

// NewTransaction creates a TransactionBuilder for a buy of 1 at 100.
func NewTransaction(portfolioID, assetID string, sequence int64) *TransactionBuilder {
	return &TransactionBuilder{
		ID:          MakeID(),
		PortfolioID: portfolioID,
		AssetID:     assetID,
		Type:        model.TransactionBuy,
		Quantity:    decimal.NewFromInt(1),
		Price:       decimal.NewFromInt(100),
		Sequence:    sequence,
	}
}

// Sell marks the transaction as a sell.
func (b *TransactionBuilder) Sell() *TransactionBuilder {
	b.Type = model.TransactionSell
	return b
}

// WithQuantity sets quantity from a decimal string.
func (b *TransactionBuilder) WithQuantity(quantity string) *TransactionBuilder {
	b.Quantity = decimal.RequireFromString(quantity)
	return b
}

// WithPrice sets price from a decimal string.
func (b *TransactionBuilder) WithPrice(price string) *TransactionBuilder {
	b.Price = decimal.RequireFromString(price)
	return b
}

// Build inserts the transaction and returns the model.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	tx := model.Transaction{
		ID:          b.ID,
		PortfolioID: b.PortfolioID,
		AssetID:     b.AssetID,
		Type:        b.Type,
		Quantity:    b.Quantity,
		Price:       b.Price,
		Sequence:    b.Sequence,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := db.Exec(
		`INSERT INTO "transaction" (id, portfolio_id, asset_id, type, quantity, price, seq, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.PortfolioID, tx.AssetID, string(tx.Type),
		tx.Quantity.String(), tx.Price.String(), tx.Sequence,
		tx.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to insert test transaction: %v", err)
	}

	return tx
}

// QuoteBuilder provides a fluent interface for creating test quotes.
type QuoteBuilder struct {
	ID        string
	AssetID   string
	QuoteDate time.Time
	Close     decimal.Decimal
}

// NewQuote creates a QuoteBuilder with sensible defaults.
func NewQuote(assetID string) *QuoteBuilder {
	return &QuoteBuilder{
		ID:        MakeID(),
		AssetID:   assetID,
		QuoteDate: time.Now().UTC().Truncate(24 * time.Hour),
		Close:     decimal.NewFromInt(105),
	}
}

// WithClose sets the closing price from a decimal string.
func (b *QuoteBuilder) WithClose(price string) *QuoteBuilder {
	b.Close = decimal.RequireFromString(price)
	return b
}

// Build inserts the quote and returns the model.
func (b *QuoteBuilder) Build(t *testing.T, db *sql.DB) model.Quote {
	t.Helper()

	quote := model.Quote{
		ID:        b.ID,
		AssetID:   b.AssetID,
		QuoteDate: b.QuoteDate,
		Open:      b.Close,
		Close:     b.Close,
		High:      b.Close,
		Low:       b.Close,
		Volume:    1000000,
	}

	// Quotes go through the repository so the decimal and date encoding is
	// the same one production writes use.
	err := repository.NewQuoteRepository(db).InsertQuote(context.Background(), quote)
	if err != nil {
		t.Fatalf("Failed to insert test quote: %v", err)
	}

	return quote
}
