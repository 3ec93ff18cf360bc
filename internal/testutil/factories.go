package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rahul-Chotaliya/tradehub/internal/model"
	"github.com/Rahul-Chotaliya/tradehub/internal/repository"
)

// DefaultPassword is the password of users built without WithPassword.
const DefaultPassword = "s3cret-password"

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	user := testutil.NewUser().Build(t, db)
//	alice := testutil.NewUser().WithUsername("alice").Build(t, db)
type UserBuilder struct {
	ID       string
	Username string
	Password string
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		ID:       MakeID(),
		Username: MakeUsername("user"),
		Password: DefaultPassword,
	}
}

// WithUsername sets a custom username.
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.Username = username
	return b
}

// WithPassword sets a custom password.
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.Password = password
	return b
}

// Build creates the user in the database and returns it.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(b.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	createdAt := time.Now().UTC()
	_, err = db.Exec(
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		b.ID, b.Username, string(hash), repository.FormatTime(createdAt),
	)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return model.User{
		ID:           b.ID,
		Username:     b.Username,
		PasswordHash: string(hash),
		CreatedAt:    createdAt,
	}
}

// AssetBuilder provides a fluent interface for creating test assets.
// The cached position is stored as given; it is not derived from any transactions.
//
// Example usage:
//
//	asset := testutil.NewAsset(user.ID).Build(t, db)
//	asset := testutil.NewAsset(user.ID).
//	    InCategory(testutil.CategoryStocks).
//	    WithName("ACME").
//	    Build(t, db)
type AssetBuilder struct {
	ID           string
	Name         string
	Slug         string
	CategorySlug string
	OwnerID      string
	Position     model.Position
	CreatedAt    time.Time
}

// NewAsset creates an AssetBuilder for the given owner in the crypto category.
func NewAsset(ownerID string) *AssetBuilder {
	return &AssetBuilder{
		ID:           MakeID(),
		Name:         MakeAssetName("Asset"),
		Slug:         MakeSlug(),
		CategorySlug: CategoryCrypto,
		OwnerID:      ownerID,
		CreatedAt:    time.Now().UTC(),
	}
}

// WithName sets a custom name.
func (b *AssetBuilder) WithName(name string) *AssetBuilder {
	b.Name = name
	return b
}

// WithSlug sets a custom slug.
func (b *AssetBuilder) WithSlug(slug string) *AssetBuilder {
	b.Slug = slug
	return b
}

// InCategory sets the category by slug.
func (b *AssetBuilder) InCategory(slug string) *AssetBuilder {
	b.CategorySlug = slug
	return b
}

// WithPosition sets the cached position.
func (b *AssetBuilder) WithPosition(quantity, averageCost, totalCost string) *AssetBuilder {
	b.Position = model.Position{
		Quantity:    decimal.RequireFromString(quantity),
		AverageCost: decimal.RequireFromString(averageCost),
		TotalCost:   decimal.RequireFromString(totalCost),
	}
	return b
}

// WithCreatedAt sets the creation time.
func (b *AssetBuilder) WithCreatedAt(createdAt time.Time) *AssetBuilder {
	b.CreatedAt = createdAt.UTC()
	return b
}

// Build creates the asset in the database and returns it.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	asset := model.Asset{
		ID:           b.ID,
		Name:         b.Name,
		Slug:         b.Slug,
		CategoryID:   CategoryID(t, db, b.CategorySlug),
		CategorySlug: b.CategorySlug,
		OwnerID:      b.OwnerID,
		Position:     b.Position,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.CreatedAt,
	}

	query := `
		INSERT INTO asset (id, name, slug, category_id, owner_id, quantity, average_cost, total_cost, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query,
		asset.ID, asset.Name, asset.Slug, asset.CategoryID, asset.OwnerID,
		asset.Quantity.String(), asset.AverageCost.String(), asset.TotalCost.String(),
		repository.FormatTime(asset.CreatedAt), repository.FormatTime(asset.UpdatedAt),
	)
	if err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}

	return asset
}

// TransactionBuilder provides a fluent interface for inserting ledger rows directly,
// bypassing the cost basis recompute.
//
// Example usage:
//
//	testutil.NewTransaction(asset.ID).Buy("10", "100").Build(t, db)
type TransactionBuilder struct {
	ID        string
	AssetID   string
	Amount    decimal.Decimal
	Cost      decimal.Decimal
	Side      model.Side
	Timestamp time.Time
}

// NewTransaction creates a TransactionBuilder for a buy of one unit at zero cost.
func NewTransaction(assetID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:        MakeID(),
		AssetID:   assetID,
		Amount:    decimal.NewFromInt(1),
		Cost:      decimal.Zero,
		Side:      model.SideBuy,
		Timestamp: time.Now().UTC(),
	}
}

// Buy makes the transaction a buy of amount for a total cost.
func (b *TransactionBuilder) Buy(amount, cost string) *TransactionBuilder {
	b.Side = model.SideBuy
	b.Amount = decimal.RequireFromString(amount)
	b.Cost = decimal.RequireFromString(cost)
	return b
}

// Sell makes the transaction a sell of amount.
func (b *TransactionBuilder) Sell(amount string) *TransactionBuilder {
	b.Side = model.SideSell
	b.Amount = decimal.RequireFromString(amount)
	b.Cost = decimal.Zero
	return b
}

// WithTimestamp sets the ledger timestamp.
func (b *TransactionBuilder) WithTimestamp(ts time.Time) *TransactionBuilder {
	b.Timestamp = ts.UTC()
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	tx := model.Transaction{
		ID:        b.ID,
		AssetID:   b.AssetID,
		Amount:    b.Amount,
		Cost:      b.Cost,
		Side:      b.Side,
		Timestamp: b.Timestamp,
		CreatedAt: time.Now().UTC(),
	}

	query := `
		INSERT INTO "transaction" (id, asset_id, amount, cost, side, timestamp, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query,
		tx.ID, tx.AssetID, tx.Amount.String(), tx.Cost.String(), string(tx.Side),
		repository.FormatTime(tx.Timestamp), repository.FormatTime(tx.CreatedAt),
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return tx
}
