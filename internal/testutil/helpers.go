package testutil

import (
	"database/sql"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rahul-Chotaliya/tradehub/internal/costbasis"
	"github.com/Rahul-Chotaliya/tradehub/internal/repository"
	"github.com/Rahul-Chotaliya/tradehub/internal/service"
)

// TestTokenTTL is the token lifetime used by NewTestAuthService.
const TestTokenTTL = time.Hour

func NewTestAssetService(t *testing.T, db *sql.DB) *service.AssetService {
	t.Helper()
	return NewTestAssetServiceWithPolicy(t, db, costbasis.PolicyReject)
}

func NewTestAssetServiceWithPolicy(t *testing.T, db *sql.DB, policy costbasis.Policy) *service.AssetService {
	t.Helper()

	return service.NewAssetService(
		db,
		repository.NewAssetRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewCategoryRepository(db),
		policy,
	)
}

func NewTestCategoryService(t *testing.T, db *sql.DB) *service.CategoryService {
	t.Helper()

	return service.NewCategoryService(
		repository.NewCategoryRepository(db),
		repository.NewAssetRepository(db),
	)
}

// NewTestAuthService builds an AuthService with a fresh key and the cheapest bcrypt cost.
func NewTestAuthService(t *testing.T, db *sql.DB) *service.AuthService {
	t.Helper()

	return service.NewAuthService(
		repository.NewUserRepository(db),
		NewTestKey(t),
		TestTokenTTL,
	).WithHashCost(bcrypt.MinCost)
}

func NewTestReconcileService(t *testing.T, db *sql.DB) *service.ReconcileService {
	t.Helper()

	return service.NewReconcileService(
		db,
		repository.NewAssetRepository(db),
		repository.NewTransactionRepository(db),
		costbasis.PolicyReject,
		4,
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db)
}

// NewTestKey generates a random fernet key.
func NewTestKey(t *testing.T) *fernet.Key {
	t.Helper()

	key := new(fernet.Key)
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}
	return key
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeUsername generates a unique username for testing.
//
// Example usage:
//
//	name := testutil.MakeUsername("alice")
//	// Returns: "alice_k3j9x2"
func MakeUsername(base string) string {
	if base == "" {
		base = "user"
	}
	return base + "_" + strings.ToLower(randomAlphanumeric(6))
}

// MakeAssetName generates a unique asset name for testing.
//
// Example usage:
//
//	name := testutil.MakeAssetName("Bitcoin")
//	// Returns: "Bitcoin XYZ789"
func MakeAssetName(base string) string {
	if base == "" {
		base = "Asset"
	}
	return base + " " + randomAlphanumeric(6)
}

// MakeSlug generates a 15 letter lowercase slug like the ones the service assigns.
func MakeSlug() string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	result := make([]byte, 15)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = letters[rand.Intn(len(letters))]
	}
	return string(result)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
