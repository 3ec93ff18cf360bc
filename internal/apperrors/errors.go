package apperrors

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error below wraps exactly one of these so the API layer can
// map it to an HTTP status with errors.Is.
var (
	// ErrValidation indicates the request carried invalid input (400).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the resource does not exist or is not visible to the caller (404).
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness constraint could not be satisfied (409).
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized indicates a missing, invalid or expired credential (401).
	ErrUnauthorized = errors.New("unauthorized")
)

// Domain entity errors represent missing entities. Not-owned entities report the same
// error as missing ones.
var (
	// ErrCategoryNotFound indicates that no category has the given slug.
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)

	// ErrAssetNotFound indicates that the asset does not exist in the category or
	// belongs to another user.
	ErrAssetNotFound = fmt.Errorf("asset %w", ErrNotFound)

	// ErrTransactionNotFound indicates that the transaction does not exist or does not
	// belong to the resolved asset.
	ErrTransactionNotFound = fmt.Errorf("transaction %w", ErrNotFound)

	// ErrUserNotFound indicates that no user has the given username or id.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInsufficientHoldings indicates that a sell would exceed the quantity held at
	// that point of the ledger.
	ErrInsufficientHoldings = fmt.Errorf("%w: insufficient holdings", ErrValidation)

	// ErrInvalidAmount indicates a zero or negative transaction amount.
	ErrInvalidAmount = fmt.Errorf("%w: amount must be positive", ErrValidation)

	// ErrAmountOutOfRange indicates an amount with more digits or decimal places than the
	// ledger stores.
	ErrAmountOutOfRange = fmt.Errorf("%w: amount allows at most 50 digits with 10 decimal places", ErrValidation)

	// ErrCostOutOfRange indicates a cost with more digits or decimal places than the ledger stores.
	ErrCostOutOfRange = fmt.Errorf("%w: cost allows at most 100 digits with 2 decimal places", ErrValidation)

	// ErrNegativeCost indicates a negative transaction cost.
	ErrNegativeCost = fmt.Errorf("%w: cost cannot be negative", ErrValidation)

	// ErrInvalidSide indicates a transaction side other than buy or sell.
	ErrInvalidSide = fmt.Errorf("%w: transaction type must be buy or sell", ErrValidation)

	// ErrInvalidPolicy indicates an unknown oversell policy name.
	ErrInvalidPolicy = fmt.Errorf("%w: unknown oversell policy", ErrValidation)

	// ErrInvalidCredentials indicates that the username/password pair did not match.
	ErrInvalidCredentials = fmt.Errorf("%w: unable to log in with provided credentials", ErrValidation)

	// ErrSlugTaken indicates that a generated slug is already used in the category.
	ErrSlugTaken = fmt.Errorf("%w: slug already taken in category", ErrConflict)

	// ErrSlugExhausted indicates that slug generation collided on every attempt.
	ErrSlugExhausted = fmt.Errorf("%w: could not generate a unique slug", ErrConflict)

	// ErrDuplicateAsset indicates that the owner already has an asset with this name in the category.
	ErrDuplicateAsset = fmt.Errorf("%w: asset with this name already exists in category", ErrConflict)

	// ErrDuplicateUsername indicates that the username is taken.
	ErrDuplicateUsername = fmt.Errorf("%w: username already exists", ErrConflict)
)

// Authentication errors.
var (
	ErrMissingToken = fmt.Errorf("%w: authentication credentials were not provided", ErrUnauthorized)
	ErrInvalidToken = fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
)

// Operation failure errors are used as user-facing messages for 500 responses.
var (
	ErrFailedToRetrieveCategories = errors.New("failed to retrieve categories")
	ErrFailedToRetrieveAssets     = errors.New("failed to retrieve assets")
	ErrFailedToRetrieveAsset      = errors.New("failed to retrieve asset")
	ErrFailedToCreateAsset        = errors.New("failed to create asset")
	ErrFailedToDeleteAsset        = errors.New("failed to delete asset")
	ErrFailedToCreateTransaction  = errors.New("failed to create transaction")
	ErrFailedToDeleteTransaction  = errors.New("failed to delete transaction")
	ErrFailedToIssueToken         = errors.New("failed to issue token")
	ErrFailedToGetVersionInfo     = errors.New("failed to get version information")
)
