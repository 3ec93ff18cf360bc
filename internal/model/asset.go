package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is the derived holding state of an asset.
type Position struct {
	Quantity    decimal.Decimal `json:"quantity"`
	AverageCost decimal.Decimal `json:"average_cost"`
	TotalCost   decimal.Decimal `json:"total_cost"`
}

// Equal reports whether two positions hold numerically identical values.
func (p Position) Equal(o Position) bool {
	return p.Quantity.Equal(o.Quantity) &&
		p.AverageCost.Equal(o.AverageCost) &&
		p.TotalCost.Equal(o.TotalCost)
}

// Asset is a user-owned holding within a category.
// The embedded Position is a cache of the cost basis over the asset's transactions.
type Asset struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	CategoryID   string    `json:"-"`
	CategorySlug string    `json:"category"`
	OwnerID      string    `json:"-"`
	Position
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AssetDetail is an asset with its ledger, ordered by timestamp ascending.
type AssetDetail struct {
	Asset
	Transactions []Transaction `json:"transactions"`
}
