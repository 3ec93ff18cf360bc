package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is the direction of a transaction.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Transaction represents a buy or sell event recorded against an asset.
// Cost is the total cost of the transaction, not a per-unit price.
type Transaction struct {
	ID        string          `json:"id"`
	AssetID   string          `json:"-"`
	Amount    decimal.Decimal `json:"amount"`
	Cost      decimal.Decimal `json:"cost"`
	Side      Side            `json:"transaction_type"`
	Timestamp time.Time       `json:"timestamp"`
	CreatedAt time.Time       `json:"created_at"`
}

// TransactionResult is returned after a ledger mutation: the affected transaction
// together with the asset's recomputed cached position.
type TransactionResult struct {
	Transaction Transaction `json:"transaction"`
	Asset       Asset       `json:"asset"`
}
