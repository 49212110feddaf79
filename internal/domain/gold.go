package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoldHolding tracks a user's cumulative digital gold position. At most one
// holding exists per user; it is created lazily on first access. Grams only
// ever grow, and CurrentValue is the cumulative cost basis, not a live
// market valuation.
type GoldHolding struct {
	ID           string
	UserID       string
	Grams        decimal.Decimal
	CurrentValue decimal.Decimal
	LastUpdated  time.Time
}

// ApplyPurchase adds a purchase to the holding and stamps the update time.
func (h *GoldHolding) ApplyPurchase(grams, amount decimal.Decimal, at time.Time) {
	h.Grams = h.Grams.Add(grams)
	h.CurrentValue = h.CurrentValue.Add(amount)
	h.LastUpdated = at
}
