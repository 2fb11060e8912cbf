package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/KeylaPalacios/divine-beauty/models"
)

var (
	// TaxRate is applied to the subtotal, rounded half-up to 2 places.
	TaxRate = decimal.New(16, -2) // 0.16

	// ShippingFee is a flat fee charged on any non-empty cart.
	ShippingFee = decimal.New(12000, -2) // 120.00
)

// Line is a cart line extended with its computed line total.
type Line struct {
	models.CartLine
	LineTotal decimal.Decimal `json:"line_total"`
}

// Snapshot is the derived pricing of a cart at a point in time. It is
// never persisted or cached: every screen recomputes it from the current
// cart so no two views can disagree on totals.
type Snapshot struct {
	Lines    []Line          `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Price derives the pricing snapshot for a set of cart lines. Pure: same
// lines in, same snapshot out, no side effects. All arithmetic is
// fixed-point decimal; decimal.Round rounds halves away from zero, which
// is the currency half-up convention for non-negative amounts.
func Price(lines []models.CartLine) Snapshot {
	snap := Snapshot{
		Lines:    make([]Line, 0, len(lines)),
		Subtotal: decimal.Zero,
		Shipping: decimal.Zero,
	}
	for _, l := range lines {
		lineTotal := l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		snap.Subtotal = snap.Subtotal.Add(lineTotal)
		snap.Lines = append(snap.Lines, Line{CartLine: l, LineTotal: lineTotal})
	}
	snap.Tax = snap.Subtotal.Mul(TaxRate).Round(2)
	if len(lines) > 0 {
		snap.Shipping = ShippingFee
	}
	snap.Total = snap.Subtotal.Add(snap.Tax).Add(snap.Shipping)
	return snap
}
