package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CartLine is one aggregated cart entry for a (category, product id) pair.
// Name, Price and Image are snapshots taken at first add; Price is NOT
// re-read from the catalog on later adds of the same key.
type CartLine struct {
	Key           string          `json:"key"`
	Category      ProductCategory `json:"category"`
	ProductID     uint            `json:"product_id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	CategoryLabel string          `json:"category_label"`
	Image         string          `json:"image"`
}

// CartKey builds the composite line key for a category and product id.
func CartKey(category ProductCategory, productID uint) string {
	return fmt.Sprintf("%s-%d", category, productID)
}

// Cart is the session-scoped set of lines, ordered by insertion. A line
// with quantity < 1 never exists: dropping below 1 removes the line.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Find returns a pointer into Lines for key, or nil.
func (c *Cart) Find(key string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].Key == key {
			return &c.Lines[i]
		}
	}
	return nil
}

// Remove deletes the line for key, reporting whether it was present.
func (c *Cart) Remove(key string) bool {
	for i := range c.Lines {
		if c.Lines[i].Key == key {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Snapshot returns a read-only copy of the lines in insertion order.
func (c Cart) Snapshot() []CartLine {
	out := make([]CartLine, len(c.Lines))
	copy(out, c.Lines)
	return out
}
