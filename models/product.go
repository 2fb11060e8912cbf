package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductCategory string

const (
	CategoryHairCare ProductCategory = "haircare"
	CategoryMakeup   ProductCategory = "makeup"
	CategorySkinCare ProductCategory = "skincare"
	CategoryPerfume  ProductCategory = "perfume"
)

// CategoryOrder fixes the catalog traversal order across the four
// product collections.
var CategoryOrder = []ProductCategory{
	CategoryHairCare,
	CategoryMakeup,
	CategorySkinCare,
	CategoryPerfume,
}

var categoryLabels = map[ProductCategory]string{
	CategoryHairCare: "Hair care",
	CategoryMakeup:   "Makeup",
	CategorySkinCare: "Skin care",
	CategoryPerfume:  "Perfume",
}

// ValidCategory reports whether key is one of the four fixed category keys.
func ValidCategory(key string) bool {
	_, ok := categoryLabels[ProductCategory(key)]
	return ok
}

// CategoryLabel returns the display label for a category key.
func CategoryLabel(cat ProductCategory) string {
	return categoryLabels[cat]
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Category    ProductCategory `gorm:"type:VARCHAR(20);index;not null" json:"category"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	Image       string          `json:"image"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
