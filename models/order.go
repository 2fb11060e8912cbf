package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods accepted at checkout. "processing" a payment is local
// field validation only; no gateway is ever contacted.
const (
	PaymentMethodCard   = "card"
	PaymentMethodPayPal = "paypal"
)

// Order is written once at checkout commit and never updated. Detail holds
// the human-readable line-item ledger generated from the pricing snapshot
// at commit time.
type Order struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderRef      string          `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID        uint            `gorm:"index;not null" json:"user_id"`
	User          User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(10,2)" json:"subtotal"`
	PaymentMethod string          `gorm:"type:VARCHAR(60)" json:"payment_method"`
	ShippingFee   decimal.Decimal `gorm:"type:numeric(10,2)" json:"shipping_fee"`
	Address       string          `json:"address"`
	Detail        string          `json:"detail"`
	CreatedAt     time.Time       `json:"created_at"`
}
