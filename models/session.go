package models

import "time"

// Session is the server-side session row. Cart holds the JSON-encoded
// session cart; the row is the cart's only authoritative home, so clearing
// it inside the checkout transaction makes order-create + cart-clear
// atomic.
type Session struct {
	Token     string    `gorm:"primaryKey" json:"token"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Cart      string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
