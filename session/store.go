package session

import (
	"encoding/json"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KeylaPalacios/divine-beauty/models"
)

var ErrNotFound = errors.New("session not found")

// A session is accessed by one request at a time in the normal flow, but
// nothing stops a client from firing concurrent requests with the same
// token. The cart read-modify-write on the session row is therefore a
// critical section; a striped lock keyed by token serializes it.
var cartLocks [64]sync.Mutex

// Lock acquires the cart critical section for a token and returns the
// unlock func. Callers must hold it around any load-mutate-save cycle.
func Lock(token string) func() {
	h := fnv.New32a()
	h.Write([]byte(token))
	mu := &cartLocks[h.Sum32()%uint32(len(cartLocks))]
	mu.Lock()
	return mu.Unlock
}

// Create opens a new session for a user with an empty cart.
func Create(db *gorm.DB, userID uint) (*models.Session, error) {
	sess := &models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		Cart:      "{}",
		CreatedAt: time.Now(),
	}
	if err := db.Create(sess).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

// Load fetches the session row for a token.
func Load(db *gorm.DB, token string) (*models.Session, error) {
	var sess models.Session
	if err := db.First(&sess, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sess, nil
}

// Invalidate deletes the session row. Deleting a missing row is a no-op,
// so stale tokens can be invalidated unconditionally.
func Invalidate(db *gorm.DB, token string) error {
	return db.Delete(&models.Session{}, "token = ?", token).Error
}

// InvalidateUser deletes every session belonging to a user.
func InvalidateUser(db *gorm.DB, userID uint) error {
	return db.Delete(&models.Session{}, "user_id = ?", userID).Error
}

// Cart decodes the session's cart payload. A blank or fresh payload is an
// empty cart, never an error visible to the flow.
func Cart(sess *models.Session) models.Cart {
	var cart models.Cart
	if sess.Cart == "" {
		return cart
	}
	if err := json.Unmarshal([]byte(sess.Cart), &cart); err != nil {
		return models.Cart{}
	}
	return cart
}

// SaveCart writes the whole cart back into the session row in one update.
// db may be a transaction handle: checkout passes its tx so the cart clear
// commits or rolls back together with the order insert.
func SaveCart(db *gorm.DB, sess *models.Session, cart models.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	res := db.Model(&models.Session{}).Where("token = ?", sess.Token).Update("cart", string(payload))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	sess.Cart = string(payload)
	return nil
}
