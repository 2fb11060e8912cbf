package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/KeylaPalacios/divine-beauty/catalog"
	"github.com/KeylaPalacios/divine-beauty/middleware"
	"github.com/KeylaPalacios/divine-beauty/models"
	"github.com/KeylaPalacios/divine-beauty/pricing"
	"github.com/KeylaPalacios/divine-beauty/session"
)

// -------- Core Logic --------
//
// Every mutation is a locked load-mutate-save cycle on the session row:
// the cart is re-read inside the critical section and written back whole,
// so a partially-updated cart is never visible and concurrent requests on
// one session cannot lose updates.

// AddItem resolves the product and merges it into the cart. A repeat add
// of the same (category, id) increments the quantity but keeps the name,
// price and image snapshots from the first add. Quantities below 1 are
// coerced to 1.
func AddItem(db *gorm.DB, sess *models.Session, category string, productID uint, quantity int) (models.CartLine, error) {
	if quantity < 1 {
		quantity = 1
	}
	view, err := catalog.Fetch(db, category, productID)
	if err != nil {
		return models.CartLine{}, err
	}

	unlock := session.Lock(sess.Token)
	defer unlock()

	fresh, err := session.Load(db, sess.Token)
	if err != nil {
		return models.CartLine{}, err
	}
	cart := session.Cart(fresh)

	key := models.CartKey(view.Category, view.ID)
	line := cart.Find(key)
	if line != nil {
		line.Quantity += quantity
	} else {
		cart.Lines = append(cart.Lines, models.CartLine{
			Key:           key,
			Category:      view.Category,
			ProductID:     view.ID,
			Name:          view.Name,
			Price:         view.Price,
			Quantity:      quantity,
			CategoryLabel: view.CategoryLabel,
			Image:         view.Image,
		})
		line = cart.Find(key)
	}

	if err := session.SaveCart(db, fresh, cart); err != nil {
		return models.CartLine{}, err
	}
	sess.Cart = fresh.Cart
	return *line, nil
}

// UpdateQuantities applies a bulk quantity change keyed by cart line.
// A quantity below 1 removes the line; keys not present in the cart are
// silently ignored so stale entries never break the flow.
func UpdateQuantities(db *gorm.DB, sess *models.Session, quantities map[string]int) error {
	unlock := session.Lock(sess.Token)
	defer unlock()

	fresh, err := session.Load(db, sess.Token)
	if err != nil {
		return err
	}
	cart := session.Cart(fresh)

	for key, qty := range quantities {
		line := cart.Find(key)
		if line == nil {
			continue
		}
		if qty < 1 {
			cart.Remove(key)
		} else {
			line.Quantity = qty
		}
	}

	if err := session.SaveCart(db, fresh, cart); err != nil {
		return err
	}
	sess.Cart = fresh.Cart
	return nil
}

// RemoveItem drops one line; removing an absent key is a no-op.
func RemoveItem(db *gorm.DB, sess *models.Session, key string) error {
	unlock := session.Lock(sess.Token)
	defer unlock()

	fresh, err := session.Load(db, sess.Token)
	if err != nil {
		return err
	}
	cart := session.Cart(fresh)
	if !cart.Remove(key) {
		return nil
	}
	if err := session.SaveCart(db, fresh, cart); err != nil {
		return err
	}
	sess.Cart = fresh.Cart
	return nil
}

// Clear empties the cart.
func Clear(db *gorm.DB, sess *models.Session) error {
	unlock := session.Lock(sess.Token)
	defer unlock()

	fresh, err := session.Load(db, sess.Token)
	if err != nil {
		return err
	}
	if err := session.SaveCart(db, fresh, models.Cart{}); err != nil {
		return err
	}
	sess.Cart = fresh.Cart
	return nil
}

// Snapshot returns the current lines in insertion order, re-read from the
// session row.
func Snapshot(db *gorm.DB, sess *models.Session) ([]models.CartLine, error) {
	fresh, err := session.Load(db, sess.Token)
	if err != nil {
		return nil, err
	}
	cart := session.Cart(fresh)
	return cart.Snapshot(), nil
}

// -------- Handlers --------

type AddItemInput struct {
	Category  string `json:"category" binding:"required"`
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartInput struct {
	Quantities map[string]int `json:"quantities" binding:"required"`
}

// POST /user/cart
func AddItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		line, err := AddItem(db, middleware.CurrentSession(c), input.Category, input.ProductID, input.Quantity)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product is not available", "redirect": "/products"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":  line.Name + " was added to the cart",
			"line":     line,
			"redirect": "/cart",
		})
	}
}

// GET /user/cart returns the lines plus the pricing snapshot. Totals are
// recomputed on every view, so this page and checkout never disagree.
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines, err := Snapshot(db, middleware.CurrentSession(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, pricing.Price(lines))
	}
}

// POST /user/cart/update
func UpdateCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := UpdateQuantities(db, middleware.CurrentSession(c), input.Quantities); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "redirect": "/cart"})
	}
}

// DELETE /user/cart/:key
func RemoveItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := RemoveItem(db, middleware.CurrentSession(c), c.Param("key")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart", "redirect": "/cart"})
	}
}

// DELETE /user/cart
func ClearCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := Clear(db, middleware.CurrentSession(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
