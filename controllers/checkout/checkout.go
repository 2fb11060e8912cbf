package checkoutControllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	orderControllers "github.com/KeylaPalacios/divine-beauty/controllers/order"
	"github.com/KeylaPalacios/divine-beauty/middleware"
	"github.com/KeylaPalacios/divine-beauty/models"
	"github.com/KeylaPalacios/divine-beauty/pricing"
	"github.com/KeylaPalacios/divine-beauty/session"
)

var ErrEmptyCart = errors.New("cart is empty")

// ValidationError reports a missing or malformed payment field. It is
// terminal for the submission: the user resubmits, the cart is untouched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type CheckoutRequest struct {
	Method         string `json:"method" binding:"required"`
	Address        string `json:"address"`
	CardholderName string `json:"cardholder_name"`
	CardNumber     string `json:"card_number"`
	ExpiryMonth    string `json:"expiry_month"`
	ExpiryYear     string `json:"expiry_year"`
	CVV            string `json:"cvv"`
	PaypalEmail    string `json:"paypal_email"`
}

func validate(req CheckoutRequest) error {
	if strings.TrimSpace(req.Address) == "" {
		return &ValidationError{Field: "address", Message: "A shipping address is required"}
	}
	switch req.Method {
	case models.PaymentMethodCard:
		required := []struct {
			field, value string
		}{
			{"cardholder_name", req.CardholderName},
			{"card_number", req.CardNumber},
			{"expiry_month", req.ExpiryMonth},
			{"expiry_year", req.ExpiryYear},
			{"cvv", req.CVV},
		}
		for _, f := range required {
			if strings.TrimSpace(f.value) == "" {
				return &ValidationError{Field: f.field, Message: "Complete all card details to continue"}
			}
		}
	case models.PaymentMethodPayPal:
		if _, err := mail.ParseAddress(req.PaypalEmail); err != nil {
			return &ValidationError{Field: "paypal_email", Message: "Enter the PayPal email to continue"}
		}
	default:
		return &ValidationError{Field: "method", Message: "Unknown payment method"}
	}
	return nil
}

// buildDetail renders the human-readable order ledger: one line per cart
// line, then tax, shipping and grand total.
func buildDetail(snap pricing.Snapshot) string {
	var lines []string
	for _, l := range snap.Lines {
		lines = append(lines, fmt.Sprintf("%s x%d - $%s", l.Name, l.Quantity, l.LineTotal.StringFixed(2)))
	}
	lines = append(lines,
		fmt.Sprintf("Tax: $%s", snap.Tax.StringFixed(2)),
		fmt.Sprintf("Shipping: $%s", snap.Shipping.StringFixed(2)),
		fmt.Sprintf("Total: $%s", snap.Total.StringFixed(2)),
	)
	return strings.Join(lines, "\n")
}

// Process runs one checkout attempt to completion. Totals are re-derived
// from the cart as it exists right now, not from anything a previous page
// load computed, then the order insert and the cart clear commit in a
// single transaction: a failed insert leaves the cart exactly as it was,
// and a created order never leaves lines behind.
func Process(db *gorm.DB, sess *models.Session, user models.User, req CheckoutRequest) (*models.Order, error) {
	unlock := session.Lock(sess.Token)
	defer unlock()

	fresh, err := session.Load(db, sess.Token)
	if err != nil {
		return nil, err
	}
	cart := session.Cart(fresh)
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	if err := validate(req); err != nil {
		return nil, err
	}

	snap := pricing.Price(cart.Lines)
	order := &models.Order{
		OrderRef:      time.Now().Format("20060102150405") + "-" + uuid.NewString(),
		UserID:        user.ID,
		Subtotal:      snap.Subtotal,
		PaymentMethod: req.Method,
		ShippingFee:   snap.Shipping,
		Address:       req.Address,
		Detail:        buildDetail(snap),
		CreatedAt:     time.Now(),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return session.SaveCart(tx, fresh, models.Cart{})
	})
	if err != nil {
		return nil, err
	}
	sess.Cart = fresh.Cart

	orderControllers.BroadcastOrder(*order)
	return order, nil
}

// -------- Handlers --------

// GET /user/checkout returns the payment page's view of the totals,
// recomputed from the live cart.
func PreviewHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		fresh, err := session.Load(db, sess.Token)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		cart := session.Cart(fresh)
		if cart.IsEmpty() {
			c.JSON(http.StatusConflict, gin.H{"error": "Your cart is empty", "redirect": "/products"})
			return
		}
		c.JSON(http.StatusOK, pricing.Price(cart.Lines))
	}
}

// POST /user/checkout
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := Process(db, middleware.CurrentSession(c), middleware.CurrentUser(c), req)
		if err != nil {
			var vErr *ValidationError
			switch {
			case errors.Is(err, ErrEmptyCart):
				c.JSON(http.StatusConflict, gin.H{"error": "Your cart is empty", "redirect": "/products"})
			case errors.As(err, &vErr):
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error":    vErr.Message,
					"field":    vErr.Field,
					"redirect": "/checkout",
				})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place the order"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":  "Thank you! Your purchase was completed",
			"order":    order,
			"redirect": "/user/profile",
		})
	}
}
