package checkoutControllers

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	cartControllers "github.com/KeylaPalacios/divine-beauty/controllers/cart"
	"github.com/KeylaPalacios/divine-beauty/models"
	"github.com/KeylaPalacios/divine-beauty/session"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Session{}, &models.Order{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// fixture seeds a user with a session whose cart holds product A
// (50.00 x2) and product B (30.00 x1).
func fixture(t *testing.T, db *gorm.DB) (*models.Session, models.User) {
	t.Helper()
	user := models.User{FirstName: "Keyla", Email: t.Name() + "@example.com", PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	sess, err := session.Create(db, user.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	a := models.Product{Category: models.CategoryHairCare, Name: "Shampoo", Price: decimal.RequireFromString("50.00"), Stock: 10}
	b := models.Product{Category: models.CategoryMakeup, Name: "Lipstick", Price: decimal.RequireFromString("30.00"), Stock: 10}
	for _, p := range []*models.Product{&a, &b} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}
	if _, err := cartControllers.AddItem(db, sess, "haircare", a.ID, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := cartControllers.AddItem(db, sess, "makeup", b.ID, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	return sess, user
}

func paypalRequest() CheckoutRequest {
	return CheckoutRequest{
		Method:      models.PaymentMethodPayPal,
		Address:     "12 Rosewood Lane",
		PaypalEmail: "keyla@example.com",
	}
}

func cardRequest() CheckoutRequest {
	return CheckoutRequest{
		Method:         models.PaymentMethodCard,
		Address:        "12 Rosewood Lane",
		CardholderName: "Keyla Palacios",
		CardNumber:     "4111111111111111",
		ExpiryMonth:    "04",
		ExpiryYear:     "2027",
		CVV:            "123",
	}
}

func cartLineCount(t *testing.T, db *gorm.DB, sess *models.Session) int {
	t.Helper()
	lines, err := cartControllers.Snapshot(db, sess)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	return len(lines)
}

func TestProcessPayPalSuccess(t *testing.T) {
	db := newTestDB(t)
	sess, user := fixture(t, db)

	order, err := Process(db, sess, user, paypalRequest())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if !order.Subtotal.Equal(decimal.RequireFromString("130.00")) {
		t.Errorf("subtotal = %s, want 130.00", order.Subtotal)
	}
	if !order.ShippingFee.Equal(decimal.RequireFromString("120.00")) {
		t.Errorf("shipping = %s, want 120.00", order.ShippingFee)
	}
	if order.PaymentMethod != models.PaymentMethodPayPal {
		t.Errorf("method = %q", order.PaymentMethod)
	}
	if order.UserID != user.ID {
		t.Errorf("owner = %d, want %d", order.UserID, user.ID)
	}

	var persisted models.Order
	if err := db.First(&persisted, "order_ref = ?", order.OrderRef).Error; err != nil {
		t.Fatalf("order not persisted: %v", err)
	}

	if n := cartLineCount(t, db, sess); n != 0 {
		t.Errorf("cart has %d lines after checkout, want 0", n)
	}
}

func TestProcessDetailText(t *testing.T) {
	db := newTestDB(t)
	sess, user := fixture(t, db)

	order, err := Process(db, sess, user, cardRequest())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	want := []string{
		"Shampoo x2 - $100.00",
		"Lipstick x1 - $30.00",
		"Tax: $20.80",
		"Shipping: $120.00",
		"Total: $270.80",
	}
	got := strings.Split(order.Detail, "\n")
	if len(got) != len(want) {
		t.Fatalf("detail:\n%s", order.Detail)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("detail line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestProcessValidation(t *testing.T) {
	db := newTestDB(t)
	sess, user := fixture(t, db)

	missingCVV := cardRequest()
	missingCVV.CVV = ""
	badEmail := paypalRequest()
	badEmail.PaypalEmail = "not-an-address"
	noAddress := cardRequest()
	noAddress.Address = "  "
	badMethod := paypalRequest()
	badMethod.Method = "cheque"

	cases := []struct {
		name  string
		req   CheckoutRequest
		field string
	}{
		{"missing cvv", missingCVV, "cvv"},
		{"invalid paypal email", badEmail, "paypal_email"},
		{"blank address", noAddress, "address"},
		{"unknown method", badMethod, "method"},
	}
	for _, tc := range cases {
		_, err := Process(db, sess, user, tc.req)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("%s: err = %v, want ValidationError", tc.name, err)
		}
		if vErr.Field != tc.field {
			t.Errorf("%s: field = %q, want %q", tc.name, vErr.Field, tc.field)
		}
		if n := cartLineCount(t, db, sess); n != 2 {
			t.Errorf("%s: cart has %d lines after failed validation, want 2", tc.name, n)
		}
		var orders int64
		db.Model(&models.Order{}).Count(&orders)
		if orders != 0 {
			t.Errorf("%s: %d orders persisted after failed validation", tc.name, orders)
		}
	}
}

func TestProcessEmptyCart(t *testing.T) {
	db := newTestDB(t)
	user := models.User{FirstName: "Keyla", Email: "empty@example.com", PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	sess, err := session.Create(db, user.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if _, err := Process(db, sess, user, paypalRequest()); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("err = %v, want ErrEmptyCart", err)
	}
}

func TestProcessCommitIsAtomic(t *testing.T) {
	db := newTestDB(t)
	sess, user := fixture(t, db)

	// Make the order insert fail mid-transaction.
	if err := db.Migrator().DropTable(&models.Order{}); err != nil {
		t.Fatalf("drop orders table: %v", err)
	}

	_, err := Process(db, sess, user, paypalRequest())
	if err == nil {
		t.Fatal("Process succeeded with no orders table")
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) || errors.Is(err, ErrEmptyCart) {
		t.Fatalf("err = %v, expected a persistence failure", err)
	}

	// The failed commit must leave the cart exactly as it was.
	if n := cartLineCount(t, db, sess); n != 2 {
		t.Errorf("cart has %d lines after failed commit, want 2", n)
	}
}
