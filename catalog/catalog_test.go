package catalog

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/KeylaPalacios/divine-beauty/models"
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

func seedProduct(t *testing.T, db *gorm.DB, cat models.ProductCategory, name, price, image string) models.Product {
	t.Helper()
	p := models.Product{
		Category: cat,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Stock:    10,
		Image:    image,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func TestCollectFilters(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, models.CategoryHairCare, "Shampoo", "50.00", "")
	seedProduct(t, db, models.CategoryMakeup, "Lipstick", "30.00", "")
	seedProduct(t, db, models.CategoryPerfume, "Eau Fleur", "80.00", "")

	cases := []struct {
		filter string
		want   int
	}{
		{"all", 3},
		{"makeup", 1},
		{"perfume", 1},
		{"skincare", 0},
		{"garbage", 3}, // unknown filter falls back to all
		{"", 3},
	}
	for _, tc := range cases {
		views, err := Collect(db, tc.filter)
		if err != nil {
			t.Fatalf("Collect(%q): %v", tc.filter, err)
		}
		if len(views) != tc.want {
			t.Errorf("Collect(%q) = %d products, want %d", tc.filter, len(views), tc.want)
		}
	}
}

func TestCollectOrdersByCategoryThenID(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, models.CategoryPerfume, "Eau Fleur", "80.00", "")
	seedProduct(t, db, models.CategoryHairCare, "Shampoo", "50.00", "")
	seedProduct(t, db, models.CategoryHairCare, "Conditioner", "45.00", "")

	views, err := Collect(db, "all")
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	got := []string{}
	for _, v := range views {
		got = append(got, v.Name)
	}
	want := []string{"Shampoo", "Conditioner", "Eau Fleur"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestFetch(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, models.CategorySkinCare, "Day Cream", "25.50", "")

	view, err := Fetch(db, "skincare", p.ID)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if view.Name != "Day Cream" || view.CategoryLabel != "Skin care" {
		t.Errorf("view = %+v", view)
	}
	if !view.Price.Equal(decimal.RequireFromString("25.50")) {
		t.Errorf("price = %s, want 25.50", view.Price)
	}

	if _, err := Fetch(db, "skincare", p.ID+99); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: err = %v, want ErrNotFound", err)
	}
	// The right id under the wrong category must not resolve.
	if _, err := Fetch(db, "makeup", p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("wrong category: err = %v, want ErrNotFound", err)
	}
	if _, err := Fetch(db, "cutlery", p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown category: err = %v, want ErrNotFound", err)
	}
}

func TestResolveImage(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"blank", "", PlaceholderImage},
		{"whitespace", "   ", PlaceholderImage},
		{"legacy path", "productos/shampoo.jpg", "productos/shampoo.jpg"},
		{"structured", `{"url": "/static/productos/crema.png"}`, "/static/productos/crema.png"},
		{"structured empty url", `{"url": ""}`, PlaceholderImage},
		{"malformed json", `{not json`, PlaceholderImage},
	}
	for _, tc := range cases {
		if got := resolveImage(tc.raw); got != tc.want {
			t.Errorf("%s: resolveImage(%q) = %q, want %q", tc.name, tc.raw, got, tc.want)
		}
	}
}

func TestFeaturedNewestPerCategory(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, models.CategoryHairCare, "Old Shampoo", "40.00", "")
	seedProduct(t, db, models.CategoryHairCare, "New Shampoo", "50.00", "")
	seedProduct(t, db, models.CategoryMakeup, "Lipstick", "30.00", "")

	views, err := Featured(db)
	if err != nil {
		t.Fatalf("Featured: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("featured = %d entries, want 2", len(views))
	}
	if views[0].Name != "New Shampoo" {
		t.Errorf("haircare featured = %q, want New Shampoo", views[0].Name)
	}
}
