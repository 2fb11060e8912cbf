package catalog

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/KeylaPalacios/divine-beauty/models"
)

// PlaceholderImage is served for products without a stored photo.
const PlaceholderImage = "/static/imagenes/placeholder.png"

// FilterAll selects every category; unrecognized filters fall back to it.
const FilterAll = "all"

var ErrNotFound = errors.New("product not found")

// View is the normalized product shape handed to the cart and the
// storefront pages, independent of which category collection it came from.
type View struct {
	ID            uint                   `json:"id"`
	Category      models.ProductCategory `json:"category"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Price         decimal.Decimal        `json:"price"`
	Stock         int                    `json:"stock"`
	CategoryLabel string                 `json:"category_label"`
	Image         string                 `json:"image"`
}

// resolveImage turns whatever is stored in the image column into a usable
// path. Legacy rows hold a bare path; newer rows hold a JSON object with a
// "url" field. Blank resolves to the placeholder.
func resolveImage(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PlaceholderImage
	}
	if strings.HasPrefix(raw, "{") {
		var ref struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal([]byte(raw), &ref); err == nil && ref.URL != "" {
			return ref.URL
		}
		return PlaceholderImage
	}
	return raw
}

func normalize(p models.Product) View {
	return View{
		ID:            p.ID,
		Category:      p.Category,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Stock:         p.Stock,
		CategoryLabel: models.CategoryLabel(p.Category),
		Image:         resolveImage(p.Image),
	}
}

// Collect lists normalized products for a category filter. The filter is
// "all" or one of the four category keys; anything else falls back to
// "all". Categories are traversed in their fixed order, products within a
// category by id.
func Collect(db *gorm.DB, filter string) ([]View, error) {
	categories := models.CategoryOrder
	if models.ValidCategory(filter) {
		categories = []models.ProductCategory{models.ProductCategory(filter)}
	}

	views := []View{}
	for _, cat := range categories {
		var products []models.Product
		if err := db.Where("category = ?", cat).Order("id").Find(&products).Error; err != nil {
			return nil, err
		}
		for _, p := range products {
			views = append(views, normalize(p))
		}
	}
	return views, nil
}

// Fetch resolves one product by category and id. Unknown categories and
// missing rows both report ErrNotFound.
func Fetch(db *gorm.DB, category string, id uint) (View, error) {
	if !models.ValidCategory(category) {
		return View{}, ErrNotFound
	}
	var p models.Product
	err := db.Where("category = ? AND id = ?", category, id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return View{}, ErrNotFound
		}
		return View{}, err
	}
	return normalize(p), nil
}

// Featured returns the newest product of each category, for the home page.
func Featured(db *gorm.DB) ([]View, error) {
	views := []View{}
	for _, cat := range models.CategoryOrder {
		var p models.Product
		err := db.Where("category = ?", cat).Order("id DESC").First(&p).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		views = append(views, normalize(p))
	}
	return views, nil
}

// Latest returns the n newest products across every category.
func Latest(db *gorm.DB, n int) ([]View, error) {
	var products []models.Product
	if err := db.Order("id DESC").Limit(n).Find(&products).Error; err != nil {
		return nil, err
	}
	views := make([]View, 0, len(products))
	for _, p := range products {
		views = append(views, normalize(p))
	}
	return views, nil
}
