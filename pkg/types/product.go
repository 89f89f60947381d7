package types

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const fallbackCategory = "General"

// Product is the client view of a catalog product. Immutable once fetched;
// the server stays the source of truth for price and stock.
type Product struct {
	ID            string
	Slug          string
	Name          string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	Images        []string
	Category      string
	InStock       bool
	IsDigital     bool
	IsFeatured    bool
	IsFlashSale   bool
	Rating        float64
	ReviewCount   int
}

type productWire struct {
	ID             flexString        `json:"id"`
	Slug           string            `json:"slug"`
	Name           string            `json:"name"`
	Price          decimal.Decimal   `json:"price"`
	OriginalPrice  *decimal.Decimal  `json:"original_price"`
	Images         []flexImage       `json:"images"`
	Category       string            `json:"category"`
	Categories     []json.RawMessage `json:"categories"`
	InStock        *bool             `json:"in_stock"`
	IsDigital      bool              `json:"is_digital"`
	IsFeatured     bool              `json:"is_featured"`
	IsFlashSale    bool              `json:"is_flash_sale"`
	Rating         float64           `json:"rating"`
	ReviewCount    int               `json:"review_count"`
	ReviewCountAlt int               `json:"reviewCount"`
}

// UnmarshalJSON tolerates the looser payload shapes the backend emits:
// numeric ids, image objects, and category arrays.
func (p *Product) UnmarshalJSON(data []byte) error {
	var wire productWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	images := make([]string, 0, len(wire.Images))
	for _, img := range wire.Images {
		if strings.TrimSpace(img.value) == "" {
			continue
		}
		images = append(images, NormalizeImageURL(img.value))
	}
	if len(images) == 0 {
		images = []string{PlaceholderImage}
	}

	category := strings.TrimSpace(wire.Category)
	if category == "" {
		category = firstCategoryName(wire.Categories)
	}

	reviewCount := wire.ReviewCount
	if reviewCount == 0 {
		reviewCount = wire.ReviewCountAlt
	}

	inStock := true
	if wire.InStock != nil {
		inStock = *wire.InStock
	}

	*p = Product{
		ID:            string(wire.ID),
		Slug:          wire.Slug,
		Name:          wire.Name,
		Price:         wire.Price,
		OriginalPrice: wire.OriginalPrice,
		Images:        images,
		Category:      category,
		InStock:       inStock,
		IsDigital:     wire.IsDigital,
		IsFeatured:    wire.IsFeatured,
		IsFlashSale:   wire.IsFlashSale,
		Rating:        wire.Rating,
		ReviewCount:   reviewCount,
	}
	return nil
}

// MarshalJSON writes the canonical snake_case representation.
func (p Product) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"id":            p.ID,
		"slug":          p.Slug,
		"name":          p.Name,
		"price":         p.Price,
		"images":        p.Images,
		"category":      p.Category,
		"in_stock":      p.InStock,
		"is_digital":    p.IsDigital,
		"is_featured":   p.IsFeatured,
		"is_flash_sale": p.IsFlashSale,
		"rating":        p.Rating,
		"review_count":  p.ReviewCount,
	}
	if p.OriginalPrice != nil {
		out["original_price"] = p.OriginalPrice
	}
	return json.Marshal(out)
}

func firstCategoryName(raw []json.RawMessage) string {
	if len(raw) == 0 {
		return fallbackCategory
	}
	var asString string
	if err := json.Unmarshal(raw[0], &asString); err == nil && strings.TrimSpace(asString) != "" {
		return asString
	}
	var asObject struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(raw[0], &asObject); err == nil {
		if asObject.Name != "" {
			return asObject.Name
		}
		if asObject.Slug != "" {
			return asObject.Slug
		}
	}
	return fallbackCategory
}

// flexString accepts JSON strings and numbers.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*f = flexString(asString)
		return nil
	}
	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err != nil {
		return err
	}
	*f = flexString(asNumber.String())
	return nil
}

// flexImage accepts either a plain URL string or an object carrying one of
// the known URL fields.
type flexImage struct {
	value string
}

func (f *flexImage) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		f.value = asString
		return nil
	}
	var asObject struct {
		ImageURL string `json:"image_url"`
		Image    string `json:"image"`
		URL      string `json:"url"`
	}
	if err := json.Unmarshal(data, &asObject); err != nil {
		return err
	}
	switch {
	case asObject.ImageURL != "":
		f.value = asObject.ImageURL
	case asObject.Image != "":
		f.value = asObject.Image
	default:
		f.value = asObject.URL
	}
	return nil
}

// ParseQuantity coerces the flexible quantity representations seen on cart
// payloads into an int, defaulting to zero.
func ParseQuantity(raw any) int {
	switch v := raw.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}
