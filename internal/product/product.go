package product

import (
	"regexp"
	"strconv"
	"strings"
)

// Fallback values applied by Normalize when a field is missing or unusable.
const (
	DefaultPrice     = 999.0
	DefaultRating    = 4.5
	PlaceholderName  = "Unnamed Product"
	PlaceholderImage = "https://via.placeholder.com/300x300?text=No+Image"
)

// RawProduct is a loosely-typed catalog record as it arrives from legacy
// dumps, CSV imports or API bodies. Numeric fields are `any` because the old
// system stored them inconsistently (numbers, formatted strings, missing).
type RawProduct struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	CategoryName string `json:"categoryName"`
	SubCategory  string `json:"subCategory"`
	Brand        string `json:"brand"`
	Price        any    `json:"price"`
	Stock        any    `json:"stock"`
	Rating       any    `json:"rating"`
	ImageURL     string `json:"imageUrl"`
	Image        string `json:"image"` // legacy field, superseded by imageUrl
}

// Product is a cleaned catalog record.
type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	CategoryName string  `json:"categoryName"`
	SubCategory  string  `json:"subCategory"`
	Brand        string  `json:"brand"`
	Price        float64 `json:"price"`
	Stock        int     `json:"stock"`
	Rating       float64 `json:"rating"`
	ImageURL     string  `json:"imageUrl"`
}

// FromDoc builds a RawProduct from a decoded legacy document.
func FromDoc(doc map[string]any) RawProduct {
	str := func(k string) string {
		s, _ := doc[k].(string)
		return s
	}
	return RawProduct{
		ID:           str("id"),
		Name:         str("name"),
		Description:  str("description"),
		Category:     str("category"),
		CategoryName: str("categoryName"),
		SubCategory:  str("subCategory"),
		Brand:        str("brand"),
		Price:        doc["price"],
		Stock:        doc["stock"],
		Rating:       doc["rating"],
		ImageURL:     str("imageUrl"),
		Image:        str("image"),
	}
}

// Normalize coerces a raw record into a clean Product. Pure and idempotent:
// a record that is already clean passes through unchanged. Classification
// fields are copied verbatim; classification itself runs on the original
// name/description elsewhere.
func Normalize(raw RawProduct) Product {
	p := Product{
		ID:           raw.ID,
		Name:         strings.TrimSpace(raw.Name),
		Description:  raw.Description,
		Category:     raw.Category,
		CategoryName: raw.CategoryName,
		SubCategory:  raw.SubCategory,
		Brand:        raw.Brand,
		Price:        normPrice(raw.Price),
		Stock:        normStock(raw.Stock),
		Rating:       normRating(raw.Rating),
		ImageURL:     raw.ImageURL,
	}
	if p.Name == "" {
		p.Name = PlaceholderName
	}
	if p.ImageURL == "" {
		p.ImageURL = raw.Image
	}
	if p.ImageURL == "" {
		p.ImageURL = PlaceholderImage
	}
	return p
}

// priceStrip keeps digits, the decimal point and a sign so that "₹1,299.50"
// parses while "-5" stays negative and falls through to the default.
var priceStrip = regexp.MustCompile(`[^0-9.\-]`)

func normPrice(v any) float64 {
	f, ok := toFloat(v)
	if !ok || f <= 0 {
		return DefaultPrice
	}
	return f
}

func normRating(v any) float64 {
	f, ok := toFloat(v)
	if !ok {
		return DefaultRating
	}
	return f
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		s := priceStrip.ReplaceAllString(x, "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func normStock(v any) int {
	n, ok := toInt(v)
	if !ok || n < 0 {
		return 0
	}
	return n
}

var stockStrip = regexp.MustCompile(`[^0-9\-]`)

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		return int(x), true
	case int:
		return x, true
	case int64:
		return int(x), true
	case string:
		s := stockStrip.ReplaceAllString(x, "")
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
