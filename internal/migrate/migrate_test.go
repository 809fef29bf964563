package migrate

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaibhav-tools/catalog/internal/db"
	"github.com/vaibhav-tools/catalog/internal/product"
)

const sampleDump = `[
  {"id": "p1", "name": "Cordless Power Drill", "price": "₹1,299.50 extra", "stockCount": 8},
  {"id": "p2", "name": "Angle Grinder Disc 100mm", "price": 45, "stock": 120, "imageUrl": "https://cdn.example/disc.jpg", "category": "cutting-and-grinding", "categoryName": "Cutting & Grinding", "subCategory": "Grinders", "rating": 4.1},
  {"id": "p3", "name": "Taparia Screwdriver Set", "price": -5, "image": "https://cdn.example/old.jpg"},
  {"id": "p4", "name": "", "description": "", "price": 0}
]`

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	require.NoError(t, db.Migrate(context.Background(), d))
	return d
}

func TestRun(t *testing.T) {
	d := openTestDB(t)

	st, err := Run(context.Background(), d, strings.NewReader(sampleDump), Options{ReconcileStock: true})
	require.NoError(t, err)

	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 4, st.Written)
	// p2 already carries its classified category; the other three change
	assert.Equal(t, 3, st.CategoryChanged)
	// p1 (string price), p3 (negative), p4 (zero) are rewritten
	assert.Equal(t, 3, st.PriceChanged)
	// only p2 already had an imageUrl
	assert.Equal(t, 3, st.ImageChanged)
	// p1 gains reconciled stock, p3 and p4 gain the 0 default
	assert.Equal(t, 3, st.StockChanged)
	assert.Equal(t, 1, st.BrandFilled)

	var p product.Product
	row := d.QueryRow(`SELECT name, category, sub_category, price, stock, image_url FROM products WHERE id='p1'`)
	require.NoError(t, row.Scan(&p.Name, &p.Category, &p.SubCategory, &p.Price, &p.Stock, &p.ImageURL))
	assert.Equal(t, "power-and-hand-tools", p.Category)
	assert.Equal(t, "Drills", p.SubCategory)
	assert.Equal(t, 1299.50, p.Price)
	assert.Equal(t, 8, p.Stock) // reconciled from legacy stockCount
	assert.Equal(t, product.PlaceholderImage, p.ImageURL)

	row = d.QueryRow(`SELECT price, brand, image_url FROM products WHERE id='p3'`)
	var brand, img string
	require.NoError(t, row.Scan(&p.Price, &brand, &img))
	assert.Equal(t, product.DefaultPrice, p.Price)
	assert.Equal(t, "Taparia", brand)
	assert.Equal(t, "https://cdn.example/old.jpg", img)

	row = d.QueryRow(`SELECT name, category FROM products WHERE id='p4'`)
	var name, cat string
	require.NoError(t, row.Scan(&name, &cat))
	assert.Equal(t, product.PlaceholderName, name)
	assert.Equal(t, "uncategorized", cat)

	// re-running is an upsert, not a duplicate insert
	st, err = Run(context.Background(), d, strings.NewReader(sampleDump), Options{ReconcileStock: true})
	require.NoError(t, err)
	var count int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count))
	assert.Equal(t, 4, count)
}
