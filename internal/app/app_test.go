package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaibhav-tools/catalog/internal/canonical"
	"github.com/vaibhav-tools/catalog/internal/classify"
	"github.com/vaibhav-tools/catalog/internal/db"
	"github.com/vaibhav-tools/catalog/internal/metrics"
	"github.com/vaibhav-tools/catalog/internal/product"
	"github.com/vaibhav-tools/catalog/internal/web"
)

func newTestApp(t *testing.T) (*App, http.Handler) {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	require.NoError(t, db.Migrate(context.Background(), d))

	tmpl, err := web.LoadTemplates()
	require.NoError(t, err)

	a := &App{
		DB:     d,
		Tmpl:   tmpl,
		Met:    metrics.New(d),
		Mapper: canonical.NewMapper(canonical.DiceBigram{}),
	}
	return a, a.Router(Config{})
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateProductClassifiesOnWrite(t *testing.T) {
	_, h := newTestApp(t)

	rec := postJSON(t, h, "/api/products", map[string]any{
		"name":  "Cordless Power Drill",
		"price": "₹1,299.50",
		"stock": 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var p product.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "power-and-hand-tools", p.Category)
	assert.Equal(t, "Drills", p.SubCategory)
	assert.Equal(t, 1299.50, p.Price)
	assert.NotEmpty(t, p.ID)

	// provided categories are not overwritten
	rec = postJSON(t, h, "/api/products", map[string]any{
		"name":         "Garden Hose 10m",
		"category":     "misc",
		"categoryName": "Misc",
		"price":        499,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "misc", p.Category)
}

func TestClassifyEndpoint(t *testing.T) {
	a, h := newTestApp(t)

	_, err := a.DB.Exec(`INSERT INTO products (id, name, description, price) VALUES ('x1', 'Angle Grinder Disc 100mm', '', 45)`)
	require.NoError(t, err)

	rec := postJSON(t, h, "/api/products/x1/classify", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res classify.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "cutting-and-grinding", res.Category)
	assert.Equal(t, "Grinders", res.SubCategory)

	var cat string
	require.NoError(t, a.DB.QueryRow(`SELECT category FROM products WHERE id='x1'`).Scan(&cat))
	assert.Equal(t, "cutting-and-grinding", cat)

	rec = postJSON(t, h, "/api/products/missing/classify", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetUpdateDelete(t *testing.T) {
	a, h := newTestApp(t)
	_, err := a.DB.Exec(`INSERT INTO products (id, name, price, stock) VALUES ('x1', 'Claw Hammer', 349, 3)`)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/products/x1", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var p product.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Claw Hammer", p.Name)

	b, _ := json.Marshal(map[string]any{"name": "Claw Hammer 450g", "price": 399, "stock": 4})
	upd := httptest.NewRequest("PUT", "/api/products/x1", bytes.NewReader(b))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, upd)
	require.Equal(t, http.StatusOK, rec.Code)

	del := httptest.NewRequest("DELETE", "/api/products/x1", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, del)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/products/x1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNormalizeCategoriesEndpoint(t *testing.T) {
	_, h := newTestApp(t)

	rec := postJSON(t, h, "/api/categories/normalize", map[string]any{
		"labels": []string{"Hand Tools ", "handtoolz", "xyz"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var sum canonical.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 1, sum.ByAction[canonical.ActionAutoAccept])
	assert.Len(t, sum.NeedsReview, 2)

	rec = postJSON(t, h, "/api/categories/normalize", map[string]any{"labels": []string{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminPages(t *testing.T) {
	a, h := newTestApp(t)
	_, err := a.DB.Exec(`INSERT INTO products (id, name, category_name, price) VALUES ('x1', 'Drill', 'Power & Hand Tools', 999)`)
	require.NoError(t, err)

	for _, path := range []string{"/admin", "/admin/review"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html", path)
	}
}
