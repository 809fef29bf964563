package app

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vaibhav-tools/catalog/internal/classify"
	"github.com/vaibhav-tools/catalog/internal/product"
)

const selectProduct = `SELECT id, name, description, category, category_name, sub_category, brand, price, stock, rating, image_url FROM products`

func scanProduct(row interface{ Scan(...any) error }) (product.Product, error) {
	var p product.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.CategoryName, &p.SubCategory,
		&p.Brand, &p.Price, &p.Stock, &p.Rating, &p.ImageURL)
	return p, err
}

func (a *App) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := selectProduct
	args := []any{}
	if cat := r.URL.Query().Get("category"); cat != "" {
		q += ` WHERE category = ?`
		args = append(args, cat)
	}
	q += ` ORDER BY name LIMIT 500`

	rows, err := a.DB.QueryContext(r.Context(), q, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	out := []product.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out = append(out, p)
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := scanProduct(a.DB.QueryRowContext(r.Context(), selectProduct+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleCreateProduct cleans the incoming record and, when it arrives
// without a category, classifies it before the insert.
func (a *App) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var raw product.RawProduct
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	p := product.Normalize(raw)
	if p.Category == "" {
		res := classify.Classify(raw.Name, raw.Description)
		p.Category = res.Category
		p.CategoryName = res.CategoryName
		p.SubCategory = res.SubCategory
	}
	if p.Brand == "" {
		p.Brand = product.ExtractBrand(p.Name)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	_, err := a.DB.ExecContext(r.Context(), `INSERT INTO products (
		id, name, description, category, category_name, sub_category, brand,
		price, stock, rating, image_url
	) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		p.ID, p.Name, p.Description, p.Category, p.CategoryName, p.SubCategory, p.Brand,
		p.Price, p.Stock, p.Rating, p.ImageURL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (a *App) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var raw product.RawProduct
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	p := product.Normalize(raw)
	p.ID = id

	res, err := a.DB.ExecContext(r.Context(), `UPDATE products SET
		name=?, description=?, category=?, category_name=?, sub_category=?, brand=?,
		price=?, stock=?, rating=?, image_url=?, updated_at=datetime('now')
		WHERE id=?`,
		p.Name, p.Description, p.Category, p.CategoryName, p.SubCategory, p.Brand,
		p.Price, p.Stock, p.Rating, p.ImageURL, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *App) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := a.DB.ExecContext(r.Context(), `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleClassifyProduct reruns classification for one product and persists
// the result, returning the classification as JSON.
func (a *App) handleClassifyProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var name, description string
	err := a.DB.QueryRowContext(r.Context(), `SELECT name, description FROM products WHERE id = ?`, id).
		Scan(&name, &description)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	res := classify.Classify(name, description)
	_, err = a.DB.ExecContext(r.Context(), `UPDATE products SET
		category=?, category_name=?, sub_category=?, updated_at=datetime('now') WHERE id=?`,
		res.Category, res.CategoryName, res.SubCategory, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}
