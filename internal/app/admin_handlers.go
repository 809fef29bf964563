package app

import (
	"net/http"

	"github.com/vaibhav-tools/catalog/internal/canonical"
)

type adminRow struct {
	ID       string
	Name     string
	Category string
	Sub      string
	Brand    string
	Price    string
	Stock    int
}

func (a *App) handleAdminProducts(w http.ResponseWriter, r *http.Request) {
	rows, err := a.DB.QueryContext(r.Context(), `SELECT id, name, category_name, sub_category, brand, price, stock FROM products ORDER BY name LIMIT 200`)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	defer rows.Close()

	var out []adminRow
	for rows.Next() {
		var row adminRow
		var price float64
		_ = rows.Scan(&row.ID, &row.Name, &row.Category, &row.Sub, &row.Brand, &price, &row.Stock)
		row.Price = fmtMoney(price)
		out = append(out, row)
	}
	a.Tmpl.Render(w, "products", map[string]any{"Rows": out})
}

// handleAdminReview shows the canonical-mapping decision for every distinct
// category label, grouped so the non-auto-accepted ones stand out.
func (a *App) handleAdminReview(w http.ResponseWriter, r *http.Request) {
	rows, err := a.DB.QueryContext(r.Context(), `SELECT DISTINCT category_name FROM products WHERE category_name != '' ORDER BY category_name`)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var l string
		_ = rows.Scan(&l)
		labels = append(labels, l)
	}

	sum := a.Mapper.ProcessCategories(labels, canonical.DefaultThresholds())
	a.Tmpl.Render(w, "review", map[string]any{
		"Total":       sum.Total,
		"AutoAccept":  sum.ByAction[canonical.ActionAutoAccept],
		"NeedsReview": sum.NeedsReview,
	})
}
