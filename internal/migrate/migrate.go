package migrate

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/vaibhav-tools/catalog/internal/classify"
	"github.com/vaibhav-tools/catalog/internal/product"
)

// BatchSize caps rows written per transaction; the legacy store committed in
// bounded batches for the same reason and a few hundred keeps transactions
// small.
const BatchSize = 400

type Options struct {
	// ReconcileStock additionally folds the legacy stock fields
	// (stock/stockCount/quantity) on each raw document before normalization.
	ReconcileStock bool
}

// Stats counts before/after changes across one migration run.
type Stats struct {
	Total           int `json:"total"`
	Written         int `json:"written"`
	CategoryChanged int `json:"categoryChanged"`
	PriceChanged    int `json:"priceChanged"`
	ImageChanged    int `json:"imageChanged"`
	StockChanged    int `json:"stockChanged"`
	BrandFilled     int `json:"brandFilled"`
}

// Run migrates a legacy JSON dump (an array of loosely-typed product
// documents) into the catalog: field-normalize, classify on the original
// name/description, merge, and upsert in batches of at most BatchSize rows
// per transaction. The per-record transforms are pure; all I/O is here.
func Run(ctx context.Context, db *sql.DB, r io.Reader, opts Options) (Stats, error) {
	var st Stats

	var docs []map[string]any
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return st, fmt.Errorf("decode dump: %w", err)
	}
	st.Total = len(docs)

	var tx *sql.Tx
	var stmt *sql.Stmt
	var inBatch int

	commit := func() error {
		if tx == nil {
			return nil
		}
		_ = stmt.Close()
		if err := tx.Commit(); err != nil {
			return err
		}
		tx, stmt, inBatch = nil, nil, 0
		return nil
	}

	for _, doc := range docs {
		// snapshot before the stock pass mutates the document
		origCat, _ := doc["category"].(string)
		origPrice, origPriceOK := doc["price"].(float64)
		origImage, _ := doc["imageUrl"].(string)
		origStock, origStockOK := doc["stock"].(float64)

		if opts.ReconcileStock {
			_, _ = product.ReconcileStock(doc)
		}

		raw := product.FromDoc(doc)
		p := product.Normalize(raw)

		// classification runs on the original text, not the cleaned copy
		res := classify.Classify(raw.Name, raw.Description)
		if res.Category != origCat {
			st.CategoryChanged++
		}
		p.Category = res.Category
		p.CategoryName = res.CategoryName
		p.SubCategory = res.SubCategory

		if p.Brand == "" {
			if b := product.ExtractBrand(p.Name); b != "" {
				p.Brand = b
				st.BrandFilled++
			}
		}
		if !origPriceOK || origPrice != p.Price {
			st.PriceChanged++
		}
		if origImage != p.ImageURL {
			st.ImageChanged++
		}
		if !origStockOK || int(origStock) != p.Stock {
			st.StockChanged++
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}

		if tx == nil {
			var err error
			if tx, err = db.Begin(); err != nil {
				return st, err
			}
			if stmt, err = tx.Prepare(upsertSQL); err != nil {
				_ = tx.Rollback()
				return st, err
			}
		}
		if _, err := stmt.ExecContext(ctx, p.ID, p.Name, p.Description, p.Category, p.CategoryName, p.SubCategory,
			p.Brand, p.Price, p.Stock, p.Rating, p.ImageURL); err != nil {
			_ = tx.Rollback()
			return st, err
		}
		st.Written++
		inBatch++
		if inBatch >= BatchSize {
			if err := commit(); err != nil {
				return st, err
			}
		}
	}

	return st, commit()
}

const upsertSQL = `INSERT INTO products (
	id, name, description, category, category_name, sub_category, brand,
	price, stock, rating, image_url
) VALUES (?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT(id) DO UPDATE SET
	name=excluded.name,
	description=excluded.description,
	category=excluded.category,
	category_name=excluded.category_name,
	sub_category=excluded.sub_category,
	brand=excluded.brand,
	price=excluded.price,
	stock=excluded.stock,
	rating=excluded.rating,
	image_url=excluded.image_url,
	updated_at=datetime('now')`
