package importer

import (
	"bufio"
	"crypto/sha256"
	"database/sql"
	"encoding/csv"
	"encoding/hex"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/vaibhav-tools/catalog/internal/classify"
	"github.com/vaibhav-tools/catalog/internal/product"
)

// ImportProductsCSV imports a catalog CSV export.
//
// Expected header (case-insensitive): Name, Description, Category, Brand,
// Price, Stock, Rating, Image URL. Every row goes through the field
// normalizer, and rows that arrive without a category are classified from
// their name/description. Dedupes via row_hash so re-imports are safe.
func ImportProductsCSV(db *sql.DB, r io.Reader, fileName string) (importID int64, total int, inserted int, skipped int, err error) {
	br := bufio.NewReader(r)
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return 0, 0, 0, 0, err
	}
	idx := indexMap(header)

	fileHash := sha256.New()

	tx, err := db.Begin()
	if err != nil {
		return 0, 0, 0, 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.Exec(`INSERT INTO imports (source,file_name,sha256,rows_total,rows_inserted,rows_skipped) VALUES (?,?,?,?,?,?)`, "products_csv", fileName, "", 0, 0, 0)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	importID, _ = res.LastInsertId()

	insStmt, err := tx.Prepare(`INSERT INTO products (
		id, name, description, category, category_name, sub_category, brand,
		price, stock, rating, image_url, row_hash
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	defer insStmt.Close()

	for {
		row, err2 := cr.Read()
		if err2 == io.EOF {
			break
		}
		if err2 != nil {
			err = err2
			return
		}
		total++

		get := func(name string) string {
			i, ok := idx[strings.ToLower(name)]
			if !ok || i < 0 || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		raw := product.RawProduct{
			Name:        get("Name"),
			Description: get("Description"),
			Brand:       get("Brand"),
			Price:       get("Price"),
			Stock:       get("Stock"),
			Rating:      get("Rating"),
			ImageURL:    get("Image URL"),
		}
		if cat := get("Category"); cat != "" {
			raw.Category = classify.Slug(cat)
			raw.CategoryName = cat
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

		rowHash := hashRow(p)
		fileHash.Write([]byte(rowHash))

		_, err2 = insStmt.Exec(uuid.NewString(), p.Name, p.Description, p.Category, p.CategoryName, p.SubCategory, p.Brand,
			p.Price, p.Stock, p.Rating, p.ImageURL, rowHash)
		if err2 != nil {
			// unique constraint => already imported
			if strings.Contains(err2.Error(), "UNIQUE") {
				skipped++
				continue
			}
			err = err2
			return
		}
		inserted++
	}

	sha := hex.EncodeToString(fileHash.Sum(nil))
	_, err = tx.Exec(`UPDATE imports SET sha256=?, rows_total=?, rows_inserted=?, rows_skipped=? WHERE id=?`, sha, total, inserted, skipped, importID)
	if err != nil {
		return
	}

	err = tx.Commit()
	return
}

func indexMap(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		m[strings.ToLower(h)] = i
	}
	return m
}

func hashRow(p product.Product) string {
	canon := strings.Join([]string{
		"name=" + p.Name,
		"brand=" + p.Brand,
		"cat=" + p.Category,
		"price=" + strconv.FormatFloat(p.Price, 'f', -1, 64),
		"image=" + p.ImageURL,
	}, "\n")
	sum := sha256.Sum256([]byte(canon))
	return hex.EncodeToString(sum[:])
}
