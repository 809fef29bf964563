package importer

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vaibhav-tools/catalog/internal/db"
)

const sampleCSV = `Name,Description,Category,Brand,Price,Stock,Rating,Image URL
Bosch GSB 600 Impact Drill,600W impact drill,,,"₹4,299",10,4.6,
Angle Grinder Disc 100mm,cutting disc,,,45,120,,
Claw Hammer 450g,,Hand Tools,Taparia,349,25,4.3,https://cdn.example/hammer.jpg
`

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	require.NoError(t, db.Migrate(context.Background(), d))
	return d
}

func TestImportProductsCSV(t *testing.T) {
	d := openTestDB(t)

	id, total, inserted, skipped, err := ImportProductsCSV(d, strings.NewReader(sampleCSV), "products.csv")
	require.NoError(t, err)
	require.NotZero(t, id)
	require.Equal(t, 3, total)
	require.Equal(t, 3, inserted)
	require.Equal(t, 0, skipped)

	// classified on import: no category in the CSV row
	var cat, sub, brand string
	var price float64
	err = d.QueryRow(`SELECT category, sub_category, brand, price FROM products WHERE name LIKE 'Bosch%'`).Scan(&cat, &sub, &brand, &price)
	require.NoError(t, err)
	require.Equal(t, "power-and-hand-tools", cat)
	require.Equal(t, "Drills", sub)
	require.Equal(t, "Bosch", brand)
	require.Equal(t, 4299.0, price)

	// provided category is kept, sluggified
	err = d.QueryRow(`SELECT category FROM products WHERE name LIKE 'Claw%'`).Scan(&cat)
	require.NoError(t, err)
	require.Equal(t, "hand-tools", cat)

	// re-import dedupes on row_hash
	_, total, inserted, skipped, err = ImportProductsCSV(d, strings.NewReader(sampleCSV), "products.csv")
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Equal(t, 0, inserted)
	require.Equal(t, 3, skipped)
}
