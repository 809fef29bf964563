package metrics

import (
	"context"
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	db *sql.DB

	productsTotal      prometheus.Gauge
	productsByCategory *prometheus.GaugeVec
	uncategorized      prometheus.Gauge
	outOfStock         prometheus.Gauge
	inventoryValue     prometheus.Gauge
	stockByCategory    *prometheus.GaugeVec
}

func New(db *sql.DB) *Collector {
	c := &Collector{db: db}

	c.productsTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "catalog",
		Name:      "products_total",
		Help:      "Number of products in the catalog",
	})
	c.productsByCategory = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "catalog",
		Name:      "products_by_category",
		Help:      "Number of products per category",
	}, []string{"category"})
	c.uncategorized = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "catalog",
		Name:      "products_uncategorized",
		Help:      "Products still in the uncategorized bucket",
	})
	c.outOfStock = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "catalog",
		Name:      "products_out_of_stock",
		Help:      "Products with zero stock",
	})
	c.inventoryValue = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "catalog",
		Name:      "inventory_value_rupees",
		Help:      "Sum of price*stock across the catalog",
	})
	c.stockByCategory = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "catalog",
		Name:      "stock_by_category",
		Help:      "Units in stock per category",
	}, []string{"category"})

	return c
}

func (c *Collector) Register(reg prometheus.Registerer) {
	reg.MustRegister(
		c.productsTotal,
		c.productsByCategory,
		c.uncategorized,
		c.outOfStock,
		c.inventoryValue,
		c.stockByCategory,
	)
}

// Refresh recomputes gauges (call on each scrape or periodically).
func (c *Collector) Refresh(ctx context.Context) error {
	var total int64
	var uncat, oos sql.NullInt64
	var value sql.NullFloat64
	err := c.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       SUM(CASE WHEN category = '' OR category = 'uncategorized' THEN 1 ELSE 0 END),
		       SUM(CASE WHEN stock <= 0 THEN 1 ELSE 0 END),
		       SUM(price * stock)
		FROM products
	`).Scan(&total, &uncat, &oos, &value)
	if err != nil {
		return err
	}
	c.productsTotal.Set(float64(total))
	c.uncategorized.Set(float64(uncat.Int64))
	c.outOfStock.Set(float64(oos.Int64))
	c.inventoryValue.Set(value.Float64)

	c.productsByCategory.Reset()
	c.stockByCategory.Reset()

	rows, err := c.db.QueryContext(ctx, `
		SELECT CASE WHEN category = '' THEN 'uncategorized' ELSE category END AS cat,
		       COUNT(*), SUM(stock)
		FROM products
		GROUP BY 1
	`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var cat string
		var n, stock int64
		_ = rows.Scan(&cat, &n, &stock)
		c.productsByCategory.WithLabelValues(cat).Set(float64(n))
		c.stockByCategory.WithLabelValues(cat).Set(float64(stock))
	}
	return rows.Err()
}
