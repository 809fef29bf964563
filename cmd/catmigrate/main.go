package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vaibhav-tools/catalog/internal/app"
	"github.com/vaibhav-tools/catalog/internal/db"
	"github.com/vaibhav-tools/catalog/internal/migrate"
)

func main() {
	in := flag.String("in", "", "legacy JSON dump (array of product documents)")
	dbPath := flag.String("db", app.DefaultDBPath(), "sqlite db path")
	stock := flag.Bool("stock", false, "also reconcile legacy stock fields (stock/stockCount/quantity)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if *in == "" {
		log.Error("missing -in")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f, err := os.Open(*in)
	if err != nil {
		log.Error("open dump", "err", err)
		os.Exit(1)
	}
	defer f.Close()

	d, err := db.Open(*dbPath)
	if err != nil {
		log.Error("open db", "err", err)
		os.Exit(1)
	}
	defer d.Close()
	if err := db.Migrate(ctx, d); err != nil {
		log.Error("migrate schema", "err", err)
		os.Exit(1)
	}

	st, err := migrate.Run(ctx, d, f, migrate.Options{ReconcileStock: *stock})
	if err != nil {
		log.Error("migration failed", "err", err)
		os.Exit(1)
	}

	log.Info("migration complete",
		"total", st.Total,
		"written", st.Written,
		"category_changed", st.CategoryChanged,
		"price_changed", st.PriceChanged,
		"image_changed", st.ImageChanged,
		"stock_changed", st.StockChanged,
		"brand_filled", st.BrandFilled,
	)
}
