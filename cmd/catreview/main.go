package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vaibhav-tools/catalog/internal/app"
	"github.com/vaibhav-tools/catalog/internal/canonical"
	"github.com/vaibhav-tools/catalog/internal/db"
	"github.com/vaibhav-tools/catalog/internal/review"
)

func main() {
	dbPath := flag.String("db", app.DefaultDBPath(), "sqlite db path")
	out := flag.String("out", "category_review.json", "JSON summary output path")
	defaults := canonical.DefaultThresholds()
	auto := flag.Float64("auto", defaults.AutoAccept, "auto-accept threshold")
	rev := flag.Float64("review", defaults.Review, "review threshold")
	create := flag.Float64("create", defaults.CreateNew, "create-new threshold")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	cfg := review.Config{
		Out:        *out,
		Thresholds: canonical.Thresholds{AutoAccept: *auto, Review: *rev, CreateNew: *create},
	}
	if _, err := review.Run(ctx, d, log, cfg); err != nil {
		log.Error("review failed", "err", err)
		os.Exit(1)
	}
}
