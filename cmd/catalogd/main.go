package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/vaibhav-tools/catalog/internal/app"
	"github.com/vaibhav-tools/catalog/internal/db"
	"github.com/vaibhav-tools/catalog/internal/web"
)

func main() {
	addr := flag.String("addr", ":8788", "listen address")
	dbPath := flag.String("db", app.DefaultDBPath(), "sqlite db path")
	origins := flag.String("origins", "", "comma-separated allowed CORS origins (empty allows any)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := db.Open(*dbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer d.Close()
	if err := db.Migrate(ctx, d); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	tmpl, err := web.LoadTemplates()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg := app.Config{Addr: *addr}
	if *origins != "" {
		cfg.AllowedOrigins = strings.Split(*origins, ",")
	}

	fmt.Fprintf(os.Stderr, "catalogd listening on %s\n", *addr)
	if err := app.Run(ctx, d, tmpl, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
