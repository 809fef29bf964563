package app

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vaibhav-tools/catalog/internal/canonical"
	"github.com/vaibhav-tools/catalog/internal/importer"
	"github.com/vaibhav-tools/catalog/internal/metrics"
	"github.com/vaibhav-tools/catalog/internal/web"
)

type App struct {
	DB     *sql.DB
	Tmpl   *web.Templates
	Met    *metrics.Collector
	Mapper *canonical.Mapper
}

type Config struct {
	Addr string
	// AllowedOrigins is the storefront UI origin list; empty allows any.
	AllowedOrigins []string
}

func (a *App) Router(cfg Config) http.Handler {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", a.handleListProducts)
		r.Post("/products", a.handleCreateProduct)
		r.Get("/products/{id}", a.handleGetProduct)
		r.Put("/products/{id}", a.handleUpdateProduct)
		r.Delete("/products/{id}", a.handleDeleteProduct)
		r.Post("/products/{id}/classify", a.handleClassifyProduct)

		r.Post("/categories/normalize", a.handleNormalizeCategories)
	})

	r.Post("/upload", a.handleUpload)

	// admin pages
	r.Get("/admin", a.handleAdminProducts)
	r.Get("/admin/review", a.handleAdminReview)

	// metrics (refresh on scrape)
	r.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		_ = a.Met.Refresh(r.Context())
		promhttp.Handler().ServeHTTP(w, r)
	})
	return r
}

func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer f.Close()

	// Limit size (25MB).
	limited := io.LimitReader(f, 25*1024*1024)
	id, total, inserted, skipped, err := importer.ImportProductsCSV(a.DB, limited, hdr.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, "import failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"importId": id,
		"total":    total,
		"inserted": inserted,
		"skipped":  skipped,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func Run(ctx context.Context, db *sql.DB, tmpl *web.Templates, cfg Config) error {
	met := metrics.New(db)
	met.Register(prometheus.DefaultRegisterer)
	a := &App{
		DB:     db,
		Tmpl:   tmpl,
		Met:    met,
		Mapper: canonical.NewMapper(canonical.DiceBigram{}),
	}
	srv := &http.Server{Addr: cfg.Addr, Handler: a.Router(cfg)}

	go func() {
		<-ctx.Done()
		cctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(cctx)
	}()

	return srv.ListenAndServe()
}

func DefaultDBPath() string {
	return filepath.Join("data", "catalog.db")
}

func fmtMoney(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}
