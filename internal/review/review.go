package review

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/vaibhav-tools/catalog/internal/canonical"
)

type Config struct {
	// Out is the path of the JSON summary file; empty skips the write.
	Out        string
	Thresholds canonical.Thresholds
}

// Run maps every distinct raw category label in the catalog against the
// canonical list, logs one decision per label, and writes a JSON summary for
// the review/create_new/reject buckets.
func Run(ctx context.Context, db *sql.DB, log *slog.Logger, cfg Config) (canonical.Summary, error) {
	labels, err := distinctLabels(ctx, db)
	if err != nil {
		return canonical.Summary{}, err
	}

	m := canonical.NewMapper(canonical.DiceBigram{})
	sum := m.ProcessCategories(labels, cfg.Thresholds)

	for _, d := range sum.Decisions {
		log.Info("category decision",
			"raw", d.Original,
			"canonical", d.Category,
			"score", d.Score,
			"method", d.Method,
			"action", string(d.Action),
		)
	}
	log.Info("review summary",
		"total", sum.Total,
		"auto_accept", sum.ByAction[canonical.ActionAutoAccept],
		"review", sum.ByAction[canonical.ActionReview],
		"create_new", sum.ByAction[canonical.ActionCreateNew],
		"reject", sum.ByAction[canonical.ActionReject],
	)

	if cfg.Out != "" {
		if err := writeSummary(cfg.Out, sum); err != nil {
			return sum, err
		}
	}
	return sum, nil
}

func distinctLabels(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT DISTINCT category_name FROM products WHERE category_name != '' ORDER BY category_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

func writeSummary(path string, sum canonical.Summary) error {
	b, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
