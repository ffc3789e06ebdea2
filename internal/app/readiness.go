package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fairyhunter13/course-advisor/internal/config"
)

// Pinger is the minimal interface for a database pool capable of Ping.
type Pinger interface{ Ping(ctx context.Context) error }

// BuildReadinessChecks returns readiness checks for the database and Qdrant.
// The db check is nil when no pool is configured; the history endpoint is
// optional and readiness should not fail for a feature that is off.
func BuildReadinessChecks(cfg config.Config, pool Pinger) (
	func(ctx context.Context) error,
	func(ctx context.Context) error,
) {
	var dbCheck func(ctx context.Context) error
	if pool != nil {
		dbCheck = func(ctx context.Context) error {
			return pool.Ping(ctx)
		}
	}
	qdrantCheck := func(ctx context.Context) error {
		client := &http.Client{Timeout: 2 * time.Second}
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, cfg.QdrantURL+"/collections", nil)
		if cfg.QdrantAPIKey != "" {
			req.Header.Set("api-key", cfg.QdrantAPIKey)
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		return fmt.Errorf("qdrant status %d", resp.StatusCode)
	}
	return dbCheck, qdrantCheck
}
