package app

import (
	"context"
	"log/slog"

	"github.com/fairyhunter13/course-advisor/internal/adapter/retrieval"
	qdrantcli "github.com/fairyhunter13/course-advisor/internal/adapter/vector/qdrant"
	"github.com/fairyhunter13/course-advisor/internal/config"
)

// EnsureCourseCollection makes sure the course collection exists (idempotent).
func EnsureCourseCollection(ctx context.Context, cfg config.Config, qcli *qdrantcli.Client) {
	if qcli == nil {
		return
	}
	if err := qcli.EnsureCollection(ctx, cfg.QdrantCollection, cfg.EmbeddingDim, "Cosine"); err != nil {
		slog.Warn("qdrant ensure collection failed",
			slog.String("collection", cfg.QdrantCollection),
			slog.Any("error", err))
	}
}

// LoadKnownLocations scans the course index for the distinct locations used
// by the validation layer. Returns nil on failure, which disables the
// location plausibility check rather than blocking startup.
func LoadKnownLocations(ctx context.Context, r *retrieval.Retriever) []string {
	locations, err := r.KnownLocations(ctx)
	if err != nil {
		slog.Warn("failed to load known course locations, location check disabled",
			slog.Any("error", err))
		return nil
	}
	if len(locations) == 0 {
		slog.Warn("course index has no locations, location check disabled")
		return nil
	}
	slog.Info("loaded known course locations", slog.Int("count", len(locations)))
	return locations
}
