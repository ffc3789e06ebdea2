// Package retrieval implements semantic course search on top of the Qdrant
// vector store and an embedding provider.
package retrieval

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/fairyhunter13/course-advisor/internal/adapter/vector/qdrant"
	"github.com/fairyhunter13/course-advisor/internal/domain"
	"github.com/fairyhunter13/course-advisor/internal/observability"
)

// Embedder produces one vector per input text.
type Embedder interface {
	Embed(ctx domain.Context, texts []string) ([][]float32, error)
}

// Retriever implements domain.Retriever over Qdrant.
type Retriever struct {
	Embedder   Embedder
	Store      *qdrant.Client
	Collection string
}

// Search embeds the query and returns the topK nearest courses. An embedding
// failure degrades to an empty candidate list; only a store failure is an
// error.
func (r *Retriever) Search(ctx domain.Context, queryText string, topK int) ([]domain.CourseCandidate, error) {
	lg := observability.LoggerFromContext(ctx)

	vecs, err := r.Embedder.Embed(ctx, []string{queryText})
	if err != nil || len(vecs) == 0 {
		lg.Warn("query embedding failed, returning no candidates", slog.Any("error", err))
		return []domain.CourseCandidate{}, nil
	}

	results, err := r.Store.Search(ctx, r.Collection, vecs[0], topK)
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.CourseCandidate, 0, len(results))
	for _, res := range results {
		meta := metaFromPayload(res.Payload)
		candidates = append(candidates, domain.CourseCandidate{
			Course: meta.Course,
			// Qdrant cosine scores are similarities; flip to distance so the
			// rest of the pipeline keeps the 0-is-best convention.
			Distance: 1.0 - res.Score,
			Meta:     meta,
			Document: stringField(res.Payload, "document"),
		})
	}
	return candidates, nil
}

// KnownLocations scans the collection payloads and returns the distinct
// course locations (falling back to campus). Used for the validation layer's
// plausibility check; an error leaves the check disabled.
func (r *Retriever) KnownLocations(ctx domain.Context) ([]string, error) {
	payloads, err := r.Store.Scroll(ctx, r.Collection, 256)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	for _, p := range payloads {
		loc := stringField(p, "location")
		if loc == "" {
			loc = stringField(p, "campus")
		}
		if loc != "" {
			seen[loc] = struct{}{}
		}
	}
	locations := make([]string, 0, len(seen))
	for loc := range seen {
		locations = append(locations, loc)
	}
	sort.Strings(locations)
	return locations, nil
}

// metaFromPayload maps a Qdrant payload onto CourseMeta. Legacy indexes used
// display-cased keys ("Course", "Study Method"); both spellings are accepted.
func metaFromPayload(payload map[string]any) domain.CourseMeta {
	return domain.CourseMeta{
		Course:              pick(payload, "course", "Course"),
		Department:          pick(payload, "department", "Department"),
		Campus:              pick(payload, "campus", "Campus"),
		Location:            pick(payload, "location", "Location"),
		StudyMethod:         pick(payload, "study_method", "Study Method"),
		Duration:            pick(payload, "duration", "Duration"),
		Fee:                 pick(payload, "fee", "Fees"),
		EntryRequirements:   pick(payload, "entry_requirements", "Entry Requirements"),
		CareerOpportunities: pick(payload, "career_opportunities", "Career Opportunities"),
		URL:                 pick(payload, "url", "URL"),
	}
}

func pick(payload map[string]any, keys ...string) string {
	for _, k := range keys {
		if v := stringField(payload, k); v != "" {
			return v
		}
	}
	return ""
}

func stringField(payload map[string]any, key string) string {
	if v, ok := payload[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
