package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fairyhunter13/course-advisor/internal/domain"
	"github.com/fairyhunter13/course-advisor/internal/observability"
)

const fallbackWarning = "No courses matched all your preferences exactly, so we're showing the best available alternatives."

// RecommendService orchestrates the full pipeline: validation, semantic
// retrieval, eligibility gate, preference filter, ranking and explanation.
// Degradation happens inside the pipeline; callers only ever see an error
// when retrieval itself is unreachable.
type RecommendService struct {
	Retriever domain.Retriever
	Filter    PreferenceFilter
	Explainer *ExplainService
	Store     domain.RecommendationStore

	// KnownLocations feeds the location plausibility check. Empty skips it.
	KnownLocations []string

	InitialK    int
	FinalK      int
	ExplainTopN int
}

// Recommend runs the pipeline for one profile. A validation failure is a
// terminal "error" envelope, not a Go error; a Go error means retrieval was
// unreachable.
func (s *RecommendService) Recommend(ctx domain.Context, p domain.UserProfile) (domain.Recommendation, error) {
	lg := observability.LoggerFromContext(ctx)
	start := time.Now()

	outcome := ValidateProfile(p, s.KnownLocations)
	if outcome.Status == domain.ValidationError {
		lg.Info("profile validation failed", slog.Any("errors", outcome.Errors))
		rec := domain.Recommendation{
			Status:   domain.StatusError,
			Results:  []domain.CourseCandidate{},
			Warnings: outcome.Warnings,
			Errors:   outcome.Errors,
		}
		observability.RecommendationsTotal.WithLabelValues(domain.StatusError).Inc()
		s.record(ctx, p, rec, time.Since(start))
		return rec, nil
	}
	warnings := outcome.Warnings

	query := BuildQueryText(p)
	candidates, err := s.Retriever.Search(ctx, query, s.InitialK)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("op=recommend.search: %w", err)
	}
	observability.PipelineStageCandidates.WithLabelValues("retrieval").Observe(float64(len(candidates)))
	lg.Info("retrieved candidates", slog.Int("count", len(candidates)))

	if len(candidates) == 0 {
		rec := domain.Recommendation{
			Status:   domain.StatusSuccess,
			Results:  []domain.CourseCandidate{},
			Warnings: appendUnique(warnings, "No courses were found for your profile. Try broadening your interests or preferences."),
		}
		observability.RecommendationsTotal.WithLabelValues(domain.StatusSuccess).Inc()
		s.record(ctx, p, rec, time.Since(start))
		return rec, nil
	}

	eligible, excluded := FilterEligible(ctx, p, candidates)
	observability.PipelineStageCandidates.WithLabelValues("eligibility").Observe(float64(len(eligible)))
	lg.Info("eligibility gate applied",
		slog.Int("eligible", len(eligible)),
		slog.Int("excluded", len(excluded)))

	filtered, mode := s.Filter.Apply(ctx, p, eligible)
	observability.PipelineStageCandidates.WithLabelValues("preference").Observe(float64(len(filtered)))
	if mode != FilterStrict {
		observability.PipelineFallbacksTotal.WithLabelValues("preference").Inc()
		warnings = appendUnique(warnings, fallbackWarning)
	}

	// The preference filter only empties when the eligibility gate already
	// emptied the pool. Substitute the best available alternatives.
	if len(filtered) == 0 {
		observability.PipelineFallbacksTotal.WithLabelValues("eligibility").Inc()
		warnings = appendUnique(warnings, fallbackWarning)
		filtered = head(candidates, s.FinalK)
		lg.Warn("eligibility gate emptied the pool, substituting raw retrieval results",
			slog.Int("substituted", len(filtered)))
	}

	ranked := Rank(p, filtered)
	observability.PipelineStageCandidates.WithLabelValues("ranking").Observe(float64(len(ranked)))

	if s.Explainer != nil {
		ranked = s.Explainer.Annotate(ctx, p, ranked, s.ExplainTopN)
	}

	rec := domain.Recommendation{
		Status:   domain.StatusSuccess,
		Results:  ranked,
		Warnings: warnings,
	}
	observability.RecommendationsTotal.WithLabelValues(domain.StatusSuccess).Inc()
	s.record(ctx, p, rec, time.Since(start))
	lg.Info("recommendation pipeline complete",
		slog.Int("results", len(ranked)),
		slog.Duration("elapsed", time.Since(start)))
	return rec, nil
}

// record persists the run for auditing. Best effort: storage errors are
// logged and swallowed.
func (s *RecommendService) record(ctx domain.Context, p domain.UserProfile, rec domain.Recommendation, elapsed time.Duration) {
	if s.Store == nil {
		return
	}
	run := domain.RecommendationRun{
		Profile:     p,
		Status:      rec.Status,
		ResultCount: len(rec.Results),
		Warnings:    rec.Warnings,
		Errors:      rec.Errors,
		Elapsed:     elapsed,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.Store.Save(ctx, run); err != nil {
		observability.LoggerFromContext(ctx).Warn("failed to persist recommendation run",
			slog.Any("error", err))
	}
}

func appendUnique(list []string, msg string) []string {
	for _, existing := range list {
		if existing == msg {
			return list
		}
	}
	return append(list, msg)
}

func head(list []domain.CourseCandidate, n int) []domain.CourseCandidate {
	if n <= 0 || n >= len(list) {
		return list
	}
	return list[:n]
}
