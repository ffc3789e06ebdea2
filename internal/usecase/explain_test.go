package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/course-advisor/internal/domain"
	"github.com/fairyhunter13/course-advisor/internal/usecase"
)

func newExplainService(gen domain.TextGenerator) *usecase.ExplainService {
	return &usecase.ExplainService{
		Gen:     gen,
		Domains: usecase.DefaultCareerDomains(),
		Policy: usecase.RetryPolicy{
			MaxAttempts: 2,
			Timeout:     time.Second,
			Backoff:     time.Millisecond,
		},
		MaxTokens: 160,
	}
}

func TestExplainService_GeneratedText(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{texts: []string{"  A tailored explanation.  "}}
	svc := newExplainService(gen)

	ranked := []domain.CourseCandidate{
		{Course: "a", Score: 90, Meta: domain.CourseMeta{Course: "BSc Software Engineering"}},
	}
	got := svc.Annotate(context.Background(), domain.UserProfile{InterestArea: "software"}, ranked, 5)
	require.Len(t, got, 1)
	assert.Equal(t, "A tailored explanation.", got[0].Explanation)
	assert.Equal(t, 1, gen.calls)
}

func TestExplainService_FallbackAfterExhaustedAttempts(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{err: errors.New("upstream down")}
	svc := newExplainService(gen)

	ranked := []domain.CourseCandidate{
		{Course: "a", Score: 72, Meta: domain.CourseMeta{Course: "BSc Software Engineering", Location: "Colombo"}},
	}
	p := domain.UserProfile{InterestArea: "software", CareerGoal: "software engineer"}
	got := svc.Annotate(context.Background(), p, ranked, 5)

	require.Len(t, got, 1)
	assert.Contains(t, got[0].Explanation, "aligns well with your interest in software")
	assert.Contains(t, got[0].Explanation, "match score: 72/100")
	// Two prompts (detailed, short), two attempts each.
	assert.Equal(t, 4, gen.calls)
}

func TestExplainService_TopNBudget(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{texts: []string{"generated"}}
	svc := newExplainService(gen)

	ranked := []domain.CourseCandidate{
		{Course: "a", Score: 90, Meta: domain.CourseMeta{Course: "BSc Software Engineering"}},
		{Course: "b", Score: 80, Meta: domain.CourseMeta{Course: "BSc Computer Science"}},
		{Course: "c", Score: 70, Meta: domain.CourseMeta{Course: "BSc Data Science"}},
	}
	got := svc.Annotate(context.Background(), domain.UserProfile{}, ranked, 1)

	require.Len(t, got, 3)
	assert.Equal(t, "generated", got[0].Explanation)
	// Everything past topN gets the rule-based text without generator calls.
	assert.Contains(t, got[1].Explanation, "match score: 80/100")
	assert.Contains(t, got[2].Explanation, "match score: 70/100")
	assert.Equal(t, 1, gen.calls)
}

func TestExplainService_CareerMismatchFallbackWording(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{err: errors.New("down")}
	svc := newExplainService(gen)

	ranked := []domain.CourseCandidate{
		{Course: "a", Score: 40, Meta: domain.CourseMeta{Course: "BSc Mechanical Engineering", Location: "Kandy"}},
	}
	p := domain.UserProfile{CareerGoal: "doctor", InterestArea: "medicine"}
	got := svc.Annotate(context.Background(), p, ranked, 5)

	require.Len(t, got, 1)
	assert.Contains(t, got[0].Explanation, "not directly aligned")
	assert.Contains(t, got[0].Explanation, "transferable skills")
}

func TestExplainService_NilGeneratorUsesFallback(t *testing.T) {
	t.Parallel()
	svc := newExplainService(nil)
	svc.Gen = nil

	ranked := []domain.CourseCandidate{
		{Course: "a", Score: 55, Meta: domain.CourseMeta{Course: "BA Teaching", Location: "Galle"}},
	}
	got := svc.Annotate(context.Background(), domain.UserProfile{}, ranked, 5)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Explanation, "your chosen field")
	assert.Contains(t, got[0].Explanation, "Galle")
}

func TestExplainService_CancelledContextStops(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{err: errors.New("down")}
	svc := newExplainService(gen)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ranked := []domain.CourseCandidate{
		{Course: "a", Score: 10, Meta: domain.CourseMeta{Course: "BA History"}},
	}
	got := svc.Annotate(ctx, domain.UserProfile{}, ranked, 5)
	require.Len(t, got, 1)
	// Fallback text still produced even when the context is dead.
	assert.NotEmpty(t, got[0].Explanation)
}
