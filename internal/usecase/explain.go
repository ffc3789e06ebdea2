package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fairyhunter13/course-advisor/internal/domain"
	"github.com/fairyhunter13/course-advisor/internal/observability"
)

const explanationSystemPrompt = "You are an academic counselor. " +
	"Explain clearly and professionally in 3-4 short sentences."

// RetryPolicy bounds each explanation attempt. Timeout caps one attempt;
// Backoff is the pause between attempts.
type RetryPolicy struct {
	MaxAttempts int
	Timeout     time.Duration
	Backoff     time.Duration
}

// ExplainService attaches per-course explanations to ranked candidates. The
// top N get LLM-generated text with a prompt ladder (detailed, then short);
// everything else, and any candidate whose generation fails, gets the
// rule-based fallback.
type ExplainService struct {
	Gen       domain.TextGenerator
	Domains   CareerDomains
	Policy    RetryPolicy
	MaxTokens int
}

// Annotate fills Explanation on every candidate. Generation happens
// sequentially for the first topN candidates; the method never returns an
// error because the fallback always produces text.
func (s *ExplainService) Annotate(ctx domain.Context, p domain.UserProfile, ranked []domain.CourseCandidate, topN int) []domain.CourseCandidate {
	lg := observability.LoggerFromContext(ctx)

	limit := topN
	if limit > len(ranked) {
		limit = len(ranked)
	}

	for i := 0; i < limit; i++ {
		c := &ranked[i]
		text := s.tryGenerate(ctx, buildDetailedPrompt(p, c.Meta))
		if text == "" {
			text = s.tryGenerate(ctx, buildShortPrompt(p, c.Meta))
		}
		if text == "" {
			lg.Info("explanation generation exhausted, using fallback",
				slog.String("course", c.Meta.Course))
			text = s.fallbackExplanation(p, c.Meta, c.Score)
		}
		c.Explanation = text
	}

	for i := limit; i < len(ranked); i++ {
		ranked[i].Explanation = s.fallbackExplanation(p, ranked[i].Meta, ranked[i].Score)
	}
	return ranked
}

// tryGenerate runs the generator with per-attempt timeouts. Empty string
// means all attempts failed.
func (s *ExplainService) tryGenerate(ctx domain.Context, prompt string) string {
	if s.Gen == nil {
		return ""
	}
	attempts := s.Policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 && s.Policy.Backoff > 0 {
			select {
			case <-ctx.Done():
				return ""
			case <-time.After(s.Policy.Backoff):
			}
		}
		attemptCtx := ctx
		var cancel context.CancelFunc
		if s.Policy.Timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, s.Policy.Timeout)
		}
		text, err := s.Gen.Generate(attemptCtx, explanationSystemPrompt, prompt, s.MaxTokens)
		if cancel != nil {
			cancel()
		}
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
		if ctx.Err() != nil {
			return ""
		}
	}
	return ""
}

func buildDetailedPrompt(p domain.UserProfile, meta domain.CourseMeta) string {
	return fmt.Sprintf(`You are an academic counselor. Explain clearly why this course is a strong match
for the student. Write 3-4 short sentences. Cover:

- alignment with interest area
- support for career goal
- match with preferred study method and location
- suitability based on academic background

STUDENT:
- Interest Area: %s
- Career Goal: %s
- Study Method: %s
- Preferred Location: %s
- A/L Stream: %s
- A/L Results: %s
- Other Qualifications: %s

COURSE:
- Title: %s
- Location: %s
- Method: %s
- Duration: %s
- Career Opportunities: %s`,
		p.InterestArea, p.CareerGoal, p.StudyMethod, p.PreferredLocations,
		p.ALStream, p.ALResults, p.OtherQualifications,
		meta.Course, meta.Location, meta.StudyMethod, meta.Duration,
		meta.CareerOpportunities)
}

func buildShortPrompt(p domain.UserProfile, meta domain.CourseMeta) string {
	return fmt.Sprintf(
		"Explain in 2 short sentences why '%s' is suitable for a student interested in %s and aiming to become %s.",
		meta.Course, p.InterestArea, p.CareerGoal)
}

// fallbackExplanation is the deterministic, always-available explanation.
// When the course sits outside the student's mapped career domains the text
// acknowledges the gap instead of overselling the match.
func (s *ExplainService) fallbackExplanation(p domain.UserProfile, meta domain.CourseMeta, score float64) string {
	interest := orDefault(p.InterestArea, "your chosen field")
	career := orDefault(p.CareerGoal, "your career path")
	location := p.PreferredLocations
	if strings.TrimSpace(location) == "" {
		location = meta.Location
	}
	location = orDefault(location, "your area")

	courseText := strings.Join([]string{meta.Course, meta.Department, meta.CareerOpportunities}, " ")
	if !s.Domains.Matches(p.CareerGoal, courseText) {
		return fmt.Sprintf(
			"This course is not directly aligned with your goal of becoming %s, but it builds transferable skills and matches your interest in %s. "+
				"It is offered in or near your preferred location (%s) (match score: %.0f/100).",
			career, interest, location, score)
	}

	return fmt.Sprintf(
		"This course aligns well with your interest in %s and supports your goal of becoming %s. "+
			"It is offered in or near your preferred location (%s) and provides career opportunities relevant to your path (match score: %.0f/100).",
		interest, career, location, score)
}
