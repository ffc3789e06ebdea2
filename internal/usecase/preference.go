package usecase

import (
	"log/slog"
	"strings"

	"github.com/fairyhunter13/course-advisor/internal/domain"
	"github.com/fairyhunter13/course-advisor/internal/observability"
)

// FilterMode reports how much of the preference filter survived before the
// result became non-empty.
type FilterMode int

const (
	// FilterStrict: career, location, study-method and duration all applied.
	FilterStrict FilterMode = iota
	// FilterCareerOnly: soft preferences dropped, career alignment kept.
	FilterCareerOnly
	// FilterFailsafe: nothing matched even career alignment; input returned
	// unchanged.
	FilterFailsafe
)

func (m FilterMode) String() string {
	switch m {
	case FilterStrict:
		return "strict"
	case FilterCareerOnly:
		return "career_only"
	case FilterFailsafe:
		return "failsafe"
	default:
		return "unknown"
	}
}

// PreferenceFilter narrows eligible candidates by career alignment and the
// user's soft preferences. Career alignment is the hard axis; location, study
// method and duration are soft and dropped together when they empty the pool.
type PreferenceFilter struct {
	Domains CareerDomains
}

// Apply filters candidates and reports which degradation mode produced the
// result. The returned slice is never empty when the input is non-empty.
func (f PreferenceFilter) Apply(ctx domain.Context, p domain.UserProfile, candidates []domain.CourseCandidate) ([]domain.CourseCandidate, FilterMode) {
	if len(candidates) == 0 {
		return candidates, FilterStrict
	}
	lg := observability.LoggerFromContext(ctx)

	aligned := make([]domain.CourseCandidate, 0, len(candidates))
	for _, c := range candidates {
		if f.matchesCareer(p, c.Meta) {
			aligned = append(aligned, c)
		}
	}
	if len(aligned) == 0 {
		lg.Warn("no candidates aligned with career goal, returning input unchanged",
			slog.String("career_goal", p.CareerGoal),
			slog.Int("candidates", len(candidates)))
		return candidates, FilterFailsafe
	}

	strict := make([]domain.CourseCandidate, 0, len(aligned))
	for _, c := range aligned {
		if !matchesLocation(p, c.Meta) {
			continue
		}
		if !matchesStudyMethod(p, c.Meta) {
			continue
		}
		if !matchesDuration(p, c.Meta) {
			continue
		}
		strict = append(strict, c)
	}
	if len(strict) > 0 {
		return strict, FilterStrict
	}

	lg.Info("soft preferences emptied the pool, keeping career-aligned candidates",
		slog.Int("aligned", len(aligned)))
	return aligned, FilterCareerOnly
}

// matchesCareer checks career-domain alignment against the course title,
// department and stated career opportunities.
func (f PreferenceFilter) matchesCareer(p domain.UserProfile, meta domain.CourseMeta) bool {
	text := strings.Join([]string{meta.Course, meta.Department, meta.CareerOpportunities}, " ")
	return f.Domains.Matches(p.CareerGoal, text)
}

// matchesLocation is a lenient cross-contains check between the comma or
// slash separated preferred locations and the course location/campus.
func matchesLocation(p domain.UserProfile, meta domain.CourseMeta) bool {
	pref := strings.ToLower(strings.TrimSpace(p.PreferredLocations))
	if pref == "" || pref == "n/a" {
		return true
	}
	courseLoc := strings.ToLower(meta.Location)
	if courseLoc == "" {
		courseLoc = strings.ToLower(meta.Campus)
	}
	for _, part := range splitList(pref) {
		if part != "" && strings.Contains(courseLoc, part) {
			return true
		}
	}
	return false
}

// matchesStudyMethod groups methods into an on-campus class and a remote
// class; within a class anything matches. Unclassified values fall back to a
// bidirectional substring check.
func matchesStudyMethod(p domain.UserProfile, meta domain.CourseMeta) bool {
	pref := strings.ToLower(strings.TrimSpace(p.StudyMethod))
	if pref == "" || pref == "n/a" {
		return true
	}
	courseMethod := strings.ToLower(meta.StudyMethod)
	if courseMethod == "" {
		return true
	}

	prefClass := methodClass(pref)
	courseClass := methodClass(courseMethod)
	if prefClass != "" && courseClass != "" {
		return prefClass == courseClass
	}
	return strings.Contains(courseMethod, pref) || strings.Contains(pref, courseMethod)
}

func methodClass(method string) string {
	for _, kw := range []string{"online", "distance", "remote", "part-time", "part time"} {
		if strings.Contains(method, kw) {
			return "remote"
		}
	}
	for _, kw := range []string{"onsite", "on-site", "on campus", "on-campus", "full-time", "full time", "physical", "weekday"} {
		if strings.Contains(method, kw) {
			return "oncampus"
		}
	}
	return ""
}

// matchesDuration does rough year matching between the preferred completion
// period and the course duration. Intentionally permissive: anything the
// rough check cannot classify passes.
func matchesDuration(p domain.UserProfile, meta domain.CourseMeta) bool {
	pref := strings.ToLower(strings.TrimSpace(p.CompletionPeriod))
	if pref == "" || pref == "n/a" {
		return true
	}
	duration := strings.ToLower(meta.Duration)
	if strings.Contains(pref, "1 year") && strings.Contains(duration, "1 year") {
		return true
	}
	if (strings.Contains(pref, "3") || strings.Contains(pref, "4")) &&
		(strings.Contains(duration, "3") || strings.Contains(duration, "4")) {
		return true
	}
	return true
}

// splitList splits on commas and slashes and trims each piece.
func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '/'
	})
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}
