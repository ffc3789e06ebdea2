package usecase

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/fairyhunter13/course-advisor/internal/domain"
	"github.com/fairyhunter13/course-advisor/internal/observability"
)

// Exclusion reasons attached to blocked candidates.
const (
	ReasonBlockedByPrerequisite = "blocked_by_prerequisite"
	ReasonBlockedByEntryReq     = "blocked_by_entry_requirements"
)

var (
	alKeywords = []string{
		"a/l", "advanced level", "a level",
		"physical science", "combined mathematics",
		"physics", "chemistry", "biology",
		"commerce stream", "arts stream",
		"gce advanced",
	}
	exemptionKeywords = []string{
		"foundation", "diploma", "o/l only",
		"ordinary level sufficient", "certificate",
	}
	degreeKeywords = []string{
		"bachelor", "degree", "bsc", "b.sc", "beng", "b.eng",
	}

	ieltsRequirementRe = regexp.MustCompile(`ielts.*?(\d+\.?\d*)`)
	numberRe           = regexp.MustCompile(`(\d+\.?\d*)`)
)

// hasAdvancedLevel reports whether the user has completed A/Ls: results or a
// stream that is non-empty and not a literal "null".
func hasAdvancedLevel(p domain.UserProfile) bool {
	return isMeaningful(p.ALResults) || isMeaningful(p.ALStream)
}

func isMeaningful(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && !strings.EqualFold(s, "null")
}

// requiresAdvancedLevel decides whether a course needs completed A/Ls. Degree
// programs require A/L unless explicitly exempted; otherwise A/L keywords in
// the course text decide, again subject to exemptions.
func requiresAdvancedLevel(meta domain.CourseMeta) bool {
	text := strings.ToLower(strings.Join([]string{
		meta.Course, meta.EntryRequirements, meta.Department,
	}, " "))

	exempt := containsAny(text, exemptionKeywords)
	if containsAny(text, degreeKeywords) && !exempt {
		return true
	}
	return containsAny(text, alKeywords) && !exempt
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// meetsEntryRequirements checks IELTS and O/L requirements stated in the
// course entry requirements. Fail closed: a stated requirement the user does
// not demonstrably meet blocks the course.
func meetsEntryRequirements(p domain.UserProfile, meta domain.CourseMeta) bool {
	entryReq := strings.ToLower(meta.EntryRequirements)

	if strings.Contains(entryReq, "ielts") {
		required := 5.0
		if m := ieltsRequirementRe.FindStringSubmatch(entryReq); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				required = v
			}
		}
		userRaw := strings.TrimSpace(p.IELTS)
		if m := numberRe.FindStringSubmatch(userRaw); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil && v < required {
				return false
			}
		} else {
			// Requirement stated but no usable score provided.
			return false
		}
	}

	if strings.Contains(entryReq, "o/l") || strings.Contains(entryReq, "ordinary level") {
		if strings.TrimSpace(p.OLResults) == "" {
			return false
		}
	}
	return true
}

// FilterEligible splits candidates into those the user can academically enter
// and those blocked by prerequisites or entry requirements. The gate is
// strict: an empty eligible slice is a valid answer, not a failure.
func FilterEligible(ctx domain.Context, p domain.UserProfile, candidates []domain.CourseCandidate) (eligible, excluded []domain.CourseCandidate) {
	lg := observability.LoggerFromContext(ctx)
	userHasAL := hasAdvancedLevel(p)

	var blockedByAL, blockedByEntry int
	for _, c := range candidates {
		if requiresAdvancedLevel(c.Meta) && !userHasAL {
			c.ExclusionReason = ReasonBlockedByPrerequisite
			excluded = append(excluded, c)
			blockedByAL++
			continue
		}
		if !meetsEntryRequirements(p, c.Meta) {
			c.ExclusionReason = ReasonBlockedByEntryReq
			excluded = append(excluded, c)
			blockedByEntry++
			continue
		}
		eligible = append(eligible, c)
	}

	if blockedByAL > 0 {
		lg.Info("eligibility gate blocked candidates missing A/L",
			slog.Int("blocked", blockedByAL))
	}
	if blockedByEntry > 0 {
		lg.Info("eligibility gate blocked candidates on entry requirements",
			slog.Int("blocked", blockedByEntry))
	}
	if len(eligible) == 0 && len(candidates) > 0 {
		lg.Warn("all candidates blocked by eligibility requirements",
			slog.Int("candidates", len(candidates)))
	}
	return eligible, excluded
}
