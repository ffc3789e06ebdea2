package usecase

import (
	"math"
	"sort"
	"strings"

	"github.com/fairyhunter13/course-advisor/internal/domain"
	"github.com/fairyhunter13/course-advisor/internal/observability"
)

// Scoring weights. Similarity dominates; the rest are small nudges.
const (
	similarityWeight = 70.0
	interestBonus    = 10.0
	careerBonus      = 10.0
	methodBonus      = 5.0
	locationBonus    = 5.0
)

// Rank computes a composite score for every candidate and returns them in
// non-increasing score order. Ties keep their retrieval order.
func Rank(p domain.UserProfile, candidates []domain.CourseCandidate) []domain.CourseCandidate {
	ranked := make([]domain.CourseCandidate, len(candidates))
	copy(ranked, candidates)
	for i := range ranked {
		ranked[i].Score = scoreCandidate(p, ranked[i])
		observability.MatchScoreHistogram.Observe(ranked[i].Score)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// scoreCandidate blends vector similarity with preference heuristics into a
// [0,100] score.
func scoreCandidate(p domain.UserProfile, c domain.CourseCandidate) float64 {
	courseText := strings.ToLower(strings.Join([]string{
		c.Meta.Course, c.Meta.Department, c.Meta.CareerOpportunities,
	}, " "))

	score := (1.0 - c.Distance) * similarityWeight

	if tokenHit(p.InterestArea, courseText) {
		score += interestBonus
	}
	if tokenHit(p.CareerGoal, courseText) {
		score += careerBonus
	}

	userMethod := strings.ToLower(strings.TrimSpace(p.StudyMethod))
	if userMethod != "" && strings.Contains(strings.ToLower(c.Meta.StudyMethod), userMethod) {
		score += methodBonus
	}

	userLocs := strings.ToLower(strings.TrimSpace(p.PreferredLocations))
	if userLocs != "" {
		campus := strings.ToLower(c.Meta.Campus)
		for _, loc := range strings.Split(userLocs, ",") {
			loc = strings.TrimSpace(loc)
			if loc != "" && strings.Contains(campus, loc) {
				score += locationBonus
				break
			}
		}
	}

	return math.Max(0.0, math.Min(100.0, score))
}

// tokenHit reports whether any token of the phrase longer than three runes
// appears in the course text. The first hit is enough.
func tokenHit(phrase, courseText string) bool {
	for _, tok := range strings.Fields(strings.ToLower(phrase)) {
		if len(tok) > 3 && strings.Contains(courseText, tok) {
			return true
		}
	}
	return false
}
