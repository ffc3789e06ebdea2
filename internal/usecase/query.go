package usecase

import (
	"fmt"
	"strings"

	"github.com/fairyhunter13/course-advisor/internal/domain"
)

// BuildQueryText renders the structured profile as a natural-language query
// for semantic retrieval. Missing fields are rendered as N/A so every profile
// produces a query with the same shape.
func BuildQueryText(p domain.UserProfile) string {
	return fmt.Sprintf(`Provide course recommendations for a student with the following profile:

- Age: %s
- Native Language: %s
- Preferred Study Language: %s
- O/L Results: %s
- A/L Stream: %s
- A/L Results: %s
- Other Qualifications: %s
- IELTS Score: %s
- Interest Area: %s
- Career Goal: %s
- Monthly Family Income: %s
- Study Method Preference: %s
- Weekend/Weekday Availability: %s
- Target Completion Period: %s
- Current Location: %s
- Preferred Study Locations: %s

The goal is to find the most academically suitable, financially suitable, and career-aligned degree courses.`,
		orNA(p.Age),
		orNA(p.NativeLanguage),
		orNA(p.PreferredLanguage),
		orNA(p.OLResults),
		orNA(p.ALStream),
		orNA(p.ALResults),
		orDefault(p.OtherQualifications, "None"),
		orNA(p.IELTS),
		orNA(p.InterestArea),
		orNA(p.CareerGoal),
		orNA(p.Income),
		orNA(p.StudyMethod),
		orNA(p.Availability),
		orNA(p.CompletionPeriod),
		orNA(p.CurrentLocation),
		orNA(p.PreferredLocations),
	)
}

func orNA(s string) string { return orDefault(s, "N/A") }

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
