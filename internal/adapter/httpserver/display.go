package httpserver

import (
	"fmt"

	"github.com/fairyhunter13/course-advisor/internal/domain"
	"github.com/fairyhunter13/course-advisor/pkg/textx"
)

// recommendationView is the frontend-facing shape of one recommended course.
type recommendationView struct {
	Rank                int      `json:"rank"`
	CourseName          string   `json:"course_name"`
	University          string   `json:"university"`
	Department          string   `json:"department"`
	Location            string   `json:"location"`
	MatchScore          float64  `json:"match_score"`
	CareerOpportunities string   `json:"career_opportunities"`
	StudyLanguage       string   `json:"study_language"`
	StudyMethod         string   `json:"study_method"`
	Duration            string   `json:"duration"`
	Requirements        string   `json:"requirements"`
	CourseFee           string   `json:"course_fee"`
	Explanation         string   `json:"explanation"`
	Tags                []string `json:"tags"`
	URL                 string   `json:"url"`
}

// recommendationEnvelope is the response body for the recommend endpoint.
type recommendationEnvelope struct {
	Status          string               `json:"status"`
	Recommendations []recommendationView `json:"recommendations"`
	Warnings        []string             `json:"warnings"`
	Errors          []string             `json:"errors"`
}

// toEnvelope maps the pipeline result onto the display shape. Fields missing
// from the structured metadata are scraped out of the indexed document text.
func toEnvelope(rec domain.Recommendation) recommendationEnvelope {
	views := make([]recommendationView, 0, len(rec.Results))
	for i, c := range rec.Results {
		studyLanguage := textx.ExtractField(c.Document, "Study Language")
		studyMethod := c.Meta.StudyMethod
		if studyMethod == "" {
			studyMethod = textx.ExtractField(c.Document, "Study Method")
		}
		requirements := c.Meta.EntryRequirements
		if requirements == "" {
			requirements = textx.ExtractSection(c.Document, "Admission Requirements")
		}
		careers := c.Meta.CareerOpportunities
		if careers == "" {
			careers = textx.ExtractSection(c.Document, "Career Opportunities")
		}
		fee := c.Meta.Fee
		if fee == "" {
			fee = textx.ExtractField(c.Document, "Fees")
		}
		explanation := c.Explanation
		if explanation == "" {
			explanation = "No explanation provided."
		}
		views = append(views, recommendationView{
			Rank:                i + 1,
			CourseName:          orUnknown(c.Course),
			University:          orUnknown(c.Meta.Campus),
			Department:          orUnknown(c.Meta.Department),
			Location:            orUnknown(c.Meta.Location),
			MatchScore:          c.Score,
			CareerOpportunities: careers,
			StudyLanguage:       studyLanguage,
			StudyMethod:         studyMethod,
			Duration:            orUnknown(c.Meta.Duration),
			Requirements:        requirements,
			CourseFee:           fee,
			Explanation:         explanation,
			Tags: []string{
				fmt.Sprintf("%.0f%%", c.Score),
				studyLanguage,
				studyMethod,
			},
			URL: c.Meta.URL,
		})
	}
	return recommendationEnvelope{
		Status:          rec.Status,
		Recommendations: views,
		Warnings:        orEmptyList(rec.Warnings),
		Errors:          orEmptyList(rec.Errors),
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func orEmptyList(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
