package usecase

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CareerDomain maps a career goal to the course-domain keywords that count as
// aligned with it.
type CareerDomain struct {
	Career   string   `yaml:"career"`
	Keywords []string `yaml:"keywords"`
}

// CareerDomains is an ordered set of career-to-domain mappings. Order matters:
// fuzzy resolution returns the first entry that matches.
type CareerDomains []CareerDomain

// DefaultCareerDomains is the built-in career map used when no external map
// file is configured.
func DefaultCareerDomains() CareerDomains {
	return CareerDomains{
		{Career: "civil engineer", Keywords: []string{
			"civil", "construction", "structural", "building services",
			"infrastructure", "transportation", "water resources",
			"environmental engineering", "geotechnical", "urban planning",
		}},
		{Career: "software engineer", Keywords: []string{
			"software", "computer science", "information technology",
			"computing", "programming", "web development", "mobile development",
		}},
		{Career: "data scientist", Keywords: []string{
			"data science", "data analytics", "machine learning",
			"artificial intelligence", "statistics", "computer science",
			"information technology",
		}},
		{Career: "mechanical engineer", Keywords: []string{
			"mechanical", "automotive", "manufacturing", "industrial",
			"mechatronic", "robotics",
		}},
		{Career: "electrical engineer", Keywords: []string{
			"electrical", "electronics", "telecommunication", "power",
			"control systems", "automation",
		}},
		{Career: "electronics engineer", Keywords: []string{
			"electronics", "telecommunication", "embedded systems",
			"communication", "instrumentation",
		}},
		{Career: "computer engineer", Keywords: []string{
			"computer engineering", "computer systems", "embedded systems",
			"hardware", "computer science", "software",
		}},
		{Career: "business analyst", Keywords: []string{
			"business", "management", "information systems",
			"business analytics", "administration",
		}},
		{Career: "network engineer", Keywords: []string{
			"network", "telecommunication", "cybersecurity",
			"information technology", "computer science",
		}},
		{Career: "teacher", Keywords: []string{
			"education", "teaching", "pedagogy",
		}},
		{Career: "doctor", Keywords: []string{
			"medicine", "medical", "healthcare", "biomedical",
		}},
		{Career: "architect", Keywords: []string{
			"architecture", "building design", "urban planning",
		}},
		{Career: "agricultural engineer", Keywords: []string{
			"agricultural", "agriculture", "agronomy", "plantation",
		}},
	}
}

// LoadCareerDomains reads an ordered career map from a YAML file. Falls back
// to the caller when the file is missing or malformed.
func LoadCareerDomains(path string) (CareerDomains, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("op=career.load: %w", err)
	}
	var domains CareerDomains
	if err := yaml.Unmarshal(raw, &domains); err != nil {
		return nil, fmt.Errorf("op=career.load: %w", err)
	}
	for i, d := range domains {
		if d.Career == "" || len(d.Keywords) == 0 {
			return nil, fmt.Errorf("op=career.load: entry %d missing career or keywords", i)
		}
	}
	return domains, nil
}

// Resolve returns the domain keywords for a career goal. Exact match wins;
// otherwise the first entry whose career name contains (or is contained in)
// the goal matches. Returns nil when the goal is empty or unmapped.
func (cd CareerDomains) Resolve(careerGoal string) []string {
	goal := strings.ToLower(strings.TrimSpace(careerGoal))
	if goal == "" {
		return nil
	}
	for _, d := range cd {
		if d.Career == goal {
			return d.Keywords
		}
	}
	for _, d := range cd {
		if strings.Contains(goal, d.Career) || strings.Contains(d.Career, goal) {
			return d.Keywords
		}
	}
	return nil
}

// Matches reports whether courseText falls inside the domains mapped to the
// career goal. An unmapped goal is permissive and matches everything.
func (cd CareerDomains) Matches(careerGoal, courseText string) bool {
	keywords := cd.Resolve(careerGoal)
	if len(keywords) == 0 {
		return true
	}
	text := strings.ToLower(courseText)
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
