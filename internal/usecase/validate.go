package usecase

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fairyhunter13/course-advisor/internal/domain"
)

// ValidateProfile runs pre-pipeline sanity checks on the user profile. It
// never blocks the process with an error return; blocking problems surface as
// entries in the outcome's Errors slice, minor ones as Warnings.
//
// knownLocations is the set of locations courses are actually offered in.
// When empty, the location plausibility check is skipped entirely.
func ValidateProfile(p domain.UserProfile, knownLocations []string) domain.ValidationOutcome {
	var errs, warns []string

	age := parseAge(p.Age)
	switch {
	case age > 0 && age < 12:
		errs = append(errs, "The minimum age for any academic program is 12+. Please re-check your age.")
	case age > 0 && age < 15:
		errs = append(errs, "You are too young for degree programs. Only foundation or school-level programs apply.")
	case age > 0 && age < 18:
		warns = append(warns, "Most degree programs require completed A/Ls. If you don't have A/L results, only Diplomas or Foundations are possible.")
	}

	hasAL := strings.TrimSpace(p.ALResults) != ""
	if !hasAL && age >= 18 {
		warns = append(warns, "You did not provide A/L results. Many degrees require A/L or equivalent qualifications.")
	}

	if msg := checkLocation(p.PreferredLocations, knownLocations); msg != "" {
		errs = append(errs, msg)
	}

	switch strings.ToLower(strings.TrimSpace(p.CompletionPeriod)) {
	case "1 year", "one year", "under 1 year", "1":
		warns = append(warns, "Most full bachelor's degrees take 3-4 years. A 1-year duration suggests a diploma, top-up, or certificate program.")
	}

	status := domain.ValidationOK
	if len(errs) > 0 {
		status = domain.ValidationError
	}
	return domain.ValidationOutcome{Status: status, Warnings: warns, Errors: errs}
}

// parseAge tolerates non-numeric input; anything unparseable is treated as
// "not provided".
func parseAge(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	age, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return age
}

// checkLocation verifies the preferred locations are plausible against the
// known course locations. Returns an error message, or "" when fine.
func checkLocation(preferred string, knownLocations []string) string {
	pref := strings.ToLower(strings.TrimSpace(preferred))
	if pref == "" || pref == "n/a" {
		return ""
	}
	if len(knownLocations) == 0 {
		return ""
	}

	normalized := make(map[string]struct{})
	for _, loc := range knownLocations {
		for _, part := range strings.Split(strings.ToLower(loc), ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				normalized[part] = struct{}{}
			}
		}
	}

	for _, p := range strings.Split(pref, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		for avail := range normalized {
			if strings.Contains(avail, p) {
				return ""
			}
		}
	}

	samples := make([]string, 0, len(normalized))
	for loc := range normalized {
		samples = append(samples, loc)
	}
	sort.Strings(samples)
	if len(samples) > 5 {
		samples = samples[:5]
	}
	titled := make([]string, len(samples))
	for i, s := range samples {
		titled[i] = titleCase(s)
	}
	return fmt.Sprintf(
		"No degree programs are available in your preferred location: %s. Available locations include: %s, etc.",
		pref, strings.Join(titled, ", "))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
