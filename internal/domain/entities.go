package domain

import (
	"context"
	"errors"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrUpstreamTimeout = errors.New("upstream timeout")
	ErrUnavailable     = errors.New("unavailable")
	ErrInternal        = errors.New("internal error")
)

// UserProfile is the inbound student profile. Every field is optional text;
// stages read it but never write to it. Numeric fields (age, ielts) stay as
// strings because applicants type free-form values; parsing happens at the
// point of use with safe defaults.
type UserProfile struct {
	Age                 string `json:"age,omitempty" validate:"omitempty,max=8"`
	NativeLanguage      string `json:"native_language,omitempty" validate:"omitempty,max=64"`
	PreferredLanguage   string `json:"preferred_language,omitempty" validate:"omitempty,max=64"`
	OLResults           string `json:"ol_results,omitempty" validate:"omitempty,max=512"`
	ALStream            string `json:"al_stream,omitempty" validate:"omitempty,max=128"`
	ALResults           string `json:"al_results,omitempty" validate:"omitempty,max=512"`
	OtherQualifications string `json:"other_qualifications,omitempty" validate:"omitempty,max=1024"`
	IELTS               string `json:"ielts,omitempty" validate:"omitempty,max=16"`
	InterestArea        string `json:"interest_area,omitempty" validate:"omitempty,max=256"`
	CareerGoal          string `json:"career_goal,omitempty" validate:"omitempty,max=256"`
	Income              string `json:"income,omitempty" validate:"omitempty,max=64"`
	StudyMethod         string `json:"study_method,omitempty" validate:"omitempty,max=64"`
	Availability        string `json:"availability,omitempty" validate:"omitempty,max=64"`
	CompletionPeriod    string `json:"completion_period,omitempty" validate:"omitempty,max=64"`
	CurrentLocation     string `json:"current_location,omitempty" validate:"omitempty,max=128"`
	PreferredLocations  string `json:"preferred_locations,omitempty" validate:"omitempty,max=256"`
}

// CourseMeta is the structured metadata stored alongside each indexed course.
// Missing fields are empty strings; consumers must tolerate that.
type CourseMeta struct {
	Course              string `json:"course"`
	Department          string `json:"department"`
	Campus              string `json:"campus"`
	Location            string `json:"location"`
	StudyMethod         string `json:"study_method"`
	Duration            string `json:"duration"`
	Fee                 string `json:"fee"`
	EntryRequirements   string `json:"entry_requirements"`
	CareerOpportunities string `json:"career_opportunities"`
	URL                 string `json:"url"`
}

// CourseCandidate is one course returned by semantic retrieval.
// Distance uses the cosine-distance convention: 0 = identical, up to 2.
// Score and Explanation are additive annotations set by the ranking and
// explanation stages; the retrieval fields above are never mutated.
type CourseCandidate struct {
	Course   string     `json:"course"`
	Distance float64    `json:"distance"`
	Meta     CourseMeta `json:"metadata"`
	Document string     `json:"document"`

	Score       float64 `json:"score"`
	Explanation string  `json:"explanation,omitempty"`

	// ExclusionReason is set only on candidates removed by the eligibility
	// gate; it never appears in the outbound results.
	ExclusionReason string `json:"-"`
}

// Validation outcome statuses.
const (
	ValidationOK    = "ok"
	ValidationError = "error"
)

// ValidationOutcome is the result of the pre-retrieval profile check.
// Status "error" carries blocking errors and terminates the pipeline;
// warnings are advisory and always propagate to the response.
type ValidationOutcome struct {
	Status   string
	Warnings []string
	Errors   []string
}

// Recommendation envelope statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Recommendation is the final pipeline envelope. Results are ordered by
// non-increasing Score. Results is empty only when Status is "error" or
// retrieval produced nothing.
type Recommendation struct {
	Status   string            `json:"status"`
	Results  []CourseCandidate `json:"results"`
	Warnings []string          `json:"warnings"`
	Errors   []string          `json:"errors,omitempty"`
}

// RecommendationRun is the persisted audit record for one pipeline request.
type RecommendationRun struct {
	ID          string
	Profile     UserProfile
	Status      string
	ResultCount int
	Warnings    []string
	Errors      []string
	Elapsed     time.Duration
	CreatedAt   time.Time
}

// Ports

// Retriever performs semantic search over the course index. A failure to
// embed the query is reported as an empty candidate list, not an error.
type Retriever interface {
	Search(ctx Context, queryText string, topK int) ([]CourseCandidate, error)
}

// TextGenerator produces natural-language text from a prompt pair. Callers
// treat empty output the same as an error and fall back.
type TextGenerator interface {
	Generate(ctx Context, systemPrompt, userPrompt string, maxTokens int) (string, error)
}

// RecommendationStore persists pipeline runs for auditing. Implementations
// are best-effort; the pipeline never fails because a run could not be saved.
type RecommendationStore interface {
	Save(ctx Context, run RecommendationRun) (string, error)
	Recent(ctx Context, limit int) ([]RecommendationRun, error)
}

// Context is an alias to decouple the domain package from std context in
// signatures; adapters and usecases pass context.Context through.
type Context = context.Context
