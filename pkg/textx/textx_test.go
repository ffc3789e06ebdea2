package textx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/course-advisor/pkg/textx"
)

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "trims surrounding space", in: "  hello  \n", want: "hello"},
		{name: "collapses blank runs", in: "a\n\n\n\nb", want: "a\n\nb"},
		{name: "normalizes carriage returns", in: "a\r\nb\rc", want: "a\nb\nc"},
		{name: "empty input", in: "", want: ""},
		{name: "strips trailing blank lines", in: "a\nb\n\n\n", want: "a\nb"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, textx.SanitizeText(tt.in))
		})
	}
}

const sampleDoc = `Course Title: BSc (Hons) Software Engineering
Offered By: School of Computing at NSBM
Study Language: English
Study Method: Full-time
Duration: 4 Years

Admission Requirements:
3 passes at G.C.E. A/L
IELTS 6.0 or equivalent

Career Opportunities:
Software Engineer
DevOps Engineer

Fees: Rs. 1,200,000
Location: Homagama

URL: https://example.edu/se`

func TestExtractField(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "English", textx.ExtractField(sampleDoc, "Study Language"))
	assert.Equal(t, "Full-time", textx.ExtractField(sampleDoc, "Study Method"))
	assert.Equal(t, "Rs. 1,200,000", textx.ExtractField(sampleDoc, "Fees"))
	assert.Equal(t, "N/A", textx.ExtractField(sampleDoc, "Scholarships"))
	assert.Equal(t, "english", textx.ExtractField("study language: english", "Study Language"))
}

func TestExtractSection(t *testing.T) {
	t.Parallel()

	req := textx.ExtractSection(sampleDoc, "Admission Requirements")
	assert.Contains(t, req, "3 passes at G.C.E. A/L")
	assert.Contains(t, req, "IELTS 6.0 or equivalent")
	// The section stops at the next heading.
	assert.NotContains(t, req, "Software Engineer")

	careers := textx.ExtractSection(sampleDoc, "Career Opportunities")
	assert.Equal(t, "Software Engineer\nDevOps Engineer", careers)

	assert.Equal(t, "N/A", textx.ExtractSection(sampleDoc, "Scholarships"))
	assert.Equal(t, "N/A", textx.ExtractSection("Admission Requirements:\n", "Admission Requirements"))
}
