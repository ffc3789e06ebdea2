// Package textx provides small text utilities shared by the indexer and the
// API layer: sanitization of scraped text and label-based field extraction
// from course documents.
package textx

import (
	"strings"
)

// SanitizeText normalizes whitespace in scraped text. Consecutive blank lines
// collapse to one, carriage returns are stripped, and surrounding space is
// trimmed.
func SanitizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// ExtractField returns the single-line value following "label:" in doc, or
// "N/A" when the label is missing or has no value.
func ExtractField(doc, label string) string {
	for _, line := range strings.Split(doc, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		prefix := strings.ToLower(label) + ":"
		if strings.HasPrefix(lower, prefix) {
			val := strings.TrimSpace(trimmed[len(prefix):])
			if val == "" {
				return "N/A"
			}
			return val
		}
	}
	return "N/A"
}

// sectionLabels are the known headings in an indexed course document. A
// multiline section runs until the next known heading or end of document.
var sectionLabels = []string{
	"Course",
	"Department",
	"Campus",
	"Location",
	"Study Language",
	"Study Method",
	"Duration",
	"Fees",
	"Entry Requirements",
	"Admission Requirements",
	"Career Opportunities",
	"English Requirement Level",
	"URL",
}

// ExtractSection returns the possibly multiline value following "label:" in
// doc, up to the next known heading. Returns "N/A" when the label is missing
// or the section is empty.
func ExtractSection(doc, label string) string {
	lines := strings.Split(doc, "\n")
	prefix := strings.ToLower(label) + ":"
	start := -1
	var first string
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(trimmed), prefix) {
			first = strings.TrimSpace(trimmed[len(prefix):])
			start = i + 1
			break
		}
	}
	if start < 0 {
		return "N/A"
	}
	collected := []string{}
	if first != "" {
		collected = append(collected, first)
	}
	for _, line := range lines[start:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isHeading(trimmed) {
			break
		}
		collected = append(collected, trimmed)
	}
	if len(collected) == 0 {
		return "N/A"
	}
	return strings.Join(collected, "\n")
}

func isHeading(line string) bool {
	lower := strings.ToLower(line)
	for _, lbl := range sectionLabels {
		if strings.HasPrefix(lower, strings.ToLower(lbl)+":") {
			return true
		}
	}
	return false
}
