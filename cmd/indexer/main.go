// Command indexer embeds the course catalog and loads it into Qdrant.
//
// The catalog is a JSON array of raw course records scraped from university
// sites. Each record is rendered into a structured document, embedded, and
// upserted with both the document text and the structured metadata as the
// point payload.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	ai "github.com/fairyhunter13/course-advisor/internal/adapter/ai/real"
	adapterobs "github.com/fairyhunter13/course-advisor/internal/adapter/observability"
	qdrantcli "github.com/fairyhunter13/course-advisor/internal/adapter/vector/qdrant"
	"github.com/fairyhunter13/course-advisor/internal/config"
	"github.com/fairyhunter13/course-advisor/pkg/textx"
)

// batchSize bounds one embeddings request; provider input limits apply.
const batchSize = 64

// rawCourse matches the scraped catalog's display-cased keys.
type rawCourse struct {
	Course              string `json:"Course"`
	Department          string `json:"Department"`
	Campus              string `json:"Campus"`
	Location            string `json:"Location"`
	StudyLanguage       string `json:"Study Language"`
	StudyMethod         string `json:"Study Method"`
	Duration            string `json:"Duration"`
	EntryRequirements   string `json:"Entry Requirements"`
	CareerOpportunities string `json:"Career Opportunities"`
	EnglishLevel        string `json:"English Level"`
	CourseFees          string `json:"Course Fees"`
	URL                 string `json:"URL"`
}

// buildDocument renders one course as the text that gets embedded and stored.
func buildDocument(c rawCourse) string {
	doc := fmt.Sprintf(`Course Title: %s
Offered By: %s at %s
Study Language: %s
Study Method: %s
Duration: %s

Admission Requirements:
%s

Career Opportunities:
%s

English Requirement Level: %s
Fees: %s
Location: %s

URL: %s`,
		orNA(c.Course), orNA(c.Department), orNA(c.Campus),
		orNA(c.StudyLanguage), orNA(c.StudyMethod), orNA(c.Duration),
		orNA(c.EntryRequirements), orNA(c.CareerOpportunities),
		orNA(c.EnglishLevel), orNA(c.CourseFees), orNA(c.Location),
		orNA(c.URL))
	return textx.SanitizeText(doc)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func payloadFor(c rawCourse, document string) map[string]any {
	return map[string]any{
		"course":               c.Course,
		"department":           c.Department,
		"campus":               c.Campus,
		"location":             c.Location,
		"study_method":         c.StudyMethod,
		"duration":             c.Duration,
		"fee":                  c.CourseFees,
		"entry_requirements":   c.EntryRequirements,
		"career_opportunities": c.CareerOpportunities,
		"url":                  c.URL,
		"document":             document,
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := adapterobs.SetupLogger(cfg)
	slog.SetDefault(logger)

	raw, err := os.ReadFile(cfg.CourseDataPath)
	if err != nil {
		slog.Error("failed to read course catalog", slog.String("path", cfg.CourseDataPath), slog.Any("error", err))
		os.Exit(1)
	}
	var courses []rawCourse
	if err := json.Unmarshal(raw, &courses); err != nil {
		slog.Error("failed to parse course catalog", slog.String("path", cfg.CourseDataPath), slog.Any("error", err))
		os.Exit(1)
	}
	if len(courses) == 0 {
		slog.Error("course catalog is empty", slog.String("path", cfg.CourseDataPath))
		os.Exit(1)
	}
	slog.Info("course catalog loaded", slog.Int("courses", len(courses)))

	ctx := context.Background()
	aicl := ai.New(cfg)
	qcli := qdrantcli.New(cfg.QdrantURL, cfg.QdrantAPIKey)

	if err := qcli.EnsureCollection(ctx, cfg.QdrantCollection, cfg.EmbeddingDim, "Cosine"); err != nil {
		slog.Error("qdrant ensure collection failed", slog.Any("error", err))
		os.Exit(1)
	}

	indexed := 0
	for start := 0; start < len(courses); start += batchSize {
		end := start + batchSize
		if end > len(courses) {
			end = len(courses)
		}
		batch := courses[start:end]

		docs := make([]string, len(batch))
		payloads := make([]map[string]any, len(batch))
		ids := make([]any, len(batch))
		for i, c := range batch {
			docs[i] = buildDocument(c)
			payloads[i] = payloadFor(c, docs[i])
			ids[i] = uuid.New().String()
		}

		vectors, err := aicl.Embed(ctx, docs)
		if err != nil {
			slog.Error("embedding batch failed", slog.Int("start", start), slog.Any("error", err))
			os.Exit(1)
		}
		if err := qcli.UpsertPoints(ctx, cfg.QdrantCollection, vectors, payloads, ids); err != nil {
			slog.Error("qdrant upsert failed", slog.Int("start", start), slog.Any("error", err))
			os.Exit(1)
		}
		indexed += len(batch)
		slog.Info("batch indexed", slog.Int("indexed", indexed), slog.Int("total", len(courses)))
	}

	slog.Info("course index built",
		slog.String("collection", cfg.QdrantCollection),
		slog.Int("courses", indexed))
}
