// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"dev"`
	Port   int    `env:"PORT" envDefault:"8080"`
	// DBURL is optional; when empty the recommendation run audit store and
	// the history endpoint are disabled.
	DBURL string `env:"DB_URL"`

	QdrantURL        string `env:"QDRANT_URL" envDefault:"http://localhost:6333"`
	QdrantAPIKey     string `env:"QDRANT_API_KEY"`
	QdrantCollection string `env:"QDRANT_COLLECTION" envDefault:"courses"`
	EmbeddingDim     int    `env:"EMBEDDING_DIM" envDefault:"1536"`

	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	EmbeddingsModel string `env:"EMBEDDINGS_MODEL" envDefault:"text-embedding-3-small"`

	OpenRouterAPIKey  string `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	GenerationModel   string `env:"GENERATION_MODEL" envDefault:"deepseek/deepseek-chat"`

	// CareerMapPath optionally overrides the built-in career-domain table
	// with a YAML file of {career, keywords} entries.
	CareerMapPath string `env:"CAREER_MAP_PATH"`
	// CourseDataPath is the course catalog consumed by cmd/indexer.
	CourseDataPath string `env:"COURSE_DATA_PATH" envDefault:"data/courses.json"`

	// Pipeline knobs.
	InitialK    int `env:"INITIAL_K" envDefault:"25"`
	FinalK      int `env:"FINAL_K" envDefault:"10"`
	ExplainTopN int `env:"EXPLAIN_TOP_N" envDefault:"5"`

	// Explanation-stage generation budget: per-attempt timeout, bounded
	// attempt count and a short delay between attempts.
	ExplainMaxTokens   int           `env:"EXPLAIN_MAX_TOKENS" envDefault:"160"`
	ExplainMaxAttempts int           `env:"EXPLAIN_MAX_ATTEMPTS" envDefault:"2"`
	ExplainTimeout     time.Duration `env:"EXPLAIN_TIMEOUT" envDefault:"30s"`
	ExplainRetryDelay  time.Duration `env:"EXPLAIN_RETRY_DELAY" envDefault:"250ms"`

	CORSAllowOrigins      string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitPerMin       int           `env:"RATE_LIMIT_PER_MIN" envDefault:"30"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"60s"`
	HTTPIdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`

	OTLPEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTELServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"course-advisor"`

	// AI Backoff Configuration (provider-level retries inside one attempt).
	AIBackoffMaxElapsedTime  time.Duration `env:"AI_BACKOFF_MAX_ELAPSED_TIME" envDefault:"20s"`
	AIBackoffInitialInterval time.Duration `env:"AI_BACKOFF_INITIAL_INTERVAL" envDefault:"500ms"`
	AIBackoffMaxInterval     time.Duration `env:"AI_BACKOFF_MAX_INTERVAL" envDefault:"5s"`
	AIBackoffMultiplier      float64       `env:"AI_BACKOFF_MULTIPLIER" envDefault:"1.5"`
}

// Load parses environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	return cfg, nil
}

// HistoryEnabled reports whether the run audit store should be wired.
func (c Config) HistoryEnabled() bool { return c.DBURL != "" }

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }

// IsTest reports whether the app is running in test mode.
func (c Config) IsTest() bool { return strings.ToLower(c.AppEnv) == "test" }

// GetAIBackoffConfig returns backoff configuration appropriate for the current
// environment. Test environments use much shorter timeouts.
func (c Config) GetAIBackoffConfig() (maxElapsedTime, initialInterval, maxInterval time.Duration, multiplier float64) {
	if c.IsTest() {
		return 2 * time.Second, 50 * time.Millisecond, 500 * time.Millisecond, 2.0
	}
	return c.AIBackoffMaxElapsedTime, c.AIBackoffInitialInterval, c.AIBackoffMaxInterval, c.AIBackoffMultiplier
}
