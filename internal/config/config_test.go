package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/course-advisor/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "http://localhost:6333", cfg.QdrantURL)
	assert.Equal(t, "courses", cfg.QdrantCollection)
	assert.Equal(t, 1536, cfg.EmbeddingDim)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingsModel)
	assert.Equal(t, "deepseek/deepseek-chat", cfg.GenerationModel)
	assert.Equal(t, 25, cfg.InitialK)
	assert.Equal(t, 10, cfg.FinalK)
	assert.Equal(t, 5, cfg.ExplainTopN)
	assert.Equal(t, 30*time.Second, cfg.ExplainTimeout)
	assert.Equal(t, "course-advisor", cfg.OTELServiceName)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("INITIAL_K", "50")
	t.Setenv("EXPLAIN_TIMEOUT", "10s")
	t.Setenv("QDRANT_COLLECTION", "courses_v2")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 50, cfg.InitialK)
	assert.Equal(t, 10*time.Second, cfg.ExplainTimeout)
	assert.Equal(t, "courses_v2", cfg.QdrantCollection)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestHistoryEnabled(t *testing.T) {
	assert.False(t, config.Config{}.HistoryEnabled())
	assert.True(t, config.Config{DBURL: "postgres://localhost/advisor"}.HistoryEnabled())
}

func TestEnvPredicates(t *testing.T) {
	tests := []struct {
		env    string
		isDev  bool
		isProd bool
		isTest bool
	}{
		{env: "dev", isDev: true},
		{env: "DEV", isDev: true},
		{env: "prod", isProd: true},
		{env: "test", isTest: true},
		{env: "staging"},
	}
	for _, tt := range tests {
		cfg := config.Config{AppEnv: tt.env}
		assert.Equal(t, tt.isDev, cfg.IsDev(), tt.env)
		assert.Equal(t, tt.isProd, cfg.IsProd(), tt.env)
		assert.Equal(t, tt.isTest, cfg.IsTest(), tt.env)
	}
}

func TestGetAIBackoffConfig(t *testing.T) {
	t.Run("test env shortens backoff", func(t *testing.T) {
		cfg := config.Config{AppEnv: "test", AIBackoffMaxElapsedTime: time.Minute}
		maxElapsed, initial, maxInterval, multiplier := cfg.GetAIBackoffConfig()
		assert.Equal(t, 2*time.Second, maxElapsed)
		assert.Equal(t, 50*time.Millisecond, initial)
		assert.Equal(t, 500*time.Millisecond, maxInterval)
		assert.Equal(t, 2.0, multiplier)
	})

	t.Run("other envs use configured values", func(t *testing.T) {
		cfg := config.Config{
			AppEnv:                   "prod",
			AIBackoffMaxElapsedTime:  20 * time.Second,
			AIBackoffInitialInterval: 500 * time.Millisecond,
			AIBackoffMaxInterval:     5 * time.Second,
			AIBackoffMultiplier:      1.5,
		}
		maxElapsed, initial, maxInterval, multiplier := cfg.GetAIBackoffConfig()
		assert.Equal(t, 20*time.Second, maxElapsed)
		assert.Equal(t, 500*time.Millisecond, initial)
		assert.Equal(t, 5*time.Second, maxInterval)
		assert.Equal(t, 1.5, multiplier)
	})
}
