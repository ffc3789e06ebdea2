package app_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/course-advisor/internal/adapter/httpserver"
	"github.com/fairyhunter13/course-advisor/internal/app"
	"github.com/fairyhunter13/course-advisor/internal/config"
	"github.com/fairyhunter13/course-advisor/internal/domain"
)

type fakePipeline struct{}

func (fakePipeline) Recommend(_ domain.Context, _ domain.UserProfile) (domain.Recommendation, error) {
	return domain.Recommendation{Status: domain.StatusSuccess}, nil
}

func TestParseOrigins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty means any", in: "", want: []string{"*"}},
		{name: "wildcard passthrough", in: "*", want: []string{"*"}},
		{name: "single origin", in: "https://app.example.com", want: []string{"https://app.example.com"}},
		{name: "multiple trimmed", in: " https://a.com , https://b.com ", want: []string{"https://a.com", "https://b.com"}},
		{name: "only commas falls back", in: " , , ", want: []string{"*"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, app.ParseOrigins(tt.in))
		})
	}
}

func TestBuildRouter_Routes(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		AppEnv:           "test",
		CORSAllowOrigins: "*",
		RateLimitPerMin:  100,
		HTTPWriteTimeout: 5 * time.Second,
	}
	srv := httpserver.NewServer(cfg, fakePipeline{}, nil, nil, nil)
	router := app.BuildRouter(cfg, srv)

	t.Run("healthz", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
		assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	})

	t.Run("history disabled", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/v1/history", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("metrics exposed", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
