package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/course-advisor/internal/config"
	"github.com/fairyhunter13/course-advisor/internal/domain"
)

// maxProfileBytes caps the recommend request body. Profiles are small text
// forms; anything over 1 MiB is abuse.
const maxProfileBytes = 1 << 20

// Recommender is the pipeline entrypoint the HTTP layer depends on.
type Recommender interface {
	Recommend(ctx domain.Context, p domain.UserProfile) (domain.Recommendation, error)
}

// Server aggregates handlers dependencies.
type Server struct {
	Cfg         config.Config
	Pipeline    Recommender
	History     domain.RecommendationStore
	DBCheck     func(ctx context.Context) error
	QdrantCheck func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, pipeline Recommender, history domain.RecommendationStore, dbCheck, qdrantCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Pipeline: pipeline, History: history, DBCheck: dbCheck, QdrantCheck: qdrantCheck}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// RecommendHandler accepts a user profile and returns ranked, explained
// course recommendations. Validation failures inside the pipeline come back
// as a 200 with status "error" so the frontend can render the messages;
// HTTP-level errors are reserved for malformed requests and unreachable
// dependencies.
func (s *Server) RecommendHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Accept negotiation: only JSON responses supported
		if a := r.Header.Get("Accept"); a != "" && a != "*/*" && !strings.Contains(a, "application/json") {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusNotAcceptable)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": "INVALID_ARGUMENT", "message": "not acceptable", "details": map[string]any{"accept": a}}})
			return
		}
		if ct := r.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "application/json") {
			writeError(w, r, fmt.Errorf("%w: content-type must be application/json", domain.ErrInvalidArgument), nil)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxProfileBytes)

		var profile domain.UserProfile
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&profile); err != nil {
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		if err := getValidator().Struct(profile); err != nil {
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}

		rec, err := s.Pipeline.Recommend(r.Context(), profile)
		if err != nil {
			LoggerFrom(r).Error("recommendation pipeline failed", "error", err)
			writeError(w, r, fmt.Errorf("%w: recommendation pipeline", domain.ErrUnavailable), nil)
			return
		}
		writeJSON(w, http.StatusOK, toEnvelope(rec))
	}
}

// historyRunView is one persisted run in the history response.
type historyRunView struct {
	ID          string             `json:"id"`
	Profile     domain.UserProfile `json:"profile"`
	Status      string             `json:"status"`
	ResultCount int                `json:"result_count"`
	Warnings    []string           `json:"warnings"`
	Errors      []string           `json:"errors"`
	ElapsedMS   int64              `json:"elapsed_ms"`
	CreatedAt   time.Time          `json:"created_at"`
}

// HistoryHandler returns recent recommendation runs. 404 when the audit store
// is not configured.
func (s *Server) HistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.History == nil {
			writeError(w, r, fmt.Errorf("%w: history not enabled", domain.ErrNotFound), nil)
			return
		}
		limit := 20
		if raw := r.URL.Query().Get("limit"); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil || v < 1 {
				writeError(w, r, fmt.Errorf("%w: limit must be a positive integer", domain.ErrInvalidArgument), map[string]string{"limit": raw})
				return
			}
			if v > 100 {
				v = 100
			}
			limit = v
		}
		runs, err := s.History.Recent(r.Context(), limit)
		if err != nil {
			LoggerFrom(r).Error("history query failed", "error", err)
			writeError(w, r, fmt.Errorf("%w: history query", domain.ErrUnavailable), nil)
			return
		}
		views := make([]historyRunView, 0, len(runs))
		for _, run := range runs {
			views = append(views, historyRunView{
				ID:          run.ID,
				Profile:     run.Profile,
				Status:      run.Status,
				ResultCount: run.ResultCount,
				Warnings:    orEmptyList(run.Warnings),
				Errors:      orEmptyList(run.Errors),
				ElapsedMS:   run.Elapsed.Milliseconds(),
				CreatedAt:   run.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"runs": views})
	}
}

// ReadyzHandler reports readiness of the wired dependencies.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := map[string]func(context.Context) error{
			"qdrant": s.QdrantCheck,
			"db":     s.DBCheck,
		}
		status := map[string]string{}
		healthy := true
		for name, check := range checks {
			if check == nil {
				status[name] = "disabled"
				continue
			}
			if err := check(ctx); err != nil {
				status[name] = "down"
				healthy = false
				continue
			}
			status[name] = "up"
		}
		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, map[string]any{"ready": healthy, "checks": status})
	}
}

// HealthzHandler is a trivial liveness probe.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
