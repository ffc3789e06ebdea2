package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/course-advisor/internal/domain"
)

// PgxPool is a minimal subset of pgxpool used by the repos for easy testing.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// RunRepo persists recommendation runs using a minimal pgx pool.
type RunRepo struct{ Pool PgxPool }

// NewRunRepo constructs a RunRepo with the given pool.
func NewRunRepo(p PgxPool) *RunRepo { return &RunRepo{Pool: p} }

// EnsureSchema creates the recommendation_runs table when it does not exist.
func (r *RunRepo) EnsureSchema(ctx domain.Context) error {
	q := `CREATE TABLE IF NOT EXISTS recommendation_runs (
		id UUID PRIMARY KEY,
		profile JSONB NOT NULL,
		status TEXT NOT NULL,
		result_count INT NOT NULL,
		warnings JSONB NOT NULL DEFAULT '[]',
		errors JSONB NOT NULL DEFAULT '[]',
		elapsed_ms BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := r.Pool.Exec(ctx, q); err != nil {
		return fmt.Errorf("op=run.ensure_schema: %w", err)
	}
	return nil
}

// Save stores a run and returns its id (generates one if empty).
func (r *RunRepo) Save(ctx domain.Context, run domain.RecommendationRun) (string, error) {
	tracer := otel.Tracer("repo.runs")
	ctx, span := tracer.Start(ctx, "runs.Save")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "recommendation_runs"),
	)
	id := run.ID
	if id == "" {
		id = uuid.New().String()
	}
	profile, err := json.Marshal(run.Profile)
	if err != nil {
		return "", fmt.Errorf("op=run.save: %w", err)
	}
	warnings, err := json.Marshal(orEmpty(run.Warnings))
	if err != nil {
		return "", fmt.Errorf("op=run.save: %w", err)
	}
	errs, err := json.Marshal(orEmpty(run.Errors))
	if err != nil {
		return "", fmt.Errorf("op=run.save: %w", err)
	}
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	q := `INSERT INTO recommendation_runs (id, profile, status, result_count, warnings, errors, elapsed_ms, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err = r.Pool.Exec(ctx, q, id, profile, run.Status, run.ResultCount, warnings, errs, run.Elapsed.Milliseconds(), createdAt)
	if err != nil {
		return "", fmt.Errorf("op=run.save: %w", err)
	}
	return id, nil
}

// Recent loads the most recent runs, newest first.
func (r *RunRepo) Recent(ctx domain.Context, limit int) ([]domain.RecommendationRun, error) {
	tracer := otel.Tracer("repo.runs")
	ctx, span := tracer.Start(ctx, "runs.Recent")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "recommendation_runs"),
	)
	q := `SELECT id, profile, status, result_count, warnings, errors, elapsed_ms, created_at FROM recommendation_runs ORDER BY created_at DESC LIMIT $1`
	rows, err := r.Pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("op=run.recent: %w", err)
	}
	defer rows.Close()

	var runs []domain.RecommendationRun
	for rows.Next() {
		var (
			run       domain.RecommendationRun
			profile   []byte
			warnings  []byte
			errsJSON  []byte
			elapsedMS int64
		)
		if err := rows.Scan(&run.ID, &profile, &run.Status, &run.ResultCount, &warnings, &errsJSON, &elapsedMS, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("op=run.recent: %w", err)
		}
		if err := json.Unmarshal(profile, &run.Profile); err != nil {
			return nil, fmt.Errorf("op=run.recent: %w", err)
		}
		if err := json.Unmarshal(warnings, &run.Warnings); err != nil {
			return nil, fmt.Errorf("op=run.recent: %w", err)
		}
		if err := json.Unmarshal(errsJSON, &run.Errors); err != nil {
			return nil, fmt.Errorf("op=run.recent: %w", err)
		}
		run.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=run.recent: %w", err)
	}
	return runs, nil
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
