// Package observability provides context helpers and pipeline metrics used by
// the core layers without pulling in HTTP or provider concerns.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// PipelineStageCandidates tracks how many candidates survive each stage.
	PipelineStageCandidates = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_stage_candidates",
			Help:    "Candidate count after each recommendation pipeline stage",
			Buckets: prometheus.LinearBuckets(0, 5, 11),
		},
		[]string{"stage"},
	)
	// PipelineFallbacksTotal counts degradation-policy activations per stage.
	PipelineFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_fallbacks_total",
			Help: "Total number of pipeline degradation fallbacks by stage",
		},
		[]string{"stage"},
	)
	// RecommendationsTotal counts finished pipeline runs by envelope status.
	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation pipeline runs by status",
		},
		[]string{"status"},
	)
	// MatchScoreHistogram records the distribution of final composite scores.
	MatchScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_match_score",
			Help:    "Distribution of final composite match scores ([0,100])",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)

// InitPipelineMetrics registers pipeline metrics once per process.
func InitPipelineMetrics() {
	prometheus.MustRegister(PipelineStageCandidates)
	prometheus.MustRegister(PipelineFallbacksTotal)
	prometheus.MustRegister(RecommendationsTotal)
	prometheus.MustRegister(MatchScoreHistogram)
}
