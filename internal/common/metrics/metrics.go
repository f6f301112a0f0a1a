// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	// Matching metrics. Direction is "teams_for_opportunity" or
	// "opportunities_for_team".
	MatchesScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_pairs_scored_total",
			Help: "Total number of team/opportunity pairs scored",
		},
		[]string{"direction"},
	)

	MatchScoreTotals = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matching_score_total",
			Help:    "Distribution of total compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"direction"},
	)

	MatchRecommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_recommendations_total",
			Help: "Matches produced per recommendation tier",
		},
		[]string{"direction", "tier"},
	)
)
