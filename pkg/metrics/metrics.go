// Package metrics exposes Prometheus metrics describing scheduling runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arnavshah/staff-scheduler-api/pkg/scheduler"
)

// Recorder owns the scheduler metrics and the registry they live on
type Recorder struct {
	reg *prometheus.Registry

	runs              *prometheus.CounterVec
	duration          prometheus.Histogram
	demandHours       prometheus.Histogram
	totalCost         prometheus.Gauge
	understaffedHours prometheus.Gauge
	maxUnderstaffing  prometheus.Gauge
	fairness          prometheus.Gauge
	coverage          prometheus.Gauge
}

// NewRecorder registers all metrics on reg. A nil reg gets a fresh registry.
func NewRecorder(reg *prometheus.Registry) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Recorder{
		reg: reg,
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "runs_total",
			Help:      "Scheduling runs by outcome",
		}, []string{"outcome"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "scheduler",
			Name:      "run_duration_seconds",
			Help:      "Time spent computing a schedule",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		demandHours: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "scheduler",
			Name:      "demand_hours",
			Help:      "Length of the demand series per run",
			Buckets:   []float64{1, 8, 12, 24, 48, 96, 168, 336},
		}),
		totalCost: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "scheduler",
			Name:      "last_total_cost",
			Help:      "Total staff cost of the most recent schedule",
		}),
		understaffedHours: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "scheduler",
			Name:      "last_understaffed_hours",
			Help:      "Hours with unmet demand in the most recent schedule",
		}),
		maxUnderstaffing: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "scheduler",
			Name:      "last_max_understaffing",
			Help:      "Largest hourly staff shortfall in the most recent schedule",
		}),
		fairness: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "scheduler",
			Name:      "last_fairness_score",
			Help:      "Fairness score of the most recent schedule",
		}),
		coverage: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "scheduler",
			Name:      "last_avg_coverage_ratio",
			Help:      "Average coverage ratio of the most recent schedule",
		}),
	}
}

// RecordRun records a successful run
func (r *Recorder) RecordRun(res *scheduler.ScheduleResult, elapsed time.Duration) {
	if r == nil || res == nil {
		return
	}
	r.runs.WithLabelValues("ok").Inc()
	r.duration.Observe(elapsed.Seconds())
	r.demandHours.Observe(float64(len(res.PerHour)))
	r.totalCost.Set(res.KPIs.TotalCost)
	r.understaffedHours.Set(float64(res.KPIs.UnderstaffedHours))
	r.maxUnderstaffing.Set(float64(res.KPIs.MaxUnderstaffing))
	r.fairness.Set(res.KPIs.FairnessScore)
	r.coverage.Set(res.KPIs.AvgCoverageRatio)
}

// RecordFailure counts a rejected run under the given outcome label
func (r *Recorder) RecordFailure(outcome string) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
