// Package metrics defines Prometheus metrics for flowbricks.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds every collector the application updates.
type Metrics struct {
	RegionsAnalyzed   *prometheus.CounterVec
	MatchQueries      prometheus.Counter
	MatchResults      prometheus.Histogram
	PlansResolved     *prometheus.CounterVec
	PlanStages        prometheus.Histogram
	UnwiredInputs     prometheus.Counter
	CatalogUnits      prometheus.Gauge
	CatalogReloads    prometheus.Counter
	OperationDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RegionsAnalyzed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowbricks_regions_analyzed_total",
				Help: "Regions analyzed, by validity",
			},
			[]string{"valid"},
		),
		MatchQueries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "flowbricks_match_queries_total",
				Help: "Catalog match queries served",
			},
		),
		MatchResults: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "flowbricks_match_results",
				Help:    "Results returned per match query",
				Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
			},
		),
		PlansResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowbricks_plans_resolved_total",
				Help: "Plan resolutions, by outcome",
			},
			[]string{"outcome"},
		),
		PlanStages: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "flowbricks_plan_stages",
				Help:    "Stages per resolved plan",
				Buckets: prometheus.LinearBuckets(1, 1, 10),
			},
		),
		UnwiredInputs: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "flowbricks_unwired_inputs_total",
				Help: "Inputs left unwired in emitted plans",
			},
		),
		CatalogUnits: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "flowbricks_catalog_units",
				Help: "Units in the current catalog snapshot",
			},
		),
		CatalogReloads: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "flowbricks_catalog_reloads_total",
				Help: "Catalog index rebuilds",
			},
		),
		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flowbricks_operation_duration_seconds",
				Help:    "Duration of application operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.RegionsAnalyzed,
			m.MatchQueries,
			m.MatchResults,
			m.PlansResolved,
			m.PlanStages,
			m.UnwiredInputs,
			m.CatalogUnits,
			m.CatalogReloads,
			m.OperationDuration,
		)
	}
	return m
}

// ObserveCatalogReload records a rebuilt catalog snapshot of n units.
func (m *Metrics) ObserveCatalogReload(n int) {
	m.CatalogReloads.Inc()
	m.CatalogUnits.Set(float64(n))
}
