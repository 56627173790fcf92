// Package metrics provides Prometheus metrics for the regatta scoring tools.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the Prometheus collectors of the scoring engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Scoring
	racesScored      prometheus.Counter
	finishesScored   prometheus.Counter
	penaltiesScored  prometheus.Counter
	rankingLatency   prometheus.Histogram
	rankingErrors    prometheus.Counter
	teamsTotal       prometheus.Gauge
	standingsTopTeam *prometheus.GaugeVec

	// Regatta change notifications
	regattaEvents *prometheus.CounterVec

	// Rotation validation
	rotationChecks   *prometheus.CounterVec
	rotationBadRaces *prometheus.GaugeVec

	// Membership store
	membersLoaded prometheus.Counter
	memberFiles   prometheus.Counter

	// Errors
	errorRateByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "regatta",
		subsystem:        "scoring",
		histogramBuckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100, 500},
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.racesScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "races_scored_total",
		Help:        "Total number of races scored",
		ConstLabels: labels,
	})

	m.finishesScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "finishes_scored_total",
		Help:        "Total number of finishes that received a score",
		ConstLabels: labels,
	})

	m.penaltiesScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "penalties_scored_total",
		Help:        "Total number of penalized finishes scored as fleet size plus one",
		ConstLabels: labels,
	})

	m.rankingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "ranking_latency_milliseconds",
		Help:        "Time spent ranking teams in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.rankingErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "ranking_errors_total",
		Help:        "Total number of ranking attempts that failed on missing data",
		ConstLabels: labels,
	})

	m.teamsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "teams",
		Help:        "Number of teams in the last ranked regatta",
		ConstLabels: labels,
	})

	m.standingsTopTeam = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "team_total_points",
			Help:        "Total points per team in the last standings",
			ConstLabels: labels,
		},
		[]string{"team"},
	)

	m.regattaEvents = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "regatta_events_total",
			Help:        "Regatta change notifications by type",
			ConstLabels: labels,
		},
		[]string{"type"},
	)

	m.rotationChecks = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "rotation_checks_total",
			Help:        "Rotation consistency checks by mode",
			ConstLabels: labels,
		},
		[]string{"mode"},
	)

	m.rotationBadRaces = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "rotation_bad_races",
			Help:        "Races reported inconsistent by the last rotation check",
			ConstLabels: labels,
		},
		[]string{"mode"},
	)

	m.membersLoaded = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "members_loaded_total",
		Help:        "Member records read from the membership store",
		ConstLabels: labels,
	})

	m.memberFiles = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "member_files_written_total",
		Help:        "Affiliation files written to the membership store",
		ConstLabels: labels,
	})

	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_component_total",
			Help:        "Total number of errors by component",
			ConstLabels: labels,
		},
		[]string{"component", "error_type"},
	)
}

// RecordRaceScored counts one scored race and its finishes.
func (m *Manager) RecordRaceScored(finishes, penalties int) {
	if !m.enabled {
		return
	}
	m.racesScored.Inc()
	m.finishesScored.Add(float64(finishes))
	m.penaltiesScored.Add(float64(penalties))
}

// RecordRanking records a ranking pass over teams.
func (m *Manager) RecordRanking(teams int, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.teamsTotal.Set(float64(teams))
	m.rankingLatency.Observe(latencyMs)
}

// RecordRankingError counts a ranking that failed.
func (m *Manager) RecordRankingError() {
	if !m.enabled {
		return
	}
	m.rankingErrors.Inc()
}

// UpdateTeamTotal publishes a team's total points.
func (m *Manager) UpdateTeamTotal(team string, total int) {
	if !m.enabled {
		return
	}
	m.standingsTopTeam.WithLabelValues(team).Set(float64(total))
}

// RecordRegattaEvent counts a change notification.
func (m *Manager) RecordRegattaEvent(eventType string) {
	if !m.enabled {
		return
	}
	m.regattaEvents.WithLabelValues(eventType).Inc()
}

// RecordRotationCheck records the outcome of a consistency check.
func (m *Manager) RecordRotationCheck(mode string, badRaces int) {
	if !m.enabled {
		return
	}
	m.rotationChecks.WithLabelValues(mode).Inc()
	m.rotationBadRaces.WithLabelValues(mode).Set(float64(badRaces))
}

// RecordMembersLoaded counts member records read from the store.
func (m *Manager) RecordMembersLoaded(n int) {
	if !m.enabled {
		return
	}
	m.membersLoaded.Add(float64(n))
}

// RecordMemberFileWritten counts one affiliation file written.
func (m *Manager) RecordMemberFileWritten() {
	if !m.enabled {
		return
	}
	m.memberFiles.Inc()
}

// RecordErrorByComponent records an error with component and type labels.
func (m *Manager) RecordErrorByComponent(component, errorType string) {
	if !m.enabled {
		return
	}
	m.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// Package-level recorders on the global manager.

// RecordRaceScored counts one scored race and its finishes.
func RecordRaceScored(finishes, penalties int) { globalManager.RecordRaceScored(finishes, penalties) }

// RecordRanking records a ranking pass over teams.
func RecordRanking(teams int, latencyMs float64) { globalManager.RecordRanking(teams, latencyMs) }

// RecordRankingError counts a ranking that failed.
func RecordRankingError() { globalManager.RecordRankingError() }

// UpdateTeamTotal publishes a team's total points.
func UpdateTeamTotal(team string, total int) { globalManager.UpdateTeamTotal(team, total) }

// RecordRegattaEvent counts a change notification.
func RecordRegattaEvent(eventType string) { globalManager.RecordRegattaEvent(eventType) }

// RecordRotationCheck records the outcome of a consistency check.
func RecordRotationCheck(mode string, badRaces int) {
	globalManager.RecordRotationCheck(mode, badRaces)
}

// RecordMembersLoaded counts member records read from the store.
func RecordMembersLoaded(n int) { globalManager.RecordMembersLoaded(n) }

// RecordMemberFileWritten counts one affiliation file written.
func RecordMemberFileWritten() { globalManager.RecordMemberFileWritten() }

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordErrorByComponent(component, errorType)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile exports the custom registry in the text exposition format,
// for pickup by a node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrObserveFailed, err)
	}
	return nil
}
