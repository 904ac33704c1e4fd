package observability

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shinji-kodama/cityreports/internal/model"
)

const namespace = "cityreports"

// Metrics holds the Prometheus collectors for one run.
type Metrics struct {
	registry *prometheus.Registry
	clock    clockwork.Clock
	start    time.Time

	CitiesLoaded      prometheus.Gauge
	LinesSkipped      prometheus.Counter
	ReportsWritten    *prometheus.CounterVec // labels: report
	ReportsSkipped    *prometheus.CounterVec // labels: report, reason
	MaxDegree         prometheus.Gauge
	UnreachableCities prometheus.Gauge
	RunDuration       prometheus.Gauge
}

// NewMetrics creates the run metrics on a fresh registry and starts the run
// timer. A nil clock uses the real clock.
func NewMetrics(clock clockwork.Clock) *Metrics {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		clock:    clock,
		start:    clock.Now(),
		CitiesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cities_loaded",
			Help:      "Number of city records loaded from the dataset.",
		}),
		LinesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_skipped_total",
			Help:      "Malformed dataset lines dropped under the skip policy.",
		}),
		ReportsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_written_total",
			Help:      "Report files written, by report.",
		}, []string{"report"}),
		ReportsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_skipped_total",
			Help:      "Reports not produced, by report and reason.",
		}, []string{"report", "reason"}),
		MaxDegree: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "separation",
			Name:      "max_degree",
			Help:      "Largest finite degree of separation from the base city.",
		}),
		UnreachableCities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "separation",
			Name:      "unreachable_cities",
			Help:      "Cities with no interstate path to the base city.",
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the run from start to Finish.",
		}),
	}

	m.registry.MustRegister(
		m.CitiesLoaded,
		m.LinesSkipped,
		m.ReportsWritten,
		m.ReportsSkipped,
		m.MaxDegree,
		m.UnreachableCities,
		m.RunDuration,
	)

	return m
}

// Registry exposes the underlying registry, e.g. for gathering in tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveDataset records the outcome of loading the dataset.
func (m *Metrics) ObserveDataset(cities, skipped int) {
	m.CitiesLoaded.Set(float64(cities))
	m.LinesSkipped.Add(float64(skipped))
}

// ObserveSeparation records the shape of a degrees computation.
func (m *Metrics) ObserveSeparation(maxDegree, unreachable int) {
	m.MaxDegree.Set(float64(maxDegree))
	m.UnreachableCities.Set(float64(unreachable))
}

// ReportWritten counts a written report file.
func (m *Metrics) ReportWritten(kind model.ReportKind) {
	m.ReportsWritten.WithLabelValues(kind.String()).Inc()
}

// ReportSkipped counts a report that was not produced.
func (m *Metrics) ReportSkipped(kind model.ReportKind, reason string) {
	m.ReportsSkipped.WithLabelValues(kind.String(), reason).Inc()
}

// Finish stops the run timer, records the duration, and returns it.
func (m *Metrics) Finish() time.Duration {
	elapsed := m.clock.Since(m.start)
	m.RunDuration.Set(elapsed.Seconds())
	return elapsed
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
