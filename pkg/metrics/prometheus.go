package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	sectionServed   *prometheus.CounterVec
	sectionDuration *prometheus.HistogramVec
	upstreamErrors  *prometheus.CounterVec
	resolverLookups *prometheus.CounterVec
	rosterSize      prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		sectionServed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courtpulse_section_served_total",
				Help: "Section results served, by domain, origin and staleness",
			},
			[]string{"domain", "source", "stale"},
		),
		sectionDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "courtpulse_section_duration_seconds",
				Help:    "Duration of section get operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"domain"},
		),
		upstreamErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courtpulse_upstream_errors_total",
				Help: "Recovered upstream failures by kind (transport, parse, write)",
			},
			[]string{"kind"},
		),
		resolverLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courtpulse_resolver_lookups_total",
				Help: "Identity resolver lookups by outcome",
			},
			[]string{"result"},
		),
		rosterSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "courtpulse_roster_size",
				Help: "Players in the warm roster cache",
			},
		),
	}
}

func (r *Recorder) SectionServed(domain, source string, stale bool) {
	staleLabel := "false"
	if stale {
		staleLabel = "true"
	}
	r.sectionServed.WithLabelValues(domain, source, staleLabel).Inc()
}

func (r *Recorder) SectionDuration(domain string, d time.Duration) {
	r.sectionDuration.WithLabelValues(domain).Observe(d.Seconds())
}

func (r *Recorder) UpstreamError(kind string) {
	r.upstreamErrors.WithLabelValues(kind).Inc()
}

func (r *Recorder) ResolverLookup(result string) {
	r.resolverLookups.WithLabelValues(result).Inc()
}

func (r *Recorder) RosterSize(n int) {
	r.rosterSize.Set(float64(n))
}
