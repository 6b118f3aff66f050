package simulation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated by Flock.Step.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	ticks        prometheus.Counter
	stepDuration prometheus.Histogram
	wallClamps   prometheus.Counter
	boids        prometheus.Gauge
}

// NewMetrics creates the flock collectors and registers them on reg.
// Pass a fresh prometheus.NewRegistry() in tests to avoid duplicate
// registration on the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flock",
			Name:      "ticks_total",
			Help:      "Number of simulation steps executed.",
		}),
		stepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flock",
			Name:      "step_duration_seconds",
			Help:      "Wall time spent in one simulation step.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		wallClamps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flock",
			Name:      "wall_clamps_total",
			Help:      "Number of times a boid was put back inside the volume.",
		}),
		boids: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flock",
			Name:      "boids",
			Help:      "Number of boids in the flock.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.ticks, m.stepDuration, m.wallClamps, m.boids)
	}
	return m
}

func (m *Metrics) observeStep(d time.Duration, clamps, boids int) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	m.stepDuration.Observe(d.Seconds())
	m.wallClamps.Add(float64(clamps))
	m.boids.Set(float64(boids))
}

func (m *Metrics) setBoids(n int) {
	if m == nil {
		return
	}
	m.boids.Set(float64(n))
}
