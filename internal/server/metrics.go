package server

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// buckets for sub-second render times
var buckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1}

type Metrics struct {
	Rendered *prometheus.CounterVec
	Errors   prometheus.Counter
	Duration prometheus.Histogram
}

// NewMetrics creates the render metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Rendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ducktrend",
			Name:      "charts_rendered_total",
			Help:      "Charts rendered, by smoothing.",
		}, []string{"smooth"}),
		Errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ducktrend",
			Name:      "render_errors_total",
			Help:      "Render requests rejected or failed.",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ducktrend",
			Name:      "render_seconds",
			Help:      "Time taken to build and serialize a chart.",
			Buckets:   buckets,
		}),
	}
	reg.MustRegister(m.Rendered, m.Errors, m.Duration)
	return m
}

func (m *Metrics) observe(smooth bool, d time.Duration) {
	m.Rendered.WithLabelValues(strconv.FormatBool(smooth)).Inc()
	m.Duration.Observe(d.Seconds())
}
