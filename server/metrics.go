package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type metrics struct {
	registry *prometheus.Registry
	rendered *prometheus.CounterVec
	duration *prometheus.HistogramVec
	bytes    *prometheus.CounterVec
}

func newMetrics(reg *prometheus.Registry) *metrics {
	m := &metrics{
		registry: reg,
		rendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calcpdf",
			Name:      "reports_rendered_total",
			Help:      "Number of report requests by kind and status.",
		}, []string{"kind", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "calcpdf",
			Name:      "report_render_duration_seconds",
			Help:      "Time spent rendering reports.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"kind"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calcpdf",
			Name:      "report_bytes_total",
			Help:      "Size of the rendered reports.",
		}, []string{"kind"}),
	}
	reg.MustRegister(
		m.rendered,
		m.duration,
		m.bytes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *metrics) observe(kind, status string, d time.Duration, size int) {
	m.rendered.WithLabelValues(kind, status).Inc()
	if status != "ok" {
		return
	}
	m.duration.WithLabelValues(kind).Observe(d.Seconds())
	m.bytes.WithLabelValues(kind).Add(float64(size))
}
