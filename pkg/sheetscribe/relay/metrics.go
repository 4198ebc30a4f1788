package relay

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sheetscribe_relay_requests_total",
				Help: "Relay requests by response status",
			},
			[]string{"status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sheetscribe_relay_request_duration_seconds",
				Help:    "Time spent forwarding a prompt to the model",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
			},
			[]string{"status"},
		),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

func (m *metrics) observe(status int, started time.Time) {
	label := strconv.Itoa(status)
	m.requests.WithLabelValues(label).Inc()
	m.duration.WithLabelValues(label).Observe(time.Since(started).Seconds())
}
