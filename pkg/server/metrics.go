package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/urlstat/urlstat/pkg/checker"
)

// metrics exposes the latest check run on a dedicated Prometheus
// registry so only urlstat series appear on /metrics.
type metrics struct {
	registry *prometheus.Registry

	up         *prometheus.GaugeVec
	statusCode *prometheus.GaugeVec
	lastRun    prometheus.Gauge
	duration   prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		up: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "urlstat_url_up",
			Help: "Whether the URL answered with any HTTP status (1=up, 0=down).",
		}, []string{"url"}),
		statusCode: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "urlstat_url_status_code",
			Help: "HTTP status code of the last probe; 0 on transport failure.",
		}, []string{"url"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "urlstat_last_run_timestamp_seconds",
			Help: "Unix timestamp of the last completed check run.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "urlstat_check_duration_seconds",
			Help: "Wall-clock duration of the last check run.",
		}),
	}

	m.registry.MustRegister(m.up, m.statusCode, m.lastRun, m.duration)
	return m
}

// record replaces the per-URL series with the given run's results.
// Reset first so URLs removed from the file drop off /metrics.
func (m *metrics) record(results checker.ResultSet, elapsed time.Duration, lastRun time.Time) {
	m.up.Reset()
	m.statusCode.Reset()

	for u, outcome := range results {
		code, err := strconv.Atoi(outcome)
		if err != nil {
			m.up.WithLabelValues(u).Set(0)
			m.statusCode.WithLabelValues(u).Set(0)
			continue
		}
		m.up.WithLabelValues(u).Set(1)
		m.statusCode.WithLabelValues(u).Set(float64(code))
	}

	m.lastRun.Set(float64(lastRun.Unix()))
	m.duration.Set(elapsed.Seconds())
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
