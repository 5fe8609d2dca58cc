package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/caesium-lab/evacenv/pkg/environment"
)

// metrics owns a private registry so several servers can coexist in one
// process.
type metrics struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	snapshots prometheus.Counter
}

func newMetrics(env *environment.Environment) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "evacenv",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status code.",
		}, []string{"route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "evacenv",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "evacenv",
			Name:      "snapshots_saved_total",
			Help:      "Environment snapshots written through the API.",
		}),
	}
	domains := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "evacenv",
		Name:      "domains",
		Help:      "Domains in the served environment.",
	}, func() float64 { return float64(len(env.DomainIDs())) })
	gateways := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "evacenv",
		Name:      "gateways",
		Help:      "Gateways in the served environment.",
	}, func() float64 { return float64(len(env.GatewayIDs())) })

	m.registry.MustRegister(m.requests, m.duration, m.snapshots, domains, gateways)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// handle registers h under pattern, counting and timing every request.
func (s *Server) handle(pattern string, h http.HandlerFunc) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)

		elapsed := time.Since(start)
		s.metrics.requests.WithLabelValues(pattern, strconv.Itoa(rec.status)).Inc()
		s.metrics.duration.WithLabelValues(pattern).Observe(elapsed.Seconds())
		log.WithFields(log.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"status":  rec.status,
			"elapsed": elapsed,
		}).Debug("request")
	})
}
