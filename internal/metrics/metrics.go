// Package metrics exposes the Prometheus metrics endpoint for the predictor.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/salsabil-cell/F1-race-predictor/internal/config"
)

// HTTP surface metrics. Domain packages register their own collectors via
// promauto; everything lands in the default registry and is served together.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "f1_predictor_http_requests_total",
		Help: "Total HTTP requests served, by path, method and status",
	}, []string{"path", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "f1_predictor_http_request_duration_seconds",
		Help:    "HTTP request latency by path",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})
)

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(path, method string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(path).Observe(duration.Seconds())
}

// Handler returns the Prometheus HTTP handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Server is the standalone metrics HTTP server.
type Server struct {
	server *http.Server
	logger *logrus.Logger
}

// NewServer creates a metrics server from configuration.
func NewServer(cfg config.MetricsConfig, logger *logrus.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, Handler())

	return &Server{
		server: &http.Server{
			Addr:         ":" + strconv.Itoa(cfg.Port),
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Start runs the metrics server in the background.
func (s *Server) Start() {
	go func() {
		s.logger.WithField("addr", s.server.Addr).Info("Metrics server starting")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Error("Metrics server failed")
		}
	}()
}

// Stop gracefully shuts the metrics server down.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
