// Package api exposes the prediction endpoint over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/salsabil-cell/F1-race-predictor/internal/config"
	applogger "github.com/salsabil-cell/F1-race-predictor/internal/logger"
	"github.com/salsabil-cell/F1-race-predictor/internal/metrics"
	"github.com/salsabil-cell/F1-race-predictor/internal/models"
	"github.com/salsabil-cell/F1-race-predictor/internal/predictor"
)

// Server serves the prediction API. The backend field selects between the
// perturbation ranker and the model predictor per request.
type Server struct {
	cfg      config.ServerConfig
	ranker   *predictor.Ranker
	model    *predictor.ModelPredictor
	backend  string
	defaults models.FeatureWeights
	logger   *logrus.Logger
	predLog  *applogger.PredictionLogger
	server   *http.Server
}

// NewServer creates the API server. defaults is the base weight set that
// per-request weights overlay. model may be nil, in which case the
// perturbation backend serves every request regardless of the configured
// backend.
func NewServer(cfg config.ServerConfig, defaults models.FeatureWeights, ranker *predictor.Ranker, model *predictor.ModelPredictor, logger *logrus.Logger) *Server {
	backend := cfg.Backend
	switch {
	case model == nil:
		backend = config.BackendPerturbation
	case backend == config.BackendAuto:
		backend = config.BackendModel
	}

	s := &Server{
		cfg:      cfg,
		ranker:   ranker,
		model:    model,
		backend:  backend,
		defaults: defaults,
		logger:   logger,
		predLog:  applogger.NewPredictionLogger(logger),
	}

	mux := http.NewServeMux()
	mux.Handle("POST /api/predict", s.instrument("/api/predict", http.HandlerFunc(s.handlePredict)))

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins serving in the background. Serve errors other than a clean
// shutdown are logged.
func (s *Server) Start() {
	go func() {
		s.logger.WithFields(logrus.Fields{
			"addr":    s.server.Addr,
			"backend": s.backend,
		}).Info("API server starting")

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Error("API server error")
		}
	}()
}

// Stop gracefully shuts down the server, waiting for in-flight requests up
// to the configured shutdown timeout.
func (s *Server) Stop(ctx context.Context) error {
	timeout := time.Duration(s.cfg.ShutdownTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	return s.server.Shutdown(shutdownCtx)
}

// statusRecorder captures the response status for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) instrument(path string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		metrics.RecordHTTPRequest(path, r.Method, rec.status, duration)

		s.logger.WithFields(logrus.Fields{
			"path":     path,
			"method":   r.Method,
			"status":   rec.status,
			"duration": duration,
		}).Debug("Request served")
	})
}
