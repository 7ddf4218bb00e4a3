package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(checks map[string]Pinger) *Server {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	return NewServer(Config{
		ServiceName: "f1-race-predictor",
		Version:     "test",
		Port:        "0",
		Logger:      logger,
		Checks:      checks,
	})
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(nil)

	rec := httptest.NewRecorder()
	srv.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "f1-race-predictor", resp.Service)
	assert.Equal(t, "test", resp.Version)
}

func TestHandleLiveAlwaysOK(t *testing.T) {
	srv := testServer(map[string]Pinger{
		"database": PingFunc(func(ctx context.Context) error {
			return errors.New("connection refused")
		}),
	})

	rec := httptest.NewRecorder()
	srv.handleLive(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleReadyBeforeSetReady(t *testing.T) {
	srv := testServer(nil)

	rec := httptest.NewRecorder()
	srv.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, "not_ready", resp.Checks["service"])
}

func TestHandleReadyAfterSetReady(t *testing.T) {
	srv := testServer(map[string]Pinger{
		"classifier": PingFunc(func(ctx context.Context) error { return nil }),
	})
	srv.SetReady(true)

	rec := httptest.NewRecorder()
	srv.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Checks["service"])
	assert.Equal(t, "ok", resp.Checks["classifier"])
	assert.NotEmpty(t, resp.Duration)
}

func TestHandleReadyFailingDependency(t *testing.T) {
	srv := testServer(map[string]Pinger{
		"database": PingFunc(func(ctx context.Context) error {
			return errors.New("connection refused")
		}),
	})
	srv.SetReady(true)

	rec := httptest.NewRecorder()
	srv.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Contains(t, resp.Checks["database"], "connection refused")
}

func TestIsReadyToggle(t *testing.T) {
	srv := testServer(nil)

	assert.False(t, srv.IsReady())
	srv.SetReady(true)
	assert.True(t, srv.IsReady())
	srv.SetReady(false)
	assert.False(t, srv.IsReady())
}
