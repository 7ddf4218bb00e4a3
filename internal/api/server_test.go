package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salsabil-cell/F1-race-predictor/internal/config"
	"github.com/salsabil-cell/F1-race-predictor/internal/models"
	"github.com/salsabil-cell/F1-race-predictor/internal/predictor"
)

func testAPIServer(t *testing.T, model *predictor.ModelPredictor) *httptest.Server {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	return testAPIServerWith(t, models.DefaultWeights(), model, logger)
}

func testAPIServerWith(t *testing.T, defaults models.FeatureWeights, model *predictor.ModelPredictor, logger *logrus.Logger) *httptest.Server {
	t.Helper()

	cfg := config.ServerConfig{
		Host:                   "127.0.0.1",
		Port:                   0,
		Backend:                config.BackendAuto,
		ReadTimeoutSeconds:     5,
		WriteTimeoutSeconds:    5,
		ShutdownTimeoutSeconds: 5,
	}

	ranker := predictor.NewRanker(models.DefaultGrid(), logger)
	srv := NewServer(cfg, defaults, ranker, model, logger)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postPredict(t *testing.T, ts *httptest.Server, body string) (*http.Response, PredictResponse) {
	t.Helper()

	resp, err := http.Post(ts.URL+"/api/predict", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var out PredictResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestPredictResponseShape(t *testing.T) {
	ts := testAPIServer(t, nil)

	resp, out := postPredict(t, ts, `{
		"qualifying": {"VER": 78.0, "HAM": 78.3, "LEC": 78.6},
		"weights": {"quali": 0.7, "pace": 0.6, "tire": 0.45, "weather": 0.3, "strategy": 0.5},
		"track": "Monaco"
	}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, out.Predictions, 3)

	positions := map[int]bool{}
	for _, p := range out.Predictions {
		positions[p.Position] = true
		assert.GreaterOrEqual(t, p.Confidence, 0.4)
		assert.LessOrEqual(t, p.Confidence, 0.95)
		assert.Equal(t, p.Position-p.Qualifying, p.Change)
	}
	assert.Len(t, positions, 3)

	// Ascending by predicted position.
	for i := 1; i < len(out.Predictions); i++ {
		assert.Equal(t, i+1, out.Predictions[i].Position)
	}

	assert.Equal(t, 68+7, out.Accuracy)
	assert.InDelta(t, 2.1, out.Volatility, 1e-9)
	assert.Equal(t, "Monaco", out.Track)
	assert.Equal(t, config.BackendPerturbation, out.Backend)
}

func TestPredictEmptyQualifying(t *testing.T) {
	ts := testAPIServer(t, nil)

	resp, out := postPredict(t, ts, `{"qualifying": {}, "weights": {}}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, out.Predictions)
	assert.Equal(t, 0, out.AvgConfidence)
}

func TestPredictUnknownCodesDropped(t *testing.T) {
	ts := testAPIServer(t, nil)

	resp, out := postPredict(t, ts, `{
		"qualifying": {"VER": 78.0, "ZZZ": 77.5},
		"weights": {}
	}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, out.Predictions, 1)
	assert.Equal(t, "VER", out.Predictions[0].Code)
	assert.Equal(t, 1, out.Predictions[0].Qualifying)
}

func TestPredictConfiguredDefaultWeights(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	defaults := models.WeightsFromMap(map[string]float64{"quali": 0.2})
	ts := testAPIServerWith(t, defaults, nil, logger)

	// Request omits weights: the configured default drives the aggregates.
	_, out := postPredict(t, ts, `{"qualifying": {"VER": 78.0, "HAM": 78.3}}`)
	assert.Equal(t, 68+2, out.Accuracy)
	assert.InDelta(t, 3.1, out.Volatility, 1e-9)

	// Request weights still override the configured default.
	_, out = postPredict(t, ts, `{"qualifying": {"VER": 78.0}, "weights": {"quali": 0.9}}`)
	assert.Equal(t, 68+9, out.Accuracy)
}

func TestPredictRequestLogged(t *testing.T) {
	logger := logrus.New()
	buf := &bytes.Buffer{}
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	ts := testAPIServerWith(t, models.DefaultWeights(), nil, logger)

	resp, _ := postPredict(t, ts, `{"qualifying": {"VER": 78.0}, "weights": {}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Contains(t, buf.String(), "Prediction request completed")
	assert.Contains(t, buf.String(), `"component":"prediction"`)
	assert.Contains(t, buf.String(), `"backend":"perturbation"`)
}

func TestPredictMalformedBody(t *testing.T) {
	ts := testAPIServer(t, nil)

	resp, _ := postPredict(t, ts, `{"qualifying": `)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPredictMethodNotAllowed(t *testing.T) {
	ts := testAPIServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/predict")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestPredictModelBackendFallback(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	// No classifier wired: every entrant takes the heuristic fallback path.
	model := predictor.NewModelPredictor(models.DefaultGrid(), predictor.DefaultRatings(), predictor.NoModel{}, logger)
	ts := testAPIServer(t, model)

	resp, out := postPredict(t, ts, `{
		"qualifying": {"VER": 78.0, "HAM": 78.3},
		"weights": {"quali": 1.0},
		"conditions": {"dry": false, "track_temp_c": 18.5}
	}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.BackendModel, out.Backend)
	require.Len(t, out.Predictions, 2)
	for _, p := range out.Predictions {
		assert.GreaterOrEqual(t, p.Confidence, 0.4)
		assert.LessOrEqual(t, p.Confidence, 0.9)
	}
}
