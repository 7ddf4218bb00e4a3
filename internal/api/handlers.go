package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/salsabil-cell/F1-race-predictor/internal/config"
	"github.com/salsabil-cell/F1-race-predictor/internal/models"
	"github.com/salsabil-cell/F1-race-predictor/internal/predictor"
)

// PredictRequest is the inbound prediction request. Track is accepted and
// echoed back but does not influence the ranking. Conditions are optional;
// absent fields fall back to a dry session at a typical track temperature.
type PredictRequest struct {
	Qualifying map[string]float64 `json:"qualifying"`
	Weights    map[string]float64 `json:"weights"`
	Track      string             `json:"track,omitempty"`
	Conditions *ConditionsRequest `json:"conditions,omitempty"`
}

// ConditionsRequest carries optional race-day conditions for the model
// backend.
type ConditionsRequest struct {
	Dry        *bool    `json:"dry,omitempty"`
	TrackTempC *float64 `json:"track_temp_c,omitempty"`
}

// PredictResponse is the outbound prediction payload.
type PredictResponse struct {
	Predictions   []models.PredictionRecord `json:"predictions"`
	Accuracy      int                       `json:"accuracy"`
	AvgConfidence int                       `json:"avgConfidence"`
	Volatility    float64                   `json:"volatility"`
	Backend       string                    `json:"backend"`
	Track         string                    `json:"track,omitempty"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

const defaultTrackTempC = 25.0

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entries := models.QualifyingFromMap(req.Qualifying)
	weights := s.defaults.Overlay(req.Weights)

	var summary models.OutcomeSummary
	if s.backend == config.BackendModel {
		summary = s.model.Predict(r.Context(), entries, weights, conditionsFromRequest(req.Conditions))
	} else {
		summary = s.ranker.Rank(entries, weights)
	}

	s.predLog.LogPredictionRequest(s.backend, len(summary.Predictions), summary.Accuracy, time.Since(start))

	writeJSON(w, http.StatusOK, PredictResponse{
		Predictions:   summary.Predictions,
		Accuracy:      summary.Accuracy,
		AvgConfidence: summary.AvgConfidence,
		Volatility:    summary.Volatility,
		Backend:       s.backend,
		Track:         req.Track,
	})
}

func conditionsFromRequest(req *ConditionsRequest) predictor.Conditions {
	cond := predictor.Conditions{Dry: true, TrackTempC: defaultTrackTempC}
	if req == nil {
		return cond
	}
	if req.Dry != nil {
		cond.Dry = *req.Dry
	}
	if req.TrackTempC != nil {
		cond.TrackTempC = *req.TrackTempC
	}
	return cond
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
