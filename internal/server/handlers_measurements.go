package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/claude/ironclub/internal/models"
)

type measurementRequest struct {
	TakenAt       *time.Time `json:"takenAt"`
	WeightKg      *float64   `json:"weight"`
	BodyFatPct    *float64   `json:"bodyFatPercentage"`
	MuscleMassPct *float64   `json:"muscleMassPercentage"`
}

func (s *Server) handleCreateMeasurement(w http.ResponseWriter, r *http.Request) {
	var req measurementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.WeightKg == nil && req.BodyFatPct == nil && req.MuscleMassPct == nil {
		writeError(w, http.StatusBadRequest, "at least one measurement value required")
		return
	}
	if req.WeightKg != nil && *req.WeightKg <= 0 {
		writeError(w, http.StatusBadRequest, "weight must be positive")
		return
	}
	for _, pct := range []*float64{req.BodyFatPct, req.MuscleMassPct} {
		if pct != nil && (*pct < 0 || *pct > 100) {
			writeError(w, http.StatusBadRequest, "percentages must be 0-100")
			return
		}
	}

	takenAt := time.Now()
	if req.TakenAt != nil {
		takenAt = *req.TakenAt
	}

	m := models.BodyMeasurement{
		ID:            uuid.New(),
		UserID:        sessionFrom(r).UserID,
		TakenAt:       takenAt,
		WeightKg:      req.WeightKg,
		BodyFatPct:    req.BodyFatPct,
		MuscleMassPct: req.MuscleMassPct,
	}
	if err := s.db.InsertMeasurement(r.Context(), m); err != nil {
		s.internalError(w, "creating measurement", err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleListMeasurements(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	list, err := s.db.ListMeasurements(r.Context(), sessionFrom(r).UserID, limit)
	if err != nil {
		s.internalError(w, "listing measurements", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
