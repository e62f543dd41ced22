package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/claude/ironclub/internal/models"
	"github.com/claude/ironclub/internal/stats"
)

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	list, err := s.db.ListExercises(r.Context(), r.URL.Query().Get("muscleGroup"))
	if err != nil {
		s.internalError(w, "listing exercises", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type exerciseRequest struct {
	Name        string                  `json:"name"`
	Category    models.ExerciseCategory `json:"categoria"`
	MuscleGroup models.MuscleGroup      `json:"grupoMuscular"`
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var req exerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}
	if !req.Category.Valid() {
		writeError(w, http.StatusBadRequest, "invalid category")
		return
	}
	if !req.MuscleGroup.Valid() {
		writeError(w, http.StatusBadRequest, "invalid muscle group")
		return
	}

	e := models.Exercise{
		ID:          uuid.New(),
		Name:        req.Name,
		Category:    req.Category,
		MuscleGroup: req.MuscleGroup,
	}
	if err := s.db.InsertExercise(r.Context(), e); err != nil {
		s.internalError(w, "creating exercise", err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleExerciseStats(w http.ResponseWriter, r *http.Request) {
	exerciseID, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid exercise ID")
		return
	}

	sets, err := s.db.QueryExerciseSets(r.Context(), sessionFrom(r).UserID, exerciseID)
	if err != nil {
		s.internalError(w, "loading exercise sets", err)
		return
	}

	result, err := stats.ComputeExerciseStats(sets)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

const defaultChartSessions = 12

func (s *Server) handleExerciseChart(w http.ResponseWriter, r *http.Request) {
	exerciseID, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid exercise ID")
		return
	}

	limit := defaultChartSessions
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	sets, err := s.db.QueryExerciseSets(r.Context(), sessionFrom(r).UserID, exerciseID)
	if err != nil {
		s.internalError(w, "loading exercise sets", err)
		return
	}

	points := make([]stats.ChartPoint, 0, limit)
	for p := range stats.ChartSeries(sets, limit) {
		points = append(points, p)
	}
	writeJSON(w, http.StatusOK, points)
}
