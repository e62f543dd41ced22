package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/claude/ironclub/internal/models"
	"github.com/claude/ironclub/internal/stats"
)

type workoutSetRequest struct {
	ExerciseID string  `json:"exerciseId"`
	SetNumber  int     `json:"setNumber"`
	WeightKg   float64 `json:"weight"`
	Reps       int     `json:"reps"`
	RIR        *int    `json:"rir"`
}

type workoutRequest struct {
	Date        time.Time           `json:"date"`
	Title       *string             `json:"title"`
	DurationMin *int                `json:"duracionMinutos"`
	Sets        []workoutSetRequest `json:"sets"`
}

// handleCreateWorkout stores a training session. Each set's PR flag is
// decided here, once, against the member's history at this moment;
// earlier sets of the same request count as history for later ones.
func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	var req workoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Date.IsZero() {
		writeError(w, http.StatusBadRequest, "date required")
		return
	}

	userID := sessionFrom(r).UserID
	log := models.WorkoutLog{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        req.Date,
		Title:       req.Title,
		DurationMin: req.DurationMin,
	}

	histories := make(map[uuid.UUID][]models.ExerciseSet)
	for _, rs := range req.Sets {
		exerciseID, err := uuid.Parse(rs.ExerciseID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid exercise ID in set")
			return
		}

		set := models.ExerciseSet{
			ID:         uuid.New(),
			WorkoutID:  log.ID,
			ExerciseID: exerciseID,
			SetNumber:  rs.SetNumber,
			WeightKg:   rs.WeightKg,
			Reps:       rs.Reps,
			RIR:        rs.RIR,
			Date:       req.Date,
		}
		if err := set.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		history, ok := histories[exerciseID]
		if !ok {
			history, err = s.db.QueryExerciseSets(r.Context(), userID, exerciseID)
			if err != nil {
				s.internalError(w, "loading exercise history", err)
				return
			}
		}
		set.IsPR = stats.DetectPR(set, history)
		histories[exerciseID] = append(history, set)
		log.Sets = append(log.Sets, set)
	}

	if err := s.db.InsertWorkoutLog(r.Context(), log); err != nil {
		s.internalError(w, "creating workout", err)
		return
	}
	writeJSON(w, http.StatusCreated, log)
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	logs, err := s.db.QueryWorkoutLogs(r.Context(), sessionFrom(r).UserID, start, end)
	if err != nil {
		s.internalError(w, "listing workouts", err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid workout ID")
		return
	}
	log, err := s.db.GetWorkoutLog(r.Context(), id, sessionFrom(r).UserID)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid workout ID")
		return
	}
	if err := s.db.DeleteWorkoutLog(r.Context(), id, sessionFrom(r).UserID); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleUserWorkoutStats aggregates the member's full history; the
// range defaults are deliberately not applied here.
func (s *Server) handleUserWorkoutStats(w http.ResponseWriter, r *http.Request) {
	logs, err := s.db.QueryWorkoutLogs(r.Context(), sessionFrom(r).UserID,
		time.Time{}.AddDate(1, 0, 0), time.Now().AddDate(0, 0, 1))
	if err != nil {
		s.internalError(w, "loading workouts", err)
		return
	}

	result, err := stats.ComputeUserWorkoutStats(logs)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
