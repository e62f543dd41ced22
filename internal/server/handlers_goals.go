package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/claude/ironclub/internal/goals"
	"github.com/claude/ironclub/internal/models"
	"github.com/claude/ironclub/internal/notify"
)

type goalRequest struct {
	Type              models.GoalType `json:"tipo"`
	TargetWeight      *float64        `json:"pesoObjetivo"`
	TargetBodyFat     *float64        `json:"grasaCorporalObjetivo"`
	TargetMuscleMass  *float64        `json:"masaMuscularObjetivo"`
	InitialWeight     *float64        `json:"pesoInicial"`
	InitialBodyFat    *float64        `json:"grasaCorporalInicial"`
	InitialMuscleMass *float64        `json:"masaMuscularInicial"`
	TargetDate        *time.Time      `json:"fechaObjetivo"`
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if !req.Type.Valid() {
		writeError(w, http.StatusBadRequest, "invalid goal type")
		return
	}

	g := models.UserGoal{
		ID:                uuid.New(),
		UserID:            sessionFrom(r).UserID,
		Type:              req.Type,
		TargetWeight:      req.TargetWeight,
		TargetBodyFat:     req.TargetBodyFat,
		TargetMuscleMass:  req.TargetMuscleMass,
		InitialWeight:     req.InitialWeight,
		InitialBodyFat:    req.InitialBodyFat,
		InitialMuscleMass: req.InitialMuscleMass,
		StartDate:         time.Now(),
		TargetDate:        req.TargetDate,
		Status:            models.GoalActive,
	}

	// Seed missing initial values from the latest measurement so the
	// first recalculation has a baseline.
	if g.InitialWeight == nil || g.InitialBodyFat == nil || g.InitialMuscleMass == nil {
		m, err := s.db.LatestMeasurement(r.Context(), g.UserID)
		if err != nil {
			s.internalError(w, "loading latest measurement", err)
			return
		}
		if m != nil {
			if g.InitialWeight == nil {
				g.InitialWeight = m.WeightKg
			}
			if g.InitialBodyFat == nil {
				g.InitialBodyFat = m.BodyFatPct
			}
			if g.InitialMuscleMass == nil {
				g.InitialMuscleMass = m.MuscleMassPct
			}
		}
	}

	if err := s.db.InsertGoal(r.Context(), g); err != nil {
		s.internalError(w, "creating goal", err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	list, err := s.db.ListGoals(r.Context(), sessionFrom(r).UserID)
	if err != nil {
		s.internalError(w, "listing goals", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleGoalTransition serves pause, resume, complete and abandon. The
// action is the last path segment.
func (s *Server) handleGoalTransition(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal ID")
		return
	}

	g, err := s.db.GetGoal(r.Context(), id, sessionFrom(r).UserID)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	switch path.Base(r.URL.Path) {
	case "pause":
		err = goals.Pause(g)
	case "resume":
		err = goals.Resume(g)
	case "complete":
		err = goals.Complete(g, time.Now())
	case "abandon":
		err = goals.Abandon(g)
	default:
		writeError(w, http.StatusNotFound, "unknown action")
		return
	}
	if err != nil {
		if errors.Is(err, goals.ErrInvalidTransition) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		s.internalError(w, "goal transition", err)
		return
	}

	if err := s.db.UpdateGoalProgress(r.Context(), *g); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// handleRecalculateGoals recomputes every active goal of the member
// against their newest measurement. Goals that reach 100% complete
// themselves and notify the member.
func (s *Server) handleRecalculateGoals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := sessionFrom(r).UserID

	active, err := s.db.ListActiveGoals(ctx, userID)
	if err != nil {
		s.internalError(w, "listing active goals", err)
		return
	}

	latest, err := s.db.LatestMeasurement(ctx, userID)
	if err != nil {
		s.internalError(w, "loading latest measurement", err)
		return
	}

	now := time.Now()
	updated := make([]models.UserGoal, 0, len(active))
	for i := range active {
		g := &active[i]
		if !goals.Recalculate(g, latest, now) {
			updated = append(updated, *g)
			continue
		}
		if err := s.db.UpdateGoalProgress(ctx, *g); err != nil {
			s.internalError(w, "saving goal progress", err)
			return
		}
		if g.Status == models.GoalCompleted {
			s.notifyGoalCompleted(ctx, *g)
		}
		updated = append(updated, *g)
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) notifyGoalCompleted(ctx context.Context, g models.UserGoal) {
	member, err := s.db.GetMember(ctx, g.UserID)
	if err != nil {
		s.log.Warn("goal completion lookup failed", "user_id", g.UserID, "error", err)
		return
	}
	subject, body := notify.GoalCompleted(g)
	goalID := g.ID
	s.recordAndSend(ctx, member.Email, models.Notification{
		ID:       uuid.New(),
		MemberID: member.ID,
		Kind:     models.NotifyGoalCompleted,
		RefID:    &goalID,
		Subject:  subject,
		Body:     body,
		SentAt:   time.Now(),
	})
}
