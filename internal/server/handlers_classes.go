package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/claude/ironclub/internal/models"
	"github.com/claude/ironclub/internal/notify"
)

func (s *Server) handleListClasses(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	classes, err := s.db.QueryClasses(r.Context(), start, end)
	if err != nil {
		s.internalError(w, "listing classes", err)
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

type classRequest struct {
	Title       string    `json:"title"`
	StartsAt    time.Time `json:"startsAt"`
	DurationMin int       `json:"durationMin"`
	Capacity    int       `json:"capacity"`
	Room        string    `json:"room"`
}

func (r classRequest) validate() string {
	if r.Title == "" {
		return "title required"
	}
	if r.StartsAt.IsZero() {
		return "startsAt required"
	}
	if r.DurationMin < 1 {
		return "duration must be at least 1 minute"
	}
	if r.Capacity < 1 {
		return "capacity must be at least 1"
	}
	return ""
}

func (s *Server) handleCreateClass(w http.ResponseWriter, r *http.Request) {
	var req classRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	c := models.ClassSession{
		ID:          uuid.New(),
		TrainerID:   sessionFrom(r).UserID,
		Title:       req.Title,
		StartsAt:    req.StartsAt,
		DurationMin: req.DurationMin,
		Capacity:    req.Capacity,
		Room:        req.Room,
	}
	if err := s.db.InsertClass(r.Context(), c); err != nil {
		s.internalError(w, "creating class", err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleUpdateClass(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid class ID")
		return
	}

	var req classRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	existing, err := s.db.GetClass(r.Context(), id)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	if !s.ownsClass(r, existing) {
		writeError(w, http.StatusForbidden, "not your class")
		return
	}

	existing.Title = req.Title
	existing.StartsAt = req.StartsAt
	existing.DurationMin = req.DurationMin
	existing.Capacity = req.Capacity
	existing.Room = req.Room
	if err := s.db.UpdateClass(r.Context(), *existing); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

func (s *Server) handleDeleteClass(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid class ID")
		return
	}

	existing, err := s.db.GetClass(r.Context(), id)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	if !s.ownsClass(r, existing) {
		writeError(w, http.StatusForbidden, "not your class")
		return
	}

	if err := s.db.DeleteClass(r.Context(), id); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ownsClass allows the owning trainer or any admin.
func (s *Server) ownsClass(r *http.Request, c *models.ClassSession) bool {
	sess := sessionFrom(r)
	return sess.Role == models.RoleAdmin || c.TrainerID == sess.UserID
}

func (s *Server) handleBookClass(w http.ResponseWriter, r *http.Request) {
	classID, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid class ID")
		return
	}
	sess := sessionFrom(r)

	booking, err := s.db.BookClass(r.Context(), classID, sess.UserID)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	class, err := s.db.GetClass(r.Context(), classID)
	if err == nil {
		if member, merr := s.db.GetMember(r.Context(), sess.UserID); merr == nil {
			subject, body := notify.BookingConfirmed(class.Title, class.StartsAt, class.Room)
			s.recordAndSend(r.Context(), member.Email, models.Notification{
				ID:       uuid.New(),
				MemberID: member.ID,
				Kind:     models.NotifyBookingConfirmed,
				RefID:    &classID,
				Subject:  subject,
				Body:     body,
				SentAt:   time.Now(),
			})
		}
	}

	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	classID, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid class ID")
		return
	}
	if err := s.db.CancelBooking(r.Context(), classID, sessionFrom(r).UserID); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	classID, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid class ID")
		return
	}
	bookings, err := s.db.QueryBookings(r.Context(), classID)
	if err != nil {
		s.internalError(w, "listing bookings", err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}
