package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/ironclub/internal/models"
)

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	list, err := s.db.ListNotifications(r.Context(), sessionFrom(r).UserID, limit)
	if err != nil {
		s.internalError(w, "listing notifications", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification ID")
		return
	}
	if err := s.db.MarkNotificationRead(r.Context(), id, sessionFrom(r).UserID, time.Now()); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// recordAndSend stores the in-app notification and emails a copy.
// Delivery problems are logged, never surfaced: the triggering action
// already succeeded.
func (s *Server) recordAndSend(ctx context.Context, email string, n models.Notification) {
	if err := s.db.InsertNotification(ctx, n); err != nil {
		s.log.Warn("recording notification failed", "member_id", n.MemberID, "kind", n.Kind, "error", err)
	}
	if err := s.notifier.Send(ctx, email, n.Subject, n.Body); err != nil {
		s.log.Warn("notification email failed", "member_id", n.MemberID, "kind", n.Kind, "error", err)
	}
}
