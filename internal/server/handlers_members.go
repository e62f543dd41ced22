package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/claude/ironclub/internal/models"
)

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	m, err := s.db.GetMember(r.Context(), sessionFrom(r).UserID)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type updateMeRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateMeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	m, err := s.db.GetMember(r.Context(), sessionFrom(r).UserID)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	m.Name = req.Name
	if err := s.db.UpdateMember(r.Context(), *m); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.db.ListMembers(r.Context())
	if err != nil {
		s.internalError(w, "listing members", err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (s *Server) handleGetMember(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid member ID")
		return
	}
	m, err := s.db.GetMember(r.Context(), id)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type updateMemberRequest struct {
	Name   string      `json:"name"`
	Role   models.Role `json:"role"`
	PlanID *string     `json:"planId"`
	Active bool        `json:"active"`
}

func (s *Server) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid member ID")
		return
	}

	var req updateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if !req.Role.Valid() {
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}

	m, err := s.db.GetMember(r.Context(), id)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	m.Name = req.Name
	m.Role = req.Role
	m.Active = req.Active
	m.PlanID = nil
	if req.PlanID != nil {
		planID, err := uuid.Parse(*req.PlanID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid plan ID")
			return
		}
		m.PlanID = &planID
	}

	if err := s.db.UpdateMember(r.Context(), *m); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid member ID")
		return
	}
	if err := s.db.DeleteMember(r.Context(), id); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
