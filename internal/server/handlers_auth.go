package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claude/ironclub/internal/auth"
	"github.com/claude/ironclub/internal/models"
	"github.com/claude/ironclub/internal/storage"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type sessionResponse struct {
	Token  string        `json:"token"`
	Member models.Member `json:"member"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "valid email required")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrWeakPassword) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.internalError(w, "hashing password", err)
		return
	}

	if existing, err := s.db.GetMemberByEmail(r.Context(), req.Email); err == nil && existing != nil {
		writeError(w, http.StatusConflict, "email already registered")
		return
	} else if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.internalError(w, "checking email", err)
		return
	}

	m := models.Member{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         models.RoleMember,
		JoinedAt:     time.Now(),
		Active:       true,
	}
	if err := s.db.InsertMember(r.Context(), m); err != nil {
		s.internalError(w, "creating member", err)
		return
	}

	s.issueSession(w, m, http.StatusCreated)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	m, err := s.db.GetMemberByEmail(r.Context(), strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		s.internalError(w, "login lookup", err)
		return
	}
	if !m.Active {
		writeError(w, http.StatusForbidden, "account disabled")
		return
	}
	if !auth.CheckPassword(m.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	s.issueSession(w, *m, http.StatusOK)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *Server) issueSession(w http.ResponseWriter, m models.Member, status int) {
	now := time.Now()
	token, err := s.tokens.Issue(m.ID, m.Role, now)
	if err != nil {
		s.internalError(w, "issuing token", err)
		return
	}
	auth.SetCookie(w, token, now.Add(s.tokens.TTL()))
	writeJSON(w, status, sessionResponse{Token: token, Member: m})
}
