package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/claude/ironclub/internal/models"
)

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	// Public catalog only lists active plans; admins can ask for all.
	activeOnly := r.URL.Query().Get("all") != "true"
	plans, err := s.db.ListPlans(r.Context(), activeOnly)
	if err != nil {
		s.internalError(w, "listing plans", err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

type planRequest struct {
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	PriceCents    int64                  `json:"priceCents"`
	Currency      string                 `json:"currency"`
	Interval      models.BillingInterval `json:"interval"`
	StripePriceID string                 `json:"stripePriceId"`
	Active        bool                   `json:"active"`
}

func (r planRequest) validate() string {
	if r.Name == "" {
		return "name required"
	}
	if r.PriceCents < 0 {
		return "price must not be negative"
	}
	if !r.Interval.Valid() {
		return "interval must be monthly or yearly"
	}
	return ""
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	p := models.MembershipPlan{
		ID:            uuid.New(),
		Name:          req.Name,
		Description:   req.Description,
		PriceCents:    req.PriceCents,
		Currency:      req.Currency,
		Interval:      req.Interval,
		StripePriceID: req.StripePriceID,
		Active:        req.Active,
	}
	if err := s.db.InsertPlan(r.Context(), p); err != nil {
		s.internalError(w, "creating plan", err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan ID")
		return
	}

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	p := models.MembershipPlan{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		PriceCents:    req.PriceCents,
		Currency:      req.Currency,
		Interval:      req.Interval,
		StripePriceID: req.StripePriceID,
		Active:        req.Active,
	}
	if err := s.db.UpdatePlan(r.Context(), p); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan ID")
		return
	}
	if err := s.db.DeletePlan(r.Context(), id); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
