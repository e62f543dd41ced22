package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/claude/ironclub/internal/models"
	"github.com/claude/ironclub/internal/notify"
	"github.com/claude/ironclub/internal/payments"
)

const maxWebhookBody = 1 << 20

type checkoutRequest struct {
	PlanID string `json:"planId"`
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan ID")
		return
	}

	member, err := s.db.GetMember(r.Context(), sessionFrom(r).UserID)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	plan, err := s.db.GetPlan(r.Context(), planID)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	if !plan.Active {
		writeError(w, http.StatusConflict, "plan is no longer offered")
		return
	}

	url, err := s.payments.CheckoutURL(*member, *plan)
	if err != nil {
		s.internalError(w, "creating checkout", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (s *Server) handleBillingPortal(w http.ResponseWriter, r *http.Request) {
	member, err := s.db.GetMember(r.Context(), sessionFrom(r).UserID)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	url, err := s.payments.PortalURL(member.Email)
	if err != nil {
		if errors.Is(err, payments.ErrNoCustomer) {
			writeError(w, http.StatusNotFound, "no billing history")
			return
		}
		s.internalError(w, "creating portal session", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	list, err := s.db.ListPayments(r.Context(), sessionFrom(r).UserID)
	if err != nil {
		s.internalError(w, "listing payments", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleBillingWebhook receives signed gateway events. It must answer
// 2xx quickly or the gateway keeps retrying; re-deliveries are absorbed
// by the payment dedup on (provider, session id).
func (s *Server) handleBillingWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading body: "+err.Error())
		return
	}

	ev, err := s.payments.ParseWebhook(payload, r.Header)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if ev == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	switch ev.Kind {
	case payments.EventCheckoutCompleted:
		err = s.applyCheckoutCompleted(r, ev)
	case payments.EventPaymentFailed:
		err = s.applyPaymentFailed(r, ev)
	}
	if err != nil {
		s.internalError(w, "applying webhook", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) applyCheckoutCompleted(r *http.Request, ev *payments.Event) error {
	ctx := r.Context()
	p := models.Payment{
		ID:                uuid.New(),
		MemberID:          ev.MemberID,
		PlanID:            ev.PlanID,
		AmountCents:       ev.AmountCents,
		Currency:          ev.Currency,
		Provider:          s.payments.Name(),
		ProviderSessionID: ev.SessionID,
		Status:            models.PaymentPaid,
		Metadata:          ev.Metadata,
		CreatedAt:         time.Now(),
	}
	inserted, err := s.db.InsertPayment(ctx, p)
	if err != nil {
		return err
	}
	if !inserted {
		// Webhook re-delivery, already handled.
		return nil
	}

	member, err := s.db.GetMember(ctx, ev.MemberID)
	if err != nil {
		return err
	}
	if ev.PlanID != nil {
		member.PlanID = ev.PlanID
		if err := s.db.UpdateMember(ctx, *member); err != nil {
			return err
		}
	}

	subject, body := notify.PaymentReceived(ev.AmountCents, ev.Currency)
	s.recordAndSend(ctx, member.Email, models.Notification{
		ID:       uuid.New(),
		MemberID: member.ID,
		Kind:     models.NotifyPaymentReceived,
		RefID:    &p.ID,
		Subject:  subject,
		Body:     body,
		SentAt:   time.Now(),
	})
	return nil
}

func (s *Server) applyPaymentFailed(r *http.Request, ev *payments.Event) error {
	ctx := r.Context()
	p := models.Payment{
		ID:                uuid.New(),
		MemberID:          ev.MemberID,
		AmountCents:       ev.AmountCents,
		Currency:          ev.Currency,
		Provider:          s.payments.Name(),
		ProviderSessionID: ev.SessionID,
		Status:            models.PaymentFailed,
		CreatedAt:         time.Now(),
	}
	inserted, err := s.db.InsertPayment(ctx, p)
	if err != nil || !inserted {
		return err
	}

	member, err := s.db.GetMember(ctx, ev.MemberID)
	if err != nil {
		return err
	}

	subject, body := notify.PaymentFailed(ev.AmountCents, ev.Currency)
	s.recordAndSend(ctx, member.Email, models.Notification{
		ID:       uuid.New(),
		MemberID: member.ID,
		Kind:     models.NotifyPaymentFailed,
		RefID:    &p.ID,
		Subject:  subject,
		Body:     body,
		SentAt:   time.Now(),
	})
	return nil
}
