package payments

import (
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
)

func testProvider() *StripeProvider {
	return NewStripeProvider("sk_test", "whsec_test", "http://localhost:4433", slog.Default())
}

func TestParseCheckoutCompleted(t *testing.T) {
	memberID := uuid.New()
	planID := uuid.New()
	raw, _ := json.Marshal(map[string]any{
		"id":           "cs_test_123",
		"amount_total": 2999,
		"currency":     "eur",
		"metadata": map[string]string{
			"member_id": memberID.String(),
			"plan_id":   planID.String(),
		},
	})

	ev, err := testProvider().parseCheckoutCompleted(raw)
	if err != nil {
		t.Fatalf("parseCheckoutCompleted: %v", err)
	}
	if ev == nil {
		t.Fatal("got nil event")
	}
	if ev.Kind != EventCheckoutCompleted {
		t.Errorf("Kind = %s, want checkout-completed", ev.Kind)
	}
	if ev.MemberID != memberID {
		t.Errorf("MemberID = %s, want %s", ev.MemberID, memberID)
	}
	if ev.PlanID == nil || *ev.PlanID != planID {
		t.Errorf("PlanID = %v, want %s", ev.PlanID, planID)
	}
	if ev.AmountCents != 2999 || ev.Currency != "eur" {
		t.Errorf("amount/currency = %d/%s, want 2999/eur", ev.AmountCents, ev.Currency)
	}
	if ev.SessionID != "cs_test_123" {
		t.Errorf("SessionID = %s", ev.SessionID)
	}
}

func TestParseCheckoutCompletedForeignSession(t *testing.T) {
	// Sessions created outside the app carry no member_id and are
	// ignored rather than rejected.
	raw, _ := json.Marshal(map[string]any{
		"id":           "cs_test_foreign",
		"amount_total": 500,
		"currency":     "eur",
	})

	ev, err := testProvider().parseCheckoutCompleted(raw)
	if err != nil {
		t.Fatalf("parseCheckoutCompleted: %v", err)
	}
	if ev != nil {
		t.Errorf("got event %+v, want nil", ev)
	}
}

func TestParsePaymentFailed(t *testing.T) {
	memberID := uuid.New()
	raw, _ := json.Marshal(map[string]any{
		"id":         "in_test_123",
		"amount_due": 2999,
		"currency":   "eur",
		"subscription_details": map[string]any{
			"metadata": map[string]string{"member_id": memberID.String()},
		},
	})

	ev, err := testProvider().parsePaymentFailed(raw)
	if err != nil {
		t.Fatalf("parsePaymentFailed: %v", err)
	}
	if ev == nil {
		t.Fatal("got nil event")
	}
	if ev.Kind != EventPaymentFailed || ev.MemberID != memberID {
		t.Errorf("event = %+v", ev)
	}
}

func TestParseWebhookBadSignature(t *testing.T) {
	_, err := testProvider().ParseWebhook([]byte(`{}`), nil)
	if err == nil {
		t.Fatal("ParseWebhook accepted an unsigned payload")
	}
}
