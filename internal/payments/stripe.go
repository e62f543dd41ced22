package payments

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	portalsession "github.com/stripe/stripe-go/v81/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/customer"
	"github.com/stripe/stripe-go/v81/webhook"

	"github.com/claude/ironclub/internal/models"
)

// StripeProvider implements Provider against the Stripe API.
type StripeProvider struct {
	webhookSecret string
	appURL        string
	log           *slog.Logger
}

func NewStripeProvider(secretKey, webhookSecret, appURL string, log *slog.Logger) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{webhookSecret: webhookSecret, appURL: appURL, log: log}
}

func (p *StripeProvider) Name() string { return "stripe" }

func (p *StripeProvider) CheckoutURL(member models.Member, plan models.MembershipPlan) (string, error) {
	if plan.StripePriceID == "" {
		return "", fmt.Errorf("plan %s has no price configured", plan.ID)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL: stripe.String(p.appURL + "/billing?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(p.appURL + "/billing"),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(plan.StripePriceID),
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(member.Email),
		Metadata: map[string]string{
			"member_id": member.ID.String(),
			"plan_id":   plan.ID.String(),
		},
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf("creating checkout session: %w", err)
	}

	p.log.Info("stripe checkout created", "member_id", member.ID, "plan_id", plan.ID, "session_id", sess.ID)
	return sess.URL, nil
}

func (p *StripeProvider) PortalURL(customerEmail string) (string, error) {
	list := customer.List(&stripe.CustomerListParams{
		Email: stripe.String(customerEmail),
	})
	if !list.Next() {
		if err := list.Err(); err != nil {
			return "", fmt.Errorf("looking up customer: %w", err)
		}
		return "", ErrNoCustomer
	}
	cust := list.Customer()

	sess, err := portalsession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(cust.ID),
		ReturnURL: stripe.String(p.appURL + "/billing"),
	})
	if err != nil {
		return "", fmt.Errorf("creating portal session: %w", err)
	}
	return sess.URL, nil
}

// ParseWebhook verifies the Stripe signature and maps the events the
// club acts on. Stripe API versions are backwards compatible, so the
// version mismatch check is relaxed.
func (p *StripeProvider) ParseWebhook(payload []byte, headers http.Header) (*Event, error) {
	event, err := webhook.ConstructEventWithOptions(
		payload,
		headers.Get("Stripe-Signature"),
		p.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		return nil, fmt.Errorf("verifying webhook signature: %w", err)
	}

	p.log.Info("stripe webhook received", "event_type", event.Type)

	switch event.Type {
	case "checkout.session.completed":
		return p.parseCheckoutCompleted(event.Data.Raw)
	case "invoice.payment_failed":
		return p.parsePaymentFailed(event.Data.Raw)
	default:
		return nil, nil
	}
}

func (p *StripeProvider) parseCheckoutCompleted(data json.RawMessage) (*Event, error) {
	var sess struct {
		ID          string            `json:"id"`
		AmountTotal int64             `json:"amount_total"`
		Currency    string            `json:"currency"`
		Metadata    map[string]string `json:"metadata"`
	}
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parsing checkout session: %w", err)
	}

	memberID, err := uuid.Parse(sess.Metadata["member_id"])
	if err != nil {
		p.log.Warn("stripe checkout session without member_id metadata, skipping", "session_id", sess.ID)
		return nil, nil
	}

	ev := &Event{
		Kind:        EventCheckoutCompleted,
		SessionID:   sess.ID,
		MemberID:    memberID,
		AmountCents: sess.AmountTotal,
		Currency:    sess.Currency,
		Metadata:    sess.Metadata,
	}
	if planID, err := uuid.Parse(sess.Metadata["plan_id"]); err == nil {
		ev.PlanID = &planID
	}
	return ev, nil
}

func (p *StripeProvider) parsePaymentFailed(data json.RawMessage) (*Event, error) {
	var invoice struct {
		ID           string `json:"id"`
		AmountDue    int64  `json:"amount_due"`
		Currency     string `json:"currency"`
		Subscription struct {
			Metadata map[string]string `json:"metadata"`
		} `json:"subscription_details"`
	}
	if err := json.Unmarshal(data, &invoice); err != nil {
		return nil, fmt.Errorf("parsing invoice: %w", err)
	}

	memberID, err := uuid.Parse(invoice.Subscription.Metadata["member_id"])
	if err != nil {
		// Invoice not tied to one of our checkout sessions.
		return nil, nil
	}

	return &Event{
		Kind:        EventPaymentFailed,
		SessionID:   invoice.ID,
		MemberID:    memberID,
		AmountCents: invoice.AmountDue,
		Currency:    invoice.Currency,
	}, nil
}
