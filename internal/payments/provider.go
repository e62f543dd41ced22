// Package payments abstracts the payment gateway used for membership
// billing. The server only sees checkout URLs and parsed webhook
// events; provider specifics stay behind the Provider interface.
package payments

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/claude/ironclub/internal/models"
)

var ErrNoCustomer = errors.New("no billing customer for member")

// EventKind classifies a webhook event the server cares about.
type EventKind string

const (
	EventCheckoutCompleted EventKind = "checkout-completed"
	EventPaymentFailed     EventKind = "payment-failed"
)

// Event is a gateway webhook reduced to the fields the server acts on.
type Event struct {
	Kind        EventKind
	SessionID   string
	MemberID    uuid.UUID
	PlanID      *uuid.UUID
	AmountCents int64
	Currency    string
	Metadata    map[string]string
}

// Provider is a payment gateway.
type Provider interface {
	Name() string

	// CheckoutURL creates a checkout session for a member subscribing
	// to a plan and returns the hosted payment page URL.
	CheckoutURL(member models.Member, plan models.MembershipPlan) (string, error)

	// PortalURL returns the gateway's self-service billing portal for
	// an existing customer, looked up by email. Returns ErrNoCustomer
	// if the member never checked out.
	PortalURL(customerEmail string) (string, error)

	// ParseWebhook verifies and decodes a webhook request body. It
	// returns (nil, nil) for event types the server does not act on.
	ParseWebhook(payload []byte, headers http.Header) (*Event, error)
}
