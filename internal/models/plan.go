package models

import "github.com/google/uuid"

// BillingInterval is how often a plan renews.
type BillingInterval string

const (
	IntervalMonthly BillingInterval = "monthly"
	IntervalYearly  BillingInterval = "yearly"
)

// Valid reports whether i is a known interval.
func (i BillingInterval) Valid() bool {
	return i == IntervalMonthly || i == IntervalYearly
}

// MembershipPlan is a purchasable club membership tier.
type MembershipPlan struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	PriceCents    int64           `json:"priceCents"`
	Currency      string          `json:"currency"`
	Interval      BillingInterval `json:"interval"`
	StripePriceID string          `json:"-"`
	Active        bool            `json:"active"`
}
