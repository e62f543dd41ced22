package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the processing state of a payment record.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Payment records one charge, usually created from a gateway webhook.
// Metadata holds gateway key/value pairs (session ids, plan ids) without
// committing the schema to any one provider's shape.
type Payment struct {
	ID                uuid.UUID         `json:"id"`
	MemberID          uuid.UUID         `json:"memberId"`
	PlanID            *uuid.UUID        `json:"planId,omitempty"`
	AmountCents       int64             `json:"amountCents"`
	Currency          string            `json:"currency"`
	Provider          string            `json:"provider"`
	ProviderSessionID string            `json:"-"`
	Status            PaymentStatus     `json:"status"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
}
