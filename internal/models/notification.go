package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind classifies what triggered a notification.
type NotificationKind string

const (
	NotifyBookingConfirmed NotificationKind = "booking-confirmed"
	NotifyClassReminder    NotificationKind = "class-reminder"
	NotifyGoalCompleted    NotificationKind = "goal-completed"
	NotifyPaymentReceived  NotificationKind = "payment-received"
	NotifyPaymentFailed    NotificationKind = "payment-failed"
)

// Notification is the in-app record of a message sent to a member. The
// email copy goes out separately; this row is what the inbox view lists.
// RefID points at the entity that triggered the notification (class,
// goal, payment) and doubles as the dedup key for scheduled reminders.
type Notification struct {
	ID       uuid.UUID        `json:"id"`
	MemberID uuid.UUID        `json:"memberId"`
	Kind     NotificationKind `json:"kind"`
	RefID    *uuid.UUID       `json:"refId,omitempty"`
	Subject  string           `json:"subject"`
	Body     string           `json:"body"`
	SentAt   time.Time        `json:"sentAt"`
	ReadAt   *time.Time       `json:"readAt,omitempty"`
}
