// Package notify sends transactional email to members. Without an API
// key it degrades to logging each message, which keeps local
// development free of external calls.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/claude/ironclub/internal/models"
)

// Notifier delivers member-facing messages. The server also records
// each message as an in-app notification; this interface only covers
// the email copy.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// EmailNotifier sends mail through Resend.
type EmailNotifier struct {
	client *resend.Client
	from   string
	log    *slog.Logger
}

// NewEmailNotifier returns a notifier backed by Resend, or a
// log-only notifier when apiKey is empty.
func NewEmailNotifier(apiKey, from string, log *slog.Logger) *EmailNotifier {
	var client *resend.Client
	if apiKey != "" {
		client = resend.NewClient(apiKey)
	}
	return &EmailNotifier{client: client, from: from, log: log}
}

func (n *EmailNotifier) Send(ctx context.Context, to, subject, body string) error {
	if n.client == nil {
		n.log.Info("email sent (dev mode)", "to", to, "subject", subject)
		return nil
	}

	_, err := n.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	n.log.Info("email sent", "to", to, "subject", subject)
	return nil
}

// Message templates. Plain text on purpose; the club's emails are
// short confirmations, not marketing.

func BookingConfirmed(class string, startsAt time.Time, room string) (subject, body string) {
	subject = fmt.Sprintf("Booking confirmed: %s", class)
	body = fmt.Sprintf("Your spot in %s on %s (room %s) is confirmed. See you there!",
		class, startsAt.Format("Mon 2 Jan 15:04"), room)
	return subject, body
}

func ClassReminder(class string, startsAt time.Time, room string) (subject, body string) {
	subject = fmt.Sprintf("Reminder: %s today", class)
	body = fmt.Sprintf("%s starts at %s in room %s.",
		class, startsAt.Format("15:04"), room)
	return subject, body
}

func GoalCompleted(goal models.UserGoal) (subject, body string) {
	subject = "Goal completed!"
	body = fmt.Sprintf("Congratulations, you reached your goal %q.", goal.Type.Label())
	return subject, body
}

func PaymentReceived(amountCents int64, currency string) (subject, body string) {
	subject = "Payment received"
	body = fmt.Sprintf("We received your payment of %.2f %s. Thanks for training with us.",
		float64(amountCents)/100, currency)
	return subject, body
}

func PaymentFailed(amountCents int64, currency string) (subject, body string) {
	subject = "Payment failed"
	body = fmt.Sprintf("Your payment of %.2f %s could not be processed. Please update your payment method.",
		float64(amountCents)/100, currency)
	return subject, body
}
