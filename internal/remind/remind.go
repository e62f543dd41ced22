// Package remind runs the scheduled sweep that emails members about
// classes starting soon.
package remind

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron"

	"github.com/claude/ironclub/internal/models"
	"github.com/claude/ironclub/internal/notify"
	"github.com/claude/ironclub/internal/storage"
)

// Window is how far ahead of class start a reminder goes out.
const Window = 2 * time.Hour

// Store is the subset of storage the scheduler needs.
type Store interface {
	QueryClassReminders(ctx context.Context, from, to time.Time) ([]storage.ClassReminder, error)
	InsertNotification(ctx context.Context, n models.Notification) error
}

// Scheduler periodically emails reminders for upcoming classes. Each
// reminder is recorded as an in-app notification whose ref_id is the
// class, which is also what stops the sweep from sending twice.
type Scheduler struct {
	store    Store
	notifier notify.Notifier
	log      *slog.Logger
	cron     *cron.Cron
}

func NewScheduler(store Store, notifier notify.Notifier, log *slog.Logger) *Scheduler {
	return &Scheduler{store: store, notifier: notifier, log: log, cron: cron.New()}
}

// Start schedules the sweep and runs it until Stop.
func (s *Scheduler) Start() {
	s.cron.AddFunc("@every 15m", func() { s.Sweep(context.Background()) })
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Sweep sends reminders for classes starting within the window. Errors
// on individual reminders are logged and skipped so one bad address
// cannot block the rest.
func (s *Scheduler) Sweep(ctx context.Context) {
	now := time.Now()
	reminders, err := s.store.QueryClassReminders(ctx, now, now.Add(Window))
	if err != nil {
		s.log.Error("reminder sweep failed", "error", err)
		return
	}

	for _, r := range reminders {
		subject, body := notify.ClassReminder(r.ClassTitle, r.StartsAt, r.Room)

		if err := s.notifier.Send(ctx, r.MemberEmail, subject, body); err != nil {
			s.log.Warn("reminder email failed", "member_id", r.MemberID, "class_id", r.ClassID, "error", err)
			continue
		}

		classID := r.ClassID
		err := s.store.InsertNotification(ctx, models.Notification{
			ID:       uuid.New(),
			MemberID: r.MemberID,
			Kind:     models.NotifyClassReminder,
			RefID:    &classID,
			Subject:  subject,
			Body:     body,
			SentAt:   time.Now(),
		})
		if err != nil {
			s.log.Warn("recording reminder failed", "member_id", r.MemberID, "class_id", r.ClassID, "error", err)
		}
	}

	if len(reminders) > 0 {
		s.log.Info("reminder sweep done", "sent", len(reminders))
	}
}
