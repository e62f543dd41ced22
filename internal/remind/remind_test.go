package remind

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/claude/ironclub/internal/models"
	"github.com/claude/ironclub/internal/storage"
)

type fakeStore struct {
	reminders []storage.ClassReminder
	inserted  []models.Notification
}

func (f *fakeStore) QueryClassReminders(ctx context.Context, from, to time.Time) ([]storage.ClassReminder, error) {
	return f.reminders, nil
}

func (f *fakeStore) InsertNotification(ctx context.Context, n models.Notification) error {
	f.inserted = append(f.inserted, n)
	return nil
}

type fakeNotifier struct {
	sent    []string
	failFor string
}

func (f *fakeNotifier) Send(ctx context.Context, to, subject, body string) error {
	if to == f.failFor {
		return errors.New("bounce")
	}
	f.sent = append(f.sent, to)
	return nil
}

func TestSweepSendsAndRecords(t *testing.T) {
	classID := uuid.New()
	memberID := uuid.New()
	store := &fakeStore{reminders: []storage.ClassReminder{{
		ClassID:     classID,
		ClassTitle:  "Spinning",
		StartsAt:    time.Now().Add(time.Hour),
		Room:        "2",
		MemberID:    memberID,
		MemberName:  "Ana",
		MemberEmail: "ana@example.com",
	}}}
	notifier := &fakeNotifier{}

	NewScheduler(store, notifier, slog.Default()).Sweep(context.Background())

	if len(notifier.sent) != 1 || notifier.sent[0] != "ana@example.com" {
		t.Fatalf("sent = %v", notifier.sent)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d notifications, want 1", len(store.inserted))
	}
	n := store.inserted[0]
	if n.Kind != models.NotifyClassReminder {
		t.Errorf("kind = %s", n.Kind)
	}
	if n.RefID == nil || *n.RefID != classID {
		t.Errorf("ref = %v, want class id", n.RefID)
	}
	if n.MemberID != memberID {
		t.Errorf("member = %s", n.MemberID)
	}
}

func TestSweepSkipsFailedEmail(t *testing.T) {
	store := &fakeStore{reminders: []storage.ClassReminder{
		{ClassID: uuid.New(), MemberID: uuid.New(), MemberEmail: "bad@example.com", ClassTitle: "Yoga", StartsAt: time.Now()},
		{ClassID: uuid.New(), MemberID: uuid.New(), MemberEmail: "good@example.com", ClassTitle: "Yoga", StartsAt: time.Now()},
	}}
	notifier := &fakeNotifier{failFor: "bad@example.com"}

	NewScheduler(store, notifier, slog.Default()).Sweep(context.Background())

	if len(notifier.sent) != 1 || notifier.sent[0] != "good@example.com" {
		t.Fatalf("sent = %v", notifier.sent)
	}
	// No in-app record for the bounced email, so the next sweep retries it.
	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d notifications, want 1", len(store.inserted))
	}
}
