package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/ironclub/internal/models"
	"github.com/google/uuid"
)

// ClassReminder pairs an upcoming class with one booked member, ready
// for the reminder dispatcher.
type ClassReminder struct {
	ClassID     uuid.UUID
	ClassTitle  string
	StartsAt    time.Time
	Room        string
	MemberID    uuid.UUID
	MemberName  string
	MemberEmail string
}

// QueryClassReminders returns one row per live booking for classes
// starting within [from, to) whose members have not yet received a
// reminder notification for that class.
func (db *DB) QueryClassReminders(ctx context.Context, from, to time.Time) ([]ClassReminder, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT c.id, c.title, c.starts_at, c.room, m.id, m.name, m.email
		 FROM classes c
		 JOIN bookings b ON b.class_id = c.id AND b.status = 'booked'
		 JOIN members m ON m.id = b.member_id
		 WHERE c.starts_at >= $1 AND c.starts_at < $2
		   AND NOT EXISTS (
		     SELECT 1 FROM notifications n
		     WHERE n.member_id = m.id AND n.kind = $3 AND n.ref_id = c.id
		   )
		 ORDER BY c.starts_at ASC`,
		from, to, models.NotifyClassReminder)
	if err != nil {
		return nil, fmt.Errorf("querying class reminders: %w", err)
	}
	defer rows.Close()

	var result []ClassReminder
	for rows.Next() {
		var r ClassReminder
		if err := rows.Scan(&r.ClassID, &r.ClassTitle, &r.StartsAt, &r.Room,
			&r.MemberID, &r.MemberName, &r.MemberEmail); err != nil {
			return nil, fmt.Errorf("scanning class reminder: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
