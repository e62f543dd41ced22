package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/ironclub/internal/models"
	"github.com/google/uuid"
)

// InsertNotification records an in-app notification.
func (db *DB) InsertNotification(ctx context.Context, n models.Notification) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO notifications (id, member_id, kind, ref_id, subject, body, sent_at, read_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		n.ID, n.MemberID, n.Kind, n.RefID, n.Subject, n.Body, n.SentAt, n.ReadAt)
	if err != nil {
		return fmt.Errorf("inserting notification: %w", err)
	}
	return nil
}

// ListNotifications returns a member's notifications, newest first.
func (db *DB) ListNotifications(ctx context.Context, memberID uuid.UUID, limit int) ([]models.Notification, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, member_id, kind, ref_id, subject, body, sent_at, read_at
		 FROM notifications
		 WHERE member_id = $1
		 ORDER BY sent_at DESC
		 LIMIT $2`,
		memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	var result []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.MemberID, &n.Kind, &n.RefID, &n.Subject, &n.Body, &n.SentAt, &n.ReadAt); err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

// MarkNotificationRead sets the read timestamp on a member's
// notification.
func (db *DB) MarkNotificationRead(ctx context.Context, id, memberID uuid.UUID, at time.Time) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE notifications SET read_at = $3 WHERE id = $1 AND member_id = $2 AND read_at IS NULL`,
		id, memberID, at)
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
