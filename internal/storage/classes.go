package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/claude/ironclub/internal/models"
	"github.com/google/uuid"
)

// ErrCapacityFull is returned when a class has no free spots left.
var ErrCapacityFull = errors.New("class is full")

// ErrAlreadyBooked is returned when a member already holds a live
// booking for the class.
var ErrAlreadyBooked = errors.New("already booked")

const classColumns = `id, trainer_id, title, starts_at, duration_min, capacity, room`

// InsertClass creates a class session.
func (db *DB) InsertClass(ctx context.Context, c models.ClassSession) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO classes (id, trainer_id, title, starts_at, duration_min, capacity, room)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.TrainerID, c.Title, c.StartsAt, c.DurationMin, c.Capacity, c.Room)
	if err != nil {
		return fmt.Errorf("inserting class: %w", err)
	}
	return nil
}

// GetClass retrieves a class session by id.
func (db *DB) GetClass(ctx context.Context, id uuid.UUID) (*models.ClassSession, error) {
	row := db.Pool.QueryRow(ctx, `SELECT `+classColumns+` FROM classes WHERE id = $1`, id)
	var c models.ClassSession
	err := row.Scan(&c.ID, &c.TrainerID, &c.Title, &c.StartsAt, &c.DurationMin, &c.Capacity, &c.Room)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// QueryClasses returns classes starting within [start, end).
func (db *DB) QueryClasses(ctx context.Context, start, end time.Time) ([]models.ClassSession, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+classColumns+` FROM classes
		 WHERE starts_at >= $1 AND starts_at < $2
		 ORDER BY starts_at ASC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("querying classes: %w", err)
	}
	defer rows.Close()

	var result []models.ClassSession
	for rows.Next() {
		var c models.ClassSession
		if err := rows.Scan(&c.ID, &c.TrainerID, &c.Title, &c.StartsAt, &c.DurationMin,
			&c.Capacity, &c.Room); err != nil {
			return nil, fmt.Errorf("scanning class: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// UpdateClass updates a class session.
func (db *DB) UpdateClass(ctx context.Context, c models.ClassSession) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE classes SET title = $2, starts_at = $3, duration_min = $4, capacity = $5, room = $6
		 WHERE id = $1`,
		c.ID, c.Title, c.StartsAt, c.DurationMin, c.Capacity, c.Room)
	if err != nil {
		return fmt.Errorf("updating class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteClass removes a class session and its bookings.
func (db *DB) DeleteClass(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// BookClass reserves a spot for the member. The class row is locked for
// the duration of the transaction so concurrent bookings cannot exceed
// capacity.
func (db *DB) BookClass(ctx context.Context, classID, memberID uuid.UUID) (*models.Booking, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var capacity int
	err = tx.QueryRow(ctx,
		`SELECT capacity FROM classes WHERE id = $1 FOR UPDATE`, classID,
	).Scan(&capacity)
	if err != nil {
		return nil, notFound(err)
	}

	var existing int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE class_id = $1 AND member_id = $2 AND status = 'booked'`,
		classID, memberID,
	).Scan(&existing)
	if err != nil {
		return nil, fmt.Errorf("checking existing booking: %w", err)
	}
	if existing > 0 {
		return nil, ErrAlreadyBooked
	}

	var booked int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE class_id = $1 AND status = 'booked'`, classID,
	).Scan(&booked)
	if err != nil {
		return nil, fmt.Errorf("counting bookings: %w", err)
	}
	if booked >= capacity {
		return nil, ErrCapacityFull
	}

	b := models.Booking{
		ID:        uuid.New(),
		ClassID:   classID,
		MemberID:  memberID,
		Status:    models.BookingBooked,
		CreatedAt: time.Now(),
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO bookings (id, class_id, member_id, status, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		b.ID, b.ClassID, b.MemberID, b.Status, b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing booking: %w", err)
	}
	return &b, nil
}

// CancelBooking marks the member's live booking for a class as cancelled.
func (db *DB) CancelBooking(ctx context.Context, classID, memberID uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE bookings SET status = 'cancelled'
		 WHERE class_id = $1 AND member_id = $2 AND status = 'booked'`,
		classID, memberID)
	if err != nil {
		return fmt.Errorf("cancelling booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// QueryBookings returns the live bookings for a class.
func (db *DB) QueryBookings(ctx context.Context, classID uuid.UUID) ([]models.Booking, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, class_id, member_id, status, created_at
		 FROM bookings
		 WHERE class_id = $1 AND status = 'booked'
		 ORDER BY created_at ASC`,
		classID)
	if err != nil {
		return nil, fmt.Errorf("querying bookings: %w", err)
	}
	defer rows.Close()

	var result []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.ClassID, &b.MemberID, &b.Status, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning booking: %w", err)
		}
		result = append(result, b)
	}
	return result, rows.Err()
}
