package models

import (
	"time"

	"github.com/google/uuid"
)

// ClassSession is a scheduled group class owned by a trainer.
type ClassSession struct {
	ID          uuid.UUID `json:"id"`
	TrainerID   uuid.UUID `json:"trainerId"`
	Title       string    `json:"title"`
	StartsAt    time.Time `json:"startsAt"`
	DurationMin int       `json:"durationMin"`
	Capacity    int       `json:"capacity"`
	Room        string    `json:"room,omitempty"`
}

// BookingStatus is the state of a member's spot in a class.
type BookingStatus string

const (
	BookingBooked    BookingStatus = "booked"
	BookingCancelled BookingStatus = "cancelled"
	BookingAttended  BookingStatus = "attended"
)

// Booking reserves a spot in a class session for a member.
type Booking struct {
	ID        uuid.UUID     `json:"id"`
	ClassID   uuid.UUID     `json:"classId"`
	MemberID  uuid.UUID     `json:"memberId"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}
