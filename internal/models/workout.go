package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidInput is returned when a set fails boundary validation. The
// stats engine assumes validated input and refuses to aggregate garbage.
var ErrInvalidInput = errors.New("invalid input")

// ExerciseSet is one completed set within a workout log. Immutable once
// created; removal only happens by deleting the whole log.
//
// IsPR is fixed at creation time: true if the set beat the best estimated
// 1RM logged for the exercise up to that moment. It is intentionally not
// recomputed when earlier sets are deleted later.
type ExerciseSet struct {
	ID         uuid.UUID `json:"id"`
	WorkoutID  uuid.UUID `json:"workoutId"`
	ExerciseID uuid.UUID `json:"exerciseId"`
	SetNumber  int       `json:"setNumber"`
	WeightKg   float64   `json:"weight"`
	Reps       int       `json:"reps"`
	RIR        *int      `json:"rir,omitempty"`
	IsPR       bool      `json:"esPR"`
	Date       time.Time `json:"date"`
}

// Estimated1RM returns the Epley one-rep-max estimate for this set.
func (s ExerciseSet) Estimated1RM() float64 {
	return s.WeightKg * (1 + float64(s.Reps)/30)
}

// Validate checks the numeric bounds the rest of the system relies on.
func (s ExerciseSet) Validate() error {
	if s.WeightKg < 0 {
		return fmt.Errorf("%w: negative weight %.2f", ErrInvalidInput, s.WeightKg)
	}
	if s.Reps < 1 {
		return fmt.Errorf("%w: reps must be >= 1, got %d", ErrInvalidInput, s.Reps)
	}
	if s.SetNumber < 1 {
		return fmt.Errorf("%w: set number must be >= 1, got %d", ErrInvalidInput, s.SetNumber)
	}
	if s.RIR != nil && (*s.RIR < 0 || *s.RIR > 10) {
		return fmt.Errorf("%w: rir must be 0-10, got %d", ErrInvalidInput, *s.RIR)
	}
	if s.Date.IsZero() {
		return fmt.Errorf("%w: zero date", ErrInvalidInput)
	}
	return nil
}

// WorkoutLog is one training session. Sets keep insertion order, which is
// not necessarily sorted by SetNumber.
type WorkoutLog struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"userId"`
	Date        time.Time     `json:"date"`
	Title       *string       `json:"title,omitempty"`
	DurationMin *int          `json:"duracionMinutos,omitempty"`
	Sets        []ExerciseSet `json:"sets"`
}
