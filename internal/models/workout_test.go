package models

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestEstimated1RM(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		reps   int
		want   float64
	}{
		{"single rep", 100, 1, 103.3333},
		{"typical working set", 80, 8, 101.3333},
		{"high reps", 60, 15, 90},
		{"thirty reps doubles the weight", 50, 30, 100},
		{"bodyweight zero load", 0, 12, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ExerciseSet{WeightKg: tt.weight, Reps: tt.reps}
			got := s.Estimated1RM()
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Estimated1RM(%v kg x %d) = %v, want %v", tt.weight, tt.reps, got, tt.want)
			}
		})
	}
}

func TestExerciseSetValidate(t *testing.T) {
	date := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	rir := func(v int) *int { return &v }

	valid := ExerciseSet{SetNumber: 1, WeightKg: 60, Reps: 8, Date: date}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid set rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*ExerciseSet)
	}{
		{"negative weight", func(s *ExerciseSet) { s.WeightKg = -5 }},
		{"zero reps", func(s *ExerciseSet) { s.Reps = 0 }},
		{"zero set number", func(s *ExerciseSet) { s.SetNumber = 0 }},
		{"rir below range", func(s *ExerciseSet) { s.RIR = rir(-1) }},
		{"rir above range", func(s *ExerciseSet) { s.RIR = rir(11) }},
		{"zero date", func(s *ExerciseSet) { s.Date = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error %v does not wrap ErrInvalidInput", err)
			}
		})
	}

	// RIR boundaries are inclusive.
	for _, v := range []int{0, 10} {
		s := valid
		s.RIR = rir(v)
		if err := s.Validate(); err != nil {
			t.Errorf("rir=%d rejected: %v", v, err)
		}
	}
}
