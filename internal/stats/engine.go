// Package stats computes per-exercise and per-user training statistics
// from logged exercise sets. Every function is a pure single pass over
// in-memory data; persistence and validation at the HTTP boundary live
// elsewhere.
package stats

import (
	"math"
	"time"

	"github.com/claude/ironclub/internal/models"
)

// PersonalRecord is the best estimated-1RM set for one exercise. It is a
// view recomputed from history on demand, never a stored entity.
type PersonalRecord struct {
	WeightKg     float64   `json:"weight"`
	Reps         int       `json:"reps"`
	Date         time.Time `json:"date"`
	Estimated1RM float64   `json:"estimated1RM"`
}

// ExerciseStats aggregates all sets a user has logged for one exercise.
// JSON names follow the original club app's API.
type ExerciseStats struct {
	TotalSets   int             `json:"totalSets"`
	TotalReps   int             `json:"totalReps"`
	TotalVolume float64         `json:"volumeTotal"`
	AvgWeight   float64         `json:"pesoPromedio"`
	AvgReps     int             `json:"repsPromedio"`
	PR          *PersonalRecord `json:"pr"`
	LastSession *time.Time      `json:"ultimaSesion"`
}

// ComputeExerciseStats reduces the full set history of one exercise into
// ExerciseStats. Empty input yields zero values and a nil PR. Returns
// models.ErrInvalidInput (wrapped) if any set violates its bounds, so a
// bad row can never corrupt aggregates.
func ComputeExerciseStats(sets []models.ExerciseSet) (ExerciseStats, error) {
	var out ExerciseStats
	if len(sets) == 0 {
		return out, nil
	}

	var weightSum, repSum float64
	var last time.Time
	var pr *PersonalRecord

	for _, s := range sets {
		if err := s.Validate(); err != nil {
			return ExerciseStats{}, err
		}

		out.TotalSets++
		out.TotalReps += s.Reps
		out.TotalVolume += s.WeightKg * float64(s.Reps)
		weightSum += s.WeightKg
		repSum += float64(s.Reps)

		if s.Date.After(last) {
			last = s.Date
		}

		est := s.Estimated1RM()
		// Strict > keeps the earliest set on ties: the first one achieved
		// is "the" record.
		if pr == nil || est > pr.Estimated1RM ||
			(est == pr.Estimated1RM && s.Date.Before(pr.Date)) {
			pr = &PersonalRecord{
				WeightKg:     s.WeightKg,
				Reps:         s.Reps,
				Date:         s.Date,
				Estimated1RM: est,
			}
		}
	}

	n := float64(out.TotalSets)
	out.AvgWeight = round1(weightSum / n)
	out.AvgReps = int(math.Round(repSum / n))
	out.PR = pr
	out.LastSession = &last
	return out, nil
}

// DetectPR reports whether newSet beats the best estimated 1RM in the
// prior history for the same exercise (true on empty history). The result
// is stored on the set at creation time and deliberately never revisited:
// deleting a historically better set does not promote older sets to PRs.
func DetectPR(newSet models.ExerciseSet, history []models.ExerciseSet) bool {
	best := math.Inf(-1)
	for _, s := range history {
		if est := s.Estimated1RM(); est > best {
			best = est
		}
	}
	return len(history) == 0 || newSet.Estimated1RM() > best
}

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
