package stats

import (
	"sort"
	"time"

	"github.com/claude/ironclub/internal/models"
)

// UserWorkoutStats aggregates a user's entire training history.
type UserWorkoutStats struct {
	TotalWorkouts     int     `json:"totalWorkouts"`
	TotalSets         int     `json:"totalSets"`
	TotalVolume       float64 `json:"totalVolume"`
	CurrentStreak     int     `json:"currentStreak"`
	AvgSetsPerWorkout float64 `json:"avgSetsPerWorkout"`
}

// ComputeUserWorkoutStats reduces all of a user's workout logs into
// user-wide totals. CurrentStreak is the trailing run of consecutive
// calendar days with at least one log, ending on the most recent log day.
// It answers "how many days in a row did the user train, ending on their
// last training day": it freezes rather than resetting to zero when the
// last log is older than yesterday.
func ComputeUserWorkoutStats(logs []models.WorkoutLog) (UserWorkoutStats, error) {
	var out UserWorkoutStats
	if len(logs) == 0 {
		return out, nil
	}

	days := make(map[time.Time]struct{}, len(logs))
	for _, l := range logs {
		out.TotalWorkouts++
		for _, s := range l.Sets {
			if err := s.Validate(); err != nil {
				return UserWorkoutStats{}, err
			}
			out.TotalSets++
			out.TotalVolume += s.WeightKg * float64(s.Reps)
		}
		days[dayOf(l.Date)] = struct{}{}
	}

	out.CurrentStreak = trailingStreak(days)
	out.AvgSetsPerWorkout = round1(float64(out.TotalSets) / float64(out.TotalWorkouts))
	return out, nil
}

// trailingStreak counts consecutive calendar days ending at the latest
// day present in the set.
func trailingStreak(days map[time.Time]struct{}) int {
	if len(days) == 0 {
		return 0
	}

	sorted := make([]time.Time, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].After(sorted[j]) })

	streak := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Sub(sorted[i]) != 24*time.Hour {
			break
		}
		streak++
	}
	return streak
}

// dayOf truncates t to its calendar day in UTC.
func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
