package stats

import (
	"iter"
	"sort"
	"time"

	"github.com/claude/ironclub/internal/models"
	"github.com/google/uuid"
)

// ChartPoint is one plotted session: its date and the best estimated 1RM
// achieved for the exercise within that session.
type ChartPoint struct {
	Date         time.Time `json:"date"`
	Estimated1RM float64   `json:"estimated1RM"`
}

// ChartSeries returns the most recent limit sessions for one exercise as
// a sequence of chart points in chronological order. Each session's value
// is the maximum estimated 1RM among its sets, not an average.
//
// The returned sequence is restartable: ranging over it again replays the
// same points.
func ChartSeries(sets []models.ExerciseSet, limit int) iter.Seq[ChartPoint] {
	type session struct {
		date time.Time
		best float64
	}

	byWorkout := make(map[uuid.UUID]*session)
	for _, s := range sets {
		est := s.Estimated1RM()
		sess, ok := byWorkout[s.WorkoutID]
		if !ok {
			byWorkout[s.WorkoutID] = &session{date: s.Date, best: est}
			continue
		}
		if est > sess.best {
			sess.best = est
		}
		if s.Date.Before(sess.date) {
			sess.date = s.Date
		}
	}

	sessions := make([]session, 0, len(byWorkout))
	for _, s := range byWorkout {
		sessions = append(sessions, *s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].date.Before(sessions[j].date)
	})

	if limit > 0 && len(sessions) > limit {
		sessions = sessions[len(sessions)-limit:]
	}

	return func(yield func(ChartPoint) bool) {
		for _, s := range sessions {
			if !yield(ChartPoint{Date: s.date, Estimated1RM: s.best}) {
				return
			}
		}
	}
}
