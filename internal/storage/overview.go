package storage

import (
	"context"
	"fmt"
	"time"
)

// ClubStats holds aggregate statistics about the whole club, shown on
// the admin dashboard.
type ClubStats struct {
	TotalMembers     int64            `json:"total_members"`
	ActiveMembers    int64            `json:"active_members"`
	TotalWorkoutLogs int64            `json:"total_workout_logs"`
	TotalSets        int64            `json:"total_sets"`
	UpcomingClasses  int64            `json:"upcoming_classes"`
	RevenueCents     int64            `json:"revenue_cents"`
	MembersByPlan    []PlanMemberStat `json:"members_by_plan"`
}

// PlanMemberStat counts members on one plan.
type PlanMemberStat struct {
	Plan  string `json:"plan"`
	Count int64  `json:"count"`
}

// GetClubStats returns aggregate statistics across the club.
func (db *DB) GetClubStats(ctx context.Context) (*ClubStats, error) {
	stats := &ClubStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE active) FROM members`,
	).Scan(&stats.TotalMembers, &stats.ActiveMembers)
	if err != nil {
		return nil, fmt.Errorf("counting members: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM workout_logs`,
	).Scan(&stats.TotalWorkoutLogs)
	if err != nil {
		return nil, fmt.Errorf("counting workout logs: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM exercise_sets`,
	).Scan(&stats.TotalSets)
	if err != nil {
		return nil, fmt.Errorf("counting sets: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM classes WHERE starts_at >= $1`, time.Now(),
	).Scan(&stats.UpcomingClasses)
	if err != nil {
		return nil, fmt.Errorf("counting classes: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM payments WHERE status = 'paid'`,
	).Scan(&stats.RevenueCents)
	if err != nil {
		return nil, fmt.Errorf("summing revenue: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT p.name, COUNT(m.id)
		 FROM plans p
		 LEFT JOIN members m ON m.plan_id = p.id AND m.active
		 GROUP BY p.name
		 ORDER BY COUNT(m.id) DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying members by plan: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s PlanMemberStat
		if err := rows.Scan(&s.Plan, &s.Count); err != nil {
			return nil, fmt.Errorf("scanning plan stat: %w", err)
		}
		stats.MembersByPlan = append(stats.MembersByPlan, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
