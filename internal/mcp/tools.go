package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/ironclub/internal/stats"
)

// defaultTimeRange returns start/end defaulting to the last 30 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -30)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// requireUser returns the bound member ID or an error result.
func requireUser(ctx context.Context) (uuid.UUID, *mcp.CallToolResult) {
	uid := UserIDFromContext(ctx)
	if uid == uuid.Nil {
		return uuid.Nil, mcp.NewToolResultError("no member bound to this session")
	}
	return uid, nil
}

// --- Tool definitions ---

var toolGetExerciseStats = mcp.NewTool("get_exercise_stats",
	mcp.WithDescription("Per-exercise training statistics: total sets/reps/volume, average weight and reps, personal record (best estimated 1RM via the Epley formula) and last session date."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name, exact match (e.g. 'Press banca')")),
)

var toolGetExerciseChart = mcp.NewTool("get_exercise_chart",
	mcp.WithDescription("Progress chart for one exercise: per-session best estimated 1RM, chronologically ascending."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name, exact match")),
	mcp.WithNumber("limit", mcp.Description("Number of most recent sessions to include. Defaults to 12.")),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("The member's workout logs with their sets (weight, reps, RIR, PR flag)."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetWorkoutStats = mcp.NewTool("get_workout_stats",
	mcp.WithDescription("User-wide training totals: workout count, sets, volume, current calendar-day streak and average sets per workout."),
)

var toolGetGoals = mcp.NewTool("get_goals",
	mcp.WithDescription("The member's goals with type, targets, status and progress percentage."),
)

var toolGetMeasurements = mcp.NewTool("get_measurements",
	mcp.WithDescription("Body measurements (weight, body fat %, muscle mass %), newest first."),
	mcp.WithNumber("limit", mcp.Description("Maximum entries to return. Defaults to 20.")),
)

var toolGetSchedule = mcp.NewTool("get_schedule",
	mcp.WithDescription("The club's class schedule within a date range."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to now.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to 7 days from start.")),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("The exercise catalog, optionally filtered by muscle group."),
	mcp.WithString("muscle_group", mcp.Description("Filter: chest, back, legs, shoulders, arms, core or full-body")),
)

// --- Tool handlers ---

func (h *handlers) getExerciseStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	uid, errResult := requireUser(ctx)
	if errResult != nil {
		return errResult, nil
	}

	exercise, err := h.ds.FindExerciseByName(ctx, name)
	if err != nil {
		return mcp.NewToolResultError("unknown exercise: " + name), nil
	}

	sets, err := h.ds.QueryExerciseSets(ctx, uid, exercise.ID)
	if err != nil {
		h.log.Error("mcp get_exercise_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	exStats, err := stats.ComputeExerciseStats(sets)
	if err != nil {
		return mcp.NewToolResultError("stats failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"exercise": exercise,
		"stats":    exStats,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseChart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	uid, errResult := requireUser(ctx)
	if errResult != nil {
		return errResult, nil
	}

	limit := req.GetInt("limit", 12)
	if limit < 1 {
		return mcp.NewToolResultError("limit must be positive"), nil
	}

	exercise, err := h.ds.FindExerciseByName(ctx, name)
	if err != nil {
		return mcp.NewToolResultError("unknown exercise: " + name), nil
	}

	sets, err := h.ds.QueryExerciseSets(ctx, uid, exercise.ID)
	if err != nil {
		h.log.Error("mcp get_exercise_chart", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	points := make([]stats.ChartPoint, 0, limit)
	for p := range stats.ChartSeries(sets, limit) {
		points = append(points, p)
	}

	result, err := mcp.NewToolResultJSON(points)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid, errResult := requireUser(ctx)
	if errResult != nil {
		return errResult, nil
	}

	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	logs, err := h.ds.QueryWorkoutLogs(ctx, uid, start, end)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(logs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid, errResult := requireUser(ctx)
	if errResult != nil {
		return errResult, nil
	}

	logs, err := h.ds.QueryWorkoutLogs(ctx, uid, time.Time{}.AddDate(1, 0, 0), time.Now().AddDate(0, 0, 1))
	if err != nil {
		h.log.Error("mcp get_workout_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	userStats, err := stats.ComputeUserWorkoutStats(logs)
	if err != nil {
		return mcp.NewToolResultError("stats failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(userStats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getGoals(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid, errResult := requireUser(ctx)
	if errResult != nil {
		return errResult, nil
	}

	goals, err := h.ds.ListGoals(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_goals", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(goals)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMeasurements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid, errResult := requireUser(ctx)
	if errResult != nil {
		return errResult, nil
	}

	limit := req.GetInt("limit", 20)
	if limit < 1 {
		return mcp.NewToolResultError("limit must be positive"), nil
	}

	measurements, err := h.ds.ListMeasurements(ctx, uid, limit)
	if err != nil {
		h.log.Error("mcp get_measurements", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(measurements)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSchedule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var start, end time.Time
	var err error

	if s := req.GetString("start", ""); s != "" {
		start, err = parseFlexTime(s)
		if err != nil {
			return mcp.NewToolResultError("invalid start date: " + err.Error()), nil
		}
	} else {
		start = time.Now()
	}

	if e := req.GetString("end", ""); e != "" {
		end, err = parseFlexTime(e)
		if err != nil {
			return mcp.NewToolResultError("invalid end date: " + err.Error()), nil
		}
	} else {
		end = start.AddDate(0, 0, 7)
	}

	classes, err := h.ds.QueryClasses(ctx, start, end)
	if err != nil {
		h.log.Error("mcp get_schedule", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(classes)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises, err := h.ds.ListExercises(ctx, req.GetString("muscle_group", ""))
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
