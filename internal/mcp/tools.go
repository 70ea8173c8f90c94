package mcp

import (
	"context"
	"strings"

	"github.com/claude/liftlog/internal/tracker"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	defaultLogLimit     = 10
	defaultHistoryLimit = 50
)

// --- Tool definitions ---

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List the workout catalog in display order, with each workout's exercises and their settings (start/minimum weight, rep range, increment, unit, sets, progression type)."),
)

var toolGetProgress = mcp.NewTool("get_progress",
	mcp.WithDescription("Current progression per exercise: target weight, target reps, failure count and the session of the last weight increase."),
	mcp.WithString("exercise", mcp.Description("Exercise ID, or part of an exercise name (case-insensitive). Omit for all exercises.")),
)

var toolGetWorkoutLog = mcp.NewTool("get_workout_log",
	mcp.WithDescription("Committed workouts, newest first. Each entry lists one change line per exercise (e.g. 'Seated row: 50kg → 52.5kg (5 reps)')."),
	mcp.WithNumber("limit", mcp.Description("Maximum entries to return. Defaults to 10.")),
)

var toolGetCurrentWorkout = mcp.NewTool("get_current_workout",
	mcp.WithDescription("The workout in progress, with per-exercise set status, or a note that none is running."),
)

var toolGetHistory = mcp.NewTool("get_history",
	mcp.WithDescription("Per-exercise session results (completed/failed/pending) with the weight and reps attempted, oldest first."),
	mcp.WithString("exercise_id", mcp.Description("Restrict to one exercise ID. Omit for all exercises.")),
	mcp.WithNumber("limit", mcp.Description("Maximum entries to return, most recent kept. Defaults to 50.")),
)

// --- Tool handlers ---

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workouts, err := h.ds.Workouts(ctx)
	if err != nil {
		h.log.Error("mcp list_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	views, err := h.ds.Progress(ctx)
	if err != nil {
		h.log.Error("mcp get_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if filter := req.GetString("exercise", ""); filter != "" {
		views = filterExercises(views, filter)
		if len(views) == 0 {
			return mcp.NewToolResultError("no exercise matches " + filter), nil
		}
	}

	result, err := mcp.NewToolResultJSON(views)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// filterExercises keeps an exact ID match, or else every name containing
// filter.
func filterExercises(views []tracker.ExerciseView, filter string) []tracker.ExerciseView {
	for _, v := range views {
		if v.Definition.ID == filter {
			return []tracker.ExerciseView{v}
		}
	}
	needle := strings.ToLower(filter)
	var out []tracker.ExerciseView
	for _, v := range views {
		if strings.Contains(strings.ToLower(v.Definition.Name), needle) {
			out = append(out, v)
		}
	}
	return out
}

func (h *handlers) getWorkoutLog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", defaultLogLimit)
	if limit <= 0 {
		limit = defaultLogLimit
	}

	logs, err := h.ds.WorkoutLog(ctx, limit)
	if err != nil {
		h.log.Error("mcp get_workout_log", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(logs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getCurrentWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cur, err := h.ds.CurrentWorkout(ctx)
	if err != nil {
		h.log.Error("mcp get_current_workout", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if cur == nil {
		return mcp.NewToolResultText("no workout in progress"), nil
	}

	result, err := mcp.NewToolResultJSON(cur)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", defaultHistoryLimit)
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	entries, err := h.ds.History(ctx, req.GetString("exercise_id", ""), limit)
	if err != nil {
		h.log.Error("mcp get_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(entries)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
