package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

const resourceLogLimit = 20

func (h *handlers) progress(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	views, err := h.ds.Progress(ctx)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, views)
}

func (h *handlers) workoutLog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	logs, err := h.ds.WorkoutLog(ctx, resourceLogLimit)
	if err != nil {
		return nil, err
	}

	cur, err := h.ds.CurrentWorkout(ctx)
	if err != nil {
		h.log.Warn("workout_log: current workout lookup failed", "error", err)
	}

	return jsonContents(req.Params.URI, map[string]any{
		"recent":  logs,
		"current": cur,
	})
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
