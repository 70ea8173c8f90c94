// Package mcp exposes read-only views of the tracker as MCP tools and
// resources.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("liftlog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("liftlog workout progression tracker. Read the workout catalog, per-exercise target weights and reps, the workout log, the workout in progress, and per-exercise history. Read-only."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListWorkouts, Handler: h.listWorkouts},
		server.ServerTool{Tool: toolGetProgress, Handler: h.getProgress},
		server.ServerTool{Tool: toolGetWorkoutLog, Handler: h.getWorkoutLog},
		server.ServerTool{Tool: toolGetCurrentWorkout, Handler: h.getCurrentWorkout},
		server.ServerTool{Tool: toolGetHistory, Handler: h.getHistory},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resProgress, Handler: h.progress},
		server.ServerResource{Resource: resWorkoutLog, Handler: h.workoutLog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resProgress = mcp.NewResource(
	"liftlog://progress",
	"Progress",
	mcp.WithResourceDescription("Every exercise with its current target weight, target reps and failure count"),
	mcp.WithMIMEType("application/json"),
)

var resWorkoutLog = mcp.NewResource(
	"liftlog://workout_log",
	"Workout Log",
	mcp.WithResourceDescription("The most recent committed workouts with their per-exercise changes"),
	mcp.WithMIMEType("application/json"),
)
