package models

import "time"

// Phase mirrors which half of the rep cycle a rep-type exercise is in.
type Phase string

const (
	PhaseReps   Phase = "reps"
	PhaseWeight Phase = "weight"
)

// ProgressState is the persistent per-exercise progression record.
type ProgressState struct {
	CurrentWeight      float64 `json:"currentWeight"`
	TargetReps         int     `json:"targetReps"`
	FailCount          int     `json:"failCount"`
	ProgressionPhase   Phase   `json:"progressionPhase"`
	LastWeightIncrease int     `json:"lastWeightIncrease"`
	PreviousWeight     float64 `json:"previousWeight"`
	PreviousReps       int     `json:"previousReps"`
	CurrentSet         int     `json:"currentSet"`
	CompletedSets      int     `json:"completedSets"`
	LastSession        int     `json:"lastSession"`
}

// NewProgress returns the initial state for an exercise that has never been trained.
func NewProgress(def ExerciseDef) ProgressState {
	return ProgressState{
		CurrentWeight:    def.StartWeight,
		TargetReps:       def.RepRange[0],
		ProgressionPhase: PhaseReps,
		PreviousWeight:   def.StartWeight,
		PreviousReps:     def.RepRange[0],
		CurrentSet:       1,
	}
}

// SessionStatus is the outcome of one exercise within an open workout.
type SessionStatus string

const (
	StatusPending   SessionStatus = "pending"
	StatusCompleted SessionStatus = "completed"
	StatusFailed    SessionStatus = "failed"
)

// SessionEntry tracks one exercise inside the workout in progress.
type SessionEntry struct {
	Status        SessionStatus `json:"status"`
	CompletedSets int           `json:"completedSets"`
	CurrentSet    int           `json:"currentSet"`
}

// NewSessionEntry returns the entry created on the first set action.
func NewSessionEntry() SessionEntry {
	return SessionEntry{Status: StatusPending, CurrentSet: 1}
}

// HasProgress reports whether the entry records anything worth resuming.
func (e SessionEntry) HasProgress() bool {
	return e.CompletedSets > 0 || (e.Status != "" && e.Status != StatusPending)
}

// LogEntry is one human-readable summary of a committed workout.
type LogEntry struct {
	Date        string    `json:"date"`
	WorkoutName string    `json:"workoutName"`
	Changes     []string  `json:"changes"`
	Timestamp   time.Time `json:"timestamp"`
}

// HistoryEntry records the outcome of one exercise in one committed session.
type HistoryEntry struct {
	Timestamp     time.Time     `json:"timestamp"`
	SessionNumber int           `json:"sessionNumber"`
	WorkoutName   string        `json:"workoutName"`
	ExerciseID    string        `json:"exerciseId"`
	ExerciseName  string        `json:"exerciseName"`
	Result        SessionStatus `json:"result"`
	Weight        float64       `json:"weight"`
	TargetReps    int           `json:"targetReps"`
	Unit          Unit          `json:"unit"`
}

// Snapshot is a saved workout-in-progress that can be resumed later.
type Snapshot struct {
	WorkoutName   string                  `json:"workoutName"`
	SessionStates map[string]SessionEntry `json:"sessionStates"`
	WorkoutDate   string                  `json:"workoutDate"`
	Timestamp     time.Time               `json:"timestamp"`
}
