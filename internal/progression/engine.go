// Package progression decides how an exercise's target weight and reps move
// after a session. It is pure: no I/O, no clocks, no logging.
package progression

import (
	"fmt"
	"math"
	"strconv"

	"github.com/claude/liftlog/internal/models"
)

// FailThreshold is the number of consecutive failures that triggers a deload
// for simple and rep progressions.
const FailThreshold = 2

// Apply folds one exercise's final session status into its progression state
// and returns the new state plus a human-readable change line.
//
// The working counters are always reset to (1, 0, session), whatever the
// outcome. A pending or empty status leaves weight, reps and fail count alone.
func Apply(def models.ExerciseDef, st models.ProgressState, status models.SessionStatus, session int) (models.ProgressState, string) {
	var change string
	switch status {
	case models.StatusCompleted:
		st.PreviousWeight, st.PreviousReps = st.CurrentWeight, st.TargetReps
		st, change = success(def, st, session)
	case models.StatusFailed:
		st.PreviousWeight, st.PreviousReps = st.CurrentWeight, st.TargetReps
		st, change = failure(def, st)
	default:
		change = def.Name + ": Incomplete"
	}

	st.CurrentSet = 1
	st.CompletedSets = 0
	st.LastSession = session
	return st, change
}

func success(def models.ExerciseDef, st models.ProgressState, session int) (models.ProgressState, string) {
	st.FailCount = 0
	oldWeight, oldReps := st.CurrentWeight, st.TargetReps

	switch def.ProgressionType {
	case models.ProgressionSimple:
		st.CurrentWeight = round(st.CurrentWeight + def.Increment)
		st.LastWeightIncrease = session
		return st, fmt.Sprintf("%s: %s → %s", def.Name, weight(oldWeight, def.Unit), weight(st.CurrentWeight, def.Unit))

	case models.ProgressionRep:
		// Two-state cycle: floor reps -> floor+1 reps -> more weight at floor reps.
		if st.TargetReps == def.RepRange[0] {
			st.TargetReps = def.RepRange[0] + 1
			st.ProgressionPhase = models.PhaseWeight
			return st, fmt.Sprintf("%s: %d → %d reps", def.Name, oldReps, st.TargetReps)
		}
		st.CurrentWeight = round(st.CurrentWeight + def.Increment)
		st.TargetReps = def.RepRange[0]
		st.ProgressionPhase = models.PhaseReps
		st.LastWeightIncrease = session
		return st, fmt.Sprintf("%s: %s → %s (%d reps)", def.Name, weight(oldWeight, def.Unit), weight(st.CurrentWeight, def.Unit), st.TargetReps)

	default:
		return st, def.Name + ": Completed"
	}
}

func failure(def models.ExerciseDef, st models.ProgressState) (models.ProgressState, string) {
	st.FailCount++

	if def.ProgressionType == models.ProgressionNone || !def.ProgressionType.Valid() {
		return st, fmt.Sprintf("%s: Failed (%d)", def.Name, st.FailCount)
	}
	if st.FailCount < FailThreshold {
		return st, fmt.Sprintf("%s: Failed (%d/%d)", def.Name, st.FailCount, FailThreshold)
	}

	st.FailCount = 0
	prefix := fmt.Sprintf("%s: Failed (%d/%d) - ", def.Name, FailThreshold, FailThreshold)

	if def.ProgressionType == models.ProgressionRep && st.TargetReps > def.RepRange[0] {
		oldReps := st.TargetReps
		st.TargetReps = def.RepRange[0]
		st.ProgressionPhase = models.PhaseReps
		return st, fmt.Sprintf("%s%d → %d reps", prefix, oldReps, st.TargetReps)
	}

	oldWeight := st.CurrentWeight
	next := round(math.Max(Floor(def), st.CurrentWeight-def.Increment))
	if next >= st.CurrentWeight {
		return st, fmt.Sprintf("%salready at minimum weight (%s)", prefix, weight(st.CurrentWeight, def.Unit))
	}
	st.CurrentWeight = next
	return st, fmt.Sprintf("%s%s → %s", prefix, weight(oldWeight, def.Unit), weight(st.CurrentWeight, def.Unit))
}

// Floor is the lowest weight a deload may reach.
func Floor(def models.ExerciseDef) float64 {
	return def.MinimumWeight
}

// round trims float noise from repeated increments (2.5 + 0.1 ...).
func round(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func weight(v float64, unit models.Unit) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + string(unit)
}
