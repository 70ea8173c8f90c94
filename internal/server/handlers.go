package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/tracker"
	"github.com/go-chi/chi/v5"
)

const maxImportBytes = 32 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps tracker errors onto status codes: rejected input is 400,
// missing references 404, lifecycle conflicts 409.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
	case errors.Is(err, tracker.ErrWorkoutNotFound),
		errors.Is(err, tracker.ErrExerciseNotFound),
		errors.Is(err, tracker.ErrExerciseNotInWorkout),
		errors.Is(err, tracker.ErrNoSnapshot):
		status = http.StatusNotFound
	case errors.Is(err, tracker.ErrNoWorkout),
		errors.Is(err, tracker.ErrWorkoutInProgress),
		errors.Is(err, tracker.ErrWorkoutInactive):
		status = http.StatusConflict
	default:
		s.log.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

// pathParam returns an unescaped URL parameter. Workout names may contain
// spaces and other escaped characters.
// pathParam returns a decoded URL parameter. chi routes on RawPath when it
// is set, leaving the parameter escaped; otherwise it is already decoded.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"version":     s.version,
		"appVersion":  tracker.AppVersion,
		"dataVersion": tracker.DataVersion,
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.View())
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Progress())
}

func (s *Server) handleExercise(w http.ResponseWriter, r *http.Request) {
	ev, err := s.tracker.Exercise(pathParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Logs(queryInt(r, "limit", 0)))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	exercise := r.URL.Query().Get("exercise")
	writeJSON(w, http.StatusOK, s.tracker.History(exercise, queryInt(r, "limit", 0)))
}

// --- Session ---

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.Start(r.Context(), pathParam(r, "name")); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.View())
}

func (s *Server) handleSetDate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Date string `json:"date"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.tracker.SetWorkoutDate(body.Date); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"date": body.Date})
}

func (s *Server) handleCompleteSet(w http.ResponseWriter, r *http.Request) {
	e, err := s.tracker.CompleteSet(pathParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleFailSet(w http.ResponseWriter, r *http.Request) {
	e, err := s.tracker.FailSet(pathParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleCompleteAll(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.CompleteAll(); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.View())
}

func (s *Server) handleIncompleteExercises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"incomplete": s.tracker.IncompleteExercises()})
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Confirmed bool `json:"confirmed"`
	}
	if r.ContentLength != 0 && !decodeBody(w, r, &body) {
		return
	}
	res, err := s.tracker.End(r.Context(), body.Confirmed)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	saved, err := s.tracker.Abandon(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": saved})
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.Resume(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.View())
}

func (s *Server) handleDiscard(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.Discard(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Catalog ---

type nameBody struct {
	Name string `json:"name"`
}

type positionBody struct {
	Position int `json:"position"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Workouts())
}

func (s *Server) handleAddWorkout(w http.ResponseWriter, r *http.Request) {
	var body nameBody
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.tracker.AddWorkout(r.Context(), body.Name); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.tracker.Workouts())
}

func (s *Server) handleRenameWorkout(w http.ResponseWriter, r *http.Request) {
	var body nameBody
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.tracker.RenameWorkout(r.Context(), pathParam(r, "name"), body.Name); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.Workouts())
}

func (s *Server) handleRemoveWorkout(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.RemoveWorkout(r.Context(), pathParam(r, "name")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMoveWorkout(w http.ResponseWriter, r *http.Request) {
	var body positionBody
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.tracker.MoveWorkout(r.Context(), pathParam(r, "name"), body.Position); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.Workouts())
}

func (s *Server) handleSetWorkoutActive(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Active bool `json:"active"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.tracker.SetWorkoutActive(r.Context(), pathParam(r, "name"), body.Active); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.Workouts())
}

// handleAddExercise adds an existing exercise when the body carries an id,
// otherwise creates one from the given fields. Fields that are present must
// be valid; only absent ones get defaults.
func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	var rec models.ExerciseRecord
	if !decodeBody(w, r, &rec) {
		return
	}
	var def models.ExerciseDef
	if rec.ID != nil && *rec.ID != "" {
		def.ID = *rec.ID
	} else {
		if err := models.CheckRecord(rec); err != nil {
			s.writeError(w, err)
			return
		}
		def = models.CompleteExercise(rec)
		def.ID = ""
	}
	added, err := s.tracker.AddExercise(r.Context(), pathParam(r, "name"), def)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.RemoveExercise(r.Context(), pathParam(r, "name"), pathParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMoveExercise(w http.ResponseWriter, r *http.Request) {
	var body positionBody
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.tracker.MoveExercise(r.Context(), pathParam(r, "name"), pathParam(r, "id"), body.Position); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.Workouts())
}

func (s *Server) handleRenameExercise(w http.ResponseWriter, r *http.Request) {
	var body nameBody
	if !decodeBody(w, r, &body) {
		return
	}
	id := pathParam(r, "id")
	if err := s.tracker.RenameExercise(r.Context(), id, body.Name); err != nil {
		s.writeError(w, err)
		return
	}
	ev, err := s.tracker.Exercise(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	def, err := s.tracker.UpdateExerciseField(r.Context(), pathParam(r, "id"), body.Field, body.Value)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, def)
}

// --- Backup ---

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.tracker.Export()
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="liftlog-export.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reading body: " + err.Error()})
		return
	}
	counts, err := s.tracker.Import(r.Context(), data)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.Reset(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.View())
}
