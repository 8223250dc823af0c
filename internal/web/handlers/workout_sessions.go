package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/saltyorg/fitcenter/internal/database"
	"github.com/saltyorg/fitcenter/internal/serializer"
)

// workoutSessionRequest is the JSON body of workout session writes.
// member_id is only read on create.
type workoutSessionRequest struct {
	MemberID *int64  `json:"member_id" validate:"required"`
	Date     *string `json:"date" validate:"required"`
	Type     *string `json:"type" validate:"required"`
	Duration *int64  `json:"duration" validate:"required"`
}

func (req workoutSessionRequest) fields() database.WorkoutSessionFields {
	return database.WorkoutSessionFields{
		MemberID: req.MemberID,
		Date:     req.Date,
		Type:     req.Type,
		Duration: req.Duration,
	}
}

// WorkoutSessionCreate handles POST /workout_sessions
func (h *Handlers) WorkoutSessionCreate(w http.ResponseWriter, r *http.Request) {
	var req workoutSessionRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, err, "Failed to decode workout session")
		return
	}
	if err := h.validateBody(req); err != nil {
		h.fail(w, r, err, "Invalid workout session")
		return
	}

	if err := h.db.CreateWorkoutSession(r.Context(), req.fields()); err != nil {
		h.fail(w, r, err, "Failed to create workout session")
		return
	}

	log.Info().Int64("member_id", *req.MemberID).Str("type", *req.Type).Msg("Workout session created")

	h.writeJSON(w, http.StatusCreated, serializer.WorkoutSessionSchema.Dump(map[string]any{
		"member_id": *req.MemberID,
		"date":      *req.Date,
		"type":      *req.Type,
		"duration":  *req.Duration,
	}))
}

// MemberWorkoutSessions handles GET /members/{id}/workout_sessions.
// A member without sessions, or one that does not exist, yields an empty list.
func (h *Handlers) MemberWorkoutSessions(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	sessions, err := h.db.ListWorkoutSessionsByMember(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Failed to list workout sessions")
		return
	}

	h.writeJSON(w, http.StatusOK, serializer.DumpMany(serializer.WorkoutSessionSchema, sessions))
}

// WorkoutSessionUpdate handles PUT /workout_sessions/{id}
func (h *Handlers) WorkoutSessionUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req workoutSessionRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, err, "Failed to decode workout session")
		return
	}

	affected, err := h.db.UpdateWorkoutSession(r.Context(), id, req.fields())
	if err != nil {
		h.fail(w, r, err, "Failed to update workout session")
		return
	}
	if affected == 0 {
		log.Debug().Int64("session_id", id).Msg("Workout session update matched no rows")
		if h.opts.StrictAffectedRows {
			h.jsonMessage(w, "Workout session not found", http.StatusNotFound)
			return
		}
	}

	log.Info().Int64("session_id", id).Msg("Workout session updated")
	h.jsonMessage(w, "Workout session updated successfully", http.StatusOK)
}

// WorkoutSessionDelete handles DELETE /workout_sessions/{id}
func (h *Handlers) WorkoutSessionDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	affected, err := h.db.DeleteWorkoutSession(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Failed to delete workout session")
		return
	}
	if affected == 0 {
		log.Debug().Int64("session_id", id).Msg("Workout session delete matched no rows")
		if h.opts.StrictAffectedRows {
			h.jsonMessage(w, "Workout session not found", http.StatusNotFound)
			return
		}
	}

	log.Info().Int64("session_id", id).Msg("Workout session deleted")
	h.jsonMessage(w, "Workout session deleted successfully", http.StatusOK)
}
