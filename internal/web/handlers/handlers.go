package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/saltyorg/fitcenter/internal/database"
)

// Store is the set of database operations the handlers need
type Store interface {
	CreateMember(ctx context.Context, m database.MemberFields) error
	GetMember(ctx context.Context, id int64) (database.Row, error)
	UpdateMember(ctx context.Context, id int64, m database.MemberFields) (int64, error)
	DeleteMember(ctx context.Context, id int64) (int64, error)

	CreateWorkoutSession(ctx context.Context, s database.WorkoutSessionFields) error
	ListWorkoutSessionsByMember(ctx context.Context, memberID int64) ([]database.Row, error)
	UpdateWorkoutSession(ctx context.Context, id int64, s database.WorkoutSessionFields) (int64, error)
	DeleteWorkoutSession(ctx context.Context, id int64) (int64, error)
}

// Options tunes handler behavior
type Options struct {
	// StrictAffectedRows answers 404 when an update or delete matched no row
	StrictAffectedRows bool
}

// Handlers contains all HTTP handlers
type Handlers struct {
	db       Store
	opts     Options
	validate *validator.Validate
}

// New creates a new Handlers instance
func New(db Store, opts Options) *Handlers {
	return &Handlers{
		db:       db,
		opts:     opts,
		validate: newValidator(),
	}
}

// NotFound answers unmatched routes
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.jsonError(w, "Not found", http.StatusNotFound)
}

// MethodNotAllowed answers routes that exist for other methods
func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// pathID reads the integer {id} route parameter. Routes only match digits,
// so a parse failure here means the value overflowed.
func (h *Handlers) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.NotFound(w, r)
		return 0, false
	}
	return id, true
}

// decode reads the JSON request body into v. The body must hold exactly one
// JSON object.
func (h *Handlers) decode(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return &ValidationError{Message: "request body is required"}
	}

	dec := json.NewDecoder(r.Body)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return &ValidationError{Message: "request body is required"}
		}
		return &ValidationError{Message: "invalid JSON body: " + err.Error()}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return &ValidationError{Message: "invalid JSON body: unexpected data after JSON object"}
	}

	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		return &ValidationError{Message: "request body must be a JSON object"}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &ValidationError{Message: "invalid JSON body: " + err.Error()}
	}
	return nil
}

// fail converts an error into a JSON error response
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		h.jsonError(w, vErr.Error(), http.StatusBadRequest)
		return
	}

	log.Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("request_id", middleware.GetReqID(r.Context())).
		Msg(msg)
	h.jsonError(w, err.Error(), http.StatusInternalServerError)
}

// writeJSON sends v as a JSON response
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// jsonError sends a JSON error response
func (h *Handlers) jsonError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// jsonMessage sends a JSON message response
func (h *Handlers) jsonMessage(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"message": message})
}
