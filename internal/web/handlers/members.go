package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/saltyorg/fitcenter/internal/database"
	"github.com/saltyorg/fitcenter/internal/serializer"
)

// memberRequest is the JSON body of member writes.
// A field left out of an update is stored as NULL.
type memberRequest struct {
	Name  *string `json:"name" validate:"required"`
	Email *string `json:"email" validate:"required"`
	Phone *string `json:"phone" validate:"required"`
}

func (req memberRequest) fields() database.MemberFields {
	return database.MemberFields{Name: req.Name, Email: req.Email, Phone: req.Phone}
}

// MemberCreate handles POST /members
func (h *Handlers) MemberCreate(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, err, "Failed to decode member")
		return
	}
	if err := h.validateBody(req); err != nil {
		h.fail(w, r, err, "Invalid member")
		return
	}

	if err := h.db.CreateMember(r.Context(), req.fields()); err != nil {
		h.fail(w, r, err, "Failed to create member")
		return
	}

	log.Info().Msg("Member created")

	// The response echoes the submitted values; the generated id is not read back
	h.writeJSON(w, http.StatusCreated, serializer.MemberSchema.Dump(map[string]any{
		"name":  *req.Name,
		"email": *req.Email,
		"phone": *req.Phone,
	}))
}

// MemberGet handles GET /members/{id}
func (h *Handlers) MemberGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	member, err := h.db.GetMember(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Failed to get member")
		return
	}
	if member == nil {
		h.jsonMessage(w, "Member not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, serializer.MemberSchema.Dump(member))
}

// MemberUpdate handles PUT /members/{id}
func (h *Handlers) MemberUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req memberRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, err, "Failed to decode member")
		return
	}

	affected, err := h.db.UpdateMember(r.Context(), id, req.fields())
	if err != nil {
		h.fail(w, r, err, "Failed to update member")
		return
	}
	if affected == 0 {
		log.Debug().Int64("member_id", id).Msg("Member update matched no rows")
		if h.opts.StrictAffectedRows {
			h.jsonMessage(w, "Member not found", http.StatusNotFound)
			return
		}
	}

	log.Info().Int64("member_id", id).Msg("Member updated")
	h.jsonMessage(w, "Member updated successfully", http.StatusOK)
}

// MemberDelete handles DELETE /members/{id}
func (h *Handlers) MemberDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	affected, err := h.db.DeleteMember(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Failed to delete member")
		return
	}
	if affected == 0 {
		log.Debug().Int64("member_id", id).Msg("Member delete matched no rows")
		if h.opts.StrictAffectedRows {
			h.jsonMessage(w, "Member not found", http.StatusNotFound)
			return
		}
	}

	log.Info().Int64("member_id", id).Msg("Member deleted")
	h.jsonMessage(w, "Member deleted successfully", http.StatusOK)
}
