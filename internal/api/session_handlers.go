package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forgeboard/forgeboard/internal/editsession"
	"github.com/forgeboard/forgeboard/internal/types"
)

// sessionResponse is the body for every edit-session endpoint: the current
// document after the operation, plus whether the operation changed anything.
type sessionResponse struct {
	Document types.DraftDocument `json:"document"`
	Changed  bool                `json:"changed"`
}

// draftSession authorizes the edit-session operation and opens the session.
// Only the draft's owner may edit it; published requests have no session.
func (h *Handler) draftSession(w http.ResponseWriter, r *http.Request) (*editsession.Session, bool) {
	actor := MustIdentityFromContext(r.Context())
	id := chi.URLParam(r, "id")

	req, err := h.store.GetRequest(r.Context(), id)
	if err != nil {
		MapStoreError(w, r, err)
		return nil, false
	}
	if req.OwnerID != actor.UID {
		// Drafts are invisible to non-owners.
		WriteProblem(w, r, http.StatusNotFound, "Resource not found")
		return nil, false
	}
	if !req.IsDraft {
		WriteProblem(w, r, http.StatusConflict, "Request is no longer a draft")
		return nil, false
	}

	return h.sessions.Open(r.Context(), actor.UID, id), true
}

// GetSession handles GET /api/v1/drafts/{id}/session. Opening restores from
// the durable mirror when no session is live.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.draftSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Document: s.Current(), Changed: false})
}

// UpdateSession handles POST /api/v1/drafts/{id}/session/update
func (h *Handler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	var patch types.DraftPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	s, ok := h.draftSession(w, r)
	if !ok {
		return
	}

	doc := s.Update(r.Context(), patch)
	writeJSON(w, http.StatusOK, sessionResponse{Document: doc, Changed: true})
}

// UndoSession handles POST /api/v1/drafts/{id}/session/undo
func (h *Handler) UndoSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.draftSession(w, r)
	if !ok {
		return
	}

	doc, changed := s.Undo(r.Context())
	writeJSON(w, http.StatusOK, sessionResponse{Document: doc, Changed: changed})
}

// RedoSession handles POST /api/v1/drafts/{id}/session/redo
func (h *Handler) RedoSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.draftSession(w, r)
	if !ok {
		return
	}

	doc, changed := s.Redo(r.Context())
	writeJSON(w, http.StatusOK, sessionResponse{Document: doc, Changed: changed})
}

// ResetSession handles POST /api/v1/drafts/{id}/session/reset
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.draftSession(w, r)
	if !ok {
		return
	}

	doc := s.Reset(r.Context())
	writeJSON(w, http.StatusOK, sessionResponse{Document: doc, Changed: true})
}
