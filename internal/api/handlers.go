package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forgeboard/forgeboard/internal/blob"
	"github.com/forgeboard/forgeboard/internal/editsession"
	"github.com/forgeboard/forgeboard/internal/store"
	"github.com/forgeboard/forgeboard/internal/types"
)

// Handler implements the API handlers
type Handler struct {
	store    store.Store
	sessions *editsession.Manager
	uploader blob.Uploader
	version  string
}

// NewHandler creates a new Handler with store.Store interface
func NewHandler(s store.Store, sessions *editsession.Manager, uploader blob.Uploader, version string) *Handler {
	return &Handler{
		store:    s,
		sessions: sessions,
		uploader: uploader,
		version:  version,
	}
}

// writeJSON writes v as a JSON response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Health returns the health status
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetStats(r.Context())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.HealthResponse{
		Status:       "healthy",
		Version:      h.version,
		RequestCount: stats.RequestCount,
		TrackedCount: stats.TrackedCount,
	})
}

// visibleRequest loads a request and enforces visibility: drafts exist only
// for their owner and admins; everyone else sees not-found, not forbidden.
func (h *Handler) visibleRequest(w http.ResponseWriter, r *http.Request, id string) (*types.ProjectRequest, types.Identity, bool) {
	actor := MustIdentityFromContext(r.Context())

	req, err := h.store.GetRequest(r.Context(), id)
	if err != nil {
		MapStoreError(w, r, err)
		return nil, actor, false
	}
	if req.IsDraft && actor.UID != req.OwnerID && actor.Role != types.RoleAdmin {
		WriteProblem(w, r, http.StatusNotFound, "Resource not found")
		return nil, actor, false
	}
	return req, actor, true
}

// CreateRequest handles POST /api/v1/requests
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	actor := MustIdentityFromContext(r.Context())
	if actor.Role != types.RoleClient {
		WriteProblemForbidden(w, r, "Only clients may create project requests")
		return
	}

	var doc types.DraftDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	req, err := h.store.CreateDraft(r.Context(), actor.UID, doc)
	if err != nil {
		slog.Error("create draft failed", "error", err, "owner_id", actor.UID)
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, req)
}

// ListRequests handles GET /api/v1/requests?owner=UID
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	actor := MustIdentityFromContext(r.Context())

	owner := r.URL.Query().Get("owner")
	if owner == "" {
		owner = actor.UID
	}
	if owner != actor.UID && actor.Role != types.RoleAdmin {
		WriteProblemForbidden(w, r, "Only admins may list another owner's requests")
		return
	}

	requests, err := h.store.ListRequestsByOwner(r.Context(), owner)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"requests": requests,
		"total":    len(requests),
	})
}

// GetRequest handles GET /api/v1/requests/{id}
func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	req, _, ok := h.visibleRequest(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// UpdateRequest handles PATCH /api/v1/requests/{id}
func (h *Handler) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	actor := MustIdentityFromContext(r.Context())

	var patch types.DraftPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	req, err := h.store.UpdateDraft(r.Context(), chi.URLParam(r, "id"), actor, patch)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, req)
}

// DeleteRequest handles DELETE /api/v1/requests/{id}
func (h *Handler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	actor := MustIdentityFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteDraft(r.Context(), id, actor); err != nil {
		MapStoreError(w, r, err)
		return
	}

	// Terminal close for the draft's edit session: the mirror goes too.
	h.sessions.Discard(r.Context(), actor.UID, id)

	w.WriteHeader(http.StatusNoContent)
}

// PublishRequest handles POST /api/v1/requests/{id}/publish
func (h *Handler) PublishRequest(w http.ResponseWriter, r *http.Request) {
	actor := MustIdentityFromContext(r.Context())
	id := chi.URLParam(r, "id")

	prog, err := h.store.Publish(r.Context(), id, actor)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	// The draft is gone; drop its edit session and autosave mirror.
	h.sessions.Discard(r.Context(), actor.UID, id)

	writeJSON(w, http.StatusCreated, prog)
}

// AttachmentURL handles GET /api/v1/requests/{id}/attachments/{name}/url
func (h *Handler) AttachmentURL(w http.ResponseWriter, r *http.Request) {
	req, _, ok := h.visibleRequest(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	name := chi.URLParam(r, "name")
	found := false
	for _, a := range req.Attachments {
		if a == name {
			found = true
			break
		}
	}
	if !found {
		WriteProblem(w, r, http.StatusNotFound, "Attachment not found")
		return
	}

	url, expiry, err := h.uploader.PresignedURL(r.Context(), req.ID, name)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"url":        url,
		"expires_at": expiry,
	})
}

// GetProgress handles GET /api/v1/projects/{id}/progress
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	prog, err := h.store.GetProgress(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prog)
}

// PatchProgress handles PATCH /api/v1/projects/{id}/progress
func (h *Handler) PatchProgress(w http.ResponseWriter, r *http.Request) {
	actor := MustIdentityFromContext(r.Context())

	var patch types.ProgressPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	prog, err := h.store.UpdateProgress(r.Context(), chi.URLParam(r, "id"), actor, patch)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, prog)
}

// TransitionStatus handles POST /api/v1/projects/{id}/status
func (h *Handler) TransitionStatus(w http.ResponseWriter, r *http.Request) {
	actor := MustIdentityFromContext(r.Context())

	var req types.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}
	if !types.ValidStatus(req.Status) {
		WriteProblem(w, r, http.StatusUnprocessableEntity,
			fmt.Sprintf("Unknown status %q", req.Status))
		return
	}

	prog, err := h.store.TransitionStatus(r.Context(), chi.URLParam(r, "id"), actor, req.Status)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, prog)
}

// AddRosterMember handles POST /api/v1/projects/{id}/roster
func (h *Handler) AddRosterMember(w http.ResponseWriter, r *http.Request) {
	actor := MustIdentityFromContext(r.Context())

	var member types.Assignment
	if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	prog, err := h.store.AddRosterMember(r.Context(), chi.URLParam(r, "id"), actor, member)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, prog)
}

// RemoveRosterMember handles DELETE /api/v1/projects/{id}/roster/{uid}
func (h *Handler) RemoveRosterMember(w http.ResponseWriter, r *http.Request) {
	actor := MustIdentityFromContext(r.Context())

	prog, err := h.store.RemoveRosterMember(r.Context(),
		chi.URLParam(r, "id"), actor, chi.URLParam(r, "uid"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, prog)
}

// GetAudit handles GET /api/v1/projects/{id}/audit
func (h *Handler) GetAudit(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.GetAudit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"total":   len(entries),
	})
}
