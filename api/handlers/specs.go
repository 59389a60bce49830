package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/vfxspecs/exchange/internal/spec"
)

// CreateSpec handles POST /api/vfx-specs.
func (h *Handlers) CreateSpec(w http.ResponseWriter, r *http.Request) {
	var u spec.Update
	if !decodeJSON(w, r, &u) {
		return
	}

	s := spec.New(u, h.now())
	if err := h.store.CreateSpec(r.Context(), s); err != nil {
		h.log.Error(r.Context(), "spec_create_failed", map[string]any{"err": err.Error()})
		writeStoreErr(w, err)
		return
	}

	h.log.Info(r.Context(), "spec_created", map[string]any{"spec_id": s.ID})
	h.hub.Broadcast(Event{Type: "spec.created", ID: s.ID})
	writeJSON(w, http.StatusCreated, s)
}

// ListSpecs handles GET /api/vfx-specs.
func (h *Handlers) ListSpecs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeErr(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	specs, err := h.store.ListSpecs(r.Context(), limit)
	if err != nil {
		h.log.Error(r.Context(), "spec_list_failed", map[string]any{"err": err.Error()})
		writeStoreErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, specs)
}

// GetSpec handles GET /api/vfx-specs/{id}.
func (h *Handlers) GetSpec(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(mux.Vars(r)["id"])
	s, err := h.store.GetSpec(r.Context(), id)
	if err != nil {
		writeStoreErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// UpdateSpec handles PUT /api/vfx-specs/{id}. Submitted sections replace the
// stored sections whole; omitted sections are untouched.
func (h *Handlers) UpdateSpec(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(mux.Vars(r)["id"])

	var u spec.Update
	if !decodeJSON(w, r, &u) {
		return
	}

	s, err := h.store.UpdateSpec(r.Context(), id, u, h.now())
	if err != nil {
		writeStoreErr(w, err)
		return
	}

	h.log.Info(r.Context(), "spec_updated", map[string]any{"spec_id": id})
	h.hub.Broadcast(Event{Type: "spec.updated", ID: id})
	writeJSON(w, http.StatusOK, s)
}

// DeleteSpec handles DELETE /api/vfx-specs/{id}.
func (h *Handlers) DeleteSpec(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(mux.Vars(r)["id"])
	if err := h.store.DeleteSpec(r.Context(), id); err != nil {
		writeStoreErr(w, err)
		return
	}

	h.log.Info(r.Context(), "spec_deleted", map[string]any{"spec_id": id})
	h.hub.Broadcast(Event{Type: "spec.deleted", ID: id})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Specification deleted successfully"})
}
