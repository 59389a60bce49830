package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/vfxspecs/exchange/internal/spec"
)

type createTemplateReq struct {
	Name string         `json:"name"`
	Data map[string]any `json:"data"`
}

// CreateTemplate handles POST /api/templates.
func (h *Handlers) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req createTemplateReq
	if !decodeJSON(w, r, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeErr(w, http.StatusBadRequest, "missing_name", "name is required")
		return
	}

	t := spec.NewTemplate(name, req.Data, h.now())
	if err := h.store.CreateTemplate(r.Context(), t); err != nil {
		h.log.Error(r.Context(), "template_create_failed", map[string]any{"err": err.Error()})
		writeStoreErr(w, err)
		return
	}

	h.log.Info(r.Context(), "template_created", map[string]any{"template_id": t.ID})
	h.hub.Broadcast(Event{Type: "template.created", ID: t.ID})
	writeJSON(w, http.StatusCreated, t)
}

// ListTemplates handles GET /api/templates.
func (h *Handlers) ListTemplates(w http.ResponseWriter, r *http.Request) {
	ts, err := h.store.ListTemplates(r.Context())
	if err != nil {
		h.log.Error(r.Context(), "template_list_failed", map[string]any{"err": err.Error()})
		writeStoreErr(w, err)
		return
	}
	if ts == nil {
		ts = []*spec.Template{}
	}
	writeJSON(w, http.StatusOK, ts)
}

// GetTemplate handles GET /api/templates/{id}.
func (h *Handlers) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(mux.Vars(r)["id"])
	t, err := h.store.GetTemplate(r.Context(), id)
	if err != nil {
		writeStoreErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// DeleteTemplate handles DELETE /api/templates/{id}.
func (h *Handlers) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(mux.Vars(r)["id"])
	if err := h.store.DeleteTemplate(r.Context(), id); err != nil {
		writeStoreErr(w, err)
		return
	}

	h.log.Info(r.Context(), "template_deleted", map[string]any{"template_id": id})
	h.hub.Broadcast(Event{Type: "template.deleted", ID: id})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Template deleted successfully"})
}
