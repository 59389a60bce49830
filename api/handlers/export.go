package handlers

import (
	"fmt"
	"net/http"

	"github.com/vfxspecs/exchange/internal/export"
)

// ExportPDF handles POST /api/export/pdf. The body is the raw record to
// render; it does not have to be a stored specification.
func (h *Handlers) ExportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, export.FormatPDF)
}

// ExportDOCX handles POST /api/export/docx.
func (h *Handlers) ExportDOCX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, export.FormatDOCX)
}

func (h *Handlers) export(w http.ResponseWriter, r *http.Request, f export.Format) {
	var rec map[string]any
	if !decodeJSON(w, r, &rec) {
		return
	}

	res, err := h.exporter.Render(r.Context(), rec, f)
	if err != nil {
		// Field and section problems never surface here; this is a
		// serialization failure.
		h.log.Error(r.Context(), "export_failed", map[string]any{
			"format": string(f),
			"err":    err.Error(),
		})
		writeErr(w, http.StatusInternalServerError, "export_failed", "document serialization failed")
		return
	}

	h.log.Info(r.Context(), "export_rendered", map[string]any{
		"format":   string(f),
		"filename": res.Filename,
		"bytes":    len(res.Data),
	})

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", res.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}
