package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/vfxspecs/exchange/internal/logoproc"
)

// ProcessLogo handles POST /api/process-logo: a multipart upload under the
// "file" field, answered with the canonical structured logo form.
func (h *Handlers) ProcessLogo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_multipart", "expected multipart form upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "missing_file", "file field is required")
		return
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		writeErr(w, http.StatusBadRequest, "not_an_image", "file must be an image")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxBodyBytes))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "read_failed", "failed to read upload")
		return
	}

	logo, err := logoproc.Process(data)
	if err != nil {
		if errors.Is(err, logoproc.ErrUnsupportedImage) {
			writeErr(w, http.StatusBadRequest, "invalid_image", "invalid image file")
			return
		}
		h.log.Error(r.Context(), "logo_process_failed", map[string]any{"err": err.Error()})
		writeErr(w, http.StatusInternalServerError, "logo_process_failed", "failed to process logo")
		return
	}

	h.log.Info(r.Context(), "logo_processed", map[string]any{
		"width":  logo.Width,
		"height": logo.Height,
	})
	writeJSON(w, http.StatusOK, logo)
}
