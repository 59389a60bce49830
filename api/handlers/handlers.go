// Package handlers implements the /api endpoints. All responses are JSON
// except the export endpoints, which stream document bytes.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/vfxspecs/exchange/internal/export"
	"github.com/vfxspecs/exchange/internal/store"
	"github.com/vfxspecs/exchange/internal/telemetry"
)

// maxBodyBytes caps JSON and upload bodies. Records carry base64 logos, so
// the cap is generous.
const maxBodyBytes = 16 << 20

// Handlers holds the dependencies shared by every endpoint.
type Handlers struct {
	store    store.Store
	exporter *export.Exporter
	hub      *Hub
	log      *telemetry.Logger
	now      func() time.Time
}

func New(st store.Store, ex *export.Exporter, hub *Hub, log *telemetry.Logger) *Handlers {
	if log == nil {
		log = telemetry.Nop
	}
	return &Handlers{store: st, exporter: ex, hub: hub, log: log, now: time.Now}
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, code, message string) {
	var eb errorBody
	eb.Error.Code = code
	eb.Error.Message = message
	writeJSON(w, status, eb)
}

// writeStoreErr maps store sentinels to HTTP statuses.
func writeStoreErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeErr(w, http.StatusNotFound, "not_found", "record not found")
	case errors.Is(err, store.ErrInvalidInput):
		writeErr(w, http.StatusBadRequest, "invalid_input", err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, "storage_error", "storage operation failed")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return false
	}
	return true
}
