// Package api wires the HTTP routes and the outer middleware layers.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vfxspecs/exchange/api/handlers"
	"github.com/vfxspecs/exchange/internal/config"
	"github.com/vfxspecs/exchange/internal/export"
	"github.com/vfxspecs/exchange/internal/middleware"
	"github.com/vfxspecs/exchange/internal/store"
	"github.com/vfxspecs/exchange/internal/telemetry"
)

// NewRouter builds the full /api surface. Middleware order: recovery outermost,
// then request id, logging, CORS.
func NewRouter(st store.Store, log *telemetry.Logger, cfg config.Config) http.Handler {
	hub := handlers.NewHub(log)
	h := handlers.New(st, export.New(log), hub, log)

	r := mux.NewRouter()
	apiR := r.PathPrefix("/api").Subrouter()

	apiR.HandleFunc("/", h.Root).Methods(http.MethodGet, http.MethodOptions)
	apiR.HandleFunc("/health", h.Health).Methods(http.MethodGet, http.MethodOptions)

	apiR.HandleFunc("/vfx-specs", h.CreateSpec).Methods(http.MethodPost, http.MethodOptions)
	apiR.HandleFunc("/vfx-specs", h.ListSpecs).Methods(http.MethodGet)
	apiR.HandleFunc("/vfx-specs/{id}", h.GetSpec).Methods(http.MethodGet, http.MethodOptions)
	apiR.HandleFunc("/vfx-specs/{id}", h.UpdateSpec).Methods(http.MethodPut)
	apiR.HandleFunc("/vfx-specs/{id}", h.DeleteSpec).Methods(http.MethodDelete)

	apiR.HandleFunc("/templates", h.CreateTemplate).Methods(http.MethodPost, http.MethodOptions)
	apiR.HandleFunc("/templates", h.ListTemplates).Methods(http.MethodGet)
	apiR.HandleFunc("/templates/{id}", h.GetTemplate).Methods(http.MethodGet, http.MethodOptions)
	apiR.HandleFunc("/templates/{id}", h.DeleteTemplate).Methods(http.MethodDelete)

	apiR.HandleFunc("/export/pdf", h.ExportPDF).Methods(http.MethodPost, http.MethodOptions)
	apiR.HandleFunc("/export/docx", h.ExportDOCX).Methods(http.MethodPost, http.MethodOptions)

	apiR.HandleFunc("/process-logo", h.ProcessLogo).Methods(http.MethodPost, http.MethodOptions)
	apiR.HandleFunc("/dropdown-options", h.DropdownOptions).Methods(http.MethodGet, http.MethodOptions)

	apiR.HandleFunc("/events", h.Events).Methods(http.MethodGet)

	var handler http.Handler = r
	handler = middleware.CORS(cfg.CORSOrigins())(handler)
	handler = middleware.Logging(log)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recover(log)(handler)
	return handler
}
