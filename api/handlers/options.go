package handlers

import (
	"net/http"

	"github.com/vfxspecs/exchange/internal/options"
)

// DropdownOptions handles GET /api/dropdown-options.
func (h *Handlers) DropdownOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, options.Catalog())
}
