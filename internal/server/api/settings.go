package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/mudra/internal/store"
)

// SettingsHandler serves the persisted key-value settings.
type SettingsHandler struct {
	store *store.Store
}

// NewSettingsHandler creates a new SettingsHandler with the given store.
func NewSettingsHandler(s *store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

// ServeHTTP handles GET and PUT on /api/settings. PUT merges the submitted
// keys into the stored settings; it does not remove absent keys.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.put(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.Settings().All()
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	WriteJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) put(w http.ResponseWriter, r *http.Request) {
	var updates map[string]string
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	for key, value := range updates {
		if key == "" {
			WriteError(w, http.StatusBadRequest, "Empty setting key")
			return
		}
		if err := h.store.Settings().Set(key, value); err != nil {
			WriteError(w, http.StatusInternalServerError, "Failed to save settings")
			return
		}
	}

	settings, err := h.store.Settings().All()
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	WriteJSON(w, http.StatusOK, settings)
}
