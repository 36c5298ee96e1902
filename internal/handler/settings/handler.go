package settings

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ninakotova/lumina/internal/model/settings"
	"github.com/ninakotova/lumina/pkg/utils"
)

var validThemes = map[string]bool{"dark": true, "light": true}

var validFontSizes = map[string]bool{"small": true, "medium": true, "large": true}

// Handler serves the appearance settings.
type Handler struct {
	store *settings.Store
}

// New creates the settings handler.
func New(store *settings.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the settings routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/settings", h.handleGet)
	r.Put("/settings", h.handleUpdate)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Get())
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	next := h.store.Get()
	if err := json.NewDecoder(r.Body).Decode(&next); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validThemes[next.Theme] {
		utils.RespondError(w, http.StatusBadRequest, "unknown theme")
		return
	}
	if !validFontSizes[next.FontSize] {
		utils.RespondError(w, http.StatusBadRequest, "unknown font size")
		return
	}
	h.store.Update(next)
	utils.RespondJSON(w, http.StatusOK, next)
}
