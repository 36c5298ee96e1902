package persona

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ninakotova/lumina/internal/model/persona"
	"github.com/ninakotova/lumina/pkg/utils"
)

// Handler serves the personality profile and its preset catalogue.
type Handler struct {
	personality *persona.Store
}

// New creates the personality handler.
func New(personality *persona.Store) *Handler {
	return &Handler{personality: personality}
}

// RegisterRoutes mounts the personality routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personality", h.handleGetProfile)
	r.Put("/personality", h.handleUpdateProfile)
	r.Get("/personality/presets", h.handleListPresets)
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.personality.Profile())
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var payload persona.Profile
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Selecting a preset fills the knobs the payload left empty.
	if payload.Preset != "" {
		if preset, ok := h.personality.FindPreset(payload.Preset); ok {
			if payload.Tone == "" {
				payload.Tone = preset.Tone
			}
			if payload.Style == "" {
				payload.Style = preset.Style
			}
			if payload.Expertise == "" {
				payload.Expertise = preset.Expertise
			}
		}
	}

	h.personality.Update(payload)
	utils.RespondJSON(w, http.StatusOK, h.personality.Profile())
}

func (h *Handler) handleListPresets(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.personality.Presets())
}
