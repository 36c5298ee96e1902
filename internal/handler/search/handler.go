package search

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	searchService "github.com/ninakotova/lumina/internal/service/search"
	"github.com/ninakotova/lumina/internal/service/session"
	"github.com/ninakotova/lumina/pkg/utils"
)

// Handler serves on-demand search over the chat collection.
type Handler struct {
	store *session.Store
}

// New creates the search handler.
func New(store *session.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the search route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/search", h.handleSearch)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results := searchService.Search(h.store.Chats(), query)
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": results,
	})
}
