package library

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ninakotova/lumina/internal/model/category"
	"github.com/ninakotova/lumina/internal/model/template"
	"github.com/ninakotova/lumina/pkg/utils"
)

// Handler serves the simple CRUD lists: chat categories and prompt
// templates.
type Handler struct {
	categories *category.Store
	templates  *template.Store
}

// New creates the library handler.
func New(categories *category.Store, templates *template.Store) *Handler {
	return &Handler{categories: categories, templates: templates}
}

// RegisterRoutes mounts the category and template routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/categories", h.handleListCategories)
	r.Post("/categories", h.handleCreateCategory)
	r.Put("/categories/{categoryID}", h.handleUpdateCategory)
	r.Delete("/categories/{categoryID}", h.handleDeleteCategory)

	r.Get("/templates", h.handleListTemplates)
	r.Post("/templates", h.handleCreateTemplate)
	r.Put("/templates/{templateID}", h.handleUpdateTemplate)
	r.Delete("/templates/{templateID}", h.handleDeleteTemplate)
}

type categoryPayload struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.categories.List())
}

func (h *Handler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var payload categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" {
		utils.RespondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if payload.Color == "" {
		payload.Color = "#8b5cf6"
	}
	utils.RespondJSON(w, http.StatusCreated, h.categories.Create(payload.Name, payload.Color))
}

func (h *Handler) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var payload categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !h.categories.Update(chi.URLParam(r, "categoryID"), payload.Name, payload.Color) {
		utils.RespondError(w, http.StatusNotFound, "category not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if !h.categories.Delete(chi.URLParam(r, "categoryID")) {
		utils.RespondError(w, http.StatusNotFound, "category not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type templatePayload struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

func (h *Handler) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.templates.List())
}

func (h *Handler) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var payload templatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Title == "" || payload.Content == "" {
		utils.RespondError(w, http.StatusBadRequest, "title and content are required")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, h.templates.Create(payload.Title, payload.Content, payload.Category))
}

func (h *Handler) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var payload templatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !h.templates.Update(chi.URLParam(r, "templateID"), payload.Title, payload.Content, payload.Category) {
		utils.RespondError(w, http.StatusNotFound, "template not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if !h.templates.Delete(chi.URLParam(r, "templateID")) {
		utils.RespondError(w, http.StatusNotFound, "template not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
