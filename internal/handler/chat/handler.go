package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ninakotova/lumina/internal/export"
	chatModel "github.com/ninakotova/lumina/internal/model/chat"
	"github.com/ninakotova/lumina/internal/service/conversation"
	"github.com/ninakotova/lumina/internal/service/session"
	"github.com/ninakotova/lumina/pkg/utils"
)

// Handler serves the chat collection and the conversation turn endpoints.
type Handler struct {
	store  *session.Store
	engine *conversation.Engine
}

// New creates the chat handler.
func New(store *session.Store, engine *conversation.Engine) *Handler {
	return &Handler{store: store, engine: engine}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chats", h.handleListChats)
	r.Post("/chats", h.handleCreateChat)
	r.Delete("/chats/{chatID}", h.handleDeleteChat)
	r.Post("/chats/{chatID}/select", h.handleSelectChat)
	r.Put("/chats/{chatID}/category", h.handleSetCategory)
	r.Get("/chats/{chatID}/export", h.handleExportChat)
	r.Post("/send", h.handleSend)
	r.Post("/stop", h.handleStop)
	r.Get("/status", h.handleStatus)
}

func (h *Handler) handleListChats(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"chats":         h.store.Chats(),
		"currentChatId": h.store.CurrentChatID(),
	})
}

func (h *Handler) handleCreateChat(w http.ResponseWriter, r *http.Request) {
	c := h.engine.NewChat()
	utils.RespondJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleDeleteChat(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")
	h.store.DeleteChat(chatID)
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"currentChatId": h.store.CurrentChatID(),
	})
}

func (h *Handler) handleSelectChat(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")
	if !h.store.SelectChat(chatID) {
		utils.RespondError(w, http.StatusNotFound, "chat not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"currentChatId": chatID})
}

func (h *Handler) handleSetCategory(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	var payload struct {
		CategoryID string `json:"categoryId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.store.SetCategory(chatID, payload.CategoryID) {
		utils.RespondError(w, http.StatusNotFound, "chat not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) handleExportChat(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")
	c, ok := h.store.Chat(chatID)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "chat not found")
		return
	}

	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatMarkdown
	}

	data, contentType, err := export.Render(c, format)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(c, format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Prompt string            `json:"prompt"`
		Images []chatModel.Image `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.engine.Send(r.Context(), payload.Prompt, payload.Images); err != nil {
		if errors.Is(err, conversation.ErrBusy) {
			utils.RespondError(w, http.StatusConflict, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusAccepted, map[string]any{
		"currentChatId": h.store.CurrentChatID(),
		"isGenerating":  h.engine.IsGenerating(),
	})
}

func (h *Handler) handleStop(w http.ResponseWriter, r *http.Request) {
	h.engine.Stop()
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"isGenerating": false})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"isGenerating":  h.engine.IsGenerating(),
		"currentChatId": h.store.CurrentChatID(),
	})
}
