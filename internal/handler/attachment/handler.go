package attachment

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/ninakotova/lumina/internal/extract"
	"github.com/ninakotova/lumina/internal/model/chat"
	"github.com/ninakotova/lumina/internal/service/conversation"
	"github.com/ninakotova/lumina/pkg/utils"
)

// uploadLimit caps the multipart body; the extractor enforces its own
// per-file limit on top.
const uploadLimit = 12 << 20

// Handler serves the composer attachment surface: file text extraction and
// the pending image list consumed by the next turn.
type Handler struct {
	engine *conversation.Engine
}

// New creates the attachment handler.
func New(engine *conversation.Engine) *Handler {
	return &Handler{engine: engine}
}

// RegisterRoutes mounts the attachment routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/extract", h.handleExtract)
	r.Get("/attachments", h.handleListImages)
	r.Post("/attachments", h.handleAttachImage)
	r.Delete("/attachments", h.handleClearImages)
}

func (h *Handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, uploadLimit)
	if err := r.ParseMultipartForm(uploadLimit); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("reading upload")
		utils.RespondError(w, http.StatusInternalServerError, "failed to read upload")
		return
	}

	result, err := extract.Process(header.Filename, data)
	if err != nil {
		utils.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

type attachImageRequest struct {
	Base64   string `json:"base64"`
	MimeType string `json:"mimeType"`
}

func (h *Handler) handleAttachImage(w http.ResponseWriter, r *http.Request) {
	var req attachImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Base64 == "" {
		utils.RespondError(w, http.StatusBadRequest, "base64 is required")
		return
	}
	if req.MimeType == "" {
		req.MimeType = "image/png"
	}
	h.engine.AttachImage(chat.Image{Base64: req.Base64, MimeType: req.MimeType})
	utils.RespondJSON(w, http.StatusOK, map[string]int{"pending": len(h.engine.PendingImages())})
}

func (h *Handler) handleListImages(w http.ResponseWriter, r *http.Request) {
	images := h.engine.PendingImages()
	if images == nil {
		images = []chat.Image{}
	}
	utils.RespondJSON(w, http.StatusOK, images)
}

func (h *Handler) handleClearImages(w http.ResponseWriter, r *http.Request) {
	h.engine.ClearAttachments()
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
