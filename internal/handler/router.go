package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ninakotova/lumina/internal/handler/attachment"
	"github.com/ninakotova/lumina/internal/handler/chat"
	"github.com/ninakotova/lumina/internal/handler/library"
	"github.com/ninakotova/lumina/internal/handler/persona"
	"github.com/ninakotova/lumina/internal/handler/search"
	"github.com/ninakotova/lumina/internal/handler/settings"
	"github.com/ninakotova/lumina/internal/handler/stream"
	middlewarePkg "github.com/ninakotova/lumina/internal/middleware"
	categoryModel "github.com/ninakotova/lumina/internal/model/category"
	personaModel "github.com/ninakotova/lumina/internal/model/persona"
	settingsModel "github.com/ninakotova/lumina/internal/model/settings"
	templateModel "github.com/ninakotova/lumina/internal/model/template"
	"github.com/ninakotova/lumina/internal/service/conversation"
	"github.com/ninakotova/lumina/internal/service/session"
)

// Deps gathers the stores and services the HTTP surface exposes.
type Deps struct {
	Sessions    *session.Store
	Engine      *conversation.Engine
	Personality *personaModel.Store
	Categories  *categoryModel.Store
	Templates   *templateModel.Store
	Settings    *settingsModel.Store
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatHandler := chat.New(deps.Sessions, deps.Engine)
	searchHandler := search.New(deps.Sessions)
	streamHandler := stream.New(deps.Engine.Events())
	personaHandler := persona.New(deps.Personality)
	libraryHandler := library.New(deps.Categories, deps.Templates)
	settingsHandler := settings.New(deps.Settings)
	attachmentHandler := attachment.New(deps.Engine)

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
		searchHandler.RegisterRoutes(api)
		streamHandler.RegisterRoutes(api)
		personaHandler.RegisterRoutes(api)
		libraryHandler.RegisterRoutes(api)
		settingsHandler.RegisterRoutes(api)
		attachmentHandler.RegisterRoutes(api)
	})

	return r
}
