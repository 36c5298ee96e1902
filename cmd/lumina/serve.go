package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ninakotova/lumina/internal/config"
	"github.com/ninakotova/lumina/internal/handler"
	"github.com/ninakotova/lumina/internal/model/category"
	"github.com/ninakotova/lumina/internal/model/chat"
	"github.com/ninakotova/lumina/internal/model/persona"
	"github.com/ninakotova/lumina/internal/model/settings"
	"github.com/ninakotova/lumina/internal/model/template"
	"github.com/ninakotova/lumina/internal/service/ai"
	"github.com/ninakotova/lumina/internal/service/conversation"
	"github.com/ninakotova/lumina/internal/service/playback"
	"github.com/ninakotova/lumina/internal/service/session"
	"github.com/ninakotova/lumina/internal/storage"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	sessions := session.NewStore()
	if data, ok, err := db.Load(storage.KeyChats); err != nil {
		return err
	} else if ok {
		sessions.Restore(storage.DecodeChats(data))
	}

	categories := category.NewStore(loadCategories(db))
	templates := template.NewStore(loadTemplates(db))
	personality := persona.NewStore(loadPersonality(db))
	appearance := settings.NewStore(loadAppearance(db))

	saver := storage.NewAutosaver(cfg.Storage.AutosaveInterval, appearance.Get().AutoSave, func() error {
		return saveSnapshot(db, sessions, categories, templates, personality, appearance)
	})

	sessions.OnChange(saver.Trigger)
	categories.OnChange(saver.Trigger)
	templates.OnChange(saver.Trigger)
	personality.OnChange(saver.Trigger)
	appearance.OnChange(func(next settings.Appearance) {
		saver.SetEnabled(next.AutoSave)
		saver.Trigger()
	})

	generator, err := newGenerator(ctx, cfg.AI)
	if err != nil {
		return err
	}

	engine := conversation.NewEngine(sessions, generator, playback.NewScheduler(playback.SystemClock()), personality)

	router := handler.NewRouter(handler.Deps{
		Sessions:    sessions,
		Engine:      engine,
		Personality: personality,
		Categories:  categories,
		Templates:   templates,
		Settings:    appearance,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Str("addr", cfg.Server.Addr).Msg("lumina backend listening")
	err = runServer(ctx, srv)

	engine.Stop()
	saver.Flush()
	return err
}

// newGenerator picks the provider from configuration. With no credentials
// the engine still runs; every turn surfaces the generation failure message.
func newGenerator(ctx context.Context, cfg config.AIConfig) (ai.Generator, error) {
	if !cfg.Enabled() {
		log.Warn().Str("provider", cfg.Provider).Msg("no generation credentials, responses will fail")
		return ai.GeneratorFunc(func(ctx context.Context, contextText string, images []chat.Image) (string, error) {
			return "", errors.New("no generation provider configured")
		}), nil
	}

	switch cfg.Provider {
	case "gemini":
		return ai.NewGemini(ai.GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
		}), nil
	case "openai":
		return ai.NewOpenAI(ai.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		}), nil
	case "ark":
		chatModel, err := cfg.NewArkChatModel(ctx)
		if err != nil {
			return nil, err
		}
		return ai.NewArk(ctx, chatModel)
	default:
		return nil, errors.New("unknown AI provider: " + cfg.Provider)
	}
}

func loadCategories(db *storage.Store) []category.Category {
	data, ok, err := db.Load(storage.KeyCategories)
	if err != nil || !ok {
		return nil
	}
	return storage.DecodeCategories(data)
}

func loadTemplates(db *storage.Store) []template.Template {
	data, ok, err := db.Load(storage.KeyTemplates)
	if err != nil || !ok {
		return nil
	}
	return storage.DecodeTemplates(data)
}

func loadPersonality(db *storage.Store) persona.Profile {
	data, ok, err := db.Load(storage.KeyPersonality)
	if err != nil || !ok {
		return persona.DefaultProfile()
	}
	return storage.DecodePersonality(data)
}

func loadAppearance(db *storage.Store) settings.Appearance {
	data, ok, err := db.Load(storage.KeyAppearance)
	if err != nil || !ok {
		return settings.Default()
	}
	return storage.DecodeAppearance(data)
}

func saveSnapshot(db *storage.Store, sessions *session.Store, categories *category.Store, templates *template.Store, personality *persona.Store, appearance *settings.Store) error {
	chats, err := storage.EncodeChats(sessions.Chats())
	if err != nil {
		return err
	}
	if err := db.Save(storage.KeyChats, chats); err != nil {
		return err
	}
	if err := saveJSON(db, storage.KeyCategories, categories.List()); err != nil {
		return err
	}
	if err := saveJSON(db, storage.KeyTemplates, templates.List()); err != nil {
		return err
	}
	if err := saveJSON(db, storage.KeyPersonality, personality.Profile()); err != nil {
		return err
	}
	return saveJSON(db, storage.KeyAppearance, appearance.Get())
}

func saveJSON(db *storage.Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return db.Save(key, data)
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
