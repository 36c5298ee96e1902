package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	chatModel "github.com/ninakotova/lumina/internal/model/chat"
	"github.com/ninakotova/lumina/internal/model/persona"
	"github.com/ninakotova/lumina/internal/service/ai"
	"github.com/ninakotova/lumina/internal/service/conversation"
	"github.com/ninakotova/lumina/internal/service/playback"
	"github.com/ninakotova/lumina/internal/service/session"
)

func setupRouter() (*chi.Mux, *session.Store) {
	store := session.NewStore()
	gen := ai.GeneratorFunc(func(ctx context.Context, contextText string, images []chatModel.Image) (string, error) {
		return "stub answer", nil
	})
	engine := conversation.NewEngine(store, gen, playback.NewScheduler(playback.SystemClock()), persona.NewStore(persona.DefaultProfile()))
	handler := New(store, engine)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, store
}

func TestCreateChat(t *testing.T) {
	r, store := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/chats", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var created chatModel.Chat
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if created.Title != chatModel.DefaultTitle {
		t.Fatalf("unexpected title: %s", created.Title)
	}
	if store.CurrentChatID() != created.ID {
		t.Fatal("new chat should be current")
	}
}

func TestListChats(t *testing.T) {
	r, store := setupRouter()
	c := store.CreateChat()

	req := httptest.NewRequest(http.MethodGet, "/chats", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Chats         []chatModel.Chat `json:"chats"`
		CurrentChatID string           `json:"currentChatId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(body.Chats) != 1 || body.CurrentChatID != c.ID {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestDeleteChatRepointsCurrent(t *testing.T) {
	r, store := setupRouter()
	older := store.CreateChat()
	newer := store.CreateChat()

	req := httptest.NewRequest(http.MethodDelete, "/chats/"+newer.ID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if store.CurrentChatID() != older.ID {
		t.Fatal("current should repoint to the remaining chat")
	}
}

func TestSelectChatNotFound(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/chats/missing/select", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestSetCategory(t *testing.T) {
	r, store := setupRouter()
	c := store.CreateChat()

	payload := []byte(`{"categoryId":"work"}`)
	req := httptest.NewRequest(http.MethodPut, "/chats/"+c.ID+"/category", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	got, _ := store.Chat(c.ID)
	if got.CategoryID != "work" {
		t.Fatalf("unexpected category: %s", got.CategoryID)
	}
}

func TestSendAcceptsTurn(t *testing.T) {
	r, store := setupRouter()

	payload := []byte(`{"prompt":"hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/send", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", resp.Code)
	}
	if store.CurrentChatID() == "" {
		t.Fatal("send without a chat should create one")
	}

	// Playback is asynchronous; wait for the stub answer to land.
	deadline := time.Now().Add(2 * time.Second)
	for {
		current, ok := store.CurrentChat()
		if ok && len(current.Messages) == 2 && strings.Contains(current.Messages[1].Content, "stub answer") {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("assistant response never arrived")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSendInvalidBody(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader("{broken"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestStatus(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		IsGenerating bool `json:"isGenerating"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if body.IsGenerating {
		t.Fatal("fresh engine should not be generating")
	}
}

func TestExportChatMarkdown(t *testing.T) {
	r, store := setupRouter()
	c := store.CreateChat()
	store.AppendTurn(c.ID, session.NewUserMessage("question", nil), session.NewAssistantPlaceholder())

	req := httptest.NewRequest(http.MethodGet, "/chats/"+c.ID+"/export?format=markdown", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "text/markdown" {
		t.Fatalf("unexpected content type: %s", ct)
	}
	if !strings.Contains(resp.Body.String(), "**You**: question") {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestExportChatUnknownFormat(t *testing.T) {
	r, store := setupRouter()
	c := store.CreateChat()

	req := httptest.NewRequest(http.MethodGet, "/chats/"+c.ID+"/export?format=pdf", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestExportChatNotFound(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/chats/missing/export", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
