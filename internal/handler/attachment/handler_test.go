package attachment

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	chatModel "github.com/ninakotova/lumina/internal/model/chat"
	"github.com/ninakotova/lumina/internal/model/persona"
	"github.com/ninakotova/lumina/internal/service/ai"
	"github.com/ninakotova/lumina/internal/service/conversation"
	"github.com/ninakotova/lumina/internal/service/playback"
	"github.com/ninakotova/lumina/internal/service/session"
)

func setupRouter() (*chi.Mux, *conversation.Engine) {
	store := session.NewStore()
	gen := ai.GeneratorFunc(func(ctx context.Context, contextText string, images []chatModel.Image) (string, error) {
		return "ok", nil
	})
	engine := conversation.NewEngine(store, gen, playback.NewScheduler(playback.SystemClock()), persona.NewStore(persona.DefaultProfile()))
	handler := New(engine)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, engine
}

func multipartUpload(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("CreateFormFile err: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write err: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close err: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestExtractTextFile(t *testing.T) {
	r, _ := setupRouter()
	body, contentType := multipartUpload(t, "notes.txt", []byte("meeting notes"))

	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result struct {
		Kind    string `json:"kind"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if result.Kind != "text" || result.Content != "meeting notes" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestExtractUnsupportedType(t *testing.T) {
	r, _ := setupRouter()
	body, contentType := multipartUpload(t, "photo.bmp", []byte{0x42, 0x4d})

	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestExtractMissingFileField(t *testing.T) {
	r, _ := setupRouter()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/extract", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestAttachAndClearImages(t *testing.T) {
	r, engine := setupRouter()

	payload := []byte(`{"base64":"aGVsbG8=","mimeType":"image/jpeg"}`)
	req := httptest.NewRequest(http.MethodPost, "/attachments", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if len(engine.PendingImages()) != 1 {
		t.Fatal("image not attached")
	}

	req = httptest.NewRequest(http.MethodDelete, "/attachments", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if len(engine.PendingImages()) != 0 {
		t.Fatal("attachments not cleared")
	}
}

func TestAttachImageRequiresBase64(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/attachments", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
