package settings

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	settingsModel "github.com/ninakotova/lumina/internal/model/settings"
)

func setupRouter() (*chi.Mux, *settingsModel.Store) {
	store := settingsModel.NewStore(settingsModel.Default())
	handler := New(store)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, store
}

func TestGetSettings(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var got settingsModel.Appearance
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if got.Theme != "dark" || !got.AutoSave {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}

func TestUpdateSettingsPartialPayloadKeepsRest(t *testing.T) {
	r, store := setupRouter()

	payload := []byte(`{"theme":"light"}`)
	req := httptest.NewRequest(http.MethodPut, "/settings", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	got := store.Get()
	if got.Theme != "light" {
		t.Fatalf("theme not updated: %s", got.Theme)
	}
	if got.FontSize != "medium" || !got.AutoSave {
		t.Fatalf("unrelated fields changed: %+v", got)
	}
}

func TestUpdateSettingsRejectsUnknownTheme(t *testing.T) {
	r, store := setupRouter()

	payload := []byte(`{"theme":"sepia"}`)
	req := httptest.NewRequest(http.MethodPut, "/settings", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if store.Get().Theme != "dark" {
		t.Fatal("rejected update must not change state")
	}
}

func TestUpdateSettingsNotifiesAutosaveToggle(t *testing.T) {
	r, store := setupRouter()

	var observed []bool
	store.OnChange(func(next settingsModel.Appearance) {
		observed = append(observed, next.AutoSave)
	})

	payload := []byte(`{"theme":"dark","fontSize":"medium","soundEnabled":true,"autoSave":false}`)
	req := httptest.NewRequest(http.MethodPut, "/settings", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if len(observed) != 1 || observed[0] {
		t.Fatalf("autosave toggle not observed: %v", observed)
	}
}
