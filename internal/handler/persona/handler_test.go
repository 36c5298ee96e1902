package persona

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	personaModel "github.com/ninakotova/lumina/internal/model/persona"
)

func setupRouter() (*chi.Mux, *personaModel.Store) {
	store := personaModel.NewStore(personaModel.DefaultProfile())
	handler := New(store)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, store
}

func TestGetProfile(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/personality", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var profile personaModel.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if profile.Tone == "" {
		t.Fatal("default profile should carry a tone")
	}
}

func TestUpdateProfilePresetFillsEmptyKnobs(t *testing.T) {
	r, store := setupRouter()
	presets := store.Presets()
	if len(presets) == 0 {
		t.Fatal("expected seeded presets")
	}

	payload, _ := json.Marshal(map[string]string{"preset": presets[0].ID})
	req := httptest.NewRequest(http.MethodPut, "/personality", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	got := store.Profile()
	if got.Tone != presets[0].Tone || got.Style != presets[0].Style {
		t.Fatalf("preset knobs not applied: %+v", got)
	}
}

func TestUpdateProfileExplicitKnobsWin(t *testing.T) {
	r, store := setupRouter()
	presets := store.Presets()

	payload, _ := json.Marshal(map[string]string{
		"preset": presets[0].ID,
		"tone":   "sarcastic",
	})
	req := httptest.NewRequest(http.MethodPut, "/personality", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if store.Profile().Tone != "sarcastic" {
		t.Fatalf("explicit tone should win, got %s", store.Profile().Tone)
	}
}

func TestListPresets(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/personality/presets", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var presets []personaModel.Preset
	if err := json.NewDecoder(resp.Body).Decode(&presets); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(presets) != 5 {
		t.Fatalf("expected 5 presets, got %d", len(presets))
	}
}
