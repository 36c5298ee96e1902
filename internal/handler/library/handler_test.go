package library

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ninakotova/lumina/internal/model/category"
	"github.com/ninakotova/lumina/internal/model/template"
)

func setupRouter() (*chi.Mux, *category.Store, *template.Store) {
	categories := category.NewStore(nil)
	templates := template.NewStore(nil)
	handler := New(categories, templates)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, categories, templates
}

func TestCreateCategory(t *testing.T) {
	r, categories, _ := setupRouter()

	payload := []byte(`{"name":"Work","color":"#ff0000"}`)
	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var created category.Category
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if created.ID == "" || created.Name != "Work" {
		t.Fatalf("unexpected category: %+v", created)
	}
	if len(categories.List()) != 1 {
		t.Fatal("category not stored")
	}
}

func TestCreateCategoryRequiresName(t *testing.T) {
	r, _, _ := setupRouter()

	payload := []byte(`{"color":"#ff0000"}`)
	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestUpdateCategoryNotFound(t *testing.T) {
	r, _, _ := setupRouter()

	payload := []byte(`{"name":"X","color":"#000"}`)
	req := httptest.NewRequest(http.MethodPut, "/categories/missing", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestDeleteCategory(t *testing.T) {
	r, categories, _ := setupRouter()
	created := categories.Create("Work", "#fff")

	req := httptest.NewRequest(http.MethodDelete, "/categories/"+created.ID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if len(categories.List()) != 0 {
		t.Fatal("category not removed")
	}
}

func TestCreateTemplateDefaultsCategory(t *testing.T) {
	r, _, templates := setupRouter()

	payload := []byte(`{"title":"Review","content":"Review this code:"}`)
	req := httptest.NewRequest(http.MethodPost, "/templates", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	list := templates.List()
	if len(list) != 1 || list[0].Category != "general" {
		t.Fatalf("unexpected templates: %+v", list)
	}
}

func TestCreateTemplateRequiresTitleAndContent(t *testing.T) {
	r, _, _ := setupRouter()

	payload := []byte(`{"title":"only title"}`)
	req := httptest.NewRequest(http.MethodPost, "/templates", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestUpdateTemplate(t *testing.T) {
	r, _, templates := setupRouter()
	created := templates.Create("Old", "old content", "general")

	payload := []byte(`{"title":"New","content":"new content","category":"coding"}`)
	req := httptest.NewRequest(http.MethodPut, "/templates/"+created.ID, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	list := templates.List()
	if list[0].Title != "New" || list[0].Category != "coding" {
		t.Fatalf("update not applied: %+v", list[0])
	}
}
