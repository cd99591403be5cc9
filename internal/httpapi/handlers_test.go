package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"ai-growth-planner/internal/app"
	"ai-growth-planner/internal/config"
	"ai-growth-planner/internal/llm"
	"ai-growth-planner/internal/logger"
	"ai-growth-planner/internal/planner"
	"ai-growth-planner/internal/shared"
	"ai-growth-planner/internal/storage"
)

type mockTextGenerator struct {
	response string
	err      error
	calls    int
}

func (m *mockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.calls++
	if m.err != nil {
		return llm.ContentResponse{}, m.err
	}
	return llm.ContentResponse{Content: m.response, Usage: shared.TokenUsage{Model: "test"}}, nil
}

const planResponse = `{
  "id": "plan-1",
  "idea": "Coffee cart",
  "steps": [
    {"title": "Position", "howTo": ["p0", "p1"]},
    {"title": "Acquire", "howTo": ["a0"]},
    {"title": "Retain", "howTo": ["r0"]}
  ]
}`

func newTestRouter(store storage.Store, mock *mockTextGenerator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	var gen *planner.Generator
	if mock != nil {
		gen = planner.NewGenerator(mock)
	}
	application := app.NewApp(&config.Config{}, logger.NewNop(), store, gen, nil, nil, nil)
	return NewRouter(application, logger.NewNop())
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(storage.NewMemStore(), nil)
	w := doJSON(t, router, http.MethodGet, "/healthcheck", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestGeneratePlanEndpoint(t *testing.T) {
	store := storage.NewMemStore()
	mock := &mockTextGenerator{response: planResponse}
	router := newTestRouter(store, mock)

	t.Run("empty idea is a client error without a provider call", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/plan", map[string]string{"idea": "  "})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
		if mock.calls != 0 {
			t.Errorf("provider called %d times for empty idea", mock.calls)
		}
	})

	t.Run("invalid body is a client error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader("{broken"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("successful generation persists the plan", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/plan", map[string]string{
			"idea":     "Coffee cart",
			"customer": "commuters",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}

		var resp struct {
			ID    string `json:"id"`
			Steps []any  `json:"steps"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if resp.ID != "plan-1" || len(resp.Steps) != 3 {
			t.Errorf("response = %s", w.Body.String())
		}
		if _, ok := store.Get(storage.LatestPlanKey); !ok {
			t.Error("plan not persisted")
		}
	})
}

func TestGeneratePlanUpstreamFailure(t *testing.T) {
	store := storage.NewMemStore()
	store.Set(storage.LatestPlanKey, `{"id":"prior","idea":"prior"}`)
	router := newTestRouter(store, &mockTextGenerator{err: errors.New("upstream down")})

	w := doJSON(t, router, http.MethodPost, "/api/plan", map[string]string{"idea": "Coffee cart"})
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}

	raw, ok := store.Get(storage.LatestPlanKey)
	if !ok || !strings.Contains(raw, "prior") {
		t.Error("failed generation must leave the prior plan untouched")
	}
}

func TestGeneratePlanNoProvider(t *testing.T) {
	router := newTestRouter(storage.NewMemStore(), nil)
	w := doJSON(t, router, http.MethodPost, "/api/plan", map[string]string{"idea": "Coffee cart"})
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 for missing credentials", w.Code)
	}
}

func TestGetPlanEndpoint(t *testing.T) {
	store := storage.NewMemStore()
	router := newTestRouter(store, nil)

	w := doJSON(t, router, http.MethodGet, "/api/plan", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 with no plan", w.Code)
	}

	store.Set(storage.LatestPlanKey, `{"id":"plan-9","idea":"Dog walking"}`)
	w = doJSON(t, router, http.MethodGet, "/api/plan", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "plan-9") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestDeletePlanEndpoint(t *testing.T) {
	store := storage.NewMemStore()
	store.Set(storage.LatestPlanKey, `{"id":"plan-9"}`)
	router := newTestRouter(store, nil)

	w := doJSON(t, router, http.MethodDelete, "/api/plan", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if _, ok := store.Get(storage.LatestPlanKey); ok {
		t.Error("plan not removed")
	}
}

func TestCalendarEndpoint(t *testing.T) {
	router := newTestRouter(storage.NewMemStore(), nil)

	w := doJSON(t, router, http.MethodGet, "/api/calendar", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Days     []struct{ Day int } `json:"days"`
		Identity string              `json:"identity"`
		Checks   map[string]bool     `json:"checks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(resp.Days) != 14 {
		t.Errorf("got %d days, want 14", len(resp.Days))
	}
	if resp.Identity == "" {
		t.Error("missing identity")
	}
}

func TestToggleAndResetEndpoints(t *testing.T) {
	store := storage.NewMemStore()
	router := newTestRouter(store, nil)

	w := doJSON(t, router, http.MethodPost, "/api/checks/toggle", map[string]int{"day": 3, "task": 1})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"done":true`) {
		t.Errorf("body = %s", w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/checks/toggle", map[string]int{"day": 3, "task": 1})
	if !strings.Contains(w.Body.String(), `"done":false`) {
		t.Errorf("double toggle should restore: %s", w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/checks/toggle", map[string]int{"day": 99, "task": 0})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for out-of-range day", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/checks/reset", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("reset status = %d", w.Code)
	}
}

func TestExportEndpoints(t *testing.T) {
	store := storage.NewMemStore()
	router := newTestRouter(store, nil)

	w := doJSON(t, router, http.MethodGet, "/api/export/plan", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 with no plan", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/export/calendar", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "14-Day Action Calendar") {
		t.Errorf("body = %s", w.Body.String())
	}

	store.Set(storage.LatestPlanKey, `{"id":"plan-9","idea":"Dog walking"}`)
	w = doJSON(t, router, http.MethodGet, "/api/export/plan", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Dog walking") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestClipEndpointValidation(t *testing.T) {
	router := newTestRouter(storage.NewMemStore(), nil)

	w := doJSON(t, router, http.MethodPost, "/api/clip", map[string]string{"url": ""})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for missing url", w.Code)
	}
}
