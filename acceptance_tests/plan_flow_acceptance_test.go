package acceptance_tests

import (
	"bytes"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"weekly-meal-planner/internal/catalog"
	"weekly-meal-planner/internal/server"
)

const catalogJSON = `[
	{
		"name": "Oat Bowl",
		"type": ["breakfast"],
		"difficulty": "easy",
		"meal_prep": true,
		"default_portions": 2,
		"ingredients": [{"item": "oats", "quantity": 200, "unit": "g"}],
		"recipe": "Simmer oats in milk."
	},
	{
		"name": "Pasta",
		"type": ["lunch", "dinner"],
		"difficulty": "medium",
		"default_portions": 4,
		"ingredients": [
			{"item": "pasta", "quantity": 500, "unit": "g"},
			{"item": "tomato", "quantity": 3, "unit": "x"}
		],
		"recipe": "Boil, sauce, serve."
	},
	{
		"name": "Garden Salad",
		"type": ["lunch", "dinner"],
		"difficulty": "easy",
		"is_salad": true,
		"ingredients": [{"item": "lettuce", "quantity": 1, "unit": "head"}],
		"recipe": "Toss everything."
	}
]`

// The full session flow: load the catalog from disk, fill the week via the
// API, generate, and download both artifacts.
func TestPlanningFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "meals.json")
	if err := os.WriteFile(path, []byte(catalogJSON), 0644); err != nil {
		t.Fatalf("Failed to write catalog: %v", err)
	}

	cat, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	router := server.New(zap.NewNop(), cat, "", path).Router()

	do := func(method, target, body string) *httptest.ResponseRecorder {
		t.Helper()
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, target, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, target, nil)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// Empty plan: generation warns, no artifacts.
	if w := do(http.MethodPost, "/api/generate", ""); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422 for an empty plan, got %d", w.Code)
	}

	// Fill a few cells, including a salad riding on a main and a stale
	// reference that must be skipped.
	steps := []struct {
		method, target, body string
		wantCode             int
	}{
		{http.MethodPut, "/api/plan/Sunday/Breakfast/main", `{"meal":"Oat Bowl","people":3}`, http.StatusOK},
		{http.MethodPut, "/api/plan/Monday/Dinner/main", `{"meal":"Pasta","people":4}`, http.StatusOK},
		{http.MethodPut, "/api/plan/Monday/Dinner/salad", `{"meal":"Garden Salad"}`, http.StatusOK},
		{http.MethodPut, "/api/plan/Friday/Lunch/main", `{"meal":"Ghost Meal","people":2}`, http.StatusNotFound},
	}
	for _, s := range steps {
		if w := do(s.method, s.target, s.body); w.Code != s.wantCode {
			t.Fatalf("%s %s: expected %d, got %d: %s", s.method, s.target, s.wantCode, w.Code, w.Body.String())
		}
	}

	// Shopping list artifact.
	w := do(http.MethodGet, "/export/shopping-list", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for shopping list export, got %d", w.Code)
	}
	text := w.Body.String()
	for _, want := range []string{
		"Your Shopping List",
		"- lettuce: 4 head", // salad scaled by the main's 4 people
		"- oats: 300 g",     // 200 * 3/2
		"- pasta: 500 g",
		"- tomato: 3 x",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected shopping list to contain %q, got:\n%s", want, text)
		}
	}
	wantName := "shopping_list_" + time.Now().Format("2006-01-02") + ".txt"
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, wantName) {
		t.Errorf("Expected attachment name %q, got %q", wantName, cd)
	}

	// Timetable artifact.
	w = do(http.MethodGet, "/export/timetable", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for timetable export, got %d", w.Code)
	}
	if _, err := png.Decode(bytes.NewReader(w.Body.Bytes())); err != nil {
		t.Fatalf("Expected a decodable PNG timetable: %v", err)
	}

	// Clearing the main leaves the salad, so the plan still generates.
	if w := do(http.MethodDelete, "/api/plan/Monday/Dinner/main", ""); w.Code != http.StatusOK {
		t.Fatalf("Expected 200 clearing main, got %d", w.Code)
	}
	w = do(http.MethodGet, "/export/shopping-list", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 after clearing main, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "- lettuce: 1 head") {
		t.Errorf("Expected lone salad to fall back to 1 person, got:\n%s", w.Body.String())
	}

	// Reset empties the session.
	if w := do(http.MethodPost, "/api/plan/reset", ""); w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for reset, got %d", w.Code)
	}
	if w := do(http.MethodPost, "/api/generate", ""); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422 after reset, got %d", w.Code)
	}
}
