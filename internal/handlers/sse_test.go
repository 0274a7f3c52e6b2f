package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sales-dashboard/internal/models"
	"sales-dashboard/internal/services"
)

func newTestSSEHandlers(a *services.Analytics) *SSEHandlers {
	return NewSSEHandlers(a, testLogger())
}

func checkSSEResponse(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("content-type = %q, want text/event-stream", ct)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "no-cache" {
		t.Errorf("cache-control = %q, want no-cache", cc)
	}
	body := w.Body.String()
	if !strings.Contains(body, "event:") || !strings.Contains(body, "data:") {
		t.Error("response body should contain SSE frames")
	}
	return body
}

func TestSSEHandlers_HandleOverview(t *testing.T) {
	h := newTestSSEHandlers(createTestAnalytics())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/sse/overview", nil)
	h.HandleOverview(w, r)

	body := checkSSEResponse(t, w)
	if !strings.Contains(body, "metrics") || !strings.Contains(body, "statusCounts") {
		t.Error("overview should patch metrics and statusCounts signals")
	}
	if !strings.Contains(body, `"total_revenue":600`) {
		t.Errorf("overview signals should carry summed revenue, body: %s", body)
	}
}

func TestSSEHandlers_HandleReps(t *testing.T) {
	h := newTestSSEHandlers(createTestAnalytics())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/sse/reps", nil)
	h.HandleReps(w, r)

	body := checkSSEResponse(t, w)
	if !strings.Contains(body, "reps-content") {
		t.Error("reps handler should patch the #reps-content element")
	}
	for _, rep := range []string{"Amy", "Bob"} {
		if !strings.Contains(body, rep) {
			t.Errorf("rep table should list %s", rep)
		}
	}
	// Bob has the higher revenue and renders first.
	if strings.Index(body, "Bob") > strings.Index(body, "Amy") {
		t.Error("rep table should be ordered by revenue descending")
	}
}

func TestSSEHandlers_HandleReps_Filtered(t *testing.T) {
	h := newTestSSEHandlers(createTestAnalytics())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/sse/reps?rep=Amy", nil)
	h.HandleReps(w, r)

	body := checkSSEResponse(t, w)
	if !strings.Contains(body, "Amy") {
		t.Error("filtered table should keep the selected rep")
	}
	if strings.Contains(body, "Bob") {
		t.Error("filtered table should not list unselected reps")
	}
}

func TestSSEHandlers_HandleReps_BadDateFallsBack(t *testing.T) {
	h := newTestSSEHandlers(createTestAnalytics())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/sse/reps?start=not-a-date", nil)
	h.HandleReps(w, r)

	body := checkSSEResponse(t, w)
	if !strings.Contains(body, "Amy") || !strings.Contains(body, "Bob") {
		t.Error("an unparsable date should fall back to the unfiltered view")
	}
}

func TestSSEHandlers_HandleCustomers(t *testing.T) {
	h := newTestSSEHandlers(createTestAnalytics())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/sse/customers", nil)
	h.HandleCustomers(w, r)

	body := checkSSEResponse(t, w)
	if !strings.Contains(body, "customersData") {
		t.Error("customers handler should patch the customersData signal")
	}
	if !strings.Contains(body, "Acme") {
		t.Error("customer ranking should carry customer names")
	}
}

func TestSSEHandlers_HandleProducts(t *testing.T) {
	h := newTestSSEHandlers(createTestAnalytics())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/sse/products", nil)
	h.HandleProducts(w, r)

	body := checkSSEResponse(t, w)
	if !strings.Contains(body, "productMetrics") || !strings.Contains(body, "productsData") {
		t.Error("products handler should patch metrics and ranking signals")
	}
	if !strings.Contains(body, "SKU-2") {
		t.Error("product ranking should carry SKUs")
	}
}

func TestSSEHandlers_HandleTrends(t *testing.T) {
	h := newTestSSEHandlers(createTestAnalytics())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/sse/trends", nil)
	h.HandleTrends(w, r)

	body := checkSSEResponse(t, w)
	if !strings.Contains(body, "monthlyData") {
		t.Error("trends handler should patch the monthlyData signal")
	}
	if !strings.Contains(body, "2024-02") || !strings.Contains(body, "2024-03") {
		t.Error("trend signal should cover both months in the fixture")
	}
}

func TestSSEHandlers_HandleRefreshAll(t *testing.T) {
	h := newTestSSEHandlers(createTestAnalytics())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/sse/refresh-all", nil)
	h.HandleRefreshAll(w, r)

	body := checkSSEResponse(t, w)
	for _, signal := range []string{"metrics", "statusCounts", "customersData", "productsData", "monthlyData"} {
		if !strings.Contains(body, signal) {
			t.Errorf("refresh-all should patch the %s signal", signal)
		}
	}
	if !strings.Contains(body, "reps-content") {
		t.Error("refresh-all should also patch the rep table element")
	}
}

func TestSSEHandlers_EmptyAnalytics(t *testing.T) {
	h := newTestSSEHandlers(services.NewAnalytics(testLogger()))

	// Every stream should degrade to empty views, never panic or 500.
	routes := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"overview", h.HandleOverview},
		{"reps", h.HandleReps},
		{"customers", h.HandleCustomers},
		{"products", h.HandleProducts},
		{"trends", h.HandleTrends},
		{"refresh-all", h.HandleRefreshAll},
	}
	for _, tt := range routes {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", "/sse/"+tt.name, nil)
			tt.handler(w, r)
			checkSSEResponse(t, w)
		})
	}
}

func TestRenderRepTable_RowCap(t *testing.T) {
	h := newTestSSEHandlers(createTestAnalytics())

	many := make([]models.RepPerformance, maxTableRows+20)
	for i := range many {
		many[i] = models.RepPerformance{Rep: fmt.Sprintf("Rep %03d", i), Revenue: float64(i)}
	}

	html, err := h.renderRepTable(many)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := strings.Count(html, "<td>Rep "); got != maxTableRows {
		t.Errorf("rendered %d data rows, want %d", got, maxTableRows)
	}
}
