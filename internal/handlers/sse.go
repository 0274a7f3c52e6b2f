package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
	"golang.org/x/sync/errgroup"

	"sales-dashboard/internal/models"
	"sales-dashboard/internal/services"
)

const maxTableRows = 50

var repTableTemplate = template.Must(template.New("repTable").Parse(`
<div id="reps-content">
<table class="modern-table">
<thead><tr><th>Rep</th><th>Revenue</th><th>Orders</th><th>Customers</th><th>Commission</th></tr></thead>
<tbody>
{{range .}}<tr>
<td>{{.Rep}}</td>
<td><strong>${{printf "%.2f" .Revenue}}</strong></td>
<td>{{.Orders}}</td>
<td>{{.Customers}}</td>
<td>${{printf "%.2f" .Commission}}</td>
</tr>{{end}}
</tbody>
</table>
</div>`))

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

func sseFilter(r *http.Request) services.Filter {
	f, err := parseFilter(r)
	if err != nil {
		// A bad date in an SSE refresh falls back to the unfiltered view.
		return services.Filter{}
	}
	return f
}

func (h *SSEHandlers) renderRepTable(reps []models.RepPerformance) (string, error) {
	if len(reps) > maxTableRows {
		reps = reps[:maxTableRows]
	}
	var buf strings.Builder
	err := repTableTemplate.Execute(&buf, reps)
	return buf.String(), err
}

// HandleOverview pushes the metric tiles and status distribution.
func (h *SSEHandlers) HandleOverview(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	f := sseFilter(r)

	jsonData, err := json.Marshal(map[string]any{
		"metrics":      h.analytics.Summary(f),
		"statusCounts": h.analytics.StatusDistribution(f),
	})
	if err != nil {
		h.logger.Error("marshal overview data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	sse.PatchElements(`<div id="overview-content">Overview updated</div>`)

	if fl, ok := w.(http.Flusher); ok {
		fl.Flush()
	}
}

func (h *SSEHandlers) HandleReps(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	reps := h.analytics.TopReps(sseFilter(r), services.DefaultTopN)
	html, err := h.renderRepTable(reps)
	if err != nil {
		h.logger.Error("render rep table", "error", err)
		return
	}
	sse.PatchElements(html)

	if fl, ok := w.(http.Flusher); ok {
		fl.Flush()
	}
}

func (h *SSEHandlers) HandleCustomers(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	jsonData, err := json.Marshal(map[string]any{
		"customersData": h.analytics.TopCustomers(sseFilter(r), services.DefaultTopN),
	})
	if err != nil {
		h.logger.Error("marshal customers data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)
	sse.PatchElements(`<div id="customers-content">Customer chart data loaded</div>`)

	if fl, ok := w.(http.Flusher); ok {
		fl.Flush()
	}
}

func (h *SSEHandlers) HandleProducts(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	jsonData, err := json.Marshal(map[string]any{
		"productMetrics": h.analytics.ProductMetrics(),
		"productsData":   h.analytics.TopProducts(services.DefaultTopN),
	})
	if err != nil {
		h.logger.Error("marshal products data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)
	sse.PatchElements(`<div id="products-content">Product chart data loaded</div>`)

	if fl, ok := w.(http.Flusher); ok {
		fl.Flush()
	}
}

func (h *SSEHandlers) HandleTrends(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	jsonData, err := json.Marshal(map[string]any{
		"monthlyData": h.analytics.MonthlyTrend(sseFilter(r)),
	})
	if err != nil {
		h.logger.Error("marshal monthly data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)
	sse.PatchElements(`<div id="trends-content">Monthly trend data loaded</div>`)

	if fl, ok := w.(http.Flusher); ok {
		fl.Flush()
	}
}

// HandleRefreshAll recomputes every view for the current filter. The views are
// independent pure reads, so they run concurrently.
func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	f := sseFilter(r)

	var (
		metrics   models.Metrics
		statuses  []models.StatusCount
		reps      []models.RepPerformance
		customers []models.CustomerPerformance
		products  []models.ProductPerformance
		monthly   []models.MonthlyPoint
	)

	g, _ := errgroup.WithContext(r.Context())
	g.Go(func() error {
		metrics = h.analytics.Summary(f)
		statuses = h.analytics.StatusDistribution(f)
		return nil
	})
	g.Go(func() error {
		reps = h.analytics.TopReps(f, services.DefaultTopN)
		return nil
	})
	g.Go(func() error {
		customers = h.analytics.TopCustomers(f, services.DefaultTopN)
		return nil
	})
	g.Go(func() error {
		products = h.analytics.TopProducts(services.DefaultTopN)
		return nil
	})
	g.Go(func() error {
		monthly = h.analytics.MonthlyTrend(f)
		return nil
	})
	if err := g.Wait(); err != nil {
		h.logger.Error("refresh all views", "error", err)
		return
	}

	html, err := h.renderRepTable(reps)
	if err != nil {
		h.logger.Error("render rep table", "error", err)
		return
	}
	sse.PatchElements(html)

	allSignals, err := json.Marshal(map[string]any{
		"metrics":       metrics,
		"statusCounts":  statuses,
		"customersData": customers,
		"productsData":  products,
		"monthlyData":   monthly,
	})
	if err != nil {
		h.logger.Error("marshal refresh signals", "error", err)
		return
	}
	sse.PatchSignals(allSignals)

	if fl, ok := w.(http.Flusher); ok {
		fl.Flush()
	}
}
