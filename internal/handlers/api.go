package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
)

const cacheControl = "no-store"

type APIHandlers struct {
	analytics   *services.Analytics
	logger      *slog.Logger
	defaultTopN int
	maxTopN     int
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger, data config.DataConfig) *APIHandlers {
	defaultTopN := data.DefaultTopN
	if defaultTopN <= 0 {
		defaultTopN = services.DefaultTopN
	}
	maxTopN := data.MaxTopN
	if maxTopN < defaultTopN {
		maxTopN = defaultTopN
	}
	return &APIHandlers{
		analytics:   analytics,
		logger:      logger,
		defaultTopN: defaultTopN,
		maxTopN:     maxTopN,
	}
}

// parseFilter reads the shared filter query params: start, end (YYYY-MM-DD),
// repeated rep and status values.
func parseFilter(r *http.Request) (services.Filter, error) {
	q := r.URL.Query()
	var f services.Filter

	if s := q.Get("start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, errors.BadRequestWrap(err, "invalid start date, expected YYYY-MM-DD")
		}
		f.Start = t
	}
	if s := q.Get("end"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, errors.BadRequestWrap(err, "invalid end date, expected YYYY-MM-DD")
		}
		f.End = t
	}
	f.Reps = q["rep"]
	f.Statuses = q["status"]
	return f, nil
}

func (h *APIHandlers) parseLimit(r *http.Request) int {
	s := r.URL.Query().Get("limit")
	if s == "" {
		return h.defaultTopN
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return h.defaultTopN
	}
	if n > h.maxTopN {
		return h.maxTopN
	}
	return n
}

// withFilter wraps the common handler shape: require data, parse the filter,
// compute, respond.
func (h *APIHandlers) withFilter(w http.ResponseWriter, r *http.Request, compute func(services.Filter) any) {
	requestID := observability.GetRequestID(r.Context())

	if !h.analytics.HasData() {
		errors.WriteError(w, h.logger, errors.NoData("no sales data uploaded yet"), requestID)
		return
	}

	f, err := parseFilter(r)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	errors.WriteSuccessWithHeaders(w, compute(f), map[string]string{
		"Cache-Control": cacheControl,
	})
}

func (h *APIHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	h.withFilter(w, r, func(f services.Filter) any {
		return h.analytics.Summary(f)
	})
}

func (h *APIHandlers) HandleStatusDistribution(w http.ResponseWriter, r *http.Request) {
	h.withFilter(w, r, func(f services.Filter) any {
		return h.analytics.StatusDistribution(f)
	})
}

func (h *APIHandlers) HandleRepRanking(w http.ResponseWriter, r *http.Request) {
	limit := h.parseLimit(r)
	h.withFilter(w, r, func(f services.Filter) any {
		return h.analytics.TopReps(f, limit)
	})
}

func (h *APIHandlers) HandleCustomerRanking(w http.ResponseWriter, r *http.Request) {
	limit := h.parseLimit(r)
	h.withFilter(w, r, func(f services.Filter) any {
		return h.analytics.TopCustomers(f, limit)
	})
}

// HandleProductRanking serves the SKU view. The line-item set is independent
// of the sales filters, so no filter parsing happens here.
func (h *APIHandlers) HandleProductRanking(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())
	if !h.analytics.HasData() {
		errors.WriteError(w, h.logger, errors.NoData("no sales data uploaded yet"), requestID)
		return
	}

	payload := map[string]any{
		"metrics":  h.analytics.ProductMetrics(),
		"products": h.analytics.TopProducts(h.parseLimit(r)),
	}
	errors.WriteSuccessWithHeaders(w, payload, map[string]string{
		"Cache-Control": cacheControl,
	})
}

func (h *APIHandlers) HandleMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	h.withFilter(w, r, func(f services.Filter) any {
		return h.analytics.MonthlyTrend(f)
	})
}

// HandleFilterOptions feeds the dashboard's filter controls.
func (h *APIHandlers) HandleFilterOptions(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.analytics.FilterOptions())
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.analytics.Stats())
}
