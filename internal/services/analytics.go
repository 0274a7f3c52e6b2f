package services

import (
	"cmp"
	"log/slog"
	"slices"
	"sync"
	"time"

	"sales-dashboard/internal/models"
)

// DefaultTopN bounds ranked views when the request does not say otherwise.
const DefaultTopN = 10

// Analytics owns the session's canonical datasets and computes every view the
// dashboard renders. Aggregations are pure functions of the current data plus
// a Filter; they always recompute from the full canonical set rather than from
// a previously filtered one.
type Analytics struct {
	mu       sync.RWMutex
	sales    *models.Dataset
	items    *models.LineItemSet
	loadedAt time.Time
	logger   *slog.Logger
}

func NewAnalytics(logger *slog.Logger) *Analytics {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analytics{logger: logger}
}

// SetSales replaces the session's sales dataset wholesale.
func (a *Analytics) SetSales(ds *models.Dataset) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sales = ds
	a.loadedAt = time.Now()
	if ds != nil {
		a.logger.Info("sales dataset replaced", "records", len(ds.Orders), "warnings", len(ds.Warnings))
	}
}

// SetLineItems replaces the session's SKU/line-item dataset.
func (a *Analytics) SetLineItems(set *models.LineItemSet) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.items = set
	a.loadedAt = time.Now()
	if set != nil {
		a.logger.Info("line-item dataset replaced", "records", len(set.Items), "warnings", len(set.Warnings))
	}
}

func (a *Analytics) snapshot() (*models.Dataset, *models.LineItemSet) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sales, a.items
}

// HasData reports whether a usable sales dataset is loaded.
func (a *Analytics) HasData() bool {
	sales, _ := a.snapshot()
	return !sales.Empty()
}

// Summary computes the overview metric tiles for the filtered set. Empty input
// yields all-zero metrics, never a division error.
func (a *Analytics) Summary(f Filter) models.Metrics {
	sales, _ := a.snapshot()
	if sales == nil {
		return models.Metrics{}
	}
	orders := f.Apply(sales)

	m := models.Metrics{TotalOrders: len(orders)}
	customers := make(map[string]struct{})
	reps := make(map[string]struct{})

	for _, o := range orders {
		m.TotalRevenue += o.TotalValue
		m.TotalCommission += o.TotalCommission
		if o.CustomerID != "" {
			customers[o.CustomerID] = struct{}{}
		}
		if o.SalesRep != "" {
			reps[o.SalesRep] = struct{}{}
		}
	}

	m.UniqueCustomers = len(customers)
	m.UniqueReps = len(reps)
	if len(orders) > 0 {
		m.AvgOrderValue = m.TotalRevenue / float64(len(orders))
	}
	return m
}

// StatusDistribution counts orders per status, most frequent first. Rows with
// no status value do not form a bucket.
func (a *Analytics) StatusDistribution(f Filter) []models.StatusCount {
	sales, _ := a.snapshot()
	if sales == nil || !sales.Fields.Has(models.FieldStatus) {
		return []models.StatusCount{}
	}

	counts := make(map[string]int)
	for _, o := range f.Apply(sales) {
		if o.Status == "" {
			continue
		}
		counts[o.Status]++
	}

	out := make([]models.StatusCount, 0, len(counts))
	for status, n := range counts {
		out = append(out, models.StatusCount{Status: status, Count: n})
	}
	slices.SortFunc(out, func(x, y models.StatusCount) int {
		if c := cmp.Compare(y.Count, x.Count); c != 0 {
			return c
		}
		return cmp.Compare(x.Status, y.Status)
	})
	return out
}

// TopReps ranks sales representatives by summed revenue, descending, truncated
// to n. Ties break by rep name so the ranking is deterministic.
func (a *Analytics) TopReps(f Filter, n int) []models.RepPerformance {
	sales, _ := a.snapshot()
	if sales == nil || !sales.Fields.Has(models.FieldSalesRep) {
		return []models.RepPerformance{}
	}

	groups := make(map[string]*models.RepPerformance)
	repCustomers := make(map[string]map[string]struct{})

	for _, o := range f.Apply(sales) {
		if o.SalesRep == "" {
			continue
		}
		g := groups[o.SalesRep]
		if g == nil {
			g = &models.RepPerformance{Rep: o.SalesRep}
			groups[o.SalesRep] = g
			repCustomers[o.SalesRep] = make(map[string]struct{})
		}
		g.Revenue += o.TotalValue
		g.Commission += o.TotalCommission
		g.Orders++
		if o.CustomerID != "" {
			repCustomers[o.SalesRep][o.CustomerID] = struct{}{}
		}
	}

	out := make([]models.RepPerformance, 0, len(groups))
	for rep, g := range groups {
		g.Customers = len(repCustomers[rep])
		out = append(out, *g)
	}
	slices.SortFunc(out, func(x, y models.RepPerformance) int {
		if c := cmp.Compare(y.Revenue, x.Revenue); c != 0 {
			return c
		}
		return cmp.Compare(x.Rep, y.Rep)
	})
	return truncate(out, n)
}

// TopCustomers ranks (customer id, customer name) groups by summed revenue.
func (a *Analytics) TopCustomers(f Filter, n int) []models.CustomerPerformance {
	sales, _ := a.snapshot()
	if sales == nil || !sales.Fields.Has(models.FieldCustomerID) {
		return []models.CustomerPerformance{}
	}

	type key struct{ id, name string }
	groups := make(map[key]*models.CustomerPerformance)

	for _, o := range f.Apply(sales) {
		if o.CustomerID == "" {
			continue
		}
		k := key{o.CustomerID, o.CustomerName}
		g := groups[k]
		if g == nil {
			g = &models.CustomerPerformance{CustomerID: o.CustomerID, CustomerName: o.CustomerName}
			groups[k] = g
		}
		g.Revenue += o.TotalValue
		g.Orders++
	}

	out := make([]models.CustomerPerformance, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	slices.SortFunc(out, func(x, y models.CustomerPerformance) int {
		if c := cmp.Compare(y.Revenue, x.Revenue); c != 0 {
			return c
		}
		return cmp.Compare(x.CustomerID, y.CustomerID)
	})
	return truncate(out, n)
}

// TopProducts ranks SKUs by summed line total on the line-item set. The SKU
// dataset is independent and never passes through the sales filters.
func (a *Analytics) TopProducts(n int) []models.ProductPerformance {
	_, items := a.snapshot()
	if items == nil || !items.Fields.Has(models.FieldSKU) {
		return []models.ProductPerformance{}
	}

	type key struct{ sku, name string }
	withName := items.Fields.Has(models.FieldProductName)
	groups := make(map[key]*models.ProductPerformance)

	for _, it := range items.Items {
		if it.SKU == "" {
			continue
		}
		k := key{sku: it.SKU}
		if withName {
			k.name = it.ProductName
		}
		g := groups[k]
		if g == nil {
			g = &models.ProductPerformance{SKU: it.SKU, ProductName: k.name}
			groups[k] = g
		}
		g.Quantity += it.Quantity
		g.Revenue += it.LineTotal
	}

	out := make([]models.ProductPerformance, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	slices.SortFunc(out, func(x, y models.ProductPerformance) int {
		if c := cmp.Compare(y.Revenue, x.Revenue); c != 0 {
			return c
		}
		return cmp.Compare(x.SKU, y.SKU)
	})
	return truncate(out, n)
}

// ProductMetrics sums the whole line-item set for the products view tiles.
func (a *Analytics) ProductMetrics() models.ProductMetrics {
	_, items := a.snapshot()
	if items == nil || !items.Fields.Has(models.FieldSKU) {
		return models.ProductMetrics{}
	}

	var m models.ProductMetrics
	skus := make(map[string]struct{})
	for _, it := range items.Items {
		m.Revenue += it.LineTotal
		m.Units += it.Quantity
		if it.SKU != "" {
			skus[it.SKU] = struct{}{}
		}
	}
	m.UniqueSKUs = len(skus)
	return m
}

// MonthlyTrend groups the filtered set by YEAR_MONTH in chronological order.
// Rows without an order date have no month bucket and are excluded.
func (a *Analytics) MonthlyTrend(f Filter) []models.MonthlyPoint {
	sales, _ := a.snapshot()
	if sales == nil || !sales.Fields.Has(models.FieldOrderDate) {
		return []models.MonthlyPoint{}
	}

	groups := make(map[string]*models.MonthlyPoint)
	for _, o := range f.Apply(sales) {
		if o.YearMonth == "" {
			continue
		}
		g := groups[o.YearMonth]
		if g == nil {
			g = &models.MonthlyPoint{Month: o.YearMonth}
			groups[o.YearMonth] = g
		}
		g.Revenue += o.TotalValue
		g.Orders++
	}

	out := make([]models.MonthlyPoint, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	// "YYYY-MM" sorts lexicographically in chronological order.
	slices.SortFunc(out, func(x, y models.MonthlyPoint) int {
		return cmp.Compare(x.Month, y.Month)
	})
	return out
}

// FilterOptions lists the distinct rep and status values plus the date bounds
// of the full dataset, for populating the filter controls.
func (a *Analytics) FilterOptions() models.FilterOptions {
	sales, _ := a.snapshot()
	if sales.Empty() {
		return models.FilterOptions{Reps: []string{}, Statuses: []string{}}
	}

	repSet := make(map[string]struct{})
	statusSet := make(map[string]struct{})
	var minDate, maxDate time.Time

	for _, o := range sales.Orders {
		if o.SalesRep != "" {
			repSet[o.SalesRep] = struct{}{}
		}
		if o.Status != "" {
			statusSet[o.Status] = struct{}{}
		}
		if o.HasDate() {
			if minDate.IsZero() || o.OrderDate.Before(minDate) {
				minDate = o.OrderDate
			}
			if maxDate.IsZero() || o.OrderDate.After(maxDate) {
				maxDate = o.OrderDate
			}
		}
	}

	opts := models.FilterOptions{
		Reps:     sortedKeys(repSet),
		Statuses: sortedKeys(statusSet),
	}
	if !minDate.IsZero() {
		opts.MinDate = minDate.Format("2006-01-02")
		opts.MaxDate = maxDate.Format("2006-01-02")
	}
	return opts
}

// Stats reports dataset shape for the admin endpoint.
func (a *Analytics) Stats() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stats := map[string]any{
		"orders":     0,
		"line_items": 0,
	}
	if a.sales != nil {
		stats["orders"] = len(a.sales.Orders)
		stats["sales_fields"] = len(a.sales.Fields)
	}
	if a.items != nil {
		stats["line_items"] = len(a.items.Items)
		stats["item_fields"] = len(a.items.Fields)
	}
	if !a.loadedAt.IsZero() {
		stats["loaded_at"] = a.loadedAt
	}
	return stats
}

func truncate[T any](s []T, n int) []T {
	if n <= 0 {
		n = DefaultTopN
	}
	if len(s) > n {
		return s[:n]
	}
	return s
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
