package models

// Metrics is the overview tile bundle for the filtered sales set.
type Metrics struct {
	TotalRevenue    float64 `json:"total_revenue"`
	TotalOrders     int     `json:"total_orders"`
	TotalCommission float64 `json:"total_commission"`
	UniqueCustomers int     `json:"unique_customers"`
	AvgOrderValue   float64 `json:"avg_order_value"`
	UniqueReps      int     `json:"unique_reps"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type RepPerformance struct {
	Rep        string  `json:"rep"`
	Revenue    float64 `json:"revenue"`
	Orders     int     `json:"orders"`
	Customers  int     `json:"customers"`
	Commission float64 `json:"commission"`
}

type CustomerPerformance struct {
	CustomerID   string  `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	Revenue      float64 `json:"revenue"`
	Orders       int     `json:"orders"`
}

type ProductPerformance struct {
	SKU         string  `json:"sku"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

// ProductMetrics summarizes the whole line-item set for the products view.
type ProductMetrics struct {
	Revenue    float64 `json:"revenue"`
	Units      float64 `json:"units"`
	UniqueSKUs int     `json:"unique_skus"`
}

type MonthlyPoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// FilterOptions feeds the dashboard filter controls: the distinct values and
// date bounds of the full (unfiltered) dataset.
type FilterOptions struct {
	Reps     []string `json:"reps"`
	Statuses []string `json:"statuses"`
	MinDate  string   `json:"min_date,omitempty"`
	MaxDate  string   `json:"max_date,omitempty"`
}
