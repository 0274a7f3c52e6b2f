package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Dashboard is the single page shell. All data arrives through the datastar
// SSE endpoints; the page itself carries only the layout, the upload form and
// the filter controls.
func Dashboard() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, dashboardHTML)
		return err
	})
}

const dashboardHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Sales Analytics Dashboard</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"></script>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Arial;background:#f8f9fa;color:#1f2430;margin:0;padding:20px}
h1{color:#667eea}
h2{color:#3498db}
.card{background:#fff;border:1px solid #e3e8f0;border-radius:12px;padding:16px;margin:12px 0}
.tiles{display:grid;grid-template-columns:repeat(4,1fr);gap:12px}
.tile{background:#fff;border:1px solid #e3e8f0;border-radius:12px;padding:14px;text-align:center}
.tile .value{font-size:1.5rem;font-weight:700}
.tabs button{background:#eef1f8;border:none;padding:8px 14px;border-radius:8px;margin-right:6px;cursor:pointer}
.tabs button.active{background:#667eea;color:#fff}
.modern-table{width:100%;border-collapse:collapse}
.modern-table th,.modern-table td{border-bottom:1px solid #e3e8f0;padding:8px;text-align:left}
.filters label{margin-right:12px}
</style>
</head>
<body data-signals="{metrics:{},statusCounts:[],customersData:[],productsData:[],productMetrics:{},monthlyData:[]}">
<h1>Sales Analytics Dashboard</h1>

<div class="card">
  <h2>Data Upload</h2>
  <form method="POST" action="/upload" enctype="multipart/form-data">
    <label>Sales file <input type="file" name="sales" required></label>
    <label>SKU file (optional) <input type="file" name="sku"></label>
    <button type="submit">Load</button>
  </form>
  <p>Accepted formats: CSV or XLSX. Expected sales columns: ORDER DATE, CUSTOMER ID/NAME, SALE REPRESENTATIVE, STATUS, TOTAL VALUES, TOTAL COMMISSION.</p>
</div>

<div class="card filters">
  <h2>Filters</h2>
  <label>From <input type="date" data-bind-start></label>
  <label>To <input type="date" data-bind-end></label>
  <button data-on-click="@get('/sse/refresh-all?start='+$start+'&end='+$end)">Apply</button>
</div>

<div class="tabs card">
  <button class="active" data-on-click="@get('/sse/overview')">Overview</button>
  <button data-on-click="@get('/sse/reps')">Sales Reps</button>
  <button data-on-click="@get('/sse/customers')">Customers</button>
  <button data-on-click="@get('/sse/products')">Products</button>
  <button data-on-click="@get('/sse/trends')">Trends</button>
</div>

<div class="tiles">
  <div class="tile"><div class="value" data-text="'$'+($metrics.total_revenue??0).toLocaleString()"></div><div>Revenue</div></div>
  <div class="tile"><div class="value" data-text="($metrics.total_orders??0).toLocaleString()"></div><div>Orders</div></div>
  <div class="tile"><div class="value" data-text="($metrics.unique_customers??0).toLocaleString()"></div><div>Customers</div></div>
  <div class="tile"><div class="value" data-text="'$'+($metrics.avg_order_value??0).toFixed(0)"></div><div>Avg Order</div></div>
</div>

<div class="card" id="overview-content" data-on-load="@get('/sse/overview')">Upload a sales file to begin.</div>
<div class="card" id="reps-content"></div>
<div class="card" id="customers-content"></div>
<div class="card" id="products-content"></div>
<div class="card" id="trends-content"></div>

</body>
</html>
`
