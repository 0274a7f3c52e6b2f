package models

import "time"

// Field names the canonical columns the pipeline can produce. Downstream
// components check availability against a FieldSet instead of re-inspecting
// raw column headers.
type Field string

const (
	FieldOrderDate       Field = "ORDER_DATE"
	FieldTotalValues     Field = "TOTAL_VALUES"
	FieldTotalCommission Field = "TOTAL_COMMISSION"
	FieldTotalItems      Field = "TOTAL_ITEM"
	FieldCustomerID      Field = "CUSTOMER_ID"
	FieldCustomerName    Field = "CUSTOMER_NAME"
	FieldSalesRep        Field = "SALE_REPRESENTATIVE"
	FieldStatus          Field = "STATUS"
	FieldOrderNumber     Field = "ORDER_NUMBER"

	FieldOrderID     Field = "ORDER_ID"
	FieldSKU         Field = "SKU"
	FieldProductName Field = "PRODUCT_NAME"
	FieldQuantity    Field = "QUANTITY"
	FieldUnitPrice   Field = "UNIT_PRICE"
	FieldLineTotal   Field = "LINE_TOTAL"
)

// FieldSet records which canonical fields were present in the source file.
type FieldSet map[Field]struct{}

func NewFieldSet(fields ...Field) FieldSet {
	fs := make(FieldSet, len(fields))
	for _, f := range fields {
		fs[f] = struct{}{}
	}
	return fs
}

func (fs FieldSet) Add(f Field) {
	fs[f] = struct{}{}
}

func (fs FieldSet) Has(f Field) bool {
	_, ok := fs[f]
	return ok
}

// Order is one canonical sales record. A zero OrderDate means the source date
// was absent or unparsable; derived calendar fields are empty in that case.
type Order struct {
	OrderDate       time.Time
	OrderNumber     string
	CustomerID      string
	CustomerName    string
	SalesRep        string
	Status          string
	TotalValue      float64
	TotalCommission float64
	TotalItems      float64

	YearMonth string
	Year      int
	Month     int
}

// HasDate reports whether the record carries a usable order date.
func (o Order) HasDate() bool {
	return !o.OrderDate.IsZero()
}

// LineItem is one canonical order line from the SKU dataset.
type LineItem struct {
	OrderID     string
	OrderDate   time.Time
	SKU         string
	ProductName string
	Quantity    float64
	UnitPrice   float64
	LineTotal   float64
	YearMonth   string
}

// Dataset is the canonical sales record set for one uploaded file, together
// with the fields the file actually provided and any ingest warnings.
type Dataset struct {
	Orders   []Order
	Fields   FieldSet
	Warnings []string
}

func (d *Dataset) Empty() bool {
	return d == nil || len(d.Orders) == 0
}

// LineItemSet is the canonical SKU/line-item set. It is an independent dataset
// and is never date/rep/status filtered.
type LineItemSet struct {
	Items    []LineItem
	Fields   FieldSet
	Warnings []string
}

func (s *LineItemSet) Empty() bool {
	return s == nil || len(s.Items) == 0
}
