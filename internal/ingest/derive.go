package ingest

import (
	"fmt"
	"time"

	"sales-dashboard/internal/models"
)

// calendarFields derives the month bucket fields from an order date. Zero
// dates produce empty/zero derived fields.
func calendarFields(d time.Time) (yearMonth string, year, month int) {
	if d.IsZero() {
		return "", 0, 0
	}
	return fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month())), d.Year(), int(d.Month())
}

// applyLineTotalFallback recomputes LINE_TOTAL as QUANTITY x UNIT_PRICE for
// every row when the source column summed to exactly zero across the whole
// table, a signal it was never populated. A nonzero sum means the source
// values are trusted row-by-row, even if individual rows look inconsistent.
func applyLineTotalFallback(items []models.LineItem, fields models.FieldSet) {
	if !fields.Has(models.FieldLineTotal) {
		return
	}
	if !fields.Has(models.FieldQuantity) || !fields.Has(models.FieldUnitPrice) {
		return
	}

	var sum float64
	for _, it := range items {
		sum += it.LineTotal
	}
	if sum != 0 {
		return
	}

	for i := range items {
		items[i].LineTotal = items[i].Quantity * items[i].UnitPrice
	}
}
