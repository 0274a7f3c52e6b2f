package ingest

import (
	"testing"
	"time"

	"sales-dashboard/internal/models"
)

func TestCalendarFields(t *testing.T) {
	ym, year, month := calendarFields(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC))
	if ym != "2024-03" || year != 2024 || month != 3 {
		t.Errorf("got %q/%d/%d, want 2024-03/2024/3", ym, year, month)
	}

	ym, year, month = calendarFields(time.Date(987, 11, 30, 0, 0, 0, 0, time.UTC))
	if ym != "0987-11" {
		t.Errorf("year should be zero-padded, got %q", ym)
	}
	if year != 987 || month != 11 {
		t.Errorf("got %d/%d, want 987/11", year, month)
	}

	ym, year, month = calendarFields(time.Time{})
	if ym != "" || year != 0 || month != 0 {
		t.Errorf("zero date should derive empty fields, got %q/%d/%d", ym, year, month)
	}
}

func TestApplyLineTotalFallback(t *testing.T) {
	fullFields := models.NewFieldSet(models.FieldLineTotal, models.FieldQuantity, models.FieldUnitPrice)

	t.Run("zero sum recomputes", func(t *testing.T) {
		items := []models.LineItem{
			{Quantity: 2, UnitPrice: 10, LineTotal: 0},
			{Quantity: 3, UnitPrice: 5, LineTotal: 0},
		}

		applyLineTotalFallback(items, fullFields)

		if items[0].LineTotal != 20 || items[1].LineTotal != 15 {
			t.Errorf("totals = %v/%v, want 20/15", items[0].LineTotal, items[1].LineTotal)
		}
	})

	t.Run("nonzero sum trusted", func(t *testing.T) {
		items := []models.LineItem{
			{Quantity: 2, UnitPrice: 10, LineTotal: 19},
			{Quantity: 3, UnitPrice: 5, LineTotal: 0},
		}

		applyLineTotalFallback(items, fullFields)

		if items[0].LineTotal != 19 || items[1].LineTotal != 0 {
			t.Error("a populated column must not be recomputed, even partially")
		}
	})

	t.Run("cancelling sum recomputes", func(t *testing.T) {
		items := []models.LineItem{
			{Quantity: 1, UnitPrice: 10, LineTotal: 5},
			{Quantity: 1, UnitPrice: 10, LineTotal: -5},
		}

		applyLineTotalFallback(items, fullFields)

		if items[0].LineTotal != 10 || items[1].LineTotal != 10 {
			t.Error("a column summing to exactly zero triggers the fallback")
		}
	})

	t.Run("missing inputs leave totals alone", func(t *testing.T) {
		items := []models.LineItem{{Quantity: 2, LineTotal: 0}}

		applyLineTotalFallback(items, models.NewFieldSet(models.FieldLineTotal, models.FieldQuantity))

		if items[0].LineTotal != 0 {
			t.Error("fallback needs both quantity and unit price columns")
		}
	})

	t.Run("missing total column is a no-op", func(t *testing.T) {
		items := []models.LineItem{{Quantity: 2, UnitPrice: 10}}

		applyLineTotalFallback(items, models.NewFieldSet(models.FieldQuantity, models.FieldUnitPrice))

		if items[0].LineTotal != 0 {
			t.Error("no LINE_TOTAL column means nothing to repair")
		}
	})
}
