package ingest

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"sales-dashboard/internal/models"
)

// Loader turns uploaded files into canonical datasets, memoizing parse results
// by content hash so re-uploading the same bytes skips the pipeline. The cache
// belongs to the loader instance, not the process; each session constructs its
// own.
type Loader struct {
	mu     sync.Mutex
	sales  map[[sha256.Size]byte]*models.Dataset
	items  map[[sha256.Size]byte]*models.LineItemSet
	logger *slog.Logger
}

func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{
		sales:  make(map[[sha256.Size]byte]*models.Dataset),
		items:  make(map[[sha256.Size]byte]*models.LineItemSet),
		logger: logger,
	}
}

// LoadSales runs the full pipeline for a sales/orders file: read, normalize
// headers, coerce types, derive calendar fields. Never fails; a corrupt file
// yields an empty dataset carrying a warning.
func (l *Loader) LoadSales(content []byte, filename string) *models.Dataset {
	key := sha256.Sum256(content)

	l.mu.Lock()
	if ds, ok := l.sales[key]; ok {
		l.mu.Unlock()
		l.logger.Debug("sales dataset served from cache", "filename", filename)
		return ds
	}
	l.mu.Unlock()

	ds := l.buildSales(content, filename)

	l.mu.Lock()
	l.sales[key] = ds
	l.mu.Unlock()
	return ds
}

// LoadLineItems is LoadSales for the optional SKU/line-item file.
func (l *Loader) LoadLineItems(content []byte, filename string) *models.LineItemSet {
	key := sha256.Sum256(content)

	l.mu.Lock()
	if set, ok := l.items[key]; ok {
		l.mu.Unlock()
		l.logger.Debug("line-item dataset served from cache", "filename", filename)
		return set
	}
	l.mu.Unlock()

	set := l.buildLineItems(content, filename)

	l.mu.Lock()
	l.items[key] = set
	l.mu.Unlock()
	return set
}

// columnMap resolves canonical fields to column indexes, recording each found
// field in the dataset's FieldSet as a side effect.
type columnMap map[models.Field]int

func newColumnMap(t Table, fields models.FieldSet, wanted ...models.Field) columnMap {
	cm := make(columnMap, len(wanted))
	for _, f := range wanted {
		if col := t.Column(string(f)); col >= 0 {
			fields.Add(f)
			cm[f] = col
		}
	}
	return cm
}

func (cm columnMap) index(f models.Field) int {
	if col, ok := cm[f]; ok {
		return col
	}
	return -1
}

func (l *Loader) buildSales(content []byte, filename string) *models.Dataset {
	raw, err := ReadTable(content, filename)
	if err != nil {
		l.logger.Warn("unreadable sales file", "filename", filename, "error", err)
		return &models.Dataset{
			Fields:   models.NewFieldSet(),
			Warnings: []string{fmt.Sprintf("could not read %s: %v", filename, err)},
		}
	}

	t := NormalizeSales(raw)
	fields := models.NewFieldSet()

	dateCol := DateColumn(t)
	if dateCol >= 0 {
		fields.Add(models.FieldOrderDate)
	}

	cols := newColumnMap(t, fields,
		models.FieldOrderNumber,
		models.FieldCustomerID,
		models.FieldCustomerName,
		models.FieldSalesRep,
		models.FieldStatus,
		models.FieldTotalItems,
		models.FieldTotalValues,
		models.FieldTotalCommission,
	)

	orders := make([]models.Order, 0, len(t.Rows))
	for _, row := range t.Rows {
		o := models.Order{
			OrderNumber:     strings.TrimSpace(t.Cell(row, cols.index(models.FieldOrderNumber))),
			CustomerID:      strings.TrimSpace(t.Cell(row, cols.index(models.FieldCustomerID))),
			CustomerName:    strings.TrimSpace(t.Cell(row, cols.index(models.FieldCustomerName))),
			SalesRep:        strings.TrimSpace(t.Cell(row, cols.index(models.FieldSalesRep))),
			Status:          strings.TrimSpace(t.Cell(row, cols.index(models.FieldStatus))),
			TotalValue:      CoerceNumber(t.Cell(row, cols.index(models.FieldTotalValues))),
			TotalCommission: CoerceNumber(t.Cell(row, cols.index(models.FieldTotalCommission))),
			TotalItems:      CoerceNumber(t.Cell(row, cols.index(models.FieldTotalItems))),
		}
		if dateCol >= 0 {
			o.OrderDate = CoerceDate(t.Cell(row, dateCol))
			o.YearMonth, o.Year, o.Month = calendarFields(o.OrderDate)
		}
		orders = append(orders, o)
	}

	l.logger.Info("sales dataset loaded",
		"filename", filename,
		"records", len(orders),
		"fields", len(fields),
	)

	return &models.Dataset{Orders: orders, Fields: fields}
}

func (l *Loader) buildLineItems(content []byte, filename string) *models.LineItemSet {
	raw, err := ReadTable(content, filename)
	if err != nil {
		l.logger.Warn("unreadable line-item file", "filename", filename, "error", err)
		return &models.LineItemSet{
			Fields:   models.NewFieldSet(),
			Warnings: []string{fmt.Sprintf("could not read %s: %v", filename, err)},
		}
	}

	t := NormalizeSKU(raw)
	fields := models.NewFieldSet()

	cols := newColumnMap(t, fields,
		models.FieldOrderID,
		models.FieldOrderDate,
		models.FieldSKU,
		models.FieldProductName,
		models.FieldQuantity,
		models.FieldUnitPrice,
		models.FieldLineTotal,
	)

	items := make([]models.LineItem, 0, len(t.Rows))
	for _, row := range t.Rows {
		it := models.LineItem{
			OrderID:     strings.TrimSpace(t.Cell(row, cols.index(models.FieldOrderID))),
			SKU:         strings.TrimSpace(t.Cell(row, cols.index(models.FieldSKU))),
			ProductName: strings.TrimSpace(t.Cell(row, cols.index(models.FieldProductName))),
			Quantity:    CoerceNumber(t.Cell(row, cols.index(models.FieldQuantity))),
			UnitPrice:   CoerceNumber(t.Cell(row, cols.index(models.FieldUnitPrice))),
			LineTotal:   CoerceNumber(t.Cell(row, cols.index(models.FieldLineTotal))),
		}
		if col := cols.index(models.FieldOrderDate); col >= 0 {
			it.OrderDate = CoerceDate(t.Cell(row, col))
			it.YearMonth, _, _ = calendarFields(it.OrderDate)
		}
		items = append(items, it)
	}

	applyLineTotalFallback(items, fields)

	l.logger.Info("line-item dataset loaded",
		"filename", filename,
		"records", len(items),
		"fields", len(fields),
	)

	return &models.LineItemSet{Items: items, Fields: fields}
}
