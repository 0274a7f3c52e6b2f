package services

import (
	"slices"
	"time"

	"sales-dashboard/internal/models"
)

// AllSentinel in a rep or status selection means "no restriction", mirroring
// the dashboard's default multi-select value.
const AllSentinel = "All"

// Filter is one user selection: an inclusive date interval on the order date's
// date component, plus optional rep and status sets. Zero times mean the bound
// is open; an empty set or one containing AllSentinel does not restrict.
type Filter struct {
	Start    time.Time
	End      time.Time
	Reps     []string
	Statuses []string
}

func (f Filter) restrictsDate() bool {
	return !f.Start.IsZero() || !f.End.IsZero()
}

func restricts(selection []string) bool {
	if len(selection) == 0 {
		return false
	}
	return !slices.Contains(selection, AllSentinel)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Apply evaluates the predicate conjunction {date range, rep membership,
// status membership} against the full canonical set and returns a new filtered
// slice. A predicate is skipped entirely when its field is absent from the
// dataset or the selection is unrestricted, so re-filtering always starts from
// the complete data.
func (f Filter) Apply(ds *models.Dataset) []models.Order {
	if ds == nil {
		return nil
	}

	filterDate := f.restrictsDate() && ds.Fields.Has(models.FieldOrderDate)
	filterReps := restricts(f.Reps) && ds.Fields.Has(models.FieldSalesRep)
	filterStatus := restricts(f.Statuses) && ds.Fields.Has(models.FieldStatus)

	out := make([]models.Order, 0, len(ds.Orders))
	for _, o := range ds.Orders {
		if filterDate && !f.matchesDate(o) {
			continue
		}
		if filterReps && !slices.Contains(f.Reps, o.SalesRep) {
			continue
		}
		if filterStatus && !slices.Contains(f.Statuses, o.Status) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// matchesDate compares only the date component; rows without a usable date
// never satisfy an active date predicate.
func (f Filter) matchesDate(o models.Order) bool {
	if !o.HasDate() {
		return false
	}
	d := dateOnly(o.OrderDate)
	if !f.Start.IsZero() && d.Before(dateOnly(f.Start)) {
		return false
	}
	if !f.End.IsZero() && d.After(dateOnly(f.End)) {
		return false
	}
	return true
}
