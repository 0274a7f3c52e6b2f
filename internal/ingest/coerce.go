package ingest

import (
	"strconv"
	"strings"
	"time"
)

// dateCandidates is checked in priority order; the first column present in the
// table supplies the order date and the rest are ignored.
var dateCandidates = []string{"ORDER_DATE", "DATE", "CREATION_DATE"}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	"2006.01.02",
	"01-02-2006",
	"2006-01",
}

// DateColumn picks the index of the highest-priority date column, or -1 when
// none of the candidates is present.
func DateColumn(t Table) int {
	for _, name := range dateCandidates {
		if col := t.Column(name); col >= 0 {
			return col
		}
	}
	return -1
}

// CoerceDate parses a cell into a date. Unparsable input yields the zero time,
// never an error; rows with bad dates are kept and simply lack calendar fields.
func CoerceDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// CoerceNumber parses a cell into a number, treating anything unparsable as 0
// so that sums stay well-defined. Thousands separators and surrounding space
// are tolerated.
func CoerceNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
