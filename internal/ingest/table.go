package ingest

// Table is an untyped tabular file as read from an upload: a header row plus
// string cell rows. Cells keep whatever text the source had; typing happens
// later in the pipeline.
type Table struct {
	Headers []string
	Rows    [][]string
}

func (t Table) Empty() bool {
	return len(t.Headers) == 0 || len(t.Rows) == 0
}

// Column returns the index of the named header, or -1.
func (t Table) Column(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), or "" when the row is ragged or the
// column is absent.
func (t Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
