package ingest

import (
	"slices"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestTable_Column(t *testing.T) {
	tbl := Table{Headers: []string{"ORDER_DATE", "STATUS"}}

	if got := tbl.Column("STATUS"); got != 1 {
		t.Errorf("Column(STATUS) = %d, want 1", got)
	}
	if got := tbl.Column("MISSING"); got != -1 {
		t.Errorf("Column(MISSING) = %d, want -1", got)
	}
}

func TestTable_Cell(t *testing.T) {
	row := []string{"a", "b"}
	var tbl Table

	if got := tbl.Cell(row, 1); got != "b" {
		t.Errorf("Cell = %q, want b", got)
	}
	if got := tbl.Cell(row, 5); got != "" {
		t.Errorf("out-of-range cell = %q, want empty", got)
	}
	if got := tbl.Cell(row, -1); got != "" {
		t.Errorf("absent column cell = %q, want empty", got)
	}
}

func TestReadTable_CSV(t *testing.T) {
	content := []byte("order date,status\n2024-03-05,done\n2024-03-06,draft\n")

	tbl, err := ReadTable(content, "orders.csv")
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}

	if !slices.Equal(tbl.Headers, []string{"order date", "status"}) {
		t.Errorf("headers = %v", tbl.Headers)
	}
	if len(tbl.Rows) != 2 || tbl.Rows[1][1] != "draft" {
		t.Errorf("rows = %v", tbl.Rows)
	}
}

func TestReadTable_CSVRagged(t *testing.T) {
	content := []byte("a,b,c\n1,2\n1,2,3,4\n")

	tbl, err := ReadTable(content, "ragged.csv")
	if err != nil {
		t.Fatalf("ragged rows should be tolerated: %v", err)
	}
	if len(tbl.Rows) != 2 {
		t.Errorf("got %d rows, want 2", len(tbl.Rows))
	}
}

func TestReadTable_EmptyCSV(t *testing.T) {
	if _, err := ReadTable(nil, "empty.csv"); err == nil {
		t.Error("empty file should error")
	}
}

func TestReadTable_XLSX(t *testing.T) {
	content := buildXLSX(t, [][]any{
		{"Order Date", "Status", "Total Values"},
		{"2024-03-05", "done", 100},
		{"2024-03-06", "draft", 200},
	})

	tbl, err := ReadTable(content, "orders.xlsx")
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}

	if !slices.Equal(tbl.Headers, []string{"Order Date", "Status", "Total Values"}) {
		t.Errorf("headers = %v", tbl.Headers)
	}
	if len(tbl.Rows) != 2 || tbl.Rows[0][1] != "done" {
		t.Errorf("rows = %v", tbl.Rows)
	}
}

func TestReadTable_CorruptXLSX(t *testing.T) {
	if _, err := ReadTable([]byte("this is not a workbook"), "broken.xlsx"); err == nil {
		t.Error("corrupt workbook should error")
	}
}

func buildXLSX(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
