package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadTable parses an uploaded file into a raw Table, choosing the reader by
// filename extension: .xlsx/.xls go through excelize, everything else is read
// as comma-separated text. A corrupt file returns an empty table and an error;
// callers surface it as a warning and treat the dataset as "no usable data".
func ReadTable(content []byte, filename string) (Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return readXLSX(content)
	default:
		return readCSV(content)
	}
}

func readCSV(content []byte) (Table, error) {
	cr := csv.NewReader(bytes.NewReader(content))
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return Table{}, fmt.Errorf("empty file")
		}
		return Table{}, fmt.Errorf("read csv header: %w", err)
	}

	var rows [][]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read csv row: %w", err)
		}
		rows = append(rows, record)
	}

	return Table{Headers: header, Rows: rows}, nil
}

func readXLSX(content []byte) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return Table{}, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	return Table{Headers: rows[0], Rows: rows[1:]}, nil
}
