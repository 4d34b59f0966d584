package ingest

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Sheet is one decoded tab: a name plus header-less rows. Rows are ragged;
// use the cell helper instead of indexing directly.
type Sheet struct {
	Name string
	Rows [][]string
}

// Workbook is an ordered list of decoded sheets.
type Workbook struct {
	Sheets []Sheet
}

// cell returns the raw value at idx, or "" when the row is shorter.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// OpenWorkbook decodes an uploaded spreadsheet into raw sheets. Cell values
// come back unformatted so date columns keep their numeric serials.
func OpenWorkbook(data []byte, filename string) (*Workbook, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".xls" {
		return openXLS(data)
	}
	return openXLSX(data)
}

func openXLSX(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: name, Rows: rows})
	}
	return wb, nil
}

func openXLS(data []byte) (*Workbook, error) {
	f, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	wb := &Workbook{}
	for i := 0; i < f.NumSheets(); i++ {
		sheet := f.GetSheet(i)
		if sheet == nil {
			continue
		}
		rows := make([][]string, 0, int(sheet.MaxRow)+1)
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			vals := make([]string, 0, row.LastCol())
			for c := 0; c < row.LastCol(); c++ {
				if c < row.FirstCol() {
					vals = append(vals, "")
					continue
				}
				vals = append(vals, row.Col(c))
			}
			rows = append(rows, vals)
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: sheet.Name, Rows: rows})
	}
	return wb, nil
}
