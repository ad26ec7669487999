// Package export writes list views as XLSX workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the workbooks written by WriteXLSX.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet is one worksheet: a header row followed by data rows.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
	Widths  []float64
}

// WriteXLSX renders sheet into a new workbook and writes it to w.
func WriteXLSX(w io.Writer, sheet Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet.Name)
	if err != nil {
		return fmt.Errorf("export: new sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if sheet.Name != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("export: drop default sheet: %w", err)
		}
	}

	for i, h := range sheet.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet.Name, cell, h); err != nil {
			return err
		}
	}
	for r, row := range sheet.Rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet.Name, cell, v); err != nil {
				return err
			}
		}
	}
	for i, width := range sheet.Widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet.Name, name, name, width); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}
