// Package export writes tables and query results to Excel workbooks.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/laptopdoctor/shopdesk/internal/store"
	"github.com/laptopdoctor/shopdesk/pkg/types"
)

// EnsureExtension appends .xlsx when path lacks it.
func EnsureExtension(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return path
	}
	return path + ".xlsx"
}

// Sheet is one worksheet's worth of data: a header row and its rows.
type Sheet struct {
	Name string
	Cols []string
	Rows []types.Row
}

// Workbook writes the sheets to one workbook at path and returns the path
// actually written. At least one sheet is required.
func Workbook(sheets []Sheet, path string) (string, error) {
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook needs at least one sheet")
	}
	wb := excelize.NewFile()
	defer wb.Close()
	for i, sheet := range sheets {
		if i == 0 {
			// Reuse the default sheet for the first table.
			if err := wb.SetSheetName(wb.GetSheetName(0), sheet.Name); err != nil {
				return "", fmt.Errorf("naming sheet %s: %w", sheet.Name, err)
			}
		} else {
			if _, err := wb.NewSheet(sheet.Name); err != nil {
				return "", fmt.Errorf("adding sheet %s: %w", sheet.Name, err)
			}
		}
		if err := writeSheet(wb, sheet.Name, sheet.Cols, sheet.Rows); err != nil {
			return "", fmt.Errorf("writing sheet %s: %w", sheet.Name, err)
		}
	}
	path = EnsureExtension(path)
	if err := wb.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving workbook: %w", err)
	}
	return path, nil
}

// Database writes every table to its own sheet in one workbook at path and
// returns the path actually written.
func Database(sess *store.Session, path string) (string, error) {
	tables, err := sess.Tables()
	if err != nil {
		return "", fmt.Errorf("listing tables: %w", err)
	}
	sheets := make([]Sheet, 0, len(tables))
	for _, table := range tables {
		cols, rows, err := sess.RunQuery(fmt.Sprintf("SELECT * FROM `%s`", table))
		if err != nil {
			return "", fmt.Errorf("reading table %s: %w", table, err)
		}
		sheets = append(sheets, Sheet{Name: table, Cols: cols, Rows: rows})
	}
	return Workbook(sheets, path)
}

// Query writes one result set to a single-sheet workbook at path and returns
// the path actually written.
func Query(cols []string, rows []types.Row, path string) (string, error) {
	return Workbook([]Sheet{{Name: "Results", Cols: cols, Rows: rows}}, path)
}

// writeSheet lays out a header row followed by the data rows.
func writeSheet(wb *excelize.File, sheet string, cols []string, rows []types.Row) error {
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	if err := wb.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		vals := make([]any, len(row))
		for j, v := range row {
			vals[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+2, err)
		}
		if err := wb.SetSheetRow(sheet, cell, &vals); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return nil
}
