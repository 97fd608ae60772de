// Package report assembles the customer report: starting from one job, it
// gathers the owning customer's record and everything else in the database
// tied to that customer.
package report

import (
	"fmt"
	"strings"

	"github.com/laptopdoctor/shopdesk/internal/export"
	"github.com/laptopdoctor/shopdesk/internal/store"
	"github.com/laptopdoctor/shopdesk/pkg/types"
)

// customerKeyColumn is the column linking tables to a customer, matched
// case-insensitively.
const customerKeyColumn = "CustomerID"

// Section is one table's rows for the customer.
type Section struct {
	Table string
	Cols  []string
	Rows  []types.Row
}

// Report is everything on file for one customer, discovered from a job.
type Report struct {
	JobID      string
	CustomerID string
	Sections   []Section
}

// Customer resolves the job's customer and collects that customer's rows
// from every table carrying a customer-key column. Tables without the
// column are skipped; a job whose key does not resolve returns
// types.ErrStaleRow.
func Customer(sess *store.Session, jobID string) (*Report, error) {
	pkCol, err := sess.PrimaryKey(types.JobsTable)
	if err != nil {
		return nil, fmt.Errorf("inspecting jobs table: %w", err)
	}
	customerID, err := sess.Field(types.JobsTable, customerKeyColumn, pkCol, jobID)
	if err != nil {
		return nil, fmt.Errorf("resolving customer for job %s: %w", jobID, err)
	}

	tables, err := sess.Tables()
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}

	r := &Report{JobID: jobID, CustomerID: customerID}
	for _, table := range tables {
		keyCol, ok, err := customerColumn(sess, table)
		if err != nil {
			return nil, fmt.Errorf("inspecting table %s: %w", table, err)
		}
		if !ok {
			continue
		}
		cols, rows, err := sess.FetchBy(table, keyCol, customerID)
		if err != nil {
			return nil, fmt.Errorf("reading %s rows for customer %s: %w", table, customerID, err)
		}
		r.Sections = append(r.Sections, Section{Table: table, Cols: cols, Rows: rows})
	}
	return r, nil
}

// customerColumn returns the table's customer-key column name, when present.
func customerColumn(sess *store.Session, table string) (string, bool, error) {
	cols, err := sess.Columns(table)
	if err != nil {
		return "", false, err
	}
	for _, col := range cols {
		if strings.EqualFold(col.Name, customerKeyColumn) {
			return col.Name, true, nil
		}
	}
	return "", false, nil
}

// Export writes the report to an Excel workbook, one sheet per section, and
// returns the path actually written.
func (r *Report) Export(path string) (string, error) {
	if len(r.Sections) == 0 {
		return "", fmt.Errorf("report for job %s has no sections", r.JobID)
	}
	sheets := make([]export.Sheet, len(r.Sections))
	for i, sec := range r.Sections {
		sheets[i] = export.Sheet{Name: sec.Table, Cols: sec.Cols, Rows: sec.Rows}
	}
	return export.Workbook(sheets, path)
}
