package store

import (
	"fmt"

	"github.com/laptopdoctor/shopdesk/pkg/types"
)

// FetchPage returns one page of a table's rows ordered by the first declared
// column, descending. An offset past the end of the table yields an empty
// page, not an error; that is how the pagination controller detects the end
// of the data.
func (s *Session) FetchPage(table string, limit, offset int) (types.Page, error) {
	page := types.Page{Offset: offset, Limit: limit}

	cols, err := s.Columns(table)
	if err != nil {
		return page, err
	}
	if len(cols) == 0 {
		return page, fmt.Errorf("table %s has no columns", table)
	}
	qt, err := quoteIdent(table)
	if err != nil {
		return page, err
	}
	qc, err := quoteIdent(cols[0].Name)
	if err != nil {
		return page, err
	}

	rows, err := s.db.Query(
		"SELECT * FROM "+qt+" ORDER BY "+qc+" DESC LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return page, fmt.Errorf("fetching page of %s: %w", table, err)
	}
	defer rows.Close()

	_, recs, err := collectRows(rows)
	if err != nil {
		return page, fmt.Errorf("scanning page of %s: %w", table, err)
	}
	page.Rows = recs
	return page, nil
}

// FetchBy returns every row of a table where column equals value, along with
// the column names.
func (s *Session) FetchBy(table, column, value string) ([]string, []types.Row, error) {
	qt, err := quoteIdent(table)
	if err != nil {
		return nil, nil, err
	}
	qc, err := quoteIdent(column)
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.db.Query("SELECT * FROM "+qt+" WHERE "+qc+" = ?", value)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching %s by %s: %w", table, column, err)
	}
	defer rows.Close()

	cols, recs, err := collectRows(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("scanning %s rows: %w", table, err)
	}
	return cols, recs, nil
}
