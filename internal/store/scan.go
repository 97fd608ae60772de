package store

import (
	"database/sql"

	"github.com/laptopdoctor/shopdesk/pkg/types"
)

// scanAny scans the current row of a result set whose shape is not known at
// compile time. Every value comes back as display text; NULL scans to "".
func scanAny(rows *sql.Rows) (types.Row, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	vals := make([]sql.NullString, len(names))
	ptrs := make([]any, len(names))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	rec := make(types.Row, len(names))
	for i, v := range vals {
		if v.Valid {
			rec[i] = v.String
		}
	}
	return rec, nil
}

// collectRows drains a result set into columns and rows.
func collectRows(rows *sql.Rows) ([]string, []types.Row, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out []types.Row
	for rows.Next() {
		rec, err := scanAny(rows)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, rec)
	}
	return names, out, rows.Err()
}
