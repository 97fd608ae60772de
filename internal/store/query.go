package store

import (
	"fmt"
	"strings"

	"github.com/laptopdoctor/shopdesk/pkg/types"
)

// RunQuery executes ad-hoc SQL typed by the user. Statements that produce a
// result set come back as columns plus rows; statements that don't (UPDATE,
// INSERT, DDL) come back with a single synthetic "rows affected" cell.
func (s *Session) RunQuery(sqlText string) ([]string, []types.Row, error) {
	trimmed := strings.TrimSpace(sqlText)
	if trimmed == "" {
		return nil, nil, fmt.Errorf("empty query")
	}

	head := strings.ToUpper(firstWord(trimmed))
	switch head {
	case "SELECT", "SHOW", "DESCRIBE", "DESC", "EXPLAIN", "PRAGMA", "WITH":
		rows, err := s.db.Query(trimmed)
		if err != nil {
			return nil, nil, fmt.Errorf("running query: %w", err)
		}
		defer rows.Close()
		cols, recs, err := collectRows(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("scanning query results: %w", err)
		}
		return cols, recs, nil
	default:
		res, err := s.db.Exec(trimmed)
		if err != nil {
			return nil, nil, fmt.Errorf("executing statement: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			n = 0
		}
		return []string{"rows_affected"}, []types.Row{{fmt.Sprintf("%d", n)}}, nil
	}
}

func firstWord(s string) string {
	for i, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return s[:i]
		}
	}
	return s
}
