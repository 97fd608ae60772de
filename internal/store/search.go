package store

import (
	"fmt"
	"strings"

	"github.com/laptopdoctor/shopdesk/pkg/types"
)

// Search runs a keyword search over the selected columns. The query text is
// tokenized on whitespace; every token must match at least one selected
// column (case-insensitive substring), so the result is AND across tokens
// and OR across columns within a token. Results are not paginated: the full
// matching set comes back in one pass.
func (s *Session) Search(table string, columns []string, queryText string) ([]types.Row, error) {
	tokens := strings.Fields(queryText)
	if len(tokens) == 0 || len(columns) == 0 {
		return nil, types.ErrEmptySearch
	}

	qt, err := quoteIdent(table)
	if err != nil {
		return nil, err
	}
	qcols, err := quoteIdents(columns)
	if err != nil {
		return nil, err
	}
	ordCols, err := s.Columns(table)
	if err != nil {
		return nil, err
	}
	if len(ordCols) == 0 {
		return nil, fmt.Errorf("table %s has no columns", table)
	}
	qOrd, err := quoteIdent(ordCols[0].Name)
	if err != nil {
		return nil, err
	}

	groups := make([]string, len(tokens))
	var args []any
	for i, tok := range tokens {
		alts := make([]string, len(qcols))
		for j, qc := range qcols {
			alts[j] = qc + " LIKE ?"
			args = append(args, "%"+tok+"%")
		}
		groups[i] = "(" + strings.Join(alts, " OR ") + ")"
	}

	query := "SELECT * FROM " + qt +
		" WHERE " + strings.Join(groups, " AND ") +
		" ORDER BY " + qOrd + " DESC"
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", table, err)
	}
	defer rows.Close()

	_, recs, err := collectRows(rows)
	if err != nil {
		return nil, fmt.Errorf("scanning search results of %s: %w", table, err)
	}
	return recs, nil
}
