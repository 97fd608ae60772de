package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/laptopdoctor/shopdesk/pkg/types"
)

// Field reads one column of the row identified by its primary key.
// Returns types.ErrStaleRow when the key no longer resolves to a row.
func (s *Session) Field(table, column, pkCol, key string) (string, error) {
	qt, err := quoteIdent(table)
	if err != nil {
		return "", err
	}
	qc, err := quoteIdent(column)
	if err != nil {
		return "", err
	}
	qpk, err := quoteIdent(pkCol)
	if err != nil {
		return "", err
	}

	var v sql.NullString
	err = s.db.QueryRow(
		"SELECT "+qc+" FROM "+qt+" WHERE "+qpk+" = ?", key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", types.ErrStaleRow
	}
	if err != nil {
		return "", fmt.Errorf("reading %s.%s: %w", table, column, err)
	}
	if !v.Valid {
		return "", nil
	}
	return v.String, nil
}

// KeyExists reports whether a primary-key value is already present.
func (s *Session) KeyExists(table, pkCol, key string) (bool, error) {
	qt, err := quoteIdent(table)
	if err != nil {
		return false, err
	}
	qpk, err := quoteIdent(pkCol)
	if err != nil {
		return false, err
	}

	var n int
	err = s.db.QueryRow(
		"SELECT COUNT(*) FROM "+qt+" WHERE "+qpk+" = ?", key).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking key in %s: %w", table, err)
	}
	return n > 0, nil
}

// UpdateCell writes one column of the row identified by its primary key.
// Empty text commits NULL, matching how NULL renders back as empty text.
func (s *Session) UpdateCell(table, column, pkCol, key, value string) error {
	qt, err := quoteIdent(table)
	if err != nil {
		return err
	}
	qc, err := quoteIdent(column)
	if err != nil {
		return err
	}
	qpk, err := quoteIdent(pkCol)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		"UPDATE "+qt+" SET "+qc+" = ? WHERE "+qpk+" = ?", nullable(value), key)
	if err != nil {
		return fmt.Errorf("updating %s.%s: %w", table, column, err)
	}
	return nil
}

// RenameKey updates a row's primary key in place. The caller is responsible
// for the uniqueness check.
func (s *Session) RenameKey(table, pkCol, oldKey, newKey string) error {
	qt, err := quoteIdent(table)
	if err != nil {
		return err
	}
	qpk, err := quoteIdent(pkCol)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		"UPDATE "+qt+" SET "+qpk+" = ? WHERE "+qpk+" = ?", newKey, oldKey)
	if err != nil {
		return fmt.Errorf("renaming key in %s: %w", table, err)
	}
	return nil
}

// UpdateStatus is the status-column convenience path for the jobs table: it
// writes the status directly by primary key, and stamps EndDate with the
// current time when the job transitions to Completed.
func (s *Session) UpdateStatus(table, pkCol, key, status string) error {
	qt, err := quoteIdent(table)
	if err != nil {
		return err
	}
	qpk, err := quoteIdent(pkCol)
	if err != nil {
		return err
	}

	if status == types.StatusCompleted {
		now := time.Now().Format("2006-01-02 15:04:05")
		_, err = s.db.Exec(
			"UPDATE "+qt+" SET `status` = ?, `EndDate` = ? WHERE "+qpk+" = ?", status, now, key)
	} else {
		_, err = s.db.Exec(
			"UPDATE "+qt+" SET `status` = ? WHERE "+qpk+" = ?", status, key)
	}
	if err != nil {
		return fmt.Errorf("updating status in %s: %w", table, err)
	}
	return nil
}

// Insert adds a row with the given columns and display-text values. Empty
// text inserts NULL. The auto-increment primary key column is normally left
// out of cols so the engine assigns it.
func (s *Session) Insert(table string, cols []string, values []string) error {
	if len(cols) == 0 || len(cols) != len(values) {
		return fmt.Errorf("insert into %s: %d columns, %d values", table, len(cols), len(values))
	}
	qt, err := quoteIdent(table)
	if err != nil {
		return err
	}
	qcols, err := quoteIdents(cols)
	if err != nil {
		return err
	}

	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, v := range values {
		placeholders[i] = "?"
		args[i] = nullable(v)
	}
	_, err = s.db.Exec(
		"INSERT INTO "+qt+" ("+strings.Join(qcols, ", ")+") VALUES ("+strings.Join(placeholders, ", ")+")",
		args...)
	if err != nil {
		return fmt.Errorf("inserting into %s: %w", table, err)
	}
	return nil
}

// Delete removes the row identified by its primary key.
// Returns types.ErrStaleRow when no row matched.
func (s *Session) Delete(table, pkCol, key string) error {
	qt, err := quoteIdent(table)
	if err != nil {
		return err
	}
	qpk, err := quoteIdent(pkCol)
	if err != nil {
		return err
	}

	res, err := s.db.Exec("DELETE FROM "+qt+" WHERE "+qpk+" = ?", key)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrStaleRow
	}
	return nil
}

// RepairAutoIncrement re-establishes the watermark invariant: the counter is
// max(primary key)+1, or 1 when the table is empty. Non-integer keys have no
// watermark to repair and are skipped.
func (s *Session) RepairAutoIncrement(table, pkCol string) error {
	qt, err := quoteIdent(table)
	if err != nil {
		return err
	}
	qpk, err := quoteIdent(pkCol)
	if err != nil {
		return err
	}

	var maxKey sql.NullString
	if err := s.db.QueryRow("SELECT MAX(" + qpk + ") FROM " + qt).Scan(&maxKey); err != nil {
		return fmt.Errorf("reading max key of %s: %w", table, err)
	}

	next := int64(1)
	if maxKey.Valid {
		parsed, err := strconv.ParseInt(maxKey.String, 10, 64)
		if err != nil {
			// Non-numeric primary key; nothing to repair.
			return nil
		}
		next = parsed + 1
	}

	current, ok, err := s.dialect.AutoIncrement(s.db, table)
	if err != nil {
		return err
	}
	if ok && current == next {
		return nil
	}
	return s.dialect.SetAutoIncrement(s.db, table, next)
}

// nullable maps empty display text to NULL.
func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
