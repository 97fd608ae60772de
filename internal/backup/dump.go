// Package backup writes and restores plain-SQL snapshots of the shop
// database and runs them on a cron schedule.
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/laptopdoctor/shopdesk/internal/store"
)

// FilenamePattern is the layout of generated backup file names.
const FilenamePattern = "database_backup_20060102_150405.sql"

// Dump writes every table's rows as INSERT statements into a timestamped
// .sql file under dir and returns the file's path. The dump is data only:
// restore targets a database whose schema already exists.
func Dump(sess *store.Session, dir string) (string, error) {
	tables, err := sess.Tables()
	if err != nil {
		return "", fmt.Errorf("listing tables: %w", err)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	path := filepath.Join(dir, time.Now().Format(FilenamePattern))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating backup file: %w", err)
	}
	defer f.Close()

	for _, table := range tables {
		if err := dumpTable(sess, f, table); err != nil {
			return "", fmt.Errorf("dumping table %s: %w", table, err)
		}
	}
	if err := f.Sync(); err != nil {
		return "", fmt.Errorf("flushing backup file: %w", err)
	}
	return path, nil
}

func dumpTable(sess *store.Session, f *os.File, table string) error {
	rows, err := sess.DB().Query(fmt.Sprintf("SELECT * FROM `%s`", table))
	if err != nil {
		return fmt.Errorf("reading rows: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("reading columns: %w", err)
	}

	if _, err := fmt.Fprintf(f, "-- %s\n", table); err != nil {
		return err
	}
	vals := make([]sql.NullString, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		lits := make([]string, len(vals))
		for i, v := range vals {
			lits[i] = literal(v)
		}
		_, err := fmt.Fprintf(f, "INSERT INTO `%s` VALUES (%s);\n",
			table, strings.Join(lits, ", "))
		if err != nil {
			return err
		}
	}
	return rows.Err()
}

// literal renders one value as a SQL literal. NULLs stay NULL; everything
// else is a single-quoted string with embedded quotes doubled.
func literal(v sql.NullString) string {
	if !v.Valid {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(v.String, "'", "''") + "'"
}
