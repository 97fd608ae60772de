package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/laptopdoctor/shopdesk/pkg/types"
)

// MySQLDialect speaks MySQL/MariaDB catalog SQL: SHOW KEYS for primary-key
// discovery, DESCRIBE for columns, SHOW TABLE STATUS and ALTER TABLE for the
// auto-increment counter.
type MySQLDialect struct{}

func (MySQLDialect) Name() string { return types.DriverMySQL }

func (MySQLDialect) PrimaryKey(db *sql.DB, table string) (string, error) {
	qt, err := quoteIdent(table)
	if err != nil {
		return "", err
	}
	rows, err := db.Query("SHOW KEYS FROM " + qt + " WHERE Key_name = 'PRIMARY'")
	if err != nil {
		return "", fmt.Errorf("reading keys for %s: %w", table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", err
		}
		return "", types.ErrNoPrimaryKey
	}
	rec, err := scanAny(rows)
	if err != nil {
		return "", fmt.Errorf("scanning key row for %s: %w", table, err)
	}
	// SHOW KEYS column 5 is Column_name.
	if len(rec) < 5 || rec[4] == "" {
		return "", types.ErrNoPrimaryKey
	}
	return rec[4], nil
}

func (MySQLDialect) Columns(db *sql.DB, table string) ([]types.Column, error) {
	qt, err := quoteIdent(table)
	if err != nil {
		return nil, err
	}
	rows, err := db.Query("DESCRIBE " + qt)
	if err != nil {
		return nil, fmt.Errorf("describing %s: %w", table, err)
	}
	defer rows.Close()

	var cols []types.Column
	ord := 0
	for rows.Next() {
		rec, err := scanAny(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning column of %s: %w", table, err)
		}
		// DESCRIBE columns: Field, Type, Null, Key, Default, Extra.
		if len(rec) < 2 {
			return nil, fmt.Errorf("unexpected DESCRIBE shape for %s", table)
		}
		cols = append(cols, types.Column{Name: rec[0], Type: rec[1], Ordinal: ord})
		ord++
	}
	return cols, rows.Err()
}

func (MySQLDialect) Tables(db *sql.DB) ([]string, error) {
	rows, err := db.Query("SHOW TABLES")
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func (MySQLDialect) AutoIncrement(db *sql.DB, table string) (int64, bool, error) {
	rows, err := db.Query("SHOW TABLE STATUS LIKE ?", table)
	if err != nil {
		return 0, false, fmt.Errorf("reading table status for %s: %w", table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return 0, false, rows.Err()
	}
	names, err := rows.Columns()
	if err != nil {
		return 0, false, err
	}
	rec, err := scanAny(rows)
	if err != nil {
		return 0, false, fmt.Errorf("scanning table status for %s: %w", table, err)
	}
	for i, n := range names {
		if strings.EqualFold(n, "Auto_increment") {
			if rec[i] == "" {
				return 0, false, nil
			}
			var next int64
			if _, err := fmt.Sscan(rec[i], &next); err != nil {
				return 0, false, fmt.Errorf("parsing auto_increment %q: %w", rec[i], err)
			}
			return next, true, nil
		}
	}
	return 0, false, nil
}

func (MySQLDialect) SetAutoIncrement(db *sql.DB, table string, next int64) error {
	qt, err := quoteIdent(table)
	if err != nil {
		return err
	}
	// The counter value cannot be a bound parameter in ALTER TABLE.
	if _, err := db.Exec(fmt.Sprintf("ALTER TABLE %s AUTO_INCREMENT = %d", qt, next)); err != nil {
		return fmt.Errorf("setting auto_increment on %s: %w", table, err)
	}
	return nil
}
