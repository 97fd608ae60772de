package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/laptopdoctor/shopdesk/pkg/types"
)

// SQLiteDialect maps the catalog operations onto PRAGMA table_info and the
// sqlite_sequence bookkeeping table. sqlite_sequence stores the last assigned
// rowid, so the "next value" the rest of the store reasons about is seq+1.
type SQLiteDialect struct{}

func (SQLiteDialect) Name() string { return types.DriverSQLite }

func (SQLiteDialect) PrimaryKey(db *sql.DB, table string) (string, error) {
	cols, err := tableInfo(db, table)
	if err != nil {
		return "", err
	}
	for _, c := range cols {
		if c.pk > 0 {
			return c.name, nil
		}
	}
	return "", types.ErrNoPrimaryKey
}

func (SQLiteDialect) Columns(db *sql.DB, table string) ([]types.Column, error) {
	info, err := tableInfo(db, table)
	if err != nil {
		return nil, err
	}
	cols := make([]types.Column, len(info))
	for i, c := range info {
		cols[i] = types.Column{Name: c.name, Type: c.typ, Ordinal: i}
	}
	return cols, nil
}

func (SQLiteDialect) Tables(db *sql.DB) ([]string, error) {
	rows, err := db.Query(
		"SELECT name FROM sqlite_schema WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
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

func (SQLiteDialect) AutoIncrement(db *sql.DB, table string) (int64, bool, error) {
	var seq int64
	err := db.QueryRow("SELECT seq FROM sqlite_sequence WHERE name = ?", table).Scan(&seq)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		// sqlite_sequence does not exist until an AUTOINCREMENT table
		// receives its first insert.
		if strings.Contains(err.Error(), "no such table") {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("reading sequence for %s: %w", table, err)
	}
	return seq + 1, true, nil
}

func (SQLiteDialect) SetAutoIncrement(db *sql.DB, table string, next int64) error {
	seq := next - 1
	if seq < 0 {
		seq = 0
	}
	res, err := db.Exec("UPDATE sqlite_sequence SET seq = ? WHERE name = ?", seq, table)
	if err != nil {
		if strings.Contains(err.Error(), "no such table") {
			return nil
		}
		return fmt.Errorf("setting sequence for %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := db.Exec("INSERT INTO sqlite_sequence (name, seq) VALUES (?, ?)", table, seq); err != nil {
			return fmt.Errorf("inserting sequence for %s: %w", table, err)
		}
	}
	return nil
}

// tableInfo reads PRAGMA table_info rows for a table.
type columnInfo struct {
	name string
	typ  string
	pk   int
}

func tableInfo(db *sql.DB, table string) ([]columnInfo, error) {
	qt, err := quoteIdent(table)
	if err != nil {
		return nil, err
	}
	rows, err := db.Query("PRAGMA table_info(" + qt + ")")
	if err != nil {
		return nil, fmt.Errorf("reading table info for %s: %w", table, err)
	}
	defer rows.Close()

	var out []columnInfo
	for rows.Next() {
		var (
			cid, notnull, pk int
			name, typ        string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scanning table info for %s: %w", table, err)
		}
		out = append(out, columnInfo{name: name, typ: typ, pk: pk})
	}
	return out, rows.Err()
}
