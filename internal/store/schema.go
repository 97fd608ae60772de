package store

import "github.com/laptopdoctor/shopdesk/pkg/types"

// PrimaryKey returns the table's primary-key column name, or
// types.ErrNoPrimaryKey when the table has none.
func (s *Session) PrimaryKey(table string) (string, error) {
	return s.dialect.PrimaryKey(s.db, table)
}

// Columns returns the table's columns in declared order.
func (s *Session) Columns(table string) ([]types.Column, error) {
	return s.dialect.Columns(s.db, table)
}

// Tables lists the user tables of the connected database.
func (s *Session) Tables() ([]string, error) {
	return s.dialect.Tables(s.db)
}
