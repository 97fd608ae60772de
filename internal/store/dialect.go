package store

import (
	"database/sql"

	"github.com/laptopdoctor/shopdesk/pkg/types"
)

// Dialect abstracts the catalog and counter statements that differ between
// engines. Everything else in the store is plain portable SQL with bound
// parameters.
type Dialect interface {
	// Name returns the dialect name, matching the config driver constants.
	Name() string

	// PrimaryKey returns the table's primary-key column name.
	// Returns types.ErrNoPrimaryKey when the table has no primary-key
	// constraint; that is fatal for editing, deleting and status updates.
	PrimaryKey(db *sql.DB, table string) (string, error)

	// Columns returns the table's columns in declared order.
	Columns(db *sql.DB, table string) ([]types.Column, error)

	// Tables lists the user tables of the connected database.
	Tables(db *sql.DB) ([]string, error)

	// AutoIncrement reads the value the engine would assign to the next
	// inserted row. ok is false when the engine tracks no counter for the
	// table.
	AutoIncrement(db *sql.DB, table string) (next int64, ok bool, err error)

	// SetAutoIncrement sets the counter so the next inserted row gets next.
	SetAutoIncrement(db *sql.DB, table string, next int64) error
}
