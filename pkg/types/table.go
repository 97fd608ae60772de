package types

import "errors"

// Column describes one column of a database table as the grid needs it:
// name, declared type (used only to pick a default cell widget), and ordinal
// position, which defines display order and the default sort key.
type Column struct {
	Name    string
	Type    string
	Ordinal int
}

// Row is an ordered sequence of cell values aligned to a table's columns.
// Values are carried as display text; a stored NULL is the empty string.
type Row []string

// Page is a bounded, ordered slice of a table's rows.
type Page struct {
	Offset int
	Limit  int
	Rows   []Row
}

// Full returns true when the page holds exactly Limit rows, the heuristic
// for "there might be more data after this page".
func (p Page) Full() bool {
	return len(p.Rows) == p.Limit
}

// Grid and store operation errors.
var (
	// ErrNoPrimaryKey means the table has no primary-key constraint. Editing,
	// deleting and status updates are unsupported without one; callers must
	// surface this and decline to proceed, never guess a substitute key.
	ErrNoPrimaryKey = errors.New("table has no primary key")

	// ErrStaleRow means the row's committed primary key no longer resolves to
	// a database row. The operation is aborted without mutating anything.
	ErrStaleRow = errors.New("row no longer exists")

	// ErrDuplicateKey means a primary-key rename collides with an existing key.
	ErrDuplicateKey = errors.New("primary key already exists")

	// ErrNoChange means the submitted value equals the stored value. It marks
	// a silent no-op, not a failure.
	ErrNoChange = errors.New("value unchanged")

	// ErrEmptySearch means the search had no keywords or no selected columns.
	ErrEmptySearch = errors.New("empty search input")

	// ErrBadIdentifier means a table or column name failed validation before
	// being interpolated into a statement.
	ErrBadIdentifier = errors.New("invalid identifier")

	// ErrBusy means another grid operation is still in flight.
	ErrBusy = errors.New("operation already in progress")
)
