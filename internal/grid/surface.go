// Package grid implements the generic record-grid controller: it binds an
// arbitrary table's rows to an editable surface and turns user events (cell
// edits, paging, search, status changes, add, delete) into validated database
// mutations while keeping the auto-increment watermark consistent.
package grid

import "github.com/google/uuid"

// Token identifies one suppression scope on a Surface.
type Token struct {
	ID string
}

// NewToken mints a suppression token.
func NewToken() Token {
	return Token{ID: uuid.NewString()}
}

// Surface is the presentation collaborator the controller renders into. It
// must deliver user events back to the controller (CellEdited,
// SelectorChanged) only while no suppression token is outstanding, so the
// controller's own writes during repopulation are never mistaken for edits.
type Surface interface {
	// Suspend stops change notifications until Resume is called with the
	// returned token. The controller always pairs the two, releasing on
	// every exit path.
	Suspend() Token
	Resume(Token)

	// Grid content.
	SetColumns(names []string)
	SetRowCount(n int)
	SetCell(row, col int, text string)
	Cell(row, col int) string
	// SetSelector embeds a fixed-option selector in a cell.
	SetSelector(row, col int, options []string, selected string)

	// Navigation chrome.
	ScrollToTop()
	SetPrevEnabled(enabled bool)
	SetNextEnabled(enabled bool)
	SetPageLabel(label string)

	// Messaging. Notify is a modal interruption; SetStatus is the passive
	// status line.
	Notify(message string)
	SetStatus(message string)
}
