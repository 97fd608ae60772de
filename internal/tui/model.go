// Package tui is the terminal front end: a table picker over the database
// plus an editable grid for the selected table. The bubbletea model doubles
// as the grid controller's rendering surface, so every controller write
// lands directly in the model state the next View call draws.
package tui

import (
	"go.uber.org/zap"

	"github.com/laptopdoctor/shopdesk/internal/grid"
	"github.com/laptopdoctor/shopdesk/internal/store"
)

// mode names the screen the model currently shows.
type mode int

const (
	modeTables mode = iota
	modeGrid
	modeEdit
	modeSearch
	modeConfirmDelete
)

type cellAddr struct {
	row, col int
}

type selector struct {
	options  []string
	selected string
}

// Model is the bubbletea model for the whole session.
type Model struct {
	sess *store.Session
	log  *zap.Logger

	mode   mode
	width  int
	height int

	// Table picker state.
	tables []string
	cursor int

	// Grid state, written by the controller through the Surface methods.
	ctrl        *grid.Controller
	columns     []string
	cells       [][]string
	selectors   map[cellAddr]selector
	prevEnabled bool
	nextEnabled bool
	pageLabel   string
	statusLine  string
	notice      string

	// Cell selection and inline edit state.
	selRow     int
	selCol     int
	editBuffer string

	// Search input state.
	searchBuffer string

	// Outstanding suppression tokens. While any are held, programmatic
	// grid writes are in flight and must not be re-dispatched as edits.
	suppressions []grid.Token
}

// New builds the model over an open session.
func New(sess *store.Session, log *zap.Logger) (*Model, error) {
	tables, err := sess.Tables()
	if err != nil {
		return nil, err
	}
	return &Model{
		sess:      sess,
		log:       log,
		mode:      modeTables,
		tables:    tables,
		selectors: make(map[cellAddr]selector),
	}, nil
}

// suppressed reports whether a controller write is in flight.
func (m *Model) suppressed() bool {
	return len(m.suppressions) > 0
}

// Surface implementation. These run synchronously inside the controller
// calls made from Update, on the bubbletea goroutine.

func (m *Model) Suspend() grid.Token {
	tok := grid.NewToken()
	m.suppressions = append(m.suppressions, tok)
	return tok
}

func (m *Model) Resume(tok grid.Token) {
	for i := len(m.suppressions) - 1; i >= 0; i-- {
		if m.suppressions[i].ID == tok.ID {
			m.suppressions = append(m.suppressions[:i], m.suppressions[i+1:]...)
			return
		}
	}
	m.log.Warn("resume with unknown suppression token", zap.String("token", tok.ID))
}

func (m *Model) SetColumns(names []string) {
	m.columns = names
}

func (m *Model) SetRowCount(n int) {
	m.cells = make([][]string, n)
	for i := range m.cells {
		m.cells[i] = make([]string, len(m.columns))
	}
	m.selectors = make(map[cellAddr]selector)
	if m.selRow >= n {
		m.selRow = max(0, n-1)
	}
}

func (m *Model) SetCell(row, col int, text string) {
	if row < len(m.cells) && col < len(m.cells[row]) {
		m.cells[row][col] = text
	}
}

func (m *Model) Cell(row, col int) string {
	if row < len(m.cells) && col < len(m.cells[row]) {
		return m.cells[row][col]
	}
	return ""
}

func (m *Model) SetSelector(row, col int, options []string, selected string) {
	m.selectors[cellAddr{row, col}] = selector{options: options, selected: selected}
	m.SetCell(row, col, selected)
}

func (m *Model) ScrollToTop() {
	m.selRow = 0
	m.selCol = 0
}

func (m *Model) SetPrevEnabled(enabled bool) { m.prevEnabled = enabled }
func (m *Model) SetNextEnabled(enabled bool) { m.nextEnabled = enabled }
func (m *Model) SetPageLabel(label string)   { m.pageLabel = label }
func (m *Model) SetStatus(message string)    { m.statusLine = message }

func (m *Model) Notify(message string) {
	m.notice = message
}
