package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/laptopdoctor/shopdesk/internal/grid"
)

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. The controller methods invoked here call the
// Surface synchronously, so by the time a branch returns the model already
// reflects the controller's writes.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		// A pending notice swallows the next keypress to dismiss it.
		if m.notice != "" {
			m.notice = ""
			return m, nil
		}
		switch m.mode {
		case modeTables:
			return m.updateTables(msg)
		case modeGrid:
			return m.updateGrid(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		}
	}
	return m, nil
}

func (m *Model) updateTables(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tables)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.tables) == 0 {
			return m, nil
		}
		ctrl, err := grid.Open(m.sess, m.log, m, m.tables[m.cursor])
		if err != nil {
			m.log.Warn("opening table",
				zap.String("table", m.tables[m.cursor]),
				zap.Error(err))
			return m, nil
		}
		m.ctrl = ctrl
		m.mode = modeGrid
		m.statusLine = ""
	}
	return m, nil
}

func (m *Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.ctrl = nil
		m.mode = modeTables
		m.statusLine = ""
		return m, nil
	case "up", "k":
		if m.selRow > 0 {
			m.selRow--
		}
	case "down", "j":
		if m.selRow < len(m.cells)-1 {
			m.selRow++
		}
	case "left", "h":
		if m.selCol > 0 {
			m.selCol--
		}
	case "right", "l":
		if m.selCol < len(m.columns)-1 {
			m.selCol++
		}
	case "n":
		if m.nextEnabled {
			m.checked(m.ctrl.NextPage())
		}
	case "p":
		if m.prevEnabled {
			m.checked(m.ctrl.PrevPage())
		}
	case "r":
		m.checked(m.ctrl.Refresh())
	case "/":
		m.searchBuffer = ""
		m.mode = modeSearch
	case "a":
		m.checked(m.ctrl.AddRecord(nil))
	case "d":
		if len(m.cells) > 0 {
			m.mode = modeConfirmDelete
		}
	case "enter":
		if len(m.cells) == 0 {
			return m, nil
		}
		if sel, ok := m.selectors[cellAddr{m.selRow, m.selCol}]; ok {
			m.cycleSelector(sel)
			return m, nil
		}
		m.editBuffer = m.Cell(m.selRow, m.selCol)
		m.mode = modeEdit
	}
	return m, nil
}

// cycleSelector advances an enumeration cell to its next option and commits
// the choice.
func (m *Model) cycleSelector(sel selector) {
	next := sel.options[0]
	for i, opt := range sel.options {
		if opt == sel.selected {
			next = sel.options[(i+1)%len(sel.options)]
			break
		}
	}
	m.checked(m.ctrl.SelectorChanged(m.selRow, next))
}

func (m *Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeGrid
	case "enter":
		row, col, text := m.selRow, m.selCol, m.editBuffer
		m.mode = modeGrid
		m.checked(m.ctrl.CellEdited(row, col, text))
	case "backspace":
		if len(m.editBuffer) > 0 {
			r := []rune(m.editBuffer)
			m.editBuffer = string(r[:len(r)-1])
		}
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.editBuffer += string(msg.Runes)
		}
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeGrid
	case "enter":
		text := m.searchBuffer
		m.mode = modeGrid
		// Search every text column; enumeration columns match too since
		// their stored values are plain strings.
		m.checked(m.ctrl.Search(m.searchColumns(), text))
	case "backspace":
		if len(m.searchBuffer) > 0 {
			r := []rune(m.searchBuffer)
			m.searchBuffer = string(r[:len(r)-1])
		}
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.searchBuffer += string(msg.Runes)
		}
	}
	return m, nil
}

func (m *Model) searchColumns() []string {
	cols := make([]string, 0, len(m.columns))
	cols = append(cols, m.columns...)
	return cols
}

func (m *Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		row := m.selRow
		m.mode = modeGrid
		m.checked(m.ctrl.DeleteRecord(row))
	default:
		m.mode = modeGrid
	}
	return m, nil
}

// checked logs controller errors that are not already surfaced as notices.
func (m *Model) checked(err error) {
	if err != nil {
		m.log.Debug("grid operation", zap.Error(err))
	}
}
