package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const maxCellWidth = 24

var (
	styleHeader   = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	styleCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	styleSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	styleStatus   = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	styleNotice   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleHelp     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleInput    = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	switch m.mode {
	case modeTables:
		m.viewTables(&b)
	default:
		m.viewGrid(&b)
	}
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(styleNotice.Render(m.notice))
		b.WriteString(styleHelp.Render("  (any key to dismiss)"))
	}
	return b.String()
}

func (m *Model) viewTables(b *strings.Builder) {
	b.WriteString(styleHeader.Render("The Laptop Doctor — tables"))
	b.WriteString("\n\n")
	for i, table := range m.tables {
		if i == m.cursor {
			b.WriteString(styleCursor.Render("> " + table))
		} else {
			b.WriteString("  " + table)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styleHelp.Render("up/down move · enter open · q quit"))
}

func (m *Model) viewGrid(b *strings.Builder) {
	title := m.ctrl.Table()
	if m.pageLabel != "" {
		title += " — " + m.pageLabel
	}
	b.WriteString(styleHeader.Render(title))
	b.WriteString("\n\n")

	widths := m.columnWidths()
	header := make([]string, len(m.columns))
	for i, name := range m.columns {
		header[i] = pad(name, widths[i])
	}
	b.WriteString(styleHeader.Render(strings.Join(header, " | ")))
	b.WriteString("\n")

	for r, row := range m.cells {
		line := make([]string, len(row))
		for c, val := range row {
			text := pad(val, widths[c])
			if r == m.selRow && c == m.selCol && m.mode != modeSearch {
				text = styleSelected.Render(text)
			}
			line[c] = text
		}
		b.WriteString(strings.Join(line, " | "))
		b.WriteString("\n")
	}
	if len(m.cells) == 0 {
		b.WriteString(styleHelp.Render("(no rows)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.mode {
	case modeEdit:
		b.WriteString(styleInput.Render(fmt.Sprintf("edit %s: %s_",
			m.columns[m.selCol], m.editBuffer)))
	case modeSearch:
		b.WriteString(styleInput.Render("search: " + m.searchBuffer + "_"))
	case modeConfirmDelete:
		b.WriteString(styleNotice.Render(fmt.Sprintf(
			"delete record %s? (y/n)", m.ctrl.RowKey(m.selRow))))
	default:
		b.WriteString(m.navLine())
	}
	if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(styleStatus.Render(m.statusLine))
	}
}

func (m *Model) navLine() string {
	parts := []string{"arrows move", "enter edit"}
	if m.prevEnabled {
		parts = append(parts, "p prev")
	}
	if m.nextEnabled {
		parts = append(parts, "n next")
	}
	parts = append(parts, "/ search", "a add", "d delete", "r refresh", "q back")
	return styleHelp.Render(strings.Join(parts, " · "))
}

// columnWidths sizes each column to its widest value, capped so one long
// note cannot push the rest of the grid off screen.
func (m *Model) columnWidths() []int {
	widths := make([]int, len(m.columns))
	for i, name := range m.columns {
		widths[i] = len(name)
	}
	for _, row := range m.cells {
		for i, val := range row {
			if i < len(widths) && len(val) > widths[i] {
				widths[i] = len(val)
			}
		}
	}
	for i := range widths {
		if widths[i] > maxCellWidth {
			widths[i] = maxCellWidth
		}
	}
	return widths
}

func pad(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		return string(r[:w-1]) + "…"
	}
	return s + strings.Repeat(" ", w-len(r))
}
