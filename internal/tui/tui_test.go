package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/laptopdoctor/shopdesk/internal/grid"
	"github.com/laptopdoctor/shopdesk/internal/store"
	"github.com/laptopdoctor/shopdesk/pkg/types"
)

var _ grid.Surface = (*Model)(nil)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	sess, err := store.Open(types.Config{
		Driver:   types.DriverSQLite,
		Database: "tuidb",
		DataDir:  t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })

	_, err = sess.DB().Exec(`
		CREATE TABLE jobs (
			JobID INTEGER PRIMARY KEY AUTOINCREMENT,
			Description TEXT,
			status TEXT,
			EndDate TEXT
		);
		INSERT INTO jobs (Description, status) VALUES ('screen', 'In Progress');
		INSERT INTO jobs (Description, status) VALUES ('battery', 'In Progress');
	`)
	require.NoError(t, err)

	m, err := New(sess, zap.NewNop())
	require.NoError(t, err)
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(key(k))
	}
}

func TestOpenTableFromPicker(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, []string{"jobs"}, m.tables)

	press(m, "enter")

	assert.Equal(t, modeGrid, m.mode)
	require.NotNil(t, m.ctrl)
	assert.Equal(t, []string{"JobID", "Description", "status", "EndDate"}, m.columns)
	assert.Len(t, m.cells, 2)
	assert.Equal(t, "2", m.Cell(0, 0), "newest job first")
	assert.Empty(t, m.suppressions, "suppression token leaked")
}

func TestInlineEditCommits(t *testing.T) {
	m := newTestModel(t)
	press(m, "enter")       // open jobs
	press(m, "l")           // select Description
	press(m, "enter")       // begin edit
	require.Equal(t, modeEdit, m.mode)
	assert.Equal(t, "battery", m.editBuffer)

	press(m, "backspace", "backspace", "backspace", "backspace", "backspace", "backspace", "backspace")
	press(m, "fan", "enter")

	assert.Equal(t, modeGrid, m.mode)
	assert.Equal(t, "fan", m.Cell(0, 1))
	got, err := m.sess.Field("jobs", "Description", "JobID", "2")
	require.NoError(t, err)
	assert.Equal(t, "fan", got)
}

func TestEditEscapeDiscards(t *testing.T) {
	m := newTestModel(t)
	press(m, "enter", "l", "enter")
	press(m, "xyz", "esc")

	assert.Equal(t, modeGrid, m.mode)
	assert.Equal(t, "battery", m.Cell(0, 1))
	got, err := m.sess.Field("jobs", "Description", "JobID", "2")
	require.NoError(t, err)
	assert.Equal(t, "battery", got)
}

func TestStatusCellCycles(t *testing.T) {
	m := newTestModel(t)
	press(m, "enter") // open jobs
	press(m, "l", "l") // select status column
	_, isSelector := m.selectors[cellAddr{0, 2}]
	require.True(t, isSelector, "status renders as a selector")

	press(m, "enter") // cycle In Progress -> Completed

	assert.Equal(t, modeGrid, m.mode, "selector commits without entering edit mode")
	got, err := m.sess.Field("jobs", "status", "JobID", "2")
	require.NoError(t, err)
	assert.Equal(t, types.StatusCompleted, got)
	end, err := m.sess.Field("jobs", "EndDate", "JobID", "2")
	require.NoError(t, err)
	assert.NotEmpty(t, end, "completion stamps the end date")
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m := newTestModel(t)
	press(m, "enter", "d")
	require.Equal(t, modeConfirmDelete, m.mode)

	press(m, "n") // decline
	assert.Equal(t, modeGrid, m.mode)
	assert.Len(t, m.cells, 2)

	press(m, "d", "y") // confirm
	assert.Len(t, m.cells, 1)
	exists, err := m.sess.KeyExists("jobs", "JobID", "2")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSearchFromGrid(t *testing.T) {
	m := newTestModel(t)
	press(m, "enter", "/")
	require.Equal(t, modeSearch, m.mode)

	press(m, "battery", "enter")

	assert.Equal(t, modeGrid, m.mode)
	require.Len(t, m.cells, 1)
	assert.Equal(t, "battery", m.Cell(0, 1))
	assert.False(t, m.prevEnabled)
	assert.False(t, m.nextEnabled)
}

func TestNoticeSwallowsNextKey(t *testing.T) {
	m := newTestModel(t)
	press(m, "enter")
	m.Notify("something went wrong")

	press(m, "d") // dismisses the notice instead of starting a delete
	assert.Empty(t, m.notice)
	assert.Equal(t, modeGrid, m.mode)
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	assert.Contains(t, out, "jobs")

	press(m, "enter")
	out = m.View()
	assert.Contains(t, out, "Description")
	assert.Contains(t, out, "battery")
}
