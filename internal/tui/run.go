package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/laptopdoctor/shopdesk/internal/store"
)

// Run starts the interactive session and blocks until the user quits.
func Run(sess *store.Session, log *zap.Logger) error {
	m, err := New(sess, log)
	if err != nil {
		return fmt.Errorf("building interface: %w", err)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}
