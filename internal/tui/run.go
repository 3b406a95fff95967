package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mirelle/gloss/internal/editor"
)

// Run starts the interactive editor over the given session and blocks
// until the user exits. It reports whether the user chose to save.
func Run(ctx context.Context, session *editor.Session, salonName string) (bool, error) {
	if session == nil {
		return false, fmt.Errorf("session is required")
	}

	program := tea.NewProgram(New(session, salonName), tea.WithContext(ctx), tea.WithAltScreen())

	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("editor failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return false, fmt.Errorf("unexpected final model type %T", final)
	}
	return m.Saved(), nil
}
