package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Run boots the terminal program and blocks until it exits.
// Cancelling ctx closes the program without error.
func Run(ctx context.Context, src Source, bridge *Bridge, baseURL string) error {
	m := newModel(src, baseURL, time.Now())
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())

	if bridge != nil {
		bridge.attach(program.Send)
		defer bridge.detach()
	}

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
