package app

import (
	"errors"
	"fmt"

	"github.com/atomicstack/quelthalas/internal/logging"
	"github.com/atomicstack/quelthalas/internal/logging/events"
	"github.com/atomicstack/quelthalas/internal/theme"
	"github.com/atomicstack/quelthalas/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Width     int
	Height    int
	ThemePath string
	Mouse     bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	th, err := theme.Load(cfg.ThemePath)
	events.App.Theme(cfg.ThemePath, err)
	if err != nil {
		// th is the default theme here.
		logging.Error(fmt.Errorf("load theme: %w", err))
	}
	model := ui.NewModel(ui.Options{
		Width:  cfg.Width,
		Height: cfg.Height,
		Theme:  th,
	})
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithReportFocus()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	program := tea.NewProgram(model, opts...)
	_, err = program.Run()
	switch {
	case errors.Is(err, tea.ErrProgramKilled):
		events.App.Exit("killed")
		return nil
	case err != nil:
		events.App.Exit("error")
		return err
	}
	events.App.Exit("quit")
	return nil
}
