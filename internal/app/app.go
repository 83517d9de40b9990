package app

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mux-launcher/internal/catalog"
	"github.com/atomicstack/mux-launcher/internal/dispatch"
	"github.com/atomicstack/mux-launcher/internal/logging/events"
	"github.com/atomicstack/mux-launcher/internal/mux"
	"github.com/atomicstack/mux-launcher/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	SocketPath string
	WindowID   string
	PaneID     string
	Title      string
	Width      int
	Height     int
	Flags      catalog.Flags
	Free       []catalog.FreeEntry
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	socketPath, err := mux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}
	client := mux.NewClient(socketPath)
	builder := catalog.NewBuilder(client, nil)
	notifier := dispatch.NewTmux(socketPath)
	args := catalog.Args{
		Flags:    cfg.Flags,
		WindowID: cfg.WindowID,
		PaneID:   cfg.PaneID,
		Title:    cfg.Title,
		Free:     cfg.Free,
	}
	model := ui.NewModel(builder, notifier, args, cfg.Title, cfg.Width, cfg.Height)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	events.App.Exit(model.Dispatched())
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
