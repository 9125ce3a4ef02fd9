package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lyriek/internal/shared"
	"github.com/desertthunder/lyriek/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive lyrics viewer.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	logPath := r.config.Log.File
	if logPath == "" {
		logPath = shared.DefaultLogPath()
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)

	engine, err := r.newEngine()
	if err != nil {
		return err
	}

	ctx, stop := context.WithCancel(ctx)
	defer stop()

	updates := engine.Start(ctx)
	p := tea.NewProgram(ui.NewModel(updates, stop), tea.WithAltScreen())

	_, err = p.Run()
	stop()
	drain(updates)

	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
