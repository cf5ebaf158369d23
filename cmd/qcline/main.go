// cmd/qcline/main.go
//
// This is the entry point for the qcline operator console.
// When you run `qcline` from any directory, that directory becomes the
// station workspace.
//
// Flow:
// 1. Handle the check-config subcommand if it was requested
// 2. Initialize the .qcline folder
// 3. Launch the TUI and flush logs and metrics when it exits

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/qcline/internal/config"
	"github.com/kingrea/qcline/internal/tui"
)

func main() {
	// Get the current working directory - this is the station workspace
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	if handleCheckConfigCommand(cwd) {
		return
	}

	if err := config.InitDir(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing %s directory: %v\n", config.StationDir, err)
		os.Exit(1)
	}

	app, err := tui.NewApp(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting console: %v\n", err)
		os.Exit(1)
	}

	var opts []tea.ProgramOption
	if app.AltScreen() {
		opts = append(opts, tea.WithAltScreen()) // Use alternate screen buffer (like vim does)
	}
	p := tea.NewProgram(app, opts...)

	// Run blocks until the operator exits
	_, runErr := p.Run()
	if err := app.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing session: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", runErr)
		os.Exit(1)
	}
}
