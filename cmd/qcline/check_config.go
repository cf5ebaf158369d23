package main

import (
	"fmt"
	"os"

	"github.com/kingrea/qcline/internal/config"
)

func handleCheckConfigCommand(cwd string) bool {
	if len(os.Args) < 2 || os.Args[1] != "check-config" {
		return false
	}
	if len(os.Args) > 3 {
		fmt.Fprintln(os.Stderr, "Usage: qcline check-config [/path/to/workspace]")
		os.Exit(2)
	}
	dir := cwd
	if len(os.Args) == 3 {
		dir = os.Args[2]
	}
	cfg, err := config.NewConfig(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK: %s\n", cfg.ProjectConfigPath())
	fmt.Printf("- station: %s\n", cfg.StationName())
	if op := cfg.Operator(); op != "" {
		fmt.Printf("- operator: %s\n", op)
	}
	fmt.Printf("- log: %s (%s)\n", cfg.LogFile(), cfg.LogLevel())
	fmt.Printf("- journal: %s\n", cfg.JournalPath())
	if cfg.MetricsEnabled() {
		fmt.Printf("- metrics: %s\n", cfg.MetricsTextfile())
	} else {
		fmt.Println("- metrics: disabled")
	}
	os.Exit(0)
	return true
}
