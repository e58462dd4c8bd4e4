// Package cmd implements the tally CLI commands.
package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/tui"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

var flagTheme string

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "In-session metrics tracker for terminal assistants",
	Long: "tally tracks command executions, file touches, token usage, and model/tool\n" +
		"timing for an assistant session, with a scrollable stats popup.\n\n" +
		"Running tally without a subcommand starts a simulated demo session.",
	RunE: runDemo,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagTheme, "theme", "t", "", "Color theme (overrides config)")
}

func runDemo(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	if flagTheme != "" {
		cfg.Appearance.Theme = flagTheme
	}
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
