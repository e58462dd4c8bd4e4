package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.Load()

	themeName := cfg.Appearance.Theme
	maxRows := cfg.Popup.MaxRows

	themeOptions := make([]huh.Option[string], 0, len(theme.All))
	for _, th := range theme.All {
		themeOptions = append(themeOptions, huh.NewOption(th.Name, th.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOptions...).
				Value(&themeName),
			huh.NewSelect[int]().
				Title("Stats popup height (rows)").
				Options(
					huh.NewOption("4 rows", 4),
					huh.NewOption("6 rows", 6),
					huh.NewOption("8 rows", 8),
					huh.NewOption("10 rows", 10),
					huh.NewOption("12 rows", 12),
				).
				Value(&maxRows),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Appearance.Theme = themeName
	cfg.Popup.MaxRows = maxRows

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `tally setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
