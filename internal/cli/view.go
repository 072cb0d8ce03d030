package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/facedeck/internal/tui"
)

// newViewCmd creates the view command: the interactive deck viewer.
func newViewCmd() *cobra.Command {
	var (
		flags     deckFlags
		startPage int
	)

	cmd := &cobra.Command{
		Use:   "view <dataset.csv>",
		Short: "View a dataset as an interactive face-glyph deck",
		Long: `Loads a dataset, prepares it (classify, label, clean, scale), splits it
into pages, and opens the interactive viewer. Scaling is computed over the
whole dataset before paging, so faces on different pages stay comparable.`,
		Example: `  # Default page size from config
  facedeck view iris.csv

  # Ten faces per page, jump straight to page 3
  facedeck view iris.csv --page-size 10 --page 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			if err := flags.applyTo(cmd, cfg); err != nil {
				return err
			}

			if !isTerminal(os.Stdout) {
				return fmt.Errorf("view needs an interactive terminal; use %q for plain output", "facedeck pages")
			}

			pager, err := buildPager(ctx, cfg, args[0], &flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("page") {
				if gotoErr := pager.Goto(startPage - 1); gotoErr != nil {
					return gotoErr
				}
			}

			dispatcher, cache, err := buildDispatcher(cfg, pager)
			if err != nil {
				return err
			}

			model, _ := tui.NewDeckModel(ctx, dispatcher)
			if cache != nil {
				model = model.WithCache(cache)
			}

			program := tea.NewProgram(model, tea.WithContext(ctx))
			if _, runErr := program.Run(); runErr != nil {
				return fmt.Errorf("running deck viewer: %w", runErr)
			}
			return nil
		},
	}

	addDeckFlags(cmd, &flags)
	cmd.Flags().IntVar(&startPage, "page", 1, "one-based page to open first")

	return cmd
}
