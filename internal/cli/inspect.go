package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/facedeck/internal/tui"
)

// newInspectCmd creates the inspect command: a report of how the pipeline
// saw the dataset, for diagnosing classification and scaling surprises.
func newInspectCmd() *cobra.Command {
	var flags deckFlags

	cmd := &cobra.Command{
		Use:   "inspect <dataset.csv>",
		Short: "Show column classification, labels, and scale parameters",
		Long: `Runs the prepare pipeline and reports what it decided: each column's
role (textual, categorical, numeric), whether labels were extracted, the
fitted global min/max per feature column, and any degenerate (constant)
columns, which scale to all zeros.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			if err := flags.applyTo(cmd, cfg); err != nil {
				return err
			}

			pager, err := buildPager(ctx, cfg, args[0], &flags)
			if err != nil {
				return err
			}
			deck := pager.Deck()

			cmd.Printf("deck %s: %s rows, %d features, %s pages of up to %d\n",
				deck.Version,
				tui.FormatCount(deck.Rows()),
				deck.Matrix.Cols(),
				tui.FormatCount(pager.Count()),
				pager.PageSize(),
			)

			cmd.Println("\ncolumns:")
			for _, name := range deck.Classification.Names() {
				kind, _ := deck.Classification.Kind(name)
				cmd.Printf("  %-20s %s\n", name, kind)
			}

			if deck.Labels != nil {
				cmd.Printf("\nlabels: extracted (%s rows)\n", tui.FormatCount(len(deck.Labels)))
			} else {
				cmd.Println("\nlabels: none (no textual or categorical columns)")
			}

			cmd.Println("\nscale parameters (global, fitted before paging):")
			for _, col := range deck.Params.Columns {
				if col.Degenerate {
					cmd.Printf("  %-20s constant %.6g, scaled to 0\n", col.Name, col.Min)
					continue
				}
				cmd.Printf("  %-20s min %.6g  max %.6g\n", col.Name, col.Min, col.Max)
			}

			if degenerate := deck.Params.DegenerateColumns(); len(degenerate) > 0 {
				cmd.Printf("\nwarning: %d degenerate column(s): %v\n", len(degenerate), degenerate)
			}
			return nil
		},
	}

	addDeckFlags(cmd, &flags)

	return cmd
}
