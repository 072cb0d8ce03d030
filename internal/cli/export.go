package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/facedeck/render"
)

// Export file modes.
const (
	exportDirPerm  = 0o750
	exportFilePerm = 0o600
)

// newExportCmd creates the export command: batch-render every page of a
// deck into one artifact file per page.
func newExportCmd() *cobra.Command {
	var (
		flags       deckFlags
		outDir      string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "export <dataset.csv>",
		Short: "Render every page of a deck to files",
		Example: `  # One file per page under ./deck
  facedeck export iris.csv --out ./deck

  # Bound the number of pages rendering at once
  facedeck export iris.csv --out ./deck --concurrency 2`,
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

			dispatcher, _, err := buildDispatcher(cfg, pager)
			if err != nil {
				return err
			}

			prerenderer, err := render.NewPrerenderer(dispatcher)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("concurrency") {
				prerenderer.WithConcurrency(concurrency)
			}
			prerenderer.WithProgressCallback(func(p *render.Progress) {
				snap := p.Snapshot()
				cmd.Printf("rendered %d/%d pages\n", snap.Rendered, snap.TotalPages)
			})

			artifacts, err := prerenderer.Run(ctx)
			if err != nil {
				return err
			}

			if mkdirErr := os.MkdirAll(outDir, exportDirPerm); mkdirErr != nil {
				return fmt.Errorf("creating output directory %s: %w", outDir, mkdirErr)
			}
			for i, artifact := range artifacts {
				path := filepath.Join(outDir, fmt.Sprintf("page-%03d.txt", i+1))
				if writeErr := os.WriteFile(path, []byte(artifact), exportFilePerm); writeErr != nil {
					return fmt.Errorf("writing %s: %w", path, writeErr)
				}
			}

			cmd.Printf("exported %d pages to %s\n", len(artifacts), outDir)
			return nil
		},
	}

	addDeckFlags(cmd, &flags)
	cmd.Flags().StringVar(&outDir, "out", "deck", "output directory for page artifacts")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "pages rendering at once (default: number of CPUs)")

	return cmd
}
