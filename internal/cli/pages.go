package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/facedeck/internal/config"
	"github.com/rshade/facedeck/internal/tui"
	"github.com/rshade/facedeck/paging"
)

// newPagesCmd creates the pages command: non-interactive page access.
// Without --page it lists the page layout; with --page it prints that
// rendered page to stdout.
func newPagesCmd() *cobra.Command {
	var (
		flags      deckFlags
		pageNumber int
		allPages   bool
		asYAML     bool
	)

	cmd := &cobra.Command{
		Use:   "pages <dataset.csv>",
		Short: "List a dataset's page layout or print one rendered page",
		Example: `  # Show how the dataset splits into pages
  facedeck pages iris.csv --page-size 50

  # Print rendered page 2 to stdout
  facedeck pages iris.csv --page 2

  # Page layout as YAML, for scripting
  facedeck pages iris.csv --yaml`,
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

			switch {
			case allPages:
				return printAllPages(cmd, cfg, pager)
			case cmd.Flags().Changed("page"):
				return printRenderedPage(cmd, cfg, pager, pageNumber)
			default:
				return printPageLayout(cmd, pager, asYAML)
			}
		},
	}

	addDeckFlags(cmd, &flags)
	cmd.Flags().IntVar(&pageNumber, "page", 0, "one-based page to render to stdout")
	cmd.Flags().BoolVar(&allPages, "all", false, "render every page to stdout in order")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "emit the page layout as YAML")

	return cmd
}

// printRenderedPage renders one page through the configured renderer and
// writes the artifact to stdout.
func printRenderedPage(cmd *cobra.Command, cfg *config.Config, pager *paging.Pager, pageNumber int) error {
	dispatcher, _, err := buildDispatcher(cfg, pager)
	if err != nil {
		return err
	}

	artifact, err := dispatcher.Render(cmd.Context(), pageNumber-1)
	if err != nil {
		return err
	}

	cmd.Println(artifact)
	return nil
}

// printAllPages renders every page in order to stdout, separated by a page
// header line.
func printAllPages(cmd *cobra.Command, cfg *config.Config, pager *paging.Pager) error {
	dispatcher, _, err := buildDispatcher(cfg, pager)
	if err != nil {
		return err
	}

	for i := range pager.Count() {
		artifact, renderErr := dispatcher.Render(cmd.Context(), i)
		if renderErr != nil {
			return renderErr
		}
		cmd.Printf("--- page %d/%d ---\n", i+1, pager.Count())
		cmd.Println(artifact)
	}
	return nil
}

// printPageLayout writes one line per page: index, row range, row count.
func printPageLayout(cmd *cobra.Command, pager *paging.Pager, asYAML bool) error {
	metas := make([]paging.PageMeta, 0, pager.Count())
	for i := range pager.Count() {
		meta, err := pager.Meta(i)
		if err != nil {
			return err
		}
		metas = append(metas, meta)
	}

	if asYAML {
		data, err := yaml.Marshal(metas)
		if err != nil {
			return fmt.Errorf("marshalling page layout: %w", err)
		}
		cmd.Print(string(data))
		return nil
	}

	cmd.Printf("%s rows in %s pages of up to %s\n",
		tui.FormatCount(pager.TotalRows()),
		tui.FormatCount(pager.Count()),
		tui.FormatCount(pager.PageSize()),
	)
	for _, meta := range metas {
		cmd.Printf("  page %s: rows %s-%s (%s rows)\n",
			tui.FormatCount(meta.Index+1),
			tui.FormatCount(meta.RowStart+1),
			tui.FormatCount(meta.RowEnd),
			tui.FormatCount(meta.RowEnd-meta.RowStart),
		)
	}
	return nil
}
