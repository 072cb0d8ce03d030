// Package cli wires the facedeck command tree: dataset preparation, page
// navigation, batch export, and configuration management.
package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/facedeck/internal/config"
	"github.com/rshade/facedeck/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// configCtxKey keys the loaded *config.Config in a command context.
type configCtxKey struct{}

// configFromContext returns the configuration loaded during
// PersistentPreRunE, or compiled-in defaults when none was attached.
func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configCtxKey{}).(*config.Config); ok {
		return cfg
	}
	return config.New()
}

// NewRootCmd creates the root Cobra command for the facedeck CLI. It wires
// up configuration loading, logging, and the subcommands (view, pages,
// inspect, export, config).
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "facedeck",
		Short:   "facedeck glyph-deck CLI",
		Long:    "facedeck: prepare tabular data as paged face-glyph decks and view them interactively",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			projectFlag, _ := cmd.Flags().GetString("project-dir")
			startDir, err := os.Getwd()
			if err != nil {
				startDir = "."
			}
			projectDir := config.ResolveProjectDir(cmd.Context(), projectFlag, startDir)

			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cmd.Context(), config.LoadOptions{
				ConfigPath: configPath,
				ProjectDir: projectDir,
			})
			if err != nil {
				return err
			}

			ctx := context.WithValue(cmd.Context(), configCtxKey{}, cfg)
			cmd.SetContext(ctx)

			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "path to the config file (default ~/.facedeck/config.yaml)")
	cmd.PersistentFlags().String("project-dir", "", "project directory holding a .facedeck/ overlay")
	cmd.AddCommand(newViewCmd(), newPagesCmd(), newInspectCmd(), newExportCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # View a dataset as an interactive face-glyph deck
  facedeck view iris.csv

  # Smaller pages render faster on slow terminals
  facedeck view iris.csv --page-size 10

  # List the page layout without rendering anything
  facedeck pages iris.csv

  # Print one rendered page to stdout
  facedeck pages iris.csv --page 2

  # Show how columns were classified and scaled
  facedeck inspect iris.csv

  # Render every page to files
  facedeck export iris.csv --out ./deck

  # Initialize configuration
  facedeck config init`
