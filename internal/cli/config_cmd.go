package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/facedeck/internal/config"
)

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage facedeck configuration",
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd(), newConfigValidateCmd())
	return cmd
}

// newConfigShowCmd creates the config show command: the effective
// configuration (defaults, files, env, in that order) as YAML. With
// --project only defaults plus the project overlay are shown, the view a
// teammate gets without this shell's globals and env.
func newConfigShowCmd() *cobra.Command {
	var projectOnly bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd.Context())
			if projectOnly {
				projectFlag, _ := cmd.Flags().GetString("project-dir")
				startDir, err := os.Getwd()
				if err != nil {
					startDir = "."
				}
				projectDir := config.ResolveProjectDir(cmd.Context(), projectFlag, startDir)
				cfg = config.NewWithProjectDir(cmd.Context(), projectDir)
				cfg.Normalize()
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshalling config: %w", err)
			}
			cmd.Print(string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&projectOnly, "project", false, "show defaults plus the project overlay only, ignoring the global file and environment")

	return cmd
}

// newConfigInitCmd creates the config init command. Inside a project
// (without --global) it creates a project-local .facedeck/ directory with
// config.yaml and a .gitignore; otherwise it writes ~/.facedeck/config.yaml.
func newConfigInitCmd() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a configuration file with default values",
		Long: `Creates a new configuration file with default values.

Inside a directory tree that already holds a .facedeck/ directory (or when
--project-dir is set), the file is created project-locally, with a
.gitignore to keep rendered artifacts out of version control. Use --global
to write the global ~/.facedeck/config.yaml instead.`,
		Example: `  # Create project-local configuration
  facedeck config init --project-dir .

  # Create global configuration
  facedeck config init --global`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectFlag, _ := cmd.Flags().GetString("project-dir")
			startDir, err := os.Getwd()
			if err != nil {
				startDir = "."
			}
			projectDir := config.ResolveProjectDir(cmd.Context(), projectFlag, startDir)

			if projectDir != "" && !global {
				return initProjectConfig(cmd, projectDir)
			}
			return initGlobalConfig(cmd)
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "write the global config even inside a project")

	return cmd
}

// initProjectConfig creates project-local config at projectDir/config.yaml
// with a .gitignore alongside it.
func initProjectConfig(cmd *cobra.Command, projectDir string) error {
	configPath := filepath.Join(projectDir, "config.yaml")

	if err := config.WriteDefault(configPath); err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			return fmt.Errorf("%w (delete it first to reinitialize)", err)
		}
		return err
	}

	created, err := config.EnsureGitignore(projectDir)
	if err != nil {
		return fmt.Errorf("creating .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", configPath)
	if created {
		cmd.Println("Created .gitignore to keep rendered artifacts out of version control")
	}
	return nil
}

// initGlobalConfig creates global config at ~/.facedeck/config.yaml.
func initGlobalConfig(cmd *cobra.Command) error {
	path, err := config.DefaultConfigPath()
	if err != nil {
		return err
	}
	if err := config.WriteDefault(path); err != nil {
		return err
	}

	cmd.Printf("Configuration initialized at %s\n", path)
	return nil
}

// newConfigValidateCmd creates the config validate command. The root
// command's PersistentPreRunE already loaded and validated the effective
// configuration; reaching RunE means it passed.
func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the effective configuration",
		Long: `Loads the effective configuration (defaults, global file, project
overlay, environment overrides) and reports whether it validates.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd.Context())
			if err := cfg.Validate(); err != nil {
				return err
			}
			cmd.Printf("Configuration is valid: page size %d, renderer %q, encode %s\n",
				cfg.Prep.PageSize, cfg.Render.Renderer, cfg.Prep.Encode)
			return nil
		},
	}
}
