// Command facedeck prepares tabular datasets as paged face-glyph decks and
// serves them to a renderer, interactively or in batch.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/rshade/facedeck/internal/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev" //nolint:gochecknoglobals // Build-time version injection.

func main() {
	os.Exit(run())
}

// run executes the root command and maps the outcome to an exit code. It is
// separate from main so deferred cleanup inside the command tree runs
// before the process exits.
func run() int {
	// A .env file is optional; absence is not an error.
	_ = godotenv.Load()

	root := cli.NewRootCmd(version)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
