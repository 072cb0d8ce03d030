package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/rshade/facedeck/dataset"
	"github.com/rshade/facedeck/ingest"
	"github.com/rshade/facedeck/internal/config"
	"github.com/rshade/facedeck/paging"
	"github.com/rshade/facedeck/prep"
	"github.com/rshade/facedeck/render"
	"github.com/rshade/facedeck/renderers/sketch"
)

// ErrBadSeparator rejects multi-rune --separator values.
var ErrBadSeparator = errors.New("separator must be a single character")

// deckFlags are the flags shared by every command that builds a deck from a
// dataset file. Zero values mean "use the configured default".
type deckFlags struct {
	pageSize  int
	noLabels  bool
	maxLevels int
	encode    string
	renderer  string
	separator string
	sortExpr  string
	types     string
	noCache   bool
}

// addDeckFlags registers the shared deck flags on cmd.
func addDeckFlags(cmd *cobra.Command, f *deckFlags) {
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "rows per page (default from config)")
	cmd.Flags().BoolVar(&f.noLabels, "no-labels", false, "skip label extraction; categorical columns encode into the matrix")
	cmd.Flags().IntVar(&f.maxLevels, "max-levels", 0, "categorical classification threshold (default from config)")
	cmd.Flags().StringVar(&f.encode, "encode", "", "categorical encode order: first-seen or lexical")
	cmd.Flags().StringVar(&f.renderer, "renderer", "", "renderer name (default from config)")
	cmd.Flags().StringVar(&f.separator, "separator", "", "csv field separator (default ',')")
	cmd.Flags().StringVar(&f.sortExpr, "sort", "", "sort rows before paging: 'column' or 'column:desc'")
	cmd.Flags().StringVar(&f.types, "types", "", "per-column type overrides: 'col:string,col2:number'")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the render artifact cache")
}

// applyTo overlays the changed flags onto cfg and re-validates. Flags the
// user did not set leave the configured values alone.
func (f *deckFlags) applyTo(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("page-size") {
		cfg.Prep.PageSize = f.pageSize
	}
	if f.noLabels {
		cfg.Prep.Labels = false
	}
	if cmd.Flags().Changed("max-levels") {
		cfg.Prep.MaxLevels = f.maxLevels
	}
	if f.encode != "" {
		cfg.Prep.Encode = prep.EncodeOrder(f.encode)
	}
	if f.renderer != "" {
		cfg.Render.Renderer = f.renderer
	}
	if f.noCache {
		cfg.Render.CacheEnabled = false
	}
	if f.separator != "" && utf8.RuneCountInString(f.separator) != 1 {
		return fmt.Errorf("%w: got %q", ErrBadSeparator, f.separator)
	}
	return cfg.Validate()
}

// comma returns the CSV separator rune, zero when unset.
func (f *deckFlags) comma() rune {
	if f.separator == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(f.separator)
	return r
}

// ErrBadTypeOverride rejects malformed --types entries.
var ErrBadTypeOverride = errors.New("type override must be 'column:string' or 'column:number'")

// parseTypeOverrides parses the --types flag into an ingest schema. An
// empty flag means full auto-detection.
func parseTypeOverrides(raw string) (map[string]ingest.ColumnType, error) {
	if raw == "" {
		return nil, nil
	}

	types := make(map[string]ingest.ColumnType)
	for _, entry := range strings.Split(raw, ",") {
		name, kind, ok := strings.Cut(strings.TrimSpace(entry), ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: got %q", ErrBadTypeOverride, entry)
		}
		switch kind {
		case "string":
			types[name] = ingest.ColumnTypeString
		case "number":
			types[name] = ingest.ColumnTypeNumber
		case "auto":
			types[name] = ingest.ColumnTypeAuto
		default:
			return nil, fmt.Errorf("%w: got %q", ErrBadTypeOverride, entry)
		}
	}
	return types, nil
}

// buildPager loads the dataset at path, runs the prepare pipeline, and
// partitions the result into pages per the effective configuration.
func buildPager(ctx context.Context, cfg *config.Config, path string, f *deckFlags) (*paging.Pager, error) {
	types, err := parseTypeOverrides(f.types)
	if err != nil {
		return nil, err
	}

	ds, err := ingest.LoadCSV(ctx, path, ingest.Options{Comma: f.comma(), Types: types})
	if err != nil {
		return nil, err
	}

	if f.sortExpr != "" {
		column, order, parseErr := dataset.ParseSortExpression(f.sortExpr)
		if parseErr != nil {
			return nil, parseErr
		}
		ds, err = dataset.SortBy(ds, column, order)
		if err != nil {
			return nil, err
		}
	}

	deck, err := prep.Prepare(ctx, ds, prep.Options{
		Labels:      cfg.Prep.Labels,
		MaxLevels:   cfg.Prep.MaxLevels,
		EncodeOrder: cfg.Prep.Encode,
	})
	if err != nil {
		return nil, err
	}

	return paging.New(deck, cfg.Prep.PageSize)
}

// newRendererRegistry builds the registry of compiled-in renderers.
func newRendererRegistry() (*render.Registry[string], error) {
	registry := render.NewRegistry[string]()
	if err := registry.Register(sketch.New(), sketch.Version, sketch.Frames); err != nil {
		return nil, err
	}
	return registry, nil
}

// buildDispatcher binds the configured renderer to the pager, with an
// artifact cache when caching is enabled. The cache (nil when disabled) is
// returned so interactive callers can drop it on demand.
func buildDispatcher(cfg *config.Config, pager *paging.Pager) (*render.Dispatcher[string], *render.Cache[string], error) {
	registry, err := newRendererRegistry()
	if err != nil {
		return nil, nil, err
	}

	renderer, err := registry.Lookup(cfg.Render.Renderer)
	if err != nil {
		return nil, nil, err
	}

	dispatcher, err := render.NewDispatcher(pager, renderer)
	if err != nil {
		return nil, nil, err
	}

	var cache *render.Cache[string]
	if cfg.Render.CacheEnabled && render.CacheEnabledFromEnv() {
		cache, err = render.NewCache[string](cfg.Render.CacheTTLSeconds)
		if err != nil {
			return nil, nil, err
		}
		dispatcher.WithCache(cache)
	}

	return dispatcher, cache, nil
}
