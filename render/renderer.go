package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/rshade/facedeck/internal/logging"
	"github.com/rshade/facedeck/paging"
)

// Dispatcher construction errors.
var (
	ErrNilPager    = errors.New("dispatcher requires a pager")
	ErrNilRenderer = errors.New("dispatcher requires a renderer")
)

// Renderer draws one page of a deck into an artifact of type T. The artifact
// type is opaque to the host: strings, images, and byte blobs are all fine.
// Implementations must treat the page's matrix and labels as read-only.
type Renderer[T any] interface {
	// Name identifies the renderer in registries, cache keys, and logs.
	Name() string

	// Render draws the page. Feature-to-glyph mapping is entirely the
	// renderer's business.
	Render(ctx context.Context, page paging.Page) (T, error)
}

// Dispatcher binds one Pager to one Renderer. Its Render does argument
// marshaling only: fetch the page, invoke the renderer, pass the artifact
// back unmodified. An optional cache short-circuits repeat renders of the
// same page.
type Dispatcher[T any] struct {
	pager    *paging.Pager
	renderer Renderer[T]
	cache    *Cache[T]
}

// NewDispatcher builds a Dispatcher over a pager and renderer.
func NewDispatcher[T any](pager *paging.Pager, renderer Renderer[T]) (*Dispatcher[T], error) {
	if pager == nil {
		return nil, ErrNilPager
	}
	if renderer == nil {
		return nil, ErrNilRenderer
	}
	return &Dispatcher[T]{pager: pager, renderer: renderer}, nil
}

// WithCache attaches a write-through artifact cache.
func (d *Dispatcher[T]) WithCache(cache *Cache[T]) *Dispatcher[T] {
	d.cache = cache
	return d
}

// Pager returns the dispatcher's pager.
func (d *Dispatcher[T]) Pager() *paging.Pager { return d.pager }

// RendererName returns the bound renderer's name.
func (d *Dispatcher[T]) RendererName() string { return d.renderer.Name() }

// Render renders page i. A cached artifact is returned as-is without
// invoking the renderer; otherwise the renderer runs and its artifact is
// cached and returned unmodified. Page range errors pass through from the
// pager.
func (d *Dispatcher[T]) Render(ctx context.Context, i int) (T, error) {
	var zero T

	page, err := d.pager.Get(i)
	if err != nil {
		return zero, err
	}

	log := logging.FromContext(ctx)
	key := CacheKey{
		DeckVersion: d.pager.Deck().Version,
		Page:        i,
		Renderer:    d.renderer.Name(),
	}

	if d.cache != nil {
		if artifact, cacheErr := d.cache.Get(key); cacheErr == nil {
			log.Debug().
				Ctx(ctx).
				Str("component", "render").
				Str("operation", "dispatch").
				Str("cache_key", key.String()).
				Msg("artifact served from cache")
			return artifact, nil
		}
	}

	artifact, err := d.renderer.Render(ctx, page)
	if err != nil {
		return zero, fmt.Errorf("renderer %q page %d: %w", d.renderer.Name(), i, err)
	}

	if d.cache != nil {
		d.cache.Put(key, artifact)
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "render").
		Str("operation", "dispatch").
		Str("renderer", d.renderer.Name()).
		Int("page", i).
		Int("rows", page.Rows()).
		Msg("page rendered")

	return artifact, nil
}

// RenderCurrent renders the page under the pager's cursor.
func (d *Dispatcher[T]) RenderCurrent(ctx context.Context) (T, error) {
	return d.Render(ctx, d.pager.Current())
}
