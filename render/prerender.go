package render

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/facedeck/internal/logging"
)

// Prerenderer renders every page of a deck up front, for cache warming and
// batch export. Pages render concurrently under a bounded limit; the first
// failure cancels the remaining work.
type Prerenderer[T any] struct {
	dispatcher  *Dispatcher[T]
	concurrency int
	onProgress  ProgressCallback
}

// NewPrerenderer builds a Prerenderer over a dispatcher. Concurrency
// defaults to the number of CPUs.
func NewPrerenderer[T any](dispatcher *Dispatcher[T]) (*Prerenderer[T], error) {
	if dispatcher == nil {
		return nil, ErrNilRenderer
	}
	return &Prerenderer[T]{
		dispatcher:  dispatcher,
		concurrency: runtime.NumCPU(),
	}, nil
}

// WithConcurrency bounds the number of pages rendering at once. Values
// below 1 are clamped to 1.
func (p *Prerenderer[T]) WithConcurrency(n int) *Prerenderer[T] {
	if n < 1 {
		n = 1
	}
	p.concurrency = n
	return p
}

// WithProgressCallback sets a callback invoked after each rendered page.
func (p *Prerenderer[T]) WithProgressCallback(callback ProgressCallback) *Prerenderer[T] {
	p.onProgress = callback
	return p
}

// Run renders every page in order and returns the artifacts indexed by page.
// Each page renders exactly once. Context cancellation stops the run and
// surfaces ctx.Err via the errgroup.
func (p *Prerenderer[T]) Run(ctx context.Context) ([]T, error) {
	count := p.dispatcher.Pager().Count()
	artifacts := make([]T, count)
	progress := NewProgress(count)

	log := logging.FromContext(ctx)
	log.Debug().
		Ctx(ctx).
		Str("component", "render").
		Str("operation", "prerender").
		Int("pages", count).
		Int("concurrency", p.concurrency).
		Msg("prerender started")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i := range count {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			artifact, err := p.dispatcher.Render(gctx, i)
			if err != nil {
				return fmt.Errorf("prerender page %d: %w", i, err)
			}
			artifacts[i] = artifact

			progress.Add(1)
			if p.onProgress != nil {
				p.onProgress(progress)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().
		Ctx(ctx).
		Str("component", "render").
		Str("operation", "prerender").
		Int("pages", count).
		Str("renderer", p.dispatcher.RendererName()).
		Msg("prerender complete")

	return artifacts, nil
}
