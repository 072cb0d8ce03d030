// Package render connects prepared pages to glyph renderers.
//
// Renderers are black boxes behind the Renderer interface; how a feature
// becomes an eyebrow angle is entirely theirs. This package contains the
// host-side plumbing around them, including:
//   - Dispatcher: fetches a page and hands it to a renderer, nothing more
//   - Registry: named renderer registration with semver validation
//   - Cache: in-memory TTL cache of rendered artifacts per deck version
//   - Prerenderer: bounded-concurrency rendering of whole decks
//
// Page extraction is cheap and never cached; only the artifacts produced by
// external renderers are.
package render
