package render

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Masterminds/semver/v3"
)

// FrameVersion is the version of the page frame format this host hands to
// renderers. Renderers registered with a frame constraint are checked
// against it.
const FrameVersion = "1.0.0"

// Registry errors.
var (
	ErrInvalidVersion         = errors.New("renderer version is not valid semver")
	ErrInvalidFrameConstraint = errors.New("invalid frame constraint")
	ErrIncompatibleFrame      = errors.New("renderer does not support this frame version")
	ErrUnknownRenderer        = errors.New("renderer not registered")
)

// registration is one named renderer with its declared version.
type registration[T any] struct {
	renderer Renderer[T]
	version  *semver.Version
}

// Registry holds named renderers keyed by Renderer.Name. Registering the
// same name twice keeps the higher version. Registries are safe for
// concurrent use.
type Registry[T any] struct {
	frame *semver.Version

	mu      sync.RWMutex
	entries map[string]registration[T]
}

// NewRegistry builds an empty registry for the current FrameVersion.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		frame:   semver.MustParse(FrameVersion),
		entries: make(map[string]registration[T]),
	}
}

// Register adds a renderer under its name. version must be valid semver.
// frames, when non-empty, is a semver constraint (for example ">= 1.0, < 2")
// that the host FrameVersion must satisfy; renderers built for another frame
// format are rejected here instead of failing mid-render. Registering a name
// again keeps whichever version is higher.
func (r *Registry[T]) Register(renderer Renderer[T], version, frames string) error {
	if renderer == nil {
		return ErrNilRenderer
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidVersion, version, err)
	}

	if frames != "" {
		constraint, constraintErr := semver.NewConstraint(frames)
		if constraintErr != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidFrameConstraint, frames, constraintErr)
		}
		if !constraint.Check(r.frame) {
			return fmt.Errorf("%w: renderer %q wants %q, host frame is %s",
				ErrIncompatibleFrame, renderer.Name(), frames, r.frame)
		}
	}

	name := renderer.Name()
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[name]; ok && !v.GreaterThan(existing.version) {
		// Older or equal registration never displaces the current one.
		return nil
	}
	r.entries[name] = registration[T]{renderer: renderer, version: v}
	return nil
}

// Lookup returns the renderer registered under name.
func (r *Registry[T]) Lookup(name string) (Renderer[T], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
	}
	return reg.renderer, nil
}

// Version returns the registered version of the named renderer.
func (r *Registry[T]) Version(name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.entries[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
	}
	return reg.version.String(), nil
}

// Names returns the registered renderer names in sorted order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
