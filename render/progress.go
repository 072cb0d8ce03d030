package render

import "sync"

// ProgressCallback is invoked after each page finishes prerendering.
type ProgressCallback func(*Progress)

// Progress tracks prerender completion. It is safe for concurrent use.
type Progress struct {
	mu         sync.Mutex
	totalPages int
	rendered   int
}

// NewProgress builds a Progress for totalPages pages.
func NewProgress(totalPages int) *Progress {
	return &Progress{totalPages: totalPages}
}

// Add records n more rendered pages.
func (p *Progress) Add(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rendered += n
}

// ProgressSnapshot is a point-in-time copy of prerender progress.
type ProgressSnapshot struct {
	TotalPages      int
	Rendered        int
	PercentComplete float64
}

// Snapshot returns a consistent copy of the current progress.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap := ProgressSnapshot{
		TotalPages: p.totalPages,
		Rendered:   p.rendered,
	}
	if p.totalPages > 0 {
		snap.PercentComplete = float64(p.rendered) / float64(p.totalPages) * 100
	}
	return snap
}
