// Package sketch is the reference facedeck renderer. It draws each row of a
// page as a small ASCII face whose shape tracks the row's leading feature
// values, laid out in a grid with labels underneath.
//
// The mapping here is one renderer's choice, not a contract: feature 0
// drives face width, 1 the eyes, 2 the brows, 3 the mouth, and 4 the face
// color. Remaining features are ignored.
package sketch

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/facedeck/paging"
)

// Renderer identity used for registration and cache keys.
const (
	// Name is the renderer's registry name.
	Name = "sketch"

	// Version is the renderer's semver version.
	Version = "1.0.0"

	// Frames is the frame-format constraint this renderer supports.
	Frames = ">= 1.0, < 2"
)

// Grid layout bounds.
const (
	DefaultColumns = 5
	MinColumns     = 1
)

// Feature buckets: values in [-1, 1] fold into low, mid, high.
const (
	bucketLow = iota
	bucketMid
	bucketHigh

	bucketCut = 1.0 / 3.0
)

// Face part glyphs indexed by bucket.
var (
	innerWidths = []int{7, 9, 11}
	browGlyphs  = []string{`\   /`, `-   -`, `/   \`}
	eyeGlyphs   = []string{". .", "o o", "O O"}
	mouthGlyphs = []string{`/~\`, `---`, `\_/`}
	faceColors  = []lipgloss.Color{
		lipgloss.Color("36"),  // teal
		lipgloss.Color("178"), // gold
		lipgloss.Color("203"), // coral
	}
)

// Renderer draws pages as face-glyph grids. The artifact is a ready-to-print
// string.
type Renderer struct {
	columns int
}

// New builds a sketch renderer with the default grid width.
func New() *Renderer {
	return &Renderer{columns: DefaultColumns}
}

// WithColumns sets how many faces sit on one grid row. Values below
// MinColumns are clamped.
func (r *Renderer) WithColumns(n int) *Renderer {
	if n < MinColumns {
		n = MinColumns
	}
	r.columns = n
	return r
}

// Name returns the registry name.
func (r *Renderer) Name() string { return Name }

// Render draws every row of the page as a face and arranges the faces in a
// grid. Labels, when present, sit centered under their face.
func (r *Renderer) Render(_ context.Context, page paging.Page) (string, error) {
	if page.Rows() == 0 {
		return "", nil
	}

	faces := make([]string, page.Rows())
	for row := range page.Rows() {
		label := ""
		if page.Labels != nil {
			label = page.Labels[row]
		}
		faces[row] = drawFace(page.Matrix.Row(row), label)
	}

	var grid []string
	for start := 0; start < len(faces); start += r.columns {
		end := min(start+r.columns, len(faces))
		grid = append(grid, lipgloss.JoinHorizontal(lipgloss.Top, faces[start:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, grid...), nil
}

// drawFace renders one face from a row's scaled feature values. Missing
// trailing features default to the middle bucket.
func drawFace(features []float64, label string) string {
	width := innerWidths[bucket(feature(features, 0))]
	brows := browGlyphs[bucket(feature(features, 1))]
	eyes := eyeGlyphs[bucket(feature(features, 2))]
	mouth := mouthGlyphs[bucket(feature(features, 3))]
	color := faceColors[bucket(feature(features, 4))]

	lines := []string{
		"." + strings.Repeat("-", width) + ".",
		boxLine(brows, width),
		boxLine(eyes, width),
		boxLine("|", width),
		boxLine(mouth, width),
		"'" + strings.Repeat("-", width) + "'",
	}

	face := lipgloss.NewStyle().
		Foreground(color).
		Render(strings.Join(lines, "\n"))

	cell := lipgloss.NewStyle().
		Width(width + 4).
		Align(lipgloss.Center)

	if label == "" {
		return cell.Render(face)
	}
	labelLine := lipgloss.NewStyle().
		Width(width + 2).
		Align(lipgloss.Center).
		Render(truncate(label, width+2))
	return cell.Render(face + "\n" + labelLine)
}

// boxLine centers content between the face's side walls.
func boxLine(content string, width int) string {
	pad := width - len(content)
	left := pad / 2
	right := pad - left
	return "|" + strings.Repeat(" ", left) + content + strings.Repeat(" ", right) + "|"
}

// bucket folds a scaled value into low, mid, or high.
func bucket(v float64) int {
	switch {
	case v < -bucketCut:
		return bucketLow
	case v > bucketCut:
		return bucketHigh
	default:
		return bucketMid
	}
}

// feature returns the i-th feature, or 0 when the row is narrower.
func feature(features []float64, i int) float64 {
	if i >= len(features) {
		return 0
	}
	return features[i]
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
