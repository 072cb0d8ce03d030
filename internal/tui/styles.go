package tui

import "github.com/charmbracelet/lipgloss"

// ViewState identifies which screen the viewer is showing.
type ViewState int

const (
	// ViewStateLoading is shown while a page render is in flight.
	ViewStateLoading ViewState = iota
	// ViewStateDeck shows the rendered page with its status bar.
	ViewStateDeck
	// ViewStateGoto overlays the page-number prompt on the deck view.
	ViewStateGoto
	// ViewStateError is shown when a render fails.
	ViewStateError
	// ViewStateQuitting renders nothing while the program shuts down.
	ViewStateQuitting
)

// Default terminal dimensions used before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30
)

// borderPadding accounts for box borders when sizing boxed content.
const borderPadding = 4

// maxDotPages is where the page indicator switches from dots to numbers.
const maxDotPages = 12

// Key bindings handled by the viewer.
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyGoto     = "g"
	keyRerender = "r"
	keyLeft     = "left"
	keyRight    = "right"
	keyH        = "h"
	keyL        = "l"
	keyHome     = "home"
	keyEnd      = "end"
)

// msgEmptyDeck is shown when the deck has no rows to page.
const msgEmptyDeck = "Deck has no rows."

// dotGlyph is the page indicator dot.
const dotGlyph = "•"

// Shared lipgloss styles for the viewer.
//
//nolint:gochecknoglobals // Shared styles are package-level by convention.
var (
	LabelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	SubtleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	InfoStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	WarningStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	CriticalStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	BoxStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	SpinnerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	ActiveDotStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	InactiveDotStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)
