package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// LoadingState owns the spinner shown while a page render is in flight.
type LoadingState struct {
	spinner spinner.Model
}

// NewLoadingState creates a loading spinner with the viewer's styling.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return &LoadingState{spinner: s}
}

// Init returns the command that starts the spinner ticking.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner animation and returns the next tick command.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// View renders the current spinner frame.
func (l *LoadingState) View() string {
	return l.spinner.View()
}
