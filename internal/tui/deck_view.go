package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current view (Bubble Tea interface).
func (m DeckModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateError:
		return m.renderErrorView()
	case ViewStateLoading:
		return m.renderLoadingView()
	case ViewStateGoto:
		return m.renderGotoView()
	case ViewStateDeck:
		return m.renderDeckView()
	default:
		return ""
	}
}

// renderDeckView renders the page artifact, the page indicator, and the
// status bar.
func (m DeckModel) renderDeckView() string {
	if m.pager.Count() == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			SubtleStyle.Render(msgEmptyDeck),
			m.renderStatusBar(),
		)
	}

	var sections []string
	sections = append(sections, m.artifact)
	sections = append(sections, m.paginator.View())
	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderLoadingView renders the spinner while a page render is in flight.
func (m DeckModel) renderLoadingView() string {
	spin := ""
	if m.loadingState != nil {
		spin = m.loadingState.View() + " "
	}
	banner := InfoStyle.Render(fmt.Sprintf("%sRendering page %s...", spin, FormatCount(m.pager.Current()+1)))

	return lipgloss.JoinVertical(lipgloss.Left, banner, m.renderStatusBar())
}

// renderGotoView renders the deck view with the page-number prompt below it.
func (m DeckModel) renderGotoView() string {
	prompt := LabelStyle.Render("Go to page: ") + m.gotoInput.View()

	sections := []string{m.renderDeckView(), prompt}
	if m.gotoErr != "" {
		sections = append(sections, WarningStyle.Render(m.gotoErr))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderErrorView renders the render failure with retry help.
func (m DeckModel) renderErrorView() string {
	body := CriticalStyle.Render(fmt.Sprintf("Render failed: %v", m.err))
	help := SubtleStyle.Render("Press 'r' to retry, 'q' to quit")

	return BoxStyle.Width(m.width - borderPadding).Render(
		lipgloss.JoinVertical(lipgloss.Left, body, help),
	)
}

// renderStatusBar displays the cursor position and key help.
func (m DeckModel) renderStatusBar() string {
	position := "Page 0/0"
	if meta, err := m.pager.Meta(m.pager.Current()); err == nil {
		position = fmt.Sprintf("Page %s/%s | Rows %s-%s of %s",
			FormatCount(meta.Index+1),
			FormatCount(meta.PageCount),
			FormatCount(meta.RowStart+1),
			FormatCount(meta.RowEnd),
			FormatCount(meta.TotalRows),
		)
	}

	help := "h/l or arrows to page, g to jump, r to redraw, q to quit"
	return SubtleStyle.Render(position + " | " + help)
}
