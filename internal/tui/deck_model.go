package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/facedeck/paging"
	"github.com/rshade/facedeck/render"
)

// PageRenderedMsg carries a finished page artifact back to the event loop.
type PageRenderedMsg struct {
	Index    int
	Artifact string
}

// RenderFailedMsg is sent when a page render fails.
type RenderFailedMsg struct {
	Index int
	Err   error
}

// DeckModel is the Bubble Tea model for the interactive deck viewer. It
// navigates the pager's cursor and dispatches renders; it never touches the
// prepared matrix itself. At most one render is in flight at a time.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type DeckModel struct {
	// View state
	state ViewState
	ctx   context.Context

	// Pipeline handles
	dispatcher *render.Dispatcher[string]
	pager      *paging.Pager
	cache      *render.Cache[string]

	// Current page artifact
	artifact string

	// Interactive components
	paginator paginator.Model
	gotoInput textinput.Model
	gotoErr   string

	// Display configuration
	width  int
	height int

	// Loading spinner
	loadingState *LoadingState

	// Error state
	err error
}

// NewDeckModel creates the interactive viewer over a render dispatcher. The
// returned command kicks off the first page render; an empty deck skips
// straight to the deck view.
func NewDeckModel(ctx context.Context, dispatcher *render.Dispatcher[string]) (DeckModel, tea.Cmd) {
	pager := dispatcher.Pager()

	m := DeckModel{
		state:        ViewStateLoading,
		ctx:          ctx,
		dispatcher:   dispatcher,
		pager:        pager,
		width:        defaultWidth,
		height:       defaultHeight,
		paginator:    newPageIndicator(pager.Count()),
		gotoInput:    newGotoInput(),
		loadingState: NewLoadingState(),
	}

	if pager.Count() == 0 {
		m.state = ViewStateDeck
		return m, nil
	}

	return m, tea.Batch(m.loadingState.Init(), m.renderPageCmd(pager.Current()))
}

// WithCache lets the redraw key drop cached artifacts before re-rendering.
func (m DeckModel) WithCache(cache *render.Cache[string]) DeckModel {
	m.cache = cache
	return m
}

// Init initializes the model (Bubble Tea interface).
func (m DeckModel) Init() tea.Cmd {
	if m.pager.Count() == 0 {
		return nil
	}
	return tea.Batch(m.loadingState.Init(), m.renderPageCmd(m.pager.Current()))
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m DeckModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resizing
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = winMsg.Width
		m.height = winMsg.Height
		return m, nil
	}

	// Handle render completion
	if renderedMsg, ok := msg.(PageRenderedMsg); ok {
		return m.handlePageRendered(renderedMsg)
	}

	// Handle render failure
	if failedMsg, ok := msg.(RenderFailedMsg); ok {
		return m.handleRenderFailed(failedMsg)
	}

	// Keep the spinner animated
	if tickMsg, ok := msg.(spinner.TickMsg); ok {
		if m.loadingState != nil {
			return m, m.loadingState.Update(tickMsg)
		}
		return m, nil
	}

	// Handle goto prompt input
	if m.state == ViewStateGoto {
		return m.handleGotoInput(msg)
	}

	// Handle state-specific updates
	switch m.state {
	case ViewStateLoading:
		return m.handleLoadingKeys(msg)
	case ViewStateDeck:
		return m.handleDeckUpdate(msg)
	case ViewStateError:
		return m.handleErrorUpdate(msg)
	case ViewStateGoto, ViewStateQuitting:
		return m, nil
	default:
		return m, nil
	}
}

func (m DeckModel) handlePageRendered(msg PageRenderedMsg) (tea.Model, tea.Cmd) {
	// A render that finished for a page the cursor already left is stale.
	if msg.Index != m.pager.Current() {
		return m, nil
	}
	m.artifact = msg.Artifact
	m.err = nil
	m.state = ViewStateDeck
	m.paginator.Page = msg.Index
	return m, nil
}

func (m DeckModel) handleRenderFailed(msg RenderFailedMsg) (tea.Model, tea.Cmd) {
	if msg.Index != m.pager.Current() {
		return m, nil
	}
	m.err = msg.Err
	m.state = ViewStateError
	return m, nil
}

// handleLoadingKeys only honors quit while a render is in flight, so a single
// navigation command is outstanding at any time.
func (m DeckModel) handleLoadingKeys(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m DeckModel) handleDeckUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	return m.handleDeckKeypress(keyMsg)
}

func (m DeckModel) handleDeckKeypress(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyLeft, keyH:
		if m.pager.Previous() {
			return m.startRender()
		}
		return m, nil
	case keyRight, keyL:
		if m.pager.Next() {
			return m.startRender()
		}
		return m, nil
	case keyHome:
		return m.gotoPage(0)
	case keyEnd:
		return m.gotoPage(m.pager.Count() - 1)
	case keyGoto:
		if m.pager.Count() == 0 {
			return m, nil
		}
		m.state = ViewStateGoto
		m.gotoErr = ""
		m.gotoInput.SetValue("")
		m.gotoInput.Focus()
		return m, textinput.Blink
	case keyRerender:
		return m.forceRerender()
	default:
		return m, nil
	}
}

func (m DeckModel) handleErrorUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyRerender:
			return m.forceRerender()
		}
	}
	return m, nil
}

func (m DeckModel) handleGotoInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.gotoInput, cmd = m.gotoInput.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEsc:
		m.state = ViewStateDeck
		m.gotoInput.Blur()
		return m, nil
	case keyEnter:
		return m.submitGoto()
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(keyMsg)
	return m, cmd
}

// submitGoto parses the prompt as a one-based page number and navigates.
// Invalid input keeps the prompt open with an error line.
func (m DeckModel) submitGoto() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.gotoInput.Value())
	page, err := strconv.Atoi(raw)
	if err != nil {
		m.gotoErr = fmt.Sprintf("not a page number: %q", raw)
		return m, nil
	}
	if gotoErr := m.pager.Goto(page - 1); gotoErr != nil {
		m.gotoErr = fmt.Sprintf("no page %d (deck has %d)", page, m.pager.Count())
		return m, nil
	}
	m.gotoInput.Blur()
	return m.startRender()
}

// gotoPage moves the cursor to an absolute page and renders it. Already being
// there is a no-op.
func (m DeckModel) gotoPage(index int) (tea.Model, tea.Cmd) {
	if m.pager.Count() == 0 || m.pager.Current() == index {
		return m, nil
	}
	if err := m.pager.Goto(index); err != nil {
		return m, nil
	}
	return m.startRender()
}

// startRender kicks off a render of the page now under the cursor.
func (m DeckModel) startRender() (tea.Model, tea.Cmd) {
	m.state = ViewStateLoading
	m.paginator.Page = m.pager.Current()
	return m, m.renderPageCmd(m.pager.Current())
}

// forceRerender drops cached artifacts and renders the current page again.
func (m DeckModel) forceRerender() (tea.Model, tea.Cmd) {
	if m.pager.Count() == 0 {
		return m, nil
	}
	if m.cache != nil {
		m.cache.Clear()
	}
	return m.startRender()
}

// renderPageCmd dispatches one page render off the event loop.
func (m DeckModel) renderPageCmd(index int) tea.Cmd {
	ctx := m.ctx
	dispatcher := m.dispatcher
	return func() tea.Msg {
		artifact, err := dispatcher.Render(ctx, index)
		if err != nil {
			return RenderFailedMsg{Index: index, Err: err}
		}
		return PageRenderedMsg{Index: index, Artifact: artifact}
	}
}

// newPageIndicator builds the page position indicator. Small decks get dots,
// larger ones a numeric "N/M" readout.
func newPageIndicator(count int) paginator.Model {
	p := paginator.New()
	p.Type = paginator.Dots
	if count > maxDotPages {
		p.Type = paginator.Arabic
	}
	p.ActiveDot = ActiveDotStyle.Render(dotGlyph)
	p.InactiveDot = InactiveDotStyle.Render(dotGlyph)
	if count > 0 {
		p.SetTotalPages(count)
	}
	return p
}

// newGotoInput builds the page-number prompt input.
func newGotoInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "page number"
	ti.CharLimit = 6 //nolint:mnd // Page numbers never need more digits.
	ti.Width = 12    //nolint:mnd // Prompt width.
	return ti
}
