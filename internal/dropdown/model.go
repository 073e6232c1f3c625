// Package dropdown implements a searchable dropdown: a search input that
// filters a fixed category list, a clickable list that marks the selected
// category with a checkmark, and a detail table of the selection's sub-items.
//
// State holds the pure state machine. Model wraps it as a Bubble Tea
// component with bubblezone hit testing. Zones are only registered once the
// host passes its final view through zone.Scan.
package dropdown

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/dropsearch/internal/catalog"
	"github.com/zjrosen/dropsearch/internal/log"
	"github.com/zjrosen/dropsearch/internal/search"
	"github.com/zjrosen/dropsearch/internal/ui/shared/table"
)

const (
	// DefaultWidth is the widget width in columns when none is set.
	DefaultWidth = 30
	// MinWidth is the narrowest width SetWidth accepts.
	MinWidth = 16

	placeholder     = "Search..."
	suggestDistance = 2
)

// SelectionChangedMsg is emitted whenever the selected category changes.
// Selected is false when the selection was cleared.
type SelectionChangedMsg struct {
	Category catalog.Category
	Selected bool
}

// Model is the Bubble Tea component for the dropdown.
type Model struct {
	state      State
	input      textinput.Model
	table      table.Model
	width      int
	zonePrefix string
}

// New creates a focused dropdown over the fixed catalog. A nil filter uses
// case-insensitive substring matching.
func New(filter search.FilterFunc) Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Focus()

	m := Model{
		state:      NewState(catalog.All(), filter),
		input:      ti,
		table:      newDetailTable(),
		zonePrefix: newZonePrefix(),
	}
	return m.SetWidth(DefaultWidth)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key, mouse and cursor blink messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.input.Focused() {
		return m, nil
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == prev {
		return m, cmd
	}

	m, selCmd := m.applySearchText(m.input.Value())
	return m, tea.Batch(cmd, selCmd)
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	// Items first: the open list is drawn over everything below the input.
	if m.state.IsOpen() {
		for _, c := range m.state.visible {
			if z := zone.Get(m.itemZoneID(c.Title)); z != nil && z.InBounds(msg) {
				return m.selectTitle(c.Title)
			}
		}
	}

	if z := zone.Get(m.inputZoneID()); z != nil && z.InBounds(msg) {
		m.state.ClickSearch()
		log.Debug(log.CatUI, "search box clicked", "open", true)
		cmd := m.input.Focus()
		return m, cmd
	}

	return m, nil
}

func (m Model) selectTitle(title string) (Model, tea.Cmd) {
	before, had := m.state.Selected()
	if !m.state.Select(title) {
		return m, nil
	}
	log.Info(log.CatUI, "category selected", "title", title)

	after, _ := m.state.Selected()
	if had && before.Title == after.Title {
		return m, nil
	}
	return m, selectionChanged(after, true)
}

func (m Model) applySearchText(text string) (Model, tea.Cmd) {
	before, _ := m.state.Selected()
	changed := m.state.SetSearchText(text)
	log.Debug(log.CatUI, "search text changed", "query", text, "visible", len(m.state.visible))
	if !changed {
		return m, nil
	}
	log.Info(log.CatUI, "selection cleared", "was", before.Title)
	return m, selectionChanged(before, false)
}

func selectionChanged(c catalog.Category, selected bool) tea.Cmd {
	return func() tea.Msg {
		return SelectionChangedMsg{Category: c, Selected: selected}
	}
}

// SetSearchText replaces the input value as if it had been typed.
func (m Model) SetSearchText(text string) (Model, tea.Cmd) {
	if text == m.input.Value() {
		return m, nil
	}
	m.input.SetValue(text)
	return m.applySearchText(text)
}

// SetFilter swaps the matching strategy, e.g. after a config reload.
func (m Model) SetFilter(filter search.FilterFunc) Model {
	m.state.SetFilter(filter)
	return m
}

// Focus focuses the search input.
func (m Model) Focus() (Model, tea.Cmd) {
	cmd := m.input.Focus()
	return m, cmd
}

// Blur unfocuses the search input and closes the list.
func (m Model) Blur() Model {
	m.input.Blur()
	m.state.Close()
	return m
}

// Focused reports whether the search input has focus.
func (m Model) Focused() bool {
	return m.input.Focused()
}

// SetWidth sets the widget width in columns.
func (m Model) SetWidth(width int) Model {
	m.width = max(width, MinWidth)
	// border, padding and the cursor cell
	m.input.Width = m.width - 5
	m.table = m.table.SetWidth(m.width)
	return m
}

// Width returns the widget width in columns.
func (m Model) Width() int {
	return m.width
}

// State returns a copy of the widget state.
func (m Model) State() State {
	return m.state
}

// Visible returns the items matching the search text.
func (m Model) Visible() []catalog.Category {
	return m.state.Visible()
}

// Selected returns the selected category, if any.
func (m Model) Selected() (catalog.Category, bool) {
	return m.state.Selected()
}

// SearchText returns the search input value.
func (m Model) SearchText() string {
	return m.state.SearchText()
}

// IsOpen reports whether the list is shown.
func (m Model) IsOpen() bool {
	return m.state.IsOpen()
}
