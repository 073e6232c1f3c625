package dropdown

import (
	"slices"

	"github.com/zjrosen/dropsearch/internal/catalog"
	"github.com/zjrosen/dropsearch/internal/search"
)

// State is the widget's state machine with no rendering concerns.
// The zero value is not usable; call NewState.
type State struct {
	ref    []catalog.Category
	filter search.FilterFunc

	visible    []catalog.Category
	selected   *catalog.Category
	searchText string
	open       bool
}

// NewState returns a closed state showing all of ref with nothing selected.
// A nil filter matches titles by case-insensitive substring.
func NewState(ref []catalog.Category, filter search.FilterFunc) State {
	if filter == nil {
		filter = search.Plain(search.Substring{})
	}
	return State{
		ref:     ref,
		filter:  filter,
		visible: slices.Clone(ref),
	}
}

// SetSearchText stores s and recomputes the visible items. It reports
// whether the selection changed, which only happens when s is empty.
func (s *State) SetSearchText(text string) bool {
	s.searchText = text
	return s.react()
}

// react recomputes visible from the reference set, never from the
// previous visible list.
func (s *State) react() bool {
	if s.searchText == "" {
		hadSelection := s.selected != nil
		s.selected = nil
		s.visible = slices.Clone(s.ref)
		return hadSelection
	}
	s.visible = s.filter(s.ref, s.searchText)
	return false
}

// SetFilter swaps the matching strategy and recomputes the visible items.
// The selection is kept.
func (s *State) SetFilter(filter search.FilterFunc) {
	if filter == nil {
		filter = search.Plain(search.Substring{})
	}
	s.filter = filter
	if s.searchText != "" {
		s.visible = s.filter(s.ref, s.searchText)
	}
}

// ClickSearch opens the list.
func (s *State) ClickSearch() {
	s.open = true
}

// Select makes the visible item titled title the selection and closes the
// list. Titles not currently visible are ignored and false is returned.
func (s *State) Select(title string) bool {
	for _, c := range s.visible {
		if c.Title == title {
			picked := c
			s.selected = &picked
			s.open = false
			return true
		}
	}
	return false
}

// Close hides the list. Selection and search text are kept.
func (s *State) Close() {
	s.open = false
}

// Visible returns the items matching the current search text, in order.
func (s State) Visible() []catalog.Category {
	return slices.Clone(s.visible)
}

// Selected returns the selected category, if any.
func (s State) Selected() (catalog.Category, bool) {
	if s.selected == nil {
		return catalog.Category{}, false
	}
	return *s.selected, true
}

// IsSelected reports whether title is the current selection.
func (s State) IsSelected(title string) bool {
	return s.selected != nil && s.selected.Title == title
}

// SearchText returns the current search text.
func (s State) SearchText() string {
	return s.searchText
}

// IsOpen reports whether the list is shown.
func (s State) IsOpen() bool {
	return s.open
}
