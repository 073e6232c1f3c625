// Package catalog holds the fixed set of categories offered by the dropdown.
//
// The set is reference data: it is defined once, never changes at runtime,
// and is only handed out as copies so callers cannot mutate it.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// Category is one selectable topic with its detail rows.
type Category struct {
	Title    string
	SubItems []string
	Emoji    string
}

// clone returns a deep copy so SubItems never aliases package data.
func (c Category) clone() Category {
	c.SubItems = append([]string(nil), c.SubItems...)
	return c
}

var categories = [...]Category{
	{Title: "Science", SubItems: []string{"Physics", "Chemistry", "Biology"}, Emoji: "🔬"},
	{Title: "Education", SubItems: []string{"Math", "English", "History"}, Emoji: "🎓"},
	{Title: "Sport", SubItems: []string{"Soccer", "Basketball", "Tennis"}, Emoji: "⚽"},
	{Title: "Art", SubItems: []string{"Painting", "Sculpture", "Photography"}, Emoji: "🎨"},
	{Title: "Games", SubItems: []string{"Chess", "Poker", "Monopoly"}, Emoji: "🎮"},
}

// All returns a copy of the reference set in display order.
func All() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = c.clone()
	}
	return out
}

// Len returns the number of reference categories.
func Len() int {
	return len(categories)
}

// ByTitle looks up a category by exact title.
func ByTitle(title string) (Category, bool) {
	for _, c := range categories {
		if c.Title == title {
			return c.clone(), true
		}
	}
	return Category{}, false
}

// Titles returns the category titles in display order.
func Titles() []string {
	titles := make([]string, len(categories))
	for i, c := range categories {
		titles[i] = c.Title
	}
	return titles
}

// Validate checks that titles are non-empty and unique and that every emoji
// is exactly one grapheme cluster. All problems are reported together.
func Validate(cats []Category) error {
	var errs []error
	seen := make(map[string]int, len(cats))

	for i, c := range cats {
		title := strings.TrimSpace(c.Title)
		if title == "" {
			errs = append(errs, fmt.Errorf("category %d: empty title", i))
		} else if prev, dup := seen[c.Title]; dup {
			errs = append(errs, fmt.Errorf("category %d: title %q duplicates category %d", i, c.Title, prev))
		} else {
			seen[c.Title] = i
		}

		if n := uniseg.GraphemeClusterCount(c.Emoji); n != 1 {
			errs = append(errs, fmt.Errorf("category %d (%s): emoji must be a single glyph, got %d", i, c.Title, n))
		}
	}

	return errors.Join(errs...)
}
