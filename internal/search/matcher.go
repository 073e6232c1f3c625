// Package search filters the category reference set by a free-text query.
package search

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Mode names a matching strategy.
type Mode string

const (
	// ModeSubstring keeps titles containing the query, ignoring case.
	ModeSubstring Mode = "substring"
	// ModeFuzzy keeps titles containing the query's characters in order.
	ModeFuzzy Mode = "fuzzy"
)

// Matcher decides whether a title satisfies a non-empty query.
type Matcher interface {
	Match(title, query string) bool
	Mode() Mode
}

// ParseMode maps a config value to a Mode. Empty means ModeSubstring.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSubstring:
		return ModeSubstring, nil
	case ModeFuzzy:
		return ModeFuzzy, nil
	default:
		return "", fmt.Errorf("unknown search mode %q (want %q or %q)", s, ModeSubstring, ModeFuzzy)
	}
}

// NewMatcher returns the matcher for mode, falling back to Substring.
func NewMatcher(mode Mode) Matcher {
	if mode == ModeFuzzy {
		return Fuzzy{}
	}
	return Substring{}
}

// Substring is the default case-insensitive substring matcher.
type Substring struct{}

func (Substring) Match(title, query string) bool {
	return strings.Contains(strings.ToLower(title), strings.ToLower(query))
}

func (Substring) Mode() Mode { return ModeSubstring }

// Fuzzy matches when every query character appears in the title in order.
type Fuzzy struct{}

func (Fuzzy) Match(title, query string) bool {
	return len(fuzzy.Find(strings.ToLower(query), []string{strings.ToLower(title)})) > 0
}

func (Fuzzy) Mode() Mode { return ModeFuzzy }
