package search

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/dropsearch/internal/cachemanager"
	"github.com/zjrosen/dropsearch/internal/catalog"
)

func titles(cats []catalog.Category) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.Title
	}
	return out
}

func newCached(m Matcher) (*Cached, *cachemanager.InMemoryCacheManager[string, []string]) {
	cache := cachemanager.NewInMemoryCacheManager[string, []string]("test", time.Minute, time.Minute)
	return NewCached(m, cache, time.Minute), cache
}

func TestFilter_Substring(t *testing.T) {
	ref := catalog.All()

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Science", "Education", "Sport", "Art", "Games"}},
		{"sc", []string{"Science"}},
		{"SC", []string{"Science"}},
		{"a", []string{"Education", "Art", "Games"}},
		{"t", []string{"Education", "Sport", "Art"}},
		{"ar", []string{"Art"}},
		{"zzz", []string{}},
		{" ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Filter(ref, tt.query, Substring{})
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestFilter_Fuzzy(t *testing.T) {
	got := Filter(catalog.All(), "gms", Fuzzy{})
	assert.Equal(t, []string{"Games"}, titles(got))

	got = Filter(catalog.All(), "SCE", Fuzzy{})
	assert.Equal(t, []string{"Science"}, titles(got))

	assert.Empty(t, Filter(catalog.All(), "xq", Fuzzy{}))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeSubstring, m)

	m, err = ParseMode(" Fuzzy ")
	require.NoError(t, err)
	assert.Equal(t, ModeFuzzy, m)

	_, err = ParseMode("regex")
	require.ErrorContains(t, err, `unknown search mode "regex"`)

	assert.Equal(t, ModeFuzzy, NewMatcher(ModeFuzzy).Mode())
	assert.Equal(t, ModeSubstring, NewMatcher("other").Mode())
}

func TestSuggest(t *testing.T) {
	ref := catalog.All()

	s, ok := Suggest(ref, "scince", 2)
	require.True(t, ok)
	assert.Equal(t, "Science", s)

	s, ok = Suggest(ref, "GAMSE", 2)
	require.True(t, ok)
	assert.Equal(t, "Games", s)

	_, ok = Suggest(ref, "astronomy", 2)
	assert.False(t, ok)

	_, ok = Suggest(ref, "  ", 2)
	assert.False(t, ok)
}

func TestCached_MatchesPlainFilter(t *testing.T) {
	cached, cache := newCached(Substring{})
	ref := catalog.All()

	for _, q := range []string{"sc", "SC", "a", "zzz", "Art"} {
		assert.Equal(t, titles(Filter(ref, q, Substring{})), titles(cached.Filter(ref, q)), "query %q", q)
	}
	// "sc" and "SC" share a key.
	assert.Equal(t, 4, cache.Len())

	require.NoError(t, cached.Invalidate())
	assert.Zero(t, cache.Len())
}

func TestCached_EmptyQueryReturnsCopyOfRef(t *testing.T) {
	cached, cache := newCached(Substring{})
	ref := catalog.All()

	got := cached.Filter(ref, "")
	assert.Equal(t, titles(ref), titles(got))
	assert.Zero(t, cache.Len())
}

func TestCached_NonReferenceInputBypassesCache(t *testing.T) {
	cached, cache := newCached(Substring{})
	subset := catalog.All()[:2]

	got := cached.Filter(subset, "e")
	assert.Equal(t, []string{"Science", "Education"}, titles(got))
	assert.Zero(t, cache.Len())
}

func TestCached_ModesDoNotShareKeys(t *testing.T) {
	cache := cachemanager.NewInMemoryCacheManager[string, []string]("test", time.Minute, time.Minute)
	sub := NewCached(Substring{}, cache, time.Minute)
	fz := NewCached(Fuzzy{}, cache, time.Minute)
	ref := catalog.All()

	assert.Empty(t, sub.Filter(ref, "gms"))
	assert.Equal(t, []string{"Games"}, titles(fz.Filter(ref, "gms")))
}

func TestPlain(t *testing.T) {
	f := Plain(Substring{})
	assert.Equal(t, []string{"Science"}, titles(f(catalog.All(), "sci")))
}

func TestFilter_Properties(t *testing.T) {
	ref := catalog.All()
	cached, _ := newCached(Substring{})

	rapid.Check(t, func(t *rapid.T) {
		query := rapid.OneOf(
			rapid.StringMatching(`[a-zA-Z]{0,4}`),
			rapid.SampledFrom([]string{"", "sc", "Science", "ART", "e", "ga", "🔬"}),
		).Draw(t, "query")

		got := Filter(ref, query, Substring{})

		// Exactly the titles containing query, case-insensitively, in order.
		var want []string
		for _, c := range ref {
			if strings.Contains(strings.ToLower(c.Title), strings.ToLower(query)) {
				want = append(want, c.Title)
			}
		}
		if len(titles(got)) != len(want) {
			t.Fatalf("query %q: got %v want %v", query, titles(got), want)
		}
		for i := range want {
			if got[i].Title != want[i] {
				t.Fatalf("query %q: got %v want %v", query, titles(got), want)
			}
		}

		// Cached filtering agrees with direct filtering.
		if c := titles(cached.Filter(ref, query)); strings.Join(c, ",") != strings.Join(titles(got), ",") {
			t.Fatalf("query %q: cached %v direct %v", query, c, titles(got))
		}

		// Filtering the result again by the same query changes nothing.
		again := Filter(got, query, Substring{})
		if len(again) != len(got) {
			t.Fatalf("query %q: filter not idempotent", query)
		}
	})
}
