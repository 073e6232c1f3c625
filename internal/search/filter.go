package search

import (
	"context"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/zjrosen/dropsearch/internal/cachemanager"
	"github.com/zjrosen/dropsearch/internal/catalog"
	"github.com/zjrosen/dropsearch/internal/log"
)

// Filter returns the categories of ref whose titles match query, in ref order.
// An empty query returns all of ref.
func Filter(ref []catalog.Category, query string, m Matcher) []catalog.Category {
	out := make([]catalog.Category, 0, len(ref))
	for _, c := range ref {
		if query == "" || m.Match(c.Title, query) {
			out = append(out, c)
		}
	}
	return out
}

// Suggest returns the ref title closest to query when its edit distance,
// ignoring case, is at most maxDistance.
func Suggest(ref []catalog.Category, query string, maxDistance int) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}

	best, bestDist := "", maxDistance+1
	for _, c := range ref {
		d := levenshtein.ComputeDistance(q, strings.ToLower(c.Title))
		if d < bestDist {
			best, bestDist = c.Title, d
		}
	}
	return best, best != ""
}

// FilterFunc computes the visible categories for a query.
type FilterFunc func(ref []catalog.Category, query string) []catalog.Category

// Plain returns a FilterFunc that matches with m on every call.
func Plain(m Matcher) FilterFunc {
	return func(ref []catalog.Category, query string) []catalog.Category {
		return Filter(ref, query, m)
	}
}

// Cached memoizes the matched titles per normalized query. Results are always
// resolved against the ref passed to Filter, so a hit never returns data from
// an earlier, different reference slice.
type Cached struct {
	matcher Matcher
	ttl     time.Duration
	titles  *cachemanager.ReadThroughCache[string, []string, string]
}

// NewCached wraps m with cache. A non-positive ttl uses the cache default.
func NewCached(m Matcher, cache cachemanager.CacheManager[string, []string], ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = cachemanager.DefaultExpiration
	}
	c := &Cached{matcher: m, ttl: ttl}
	c.titles = cachemanager.NewReadThroughCache(cache, c.matchTitles, false)
	return c
}

func (c *Cached) matchTitles(_ context.Context, query string) ([]string, error) {
	matched := Filter(catalog.All(), query, c.matcher)
	titles := make([]string, len(matched))
	for i, cat := range matched {
		titles[i] = cat.Title
	}
	log.Debug(log.CatSearch, "filtered", "mode", c.matcher.Mode(), "query", query, "matches", len(titles))
	return titles, nil
}

// Filter implements FilterFunc. Queries are cached only when ref is the
// catalog reference set; anything else is filtered directly.
func (c *Cached) Filter(ref []catalog.Category, query string) []catalog.Category {
	if query == "" {
		return append([]catalog.Category(nil), ref...)
	}
	if !isReference(ref) {
		return Filter(ref, query, c.matcher)
	}

	key := string(c.matcher.Mode()) + ":" + strings.ToLower(query)
	titles, err := c.titles.GetWithRefresh(context.Background(), key, query, c.ttl)
	if err != nil {
		return Filter(ref, query, c.matcher)
	}

	keep := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		keep[t] = struct{}{}
	}
	out := make([]catalog.Category, 0, len(titles))
	for _, cat := range ref {
		if _, ok := keep[cat.Title]; ok {
			out = append(out, cat)
		}
	}
	return out
}

// Invalidate drops all cached results.
func (c *Cached) Invalidate() error {
	return c.titles.Invalidate(context.Background())
}

func isReference(ref []catalog.Category) bool {
	titles := catalog.Titles()
	if len(ref) != len(titles) {
		return false
	}
	for i, c := range ref {
		if c.Title != titles[i] {
			return false
		}
	}
	return true
}
