package fuzzy

import (
	"slices"
	"strings"
	"sync"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Item is a candidate.
type Item struct {
	// Text is the string matched against.
	Text string

	// Data is carried through to results.
	Data any
}

// Result is a matched item and its score.
type Result struct {
	Item  Item
	Score int

	// Matches holds the rune indices of matched characters.
	Matches []int
}

// Options configures a Matcher.
type Options struct {
	// CacheSize is the number of cached result sets. Zero disables the
	// cache.
	CacheSize int

	// CaseSensitive disables case folding.
	CaseSensitive bool
}

// DefaultOptions returns the options used by the editor.
func DefaultOptions() Options {
	return Options{CacheSize: 256}
}

type cacheKey struct {
	set   string
	query string
}

// Matcher ranks items. It is safe for concurrent use.
type Matcher struct {
	mu      sync.RWMutex
	cache   *lru.Cache[cacheKey, []Result]
	scorer  Scorer
	options Options
}

// NewMatcher creates a matcher.
func NewMatcher(opts Options) *Matcher {
	m := &Matcher{scorer: DefaultScorer(), options: opts}
	if opts.CacheSize > 0 {
		// Only fails for a non-positive size.
		m.cache, _ = lru.New[cacheKey, []Result](opts.CacheSize)
	}
	return m
}

// SetScorer replaces the scorer and drops cached results.
func (m *Matcher) SetScorer(s Scorer) {
	m.mu.Lock()
	m.scorer = s
	m.mu.Unlock()
	m.ClearCache()
}

// Find returns at most limit items matching query, best first. set names
// the candidate list so results can be cached; pass "" to bypass the
// cache. An empty query returns the first items unscored.
func (m *Matcher) Find(set, query string, items []Item, limit int) []Result {
	query = m.normalize(query)
	if query == "" {
		return firstItems(items, limit)
	}

	key := cacheKey{set: set, query: query}
	if m.cache != nil && set != "" {
		if cached, ok := m.cache.Get(key); ok {
			return applyLimit(cached, limit)
		}
	}

	queryRunes := []rune(query)
	results := make([]Result, 0, len(items))
	for _, item := range items {
		if score, matches := m.matchItem(queryRunes, item.Text); score > 0 {
			results = append(results, Result{Item: item, Score: score, Matches: matches})
		}
	}
	slices.SortStableFunc(results, func(a, b Result) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return strings.Compare(a.Item.Text, b.Item.Text)
	})

	if m.cache != nil && set != "" {
		m.cache.Add(key, results)
	}
	return applyLimit(results, limit)
}

// Invalidate drops cached results for a candidate set.
func (m *Matcher) Invalidate(set string) {
	if m.cache == nil {
		return
	}
	for _, k := range m.cache.Keys() {
		if k.set == set {
			m.cache.Remove(k)
		}
	}
}

// ClearCache drops every cached result.
func (m *Matcher) ClearCache() {
	if m.cache != nil {
		m.cache.Purge()
	}
}

func (m *Matcher) normalize(query string) string {
	query = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, query)
	if !m.options.CaseSensitive {
		query = strings.ToLower(query)
	}
	return query
}

// matchItem scores text against the query, returning zero when some query
// character is missing.
func (m *Matcher) matchItem(queryRunes []rune, text string) (int, []int) {
	if text == "" {
		return 0, nil
	}

	originalRunes := []rune(text)
	textRunes := originalRunes
	if !m.options.CaseSensitive {
		textRunes = []rune(strings.ToLower(text))
	}
	// Lowercasing can change the rune count; fall back to the original.
	if len(textRunes) != len(originalRunes) {
		textRunes = originalRunes
	}

	matches := make([]int, 0, len(queryRunes))
	qi := 0
	for i := 0; i < len(textRunes) && qi < len(queryRunes); i++ {
		if textRunes[i] == queryRunes[qi] {
			matches = append(matches, i)
			qi++
		}
	}
	if qi != len(queryRunes) {
		return 0, nil
	}

	m.mu.RLock()
	scorer := m.scorer
	m.mu.RUnlock()
	return scorer.Score(queryRunes, originalRunes, textRunes, matches), matches
}

func firstItems(items []Item, limit int) []Result {
	count := len(items)
	if limit > 0 && limit < count {
		count = limit
	}
	results := make([]Result, count)
	for i := range results {
		results[i] = Result{Item: items[i]}
	}
	return results
}

func applyLimit(results []Result, limit int) []Result {
	if limit <= 0 || limit >= len(results) {
		return results
	}
	return results[:limit]
}
