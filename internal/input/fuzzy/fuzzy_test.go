package fuzzy

import (
	"fmt"
	"testing"
)

func TestFindBasic(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())

	items := []Item{
		{Text: "main.go", Data: 1},
		{Text: "handler.go", Data: 2},
		{Text: "config.go", Data: 3},
		{Text: "utils.go", Data: 4},
	}

	tests := []struct {
		query       string
		wantFirst   string
		wantMatches int
	}{
		{"main", "main.go", 1},
		{"go", "main.go", 4},
		{"han", "handler.go", 1},
		{"xyz", "", 0},
		{"", "main.go", 4},
		{"ma in", "main.go", 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results := matcher.Find("files", tt.query, items, 10)
			if len(results) != tt.wantMatches {
				t.Errorf("query %q: got %d matches, want %d", tt.query, len(results), tt.wantMatches)
			}
			if tt.wantMatches > 0 && results[0].Item.Text != tt.wantFirst {
				t.Errorf("query %q: got first %q, want %q", tt.query, results[0].Item.Text, tt.wantFirst)
			}
		})
	}
}

func TestFindCaseInsensitive(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())
	items := []Item{{Text: "MainController.go"}, {Text: "main.go"}}

	results := matcher.Find("", "main", items, 10)
	if len(results) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(results))
	}
	if results[0].Item.Text != "main.go" {
		t.Errorf("expected main.go first, got %s", results[0].Item.Text)
	}
}

func TestFindCaseSensitive(t *testing.T) {
	opts := DefaultOptions()
	opts.CaseSensitive = true
	matcher := NewMatcher(opts)
	items := []Item{{Text: "MainController.go"}, {Text: "main.go"}}

	results := matcher.Find("", "main", items, 10)
	if len(results) != 1 || results[0].Item.Text != "main.go" {
		t.Errorf("expected only main.go, got %v", results)
	}
}

func TestFindCommandNames(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())
	items := []Item{
		{Text: "buffer::save"},
		{Text: "buffer::reload"},
		{Text: "application::switch_to_search_mode"},
	}

	results := matcher.Find("commands", "buffer save", items, 5)
	if len(results) == 0 || results[0].Item.Text != "buffer::save" {
		t.Errorf("expected buffer::save first, got %v", results)
	}
}

func TestFindLimit(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())
	items := make([]Item, 100)
	for i := range items {
		items[i] = Item{Text: fmt.Sprintf("file%d.go", i)}
	}

	if got := len(matcher.Find("", "file", items, 5)); got != 5 {
		t.Errorf("expected 5 results, got %d", got)
	}
	if got := len(matcher.Find("", "", items, 5)); got != 5 {
		t.Errorf("expected 5 results for empty query, got %d", got)
	}
}

func TestFindDeterministicOrder(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())
	items := []Item{{Text: "b.go"}, {Text: "a.go"}, {Text: "c.go"}}

	results := matcher.Find("", "go", items, 10)
	for i, want := range []string{"a.go", "b.go", "c.go"} {
		if results[i].Item.Text != want {
			t.Errorf("result %d: got %s, want %s", i, results[i].Item.Text, want)
		}
	}
}

func TestFindUTF8(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())
	items := []Item{{Text: "日本語.txt"}, {Text: "ascii.txt"}}

	results := matcher.Find("", "日本", items, 10)
	if len(results) != 1 || results[0].Item.Text != "日本語.txt" {
		t.Errorf("expected 日本語.txt, got %v", results)
	}
	if len(results[0].Matches) != 2 || results[0].Matches[1] != 1 {
		t.Errorf("unexpected match indices %v", results[0].Matches)
	}
}

func TestFindCachesPerSet(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())

	first := matcher.Find("set", "a", []Item{{Text: "abc"}}, 10)
	if len(first) != 1 {
		t.Fatalf("expected 1 match, got %d", len(first))
	}

	// Same set and query: served from the cache even though the items
	// changed.
	cached := matcher.Find("set", "a", []Item{{Text: "xyz"}}, 10)
	if len(cached) != 1 || cached[0].Item.Text != "abc" {
		t.Errorf("expected cached result, got %v", cached)
	}

	matcher.Invalidate("set")
	fresh := matcher.Find("set", "a", []Item{{Text: "xyz"}}, 10)
	if len(fresh) != 0 {
		t.Errorf("expected no match after invalidation, got %v", fresh)
	}

	other := matcher.Find("other", "x", []Item{{Text: "xyz"}}, 10)
	if len(other) != 1 {
		t.Errorf("expected a match in another set, got %v", other)
	}
}

func TestScorerConsecutiveBonus(t *testing.T) {
	scorer := DefaultScorer()
	query := []rune("abc")

	text1 := []rune("abc")
	score1 := scorer.Score(query, text1, text1, []int{0, 1, 2})

	text2 := []rune("a_b_c")
	score2 := scorer.Score(query, text2, text2, []int{0, 2, 4})

	if score1 <= score2 {
		t.Errorf("consecutive match should score higher: %d vs %d", score1, score2)
	}
}

func TestScorerPrefixBonus(t *testing.T) {
	scorer := DefaultScorer()
	query := []rune("test")

	text1 := []rune("testing")
	score1 := scorer.Score(query, text1, text1, []int{0, 1, 2, 3})

	text2 := []rune("_testing")
	score2 := scorer.Score(query, text2, text2, []int{1, 2, 3, 4})

	if score1 <= score2 {
		t.Errorf("prefix match should score higher: %d vs %d", score1, score2)
	}
}

func TestFilePathScorer(t *testing.T) {
	scorer := NewFilePathScorer()
	query := []rune("main")

	path1 := []rune("src/pkg/main.go")
	score1 := scorer.Score(query, path1, path1, findMatches(query, path1))

	path2 := []rune("src/packages/something/main.go")
	score2 := scorer.Score(query, path2, path2, findMatches(query, path2))

	if score1 <= score2 {
		t.Errorf("shorter path should score higher: %d vs %d", score1, score2)
	}

	base := DefaultScorer()
	if plain := base.Score(query, path1, path1, findMatches(query, path1)); plain >= score1 {
		t.Errorf("file name bonus missing: %d vs %d", plain, score1)
	}
}

func findMatches(query, text []rune) []int {
	matches := make([]int, 0, len(query))
	qi := 0
	for i := 0; i < len(text) && qi < len(query); i++ {
		if text[i] == query[qi] {
			matches = append(matches, i)
			qi++
		}
	}
	return matches
}
