// Package fuzzy ranks candidates against a query for the search-select
// modes: commands, files, symbols, syntaxes and themes.
//
// A candidate matches when every non-space character of the query appears
// in it in order. Matches are scored by the Scorer, which favours
// consecutive characters, word boundaries and prefixes. Results are cached
// per candidate set in an LRU keyed by query, so typing and deleting
// characters does not rescore the same set twice.
package fuzzy
