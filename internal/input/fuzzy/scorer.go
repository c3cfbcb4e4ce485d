package fuzzy

import "unicode"

// Scorer calculates match scores. Higher is better; any match scores at
// least 1.
type Scorer interface {
	// Score rates a match. originalRunes keeps the text's case, textRunes
	// is the folded text the query was matched against and matches holds
	// the matched rune indices.
	Score(queryRunes, originalRunes, textRunes []rune, matches []int) int
}

// WeightedScorer scores with configurable weights.
type WeightedScorer struct {
	BaseScore         int
	ConsecutiveBonus  int
	WordBoundaryBonus int
	// PrefixBonus is added when the first match is at position 0.
	PrefixBonus int
	// ExactPrefixBonus is added when the query is a prefix of the text.
	ExactPrefixBonus int
	// GapPenalty is subtracted per unmatched rune between matches.
	GapPenalty int
	// LeadingPenalty is subtracted per rune before the first match.
	LeadingPenalty int
	// LengthBonusThreshold rewards texts shorter than it.
	LengthBonusThreshold int
}

// DefaultScorer returns the scorer used for commands, symbols, syntaxes
// and themes.
func DefaultScorer() WeightedScorer {
	return WeightedScorer{
		BaseScore:            100,
		ConsecutiveBonus:     20,
		WordBoundaryBonus:    15,
		PrefixBonus:          25,
		ExactPrefixBonus:     50,
		GapPenalty:           2,
		LeadingPenalty:       1,
		LengthBonusThreshold: 20,
	}
}

// Score implements Scorer.
func (s WeightedScorer) Score(queryRunes, originalRunes, textRunes []rune, matches []int) int {
	if len(matches) == 0 {
		return 0
	}

	score := s.BaseScore
	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			score += s.ConsecutiveBonus
		}
	}
	for _, idx := range matches {
		if isWordBoundary(originalRunes, idx) {
			score += s.WordBoundaryBonus
		}
	}
	if matches[0] == 0 {
		score += s.PrefixBonus
	}
	if gap := matches[len(matches)-1] - matches[0] - len(matches) + 1; gap > 0 {
		score -= gap * s.GapPenalty
	}
	score -= matches[0] * s.LeadingPenalty
	if n := len(textRunes); n < s.LengthBonusThreshold {
		score += s.LengthBonusThreshold - n
	}
	if hasPrefix(textRunes, queryRunes) {
		score += s.ExactPrefixBonus
	}
	return max(score, 1)
}

func hasPrefix(text, prefix []rune) bool {
	if len(text) < len(prefix) {
		return false
	}
	for i, r := range prefix {
		if text[i] != r {
			return false
		}
	}
	return true
}

// isWordBoundary reports whether the rune at idx starts a word: after a
// space or punctuation, or at a camelCase hump.
func isWordBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(runes) {
		return false
	}
	prev, curr := runes[idx-1], runes[idx]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(curr)
}

// FilePathScorer favours matches in the file name over the directories.
type FilePathScorer struct {
	base WeightedScorer
}

// NewFilePathScorer creates the scorer used by open mode.
func NewFilePathScorer() FilePathScorer {
	return FilePathScorer{
		base: WeightedScorer{
			BaseScore:            100,
			ConsecutiveBonus:     25,
			WordBoundaryBonus:    20,
			PrefixBonus:          15,
			ExactPrefixBonus:     30,
			GapPenalty:           3,
			LeadingPenalty:       1,
			LengthBonusThreshold: 30,
		},
	}
}

// Score implements Scorer.
func (s FilePathScorer) Score(queryRunes, originalRunes, textRunes []rune, matches []int) int {
	score := s.base.Score(queryRunes, originalRunes, textRunes, matches)

	lastSep := -1
	for i := len(originalRunes) - 1; i >= 0; i-- {
		if originalRunes[i] == '/' || originalRunes[i] == '\\' {
			lastSep = i
			break
		}
	}
	if lastSep < 0 {
		return score
	}
	for _, idx := range matches {
		if idx > lastSep {
			score += 10
		}
	}
	return score
}
