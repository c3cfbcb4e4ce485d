package jump

// tagIndexLimit is the last index a two-character generator produces ("zz").
const tagIndexLimit = 26*26 - 1

// SingleCharacterGenerator yields "a" through "z", then nothing.
type SingleCharacterGenerator struct {
	index int
}

// Next returns the next tag. The boolean is false once the alphabet is
// exhausted.
func (g *SingleCharacterGenerator) Next() (string, bool) {
	if g.index >= 26 {
		return "", false
	}
	tag := string(rune('a' + g.index))
	g.index++
	return tag, true
}

// Reset restarts the generator at "a".
func (g *SingleCharacterGenerator) Reset() {
	g.index = 0
}

// TagGenerator yields "aa", "ab", ... "zz" in base-26 order, then nothing.
type TagGenerator struct {
	index int
}

// Next returns the next tag. The boolean is false after "zz".
func (g *TagGenerator) Next() (string, bool) {
	if g.index > tagIndexLimit {
		return "", false
	}
	tag := string([]rune{rune('a' + g.index/26), rune('a' + g.index%26)})
	g.index++
	return tag, true
}

// Reset restarts the generator at "aa".
func (g *TagGenerator) Reset() {
	g.index = 0
}
