package buffer

import "fmt"

// Position is a line and grapheme offset within a buffer. Both are 0-indexed.
type Position struct {
	Line   int
	Offset int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Offset)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Offset < other.Offset:
		return -1
	case p.Offset > other.Offset:
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// Range is a span of positions. Start is inclusive, End is exclusive.
type Range struct {
	Start Position
	End   Position
}

// NewRange creates a range from two positions in either order.
func NewRange(a, b Position) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s:%s)", r.Start, r.End)
}

// IsEmpty returns true if start equals end.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Includes returns true if p lies in [Start, End).
func (r Range) Includes(p Position) bool {
	return p.Compare(r.Start) >= 0 && p.Before(r.End)
}

// LineRange is an inclusive span of whole lines.
type LineRange struct {
	Start int
	End   int
}

// NewLineRange creates a line range from two lines in either order.
func NewLineRange(a, b int) LineRange {
	if b < a {
		a, b = b, a
	}
	return LineRange{Start: a, End: b}
}

// Includes returns true if line lies within the range.
func (r LineRange) Includes(line int) bool {
	return line >= r.Start && line <= r.End
}

// Range converts the line range to a position range covering every line in
// it, including the trailing newline of the last line when there is one.
func (r LineRange) Range() Range {
	return Range{
		Start: Position{Line: r.Start},
		End:   Position{Line: r.End + 1},
	}
}
