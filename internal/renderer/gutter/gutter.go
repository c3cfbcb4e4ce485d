// Package gutter formats the line number column drawn to the left of
// buffer content.
package gutter

import "strconv"

// padding is the space kept on each side of a line number.
const padding = 1

// LineNumbers formats right-aligned line numbers for a document.
type LineNumbers struct {
	digits int
}

// New creates a formatter sized for a document of lineCount lines.
func New(lineCount int) LineNumbers {
	return LineNumbers{digits: CountDigits(max(lineCount, 1))}
}

// Width returns the width of a formatted number, padding included.
func (n LineNumbers) Width() int {
	return n.digits + 2*padding
}

// GutterWidth returns the column where content starts: the number plus a
// one-column gap.
func (n LineNumbers) GutterWidth() int {
	return n.Width() + 1
}

// Format returns the 1-based label for a 0-based line.
func (n LineNumbers) Format(line int) string {
	return " " + PadLeft(strconv.Itoa(line+1), n.digits) + " "
}

// Blank returns spaces the width of a formatted number.
func (n LineNumbers) Blank() string {
	return PadLeft("", n.Width())
}

// Width returns the gutter width for a document of lineCount lines.
func Width(lineCount int) int {
	return New(lineCount).GutterWidth()
}

// PadLeft pads s with spaces on the left to width.
func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := make([]byte, width-len(s))
	for i := range padding {
		padding[i] = ' '
	}
	return string(padding) + s
}

// CountDigits returns the number of decimal digits in n.
func CountDigits(n int) int {
	if n <= 0 {
		return 1
	}
	digits := 0
	for n > 0 {
		digits++
		n /= 10
	}
	return digits
}
