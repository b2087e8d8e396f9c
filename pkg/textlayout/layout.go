package textlayout

import (
	"github.com/stateful/outline/pkg/styled"
)

// Engine lays out a styled string into lines no wider than width.
// A zero width disables wrapping.
type Engine interface {
	Layout(s *styled.String, width float64) *Frame
}

// Range is a half-open range of rune offsets of a display string.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) Contains(index int) bool {
	return index >= r.Start && index < r.End
}

// Line is one laid out line. X and Y are relative to the frame.
type Line struct {
	Range   Range
	X       float64
	Y       float64
	Width   float64
	Height  float64
	Ascent  float64
	Descent float64

	// Carets holds the horizontal caret offset, relative to the line
	// origin, of every index from Range.Start to Range.End inclusive.
	Carets []float64
}

// OffsetFor returns the horizontal caret offset of the display index.
// Indexes outside the line are clamped to its ends.
func (l *Line) OffsetFor(index int) float64 {
	if len(l.Carets) == 0 {
		return 0
	}
	i := index - l.Range.Start
	i = min(max(i, 0), len(l.Carets)-1)
	return l.Carets[i]
}

// StringIndexFor returns the display index whose caret is closest to x.
func (l *Line) StringIndexFor(x float64) int {
	best, bestDist := l.Range.Start, -1.0
	for i, c := range l.Carets {
		d := c - x
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = l.Range.Start+i, d
		}
	}
	return best
}

func (l *Line) IsAfterEndOfLine(x float64) bool {
	return x > l.Width
}

func (l *Line) IsBeforeStartOfLine(x float64) bool {
	return x < 0
}

// Frame is the result of laying out a string.
type Frame struct {
	Lines  []*Line
	Width  float64
	Height float64
}

// LineAt returns the index of the line that holds the display index.
// Indexes past the end belong to the last line.
func (f *Frame) LineAt(index int) int {
	for i, l := range f.Lines {
		if l.Range.Start > index {
			return max(i-1, 0)
		}
	}
	return max(len(f.Lines)-1, 0)
}

// LineAtPoint returns the index of the line at the vertical position y.
func (f *Frame) LineAtPoint(y float64) int {
	if len(f.Lines) == 0 || y < 0 {
		return 0
	}
	if y >= f.Height {
		return len(f.Lines) - 1
	}
	for i, l := range f.Lines {
		if y < l.Y+l.Height {
			return i
		}
	}
	return len(f.Lines) - 1
}

func (f *Frame) Line(i int) *Line {
	if i < 0 || i >= len(f.Lines) {
		return nil
	}
	return f.Lines[i]
}
