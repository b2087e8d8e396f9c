package outline

import "unicode/utf8"

type Point struct {
	X, Y float64
}

// Rect is an axis aligned rectangle. Y grows downwards.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Contains reports whether p is inside r. The right and bottom edges are
// excluded.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	x, y := min(r.X, o.X), min(r.Y, o.Y)
	return Rect{
		X:      x,
		Y:      y,
		Width:  max(r.MaxX(), o.MaxX()) - x,
		Height: max(r.MaxY(), o.MaxY()) - y,
	}
}

// Range is a half-open range of rune offsets into the text of a node.
type Range struct {
	Start int
	End   int
}

func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

func (r Range) Len() int {
	return max(r.End-r.Start, 0)
}

// normalized returns r with Start <= End, both clamped to [0, length].
func (r Range) normalized(length int) Range {
	if r.Start > r.End {
		r.Start, r.End = r.End, r.Start
	}
	return Range{Start: clamp(r.Start, 0, length), End: clamp(r.End, 0, length)}
}

func collapsed(pos int) Range {
	return Range{Start: pos, End: pos}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func sliceRunes(s string, start, end int) string {
	r := []rune(s)
	start = clamp(start, 0, len(r))
	end = clamp(end, start, len(r))
	return string(r[start:end])
}

// replaceRunes replaces the runes of s in r with with.
func replaceRunes(s string, r Range, with string) string {
	runes := []rune(s)
	r = r.normalized(len(runes))
	return string(runes[:r.Start]) + with + string(runes[r.End:])
}
