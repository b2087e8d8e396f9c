package markdown

// LineTable holds the rune offset of the start of every line of a source
// text. It translates node positions into rune spans.
type LineTable struct {
	starts []int
	length int
}

func NewLineTable(source string) *LineTable {
	t := &LineTable{starts: []int{0}}
	n := 0
	for _, r := range source {
		n++
		if r == '\n' {
			t.starts = append(t.starts, n)
		}
	}
	t.length = n
	return t
}

func (t *LineTable) Lines() int {
	return len(t.starts)
}

// Offset returns the rune offset of a 1-based line and column. The result
// is clamped to the source.
func (t *LineTable) Offset(line, column int) int {
	if line < 1 {
		return 0
	}
	if line > len(t.starts) {
		return t.length
	}
	off := t.starts[line-1] + column - 1
	return min(max(off, 0), t.length)
}

// Span returns the [start, end) rune span of p.
func (t *LineTable) Span(p Position) (int, int) {
	start := t.Offset(p.StartLine, p.StartColumn)
	end := t.Offset(p.EndLine, p.EndColumn+1)
	if end < start {
		end = start
	}
	return start, end
}
