package textlayout

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/stateful/outline/pkg/styled"
)

// CellEngine lays text out on a grid of fixed width cells, the way a
// terminal would. Wide characters take two cells and the scale of a
// style multiplies the cell size.
type CellEngine struct {
	CellWidth float64
	FontSize  float64
	// TabWidth is the distance between tab stops in cells. It is used
	// when the paragraph style of the string does not set one.
	TabWidth int
}

func NewCellEngine(cellWidth, fontSize float64) *CellEngine {
	return &CellEngine{CellWidth: cellWidth, FontSize: fontSize, TabWidth: 4}
}

type cluster struct {
	start int // rune offset
	runes int
	cells int
	scale float64
	tab   bool
	space bool
	hard  bool // ends the line
	// canBreak is true when a line may be broken after the cluster.
	canBreak bool
}

func (e *CellEngine) Layout(s *styled.String, width float64) *Frame {
	clusters := e.clusters(s)
	para := s.Paragraph
	tabCells := e.TabWidth
	if para.TabStopWidthInSpaces > 0 {
		tabCells = para.TabStopWidthInSpaces
	}
	multiple := para.LineHeightMultiple
	if multiple <= 0 {
		multiple = 1
	}
	wrap := para.WordWrap && width > 0

	frame := &Frame{}
	y := 0.0
	i := 0
	endsWithHardBreak := false
	for {
		start := i
		x := 0.0
		lastBreak := -1
		j := start
		for j < len(clusters) {
			c := clusters[j]
			if c.hard {
				j++
				break
			}
			w := e.advance(c, x, tabCells)
			if wrap && j > start && x+w > width && !c.space {
				if lastBreak >= start {
					j = lastBreak + 1
				}
				break
			}
			x += w
			if c.canBreak {
				lastBreak = j
			}
			j++
		}

		line := e.line(clusters[start:j], tabCells, multiple)
		if start < len(clusters) {
			line.Range.Start = clusters[start].start
		} else if len(clusters) > 0 {
			last := clusters[len(clusters)-1]
			line.Range.Start = last.start + last.runes
		}
		line.Range.End = line.Range.Start
		for _, c := range clusters[start:j] {
			line.Range.End += c.runes
		}
		if len(frame.Lines) > 0 {
			y += para.LineSpacing
		}
		line.Y = y
		y += line.Height
		frame.Lines = append(frame.Lines, line)
		frame.Width = max(frame.Width, line.Width)

		endsWithHardBreak = j > start && clusters[j-1].hard
		i = j
		if i >= len(clusters) && !endsWithHardBreak {
			break
		}
		if i >= len(clusters) && endsWithHardBreak {
			// An empty line follows a trailing hard break.
			endsWithHardBreak = false
			empty := e.line(nil, tabCells, multiple)
			empty.Range = Range{Start: line.Range.End, End: line.Range.End}
			y += para.LineSpacing
			empty.Y = y
			y += empty.Height
			frame.Lines = append(frame.Lines, empty)
			break
		}
	}
	frame.Height = y
	return frame
}

func (e *CellEngine) advance(c cluster, x float64, tabCells int) float64 {
	cell := e.CellWidth * c.scale
	if c.tab {
		stop := float64(tabCells) * cell
		if stop <= 0 {
			return 0
		}
		next := (float64(int(x/stop)) + 1) * stop
		return next - x
	}
	return float64(c.cells) * cell
}

func (e *CellEngine) line(clusters []cluster, tabCells int, multiple float64) *Line {
	scale := 1.0
	for i, c := range clusters {
		if i == 0 || c.scale > scale {
			scale = c.scale
		}
	}
	size := e.FontSize * scale

	l := &Line{
		Ascent:  size * 0.8,
		Descent: size * 0.2,
		Height:  size * multiple,
		Carets:  []float64{0},
	}
	x := 0.0
	for _, c := range clusters {
		w := e.advance(c, x, tabCells)
		// Every rune of a cluster shares the caret of its start.
		for k := 1; k < c.runes; k++ {
			l.Carets = append(l.Carets, x)
		}
		x += w
		l.Carets = append(l.Carets, x)
		if !c.hard {
			l.Width = x
		}
	}
	return l
}

func (e *CellEngine) clusters(s *styled.String) []cluster {
	var scales []float64
	for _, run := range s.Runs() {
		scale := run.Attrs.Style.Scale
		if scale <= 0 {
			scale = 1
		}
		for range run.Text {
			scales = append(scales, scale)
		}
	}

	var (
		result []cluster
		offset int
		state  = -1
		rest   = s.Text()
	)
	for len(rest) > 0 {
		var (
			text       string
			boundaries int
		)
		text, rest, boundaries, state = uniseg.StepString(rest, state)
		r, _ := utf8.DecodeRuneInString(text)
		c := cluster{
			start:    offset,
			runes:    utf8.RuneCountInString(text),
			cells:    runewidth.StringWidth(text),
			scale:    scales[offset],
			tab:      r == '\t',
			space:    r == ' ',
			hard:     isHardBreak(r),
			canBreak: boundaries&uniseg.MaskLine != uniseg.LineDontBreak,
		}
		if c.hard {
			c.cells = 0
		}
		result = append(result, c)
		offset += c.runes
	}
	return result
}

func isHardBreak(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}
