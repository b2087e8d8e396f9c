package outline

import (
	"github.com/stateful/outline/pkg/styled"
	"github.com/stateful/outline/pkg/textlayout"
)

// AttributedString returns the rendered text of the node.
func (n *Node) AttributedString() *styled.String {
	n.ensureText()
	return n.attributed
}

// DisplayText returns the text of the node as it is shown.
func (n *Node) DisplayText() string {
	return n.AttributedString().Text()
}

func (n *Node) ensureText() {
	n.tree.ensureLayout()
	if n.attributed == nil {
		cursor := -1
		if n.IsEditing() {
			cursor = n.tree.editor.cursor
		}
		n.attributed = n.tree.ctx.Renderer.Render(n.text, n.placeholder, cursor)
		n.sourceMap = styled.NewSourceMap(n.attributed, n.Len())
	}
	if n.layout == nil {
		n.layout = n.tree.ctx.Engine.Layout(n.attributed, n.width)
	}
}

// Layout returns the lines of the rendered text.
func (n *Node) Layout() *textlayout.Frame {
	n.ensureText()
	return n.layout
}

// updateLayout lays out the node and its visible children for the given
// width and returns the height of the node.
func (n *Node) updateLayout(width float64) float64 {
	if n.width != width {
		n.width = width
		n.layout = nil
	}

	n.textFrame = Rect{}
	if n.selfVisible {
		n.ensureText()
		n.textFrame = Rect{Width: width, Height: n.layout.Height}
	}

	inset := n.childInset()
	y := n.textFrame.Height
	for _, c := range n.Children() {
		c.frame.X, c.frame.Y = inset, y
		if !n.open || !c.visible {
			c.frame.Width, c.frame.Height = 0, 0
			continue
		}
		y += c.updateLayout(width - inset)
	}
	n.frame.Width, n.frame.Height = width, y
	return y
}

// childInset is the indentation of the children. The children of a
// hidden node are not indented.
func (n *Node) childInset() float64 {
	if !n.selfVisible {
		return 0
	}
	return n.tree.ctx.ChildInset
}

// OffsetInDocument returns the position of the node relative to the
// root.
func (n *Node) OffsetInDocument() Point {
	n.tree.ensureLayout()
	var o Point
	for c := n; c.Parent() != nil; c = c.Parent() {
		o.X += c.frame.X
		o.Y += c.frame.Y
	}
	return o
}

// FrameInDocument returns the frame of the node relative to the root.
func (n *Node) FrameInDocument() Rect {
	o := n.OffsetInDocument()
	return Rect{X: o.X, Y: o.Y, Width: n.frame.Width, Height: n.frame.Height}
}

// NodeAt returns the visible node under p, which is relative to the
// frame of n.
func (n *Node) NodeAt(p Point) *Node {
	n.tree.ensureLayout()
	if p.X < 0 || p.Y < 0 || p.X >= n.frame.Width || p.Y >= n.frame.Height {
		return nil
	}
	if n.selfVisible && p.Y < n.textFrame.Height {
		return n
	}
	if !n.open {
		return nil
	}
	for _, c := range n.Children() {
		if !c.visible {
			continue
		}
		if r := c.NodeAt(Point{X: p.X - c.frame.X, Y: p.Y - c.frame.Y}); r != nil {
			return r
		}
	}
	return nil
}

func (n *Node) displayIndexFor(sourceIndex int) int {
	n.ensureText()
	return n.sourceMap.DisplayIndexFor(sourceIndex)
}

func (n *Node) sourceIndexFor(displayIndex int) int {
	n.ensureText()
	return n.sourceMap.SourceIndexFor(displayIndex)
}

// PositionAfter returns the source position one display character after
// index. Collapsed syntax and grapheme clusters are skipped as a whole.
func (n *Node) PositionAfter(index int) int {
	length := n.Len()
	if index >= length {
		return length
	}
	display := n.DisplayText()
	next := n.sourceIndexFor(textlayout.NextGrapheme(display, n.displayIndexFor(index)))
	if next <= index {
		next = index + 1
	}
	return min(next, length)
}

// PositionBefore returns the source position one display character
// before index.
func (n *Node) PositionBefore(index int) int {
	if index <= 0 {
		return 0
	}
	index = min(index, n.Len())
	display := n.DisplayText()
	prev := n.sourceIndexFor(textlayout.PreviousGrapheme(display, n.displayIndexFor(index)))
	if prev >= index {
		prev = index - 1
	}
	return max(prev, 0)
}

// LineAtIndex returns the line holding the display index.
func (n *Node) LineAtIndex(displayIndex int) int {
	return n.Layout().LineAt(displayIndex)
}

// LineAtPoint returns the line at p, relative to the text frame. Points
// above the text map to the first line and points below to the last.
func (n *Node) LineAtPoint(p Point) int {
	return n.Layout().LineAtPoint(p.Y)
}

func (n *Node) lineOf(sourceIndex int) (int, *textlayout.Line) {
	l := n.LineAtIndex(n.displayIndexFor(sourceIndex))
	return l, n.layout.Line(l)
}

// OffsetAt returns the horizontal caret offset of the source index.
func (n *Node) OffsetAt(index int) float64 {
	d := n.displayIndexFor(index)
	line := n.Layout().Line(n.LineAtIndex(d))
	if line == nil {
		return 0
	}
	return line.X + line.OffsetFor(d)
}

// PositionAbove returns the source position on the line above index at
// the same horizontal offset. It returns false on the first line.
func (n *Node) PositionAbove(index int) (int, bool) {
	l, _ := n.lineOf(index)
	if l == 0 {
		return 0, false
	}
	above := n.layout.Line(l - 1)
	return n.sourceIndexFor(above.StringIndexFor(n.OffsetAt(index) - above.X)), true
}

// PositionBelow returns the source position on the line below index at
// the same horizontal offset. It returns false on the last line.
func (n *Node) PositionBelow(index int) (int, bool) {
	l, _ := n.lineOf(index)
	if l >= len(n.layout.Lines)-1 {
		return n.Len(), false
	}
	below := n.layout.Line(l + 1)
	return n.sourceIndexFor(below.StringIndexFor(n.OffsetAt(index) - below.X)), true
}

func (n *Node) IsOnFirstLine(index int) bool {
	l, _ := n.lineOf(index)
	return l == 0
}

func (n *Node) IsOnLastLine(index int) bool {
	if len(n.Layout().Lines) <= 1 {
		return true
	}
	l, _ := n.lineOf(index)
	return l == len(n.layout.Lines)-1
}

// BeginningOfLine returns the source position starting the line of
// index.
func (n *Node) BeginningOfLine(index int) int {
	_, line := n.lineOf(index)
	if line == nil {
		return 0
	}
	return n.sourceIndexFor(line.Range.Start)
}

// EndOfLine returns the source position ending the line of index.
func (n *Node) EndOfLine(index int) int {
	l, _ := n.lineOf(index)
	return n.endOfLine(l)
}

// endOfLine returns the source position before the break ending line l.
// The last line ends with the text.
func (n *Node) endOfLine(l int) int {
	lines := n.Layout().Lines
	if l >= len(lines)-1 {
		return n.Len()
	}
	return n.sourceIndexFor(lines[l].Range.End - 1)
}

// IndexOnFirstLine maps the horizontal offset x to a source position on
// the first line.
func (n *Node) IndexOnFirstLine(x float64) int {
	return n.indexOnLine(0, x)
}

// IndexOnLastLine maps the horizontal offset x to a source position on
// the last line.
func (n *Node) IndexOnLastLine(x float64) int {
	return n.indexOnLine(len(n.Layout().Lines)-1, x)
}

func (n *Node) indexOnLine(l int, x float64) int {
	line := n.Layout().Line(l)
	if line == nil {
		return 0
	}
	d := line.StringIndexFor(x - line.X)
	if d == line.Range.End {
		return n.endOfLine(l)
	}
	return n.sourceIndexFor(d)
}

// PositionAt returns the source position under p, relative to the text
// frame. Points before the start or after the end of a line map to the
// start or the end of that line.
func (n *Node) PositionAt(p Point) int {
	l := n.LineAtPoint(p)
	line := n.layout.Line(l)
	if line == nil {
		return 0
	}
	x := p.X - line.X
	switch {
	case line.IsBeforeStartOfLine(x):
		return n.sourceIndexFor(line.Range.Start)
	case line.IsAfterEndOfLine(x):
		return n.endOfLine(l)
	}
	return n.sourceIndexFor(line.StringIndexFor(x))
}

// RectAt returns the caret rectangle of the source position, relative to
// the text frame.
func (n *Node) RectAt(index int) Rect {
	_, line := n.lineOf(index)
	if line == nil {
		return Rect{}
	}
	return Rect{X: n.OffsetAt(index), Y: line.Y, Width: 1, Height: line.Height}
}

// attributesAt returns the attributes of the display character under p.
func (n *Node) attributesAt(p Point) (styled.Attributes, bool) {
	line := n.Layout().Line(n.LineAtPoint(p))
	if line == nil || n.attributed.Len() == 0 {
		return styled.Attributes{}, false
	}
	x := p.X - line.X
	if x < 0 || x > line.Width {
		return styled.Attributes{}, false
	}
	d := min(line.StringIndexFor(x), n.attributed.Len()-1)
	return n.attributed.AttributesAt(d)
}

// LinkAt returns the url of the markdown link under p.
func (n *Node) LinkAt(p Point) (string, bool) {
	attrs, ok := n.attributesAt(p)
	if !ok || !attrs.Style.Link || isInternalLink(attrs) {
		return "", false
	}
	return attrs.LinkURL, true
}

// InternalLinkAt returns the title of the note linked with [[title]]
// under p.
func (n *Node) InternalLinkAt(p Point) (string, bool) {
	attrs, ok := n.attributesAt(p)
	if !ok || !attrs.Style.Link || !isInternalLink(attrs) {
		return "", false
	}
	return attrs.LinkTitle, true
}

func isInternalLink(attrs styled.Attributes) bool {
	return attrs.LinkTitle != "" && attrs.LinkTitle == attrs.LinkURL
}
