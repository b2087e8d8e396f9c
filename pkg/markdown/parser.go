package markdown

import (
	"bytes"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var ErrInvalidSource = errors.New("source is not valid UTF-8")

// Parser turns source text into a tree of nodes with positions.
type Parser interface {
	Parse(source string) (*Node, error)
}

// GoldmarkParser adapts goldmark to the Parser interface.
type GoldmarkParser struct {
	parser parser.Parser
}

func NewGoldmarkParser() *GoldmarkParser {
	md := goldmark.New(goldmark.WithExtensions(extension.Strikethrough))
	return &GoldmarkParser{parser: md.Parser()}
}

func (p *GoldmarkParser) Parse(source string) (*Node, error) {
	if !utf8.ValidString(source) {
		return nil, errors.WithStack(ErrInvalidSource)
	}

	src := []byte(source)
	doc := p.parser.Parse(text.NewReader(src))

	c := &converter{source: src, lineStarts: byteLineStarts(src)}
	root := c.convert(doc, 0)
	return root, nil
}

type converter struct {
	source     []byte
	lineStarts []int
}

// convert builds the node for n. floor is the lowest byte offset n can
// start at, that is the end of the previous sibling or the start of the
// parent's content.
func (c *converter) convert(n ast.Node, floor int) *Node {
	node, _, _ := c.convertSpan(n, floor)
	return node
}

// convertSpan is convert that also returns the byte span of the node.
func (c *converter) convertSpan(n ast.Node, floor int) (*Node, int, int) {
	var (
		node       = &Node{}
		start, end int
	)

	switch n.Kind() {
	case ast.KindDocument:
		node.Kind = KindDocument
		c.convertChildren(node, n, 0)
		start, end = 0, len(bytes.TrimRight(c.source, "\r\n"))

	case ast.KindParagraph, ast.KindTextBlock:
		node.Kind = KindParagraph
		start, end = c.linesSpan(n.Lines(), floor)
		c.convertChildren(node, n, start)
		end = c.maxEnd(node, end)

	case ast.KindHeading:
		h := n.(*ast.Heading)
		node.Kind = KindHeading
		node.Level = h.Level
		start, end = c.headingSpan(h, floor)
		c.convertChildren(node, n, start)

	case ast.KindThematicBreak:
		node.Kind = KindThematicBreak
		start, end = c.nextLine(floor)

	case ast.KindCodeBlock:
		node.Kind = KindCodeBlock
		start, end = c.linesSpan(n.Lines(), floor)
		node.Literal = c.linesValue(n.Lines())

	case ast.KindFencedCodeBlock:
		fcb := n.(*ast.FencedCodeBlock)
		node.Kind = KindCodeBlock
		if fcb.Info != nil {
			node.FenceInfo = string(fcb.Info.Segment.Value(c.source))
		}
		node.Literal = c.linesValue(n.Lines())
		start, end = c.fencedSpan(fcb, floor)

	case ast.KindHTMLBlock:
		hb := n.(*ast.HTMLBlock)
		node.Kind = KindHTMLBlock
		start, end = c.linesSpan(n.Lines(), floor)
		node.Literal = c.linesValue(n.Lines())
		if hb.HasClosure() {
			end = trimLineEnd(c.source, hb.ClosureLine.Stop)
			node.Literal += "\n" + string(bytes.TrimRight(hb.ClosureLine.Value(c.source), "\r\n"))
		}

	case ast.KindBlockquote:
		node.Kind = KindBlockQuote
		start = c.indexAfter(floor, '>')
		c.convertChildren(node, n, start+1)
		end = c.maxEnd(node, start+1)

	case ast.KindList:
		l := n.(*ast.List)
		node.Kind = KindList
		node.Ordered = l.IsOrdered()
		node.Start = l.Start
		node.Tight = l.IsTight
		node.ItemCount = n.ChildCount()
		c.convertChildren(node, n, floor)
		start, end = c.childrenSpan(node, floor)

	case ast.KindListItem:
		node.Kind = KindListItem
		start = c.skipBlank(floor)
		markerEnd := c.markerEnd(start)
		c.convertChildren(node, n, markerEnd)
		end = c.maxEnd(node, markerEnd)

	case ast.KindText:
		t := n.(*ast.Text)
		node.Kind = KindText
		node.Literal = string(t.Segment.Value(c.source))
		start, end = t.Segment.Start, t.Segment.Stop

	case ast.KindString:
		node.Kind = KindText
		node.Literal = string(n.(*ast.String).Value)
		start, end = floor, floor

	case ast.KindCodeSpan:
		node.Kind = KindCode
		node.Literal = c.inlineText(n)
		start, end = c.delimitedSpan(n, floor, '`')

	case ast.KindEmphasis:
		e := n.(*ast.Emphasis)
		node.Level = e.Level
		node.Kind = KindEmphasis
		if e.Level > 1 {
			node.Kind = KindStrong
		}
		c.convertChildren(node, n, floor)
		start, end = c.wrapSpan(node, floor, e.Level, e.Level)

	case ast.KindLink:
		l := n.(*ast.Link)
		node.Kind = KindLink
		node.URL = string(l.Destination)
		node.Title = string(l.Title)
		c.convertChildren(node, n, floor)
		start, end = c.linkSpan(node, floor, 1)

	case ast.KindImage:
		img := n.(*ast.Image)
		node.Kind = KindImage
		node.URL = string(img.Destination)
		node.Title = string(img.Title)
		c.convertChildren(node, n, floor)
		start, end = c.linkSpan(node, floor, 2)

	case ast.KindAutoLink:
		al := n.(*ast.AutoLink)
		node.Kind = KindLink
		node.URL = string(al.URL(c.source))
		start = c.indexAfter(floor, '<')
		end = c.indexAfter(start, '>') + 1
		label := &Node{Kind: KindText, Literal: string(al.Label(c.source))}
		label.Position = c.position(start+1, end-1)
		node.Children = append(node.Children, label)

	case ast.KindRawHTML:
		r := n.(*ast.RawHTML)
		node.Kind = KindHTMLInline
		var buf bytes.Buffer
		for i := 0; i < r.Segments.Len(); i++ {
			seg := r.Segments.At(i)
			buf.Write(seg.Value(c.source))
		}
		node.Literal = buf.String()
		start, end = floor, floor
		if r.Segments.Len() > 0 {
			start, end = r.Segments.At(0).Start, r.Segments.At(r.Segments.Len()-1).Stop
		}

	case east.KindStrikethrough:
		node.Kind = KindCustomInline
		node.Name = "Strikethrough"
		c.convertChildren(node, n, floor)
		start, end = c.delimitedChildrenSpan(node, floor, '~')

	default:
		node.Name = n.Kind().String()
		if n.Type() == ast.TypeInline {
			node.Kind = KindCustomInline
			c.convertChildren(node, n, floor)
			start, end = c.childrenSpan(node, floor)
		} else {
			node.Kind = KindCustomBlock
			start, end = c.linesSpan(n.Lines(), floor)
			node.Literal = c.linesValue(n.Lines())
			c.convertChildren(node, n, start)
			if len(node.Children) > 0 {
				cs, ce := c.childrenSpan(node, start)
				start, end = min(start, cs), max(end, ce)
			}
		}
	}

	if end < start {
		end = start
	}
	node.Position = c.position(start, end)
	return node, start, end
}

func (c *converter) convertChildren(node *Node, n ast.Node, floor int) {
	textEnd := -1
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		cn, start, end := c.convertSpan(child, floor)
		floor = max(floor, end)

		// goldmark splits text around delimiters that did not match, such
		// as the brackets of [[links]]. Contiguous text is merged back.
		if last := len(node.Children) - 1; cn.Kind == KindText && textEnd >= 0 && textEnd == start {
			prev := node.Children[last]
			prevStart, _ := c.spanOf(prev)
			prev.Literal += cn.Literal
			prev.Position = c.position(prevStart, end)
		} else {
			node.Children = append(node.Children, cn)
		}
		textEnd = -1
		if cn.Kind == KindText {
			textEnd = end
		}

		if t, ok := child.(*ast.Text); ok && (t.SoftLineBreak() || t.HardLineBreak()) {
			br := &Node{Kind: KindSoftBreak}
			if t.HardLineBreak() {
				br.Kind = KindLineBreak
			}
			nl := c.indexAfter(end, '\n')
			br.Position = c.position(nl, nl+1)
			node.Children = append(node.Children, br)
			floor = max(floor, nl+1)
			textEnd = -1
		}
	}
}

// spanOf recovers the byte span of an already converted node.
func (c *converter) spanOf(n *Node) (int, int) {
	start := c.offset(n.Position.StartLine, n.Position.StartColumn)
	end := c.offset(n.Position.EndLine, n.Position.EndColumn+1)
	if end < start {
		end = start
	}
	return start, end
}

func (c *converter) childrenSpan(node *Node, floor int) (int, int) {
	if len(node.Children) == 0 {
		return floor, floor
	}
	start, _ := c.spanOf(node.FirstChild())
	_, end := c.spanOf(node.LastChild())
	return start, end
}

func (c *converter) maxEnd(node *Node, end int) int {
	if len(node.Children) == 0 {
		return end
	}
	_, last := c.spanOf(node.LastChild())
	return max(end, last)
}

func (c *converter) linesSpan(lines *text.Segments, floor int) (int, int) {
	if lines == nil || lines.Len() == 0 {
		return floor, floor
	}
	start := lines.At(0).Start
	end := trimLineEnd(c.source, lines.At(lines.Len()-1).Stop)
	return start, max(start, end)
}

func (c *converter) linesValue(lines *text.Segments) string {
	if lines == nil {
		return ""
	}
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(c.source))
	}
	return string(bytes.TrimRight(buf.Bytes(), "\r\n"))
}

func (c *converter) headingSpan(h *ast.Heading, floor int) (int, int) {
	lines := h.Lines()
	if lines == nil || lines.Len() == 0 {
		return c.nextLine(floor)
	}

	contentStart := lines.At(0).Start
	i := contentStart
	for i > floor && (c.source[i-1] == ' ' || c.source[i-1] == '\t') {
		i--
	}
	if i > floor && c.source[i-1] == '#' {
		for i > floor && c.source[i-1] == '#' {
			i--
		}
		return i, trimLineEnd(c.source, c.lineEnd(contentStart))
	}

	// Setext heading: the underline is the line after the content.
	last := lines.At(lines.Len() - 1).Stop
	underline := c.lineEnd(last)
	if underline < len(c.source) {
		underline = c.lineEnd(underline + 1)
	}
	return contentStart, trimLineEnd(c.source, underline)
}

func (c *converter) fencedSpan(fcb *ast.FencedCodeBlock, floor int) (int, int) {
	start := c.skipBlank(floor)
	for start < len(c.source) && c.source[start] != '`' && c.source[start] != '~' && c.source[start] != '\n' {
		start++
	}
	if start >= len(c.source) {
		return start, start
	}
	fence := c.source[start]

	end := trimLineEnd(c.source, c.lineEnd(start))
	if lines := fcb.Lines(); lines != nil && lines.Len() > 0 {
		end = trimLineEnd(c.source, lines.At(lines.Len()-1).Stop)
	}
	// Include the closing fence when there is one.
	next := c.lineEnd(end)
	if next < len(c.source) {
		lineStart := next + 1
		closing := c.skipSpaces(lineStart)
		if closing < len(c.source) && c.source[closing] == fence {
			end = trimLineEnd(c.source, c.lineEnd(closing))
		}
	}
	return start, end
}

func (c *converter) delimitedSpan(n ast.Node, floor int, delim byte) (int, int) {
	first, last := n.FirstChild(), n.LastChild()
	ft, ok1 := first.(*ast.Text)
	lt, ok2 := last.(*ast.Text)
	if !ok1 || !ok2 {
		start := c.indexAfter(floor, delim)
		end := start
		for end < len(c.source) && c.source[end] == delim {
			end++
		}
		return start, end
	}

	start := ft.Segment.Start
	if start > floor && c.source[start-1] == ' ' {
		start--
	}
	for start > floor && c.source[start-1] == delim {
		start--
	}
	end := lt.Segment.Stop
	if end < len(c.source) && c.source[end] == ' ' {
		end++
	}
	for end < len(c.source) && c.source[end] == delim {
		end++
	}
	return start, end
}

func (c *converter) delimitedChildrenSpan(node *Node, floor int, delim byte) (int, int) {
	start, end := c.childrenSpan(node, floor)
	for start > floor && c.source[start-1] == delim {
		start--
	}
	for end < len(c.source) && c.source[end] == delim {
		end++
	}
	return start, end
}

// wrapSpan extends the children span by the opening and closing
// delimiter lengths.
func (c *converter) wrapSpan(node *Node, floor, open, close int) (int, int) {
	start, end := c.childrenSpan(node, floor)
	start = max(floor, start-open)
	end = min(len(c.source), end+close)
	return start, end
}

func (c *converter) linkSpan(node *Node, floor, open int) (int, int) {
	var start, end int
	if len(node.Children) == 0 {
		start = c.indexAfter(floor, '[')
		end = start + 1
		if open == 2 && start > floor && c.source[start-1] == '!' {
			start--
		}
	} else {
		start, end = c.childrenSpan(node, floor)
		start = max(floor, start-open)
	}

	// end points at the closing bracket of the link text.
	end = c.indexAfter(end, ']') + 1
	if end >= len(c.source) {
		return start, min(end, len(c.source))
	}
	switch c.source[end] {
	case '(':
		depth := 0
		inTitle := byte(0)
		for i := end; i < len(c.source); i++ {
			ch := c.source[i]
			switch {
			case inTitle != 0:
				if ch == inTitle {
					inTitle = 0
				}
			case ch == '"' || ch == '\'':
				inTitle = ch
			case ch == '(':
				depth++
			case ch == ')':
				depth--
				if depth == 0 {
					return start, i + 1
				}
			}
		}
	case '[':
		return start, c.indexAfter(end, ']') + 1
	}
	return start, end
}

func (c *converter) inlineText(n ast.Node) string {
	var buf bytes.Buffer
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch t := child.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(c.source))
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(c.inlineText(child))
		}
	}
	return buf.String()
}

// nextLine returns the span of the first non-blank line at or after
// offset, without its leading container markers.
func (c *converter) nextLine(offset int) (int, int) {
	start := c.skipBlank(offset)
	return start, trimLineEnd(c.source, c.lineEnd(start))
}

// skipBlank skips whitespace, newlines and block quote markers.
func (c *converter) skipBlank(offset int) int {
	for offset < len(c.source) {
		switch c.source[offset] {
		case ' ', '\t', '\n', '\r', '>':
			offset++
		default:
			return offset
		}
	}
	return offset
}

func (c *converter) skipSpaces(offset int) int {
	for offset < len(c.source) && (c.source[offset] == ' ' || c.source[offset] == '\t' || c.source[offset] == '>') {
		offset++
	}
	return offset
}

// markerEnd returns the offset right after a list marker starting at
// offset.
func (c *converter) markerEnd(offset int) int {
	i := offset
	for i < len(c.source) && c.source[i] >= '0' && c.source[i] <= '9' {
		i++
	}
	if i < len(c.source) {
		switch c.source[i] {
		case '-', '+', '*', '.', ')':
			i++
		}
	}
	return i
}

func (c *converter) indexAfter(offset int, ch byte) int {
	if offset >= len(c.source) {
		return len(c.source)
	}
	idx := bytes.IndexByte(c.source[offset:], ch)
	if idx < 0 {
		return len(c.source)
	}
	return offset + idx
}

func (c *converter) lineEnd(offset int) int {
	return c.indexAfter(offset, '\n')
}

func trimLineEnd(source []byte, end int) int {
	end = min(end, len(source))
	for end > 0 && (source[end-1] == '\n' || source[end-1] == '\r') {
		end--
	}
	return end
}

func byteLineStarts(source []byte) []int {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// position converts a byte span into a line and rune column position.
func (c *converter) position(start, end int) Position {
	start = min(max(start, 0), len(c.source))
	end = min(max(end, start), len(c.source))

	sl, sc := c.lineColumn(start)
	if end == start {
		return Position{StartLine: sl, StartColumn: sc, EndLine: sl, EndColumn: sc - 1}
	}
	// The last rune of the span may be longer than one byte.
	last := end - 1
	for last > start && !utf8.RuneStart(c.source[last]) {
		last--
	}
	el, ec := c.lineColumn(last)
	return Position{StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec}
}

func (c *converter) lineColumn(offset int) (int, int) {
	line := 0
	for line+1 < len(c.lineStarts) && c.lineStarts[line+1] <= offset {
		line++
	}
	col := utf8.RuneCount(c.source[c.lineStarts[line]:offset]) + 1
	return line + 1, col
}

// offset is the inverse of lineColumn.
func (c *converter) offset(line, column int) int {
	if line < 1 {
		return 0
	}
	if line > len(c.lineStarts) {
		return len(c.source)
	}
	i := c.lineStarts[line-1]
	for col := 1; col < column && i < len(c.source); col++ {
		_, size := utf8.DecodeRune(c.source[i:])
		i += size
	}
	return i
}
