package markdown

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/stateful/outline/pkg/styled"
)

const (
	ParagraphSeparator = "\n"
	LineSeparator      = "\u2028"
	thematicBreak      = "\u200b\n"
)

// Renderer turns the source text of one outline node into a styled
// string annotated with source positions.
type Renderer struct {
	parser           Parser
	styler           *Styler
	logger           *zap.Logger
	contextualSyntax bool
	paragraph        styled.ParagraphStyle
}

type RendererOption func(*Renderer)

func WithParser(p Parser) RendererOption {
	return func(r *Renderer) {
		r.parser = p
	}
}

func WithStyler(s *Styler) RendererOption {
	return func(r *Renderer) {
		r.styler = s
	}
}

func WithLogger(logger *zap.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithContextualSyntax enables revealing the markdown syntax of the
// nodes the cursor is in.
func WithContextualSyntax(enabled bool) RendererOption {
	return func(r *Renderer) {
		r.contextualSyntax = enabled
	}
}

func WithParagraphStyle(p styled.ParagraphStyle) RendererOption {
	return func(r *Renderer) {
		r.paragraph = p
	}
}

func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		contextualSyntax: true,
		paragraph: styled.ParagraphStyle{
			WordWrap:             true,
			LineHeightMultiple:   1.3,
			LineSpacing:          0,
			TabStopWidthInSpaces: 4,
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.parser == nil {
		r.parser = NewGoldmarkParser()
	}
	if r.styler == nil {
		r.styler = DefaultStyler()
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// Render renders source. cursor is the source offset of the edit cursor
// or a negative number when source is not being edited. Empty source that
// is not being edited renders as placeholder.
func (r *Renderer) Render(source, placeholder string, cursor int) *styled.String {
	if source == "" && cursor < 0 {
		s := styled.New(placeholder, r.styler.Placeholder())
		s.Paragraph = r.paragraph
		return s
	}

	doc, err := r.parser.Parse(source)
	if err != nil {
		r.logger.Debug("failed to parse text", zap.Error(err))
		return &styled.String{Paragraph: r.paragraph}
	}

	v := &visitor{
		renderer: r,
		source:   []rune(source),
		lines:    NewLineTable(source),
		cursor:   cursor,
	}
	s := v.visit(doc, false)
	s.Paragraph = r.paragraph
	return s
}

type visitor struct {
	renderer *Renderer
	source   []rune
	lines    *LineTable
	cursor   int

	showStyle      bool
	showStyleStack []bool
	prefixes       []*prefixGenerator
}

func (v *visitor) visit(n *Node, hasSuccessor bool) *styled.String {
	v.enter(n)
	defer v.leave(n)

	var s *styled.String

	switch n.Kind {
	case KindDocument:
		s = v.children(n)

	case KindBlockQuote, KindParagraph, KindHeading:
		s = v.children(n)
		v.separate(s, hasSuccessor)

	case KindList:
		v.prefixes = append(v.prefixes, newPrefixGenerator(n))
		s = v.children(n)
		v.prefixes = v.prefixes[:len(v.prefixes)-1]

	case KindListItem:
		s = v.children(n)
		prefix, ok := "", false
		if len(v.prefixes) > 0 {
			prefix, ok = v.prefixes[len(v.prefixes)-1].Next()
		}
		if !ok {
			prefix = Bullet
		}
		s.Insert(0, prefix+"\t", styled.Attributes{})
		v.separate(s, hasSuccessor)

	case KindCodeBlock:
		text := n.Literal
		if v.showStyle {
			text = v.substring(v.span(n))
		}
		s = v.literal(strings.ReplaceAll(text, "\n", LineSeparator))
		v.separate(s, hasSuccessor)

	case KindHTMLBlock:
		s = v.literal(n.Literal)
		v.separate(s, hasSuccessor)

	case KindCustomBlock:
		if n.IsLeaf() {
			s = v.literal(n.Literal)
		} else {
			s = v.children(n)
		}
		v.separate(s, hasSuccessor)

	case KindThematicBreak:
		s = v.literal(thematicBreak)

	case KindCode:
		if v.showStyle {
			s = v.literal(v.substring(v.span(n)))
		} else {
			s = v.literal(n.Literal)
		}

	case KindText, KindHTMLInline:
		s = v.literal(n.Literal)

	case KindSoftBreak:
		s = v.literal(" ")

	case KindLineBreak:
		s = v.literal(LineSeparator)

	case KindCustomInline:
		if n.IsLeaf() {
			s = v.literal(n.Literal)
		} else {
			s = v.children(n)
		}

	case KindEmphasis, KindStrong, KindLink, KindImage:
		s = v.children(n)

	default:
		v.renderer.logger.Debug("unsupported node kind", zap.Stringer("kind", n.Kind))
		s = &styled.String{}
	}

	v.decorate(n, s)
	v.renderer.styler.Style(n, s)

	if n.Kind == KindText {
		for _, l := range InternalLinks(n.Literal) {
			v.renderer.styler.Link(s, l.Start, l.End, l.Title, l.Title)
		}
	}

	return s
}

func (v *visitor) children(n *Node) *styled.String {
	s := &styled.String{}
	for i, c := range n.Children {
		s.AppendString(v.visit(c, i < len(n.Children)-1))
	}
	return s
}

func (v *visitor) literal(text string) *styled.String {
	return styled.New(text, styled.Attributes{})
}

func (v *visitor) separate(s *styled.String, hasSuccessor bool) {
	if hasSuccessor {
		s.Append(ParagraphSeparator, styled.Attributes{})
	}
}

func (v *visitor) span(n *Node) (int, int) {
	return v.lines.Span(n.Position)
}

func (v *visitor) enter(n *Node) {
	if !v.renderer.contextualSyntax {
		return
	}
	v.showStyleStack = append(v.showStyleStack, v.showStyle)
	start, end := v.span(n)
	v.showStyle = v.cursor >= start && v.cursor <= end
}

func (v *visitor) leave(*Node) {
	if !v.renderer.contextualSyntax {
		return
	}
	last := len(v.showStyleStack) - 1
	v.showStyle = v.showStyleStack[last]
	v.showStyleStack = v.showStyleStack[:last]
}

// decorate annotates leaves with their source position. For other nodes
// with the syntax shown, it splices back the raw syntax between the node
// and its children.
func (v *visitor) decorate(n *Node, s *styled.String) {
	start, end := v.span(n)
	if n.IsLeaf() {
		s.SetSourcePos(v.leafStart(n, start, end))
		return
	}
	if !v.showStyle {
		return
	}

	firstStart, _ := v.span(n.FirstChild())
	_, lastEnd := v.span(n.LastChild())

	var first, last styled.Attributes
	if s.Len() > 0 {
		first, _ = s.AttributesAt(0)
		last, _ = s.AttributesAt(s.Len() - 1)
	}

	if postfix := v.substring(lastEnd, end); postfix != "" {
		s.Append(postfix, last.WithSourcePos(lastEnd))
	}
	if prefix := v.substring(start, firstStart); prefix != "" {
		s.Insert(0, prefix, first.WithSourcePos(start))
	}
}

// leafStart returns the source position of the first displayed
// character of a leaf. Hidden code delimiters and fences are skipped.
func (v *visitor) leafStart(n *Node, start, end int) int {
	if (n.Kind != KindCode && n.Kind != KindCodeBlock) || v.showStyle {
		return start
	}
	raw := v.substring(start, end)
	if i := strings.Index(raw, n.Literal); i >= 0 {
		return start + RuneLen(raw[:i])
	}
	return start
}

func (v *visitor) substring(start, end int) string {
	start = min(max(start, 0), len(v.source))
	end = min(max(end, start), len(v.source))
	return string(v.source[start:end])
}

// DisplayText is a convenience returning only the text of a rendering.
func (r *Renderer) DisplayText(source string) string {
	return r.Render(source, "", -1).Text()
}

// RuneLen counts the characters of s the way offsets are counted.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
