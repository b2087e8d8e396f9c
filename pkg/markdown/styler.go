package markdown

import "github.com/stateful/outline/pkg/styled"

// Styler decides the style of every kind of rendered node.
type Styler struct {
	HeadingScales []float64
}

func DefaultStyler() *Styler {
	return &Styler{HeadingScales: []float64{1.4, 1.25, 1.1}}
}

func (s *Styler) headingScale(level int) float64 {
	if level < 1 || level > len(s.HeadingScales) {
		return 1
	}
	return s.HeadingScales[level-1]
}

// Style applies the style of n to str. Source positions are left intact.
func (s *Styler) Style(n *Node, str *styled.String) {
	switch n.Kind {
	case KindHeading:
		scale := s.headingScale(n.Level)
		str.UpdateStyle(func(st *styled.Style) {
			st.Bold = true
			st.Heading = n.Level
			st.Scale = scale
		})
	case KindBlockQuote:
		str.UpdateStyle(func(st *styled.Style) { st.Quote++ })
	case KindCodeBlock, KindCode, KindHTMLBlock, KindHTMLInline:
		str.UpdateStyle(func(st *styled.Style) { st.Code = true })
	case KindEmphasis:
		str.UpdateStyle(func(st *styled.Style) { st.Italic = true })
	case KindStrong:
		str.UpdateStyle(func(st *styled.Style) { st.Bold = true })
	case KindLink, KindImage:
		s.Link(str, 0, str.Len(), n.Title, n.URL)
	case KindCustomInline:
		if n.Name == "Strikethrough" {
			str.UpdateStyle(func(st *styled.Style) { st.Strike = true })
		}
	}
}

// Link styles [start, end) of str as a link.
func (s *Styler) Link(str *styled.String, start, end int, title, url string) {
	str.Update(start, end, func(a *styled.Attributes) {
		a.Style.Link = true
		a.Style.Underline = true
		a.LinkTitle = title
		a.LinkURL = url
	})
}

// Placeholder returns the style of placeholder text.
func (s *Styler) Placeholder() styled.Attributes {
	return styled.Attributes{Style: styled.Style{Disabled: true}}
}
