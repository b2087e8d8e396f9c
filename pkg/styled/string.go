package styled

import (
	"strings"
	"unicode/utf8"
)

// Style describes the visual attributes of a run of characters.
type Style struct {
	Bold      bool
	Italic    bool
	Code      bool
	Link      bool
	Strike    bool
	Disabled  bool
	Heading   int
	Quote     int
	Scale     float64
	Underline bool
}

// Attributes are attached to every run of a String.
type Attributes struct {
	Style Style

	// SourcePos is the offset in the source text the run starts from.
	// It is only meaningful when HasSourcePos is true.
	SourcePos    int
	HasSourcePos bool

	LinkTitle string
	LinkURL   string
}

// WithSourcePos returns a copy of a with SourcePos set to pos.
func (a Attributes) WithSourcePos(pos int) Attributes {
	a.SourcePos = pos
	a.HasSourcePos = true
	return a
}

// WithoutSourcePos returns a copy of a with no source position.
func (a Attributes) WithoutSourcePos() Attributes {
	a.SourcePos = 0
	a.HasSourcePos = false
	return a
}

type Run struct {
	Text  string
	Attrs Attributes
}

func (r Run) Len() int {
	return utf8.RuneCountInString(r.Text)
}

// ParagraphStyle is applied uniformly to the whole String.
type ParagraphStyle struct {
	WordWrap             bool
	LineHeightMultiple   float64
	LineSpacing          float64
	FirstLineHeadIndent  float64
	HeadIndent           float64
	TabStopWidthInSpaces int
}

// String is a sequence of runs. Offsets are counted in runes.
type String struct {
	runs      []Run
	Paragraph ParagraphStyle
}

func New(text string, attrs Attributes) *String {
	s := &String{}
	s.Append(text, attrs)
	return s
}

func (s *String) Runs() []Run {
	return s.runs
}

func (s *String) Len() int {
	n := 0
	for _, r := range s.runs {
		n += r.Len()
	}
	return n
}

func (s *String) Text() string {
	var b strings.Builder
	for _, r := range s.runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

func (s *String) IsEmpty() bool {
	for _, r := range s.runs {
		if r.Text != "" {
			return false
		}
	}
	return true
}

// Append adds text at the end of s. Empty text is ignored.
func (s *String) Append(text string, attrs Attributes) {
	if text == "" {
		return
	}
	if n := len(s.runs); n > 0 && s.runs[n-1].Attrs == attrs {
		s.runs[n-1].Text += text
		return
	}
	s.runs = append(s.runs, Run{Text: text, Attrs: attrs})
}

// AppendString appends all runs of other.
func (s *String) AppendString(other *String) {
	if other == nil {
		return
	}
	for _, r := range other.runs {
		s.Append(r.Text, r.Attrs)
	}
}

// Insert places text at the rune offset index. Out of range indexes are clamped.
func (s *String) Insert(index int, text string, attrs Attributes) {
	if text == "" {
		return
	}
	s.splitAt(index)
	at := s.runIndexAt(index)
	s.runs = append(s.runs, Run{})
	copy(s.runs[at+1:], s.runs[at:])
	s.runs[at] = Run{Text: text, Attrs: attrs}
	s.normalize()
}

// AttributesAt returns the attributes of the character at index and
// whether such a character exists.
func (s *String) AttributesAt(index int) (Attributes, bool) {
	if index < 0 {
		return Attributes{}, false
	}
	pos := 0
	for _, r := range s.runs {
		n := r.Len()
		if index < pos+n {
			return r.Attrs, true
		}
		pos += n
	}
	return Attributes{}, false
}

// Update calls fn for the attributes of every run in [start, end).
func (s *String) Update(start, end int, fn func(*Attributes)) {
	if start >= end {
		return
	}
	s.splitAt(start)
	s.splitAt(end)
	pos := 0
	for i := range s.runs {
		n := s.runs[i].Len()
		if pos >= start && pos+n <= end {
			fn(&s.runs[i].Attrs)
		}
		pos += n
	}
	s.normalize()
}

// UpdateAll calls fn for the attributes of every run.
func (s *String) UpdateAll(fn func(*Attributes)) {
	for i := range s.runs {
		fn(&s.runs[i].Attrs)
	}
	s.normalize()
}

// UpdateStyle changes only the style of every run, leaving source
// positions and links intact.
func (s *String) UpdateStyle(fn func(*Style)) {
	s.UpdateAll(func(a *Attributes) { fn(&a.Style) })
}

// SetSourcePos annotates every character with pos.
func (s *String) SetSourcePos(pos int) {
	s.UpdateAll(func(a *Attributes) {
		a.SourcePos = pos
		a.HasSourcePos = true
	})
}

// Substring returns the text in [start, end).
func (s *String) Substring(start, end int) string {
	runes := []rune(s.Text())
	start = clamp(start, 0, len(runes))
	end = clamp(end, start, len(runes))
	return string(runes[start:end])
}

func (s *String) Clone() *String {
	c := &String{Paragraph: s.Paragraph}
	c.runs = append([]Run(nil), s.runs...)
	return c
}

// splitAt makes sure a run boundary exists at index.
func (s *String) splitAt(index int) {
	pos := 0
	for i, r := range s.runs {
		n := r.Len()
		if index > pos && index < pos+n {
			runes := []rune(r.Text)
			head := Run{Text: string(runes[:index-pos]), Attrs: r.Attrs}
			tail := Run{Text: string(runes[index-pos:]), Attrs: r.Attrs}
			s.runs = append(s.runs[:i+1], s.runs[i:]...)
			s.runs[i] = head
			s.runs[i+1] = tail
			return
		}
		pos += n
	}
}

// runIndexAt returns the index of the run starting at index, or
// len(runs) if index is at the end. splitAt must be called first.
func (s *String) runIndexAt(index int) int {
	pos := 0
	for i, r := range s.runs {
		if pos >= index {
			return i
		}
		pos += r.Len()
	}
	return len(s.runs)
}

func (s *String) normalize() {
	if len(s.runs) < 2 {
		return
	}
	out := s.runs[:0]
	for _, r := range s.runs {
		if r.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Attrs == r.Attrs {
			out[n-1].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	s.runs = out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
