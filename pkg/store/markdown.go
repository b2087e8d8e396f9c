package store

import (
	"bytes"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

var ErrFrontmatterInvalid = errors.New("invalid frontmatter")

// Frontmatter is the metadata block that may open an imported markdown
// file.
type Frontmatter struct {
	ID    string `yaml:"id,omitempty" toml:"id,omitempty"`
	Title string `yaml:"title,omitempty" toml:"title,omitempty"`
}

// splitFrontmatter separates a leading frontmatter delimited by "---"
// (YAML) or "+++" (TOML) lines from the content.
func splitFrontmatter(source []byte) (*Frontmatter, []byte, error) {
	var delim string
	switch {
	case bytes.HasPrefix(source, []byte("---\n")):
		delim = "---"
	case bytes.HasPrefix(source, []byte("+++\n")):
		delim = "+++"
	default:
		return &Frontmatter{}, source, nil
	}

	rest := source[len(delim)+1:]
	end := bytes.Index(rest, []byte("\n"+delim))
	if end < 0 {
		return nil, nil, errors.WithStack(ErrFrontmatterInvalid)
	}
	raw := rest[:end]
	content := rest[end+len(delim)+1:]
	content = bytes.TrimLeft(content, "\r\n")

	var f Frontmatter
	var err error
	if delim == "---" {
		err = yaml.Unmarshal(raw, &f)
	} else {
		err = toml.Unmarshal(raw, &f)
	}
	if err != nil {
		return nil, nil, errors.Wrap(ErrFrontmatterInvalid, err.Error())
	}
	return &f, content, nil
}

// ImportMarkdown creates a note from a markdown document. Every list item
// becomes a bullet and nested lists become children. Other top level
// blocks become bullets holding their raw source. The title comes from
// the frontmatter, then from a leading level one heading, then from
// fallbackTitle.
func (s *Store) ImportMarkdown(source []byte, fallbackTitle string) (*Note, error) {
	fm, content, err := splitFrontmatter(source)
	if err != nil {
		return nil, err
	}

	doc := goldmark.DefaultParser().Parse(text.NewReader(content))

	title := fm.Title
	first := doc.FirstChild()
	if h, ok := first.(*ast.Heading); ok && h.Level == 1 && title == "" {
		title = strings.TrimSpace(string(linesValue(h, content)))
		first = first.NextSibling()
	}
	if title == "" {
		title = fallbackTitle
	}
	if _, ok := s.NoteByTitle(title); ok {
		return nil, errors.Wrapf(ErrNoteExists, "title %q", title)
	}

	note := newNote(s, fm.ID, title)
	if _, ok := s.notes[note.ID]; ok {
		return nil, errors.Errorf("duplicate note id %q", note.ID)
	}

	for n := first; n != nil; n = n.NextSibling() {
		switch n.Kind() {
		case ast.KindList:
			importList(note.root, n, content)
		default:
			if raw := blockSource(n, content); len(raw) > 0 {
				note.root.CreateChild(string(raw))
			}
		}
	}

	s.notes[note.ID] = note
	s.dirty = true
	return note, nil
}

func importList(parent *Bullet, list ast.Node, source []byte) {
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var (
			lines  []string
			nested []ast.Node
		)
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if c.Kind() == ast.KindList {
				nested = append(nested, c)
				continue
			}
			if raw := blockSource(c, source); len(raw) > 0 {
				lines = append(lines, string(raw))
			}
		}
		b := parent.CreateChild(strings.Join(lines, "\n")).(*Bullet)
		for _, l := range nested {
			importList(b, l, source)
		}
	}
}

// blockSource returns the markdown source of a block, without the
// container markers of its ancestors.
func blockSource(n ast.Node, source []byte) []byte {
	switch n := n.(type) {
	case *ast.ThematicBreak:
		return []byte("---")
	case *ast.Heading:
		return append([]byte(strings.Repeat("#", n.Level)+" "), linesValue(n, source)...)
	case *ast.FencedCodeBlock:
		var buf bytes.Buffer
		buf.WriteString("```")
		if n.Info != nil {
			buf.Write(n.Info.Segment.Value(source))
		}
		buf.WriteString("\n")
		buf.Write(linesValue(n, source))
		buf.WriteString("\n```")
		return buf.Bytes()
	case *ast.Blockquote:
		var lines []string
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			for _, l := range strings.Split(string(blockSource(c, source)), "\n") {
				lines = append(lines, "> "+l)
			}
		}
		return []byte(strings.Join(lines, "\n"))
	}
	return linesValue(n, source)
}

func linesValue(n ast.Node, source []byte) []byte {
	lines := n.Lines()
	if lines == nil {
		return nil
	}
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return bytes.TrimRight(buf.Bytes(), "\r\n")
}

// ExportMarkdown writes note as a YAML frontmatter followed by a nested
// bullet list.
func ExportMarkdown(note *Note) ([]byte, error) {
	var buf bytes.Buffer

	fm, err := yaml.Marshal(Frontmatter{ID: note.ID, Title: note.Title})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	buf.WriteString("---\n")
	buf.Write(fm)
	buf.WriteString("---\n\n")

	note.Walk(func(b *Bullet) {
		indent := strings.Repeat("  ", b.Depth())
		lines := strings.Split(b.content, "\n")
		buf.WriteString(indent + "- " + lines[0] + "\n")
		for _, l := range lines[1:] {
			buf.WriteString(indent + "  " + l + "\n")
		}
	})
	return buf.Bytes(), nil
}
