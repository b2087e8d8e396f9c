package markdown

import "fmt"

// Kind is the closed set of node kinds the renderer understands.
type Kind int

const (
	KindDocument Kind = iota
	KindBlockQuote
	KindList
	KindListItem
	KindCodeBlock
	KindHTMLBlock
	KindCustomBlock
	KindParagraph
	KindHeading
	KindThematicBreak
	KindText
	KindSoftBreak
	KindLineBreak
	KindCode
	KindHTMLInline
	KindCustomInline
	KindEmphasis
	KindStrong
	KindLink
	KindImage
)

var kindNames = [...]string{
	KindDocument:      "Document",
	KindBlockQuote:    "BlockQuote",
	KindList:          "List",
	KindListItem:      "ListItem",
	KindCodeBlock:     "CodeBlock",
	KindHTMLBlock:     "HTMLBlock",
	KindCustomBlock:   "CustomBlock",
	KindParagraph:     "Paragraph",
	KindHeading:       "Heading",
	KindThematicBreak: "ThematicBreak",
	KindText:          "Text",
	KindSoftBreak:     "SoftBreak",
	KindLineBreak:     "LineBreak",
	KindCode:          "Code",
	KindHTMLInline:    "HTMLInline",
	KindCustomInline:  "CustomInline",
	KindEmphasis:      "Emphasis",
	KindStrong:        "Strong",
	KindLink:          "Link",
	KindImage:         "Image",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsBlock reports whether nodes of kind k are block-level.
func (k Kind) IsBlock() bool {
	return k <= KindThematicBreak
}

// Position locates a node in the source text. Lines are 1-based, columns
// are 1-based rune columns and EndColumn is inclusive. An empty node has
// EndColumn == StartColumn-1 on its start line.
type Position struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Node is one node of a parsed document.
type Node struct {
	Kind     Kind
	Position Position
	Children []*Node

	// Literal holds the text of leaf nodes.
	Literal string
	// FenceInfo is the info string of fenced code blocks.
	FenceInfo string
	// Level is the heading level or the emphasis level.
	Level int
	Title string
	URL   string

	Ordered   bool
	Start     int
	ItemCount int
	Tight     bool

	// Name identifies the parser construct behind custom nodes.
	Name string
}

func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

func (n *Node) FirstChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// Walk visits n and its descendants in document order. fn is called with
// entering=true before the children and entering=false after them.
func Walk(n *Node, fn func(n *Node, entering bool)) {
	fn(n, true)
	for _, c := range n.Children {
		Walk(c, fn)
	}
	fn(n, false)
}
