package outline

import (
	"github.com/stateful/outline/pkg/store"
	"github.com/stateful/outline/pkg/styled"
	"github.com/stateful/outline/pkg/textlayout"
)

// Node is one item of an outline. It owns its markdown source text and
// the ordered list of its children.
type Node struct {
	id       NodeID
	tree     *Tree
	parent   NodeID
	children []NodeID

	text        string
	placeholder string

	open        bool
	selfVisible bool
	visible     bool
	isReference bool
	readOnly    bool

	record store.Record

	// Rendering caches, dropped by invalidateText.
	attributed *styled.String
	sourceMap  *styled.SourceMap
	layout     *textlayout.Frame
	width      float64

	// textFrame holds the text of the node only, frame the node and its
	// children. Both are relative to the parent frame.
	textFrame Rect
	frame     Rect
}

func (n *Node) ID() NodeID {
	return n.id
}

func (n *Node) Tree() *Tree {
	return n.tree
}

func (n *Node) Text() string {
	return n.text
}

// SetText replaces the source text and mirrors it into the record.
func (n *Node) SetText(text string) {
	if n.text == text {
		return
	}
	n.text = text
	if n.record != nil {
		n.record.SetContent(text)
	}
	n.invalidateText()
}

// Len returns the length of the text in runes.
func (n *Node) Len() int {
	return runeLen(n.text)
}

func (n *Node) Placeholder() string {
	return n.placeholder
}

func (n *Node) SetPlaceholder(placeholder string) {
	if n.placeholder == placeholder {
		return
	}
	n.placeholder = placeholder
	n.invalidateText()
}

func (n *Node) Record() store.Record {
	return n.record
}

func (n *Node) IsOpen() bool {
	return n.open
}

// IsVisible reports whether the node is shown, that is whether no
// ancestor is folded.
func (n *Node) IsVisible() bool {
	return n.visible
}

func (n *Node) SelfVisible() bool {
	return n.selfVisible
}

func (n *Node) IsReference() bool {
	return n.isReference
}

func (n *Node) ReadOnly() bool {
	return n.readOnly
}

func (n *Node) SetReadOnly(readOnly bool) {
	n.readOnly = readOnly
}

// IsEditing reports whether the node holds the edit cursor.
func (n *Node) IsEditing() bool {
	e := n.tree.editor
	return e != nil && e.editing == n
}

// Frame returns the frame of the node and its children, relative to its
// parent.
func (n *Node) Frame() Rect {
	n.tree.ensureLayout()
	return n.frame
}

// TextFrame returns the frame of the text of the node, relative to its
// parent.
func (n *Node) TextFrame() Rect {
	n.tree.ensureLayout()
	return Rect{X: n.frame.X, Y: n.frame.Y, Width: n.textFrame.Width, Height: n.textFrame.Height}
}

// invalidateText drops the rendered text. It is needed whenever the
// text, the cursor or the width changes.
func (n *Node) invalidateText() {
	n.attributed = nil
	n.sourceMap = nil
	n.layout = nil
	n.invalidateLayout()
}

func (n *Node) invalidateLayout() {
	n.tree.invalidateLayout()
}

func (n *Node) deepInvalidateText() {
	n.invalidateText()
	for _, c := range n.Children() {
		c.deepInvalidateText()
	}
}
