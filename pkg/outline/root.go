package outline

import (
	"go.uber.org/zap"

	"github.com/stateful/outline/pkg/store"
)

const (
	LinkedReferencesTitle   = "Linked references"
	UnlinkedReferencesTitle = "Unlinked references"
)

// Root is the editor of a note. It owns the tree of nodes, the node being
// edited, the cursor and selection, and the undo history.
type Root struct {
	*Node

	ctx  *Context
	note *store.Note

	editing  *Node
	cursor   int
	selected Range
	marked   Range

	history     *History
	lastCommand Command

	linkedRefs   *Node
	unlinkedRefs *Node
}

// NewRoot builds the tree of note. A note without bullets gets an empty
// one so there is always something to edit.
func NewRoot(note *store.Note, opts ...Option) *Root {
	s := newSettings(opts)
	ctx := &s.ctx
	tree := newTree(ctx)

	r := &Root{
		ctx:     ctx,
		note:    note,
		history: newHistory(ctx.UndoLimit),
	}
	tree.editor = r

	r.Node = tree.newNode("")
	r.selfVisible = false
	r.record = note.Root()

	if len(note.Bullets()) == 0 {
		note.Root().CreateChild("")
	}
	for _, b := range note.Bullets() {
		r.AddChild(tree.newRecordNode(b, false))
	}
	if first := r.Child(0); first != nil {
		first.SetPlaceholder(ctx.Placeholder)
	}

	if s.store != nil {
		r.linkedRefs = r.addReferences(LinkedReferencesTitle, s.store.LinkedReferences(note.Title))
		r.unlinkedRefs = r.addReferences(UnlinkedReferencesTitle, s.store.UnlinkedReferences(note.Title))
	}

	r.editing = r.Child(0)
	if r.editing == nil {
		r.editing = r.Node
	}
	r.cancelSelection()

	ctx.Logger.Debug(
		"created root",
		zap.String("note", note.Title),
		zap.Int("bullets", len(r.children)),
	)
	return r
}

func (r *Root) addReferences(title string, refs []store.Reference) *Node {
	if len(refs) == 0 {
		return nil
	}
	section := r.tree.newStaticNode(title)
	section.isReference = true
	r.AddChild(section)
	for _, ref := range refs {
		section.AddChild(r.tree.newRecordNode(ref.Bullet, true))
	}
	return section
}

func (r *Root) Note() *store.Note {
	return r.note
}

func (r *Root) Context() *Context {
	return r.ctx
}

func (r *Root) LinkedReferences() *Node {
	return r.linkedRefs
}

func (r *Root) UnlinkedReferences() *Node {
	return r.unlinkedRefs
}

// EditedNode returns the node holding the cursor.
func (r *Root) EditedNode() *Node {
	return r.editing
}

// SetEditedNode moves the edit cursor to n. The selection is canceled.
func (r *Root) SetEditedNode(n *Node) {
	if n == nil || n.tree != r.tree || n == r.editing {
		return
	}
	old := r.editing
	r.editing = n
	old.invalidateText()
	n.invalidateText()
	r.cancelSelection()
	r.lastCommand = CommandNone
}

// Focus edits n from its start.
func (r *Root) Focus(n *Node) {
	r.SetEditedNode(n)
	r.SetCursor(0)
	r.cancelSelection()
}

func (r *Root) Cursor() int {
	return r.cursor
}

// SetCursor moves the cursor within the edited node. The selection is
// left alone.
func (r *Root) SetCursor(pos int) {
	r.cursor = clamp(pos, 0, r.editing.Len())
	r.editing.invalidateText()
}

func (r *Root) SelectedRange() Range {
	return r.selected
}

// SetSelection selects rng in the edited node and puts the cursor at its
// end, the way a mouse drag does.
func (r *Root) SetSelection(rng Range) {
	rng = rng.normalized(r.editing.Len())
	r.SetCursor(rng.End)
	r.selected = rng
	r.editing.invalidateText()
}

func (r *Root) MarkedRange() Range {
	return r.marked
}

func (r *Root) HasMarkedText() bool {
	return !r.marked.IsEmpty()
}

func (r *Root) SelectedText() string {
	return sliceRunes(r.editing.text, r.selected.Start, r.selected.End)
}

func (r *Root) History() *History {
	return r.history
}

func (r *Root) cancelSelection() {
	r.selected = collapsed(r.cursor)
	r.marked = r.selected
	r.editing.invalidateText()
}

// NodeAt returns the node under p, in document coordinates.
func (r *Root) NodeAt(p Point) *Node {
	return r.Node.NodeAt(p)
}

// PositionAt returns the node and source position under p, in document
// coordinates.
func (r *Root) PositionAt(p Point) (*Node, int, bool) {
	n := r.NodeAt(p)
	if n == nil {
		return nil, 0, false
	}
	o := n.OffsetInDocument()
	return n, n.PositionAt(Point{X: p.X - o.X, Y: p.Y - o.Y}), true
}

// CursorRect returns the caret rectangle in document coordinates.
func (r *Root) CursorRect() Rect {
	rect := r.editing.RectAt(r.cursor)
	o := r.editing.OffsetInDocument()
	rect.X += o.X
	rect.Y += o.Y
	return rect
}

// FirstRect returns the rectangle covering the caret positions of rng in
// the edited node, in document coordinates.
func (r *Root) FirstRect(rng Range) Rect {
	o := r.editing.OffsetInDocument()
	rect := r.editing.RectAt(rng.Start).Union(r.editing.RectAt(rng.End))
	rect.X += o.X
	rect.Y += o.Y
	return rect
}

// flush runs the invalidations collected while a command ran. Nodes
// detached and not attached again by then are dropped.
func (r *Root) flush() {
	r.tree.collectDetached()
	if r.tree.Node(r.editing.id) == nil {
		r.editing = r.Node
		if first := r.Child(0); first != nil {
			r.editing = first
		}
		r.SetCursor(0)
		r.cancelSelection()
	}
	r.tree.ensureLayout()
}
