package outline

import (
	"go.uber.org/zap"

	"github.com/stateful/outline/pkg/store"
)

// NodeID identifies a node within its tree. The zero value is no node.
type NodeID uint64

const noNode NodeID = 0

// Tree owns the nodes of an outline. Nodes refer to each other by id and
// the root is found by walking parent ids.
type Tree struct {
	ctx    *Context
	nodes  map[NodeID]*Node
	nextID NodeID

	editor      *Root
	needsLayout bool
}

func newTree(ctx *Context) *Tree {
	return &Tree{
		ctx:         ctx,
		nodes:       make(map[NodeID]*Node),
		needsLayout: true,
	}
}

func (t *Tree) newNode(text string) *Node {
	t.nextID++
	n := &Node{
		id:          t.nextID,
		tree:        t,
		text:        text,
		open:        true,
		selfVisible: true,
		visible:     true,
	}
	t.nodes[n.id] = n
	return n
}

// newRecordNode creates a node mirroring record and, recursively, its
// children.
func (t *Tree) newRecordNode(record store.Record, reference bool) *Node {
	n := t.newNode(record.Content())
	n.record = record
	n.isReference = reference
	n.readOnly = reference
	for _, c := range record.Children() {
		n.AddChild(t.newRecordNode(c, reference))
	}
	return n
}

// newStaticNode creates a read only node that owns no record.
func (t *Tree) newStaticNode(text string) *Node {
	n := t.newNode(text)
	n.readOnly = true
	return n
}

// Node returns the node with id, or nil once it was deleted.
func (t *Tree) Node(id NodeID) *Node {
	return t.nodes[id]
}

// Len returns the number of live nodes, the root included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) get(id NodeID) *Node {
	if id == noNode {
		return nil
	}
	return t.nodes[id]
}

func (t *Tree) logger() *zap.Logger {
	return t.ctx.Logger
}

func (t *Tree) invalidateLayout() {
	t.needsLayout = true
}

func (t *Tree) root() *Node {
	if t.editor == nil {
		return nil
	}
	return t.editor.Node
}

// ensureLayout runs the layout pass if anything changed since the last
// one. Only nodes attached to the root are laid out.
func (t *Tree) ensureLayout() {
	root := t.root()
	if !t.needsLayout || root == nil {
		return
	}
	t.needsLayout = false
	root.updateLayout(t.ctx.Width)
}

// collectDetached drops the nodes left without parent since the last
// command, together with their descendants. Their records are kept.
func (t *Tree) collectDetached() {
	root := t.root()
	if root == nil {
		return
	}
	for _, n := range t.nodes {
		if n.parent != noNode || n == root {
			continue
		}
		t.logger().Debug("dropping detached node", zap.Uint64("node", uint64(n.id)))
		n.forget()
	}
}
