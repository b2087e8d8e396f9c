package outline

import (
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/stateful/outline/pkg/store"
)

func (n *Node) Parent() *Node {
	return n.tree.get(n.parent)
}

func (n *Node) Children() []*Node {
	result := make([]*Node, 0, len(n.children))
	for _, id := range n.children {
		if c := n.tree.get(id); c != nil {
			result = append(result, c)
		}
	}
	return result
}

func (n *Node) ChildCount() int {
	return len(n.children)
}

// HasChildren is the Go spelling of "is not a leaf".
func (n *Node) HasChildren() bool {
	return len(n.children) > 0
}

func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.tree.get(n.children[i])
}

// Root returns the topmost ancestor of the node.
func (n *Node) Root() *Node {
	r := n
	for p := r.Parent(); p != nil; p = p.Parent() {
		r = p
	}
	return r
}

// Index returns the position of the node among its siblings.
func (n *Node) Index() (int, bool) {
	p := n.Parent()
	if p == nil {
		return 0, false
	}
	i := slices.Index(p.children, n.id)
	return i, i >= 0
}

// Depth is 0 for the root and 1 for its children.
func (n *Node) Depth() int {
	depth := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		depth++
	}
	return depth
}

// isAncestorOf reports whether n is o or one of its ancestors.
func (n *Node) isAncestorOf(o *Node) bool {
	for c := o; c != nil; c = c.Parent() {
		if c == n {
			return true
		}
	}
	return false
}

// AddChild appends child, detaching it from its previous parent first.
func (n *Node) AddChild(child *Node) {
	if child == nil || child.isAncestorOf(n) {
		return
	}
	child.detach()
	n.children = append(n.children, child.id)
	n.adopt(child)
}

// Insert places child right after existing. It returns false, and does
// nothing, when existing is not a child of n.
func (n *Node) Insert(child, existing *Node) bool {
	if child == nil || existing == nil || child == existing || child.isAncestorOf(n) {
		return false
	}
	if !slices.Contains(n.children, existing.id) {
		return false
	}
	child.detach()
	i := slices.Index(n.children, existing.id)
	n.children = slices.Insert(n.children, i+1, child.id)
	n.adopt(child)
	return true
}

// InsertAt makes child the index-th child of n.
func (n *Node) InsertAt(child *Node, index int) bool {
	if child == nil || child.isAncestorOf(n) {
		return false
	}
	child.detach()
	index = clamp(index, 0, len(n.children))
	n.children = slices.Insert(n.children, index, child.id)
	n.adopt(child)
	return true
}

// SetChild replaces the index-th child with child. The replaced node is
// detached but neither deleted nor its record touched.
func (n *Node) SetChild(child *Node, index int) bool {
	if child == nil || index < 0 || index >= len(n.children) || child.isAncestorOf(n) {
		return false
	}
	old := n.tree.get(n.children[index])
	if old == child {
		return true
	}
	if i := slices.Index(n.children, child.id); i >= 0 && i < index {
		index--
	}
	child.detach()
	if old != nil {
		old.parent = noNode
	}
	n.children[index] = child.id
	n.adopt(child)
	return true
}

// RemoveChild detaches child and its record from n.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.parent != n.id {
		return
	}
	child.detach()
	if child.record != nil && !child.isReference && n.record != nil {
		n.record.RemoveChild(child.record)
	}
}

// Delete detaches the node, deletes its record and drops it and its
// descendants from the tree.
func (n *Node) Delete() {
	n.detach()
	if n.record != nil && !n.isReference {
		n.record.Delete()
	}
	n.forget()
}

func (n *Node) forget() {
	for _, c := range n.Children() {
		c.forget()
	}
	delete(n.tree.nodes, n.id)
}

// detach removes the node from the children of its parent without
// touching records.
func (n *Node) detach() {
	p := n.Parent()
	n.parent = noNode
	if p == nil {
		return
	}
	if i := slices.Index(p.children, n.id); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	p.invalidateLayout()
}

func (n *Node) adopt(child *Node) {
	child.parent = n.id
	child.setVisible(n.visible && n.open)
	child.reparented()
	n.invalidateLayout()
}

// reparented mirrors the parent link of the node into its record. A node
// without record gets one as soon as its parent has one. Reference nodes
// never own records of the edited note.
func (n *Node) reparented() {
	if n.isReference {
		return
	}
	p := n.Parent()
	if p == nil || p.record == nil {
		return
	}

	created := false
	if n.record == nil {
		n.record = p.record.CreateChild(n.text)
		created = true
	}

	index := p.recordIndex(n)
	if cur := n.record.Parent(); cur == nil || cur.ID() != p.record.ID() || recordPosition(cur, n.record) != index {
		p.record.InsertChild(n.record, index)
	}

	if created {
		n.tree.logger().Debug("created record", zap.String("id", n.record.ID()))
		for _, c := range n.Children() {
			c.reparented()
		}
	}
}

// recordIndex returns the position the record of child must have among
// the records of n: the number of record owning siblings before it.
func (n *Node) recordIndex(child *Node) int {
	index := 0
	for _, c := range n.Children() {
		if c == child {
			break
		}
		if c.record != nil && !c.isReference {
			index++
		}
	}
	return index
}

func recordPosition(parent, record store.Record) int {
	for i, c := range parent.Children() {
		if c.ID() == record.ID() {
			return i
		}
	}
	return -1
}

// SetOpen folds or unfolds the node.
func (n *Node) SetOpen(open bool) {
	if n.open == open {
		return
	}
	n.open = open
	n.invalidateLayout()
	n.updateChildrenVisibility(n.visible && n.open)
}

// Fold closes the node. Folding a leaf folds its parent and moves the
// edit cursor there.
func (n *Node) Fold() {
	if !n.HasChildren() {
		p := n.Parent()
		if p == nil || p.Parent() == nil {
			return
		}
		p.Fold()
		if e := n.tree.editor; e != nil {
			e.Focus(p)
		}
		return
	}
	n.SetOpen(false)
}

// Unfold opens the node if it has children.
func (n *Node) Unfold() {
	if !n.HasChildren() {
		return
	}
	n.SetOpen(true)
}

func (n *Node) setVisible(visible bool) {
	n.visible = visible
	n.updateChildrenVisibility(visible && n.open)
}

func (n *Node) updateChildrenVisibility(visible bool) {
	for _, c := range n.Children() {
		c.setVisible(visible)
	}
}

// InOpenBranch reports whether every ancestor of the node is open.
func (n *Node) InOpenBranch() bool {
	p := n.Parent()
	if p == nil {
		return true
	}
	return p.open && p.InOpenBranch()
}

func (n *Node) DeepestChild() *Node {
	if c := n.Child(len(n.children) - 1); c != nil {
		return c.DeepestChild()
	}
	return n
}

func (n *Node) NextSibling() *Node {
	i, ok := n.Index()
	if !ok {
		return nil
	}
	return n.Parent().Child(i + 1)
}

func (n *Node) PreviousSibling() *Node {
	i, ok := n.Index()
	if !ok {
		return nil
	}
	return n.Parent().Child(i - 1)
}

// NextNode returns the node after n in document order.
func (n *Node) NextNode() *Node {
	if c := n.Child(0); c != nil {
		return c
	}
	for p := n; p != nil; p = p.Parent() {
		if s := p.NextSibling(); s != nil {
			return s
		}
	}
	return nil
}

// PreviousNode returns the node before n in document order.
func (n *Node) PreviousNode() *Node {
	if s := n.PreviousSibling(); s != nil {
		return s.DeepestChild()
	}
	return n.Parent()
}

// NextVisible returns the next node in document order that is not
// hidden by a folded ancestor.
func (n *Node) NextVisible() *Node {
	c := n.NextNode()
	for c != nil && !c.InOpenBranch() {
		c = c.NextNode()
	}
	return c
}

// PreviousVisible returns the previous node in document order that is
// not hidden by a folded ancestor. The root is never returned.
func (n *Node) PreviousVisible() *Node {
	c := n.PreviousNode()
	for c != nil && !c.InOpenBranch() {
		c = c.PreviousNode()
	}
	if c == nil || c.Parent() == nil {
		return nil
	}
	return c
}

// Walk calls fn for n and its descendants in document order until fn
// returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children() {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first node of the subtree of n whose record has id.
func (n *Node) Find(recordID string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if c.record != nil && c.record.ID() == recordID {
			found = c
			return false
		}
		return true
	})
	return found
}
