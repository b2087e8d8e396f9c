package outline

import (
	"strings"
)

// PrintTree returns an indented listing of the node and its visible
// descendants. Folded nodes are marked with "> - " and open nodes with
// children with "v - ".
func (n *Node) PrintTree() string {
	var b strings.Builder
	n.printTree(&b, 0)
	return b.String()
}

func (n *Node) printTree(b *strings.Builder, level int) {
	b.WriteString(strings.Repeat("\t", level))
	switch {
	case !n.HasChildren():
		b.WriteString("- ")
	case n.open:
		b.WriteString("v - ")
	default:
		b.WriteString("> - ")
	}
	b.WriteString(n.text)
	b.WriteString("\n")
	if !n.open {
		return
	}
	for _, c := range n.Children() {
		c.printTree(b, level+1)
	}
}

// PrintTree lists the note title followed by its nodes.
func (r *Root) PrintTree() string {
	var b strings.Builder
	b.WriteString(r.note.Title)
	b.WriteString("\n")
	for _, c := range r.Children() {
		c.printTree(&b, 1)
	}
	return b.String()
}
