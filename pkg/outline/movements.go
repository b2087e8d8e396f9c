package outline

import (
	"github.com/stateful/outline/pkg/textlayout"
)

// moveTo collapses the selection onto pos.
func (r *Root) moveTo(pos int) {
	r.SetCursor(pos)
	r.cancelSelection()
}

func (r *Root) moveLeft() {
	n := r.editing
	switch {
	case !r.selected.IsEmpty():
		r.SetCursor(r.selected.Start)
	case r.cursor == 0:
		if prev := n.PreviousVisible(); prev != nil {
			r.SetEditedNode(prev)
			r.SetCursor(prev.Len())
		}
	default:
		r.SetCursor(n.PositionBefore(r.cursor))
	}
	r.cancelSelection()
}

func (r *Root) moveRight() {
	n := r.editing
	switch {
	case !r.selected.IsEmpty():
		r.SetCursor(r.selected.End)
	case r.cursor == n.Len():
		if next := n.NextVisible(); next != nil {
			r.SetEditedNode(next)
			r.SetCursor(0)
		}
	default:
		r.SetCursor(n.PositionAfter(r.cursor))
	}
	r.cancelSelection()
}

// moveUp moves to the line above, crossing into the previous visible
// node on the first line. The horizontal offset is kept as well as the
// layout of both nodes allows.
func (r *Root) moveUp() {
	n := r.editing
	if !n.IsOnFirstLine(r.cursor) {
		pos, _ := n.PositionAbove(r.cursor)
		r.moveTo(pos)
		return
	}
	prev := n.PreviousVisible()
	if prev == nil {
		r.moveTo(0)
		return
	}
	x := r.crossOffset(n, prev)
	pos := prev.IndexOnLastLine(x)
	r.SetEditedNode(prev)
	r.moveTo(pos)
}

func (r *Root) moveDown() {
	n := r.editing
	if !n.IsOnLastLine(r.cursor) {
		pos, _ := n.PositionBelow(r.cursor)
		r.moveTo(pos)
		return
	}
	next := n.NextVisible()
	if next == nil {
		r.moveTo(n.Len())
		return
	}
	x := r.crossOffset(n, next)
	pos := next.IndexOnFirstLine(x)
	r.SetEditedNode(next)
	r.moveTo(pos)
}

// crossOffset translates the horizontal offset of the cursor in from into
// the coordinates of to.
func (r *Root) crossOffset(from, to *Node) float64 {
	return from.OffsetAt(r.cursor) + from.OffsetInDocument().X - to.OffsetInDocument().X
}

func (r *Root) page(step func()) {
	for i := 0; i < max(r.ctx.PageLines, 1); i++ {
		step()
	}
}

func (r *Root) moveToBeginningOfDocument() {
	if first := r.Child(0); first != nil {
		r.SetEditedNode(first)
	}
	r.moveTo(0)
}

func (r *Root) moveToEndOfDocument() {
	last := r.Node.DeepestChild()
	for last != nil && last != r.Node && !last.InOpenBranch() {
		last = last.PreviousNode()
	}
	if last != nil && last != r.Node {
		r.SetEditedNode(last)
	}
	r.moveTo(r.editing.Len())
}

// extendSelection moves the end of the selection that sits on the
// cursor to pos. The selection stays normalized.
func (r *Root) extendSelection(pos int) {
	start, end := r.selected.Start, r.selected.End
	if r.cursor == end {
		end = pos
	} else {
		start = pos
	}
	r.selected = Range{Start: start, End: end}.normalized(r.editing.Len())
	r.SetCursor(pos)
	r.editing.invalidateText()
}

func (r *Root) selectAll() {
	r.selected = Range{End: r.editing.Len()}
	r.SetCursor(r.selected.End)
	r.editing.invalidateText()
}

func (r *Root) selectLine() {
	n := r.editing
	r.selected = Range{Start: n.BeginningOfLine(r.cursor), End: n.EndOfLine(r.cursor)}.normalized(n.Len())
	r.SetCursor(r.selected.End)
	n.invalidateText()
}

func (r *Root) selectWord() {
	for _, w := range textlayout.Words(r.editing.text) {
		if r.cursor >= w.Start && r.cursor <= w.End {
			r.selected = Range{Start: w.Start, End: w.End}
			r.SetCursor(w.End)
			r.editing.invalidateText()
			return
		}
	}
}

// wordEndAfter returns the end of the first word ending after pos, or pos
// when there is none.
func (r *Root) wordEndAfter(pos int) int {
	for _, w := range textlayout.Words(r.editing.text) {
		if w.End > pos {
			return w.End
		}
	}
	return pos
}

// wordStartBefore returns the start of the last word starting before pos,
// or 0 when there is none.
func (r *Root) wordStartBefore(pos int) int {
	start := 0
	for _, w := range textlayout.Words(r.editing.text) {
		if w.Start >= pos {
			break
		}
		start = w.Start
	}
	return start
}
