package outline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/stateful/outline/pkg/store"
)

// item describes a bullet and its children.
type item struct {
	Text     string
	Children []item
}

func bullet(text string, children ...item) item {
	return item{Text: text, Children: children}
}

func createItems(parent store.Record, items []item) {
	for _, it := range items {
		createItems(parent.CreateChild(it.Text), it.Children)
	}
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(store.WithLogger(zaptest.NewLogger(t)))
}

func newTestRoot(t *testing.T, items ...item) *Root {
	t.Helper()
	st := newTestStore(t)
	note, err := st.CreateNote("Test")
	require.NoError(t, err)
	createItems(note.Root(), items)
	return NewRoot(note, WithLogger(zaptest.NewLogger(t)))
}

func shapeOf(n *Node) []item {
	var result []item
	for _, c := range n.Children() {
		result = append(result, item{Text: c.Text(), Children: shapeOf(c)})
	}
	return result
}

func recordShapeOf(r store.Record) []item {
	var result []item
	for _, c := range r.Children() {
		result = append(result, item{Text: c.Content(), Children: recordShapeOf(c)})
	}
	return result
}

// requireShape checks the tree under r and the records of the note.
func requireShape(t *testing.T, r *Root, want ...item) {
	t.Helper()
	if diff := cmp.Diff(want, shapeOf(r.Node)); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, recordShapeOf(r.Note().Root())); diff != "" {
		t.Fatalf("unexpected records (-want +got):\n%s", diff)
	}
}

// find returns the first node with text.
func find(t *testing.T, r *Root, text string) *Node {
	t.Helper()
	var found *Node
	r.Walk(func(n *Node) bool {
		if n != r.Node && n.Text() == text {
			found = n
			return false
		}
		return true
	})
	require.NotNil(t, found, "no node with text %q", text)
	return found
}

func editAt(t *testing.T, r *Root, text string, cursor int) *Node {
	t.Helper()
	n := find(t, r, text)
	r.SetEditedNode(n)
	r.SetCursor(cursor)
	r.cancelSelection()
	return n
}
