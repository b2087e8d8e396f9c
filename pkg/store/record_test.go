package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBullet_Children(t *testing.T) {
	s := newTestStore(t)
	n, err := s.CreateNote("Tree")
	require.NoError(t, err)

	a := n.Root().CreateChild("a").(*Bullet)
	c := n.Root().CreateChild("c").(*Bullet)
	b := a.CreateAfter("b").(*Bullet)
	a1 := a.CreateChild("a1").(*Bullet)

	requireTree(t, n,
		tree{Content: "a", Children: []tree{{Content: "a1"}}},
		tree{Content: "b"},
		tree{Content: "c"},
	)
	assert.Equal(t, 0, a.Depth())
	assert.Equal(t, 1, a1.Depth())
	assert.Equal(t, 4, n.Len())
	assert.Same(t, a, a1.Parent().(*Bullet))
	assert.Same(t, n, b.Note())

	c.InsertChild(a1, 0)
	requireTree(t, n,
		tree{Content: "a"},
		tree{Content: "b"},
		tree{Content: "c", Children: []tree{{Content: "a1"}}},
	)

	c.InsertChild(c, 0)
	assert.Len(t, c.Children(), 1)

	c.RemoveChild(a1)
	assert.Nil(t, a1.Parent())
	assert.Empty(t, c.Children())
}

func TestBullet_Delete(t *testing.T) {
	s := newTestStore(t)
	n, err := s.CreateNote("Tree")
	require.NoError(t, err)
	a := n.Root().CreateChild("a").(*Bullet)
	a1 := a.CreateChild("a1").(*Bullet)
	n.Root().CreateChild("b")

	a.Delete()

	requireTree(t, n, tree{Content: "b"})
	_, ok := n.Bullet(a1.ID())
	assert.False(t, ok)
	assert.Equal(t, 1, n.Len())
}

func TestBullet_MoveAcrossNotes(t *testing.T) {
	s := newTestStore(t)
	from, err := s.CreateNote("From")
	require.NoError(t, err)
	to, err := s.CreateNote("To")
	require.NoError(t, err)

	a := from.Root().CreateChild("a").(*Bullet)
	a1 := a.CreateChild("a1").(*Bullet)

	to.Root().AddChild(a)

	assert.Empty(t, from.Bullets())
	_, ok := from.Bullet(a1.ID())
	assert.False(t, ok)
	moved, ok := to.Bullet(a1.ID())
	require.True(t, ok)
	assert.Same(t, to, moved.Note())
	requireTree(t, to, tree{Content: "a", Children: []tree{{Content: "a1"}}})
}

func TestNote_Content(t *testing.T) {
	s := newTestStore(t)
	n, err := s.CreateNote("Content")
	require.NoError(t, err)

	assert.True(t, n.IsEmpty())
	b := n.Root().CreateChild("")
	assert.True(t, n.IsEmpty())

	require.NoError(t, s.Save(&nopWriter{}))
	b.SetContent("text")
	assert.False(t, n.IsEmpty())
	assert.True(t, s.Dirty())

	var visited []string
	n.Walk(func(b *Bullet) { visited = append(visited, b.Content()) })
	assert.Equal(t, []string{"text"}, visited)
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
