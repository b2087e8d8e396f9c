package store

import (
	"time"

	"go.uber.org/zap"

	"github.com/stateful/outline/internal/ulid"
)

// Note is a titled outline. Its bullets hang off a root bullet that is
// never shown.
type Note struct {
	ID      string
	Title   string
	Updated time.Time

	root    *Bullet
	store   *Store
	bullets map[string]*Bullet
}

func newNote(store *Store, id, title string) *Note {
	if !ulid.ValidID(id) {
		id = ulid.GenerateID()
	}
	n := &Note{
		ID:      id,
		Title:   title,
		store:   store,
		bullets: make(map[string]*Bullet),
	}
	n.root = newBullet(n, "", "")
	n.Updated = n.now()
	return n
}

// Store returns the store holding the note, or nil once it was deleted.
func (n *Note) Store() *Store {
	return n.store
}

// Root returns the record the top level bullets are children of.
func (n *Note) Root() *Bullet {
	return n.root
}

func (n *Note) Bullets() []*Bullet {
	return n.root.children
}

// Bullet returns the bullet with id if it belongs to the note.
func (n *Note) Bullet(id string) (*Bullet, bool) {
	b, ok := n.bullets[id]
	return b, ok
}

// Len returns the number of bullets, the root excluded.
func (n *Note) Len() int {
	return len(n.bullets) - 1
}

// IsEmpty reports whether the note has no bullet with content.
func (n *Note) IsEmpty() bool {
	empty := true
	for _, b := range n.bullets {
		if b != n.root && b.content != "" {
			empty = false
			break
		}
	}
	return empty
}

// Walk calls fn for every bullet in document order, the root excluded.
func (n *Note) Walk(fn func(*Bullet)) {
	for _, c := range n.root.children {
		c.walk(fn)
	}
}

func (n *Note) register(b *Bullet) {
	n.bullets[b.id] = b
}

func (n *Note) unregister(b *Bullet) {
	delete(n.bullets, b.id)
}

func (n *Note) touch() {
	n.Updated = n.now()
	if n.store != nil {
		n.store.dirty = true
	}
}

func (n *Note) now() time.Time {
	if n.store != nil && n.store.now != nil {
		return n.store.now()
	}
	return time.Now()
}

func (b *Bullet) logger() *zap.Logger {
	if b.note != nil && b.note.store != nil {
		return b.note.store.logger
	}
	return zap.NewNop()
}
