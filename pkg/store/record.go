package store

import (
	"golang.org/x/exp/slices"

	"github.com/stateful/outline/internal/ulid"
)

// Record is a persisted outline item. Implementations are expected to
// never fail in a way that needs to be reported to the user.
type Record interface {
	ID() string
	Content() string
	SetContent(string)
	Parent() Record
	Children() []Record
	// InsertChild makes child the index-th child of the record, detaching
	// it from its previous parent first.
	InsertChild(child Record, index int)
	RemoveChild(child Record)
	// Delete detaches the record and all its descendants from the store.
	Delete()
	// CreateAfter creates a sibling placed right after the record.
	CreateAfter(content string) Record
	// CreateChild creates the last child of the record.
	CreateChild(content string) Record
}

// Bullet is the Record of the in-memory store.
type Bullet struct {
	id       string
	content  string
	parent   *Bullet
	children []*Bullet
	note     *Note
}

var _ Record = (*Bullet)(nil)

func newBullet(note *Note, id, content string) *Bullet {
	if !ulid.ValidID(id) {
		id = ulid.GenerateID()
	}
	b := &Bullet{id: id, content: content, note: note}
	if note != nil {
		note.register(b)
	}
	return b
}

func (b *Bullet) ID() string {
	return b.id
}

func (b *Bullet) Content() string {
	return b.content
}

func (b *Bullet) SetContent(content string) {
	if b.content == content {
		return
	}
	b.content = content
	b.touch()
}

func (b *Bullet) Note() *Note {
	return b.note
}

func (b *Bullet) Parent() Record {
	if b.parent == nil {
		return nil
	}
	return b.parent
}

func (b *Bullet) Children() []Record {
	result := make([]Record, 0, len(b.children))
	for _, c := range b.children {
		result = append(result, c)
	}
	return result
}

func (b *Bullet) Bullets() []*Bullet {
	return b.children
}

func (b *Bullet) InsertChild(child Record, index int) {
	c, ok := child.(*Bullet)
	if !ok || c == b {
		b.logger().Debug("ignoring foreign record")
		return
	}
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	index = min(max(index, 0), len(b.children))
	b.children = slices.Insert(b.children, index, c)
	c.parent = b
	if c.note != b.note {
		c.moveTo(b.note)
	}
	b.touch()
}

func (b *Bullet) AddChild(child Record) {
	b.InsertChild(child, len(b.children))
}

func (b *Bullet) RemoveChild(child Record) {
	c, ok := child.(*Bullet)
	if !ok {
		return
	}
	b.removeChild(c)
	b.touch()
}

func (b *Bullet) removeChild(c *Bullet) {
	idx := slices.Index(b.children, c)
	if idx < 0 {
		return
	}
	b.children = slices.Delete(b.children, idx, idx+1)
	c.parent = nil
}

func (b *Bullet) Delete() {
	if b.parent != nil {
		b.parent.removeChild(b)
	}
	b.touch()
	b.walk(func(d *Bullet) {
		if d.note != nil {
			d.note.unregister(d)
		}
	})
}

func (b *Bullet) CreateAfter(content string) Record {
	sibling := newBullet(b.note, "", content)
	if b.parent == nil {
		return sibling
	}
	idx := slices.Index(b.parent.children, b)
	b.parent.InsertChild(sibling, idx+1)
	return sibling
}

func (b *Bullet) CreateChild(content string) Record {
	child := newBullet(b.note, "", content)
	b.InsertChild(child, len(b.children))
	return child
}

// Depth is 0 for the bullets of the note root.
func (b *Bullet) Depth() int {
	depth := -1
	for p := b.parent; p != nil; p = p.parent {
		depth++
	}
	return max(depth, 0)
}

func (b *Bullet) walk(fn func(*Bullet)) {
	fn(b)
	for _, c := range b.children {
		c.walk(fn)
	}
}

func (b *Bullet) moveTo(note *Note) {
	b.walk(func(d *Bullet) {
		if d.note != nil {
			d.note.unregister(d)
		}
		d.note = note
		if note != nil {
			note.register(d)
		}
	})
}

func (b *Bullet) touch() {
	if b.note != nil {
		b.note.touch()
	}
}
