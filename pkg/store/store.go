package store

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const fileVersion = "v1alpha1"

var (
	ErrNoteExists   = errors.New("note already exists")
	ErrNoteNotFound = errors.New("note not found")
)

// Store keeps notes in memory and persists them as a YAML document.
type Store struct {
	notes  map[string]*Note
	logger *zap.Logger
	dirty  bool
	now    func() time.Time
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock replaces the clock used to stamp note updates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(opts ...Option) *Store {
	s := &Store{notes: make(map[string]*Note)}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Dirty reports whether anything changed since the last load or save.
func (s *Store) Dirty() bool {
	return s.dirty
}

func (s *Store) CreateNote(title string) (*Note, error) {
	if _, ok := s.NoteByTitle(title); ok {
		return nil, errors.Wrapf(ErrNoteExists, "title %q", title)
	}
	n := newNote(s, "", title)
	s.notes[n.ID] = n
	s.dirty = true
	s.logger.Debug("created note", zap.String("id", n.ID), zap.String("title", title))
	return n, nil
}

// FetchOrCreateNote returns the note titled title, creating it when
// there is none.
func (s *Store) FetchOrCreateNote(title string) *Note {
	if n, ok := s.NoteByTitle(title); ok {
		return n
	}
	n, _ := s.CreateNote(title)
	return n
}

func (s *Store) Note(id string) (*Note, bool) {
	n, ok := s.notes[id]
	return n, ok
}

func (s *Store) NoteByTitle(title string) (*Note, bool) {
	for _, n := range s.notes {
		if n.Title == title {
			return n, true
		}
	}
	return nil, false
}

// Notes returns all notes sorted by title.
func (s *Store) Notes() []*Note {
	result := make([]*Note, 0, len(s.notes))
	for _, n := range s.notes {
		result = append(result, n)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Title < result[j].Title
	})
	return result
}

func (s *Store) DeleteNote(id string) error {
	n, ok := s.notes[id]
	if !ok {
		return errors.Wrapf(ErrNoteNotFound, "id %q", id)
	}
	delete(s.notes, id)
	n.store = nil
	s.dirty = true
	return nil
}

type fileDocument struct {
	Version string     `yaml:"version"`
	Notes   []fileNote `yaml:"notes"`
}

type fileNote struct {
	ID      string       `yaml:"id"`
	Title   string       `yaml:"title"`
	Updated time.Time    `yaml:"updated,omitempty"`
	Bullets []fileBullet `yaml:"bullets,omitempty"`
}

type fileBullet struct {
	ID       string       `yaml:"id"`
	Content  string       `yaml:"content"`
	Children []fileBullet `yaml:"children,omitempty"`
}

// Load replaces the content of the store with the notes read from r.
// Notes that cannot be loaded are skipped and reported in the returned
// error.
func (s *Store) Load(r io.Reader) error {
	var doc fileDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "failed to decode notes")
	}
	if doc.Version != "" && doc.Version != fileVersion {
		return errors.Errorf("unknown version: %s", doc.Version)
	}

	s.notes = make(map[string]*Note)

	var result error
	for _, fn := range doc.Notes {
		if _, ok := s.NoteByTitle(fn.Title); ok {
			result = multierr.Append(result, errors.Wrapf(ErrNoteExists, "title %q", fn.Title))
			continue
		}
		n := newNote(s, fn.ID, fn.Title)
		if _, ok := s.notes[n.ID]; ok {
			result = multierr.Append(result, errors.Errorf("duplicate note id %q", n.ID))
			continue
		}
		for _, fb := range fn.Bullets {
			n.root.InsertChild(bulletFromFile(n, fb), len(n.root.children))
		}
		if !fn.Updated.IsZero() {
			n.Updated = fn.Updated
		}
		s.notes[n.ID] = n
	}

	s.dirty = false
	s.logger.Debug("loaded notes", zap.Int("count", len(s.notes)))
	return result
}

func bulletFromFile(n *Note, fb fileBullet) *Bullet {
	b := newBullet(n, fb.ID, fb.Content)
	for _, fc := range fb.Children {
		b.InsertChild(bulletFromFile(n, fc), len(b.children))
	}
	return b
}

func (s *Store) Save(w io.Writer) error {
	doc := fileDocument{Version: fileVersion}
	for _, n := range s.Notes() {
		fn := fileNote{ID: n.ID, Title: n.Title, Updated: n.Updated}
		for _, b := range n.root.children {
			fn.Bullets = append(fn.Bullets, bulletToFile(b))
		}
		doc.Notes = append(doc.Notes, fn)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return errors.WithStack(err)
	}
	if err := encoder.Close(); err != nil {
		return errors.WithStack(err)
	}
	s.dirty = false
	return nil
}

func bulletToFile(b *Bullet) fileBullet {
	fb := fileBullet{ID: b.id, Content: b.content}
	for _, c := range b.children {
		fb.Children = append(fb.Children, bulletToFile(c))
	}
	return fb
}

// LoadFile loads the store from path. A missing file leaves the store
// empty.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("notes file does not exist", zap.String("path", path))
		s.notes = make(map[string]*Note)
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to read %q", path)
	}
	return s.Load(bytes.NewReader(data))
}

// SaveFile writes the store to a temporary file and renames it to path.
func (s *Store) SaveFile(path string) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".notes-*.yaml")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary file")
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err = s.Save(f); err != nil {
		err = multierr.Append(err, f.Close())
		return err
	}
	if err = f.Close(); err != nil {
		return errors.WithStack(err)
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return errors.Wrapf(err, "failed to replace %q", path)
	}
	s.logger.Debug("saved notes", zap.String("path", path))
	return nil
}
