package outline

import (
	"go.uber.org/zap"

	"github.com/stateful/outline/pkg/markdown"
	"github.com/stateful/outline/pkg/store"
	"github.com/stateful/outline/pkg/textlayout"
)

const (
	DefaultWidth       = 80
	DefaultChildInset  = 2
	DefaultPlaceholder = "..."
	DefaultUndoLimit   = 100
	DefaultPageLines   = 20
)

// Context holds what every node of a tree shares. It is created once by
// NewRoot and handed down to the nodes.
type Context struct {
	Renderer *markdown.Renderer
	Engine   textlayout.Engine
	Logger   *zap.Logger

	// Width is the width available to the top level nodes.
	Width float64
	// ChildInset is the horizontal distance between a node and its
	// children.
	ChildInset float64
	// Placeholder is shown by the first node while it is empty and not
	// being edited.
	Placeholder string
	UndoLimit   int
	PageLines   int
}

type Option func(*settings)

type settings struct {
	ctx   Context
	store *store.Store
}

func WithRenderer(r *markdown.Renderer) Option {
	return func(s *settings) {
		s.ctx.Renderer = r
	}
}

func WithLayoutEngine(e textlayout.Engine) Option {
	return func(s *settings) {
		s.ctx.Engine = e
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		s.ctx.Logger = logger
	}
}

func WithWidth(width float64) Option {
	return func(s *settings) {
		s.ctx.Width = width
	}
}

func WithChildInset(inset float64) Option {
	return func(s *settings) {
		s.ctx.ChildInset = inset
	}
}

func WithPlaceholder(placeholder string) Option {
	return func(s *settings) {
		s.ctx.Placeholder = placeholder
	}
}

// WithUndoLimit bounds the number of undo steps kept. Zero keeps them
// all.
func WithUndoLimit(limit int) Option {
	return func(s *settings) {
		s.ctx.UndoLimit = limit
	}
}

func WithPageLines(lines int) Option {
	return func(s *settings) {
		s.ctx.PageLines = lines
	}
}

// WithReferences makes the root list the bullets of other notes of st
// that mention the edited note.
func WithReferences(st *store.Store) Option {
	return func(s *settings) {
		s.store = st
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{
		ctx: Context{
			Width:       DefaultWidth,
			ChildInset:  DefaultChildInset,
			Placeholder: DefaultPlaceholder,
			UndoLimit:   DefaultUndoLimit,
			PageLines:   DefaultPageLines,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ctx.Logger == nil {
		s.ctx.Logger = zap.NewNop()
	}
	if s.ctx.Renderer == nil {
		s.ctx.Renderer = markdown.NewRenderer(markdown.WithLogger(s.ctx.Logger))
	}
	if s.ctx.Engine == nil {
		s.ctx.Engine = textlayout.NewCellEngine(1, 1)
	}
	return s
}
