// autoconfig provides a way to create various instances from the
// [config.Config] like [store.Store], [markdown.Renderer], [zap.Logger].
//
// For example, to open the notes, you can write:
//
//	autoconfig.NewBuilder(dir).Invoke(func(st *store.Store) error {
//	    ...
//	})
//
// Treat it as a dependency injection mechanism.
package autoconfig

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/stateful/outline/internal/config"
	"github.com/stateful/outline/internal/keymap"
	"github.com/stateful/outline/internal/log"
	"github.com/stateful/outline/pkg/markdown"
	"github.com/stateful/outline/pkg/outline"
	"github.com/stateful/outline/pkg/store"
	"github.com/stateful/outline/pkg/styled"
	"github.com/stateful/outline/pkg/textlayout"
)

const (
	configName = "outline"
	configType = "yaml"
)

// Dir is the directory the configuration is looked up in. Relative
// paths of the configuration are resolved against it.
type Dir string

// NotesFile is the path of the file holding the notes.
type NotesFile string

type Builder struct {
	container *dig.Container
}

func NewBuilder(dir string) *Builder {
	c := dig.New()

	mustProvide(c.Provide(func() Dir { return Dir(dir) }))
	mustProvide(c.Provide(getLoader))
	mustProvide(c.Provide(getConfig))
	mustProvide(c.Provide(getLogger))
	mustProvide(c.Provide(getNotesFile))
	mustProvide(c.Provide(getStore))
	mustProvide(c.Provide(getKeymap))
	mustProvide(c.Provide(getRenderer))
	mustProvide(c.Provide(getLayoutEngine))
	mustProvide(c.Provide(getRootOptions))

	return &Builder{container: c}
}

func mustProvide(err error) {
	if err != nil {
		panic("failed to provide: " + err.Error())
	}
}

// Decorate replaces or modifies a provided value, for example
// func(*config.Config) *config.Config.
func (b *Builder) Decorate(decorator interface{}, opts ...dig.DecorateOption) error {
	return dig.RootCause(b.container.Decorate(decorator, opts...))
}

// Invoke is used to invoke the function with the given dependencies.
// The package will automatically figure out how to instantiate them
// using the available configuration.
func (b *Builder) Invoke(function interface{}, opts ...dig.InvokeOption) error {
	return dig.RootCause(b.container.Invoke(function, opts...))
}

func getLoader(dir Dir) *config.Loader {
	return config.NewLoader(configName, configType, os.DirFS(string(dir)))
}

func getConfig(loader *config.Loader) (*config.Config, error) {
	return loader.Load(".")
}

func getLogger(c *config.Config) (*zap.Logger, error) {
	if c == nil {
		return zap.NewNop(), nil
	}
	return log.New(c.Log.Enabled, c.Log.Verbose, c.Log.Path)
}

func getNotesFile(dir Dir, c *config.Config) NotesFile {
	if filepath.IsAbs(c.Notes) {
		return NotesFile(c.Notes)
	}
	return NotesFile(filepath.Join(string(dir), c.Notes))
}

func getStore(path NotesFile, logger *zap.Logger) (*store.Store, error) {
	st := store.New(store.WithLogger(logger))
	if err := st.LoadFile(string(path)); err != nil {
		return nil, errors.Wrap(err, "failed to load notes")
	}
	return st, nil
}

func getKeymap(c *config.Config) (*keymap.Keymap, error) {
	km := keymap.Default()
	if err := km.Merge(c.Keys); err != nil {
		return nil, errors.Wrap(err, "failed to bind keys")
	}
	return km, nil
}

func getRenderer(c *config.Config, logger *zap.Logger) *markdown.Renderer {
	return markdown.NewRenderer(
		markdown.WithLogger(logger),
		markdown.WithContextualSyntax(c.Editor.ContextualSyntax),
		markdown.WithParagraphStyle(styled.ParagraphStyle{
			WordWrap:             true,
			LineHeightMultiple:   c.Layout.LineHeightMultiple,
			LineSpacing:          c.Layout.LineSpacing,
			TabStopWidthInSpaces: c.Layout.TabWidth,
		}),
	)
}

func getLayoutEngine(c *config.Config) textlayout.Engine {
	e := textlayout.NewCellEngine(c.Layout.CellWidth, c.Layout.FontSize)
	e.TabWidth = c.Layout.TabWidth
	return e
}

func getRootOptions(
	c *config.Config,
	logger *zap.Logger,
	renderer *markdown.Renderer,
	engine textlayout.Engine,
	st *store.Store,
) []outline.Option {
	opts := []outline.Option{
		outline.WithLogger(logger),
		outline.WithRenderer(renderer),
		outline.WithLayoutEngine(engine),
		outline.WithWidth(c.Layout.Width),
		outline.WithChildInset(c.Layout.ChildInset),
		outline.WithPlaceholder(c.Editor.Placeholder),
		outline.WithUndoLimit(c.Editor.UndoLimit),
		outline.WithPageLines(c.Editor.PageLines),
	}
	if c.Editor.References {
		opts = append(opts, outline.WithReferences(st))
	}
	return opts
}
