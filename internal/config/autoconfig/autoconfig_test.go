package autoconfig

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/stateful/outline/internal/config"
	"github.com/stateful/outline/internal/keymap"
	"github.com/stateful/outline/pkg/markdown"
	"github.com/stateful/outline/pkg/outline"
	"github.com/stateful/outline/pkg/store"
	"github.com/stateful/outline/pkg/textlayout"
)

func TestInvoke_Config(t *testing.T) {
	builder := NewBuilder(t.TempDir())
	configRootFS := fstest.MapFS{
		"outline.yaml": {
			Data: []byte("version: v1alpha1\nnotes: work.yaml\nlayout:\n  width: 42\n"),
		},
	}
	err := builder.Decorate(func(*config.Loader) *config.Loader {
		return config.NewLoader("outline", "yaml", configRootFS, config.WithLogger(zaptest.NewLogger(t)))
	})
	require.NoError(t, err)

	err = builder.Invoke(func(cfg *config.Config, path NotesFile) error {
		require.Equal(t, 42.0, cfg.Layout.Width)
		require.Equal(t, "work.yaml", filepath.Base(string(path)))
		return nil
	})
	require.NoError(t, err)
}

func TestInvoke_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "outline.yaml"), []byte("version: v1alpha1\nlayout:\n  width: 0\n"), 0o644)
	require.NoError(t, err)

	err = NewBuilder(dir).Invoke(func(*config.Config) error { return nil })
	require.ErrorContains(t, err, "layout.width: failed on gt")
}

func TestInvoke_Store(t *testing.T) {
	dir := t.TempDir()

	err := NewBuilder(dir).Invoke(func(st *store.Store, path NotesFile) error {
		require.Empty(t, st.Notes())
		note, err := st.CreateNote("Inbox")
		require.NoError(t, err)
		note.Root().CreateChild("first")
		return st.SaveFile(string(path))
	})
	require.NoError(t, err)

	err = NewBuilder(dir).Invoke(func(st *store.Store) error {
		note, ok := st.NoteByTitle("Inbox")
		require.True(t, ok)
		require.Equal(t, "first", note.Bullets()[0].Content())
		return nil
	})
	require.NoError(t, err)
}

func TestInvoke_Editor(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(
		filepath.Join(dir, "outline.yaml"),
		[]byte("version: v1alpha1\nlayout:\n  width: 5\nkeys:\n  \"ctrl+q\": \"selectAll\"\n"),
		0o644,
	)
	require.NoError(t, err)

	err = NewBuilder(dir).Invoke(func(
		st *store.Store,
		km *keymap.Keymap,
		renderer *markdown.Renderer,
		engine textlayout.Engine,
		opts []outline.Option,
	) error {
		require.NotNil(t, renderer)
		require.NotNil(t, engine)

		cmd, ok := km.Lookup("ctrl+q")
		require.True(t, ok)
		require.Equal(t, outline.CommandSelectAll, cmd)

		note := st.FetchOrCreateNote("Daily")
		note.Root().CreateChild("abcd efgh")
		root := outline.NewRoot(note, opts...)
		require.Equal(t, 5.0, root.Context().Width)
		return nil
	})
	require.NoError(t, err)
}

func TestDecorate_Config(t *testing.T) {
	builder := NewBuilder(t.TempDir())
	err := builder.Decorate(func(cfg *config.Config) *config.Config {
		cfg.Editor.References = false
		return cfg
	})
	require.NoError(t, err)

	err = builder.Invoke(func(opts []outline.Option) error {
		require.Len(t, opts, 8)
		return nil
	})
	require.NoError(t, err)
}
