package config

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewLoader(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		NewLoader("", "yaml", fstest.MapFS{})
	}, "config name is not set")
}

func TestLoader_RootConfig(t *testing.T) {
	t.Parallel()

	t.Run("without root config", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{}
		loader := NewLoader("outline", "yaml", fsys, WithLogger(zaptest.NewLogger(t)))
		result, err := loader.RootConfig()
		require.ErrorIs(t, err, ErrRootConfigNotFound)
		require.Nil(t, result)
	})

	t.Run("with root config", func(t *testing.T) {
		t.Parallel()

		data := []byte("version: v1alpha1\n")
		fsys := fstest.MapFS{
			"outline.yaml": {
				Data: data,
			},
		}
		loader := NewLoader("outline", "yaml", fsys, WithLogger(zaptest.NewLogger(t)))
		result, err := loader.RootConfig()
		require.NoError(t, err)
		require.Equal(t, data, result)
	})
}

func TestLoader_ChainConfigs(t *testing.T) {
	t.Parallel()

	t.Run("without root config", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{}
		loader := NewLoader("outline", "yaml", fsys, WithLogger(zaptest.NewLogger(t)))
		result, err := loader.FindConfigChain("")
		require.NoError(t, err)
		require.Nil(t, result)
	})

	fsys := fstest.MapFS{
		"outline.yaml": {
			Data: []byte("path:outline.yaml"),
		},
		"work/outline.yaml": {
			Data: []byte("path:work/outline.yaml"),
		},
		"work/daily/outline.yaml": {
			Data: []byte("path:work/daily/outline.yaml"),
		},
		"home/outline.yaml": {
			Data: []byte("path:home/outline.yaml"),
		},
		"home/notes.yaml": {
			Data: []byte("notes: []"),
		},
		"without/config": {
			Data: []byte("path:without/config"),
			Mode: fs.ModeDir,
		},
	}
	loader := NewLoader("outline", "yaml", fsys, WithLogger(zaptest.NewLogger(t)))

	t.Run("root config", func(t *testing.T) {
		result, err := loader.FindConfigChain("")
		require.NoError(t, err)
		require.Equal(
			t,
			[][]byte{[]byte("path:outline.yaml")},
			result,
		)
	})

	t.Run("nested config", func(t *testing.T) {
		result, err := loader.FindConfigChain("work")
		require.NoError(t, err)
		require.Equal(
			t,
			[][]byte{[]byte("path:outline.yaml"), []byte("path:work/outline.yaml")},
			result,
		)
	})

	t.Run("nested deep config", func(t *testing.T) {
		result, err := loader.FindConfigChain("work/daily")
		require.NoError(t, err)
		require.Equal(
			t,
			[][]byte{
				[]byte("path:outline.yaml"),
				[]byte("path:work/outline.yaml"),
				[]byte("path:work/daily/outline.yaml"),
			},
			result,
		)
	})

	t.Run("nested without config", func(t *testing.T) {
		result, err := loader.FindConfigChain("without/config")
		require.NoError(t, err)
		require.Equal(
			t,
			[][]byte{[]byte("path:outline.yaml")},
			result,
		)
	})

	t.Run("file in nested dir", func(t *testing.T) {
		result, err := loader.FindConfigChain("home/notes.yaml")
		require.NoError(t, err)
		require.Equal(
			t,
			[][]byte{[]byte("path:outline.yaml"), []byte("path:home/outline.yaml")},
			result,
		)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := loader.FindConfigChain("missing")
		require.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"outline.yaml": {
			Data: []byte("version: v1alpha1\nnotes: all.yaml\nlayout:\n  width: 60\n"),
		},
		"work/outline.yaml": {
			Data: []byte("version: v1alpha1\nlayout:\n  child_inset: 4\n"),
		},
	}
	loader := NewLoader("outline", "yaml", fsys, WithLogger(zaptest.NewLogger(t)))

	cfg, err := loader.Load("work")
	require.NoError(t, err)
	require.Equal(t, "all.yaml", cfg.Notes)
	require.Equal(t, 60.0, cfg.Layout.Width)
	require.Equal(t, 4.0, cfg.Layout.ChildInset)
	require.Equal(t, 1.3, cfg.Layout.LineHeightMultiple)
	require.True(t, cfg.Editor.ContextualSyntax)
}
