package config

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrRootConfigNotFound = errors.New("root configuration file not found")

// Loader reads outline configuration files from the notes directory.
//
// The notes directory may hold one configuration file at its top level
// and more in its subdirectories. A subdirectory's file applies on top of
// the files of the directories above it, so that, for example,
// "work/daily/outline.yaml" can change the layout of daily notes only.
type Loader struct {
	// notesDir is the directory holding the notes and the top level
	// configuration file.
	notesDir fs.FS

	// fileName is the configuration file name looked up in every
	// directory, like "outline.yaml".
	fileName string

	logger *zap.Logger
}

type LoaderOption func(*Loader)

func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader returns a loader of files named configName, with the
// configType extension if not empty, found in notesDir.
func NewLoader(configName, configType string, notesDir fs.FS, opts ...LoaderOption) *Loader {
	if configName == "" {
		panic("config name is not set")
	}

	fileName := configName
	if configType != "" {
		fileName += "." + configType
	}

	l := &Loader{
		notesDir: notesDir,
		fileName: fileName,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.logger == nil {
		l.logger = zap.NewNop()
	}

	return l
}

// Load returns the defaults overridden by every configuration file from
// the notes directory down to dir.
func (l *Loader) Load(dir string) (*Config, error) {
	chain, err := l.FindConfigChain(dir)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("loading config", zap.Int("files", len(chain)))
	return ParseYAML(chain...)
}

// FindConfigChain returns the contents of the configuration files that
// apply to dir, a path relative to the notes directory. The top level
// file comes first and the one in dir itself last. When dir names a
// file, its directory is used.
func (l *Loader) FindConfigChain(dir string) ([][]byte, error) {
	names, err := l.configFilesFor(dir)
	if err != nil {
		return nil, err
	}

	var result [][]byte
	for _, name := range names {
		data, err := fs.ReadFile(l.notesDir, name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %q", name)
		}
		result = append(result, data)
	}
	return result, nil
}

// RootConfig returns the top level configuration file of the notes
// directory.
func (l *Loader) RootConfig() ([]byte, error) {
	data, err := fs.ReadFile(l.notesDir, l.fileName)
	if err != nil {
		return nil, ErrRootConfigNotFound
	}
	return data, nil
}

func (l *Loader) configFilesFor(dir string) ([]string, error) {
	dir, err := l.cleanDir(dir)
	if err != nil {
		return nil, err
	}

	// Directories from the notes directory down to dir.
	dirs := []string{"."}
	if dir != "." {
		cur := ""
		for _, fragment := range strings.Split(filepath.ToSlash(dir), "/") {
			cur = path.Join(cur, fragment)
			dirs = append(dirs, cur)
		}
	}

	var result []string
	for _, d := range dirs {
		name := path.Join(d, l.fileName)
		ok, err := l.exists(name)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, name)
		}
	}

	l.logger.Debug("found config files", zap.String("dir", dir), zap.Strings("files", result))

	return result, nil
}

func (l *Loader) exists(name string) (bool, error) {
	_, err := fs.Stat(l.notesDir, name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		l.logger.Debug("failed to stat config file", zap.String("name", name), zap.Error(err))
		return false, errors.WithStack(err)
	}
}

// cleanDir resolves dir to a clean slash-separated directory that exists
// in the notes directory.
func (l *Loader) cleanDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	dir = path.Clean(filepath.ToSlash(dir))

	info, err := fs.Stat(l.notesDir, dir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to get the path info for %q", dir)
	}

	if info.IsDir() {
		return dir, nil
	}
	return path.Dir(dir), nil
}
