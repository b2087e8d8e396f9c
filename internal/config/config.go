package config

import (
	"bytes"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is a uniform configuration structure for outline.
// It should unify all past, current, and future config versions.
type Config struct {
	Version string `yaml:"version" validate:"required,oneof=v1alpha1"`

	// Notes is the path of the file the notes are stored in.
	Notes string `yaml:"notes" validate:"required"`

	Editor ConfigEditor `yaml:"editor"`
	Layout ConfigLayout `yaml:"layout"`
	Log    ConfigLog    `yaml:"log"`

	// Keys maps key chords, like "ctrl+a", to command names.
	Keys map[string]string `yaml:"keys" validate:"dive,keys,required,endkeys,required"`
}

type ConfigEditor struct {
	// ContextualSyntax reveals the markdown syntax around the cursor.
	ContextualSyntax bool   `yaml:"contextual_syntax"`
	Placeholder      string `yaml:"placeholder"`
	// UndoLimit is the number of undo steps kept. Zero keeps all of them.
	UndoLimit int `yaml:"undo_limit" validate:"gte=0"`
	PageLines int `yaml:"page_lines" validate:"gte=1"`
	// References lists the bullets of other notes mentioning the edited
	// note.
	References bool `yaml:"references"`
}

type ConfigLayout struct {
	Width              float64 `yaml:"width" validate:"gt=0"`
	ChildInset         float64 `yaml:"child_inset" validate:"gte=0"`
	LineHeightMultiple float64 `yaml:"line_height_multiple" validate:"gt=0"`
	LineSpacing        float64 `yaml:"line_spacing" validate:"gte=0"`
	FontSize           float64 `yaml:"font_size" validate:"gt=0"`
	CellWidth          float64 `yaml:"cell_width" validate:"gt=0"`
	TabWidth           int     `yaml:"tab_width" validate:"gte=1"`
}

type ConfigLog struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Verbose bool   `yaml:"verbose"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseYAML parses the configuration on top of the defaults.
func ParseYAML(data ...[]byte) (*Config, error) {
	cfg := Default()
	if err := parseYAMLInto(cfg, data...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseYAML(data ...[]byte) (*Config, error) {
	cfg := &Config{}
	if err := parseYAMLInto(cfg, data...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseYAMLInto decodes every document in order onto cfg. Fields missing
// from a document keep the value set by the previous ones.
func parseYAMLInto(cfg *Config, data ...[]byte) error {
	for _, item := range data {
		version, err := parseVersionFromYAML(item)
		if err != nil {
			return err
		}
		switch version {
		case "v1alpha1":
			if err := parseYAMLv1alpha1(item, cfg); err != nil {
				return errors.Wrap(err, "failed to parse v1alpha1 config")
			}
		default:
			return errors.Errorf("unknown version: %s", version)
		}
	}

	if err := validateConfig(cfg); err != nil {
		return errors.Wrap(err, "failed to validate config")
	}
	return nil
}

type versionOnly struct {
	Version string `yaml:"version"`
}

func parseVersionFromYAML(data []byte) (string, error) {
	var result versionOnly

	if err := yaml.Unmarshal(data, &result); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal version")
	}

	return result.Version, nil
}

func parseYAMLv1alpha1(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return errors.WithStack(err)
	}
	return nil
}

func validateConfig(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.WithStack(err)
	}

	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		messages = append(messages, fieldPath(e.Namespace())+": failed on "+e.Tag())
	}
	return errors.New(strings.Join(messages, "; "))
}

// fieldPath turns "Config.Layout.Width" into "layout.width".
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = toSnake(p)
	}
	return strings.Join(parts, ".")
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
