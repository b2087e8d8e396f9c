package config

var defaults Config

func init() {
	yaml := []byte(`version: v1alpha1

# Path of the notes file, relative to the config root.
notes: "notes.yaml"

editor:
  # Show the markdown syntax of the element under the cursor.
  contextual_syntax: true
  # Shown by the first bullet while it is empty.
  placeholder: "..."
  undo_limit: 100
  page_lines: 20
  references: true

layout:
  width: 80
  child_inset: 2
  line_height_multiple: 1.3
  line_spacing: 0
  font_size: 1
  cell_width: 1
  tab_width: 4

log:
  enabled: false
  path: "/tmp/outline.log"
  verbose: false

# Extra key bindings. The built-in ones are listed by "outline keys".
# keys:
#   "ctrl+shift+k": "deleteToEndOfLine"
`)

	cfg, err := parseYAML(yaml)
	if err != nil {
		panic(err)
	}

	defaults = *cfg
}

// Default returns a copy of the default configuration.
func Default() *Config {
	cfg := defaults
	if defaults.Keys != nil {
		cfg.Keys = make(map[string]string, len(defaults.Keys))
		for k, v := range defaults.Keys {
			cfg.Keys[k] = v
		}
	}
	return &cfg
}
