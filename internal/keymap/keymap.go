// Package keymap resolves key chords, like "ctrl+shift+left", to editing
// commands.
package keymap

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/stateful/outline/pkg/outline"
)

var ErrInvalidChord = errors.New("invalid key chord")

// modifiers in the order they appear in a normalized chord.
var modifiers = []string{"ctrl", "alt", "shift", "cmd"}

var modifierAliases = map[string]string{
	"control": "ctrl",
	"option":  "alt",
	"opt":     "alt",
	"meta":    "cmd",
	"super":   "cmd",
}

var keyAliases = map[string]string{
	"return": "enter",
	"esc":    "escape",
	"del":    "delete",
	"bs":     "backspace",
	"pgup":   "pageup",
	"pgdown": "pagedown",
}

// NormalizeChord lowercases chord and sorts its modifiers, so that
// "Shift+Ctrl+Left" and "ctrl+shift+left" are the same chord.
func NormalizeChord(chord string) (string, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(chord)), "+")
	key := parts[len(parts)-1]
	if key == "" {
		// "ctrl++" binds the plus key.
		if len(parts) >= 2 && parts[len(parts)-2] == "" {
			key = "+"
			parts = parts[:len(parts)-1]
		} else {
			return "", errors.Wrapf(ErrInvalidChord, "%q", chord)
		}
	}
	if alias, ok := keyAliases[key]; ok {
		key = alias
	}

	seen := make(map[string]bool)
	for _, p := range parts[:len(parts)-1] {
		if alias, ok := modifierAliases[p]; ok {
			p = alias
		}
		if !isModifier(p) {
			return "", errors.Wrapf(ErrInvalidChord, "%q: unknown modifier %q", chord, p)
		}
		seen[p] = true
	}

	var b strings.Builder
	for _, m := range modifiers {
		if seen[m] {
			b.WriteString(m)
			b.WriteByte('+')
		}
	}
	b.WriteString(key)
	return b.String(), nil
}

func isModifier(s string) bool {
	for _, m := range modifiers {
		if m == s {
			return true
		}
	}
	return false
}

// Keymap binds chords to commands.
type Keymap struct {
	bindings map[string]outline.Command
}

func New() *Keymap {
	return &Keymap{bindings: make(map[string]outline.Command)}
}

// Default returns the built-in bindings. They follow the usual text
// field conventions plus the emacs style control keys.
func Default() *Keymap {
	km := New()
	for chord, key := range defaultBindings {
		if err := km.Bind(chord, key); err != nil {
			panic(err)
		}
	}
	return km
}

var defaultBindings = map[string]string{
	"left":            "moveLeft",
	"right":           "moveRight",
	"up":              "moveUp",
	"down":            "moveDown",
	"alt+left":        "moveWordLeft",
	"alt+right":       "moveWordRight",
	"home":            "moveToBeginningOfLine",
	"end":             "moveToEndOfLine",
	"cmd+left":        "moveToBeginningOfLine",
	"cmd+right":       "moveToEndOfLine",
	"cmd+up":          "moveToBeginningOfDocument",
	"cmd+down":        "moveToEndOfDocument",
	"pageup":          "pageUp",
	"pagedown":        "pageDown",
	"shift+left":      "moveLeftAndModifySelection",
	"shift+right":     "moveRightAndModifySelection",
	"shift+up":        "moveUpAndModifySelection",
	"shift+down":      "moveDownAndModifySelection",
	"alt+shift+left":  "moveWordLeftAndModifySelection",
	"alt+shift+right": "moveWordRightAndModifySelection",
	"shift+home":      "moveToBeginningOfLineAndModifySelection",
	"shift+end":       "moveToEndOfLineAndModifySelection",
	"ctrl+a":          "moveToBeginningOfParagraph",
	"ctrl+e":          "moveToEndOfParagraph",
	"ctrl+f":          "moveForward",
	"ctrl+b":          "moveBackward",
	"ctrl+p":          "moveUp",
	"ctrl+n":          "moveDown",
	"ctrl+l":          "centerSelectionInVisibleArea",
	"cmd+a":           "selectAll",
	"tab":             "increaseIndentation",
	"shift+tab":       "decreaseIndentation",
	"enter":           "pressEnter",
	"shift+enter":     "insertNewline",
	"backspace":       "deleteBackward",
	"delete":          "deleteForward",
	"ctrl+d":          "deleteForward",
	"ctrl+h":          "deleteBackward",
	"alt+backspace":   "deleteWordBackward",
	"alt+delete":      "deleteWordForward",
	"ctrl+k":          "deleteToEndOfLine",
	"cmd+backspace":   "deleteToBeginningOfLine",
	"ctrl+up":         "fold",
	"ctrl+down":       "unfold",
	"escape":          "cancelOperation",
	"cmd+z":           "undo",
	"cmd+shift+z":     "redo",
}

// Bind binds chord to the command identified by key.
func (k *Keymap) Bind(chord, key string) error {
	normalized, err := NormalizeChord(chord)
	if err != nil {
		return err
	}
	cmd, ok := outline.ParseCommand(key)
	if !ok {
		return errors.Errorf("unknown command %q bound to %q", key, chord)
	}
	k.bindings[normalized] = cmd
	return nil
}

// Merge binds every chord of bindings. The ones already bound are
// replaced.
func (k *Keymap) Merge(bindings map[string]string) error {
	chords := make([]string, 0, len(bindings))
	for chord := range bindings {
		chords = append(chords, chord)
	}
	sort.Strings(chords)
	for _, chord := range chords {
		if err := k.Bind(chord, bindings[chord]); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the command bound to chord.
func (k *Keymap) Lookup(chord string) (outline.Command, bool) {
	normalized, err := NormalizeChord(chord)
	if err != nil {
		return outline.CommandNone, false
	}
	cmd, ok := k.bindings[normalized]
	return cmd, ok
}

// Binding is a chord and the command bound to it.
type Binding struct {
	Chord   string
	Command outline.Command
}

// Bindings returns all bindings sorted by chord.
func (k *Keymap) Bindings() []Binding {
	result := make([]Binding, 0, len(k.bindings))
	for chord, cmd := range k.bindings {
		result = append(result, Binding{Chord: chord, Command: cmd})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Chord < result[j].Chord
	})
	return result
}
