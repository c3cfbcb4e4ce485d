// Package keymap maps key presses in each mode to the commands they run.
//
// The default bindings are embedded YAML; users override individual keys
// from their preference file. A binding is an ordered list of command
// names. The key "_" binds every printable character that has no binding
// of its own.
package keymap

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/vantage/internal/input/key"
)

// Wildcard binds every printable character without its own binding.
const Wildcard = "_"

//go:embed default_keymap.yml
var defaultData []byte

// ErrInvalidBinding is returned for bindings that cannot be parsed.
var ErrInvalidBinding = errors.New("invalid key binding")

// Binding is one key of one mode.
type Binding struct {
	Mode     string
	Key      string
	Commands []string
}

// Keymap holds the bindings of every mode.
type Keymap struct {
	modes map[string]map[string][]string
}

// DefaultData returns the embedded default keymap.
func DefaultData() string {
	return string(defaultData)
}

// Default returns the embedded default keymap.
func Default() (*Keymap, error) {
	return Parse(defaultData)
}

// commandList decodes either a single command name or a list of them.
type commandList []string

func (c *commandList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*c = commandList{value.Value}
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return err
		}
		*c = names
		return nil
	default:
		return fmt.Errorf("line %d: expected a command name or a list of them", value.Line)
	}
}

// Parse reads a keymap from YAML.
func Parse(data []byte) (*Keymap, error) {
	var raw map[string]map[string]commandList
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing keymap: %w", err)
	}

	k := &Keymap{modes: make(map[string]map[string][]string, len(raw))}
	for mode, bindings := range raw {
		for spec, commands := range bindings {
			if err := k.Bind(mode, spec, commands...); err != nil {
				return nil, err
			}
		}
	}
	return k, nil
}

// Bind replaces the commands bound to spec in mode.
func (k *Keymap) Bind(mode, spec string, commands ...string) error {
	name, err := normalize(spec)
	if err != nil {
		return fmt.Errorf("%w: %s.%s: %w", ErrInvalidBinding, mode, spec, err)
	}
	if len(commands) == 0 {
		return fmt.Errorf("%w: %s.%s: no commands", ErrInvalidBinding, mode, spec)
	}
	if k.modes[mode] == nil {
		k.modes[mode] = make(map[string][]string)
	}
	k.modes[mode][name] = slices.Clone(commands)
	return nil
}

// Merge applies overrides, keyed by mode then key.
func (k *Keymap) Merge(overrides map[string]map[string][]string) error {
	var errs []error
	for mode, bindings := range overrides {
		for spec, commands := range bindings {
			errs = append(errs, k.Bind(mode, spec, commands...))
		}
	}
	return errors.Join(errs...)
}

func normalize(spec string) (string, error) {
	if strings.TrimSpace(spec) == Wildcard {
		return Wildcard, nil
	}
	e, err := key.Parse(spec)
	if err != nil {
		return "", err
	}
	return e.String(), nil
}

// CommandsFor returns the commands bound to e in mode, falling back to the
// mode's wildcard for printable characters.
func (k *Keymap) CommandsFor(mode string, e key.Event) ([]string, bool) {
	bindings, ok := k.modes[mode]
	if !ok {
		return nil, false
	}
	if commands, ok := bindings[e.String()]; ok {
		return commands, true
	}
	if e.IsChar() {
		commands, ok := bindings[Wildcard]
		return commands, ok
	}
	return nil, false
}

// Modes returns the names of every mode with bindings, sorted.
func (k *Keymap) Modes() []string {
	modes := make([]string, 0, len(k.modes))
	for m := range k.modes {
		modes = append(modes, m)
	}
	slices.Sort(modes)
	return modes
}

// Bindings returns the bindings of mode sorted by key.
func (k *Keymap) Bindings(mode string) []Binding {
	out := make([]Binding, 0, len(k.modes[mode]))
	for name, commands := range k.modes[mode] {
		out = append(out, Binding{Mode: mode, Key: name, Commands: commands})
	}
	slices.SortFunc(out, func(a, b Binding) int { return strings.Compare(a.Key, b.Key) })
	return out
}

// CommandNames returns every command name the keymap refers to, sorted and
// without duplicates.
func (k *Keymap) CommandNames() []string {
	var names []string
	for _, bindings := range k.modes {
		for _, commands := range bindings {
			names = append(names, commands...)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}
