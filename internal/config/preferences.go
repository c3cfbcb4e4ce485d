package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/vantage/internal/renderer/highlight"
)

// Defaults.
const (
	DefaultTabWidth   = 2
	DefaultMaxResults = 5
)

// Preferences are the user's settings.
type Preferences struct {
	TabWidth         int                        `toml:"tab_width"`
	SoftTabs         bool                       `toml:"soft_tabs"`
	LineWrapping     bool                       `toml:"line_wrapping"`
	Theme            string                     `toml:"theme"`
	LineLengthGuides []int                      `toml:"line_length_guides"`
	SearchSelect     SearchSelect               `toml:"search_select"`
	Open             Open                       `toml:"open"`
	Format           Format                     `toml:"format"`
	Types            map[string]TypePreferences `toml:"types"`
	// Keymap overrides bindings. Values are a command name or a list.
	Keymap  map[string]map[string]any `toml:"keymap"`
	Plugins []string                  `toml:"plugins"`

	// Path is the file the preferences were loaded from.
	Path string `toml:"-"`
}

// SearchSelect configures the pickers.
type SearchSelect struct {
	MaxResults int `toml:"max_results"`
}

// Open configures open mode.
type Open struct {
	// Exclusions are glob patterns matched against workspace-relative
	// paths and their base names.
	Exclusions []string `toml:"exclusions"`
}

// Format maps a syntax name to the command that formats it. The command
// reads the buffer on stdin and writes the result to stdout.
type Format struct {
	Command map[string][]string `toml:"command"`
}

// TypePreferences override settings for files with one extension.
type TypePreferences struct {
	TabWidth *int  `toml:"tab_width"`
	SoftTabs *bool `toml:"soft_tabs"`
	// Syntax names the syntax definition for the extension.
	Syntax string `toml:"syntax"`
}

// Default returns the built-in preferences.
func Default() *Preferences {
	return &Preferences{
		TabWidth:     DefaultTabWidth,
		SoftTabs:     true,
		LineWrapping: true,
		Theme:        highlight.DefaultThemeName,
		SearchSelect: SearchSelect{MaxResults: DefaultMaxResults},
		Open:         Open{Exclusions: []string{".git", "node_modules", "vendor"}},
	}
}

// DefaultPath returns the preference file location.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return "", fmt.Errorf("locating config directory: %w", err)
		}
	}
	return filepath.Join(dir, "vantage", "config.toml"), nil
}

// Load reads preferences from path and applies environment overrides. A
// missing file yields the defaults. On a parse error the defaults are
// returned together with the error.
func Load(path string) (*Preferences, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		p := Default()
		p.Path = path
		return p, p.ApplyEnv(os.LookupEnv)
	}
	if err != nil {
		return Default(), fmt.Errorf("reading preferences %s: %w", path, err)
	}

	p, err := Parse(path, data)
	if err != nil {
		return Default(), err
	}
	return p, p.ApplyEnv(os.LookupEnv)
}

// Parse decodes preferences from TOML.
func Parse(source string, data []byte) (*Preferences, error) {
	p := Default()
	if err := toml.Unmarshal(data, p); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, _ = de.Position()
		}
		return nil, pe
	}
	p.Path = source
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Preferences) validate() error {
	if p.TabWidth < 1 {
		return fmt.Errorf("%w: tab_width must be positive, got %d", ErrInvalidValue, p.TabWidth)
	}
	if p.SearchSelect.MaxResults < 1 {
		return fmt.Errorf("%w: search_select.max_results must be positive, got %d", ErrInvalidValue, p.SearchSelect.MaxResults)
	}
	if _, err := p.KeymapOverrides(); err != nil {
		return err
	}
	return nil
}

// ApplyEnv applies VANTAGE_TAB_WIDTH, VANTAGE_THEME and
// VANTAGE_LINE_WRAPPING.
func (p *Preferences) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	if v, ok := lookup("VANTAGE_TAB_WIDTH"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs = append(errs, fmt.Errorf("%w: VANTAGE_TAB_WIDTH=%q", ErrInvalidValue, v))
		} else {
			p.TabWidth = n
		}
	}
	if v, ok := lookup("VANTAGE_THEME"); ok && v != "" {
		p.Theme = v
	}
	if v, ok := lookup("VANTAGE_LINE_WRAPPING"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: VANTAGE_LINE_WRAPPING=%q", ErrInvalidValue, v))
		} else {
			p.LineWrapping = b
		}
	}
	return errors.Join(errs...)
}

func (p *Preferences) typeFor(path string) (TypePreferences, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return TypePreferences{}, false
	}
	t, ok := p.Types[ext]
	return t, ok
}

// TabWidthFor returns the tab width for a file.
func (p *Preferences) TabWidthFor(path string) int {
	if t, ok := p.typeFor(path); ok && t.TabWidth != nil && *t.TabWidth > 0 {
		return *t.TabWidth
	}
	return p.TabWidth
}

// SoftTabsFor reports whether tabs are inserted as spaces in a file.
func (p *Preferences) SoftTabsFor(path string) bool {
	if t, ok := p.typeFor(path); ok && t.SoftTabs != nil {
		return *t.SoftTabs
	}
	return p.SoftTabs
}

// TabContent returns the text the tab key inserts in a file.
func (p *Preferences) TabContent(path string) string {
	if p.SoftTabsFor(path) {
		return strings.Repeat(" ", p.TabWidthFor(path))
	}
	return "\t"
}

// SyntaxFor returns the configured syntax name for a file, if any.
func (p *Preferences) SyntaxFor(path string) (string, bool) {
	t, ok := p.typeFor(path)
	if !ok || t.Syntax == "" {
		return "", false
	}
	return t.Syntax, true
}

// FormatCommand returns the formatter for a syntax.
func (p *Preferences) FormatCommand(syntax string) ([]string, bool) {
	for name, argv := range p.Format.Command {
		if strings.EqualFold(name, syntax) && len(argv) > 0 {
			return argv, true
		}
	}
	return nil, false
}

// Excluded reports whether a workspace-relative path is hidden from open
// mode.
func (p *Preferences) Excluded(rel string) bool {
	base := filepath.Base(rel)
	for _, pattern := range p.Open.Exclusions {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// KeymapOverrides returns the keymap section with every value as a list
// of command names.
func (p *Preferences) KeymapOverrides() (map[string]map[string][]string, error) {
	out := make(map[string]map[string][]string, len(p.Keymap))
	for mode, bindings := range p.Keymap {
		out[mode] = make(map[string][]string, len(bindings))
		for k, v := range bindings {
			commands, err := commandNames(v)
			if err != nil {
				return nil, fmt.Errorf("%w: keymap.%s.%s: %w", ErrInvalidValue, mode, k, err)
			}
			out[mode][k] = commands
		}
	}
	return out, nil
}

func commandNames(v any) ([]string, error) {
	switch v := v.(type) {
	case string:
		return []string{v}, nil
	case []any:
		names := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected a command name, got %T", item)
			}
			names = append(names, s)
		}
		return names, nil
	default:
		return nil, fmt.Errorf("expected a command name or a list, got %T", v)
	}
}

// ExpandPath resolves a leading "~/" against the home directory.
func ExpandPath(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}
