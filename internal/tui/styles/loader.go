package styles

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ThemeFile is a palette stored as YAML, as read by preview --theme-file
// and written by config theme export.
type ThemeFile struct {
	Name    string      `yaml:"name"`
	Author  string      `yaml:"author,omitempty"`
	Version string      `yaml:"version"` // only "1" is understood
	Colors  ThemeColors `yaml:"colors"`
}

// ThemeColors holds hex colors (#RGB or #RRGGBB). Warning and error may be
// left out and fall back to the default palette.
type ThemeColors struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Warning   string `yaml:"warning,omitempty"`
	Error     string `yaml:"error,omitempty"`
	Muted     string `yaml:"muted"`
	Surface   string `yaml:"surface"`
	Text      string `yaml:"text"`
	Border    string `yaml:"border"`
}

const themeVersion = "1"

var hexColor = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// role pairs a YAML color key with the palette field it fills.
type role struct {
	key      string
	value    string
	required bool
	fallback lipgloss.Color
	dst      *lipgloss.Color
}

// roles lists the colors in report order: required ones first.
func (c ThemeColors) roles(p, def *ColorPalette) []role {
	return []role{
		{"primary", c.Primary, true, "", &p.Primary},
		{"secondary", c.Secondary, true, "", &p.Secondary},
		{"muted", c.Muted, true, "", &p.Muted},
		{"surface", c.Surface, true, "", &p.Surface},
		{"text", c.Text, true, "", &p.Text},
		{"border", c.Border, true, "", &p.Border},
		{"warning", c.Warning, false, def.Warning, &p.Warning},
		{"error", c.Error, false, def.Error, &p.Error},
	}
}

// LoadThemeFile reads and validates a YAML theme.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}
	return ParseThemeFile(data)
}

// ParseThemeFile decodes and validates a YAML theme.
func ParseThemeFile(data []byte) (*ThemeFile, error) {
	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}
	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}
	return &theme, nil
}

// Validate reports the first problem with the theme, if any.
func (t *ThemeFile) Validate() error {
	switch {
	case t.Name == "":
		return errors.New("theme name is required")
	case t.Version == "":
		return errors.New("theme version is required")
	case t.Version != themeVersion:
		return fmt.Errorf("unsupported theme version: %s (supported: %s)", t.Version, themeVersion)
	}

	for _, r := range t.Colors.roles(&ColorPalette{}, DefaultPalette()) {
		if r.value == "" {
			if r.required {
				return fmt.Errorf("color '%s' is required", r.key)
			}
			continue
		}
		if !hexColor.MatchString(r.value) {
			return fmt.Errorf("color '%s' has invalid format: %s (expected #RGB or #RRGGBB)", r.key, r.value)
		}
	}
	return nil
}

// ToPalette converts the theme to a ColorPalette, filling left out
// optional colors from the default palette.
func (t *ThemeFile) ToPalette() *ColorPalette {
	p := &ColorPalette{}
	for _, r := range t.Colors.roles(p, DefaultPalette()) {
		*r.dst = lipgloss.Color(r.value)
		if r.value == "" {
			*r.dst = r.fallback
		}
	}
	return p
}

// ThemeFileFor describes a built-in palette as a theme file.
func ThemeFileFor(name ThemeName) *ThemeFile {
	p := GetPalette(name)
	return &ThemeFile{
		Name:    string(name),
		Version: themeVersion,
		Colors: ThemeColors{
			Primary:   string(p.Primary),
			Secondary: string(p.Secondary),
			Warning:   string(p.Warning),
			Error:     string(p.Error),
			Muted:     string(p.Muted),
			Surface:   string(p.Surface),
			Text:      string(p.Text),
			Border:    string(p.Border),
		},
	}
}
