package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a named color theme.
type ThemeName string

// Available theme names.
const (
	ThemeDefault        ThemeName = "default"
	ThemeDracula        ThemeName = "dracula"
	ThemeNord           ThemeName = "nord"
	ThemeSolarizedLight ThemeName = "solarized-light"
)

// ColorPalette defines the color scheme used to draw element trees.
type ColorPalette struct {
	Primary   lipgloss.Color // titles and the focused element
	Secondary lipgloss.Color // derived code and checked consent
	Warning   lipgloss.Color // status line notices
	Error     lipgloss.Color
	Muted     lipgloss.Color // hints and disabled elements
	Surface   lipgloss.Color
	Text      lipgloss.Color
	Border    lipgloss.Color // inputs and frames
}

// swatch lists a palette's hex values in ColorPalette field order.
type swatch [8]string

func (s swatch) palette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color(s[0]),
		Secondary: lipgloss.Color(s[1]),
		Warning:   lipgloss.Color(s[2]),
		Error:     lipgloss.Color(s[3]),
		Muted:     lipgloss.Color(s[4]),
		Surface:   lipgloss.Color(s[5]),
		Text:      lipgloss.Color(s[6]),
		Border:    lipgloss.Color(s[7]),
	}
}

// builtins holds the bundled themes in the order they are listed.
var builtins = []struct {
	name   ThemeName
	colors swatch
}{
	{ThemeDefault, swatch{"#A78BFA", "#10B981", "#F59E0B", "#F87171", "#9CA3AF", "#1F2937", "#F9FAFB", "#6B7280"}},
	{ThemeDracula, swatch{"#BD93F9", "#50FA7B", "#F1FA8C", "#FF5555", "#6272A4", "#282A36", "#F8F8F2", "#44475A"}},
	{ThemeNord, swatch{"#88C0D0", "#A3BE8C", "#EBCB8B", "#BF616A", "#4C566A", "#2E3440", "#ECEFF4", "#3B4252"}},
	{ThemeSolarizedLight, swatch{"#268BD2", "#859900", "#B58900", "#DC322F", "#93A1A1", "#FDF6E3", "#657B83", "#EEE8D5"}},
}

// ValidThemes returns all built-in theme names.
func ValidThemes() []string {
	names := make([]string, 0, len(builtins))
	for _, b := range builtins {
		names = append(names, string(b.name))
	}
	return names
}

// IsValidTheme checks if a theme name is a built-in theme.
func IsValidTheme(name string) bool {
	return slices.Contains(ValidThemes(), name)
}

// GetPalette returns a fresh copy of the named palette. Unknown names get
// the default palette.
func GetPalette(name ThemeName) *ColorPalette {
	for _, b := range builtins {
		if b.name == name {
			return b.colors.palette()
		}
	}
	return builtins[0].colors.palette()
}

// DefaultPalette returns the purple/green dark palette.
func DefaultPalette() *ColorPalette { return GetPalette(ThemeDefault) }

// DraculaPalette returns the Dracula palette.
func DraculaPalette() *ColorPalette { return GetPalette(ThemeDracula) }

// NordPalette returns the Nord palette.
func NordPalette() *ColorPalette { return GetPalette(ThemeNord) }

// SolarizedLightPalette returns the Solarized Light palette.
func SolarizedLightPalette() *ColorPalette { return GetPalette(ThemeSolarizedLight) }
