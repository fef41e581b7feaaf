package styles

import "github.com/charmbracelet/lipgloss"

// ThemedStyles contains the lipgloss styles used to draw an element tree,
// built from a color palette.
type ThemedStyles struct {
	Palette *ColorPalette

	// Element kinds
	Title    lipgloss.Style // large text
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Code     lipgloss.Style // large accent text
	Image    lipgloss.Style
	Option   lipgloss.Style
	Selected lipgloss.Style

	// Focusable elements
	Input          lipgloss.Style
	InputFocused   lipgloss.Style
	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonDisabled lipgloss.Style
	Plain          lipgloss.Style // buttons drawn without the default look
	PlainFocused   lipgloss.Style

	// Containers
	Panel lipgloss.Style // container with a background or border
	Frame lipgloss.Style // outer frame around the whole tree

	// Chrome
	Header     lipgloss.Style
	StatusLine lipgloss.Style
	HelpKey    lipgloss.Style
	HelpDesc   lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
}

// NewThemedStyles builds styles from p. A nil palette uses the default.
func NewThemedStyles(p *ColorPalette) *ThemedStyles {
	if p == nil {
		p = DefaultPalette()
	}
	s := &ThemedStyles{Palette: p}

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	s.Text = lipgloss.NewStyle().Foreground(p.Text)
	s.Muted = lipgloss.NewStyle().Foreground(p.Muted)
	s.Code = lipgloss.NewStyle().Bold(true).Foreground(p.Secondary)
	s.Image = lipgloss.NewStyle().Foreground(p.Muted).Italic(true)
	s.Option = lipgloss.NewStyle().Foreground(p.Text).PaddingLeft(2)
	s.Selected = lipgloss.NewStyle().Foreground(p.Primary).PaddingLeft(2)

	s.Input = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	s.InputFocused = s.Input.BorderForeground(p.Primary)

	s.Button = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Primary).
		Padding(0, 2)
	s.ButtonFocused = s.Button.Bold(true).Underline(true)
	s.ButtonDisabled = lipgloss.NewStyle().
		Foreground(p.Muted).
		Background(p.Surface).
		Padding(0, 2)
	s.Plain = lipgloss.NewStyle().Foreground(p.Muted)
	s.PlainFocused = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)

	s.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	s.Frame = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)

	s.Header = lipgloss.NewStyle().Bold(true).Foreground(p.Text).Background(p.Primary).Padding(0, 1)
	s.StatusLine = lipgloss.NewStyle().Foreground(p.Warning)
	s.HelpKey = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	s.HelpDesc = lipgloss.NewStyle().Foreground(p.Muted)
	s.Error = lipgloss.NewStyle().Foreground(p.Error).Bold(true)
	s.Success = lipgloss.NewStyle().Foreground(p.Secondary)

	return s
}

// ForTheme builds styles for a built-in theme name.
func ForTheme(name string) *ThemedStyles {
	return NewThemedStyles(GetPalette(ThemeName(name)))
}
