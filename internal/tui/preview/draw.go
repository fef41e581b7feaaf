package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/unlockcalc/internal/tui/styles"
	"github.com/Iron-Ham/unlockcalc/internal/ui"
)

// Pixel sizes are mapped onto the terminal grid with these thresholds.
const (
	titleSize     = 18
	codeSize      = 24
	hintSize      = 13
	pxPerColumn   = 4
	blankLineGap  = 12
	minInputWidth = 24
)

// Focus tells Draw which element has focus and how to draw it.
type Focus struct {
	Event     string // event name of the focused element; "" for none
	InputView string // textinput view, used when the focused element is an input
}

// Draw renders an element tree as terminal text.
func Draw(tree ui.Element, s *styles.ThemedStyles, focus Focus) string {
	if s == nil {
		s = styles.NewThemedStyles(nil)
	}
	d := drawer{styles: s, focus: focus}
	return d.element(tree)
}

type drawer struct {
	styles *styles.ThemedStyles
	focus  Focus
}

func (d drawer) focused(el ui.Element) bool {
	if d.focus.Event == "" {
		return false
	}
	for _, name := range el.Bindings {
		if name == d.focus.Event {
			return true
		}
	}
	return false
}

func (d drawer) element(el ui.Element) string {
	var out string
	switch el.Kind {
	case ui.KindDiv:
		out = d.container(el)
	case ui.KindP:
		out = d.text(el)
	case ui.KindButton:
		out = d.button(el)
	case ui.KindInput:
		out = d.input(el)
	case ui.KindImg:
		out = d.styles.Image.Render("[image " + el.Content() + "]")
	case ui.KindSelect:
		out = d.selectList(el)
	case ui.KindOption:
		out = d.styles.Option.Render("- " + el.Content())
	default:
		out = el.Content()
	}
	if el.Style.Opacity != nil && *el.Style.Opacity < 1 && el.Kind != ui.KindButton {
		out = d.styles.Muted.Render(out)
	}
	return out
}

func (d drawer) container(el ui.Element) string {
	parts := make([]string, 0, len(el.Children))
	for _, c := range el.Children {
		parts = append(parts, d.element(c))
	}

	var body string
	if el.Style.Direction == ui.Row {
		gap := strings.Repeat(" ", max(1, el.Style.Gap/pxPerColumn))
		spaced := make([]string, 0, 2*len(parts))
		for i, p := range parts {
			if i > 0 {
				spaced = append(spaced, gap)
			}
			spaced = append(spaced, p)
		}
		body = lipgloss.JoinHorizontal(lipgloss.Center, spaced...)
	} else {
		sep := "\n"
		if el.Style.Gap >= blankLineGap {
			sep = "\n\n"
		}
		body = strings.Join(parts, sep)
	}

	if el.Style.Bg != "" || el.Style.Border != nil {
		return d.styles.Panel.Render(body)
	}
	return body
}

func (d drawer) text(el ui.Element) string {
	switch size := el.Style.Size; {
	case size >= codeSize:
		return d.styles.Code.Render(el.Content())
	case size >= titleSize:
		return d.styles.Title.Render(el.Content())
	case size > 0 && size <= hintSize && el.Style.Color != "":
		return d.styles.Muted.Render(el.Content())
	default:
		return d.styles.Text.Render(el.Content())
	}
}

func (d drawer) button(el ui.Element) string {
	label := el.Content()
	focused := d.focused(el)

	if el.Style.NoDefault {
		if focused {
			return d.styles.PlainFocused.Render("> " + label)
		}
		return d.styles.Plain.Render("  " + label)
	}
	switch {
	case el.Style.Disabled:
		return d.styles.ButtonDisabled.Render(label)
	case focused:
		return d.styles.ButtonFocused.Render(label)
	default:
		return d.styles.Button.Render(label)
	}
}

func (d drawer) input(el ui.Element) string {
	if d.focused(el) && d.focus.InputView != "" {
		return d.styles.InputFocused.Render(d.focus.InputView)
	}
	text := el.Content()
	width := max(minInputWidth, lipgloss.Width(text)+1)
	return d.styles.Input.Width(width).Render(text)
}

func (d drawer) selectList(el ui.Element) string {
	lines := make([]string, 0, len(el.Children)+1)
	if label := el.Content(); label != "" {
		lines = append(lines, d.styles.Text.Render(label))
	}
	for _, c := range el.Children {
		lines = append(lines, d.element(c))
	}
	return strings.Join(lines, "\n")
}
