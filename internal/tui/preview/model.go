// Package preview is a terminal host for the plugin. It asks the plugin to
// render into a recording surface, draws the latest tree and turns key
// presses into UI events, the same calls a real host would make.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Iron-Ham/unlockcalc/internal/event"
	"github.com/Iron-Ham/unlockcalc/internal/host"
	"github.com/Iron-Ham/unlockcalc/internal/plugin"
	"github.com/Iron-Ham/unlockcalc/internal/tui/styles"
	"github.com/Iron-Ham/unlockcalc/internal/ui"
)

// Options configures a preview Model.
type Options struct {
	Target string               // render target; "root" when empty
	Styles *styles.ThemedStyles // nil uses the default theme
}

// focusable is an element the user can move to.
type focusable struct {
	event string
	kind  ui.Kind
	text  string
}

// activity records the most recent processed UI event. It is written by a
// bus handler on the Update goroutine.
type activity struct {
	last     event.UIEventHandledEvent
	hasLast  bool
	rendered int
}

// Model is the Bubbletea model for the preview host.
type Model struct {
	plugin   *plugin.Plugin
	recorder *host.Recorder
	target   string
	styles   *styles.ThemedStyles
	keys     keyMap
	input    textinput.Model
	focus    string // event name of the focused element
	activity *activity
	width    int
	height   int
	quitting bool
}

// New creates a preview Model. p must render into rec. New performs the
// initial on_ui_render for the target.
func New(p *plugin.Plugin, rec *host.Recorder, opts Options) Model {
	target := opts.Target
	if target == "" {
		target = "root"
	}
	s := opts.Styles
	if s == nil {
		s = styles.NewThemedStyles(nil)
	}

	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 32
	ti.Prompt = ""

	act := &activity{}
	p.Bus().Subscribe(event.TypeUIEvent, func(e event.Event) {
		act.last = e.(event.UIEventHandledEvent)
		act.hasLast = true
	})
	p.Bus().Subscribe(event.TypeRendered, func(event.Event) {
		act.rendered++
	})

	m := Model{
		plugin:   p,
		recorder: rec,
		target:   target,
		styles:   s,
		keys:     defaultKeyMap(),
		input:    ti,
		activity: act,
	}

	<-p.OnUIRender(target)
	m.syncFocus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// A host may have rendered since the last key press.
		m.syncFocus()
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Next) {
		cmd := m.moveFocus(1)
		return m, cmd
	}
	if key.Matches(msg, m.keys.Prev) {
		cmd := m.moveFocus(-1)
		return m, cmd
	}

	current, ok := m.current()
	if !ok {
		if key.Matches(msg, m.keys.QuitRune) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if current.kind == ui.KindInput {
		if key.Matches(msg, m.keys.Commit) {
			m.emit(current.event, ui.Change, m.input.Value())
			return m, nil
		}
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if after := m.input.Value(); after != before {
			m.emit(current.event, ui.Input, after)
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.QuitRune):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Activate):
		m.emit(current.event, ui.Click, "")
	}
	return m, nil
}

// emit sends one UI event to the plugin and waits for its acknowledgement.
func (m *Model) emit(id string, interaction ui.Interaction, payload string) {
	<-m.plugin.OnUIEvent(id, interaction, payload)
	m.syncFocus()
}

// tree returns the latest tree for the target.
func (m Model) tree() (ui.Element, bool) {
	return m.recorder.Latest(m.target)
}

// focusables lists the elements that can take focus, in drawing order.
// Disabled buttons are skipped.
func (m Model) focusables() []focusable {
	tree, ok := m.tree()
	if !ok {
		return nil
	}
	var out []focusable
	ui.Walk(tree, func(el ui.Element, _ int) bool {
		switch el.Kind {
		case ui.KindInput:
			if name, ok := el.Event(ui.Input); ok {
				out = append(out, focusable{event: name, kind: el.Kind, text: el.Content()})
			} else if name, ok := el.Event(ui.Change); ok {
				out = append(out, focusable{event: name, kind: el.Kind, text: el.Content()})
			}
		case ui.KindButton:
			if name, ok := el.Event(ui.Click); ok && !el.Style.Disabled {
				out = append(out, focusable{event: name, kind: el.Kind, text: el.Content()})
			}
		}
		return true
	})
	return out
}

func (m Model) current() (focusable, bool) {
	for _, f := range m.focusables() {
		if f.event == m.focus {
			return f, true
		}
	}
	return focusable{}, false
}

// moveFocus shifts focus by delta, wrapping around.
func (m *Model) moveFocus(delta int) tea.Cmd {
	items := m.focusables()
	if len(items) == 0 {
		m.focus = ""
		return nil
	}
	idx := 0
	for i, f := range items {
		if f.event == m.focus {
			idx = (i + delta + len(items)) % len(items)
			break
		}
	}
	return m.setFocus(items[idx])
}

// syncFocus keeps focus valid after a render. If the focused element
// disappeared or became disabled, focus falls back to the first element.
func (m *Model) syncFocus() {
	if f, ok := m.current(); ok {
		if f.kind == ui.KindInput && m.input.Value() != f.text {
			m.input.SetValue(f.text)
		}
		return
	}
	if items := m.focusables(); len(items) > 0 {
		m.setFocus(items[0])
	} else {
		m.focus = ""
		m.input.Blur()
	}
}

func (m *Model) setFocus(f focusable) tea.Cmd {
	m.focus = f.event
	if f.kind != ui.KindInput {
		m.input.Blur()
		return nil
	}
	m.input.SetValue(f.text)
	m.input.CursorEnd()
	return m.input.Focus()
}

// Focused returns the event name of the focused element.
func (m Model) Focused() string { return m.focus }

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.fit(m.styles.Header.Render(fmt.Sprintf("%s preview  target=%s", plugin.Name, m.target))))
	b.WriteString("\n\n")

	tree, ok := m.tree()
	if !ok {
		b.WriteString(m.styles.Muted.Render("waiting for the first render"))
	} else {
		focus := Focus{Event: m.focus}
		if f, ok := m.current(); ok && f.kind == ui.KindInput {
			focus.InputView = m.input.View()
		}
		b.WriteString(m.styles.Frame.Render(Draw(tree, m.styles, focus)))
	}
	b.WriteString("\n")

	b.WriteString(m.fit(m.styles.StatusLine.Render(m.status())))
	b.WriteString("\n")
	b.WriteString(m.helpLine())
	return b.String()
}

// fit truncates a single styled line to the window width once it is known.
func (m Model) fit(line string) string {
	if m.width <= 3 || lipgloss.Width(line) <= m.width {
		return line
	}
	return ansi.Truncate(line, m.width, "...")
}

func (m Model) status() string {
	a := m.activity
	last := "none"
	if a.hasLast {
		last = fmt.Sprintf("%s %s (%s)", a.last.Interaction, a.last.EventID, a.last.Action)
	}
	return fmt.Sprintf("renders: %d  last event: %s", a.rendered, last)
}

func (m Model) helpLine() string {
	f, _ := m.current()
	bindings := m.keys.help(f.kind == ui.KindInput)
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, m.styles.HelpKey.Render(h.Key)+" "+m.styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
