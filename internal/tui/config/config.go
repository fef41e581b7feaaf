// Package config is the interactive editor behind 'unlockcalc config edit'.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/Iron-Ham/unlockcalc/internal/config"
	"github.com/Iron-Ham/unlockcalc/internal/tui/styles"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
)

// ItemType selects how an item is edited.
type ItemType string

const (
	TypeString ItemType = "string"
	TypeBool   ItemType = "bool"
	TypeInt    ItemType = "int"
	TypeSelect ItemType = "select"
)

// ConfigItem represents a single configuration item
type ConfigItem struct {
	Key         string
	Label       string
	Description string
	Type        ItemType
	Options     []string // For select type
}

// Category represents a group of config items
type Category struct {
	Name  string
	Items []ConfigItem
}

// Categories returns the editable settings grouped for display.
func Categories() []Category {
	return []Category{
		{
			Name: "Logging",
			Items: []ConfigItem{
				{Key: "logging.enabled", Label: "File Logging", Type: TypeBool,
					Description: "Write JSON records to app.log in the log directory"},
				{Key: "logging.level", Label: "Level", Type: TypeSelect, Options: config.ValidLogLevels(),
					Description: "Minimum level that is recorded"},
				{Key: "logging.dir", Label: "Directory", Type: TypeString,
					Description: "Directory holding app.log and its backups"},
				{Key: "logging.max_size_mb", Label: "Max Size (MB)", Type: TypeInt,
					Description: "Rotate app.log once it reaches this size"},
				{Key: "logging.max_backups", Label: "Max Backups", Type: TypeInt,
					Description: "Rotated files to keep"},
				{Key: "logging.compress", Label: "Compress Backups", Type: TypeBool,
					Description: "Gzip rotated files"},
				{Key: "logging.daily", Label: "Daily Rollover", Type: TypeBool,
					Description: "Start a new app.log each day"},
				{Key: "logging.console", Label: "Console Mirror", Type: TypeBool,
					Description: "Mirror records to stderr with a [Plugin] prefix"},
			},
		},
		{
			Name: "Preview",
			Items: []ConfigItem{
				{Key: "preview.target", Label: "Render Target", Type: TypeString,
					Description: "Target the preview asks the plugin to render into"},
				{Key: "preview.theme", Label: "Theme", Type: TypeSelect, Options: config.ValidPreviewThemes(),
					Description: "Color theme of the preview host"},
			},
		},
		{
			Name: "Serve",
			Items: []ConfigItem{
				{Key: "serve.render_target", Label: "Render On Load", Type: TypeString,
					Description: "Render into this target right after on_load (empty = wait for the host)"},
			},
		},
	}
}

// Model is the Bubbletea model for the interactive config UI
type Model struct {
	categories    []Category
	categoryIndex int
	itemIndex     int
	path          string
	styles        *styles.ThemedStyles
	width         int
	height        int
	editing       bool
	textInput     textinput.Model
	selectIndex   int // For select-type options
	errorMsg      string
	infoMsg       string
	quitting      bool
	modified      bool
}

// New creates a config model that saves to path.
func New(path string, s *styles.ThemedStyles) Model {
	if s == nil {
		s = styles.NewThemedStyles(nil)
	}
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	return Model{
		categories: Categories(),
		path:       path,
		styles:     s,
		textInput:  ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.errorMsg = ""
		if m.editing {
			return m.handleEditingKeypress(msg)
		}
		m.infoMsg = ""
		return m.handleKeypress(msg)
	}
	return m, nil
}

func (m Model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		m.itemIndex--
		if m.itemIndex < 0 {
			// Move to the last item of the previous category
			m.categoryIndex = (m.categoryIndex - 1 + len(m.categories)) % len(m.categories)
			m.itemIndex = len(m.categories[m.categoryIndex].Items) - 1
		}

	case "down", "j":
		m.itemIndex++
		if m.itemIndex >= len(m.categories[m.categoryIndex].Items) {
			m.categoryIndex = (m.categoryIndex + 1) % len(m.categories)
			m.itemIndex = 0
		}

	case "tab":
		m.categoryIndex = (m.categoryIndex + 1) % len(m.categories)
		m.itemIndex = 0

	case "shift+tab":
		m.categoryIndex = (m.categoryIndex - 1 + len(m.categories)) % len(m.categories)
		m.itemIndex = 0

	case "enter", " ":
		item := m.currentItem()
		switch item.Type {
		case TypeBool:
			m.apply(item, !viper.GetBool(item.Key))
		case TypeSelect:
			m.editing = true
			m.selectIndex = max(0, slices.Index(item.Options, viper.GetString(item.Key)))
		default:
			m.editing = true
			m.textInput.SetValue(m.displayValue(item))
			m.textInput.CursorEnd()
			cmd := m.textInput.Focus()
			return m, cmd
		}

	case "r":
		item := m.currentItem()
		if def, ok := config.DefaultValues()[item.Key]; ok {
			if m.apply(item, def) {
				m.infoMsg = fmt.Sprintf("Reset %s to default", item.Label)
			}
		}
	}
	return m, nil
}

func (m Model) handleEditingKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := m.currentItem()

	switch msg.String() {
	case "esc":
		m.stopEditing()
		return m, nil

	case "enter":
		if item.Type == TypeSelect {
			if m.apply(item, item.Options[m.selectIndex]) {
				m.stopEditing()
			}
			return m, nil
		}
		value, err := parseValue(item, m.textInput.Value())
		if err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		if m.apply(item, value) {
			m.stopEditing()
		}
		return m, nil

	case "up", "k":
		if item.Type == TypeSelect {
			m.selectIndex = (m.selectIndex - 1 + len(item.Options)) % len(item.Options)
			return m, nil
		}

	case "down", "j":
		if item.Type == TypeSelect {
			m.selectIndex = (m.selectIndex + 1) % len(item.Options)
			return m, nil
		}
	}

	if item.Type == TypeSelect {
		return m, nil
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.textInput.Blur()
	m.textInput.SetValue("")
}

// parseValue converts edited text to the item's type.
func parseValue(item ConfigItem, value string) (any, error) {
	switch item.Type {
	case TypeInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("expected integer value")
		}
		return n, nil
	case TypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("expected true or false")
		}
		return b, nil
	default:
		return value, nil
	}
}

// apply sets item to value, validates the whole configuration and saves it.
// An invalid value is rolled back and reported.
func (m *Model) apply(item ConfigItem, value any) bool {
	previous := viper.Get(item.Key)
	viper.Set(item.Key, value)

	if _, err := config.Load(); err != nil {
		viper.Set(item.Key, previous)
		m.errorMsg = err.Error()
		return false
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		m.errorMsg = fmt.Sprintf("Failed to create config directory: %v", err)
		return false
	}
	if err := viper.WriteConfigAs(m.path); err != nil {
		m.errorMsg = fmt.Sprintf("Failed to save config: %v", err)
		return false
	}

	m.infoMsg = "Saved!"
	m.modified = true
	return true
}

func (m Model) currentItem() ConfigItem {
	return m.categories[m.categoryIndex].Items[m.itemIndex]
}

func (m Model) displayValue(item ConfigItem) string {
	switch item.Type {
	case TypeBool:
		return strconv.FormatBool(viper.GetBool(item.Key))
	case TypeInt:
		return strconv.Itoa(viper.GetInt(item.Key))
	default:
		return viper.GetString(item.Key)
	}
}

// Modified reports whether anything was saved.
func (m Model) Modified() bool { return m.modified }

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	s := m.styles
	var b strings.Builder

	b.WriteString(s.Header.Render("unlockcalc configuration"))
	b.WriteString("\n\n")
	b.WriteString(s.Muted.Render("Saving to: " + m.path))
	b.WriteString("\n\n")

	for ci, cat := range m.categories {
		active := ci == m.categoryIndex
		catStyle := s.Muted.Bold(true)
		if active {
			catStyle = s.Title
		}
		b.WriteString(catStyle.Render(fmt.Sprintf("[ %s ]", cat.Name)))
		b.WriteString("\n")
		for ii, item := range cat.Items {
			b.WriteString(m.renderItem(item, active && ii == m.itemIndex))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.editing {
		b.WriteString(m.renderEditOverlay())
	} else {
		b.WriteString(s.Muted.Render(m.currentItem().Description))
	}
	b.WriteString("\n")

	if m.errorMsg != "" {
		b.WriteString("\n")
		b.WriteString(s.Error.Render("Error: " + m.errorMsg))
	}
	if m.infoMsg != "" {
		b.WriteString("\n")
		b.WriteString(s.Success.Render(m.infoMsg))
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderItem(item ConfigItem, selected bool) string {
	s := m.styles
	label := fmt.Sprintf("%-20s", item.Label)
	value := m.displayValue(item)
	if value == "" {
		value = "(empty)"
	}
	if selected {
		return fmt.Sprintf("  %s %s  %s", s.Selected.Render(">"), s.Text.Bold(true).Render(label), s.Selected.Render(value))
	}
	return fmt.Sprintf("    %s  %s", s.Muted.Render(label), s.Text.Render(value))
}

func (m Model) renderEditOverlay() string {
	s := m.styles
	item := m.currentItem()

	var content strings.Builder
	if item.Type == TypeSelect {
		fmt.Fprintf(&content, "Select %s:\n\n", item.Label)
		for i, opt := range item.Options {
			if i == m.selectIndex {
				content.WriteString(s.Selected.Render(" > "+opt) + "\n")
			} else {
				content.WriteString(s.Option.Render("   "+opt) + "\n")
			}
		}
		content.WriteString("\n" + s.Muted.Render("j/k to select, enter to confirm, esc to cancel"))
	} else {
		fmt.Fprintf(&content, "Edit %s:\n\n", item.Label)
		content.WriteString(m.textInput.View())
		content.WriteString("\n\n" + s.Muted.Render("enter to save, esc to cancel"))
	}
	return "\n" + s.Panel.Render(content.String())
}

func (m Model) renderHelp() string {
	s := m.styles
	pair := func(k, desc string) string { return s.HelpKey.Render(k) + " " + s.HelpDesc.Render(desc) }

	if m.editing {
		return pair("enter", "save") + "  " + pair("esc", "cancel")
	}
	return strings.Join([]string{
		pair("j/k", "navigate"),
		pair("tab", "next category"),
		pair("enter/space", "edit"),
		pair("r", "reset"),
		pair("q", "quit"),
	}, "  ")
}

// Run starts the interactive config UI, saving to path.
func Run(path string, s *styles.ThemedStyles) error {
	p := tea.NewProgram(New(path, s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
