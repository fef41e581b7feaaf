package ui

import "maps"

// Kind identifies an element variant. The set is closed.
type Kind string

const (
	KindDiv    Kind = "div"    // Container
	KindP      Kind = "p"      // Text
	KindButton Kind = "button" // Clickable button
	KindInput  Kind = "input"  // Single-line text input
	KindImg    Kind = "img"    // Image, text carries the source
	KindSelect Kind = "select" // Selection list
	KindOption Kind = "option" // Entry of a selection list
)

// Kinds returns every element kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindDiv, KindP, KindButton, KindInput, KindImg, KindSelect, KindOption}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindDiv, KindP, KindButton, KindInput, KindImg, KindSelect, KindOption:
		return true
	default:
		return false
	}
}

// Interaction identifies a user interaction the host can report.
type Interaction string

const (
	Click  Interaction = "click"
	Input  Interaction = "input"
	Change Interaction = "change"
)

// ParseInteraction converts a wire string to an Interaction.
// The second return value is false for unknown strings.
func ParseInteraction(s string) (Interaction, bool) {
	switch Interaction(s) {
	case Click, Input, Change:
		return Interaction(s), true
	default:
		return "", false
	}
}

// Element is a single node of the declarative UI tree.
type Element struct {
	Kind     Kind                   `json:"kind"`
	Text     *string                `json:"text,omitempty"`
	Style    Style                  `json:"style"`
	Children []Element              `json:"children,omitempty"`
	Bindings map[Interaction]string `json:"on,omitempty"`
}

// New creates an element of the given kind. Only the first text argument is
// used; omit it for elements without content.
func New(kind Kind, text ...string) Element {
	el := Element{Kind: kind}
	if len(text) > 0 {
		t := text[0]
		el.Text = &t
	}
	return el
}

// Content returns the element text, or "" when it has none.
func (e Element) Content() string {
	if e.Text == nil {
		return ""
	}
	return *e.Text
}

// WithText returns a copy with its text replaced.
func (e Element) WithText(text string) Element {
	e.Text = &text
	return e
}

// On binds an interaction to an event name the host echoes back verbatim.
// A later binding for the same interaction replaces the earlier one.
func (e Element) On(interaction Interaction, event string) Element {
	bindings := make(map[Interaction]string, len(e.Bindings)+1)
	maps.Copy(bindings, e.Bindings)
	bindings[interaction] = event
	e.Bindings = bindings
	return e
}

// Event returns the event name bound to the interaction, if any.
func (e Element) Event(interaction Interaction) (string, bool) {
	name, ok := e.Bindings[interaction]
	return name, ok
}

// Child appends a child element. Children keep call order.
func (e Element) Child(child Element) Element {
	children := make([]Element, len(e.Children), len(e.Children)+1)
	copy(children, e.Children)
	e.Children = append(children, child)
	return e
}

// WithChildren appends several children at once, preserving their order.
func (e Element) WithChildren(children ...Element) Element {
	for _, c := range children {
		e = e.Child(c)
	}
	return e
}
