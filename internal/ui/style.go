package ui

import "math"

// FlexDirection is the main axis of a flex container.
type FlexDirection string

const (
	Row    FlexDirection = "row"
	Column FlexDirection = "column"
)

// Align is an alignment keyword for justify-content and align-items.
type Align string

const (
	AlignStart  Align = "start"
	AlignCenter Align = "center"
	AlignEnd    Align = "end"
)

// Spacing holds per-side padding or margin in pixels. Zero sides are unset.
type Spacing struct {
	Top    int `json:"top,omitempty"`
	Right  int `json:"right,omitempty"`
	Bottom int `json:"bottom,omitempty"`
	Left   int `json:"left,omitempty"`
}

// IsZero reports whether no side is set.
func (s Spacing) IsZero() bool {
	return s == Spacing{}
}

// Border describes an element outline.
type Border struct {
	Width int    `json:"width"`
	Color string `json:"color,omitempty"`
}

// Style carries the presentational attributes of an element. Every attribute
// is independent; setting one never affects another.
type Style struct {
	Width     int           `json:"width,omitempty"`
	Height    int           `json:"height,omitempty"`
	WidthFull bool          `json:"width_full,omitempty"`
	Flex      bool          `json:"flex,omitempty"`
	Direction FlexDirection `json:"flex_direction,omitempty"`
	Justify   Align         `json:"justify_content,omitempty"`
	AlignItem Align         `json:"align_items,omitempty"`
	Padding   *Spacing      `json:"padding,omitempty"`
	Margin    *Spacing      `json:"margin,omitempty"`
	Gap       int           `json:"gap,omitempty"`
	Bg        string        `json:"bg,omitempty"`
	Color     string        `json:"color,omitempty"`
	Border    *Border       `json:"border,omitempty"`
	Radius    int           `json:"radius,omitempty"`
	Opacity   *float64      `json:"opacity,omitempty"`
	Size      int           `json:"size,omitempty"`
	Disabled  bool          `json:"disabled,omitempty"`
	// NoDefault asks the host to skip its built-in look for this element.
	NoDefault bool `json:"without_default_styles,omitempty"`
}

func (e Element) Width(px int) Element  { e.Style.Width = px; return e }
func (e Element) Height(px int) Element { e.Style.Height = px; return e }
func (e Element) WidthFull() Element    { e.Style.WidthFull = true; return e }
func (e Element) Flex() Element         { e.Style.Flex = true; return e }
func (e Element) Gap(px int) Element    { e.Style.Gap = px; return e }
func (e Element) Bg(color string) Element {
	e.Style.Bg = color
	return e
}
func (e Element) Color(color string) Element {
	e.Style.Color = color
	return e
}
func (e Element) Radius(px int) Element { e.Style.Radius = px; return e }
func (e Element) Size(px int) Element   { e.Style.Size = px; return e }

// FlexDirection sets the main axis. It does not imply Flex.
func (e Element) FlexDirection(d FlexDirection) Element {
	e.Style.Direction = d
	return e
}

func (e Element) JustifyCenter() Element { e.Style.Justify = AlignCenter; return e }
func (e Element) AlignCenter() Element   { e.Style.AlignItem = AlignCenter; return e }

// Justify sets justify-content.
func (e Element) Justify(a Align) Element {
	e.Style.Justify = a
	return e
}

// AlignItems sets align-items.
func (e Element) AlignItems(a Align) Element {
	e.Style.AlignItem = a
	return e
}

// Padding sets the same padding on every side.
func (e Element) Padding(px int) Element {
	return e.withPadding(func(s *Spacing) { *s = Spacing{px, px, px, px} })
}

// PaddingX sets left and right padding.
func (e Element) PaddingX(px int) Element {
	return e.withPadding(func(s *Spacing) { s.Left, s.Right = px, px })
}

// PaddingY sets top and bottom padding.
func (e Element) PaddingY(px int) Element {
	return e.withPadding(func(s *Spacing) { s.Top, s.Bottom = px, px })
}

// Margin sets the same margin on every side.
func (e Element) Margin(px int) Element {
	return e.withMargin(func(s *Spacing) { *s = Spacing{px, px, px, px} })
}

func (e Element) MarginTop(px int) Element {
	return e.withMargin(func(s *Spacing) { s.Top = px })
}

func (e Element) MarginBottom(px int) Element {
	return e.withMargin(func(s *Spacing) { s.Bottom = px })
}

// BorderLine draws an outline of the given width and color.
func (e Element) BorderLine(width int, color string) Element {
	e.Style.Border = &Border{Width: width, Color: color}
	return e
}

// Opacity sets the element opacity, clamped to [0, 1]. NaN means opaque.
func (e Element) Opacity(v float64) Element {
	if math.IsNaN(v) {
		v = 1
	}
	v = min(max(v, 0), 1)
	e.Style.Opacity = &v
	return e
}

// Disabled marks the element as not interactive.
func (e Element) Disabled(disabled bool) Element {
	e.Style.Disabled = disabled
	return e
}

// WithoutDefaultStyles suppresses the host's default visual style.
func (e Element) WithoutDefaultStyles() Element {
	e.Style.NoDefault = true
	return e
}

// withPadding and withMargin copy the spacing before editing so the
// receiver's pointer target is never written.
func (e Element) withPadding(edit func(*Spacing)) Element {
	var s Spacing
	if e.Style.Padding != nil {
		s = *e.Style.Padding
	}
	edit(&s)
	e.Style.Padding = &s
	return e
}

func (e Element) withMargin(edit func(*Spacing)) Element {
	var s Spacing
	if e.Style.Margin != nil {
		s = *e.Style.Margin
	}
	edit(&s)
	e.Style.Margin = &s
	return e
}
