package ui

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	t.Run("without text", func(t *testing.T) {
		el := New(KindDiv)
		if el.Kind != KindDiv {
			t.Errorf("Kind = %q, want %q", el.Kind, KindDiv)
		}
		if el.Text != nil {
			t.Errorf("Text = %q, want nil", *el.Text)
		}
		if el.Content() != "" {
			t.Errorf("Content() = %q, want empty", el.Content())
		}
	})

	t.Run("with text", func(t *testing.T) {
		el := New(KindP, "hello", "ignored")
		if el.Content() != "hello" {
			t.Errorf("Content() = %q, want %q", el.Content(), "hello")
		}
	})

	t.Run("empty text is kept", func(t *testing.T) {
		el := New(KindInput, "")
		if el.Text == nil {
			t.Fatal("Text = nil, want pointer to empty string")
		}
	})
}

func TestKind_Valid(t *testing.T) {
	for _, k := range Kinds() {
		if !k.Valid() {
			t.Errorf("%q.Valid() = false, want true", k)
		}
	}
	if Kind("span").Valid() {
		t.Error(`"span".Valid() = true, want false`)
	}
}

func TestParseInteraction(t *testing.T) {
	tests := []struct {
		in     string
		want   Interaction
		wantOK bool
	}{
		{"click", Click, true},
		{"input", Input, true},
		{"change", Change, true},
		{"hover", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseInteraction(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseInteraction(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestElement_On(t *testing.T) {
	t.Run("last write wins", func(t *testing.T) {
		el := New(KindButton).On(Click, "first").On(Click, "second")
		got, ok := el.Event(Click)
		if !ok || got != "second" {
			t.Errorf("Event(Click) = (%q, %v), want (%q, true)", got, ok, "second")
		}
		if len(el.Bindings) != 1 {
			t.Errorf("len(Bindings) = %d, want 1", len(el.Bindings))
		}
	})

	t.Run("does not alias the receiver", func(t *testing.T) {
		base := New(KindInput).On(Input, "mac")
		changed := base.On(Change, "mac")

		if _, ok := base.Event(Change); ok {
			t.Error("base gained a change binding from a derived copy")
		}
		if _, ok := changed.Event(Input); !ok {
			t.Error("derived copy lost the input binding")
		}
	})
}

func TestElement_Child(t *testing.T) {
	t.Run("preserves order", func(t *testing.T) {
		el := New(KindDiv).
			Child(New(KindP, "a")).
			Child(New(KindP, "b")).
			WithChildren(New(KindP, "c"), New(KindP, "d"))

		var got []string
		for _, c := range el.Children {
			got = append(got, c.Content())
		}
		want := []string{"a", "b", "c", "d"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("children order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("sibling builds never share storage", func(t *testing.T) {
		base := New(KindDiv).Child(New(KindP, "shared"))
		left := base.Child(New(KindP, "left"))
		right := base.Child(New(KindP, "right"))

		if left.Children[1].Content() != "left" {
			t.Errorf("left.Children[1] = %q, want %q", left.Children[1].Content(), "left")
		}
		if right.Children[1].Content() != "right" {
			t.Errorf("right.Children[1] = %q, want %q", right.Children[1].Content(), "right")
		}
		if len(base.Children) != 1 {
			t.Errorf("len(base.Children) = %d, want 1", len(base.Children))
		}
	})
}

func TestStyle_Attributes(t *testing.T) {
	el := New(KindDiv).
		Width(200).
		Height(120).
		WidthFull().
		Flex().
		FlexDirection(Column).
		JustifyCenter().
		AlignCenter().
		Gap(4).
		Bg("#000000").
		Color("#FFFFFF").
		BorderLine(1, "#6B7280").
		Radius(8).
		Opacity(0.5).
		Size(18).
		Disabled(true).
		WithoutDefaultStyles()

	half := 0.5
	want := Style{
		Width:     200,
		Height:    120,
		WidthFull: true,
		Flex:      true,
		Direction: Column,
		Justify:   AlignCenter,
		AlignItem: AlignCenter,
		Gap:       4,
		Bg:        "#000000",
		Color:     "#FFFFFF",
		Border:    &Border{Width: 1, Color: "#6B7280"},
		Radius:    8,
		Opacity:   &half,
		Size:      18,
		Disabled:  true,
		NoDefault: true,
	}
	if diff := cmp.Diff(want, el.Style); diff != "" {
		t.Errorf("style mismatch (-want +got):\n%s", diff)
	}
}

func TestStyle_OrderIndependent(t *testing.T) {
	a := New(KindButton).Bg("#111111").Size(20).Disabled(true).Padding(4)
	b := New(KindButton).Padding(4).Disabled(true).Size(20).Bg("#111111")

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("attribute order changed the result (-a +b):\n%s", diff)
	}
}

func TestStyle_Spacing(t *testing.T) {
	base := New(KindDiv).Padding(8)
	narrowed := base.PaddingX(2)

	if diff := cmp.Diff(&Spacing{8, 8, 8, 8}, base.Style.Padding); diff != "" {
		t.Errorf("base padding changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(&Spacing{Top: 8, Right: 2, Bottom: 8, Left: 2}, narrowed.Style.Padding); diff != "" {
		t.Errorf("narrowed padding mismatch (-want +got):\n%s", diff)
	}

	m := New(KindP).MarginTop(3).MarginBottom(5)
	if diff := cmp.Diff(&Spacing{Top: 3, Bottom: 5}, m.Style.Margin); diff != "" {
		t.Errorf("margin mismatch (-want +got):\n%s", diff)
	}
}

func TestStyle_OpacityClamp(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"below range", -1, 0},
		{"in range", 0.25, 0.25},
		{"above range", 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := New(KindP).Opacity(tt.in)
			if *el.Style.Opacity != tt.want {
				t.Errorf("Opacity(%v) = %v, want %v", tt.in, *el.Style.Opacity, tt.want)
			}
		})
	}
}

func TestElement_JSON(t *testing.T) {
	el := New(KindButton, "Go").Disabled(true).On(Click, "calculate")

	data, err := json.Marshal(el)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	got := string(data)
	for _, want := range []string{`"kind":"button"`, `"text":"Go"`, `"disabled":true`, `"on":{"click":"calculate"}`} {
		if !strings.Contains(got, want) {
			t.Errorf("encoded element %s missing %s", got, want)
		}
	}

	var back Element
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(el, back); diff != "" {
		t.Errorf("decoded element mismatch (-want +got):\n%s", diff)
	}
}
