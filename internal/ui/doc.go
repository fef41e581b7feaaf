// Package ui provides the declarative element tree that the plugin hands to
// the host for display.
//
// Trees are built with value semantics. Every attribute method returns an
// updated copy of the receiver, and methods that touch the children slice or
// the event binding map copy them first, so a tree obtained from one build
// never shares mutable storage with another:
//
//	button := ui.New(ui.KindButton, "Calculate").
//	    Bg("#10B981").
//	    Radius(8).
//	    On(ui.Click, "calculate")
//
//	root := ui.New(ui.KindDiv).
//	    Flex().
//	    FlexDirection(ui.Column).
//	    Child(button)
//
// The builder cannot fail. Layout is left to the host renderer; the tree only
// carries presentational hints.
//
// # Canonical Form
//
// [Fingerprint] hashes the RFC 8785 canonical JSON encoding of a tree. Two
// builds from the same session snapshot yield the same fingerprint, which is
// what the event bus reports after each render.
package ui
