package plugin

import (
	"github.com/Iron-Ham/unlockcalc/internal/session"
	"github.com/Iron-Ham/unlockcalc/internal/ui"
)

// Event names bound into the main view. The host echoes them back in
// on_ui_event.
const (
	EventMAC           = string(session.FieldMAC)
	EventSerial        = string(session.FieldSerial)
	EventToggleConsent = "toggle_consent"
	EventCalculate     = "calculate"
)

const (
	colorAccent   = "#4F8EF7"
	colorMuted    = "#8A8F98"
	colorSurface  = "#1E2127"
	colorBorder   = "#3A3F4B"
	colorCode     = "#7CD992"
	disabledAlpha = 0.5
)

// Placeholder shown in the code display before the first calculation.
const codePlaceholder = "----------"

// MainView builds the calculator form for a session snapshot. It is a pure
// function of s.
func MainView(s session.Snapshot) ui.Element {
	return ui.New(ui.KindDiv).
		Flex().
		FlexDirection(ui.Column).
		Gap(12).
		Padding(16).
		WidthFull().
		WithChildren(
			ui.New(ui.KindP, "Unlock Code Calculator").Size(20).Color(colorAccent),
			ui.New(ui.KindP, "Enter the device MAC address and serial number.").
				Size(13).
				Color(colorMuted),
			fieldRow("MAC address", session.FieldMAC, s.MAC),
			fieldRow("Serial number", session.FieldSerial, s.Serial),
			consentToggle(s.Consent),
			calculateButton(s.Ready()),
			codeDisplay(s),
		)
}

func fieldRow(label string, f session.Field, value string) ui.Element {
	name := string(f)
	input := ui.New(ui.KindInput, value).
		WidthFull().
		PaddingX(8).
		PaddingY(6).
		BorderLine(1, colorBorder).
		Radius(4).
		On(ui.Input, name).
		On(ui.Change, name)

	return ui.New(ui.KindDiv).
		Flex().
		FlexDirection(ui.Column).
		Gap(4).
		WithChildren(ui.New(ui.KindP, label).Size(13), input)
}

func consentToggle(consent bool) ui.Element {
	mark := "[ ]"
	if consent {
		mark = "[x]"
	}
	return ui.New(ui.KindButton, mark+" I own this device and accept the risk").
		WithoutDefaultStyles().
		Color(colorMuted).
		On(ui.Click, EventToggleConsent)
}

func calculateButton(ready bool) ui.Element {
	btn := ui.New(ui.KindButton, "Calculate").
		Bg(colorAccent).
		Color("#FFFFFF").
		PaddingX(16).
		PaddingY(8).
		Radius(6).
		Disabled(!ready).
		On(ui.Click, EventCalculate)
	if !ready {
		btn = btn.Opacity(disabledAlpha)
	}
	return btn
}

func codeDisplay(s session.Snapshot) ui.Element {
	code := codePlaceholder
	if s.HasCode() {
		code = s.Code
	}
	return ui.New(ui.KindDiv).
		Flex().
		FlexDirection(ui.Row).
		AlignCenter().
		Gap(8).
		Padding(12).
		Bg(colorSurface).
		Radius(6).
		WithChildren(
			ui.New(ui.KindP, "Unlock code").Size(13).Color(colorMuted),
			ui.New(ui.KindP, code).Size(24).Color(colorCode),
		)
}
