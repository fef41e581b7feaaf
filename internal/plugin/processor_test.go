package plugin

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Iron-Ham/unlockcalc/internal/event"
	"github.com/Iron-Ham/unlockcalc/internal/host"
	"github.com/Iron-Ham/unlockcalc/internal/session"
	"github.com/Iron-Ham/unlockcalc/internal/ui"
)

// scenarioCode is the code for AABBCCDDEEFF / SN12345.
const scenarioCode = "3577030057"

func newTestProcessor() (*Processor, *host.Recorder, *event.Bus) {
	rec := host.NewRecorder()
	bus := event.NewBus(nil)
	return NewProcessor(session.New(), rec, nil, bus), rec, bus
}

func mustFind(t *testing.T, tree ui.Element, name string) ui.Element {
	t.Helper()
	el, ok := ui.FindByEvent(tree, name)
	if !ok {
		t.Fatalf("no element bound to %q", name)
	}
	return el
}

// displayedCode returns the text of the code display, the last child of the
// main view.
func displayedCode(t *testing.T, tree ui.Element) string {
	t.Helper()
	if len(tree.Children) == 0 {
		t.Fatal("main view has no children")
	}
	display := tree.Children[len(tree.Children)-1]
	if len(display.Children) != 2 {
		t.Fatalf("code display has %d children, want 2", len(display.Children))
	}
	return display.Children[1].Content()
}

func latest(t *testing.T, rec *host.Recorder, target string) ui.Element {
	t.Helper()
	tree, ok := rec.Latest(target)
	if !ok {
		t.Fatalf("nothing rendered to %q", target)
	}
	return tree
}

func TestClassify(t *testing.T) {
	tests := []struct {
		id          string
		interaction ui.Interaction
		wantAction  action
		wantField   session.Field
	}{
		{"mac", ui.Input, actionEditField, session.FieldMAC},
		{"mac", ui.Change, actionEditField, session.FieldMAC},
		{"serial", ui.Input, actionEditField, session.FieldSerial},
		{"serial", ui.Change, actionEditField, session.FieldSerial},
		{"toggle_consent", ui.Click, actionToggleConsent, ""},
		{"calculate", ui.Click, actionCalculate, ""},
		{"mac", ui.Click, actionIgnore, ""},
		{"calculate", ui.Input, actionIgnore, ""},
		{"toggle_consent", ui.Change, actionIgnore, ""},
		{"unknown", ui.Click, actionIgnore, ""},
		{"", ui.Input, actionIgnore, ""},
		{"mac", ui.Interaction("hover"), actionIgnore, ""},
	}
	for _, tt := range tests {
		t.Run(tt.id+"/"+string(tt.interaction), func(t *testing.T) {
			act, field := classify(tt.id, tt.interaction)
			if act != tt.wantAction || field != tt.wantField {
				t.Errorf("classify(%q, %q) = (%v, %q), want (%v, %q)",
					tt.id, tt.interaction, act, field, tt.wantAction, tt.wantField)
			}
		})
	}
}

func TestAction_String(t *testing.T) {
	want := map[action]string{
		actionIgnore:        "ignore",
		actionEditField:     "edit_field",
		actionToggleConsent: "toggle_consent",
		actionCalculate:     "calculate",
	}
	for a, s := range want {
		if a.String() != s {
			t.Errorf("action(%d).String() = %q, want %q", a, a.String(), s)
		}
	}
}

func TestProcessor_InitialRenderDisablesCalculate(t *testing.T) {
	p, rec, _ := newTestProcessor()

	p.Render("root")

	tree := latest(t, rec, "root")
	btn := mustFind(t, tree, EventCalculate)
	if !btn.Style.Disabled {
		t.Error("calculate button is enabled in the initial state")
	}
	if got := displayedCode(t, tree); got != codePlaceholder {
		t.Errorf("code display = %q, want placeholder", got)
	}
}

func TestProcessor_FullCalculation(t *testing.T) {
	tests := []struct {
		name   string
		mac    string
		serial string
	}{
		{"canonical", "AA:BB:CC:DD:EE:FF", "SN12345"},
		{"lowercase and padded", " aa:bb:cc:dd:ee:ff ", "sn12345\t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, rec, _ := newTestProcessor()
			p.Render("root")

			p.HandleUIEvent(EventMAC, ui.Input, tt.mac)
			p.HandleUIEvent(EventSerial, ui.Change, tt.serial)
			p.HandleUIEvent(EventToggleConsent, ui.Click, "")

			tree := latest(t, rec, "root")
			if mustFind(t, tree, EventCalculate).Style.Disabled {
				t.Fatal("calculate button still disabled with consent and both fields")
			}

			snap := p.HandleUIEvent(EventCalculate, ui.Click, "")
			if snap.Code != scenarioCode {
				t.Errorf("Code = %q, want %q", snap.Code, scenarioCode)
			}
			if got := displayedCode(t, latest(t, rec, "root")); got != scenarioCode {
				t.Errorf("displayed code = %q, want %q", got, scenarioCode)
			}
			// Stored field text is left as typed.
			if snap.MAC != tt.mac {
				t.Errorf("MAC = %q, want %q", snap.MAC, tt.mac)
			}
		})
	}
}

func TestProcessor_CalculateGating(t *testing.T) {
	tests := []struct {
		name    string
		mac     string
		serial  string
		consent bool
	}{
		{"no consent", "AA:BB:CC:DD:EE:FF", "SN12345", false},
		{"empty serial", "AA:BB:CC:DD:EE:FF", "", true},
		{"blank serial", "AA:BB:CC:DD:EE:FF", "   ", true},
		{"empty mac", "", "SN12345", true},
		{"nothing", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, rec, _ := newTestProcessor()
			p.Render("root")

			p.HandleUIEvent(EventMAC, ui.Input, tt.mac)
			p.HandleUIEvent(EventSerial, ui.Input, tt.serial)
			if tt.consent {
				p.HandleUIEvent(EventToggleConsent, ui.Click, "")
			}
			snap := p.HandleUIEvent(EventCalculate, ui.Click, "")

			if snap.HasCode() {
				t.Errorf("Code = %q, want none", snap.Code)
			}
			tree := latest(t, rec, "root")
			if !mustFind(t, tree, EventCalculate).Style.Disabled {
				t.Error("calculate button enabled although preconditions fail")
			}
		})
	}
}

func TestProcessor_ToggleIsIdempotentInPairs(t *testing.T) {
	p, _, _ := newTestProcessor()

	start := p.Snapshot().Consent
	p.HandleUIEvent(EventToggleConsent, ui.Click, "")
	if p.Snapshot().Consent == start {
		t.Fatal("single toggle did not flip consent")
	}
	p.HandleUIEvent(EventToggleConsent, ui.Click, "")
	if p.Snapshot().Consent != start {
		t.Error("double toggle did not restore consent")
	}
}

func TestProcessor_RenderTargetFollowsLatestRequest(t *testing.T) {
	p, rec, _ := newTestProcessor()

	p.Render("root")
	p.HandleUIEvent(EventMAC, ui.Input, "AA")
	p.Render("root2")

	seen := rec.Count()
	p.HandleUIEvent(EventSerial, ui.Input, "SN")

	hist := rec.History()[seen:]
	if len(hist) != 1 {
		t.Fatalf("got %d deliveries after event, want 1", len(hist))
	}
	if hist[0].Target != "root2" {
		t.Errorf("internal render went to %q, want root2", hist[0].Target)
	}
}

func TestProcessor_NoTargetNoRender(t *testing.T) {
	p, rec, _ := newTestProcessor()

	snap := p.HandleUIEvent(EventMAC, ui.Input, "AA:BB")
	if snap.MAC != "AA:BB" {
		t.Errorf("MAC = %q, want state to change without a target", snap.MAC)
	}
	if rec.Count() != 0 {
		t.Errorf("rendered %d trees with no target, want 0", rec.Count())
	}
}

func TestProcessor_EmptyTargetGetsRerenders(t *testing.T) {
	p, rec, _ := newTestProcessor()

	p.Render("")
	p.HandleUIEvent(EventMAC, ui.Input, "AA")

	hist := rec.History()
	if len(hist) != 2 {
		t.Fatalf("got %d deliveries, want the request and the re-render", len(hist))
	}
	if hist[1].Target != "" {
		t.Errorf("re-render went to %q, want the empty target", hist[1].Target)
	}
}

func TestProcessor_IgnoredEventStillRenders(t *testing.T) {
	p, rec, bus := newTestProcessor()
	p.Render("root")

	var handled []event.UIEventHandledEvent
	bus.Subscribe(event.TypeUIEvent, func(e event.Event) {
		handled = append(handled, e.(event.UIEventHandledEvent))
	})

	before := p.Snapshot()
	after := p.HandleUIEvent("bogus", ui.Click, "x")

	if after.Values != before.Values {
		t.Errorf("ignored event changed state: %+v -> %+v", before.Values, after.Values)
	}
	if rec.Count() != 2 {
		t.Errorf("Count() = %d, want initial render plus re-render", rec.Count())
	}
	if len(handled) != 1 || handled[0].Action != "ignore" || handled[0].Changed {
		t.Errorf("handled events = %+v, want one unchanged ignore", handled)
	}
}

func TestProcessor_StaleCodeSurvivesEdits(t *testing.T) {
	p, rec, _ := newTestProcessor()
	p.Render("root")

	p.HandleUIEvent(EventMAC, ui.Input, "AA:BB:CC:DD:EE:FF")
	p.HandleUIEvent(EventSerial, ui.Input, "SN12345")
	p.HandleUIEvent(EventToggleConsent, ui.Click, "")
	p.HandleUIEvent(EventCalculate, ui.Click, "")

	p.HandleUIEvent(EventSerial, ui.Input, "OTHER")
	p.HandleUIEvent(EventToggleConsent, ui.Click, "")

	snap := p.Snapshot()
	if snap.Code != scenarioCode {
		t.Errorf("Code = %q after edits, want previous %q", snap.Code, scenarioCode)
	}
	if got := displayedCode(t, latest(t, rec, "root")); got != scenarioCode {
		t.Errorf("displayed code = %q, want %q", got, scenarioCode)
	}
}

func TestProcessor_RenderedEvents(t *testing.T) {
	p, rec, bus := newTestProcessor()

	var rendered []event.RenderedEvent
	bus.Subscribe(event.TypeRendered, func(e event.Event) {
		rendered = append(rendered, e.(event.RenderedEvent))
	})

	p.Render("root")
	p.HandleUIEvent(EventMAC, ui.Input, "AA")

	if len(rendered) != 2 {
		t.Fatalf("got %d rendered events, want 2", len(rendered))
	}
	if rendered[0].Internal || !rendered[1].Internal {
		t.Errorf("Internal flags = %v, %v; want false, true", rendered[0].Internal, rendered[1].Internal)
	}
	if want := ui.Fingerprint(latest(t, rec, "root")); rendered[1].Fingerprint != want {
		t.Errorf("Fingerprint = %q, want %q", rendered[1].Fingerprint, want)
	}
}

func TestMainView_Deterministic(t *testing.T) {
	snaps := []session.Snapshot{
		{},
		{Values: session.Values{Target: "root", MAC: "AA", Serial: "SN", Consent: true}},
		{Values: session.Values{MAC: "AA", Serial: "SN", Consent: true, Code: scenarioCode}},
	}
	for _, s := range snaps {
		a, b := MainView(s), MainView(s)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("MainView not deterministic (-first +second):\n%s", diff)
		}
		if ui.Fingerprint(a) != ui.Fingerprint(b) {
			t.Error("fingerprints differ for identical snapshots")
		}
	}
}

func TestMainView_Bindings(t *testing.T) {
	tree := MainView(session.Snapshot{Values: session.Values{MAC: "AA:BB", Serial: "SN1"}})

	mac := mustFind(t, tree, EventMAC)
	if mac.Kind != ui.KindInput || mac.Content() != "AA:BB" {
		t.Errorf("mac element = %s %q, want input AA:BB", mac.Kind, mac.Content())
	}
	for _, in := range []ui.Interaction{ui.Input, ui.Change} {
		if name, _ := mac.Event(in); name != EventMAC {
			t.Errorf("mac %s binding = %q, want %q", in, name, EventMAC)
		}
	}
	serial := mustFind(t, tree, EventSerial)
	if serial.Content() != "SN1" {
		t.Errorf("serial text = %q, want SN1", serial.Content())
	}

	toggle := mustFind(t, tree, EventToggleConsent)
	if toggle.Kind != ui.KindButton {
		t.Errorf("toggle kind = %s, want button", toggle.Kind)
	}
	checked := mustFind(t, MainView(session.Snapshot{Values: session.Values{Consent: true}}), EventToggleConsent)
	if toggle.Content() == checked.Content() {
		t.Error("consent label does not reflect the flag")
	}
}

func TestMainView_TreesDoNotAlias(t *testing.T) {
	s := session.Snapshot{Values: session.Values{MAC: "AA"}}
	a := MainView(s)
	b := MainView(s)

	a.Children[0].Children = append(a.Children[0].Children, ui.New(ui.KindP, "extra"))
	a.Children[2] = a.Children[2].On(ui.Click, "hijack")

	if diff := cmp.Diff(MainView(s), b); diff != "" {
		t.Errorf("editing one tree changed another (-want +got):\n%s", diff)
	}
}
