package plugin

import (
	"github.com/Iron-Ham/unlockcalc/internal/event"
	"github.com/Iron-Ham/unlockcalc/internal/host"
	"github.com/Iron-Ham/unlockcalc/internal/logging"
	"github.com/Iron-Ham/unlockcalc/internal/session"
	"github.com/Iron-Ham/unlockcalc/internal/ui"
	"github.com/Iron-Ham/unlockcalc/internal/unlock"
)

// action is the closed set of things a UI event can do.
type action int

const (
	actionIgnore action = iota
	actionEditField
	actionToggleConsent
	actionCalculate
)

func (a action) String() string {
	switch a {
	case actionEditField:
		return "edit_field"
	case actionToggleConsent:
		return "toggle_consent"
	case actionCalculate:
		return "calculate"
	default:
		return "ignore"
	}
}

// classify maps an event identifier and interaction to an action. The field
// return value is only meaningful for actionEditField.
func classify(id string, interaction ui.Interaction) (action, session.Field) {
	switch interaction {
	case ui.Input, ui.Change:
		if f, ok := session.ParseField(id); ok {
			return actionEditField, f
		}
	case ui.Click:
		switch id {
		case EventToggleConsent:
			return actionToggleConsent, ""
		case EventCalculate:
			return actionCalculate, ""
		}
	}
	// Any other combination is intentionally a no-op.
	return actionIgnore, ""
}

// Processor dispatches UI events against a session state and renders the
// result to a display surface.
type Processor struct {
	state   *session.State
	surface host.Surface
	logger  *logging.Logger
	bus     *event.Bus
}

// NewProcessor creates a Processor. A nil surface discards renders, a nil
// logger discards logs and a nil bus gets a private one.
func NewProcessor(state *session.State, surface host.Surface, logger *logging.Logger, bus *event.Bus) *Processor {
	if state == nil {
		state = session.New()
	}
	if surface == nil {
		surface = host.Discard
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	if bus == nil {
		bus = event.NewBus(logger)
	}
	return &Processor{
		state:   state,
		surface: surface,
		logger:  logger.WithComponent("processor"),
		bus:     bus,
	}
}

// Snapshot returns the current session values.
func (p *Processor) Snapshot() session.Snapshot {
	return p.state.Snapshot()
}

// HandleUIEvent applies one UI event and re-renders into the last recorded
// target, if any. It returns the snapshot after the event.
func (p *Processor) HandleUIEvent(id string, interaction ui.Interaction, payload string) session.Snapshot {
	before := p.state.Snapshot()

	act, field := classify(id, interaction)
	switch act {
	case actionEditField:
		p.state.SetField(field, payload)
	case actionToggleConsent:
		p.state.ToggleConsent()
	case actionCalculate:
		p.calculate()
	case actionIgnore:
		p.logger.Debug("ignoring ui event", "event_id", id, "interaction", string(interaction))
	}

	after := p.state.Snapshot()
	p.bus.Publish(event.NewUIEventHandledEvent(id, string(interaction), act.String(), after.Values != before.Values))

	if after.HasTarget() {
		p.render(after.Target, after, true)
	}
	return after
}

func (p *Processor) calculate() {
	snap := p.state.Snapshot()
	if !snap.Ready() {
		p.logger.Debug("calculate skipped",
			"consent", snap.Consent,
			"has_mac", snap.MAC != "",
			"has_serial", snap.Serial != "")
		return
	}

	code := unlock.Derive(unlock.NormalizeMAC(snap.MAC), unlock.NormalizeSerial(snap.Serial))
	p.state.SetCode(code)
	p.logger.Info("unlock code calculated")
}

// Render records target as the current render target and delivers the main
// view for the current state to it.
func (p *Processor) Render(target string) {
	snap := p.state.SetTarget(target)
	p.render(target, snap, false)
}

// render builds and delivers a tree. The state lock is not held here.
func (p *Processor) render(target string, snap session.Snapshot, internal bool) {
	tree := MainView(snap)
	p.surface.Render(target, tree)
	p.bus.Publish(event.NewRenderedEvent(target, ui.Fingerprint(tree), internal))
}
