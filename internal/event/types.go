package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns the "category.action" identifier of the event.
	EventType() string
	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers.
const (
	TypeLoaded     = "plugin.loaded"
	TypeHost       = "host.event"
	TypeUIEvent    = "ui.event"
	TypeRendered   = "ui.rendered"
	TypeCardRender = "card.render"
)

// baseEvent provides common fields for all events.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{eventType: eventType, timestamp: time.Now()}
}

// LoadedEvent is emitted once the on_load hook has run.
type LoadedEvent struct {
	baseEvent
	SessionID string // plugin instance id
}

// NewLoadedEvent creates a LoadedEvent.
func NewLoadedEvent(sessionID string) LoadedEvent {
	return LoadedEvent{baseEvent: newBaseEvent(TypeLoaded), SessionID: sessionID}
}

// HostEvent is emitted when a generic host event is accepted.
type HostEvent struct {
	baseEvent
	Kind    string // plugin_message, device_action, timer, ...
	Payload string
}

// NewHostEvent creates a HostEvent.
func NewHostEvent(kind, payload string) HostEvent {
	return HostEvent{baseEvent: newBaseEvent(TypeHost), Kind: kind, Payload: payload}
}

// UIEventHandledEvent is emitted after the processor has dispatched a UI event.
type UIEventHandledEvent struct {
	baseEvent
	EventID     string
	Interaction string
	Action      string // edit_field, toggle_consent, calculate or ignore
	Changed     bool   // whether session state changed
}

// NewUIEventHandledEvent creates a UIEventHandledEvent.
func NewUIEventHandledEvent(eventID, interaction, action string, changed bool) UIEventHandledEvent {
	return UIEventHandledEvent{
		baseEvent:   newBaseEvent(TypeUIEvent),
		EventID:     eventID,
		Interaction: interaction,
		Action:      action,
		Changed:     changed,
	}
}

// RenderedEvent is emitted after a tree is handed to the display surface.
type RenderedEvent struct {
	baseEvent
	Target      string
	Fingerprint string // ui.Fingerprint of the delivered tree
	Internal    bool   // triggered by a UI event rather than a host request
}

// NewRenderedEvent creates a RenderedEvent.
func NewRenderedEvent(target, fingerprint string, internal bool) RenderedEvent {
	return RenderedEvent{
		baseEvent:   newBaseEvent(TypeRendered),
		Target:      target,
		Fingerprint: fingerprint,
		Internal:    internal,
	}
}

// CardRenderEvent is emitted when a card render request is acknowledged.
type CardRenderEvent struct {
	baseEvent
	CardID string
}

// NewCardRenderEvent creates a CardRenderEvent.
func NewCardRenderEvent(cardID string) CardRenderEvent {
	return CardRenderEvent{baseEvent: newBaseEvent(TypeCardRender), CardID: cardID}
}
