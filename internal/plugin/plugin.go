package plugin

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"

	"github.com/Iron-Ham/unlockcalc/internal/event"
	"github.com/Iron-Ham/unlockcalc/internal/host"
	"github.com/Iron-Ham/unlockcalc/internal/logging"
	"github.com/Iron-Ham/unlockcalc/internal/session"
	"github.com/Iron-Ham/unlockcalc/internal/ui"
)

// Name is the display name logged on load.
const Name = "Unlock Code Calculator"

// EventType is a generic host event kind. The set is closed.
type EventType string

const (
	EventPluginMessage       EventType = "plugin_message"
	EventInterconnectMessage EventType = "interconnect_message"
	EventDeviceAction        EventType = "device_action"
	EventProviderAction      EventType = "provider_action"
	EventDeeplinkAction      EventType = "deeplink_action"
	EventTransportPacket     EventType = "transport_packet"
	EventTimer               EventType = "timer"
)

// EventTypes returns every host event kind.
func EventTypes() []EventType {
	return []EventType{
		EventPluginMessage,
		EventInterconnectMessage,
		EventDeviceAction,
		EventProviderAction,
		EventDeeplinkAction,
		EventTransportPacket,
		EventTimer,
	}
}

// ParseEventType converts a wire string to an EventType.
func ParseEventType(s string) (EventType, bool) {
	switch t := EventType(s); t {
	case EventPluginMessage, EventInterconnectMessage, EventDeviceAction,
		EventProviderAction, EventDeeplinkAction, EventTransportPacket, EventTimer:
		return t, true
	default:
		return "", false
	}
}

// Options configures a Plugin.
type Options struct {
	Logger *logging.Logger // nil discards logs
	Bus    *event.Bus      // nil creates a private bus
}

// Plugin implements the host hooks for one plugin instance. It owns exactly
// one session state for its lifetime.
type Plugin struct {
	id        string
	logger    *logging.Logger
	bus       *event.Bus
	processor *Processor
	loadOnce  sync.Once
}

// New creates a plugin instance that renders into surface.
func New(surface host.Surface, opts Options) *Plugin {
	id := uuid.NewString()

	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	logger = logger.WithSession(id)

	bus := opts.Bus
	if bus == nil {
		bus = event.NewBus(logger)
	}

	return &Plugin{
		id:        id,
		logger:    logger,
		bus:       bus,
		processor: NewProcessor(session.New(), surface, logger, bus),
	}
}

// ID returns the instance id.
func (p *Plugin) ID() string { return p.id }

// Bus returns the bus the plugin publishes on.
func (p *Plugin) Bus() *event.Bus { return p.bus }

// Snapshot returns the current session values.
func (p *Plugin) Snapshot() session.Snapshot { return p.processor.Snapshot() }

// Recovered returns how many state updates panicked and were rolled back.
func (p *Plugin) Recovered() int { return p.processor.state.Recovered() }

// OnLoad runs one-time initialization. Later calls do nothing. It never
// touches UI state.
func (p *Plugin) OnLoad() {
	p.loadOnce.Do(func() {
		p.logger.Info(Name + " loaded")
		p.bus.Publish(event.NewLoadedEvent(p.id))
	})
}

// OnEvent accepts a generic host event. It logs the payload and
// acknowledges with an empty result.
func (p *Plugin) OnEvent(kind EventType, payload string) <-chan string {
	return acknowledge(p.logger, "on_event", "", func() {
		p.logger.Info("event_payload", "event_type", string(kind), "payload", payload)
		p.bus.Publish(event.NewHostEvent(string(kind), payload))
	})
}

// OnUIEvent routes a UI event into the processor.
func (p *Plugin) OnUIEvent(id string, interaction ui.Interaction, payload string) <-chan string {
	return acknowledge(p.logger, "on_ui_event", "", func() {
		p.processor.HandleUIEvent(id, interaction, payload)
	})
}

// OnUIRender renders the main view into target.
func (p *Plugin) OnUIRender(target string) <-chan struct{} {
	return acknowledge(p.logger, "on_ui_render", struct{}{}, func() {
		p.processor.Render(target)
	})
}

// OnCardRender acknowledges a card render request. Cards have no view.
func (p *Plugin) OnCardRender(cardID string) <-chan struct{} {
	return acknowledge(p.logger, "on_card_render", struct{}{}, func() {
		p.logger.Debug("card render acknowledged", "card_id", cardID)
		p.bus.Publish(event.NewCardRenderEvent(cardID))
	})
}

// acknowledge runs work and returns a channel that yields result exactly
// once and is then closed. A panic in work is logged and the
// acknowledgement is still delivered.
func acknowledge[T any](logger *logging.Logger, hook string, result T, work func()) (ack <-chan T) {
	ch := make(chan T, 1)
	ack = ch
	defer func() {
		if r := recover(); r != nil {
			logger.Error("hook panicked",
				"hook", hook,
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()))
		}
		ch <- result
		close(ch)
	}()
	work()
	return ch
}
