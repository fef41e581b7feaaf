// Package event provides a synchronous pub-sub bus that reports what the
// plugin did to anyone watching: the transport, the preview host, tests.
//
// The bus is an observation channel only. The UI core never depends on a
// subscriber being present, and nothing published here feeds back into
// session state.
//
// # Main Types
//
//   - [Event]: interface implemented by every event
//   - [Bus]: synchronous dispatcher, safe for concurrent use
//   - [Handler]: func(Event)
//
// # Event Types
//
//   - [LoadedEvent] ("plugin.loaded"): the on_load hook ran
//   - [HostEvent] ("host.event"): a generic host event was accepted
//   - [UIEventHandledEvent] ("ui.event"): a UI event went through the processor
//   - [RenderedEvent] ("ui.rendered"): a tree was handed to the display surface
//   - [CardRenderEvent] ("card.render"): a card render was acknowledged
//
// # Thread Safety
//
// Handlers run synchronously on the publishing goroutine, in registration
// order, specific subscriptions before wildcard ones. A panicking handler is
// logged and skipped; delivery continues with the next handler.
//
// # Basic Usage
//
//	bus := event.NewBus(logger)
//	bus.Subscribe(event.TypeRendered, func(e event.Event) {
//	    r := e.(event.RenderedEvent)
//	    fmt.Println(r.Target, r.Fingerprint)
//	})
package event
