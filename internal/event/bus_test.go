package event

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/Iron-Ham/unlockcalc/internal/logging"
)

func TestBus_SubscribeAndPublish(t *testing.T) {
	bus := NewBus(nil)

	var got []RenderedEvent
	id := bus.Subscribe(TypeRendered, func(e Event) {
		got = append(got, e.(RenderedEvent))
	})
	if id == "" {
		t.Fatal("Subscribe returned an empty id")
	}

	bus.Publish(NewRenderedEvent("root", "abc", false))
	bus.Publish(NewHostEvent("timer", ""))

	if len(got) != 1 {
		t.Fatalf("handler called %d times, want 1", len(got))
	}
	if got[0].Target != "root" || got[0].Fingerprint != "abc" || got[0].Internal {
		t.Errorf("received %+v, want target root fingerprint abc", got[0])
	}
}

func TestBus_Order(t *testing.T) {
	bus := NewBus(nil)

	var order []string
	bus.SubscribeAll(func(e Event) { order = append(order, "wildcard:"+e.EventType()) })
	bus.Subscribe(TypeUIEvent, func(Event) { order = append(order, "first") })
	bus.Subscribe(TypeUIEvent, func(Event) { order = append(order, "second") })

	bus.Publish(NewUIEventHandledEvent("mac", "input", "edit_field", true))

	want := []string{"first", "second", "wildcard:" + TypeUIEvent}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(nil)

	calls := 0
	bus.Subscribe(TypeHost, func(Event) { calls++ })
	drop := bus.Subscribe(TypeHost, func(Event) { calls += 100 })

	if !bus.Unsubscribe(drop) {
		t.Fatal("Unsubscribe of an existing id returned false")
	}
	if bus.Unsubscribe(drop) {
		t.Error("second Unsubscribe returned true")
	}
	if bus.Unsubscribe("sub-missing") {
		t.Error("Unsubscribe of unknown id returned true")
	}

	bus.Publish(NewHostEvent("plugin_message", "hi"))
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if bus.SubscriptionCount() != 1 {
		t.Errorf("SubscriptionCount() = %d, want 1", bus.SubscriptionCount())
	}
}

func TestBus_Clear(t *testing.T) {
	bus := NewBus(nil)
	bus.Subscribe(TypeLoaded, func(Event) {})
	bus.SubscribeAll(func(Event) {})
	bus.Clear()

	if bus.SubscriptionCount() != 0 {
		t.Errorf("SubscriptionCount() = %d after Clear, want 0", bus.SubscriptionCount())
	}
}

func TestBus_HandlerPanicRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := logging.New(logging.Options{Console: &buf})
	bus := NewBus(logger)

	calls := 0
	bus.Subscribe(TypeCardRender, func(Event) {
		calls++
		panic("handler panic")
	})
	bus.Subscribe(TypeCardRender, func(Event) { calls++ })

	bus.Publish(NewCardRenderEvent("card-1"))

	if calls != 2 {
		t.Errorf("calls = %d, want both handlers to run", calls)
	}
	if !strings.Contains(buf.String(), "event handler panicked") {
		t.Errorf("panic not logged: %q", buf.String())
	}
}

func TestBus_PublishFromHandler(t *testing.T) {
	bus := NewBus(nil)

	rendered := 0
	bus.Subscribe(TypeRendered, func(Event) { rendered++ })
	bus.Subscribe(TypeUIEvent, func(Event) {
		bus.Publish(NewRenderedEvent("root", "x", true))
	})

	bus.Publish(NewUIEventHandledEvent("calculate", "click", "calculate", false))
	if rendered != 1 {
		t.Errorf("nested publish delivered %d events, want 1", rendered)
	}
}

func TestBus_Concurrent(t *testing.T) {
	bus := NewBus(nil)

	var mu sync.Mutex
	calls := 0
	bus.Subscribe(TypeHost, func(Event) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for range 100 {
		wg.Go(func() {
			bus.Publish(NewHostEvent("timer", ""))
		})
		wg.Go(func() {
			id := bus.Subscribe(TypeLoaded, func(Event) {})
			bus.Unsubscribe(id)
		})
	}
	wg.Wait()

	if calls != 100 {
		t.Errorf("calls = %d, want 100", calls)
	}
	if bus.SubscriptionCount() != 1 {
		t.Errorf("SubscriptionCount() = %d, want 1", bus.SubscriptionCount())
	}
}

func TestEventConstructors(t *testing.T) {
	events := []struct {
		e    Event
		want string
	}{
		{NewLoadedEvent("s"), TypeLoaded},
		{NewHostEvent("timer", ""), TypeHost},
		{NewUIEventHandledEvent("mac", "input", "edit_field", true), TypeUIEvent},
		{NewRenderedEvent("root", "f", false), TypeRendered},
		{NewCardRenderEvent("c"), TypeCardRender},
	}
	for _, tt := range events {
		if tt.e.EventType() != tt.want {
			t.Errorf("EventType() = %q, want %q", tt.e.EventType(), tt.want)
		}
		if tt.e.Timestamp().IsZero() {
			t.Errorf("%s has zero timestamp", tt.want)
		}
	}
}
