// Package host defines the outbound side of the plugin boundary: the display
// surface a built element tree is delivered to.
//
// The plugin core only ever calls [Surface.Render]. Delivery failures are the
// surface's own concern; the core neither sees nor reports them.
package host

import (
	"slices"
	"sync"

	"github.com/Iron-Ham/unlockcalc/internal/ui"
)

// Surface receives rendered trees for a host-assigned target.
type Surface interface {
	Render(target string, tree ui.Element)
}

// SurfaceFunc adapts a function to the Surface interface.
type SurfaceFunc func(target string, tree ui.Element)

// Render calls f(target, tree).
func (f SurfaceFunc) Render(target string, tree ui.Element) { f(target, tree) }

// Discard is a Surface that drops every tree.
var Discard Surface = SurfaceFunc(func(string, ui.Element) {})

// Delivery is one recorded Render call.
type Delivery struct {
	Target string
	Tree   ui.Element
}

// Recorder is a Surface that keeps the latest tree per target and the full
// delivery history. It is safe for concurrent use.
type Recorder struct {
	mu       sync.RWMutex
	latest   map[string]ui.Element
	history  []Delivery
	onRender func(Delivery)
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{latest: make(map[string]ui.Element)}
}

// OnRender registers a callback invoked after each delivery is recorded.
// The callback runs on the rendering goroutine, outside the recorder lock.
func (r *Recorder) OnRender(fn func(Delivery)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onRender = fn
}

// Render records the tree for target.
func (r *Recorder) Render(target string, tree ui.Element) {
	d := Delivery{Target: target, Tree: tree}

	r.mu.Lock()
	r.latest[target] = tree
	r.history = append(r.history, d)
	fn := r.onRender
	r.mu.Unlock()

	if fn != nil {
		fn(d)
	}
}

// Latest returns the most recent tree delivered to target.
func (r *Recorder) Latest(target string) (ui.Element, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tree, ok := r.latest[target]
	return tree, ok
}

// History returns a copy of every delivery in order.
func (r *Recorder) History() []Delivery {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.history)
}

// Targets returns the targets that received at least one delivery, in the
// order they were last rendered to.
func (r *Recorder) Targets() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for i := len(r.history) - 1; i >= 0; i-- {
		t := r.history[i].Target
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	slices.Reverse(out)
	return out
}

// Count returns the number of deliveries recorded.
func (r *Recorder) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.history)
}

