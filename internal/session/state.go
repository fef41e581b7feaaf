// Package session holds the plugin's UI session state.
//
// A [State] lives as long as the plugin instance that owns it. Reads and
// writes go through a mutex that is held only while fields are copied or
// edited, never while a tree is built or delivered to the host.
package session

import (
	"strings"
	"sync"
)

// Field names a form input. The set is closed.
type Field string

const (
	FieldMAC    Field = "mac"
	FieldSerial Field = "serial"
)

// Fields returns the known form fields in display order.
func Fields() []Field {
	return []Field{FieldMAC, FieldSerial}
}

// ParseField maps an event identifier to a form field.
func ParseField(id string) (Field, bool) {
	switch Field(id) {
	case FieldMAC, FieldSerial:
		return Field(id), true
	default:
		return "", false
	}
}

// Values is the mutable content guarded by State.
type Values struct {
	Target   string // last render target; any string, "" included, is a valid id
	Targeted bool   // a render target has been recorded
	MAC      string
	Serial   string
	Consent  bool
	Code     string // last derived code; "" until the first calculation
}

// Field returns the stored text of a form field.
func (v Values) Field(f Field) string {
	switch f {
	case FieldMAC:
		return v.MAC
	case FieldSerial:
		return v.Serial
	default:
		return ""
	}
}

// Snapshot is a point-in-time copy of the session values.
type Snapshot struct {
	Values
}

// HasTarget reports whether a render target has been recorded.
func (s Snapshot) HasTarget() bool { return s.Targeted }

// HasCode reports whether a code has been derived.
func (s Snapshot) HasCode() bool { return s.Code != "" }

// Ready reports whether a calculation would succeed: consent is given and
// both identifiers are non-empty after trimming.
func (s Snapshot) Ready() bool {
	return s.Consent &&
		strings.TrimSpace(s.MAC) != "" &&
		strings.TrimSpace(s.Serial) != ""
}

// State is the session state of one plugin instance. The zero value is not
// usable; call New.
type State struct {
	mu        sync.Mutex
	values    Values
	recovered int
}

// New returns the initial state: empty fields, no consent, no code and no
// render target.
func New() *State {
	return &State{}
}

// Snapshot copies the current values.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Values: s.values}
}

// Update applies fn to the values under the lock and returns the resulting
// snapshot. fn edits a working copy; if it panics the copy is dropped, the
// last good values stay in place and the panic is swallowed, so later
// callers always see a consistent state.
func (s *State) Update(fn func(v *Values)) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.values
	if applyRecovering(&work, fn) {
		s.values = work
	} else {
		s.recovered++
	}
	return Snapshot{Values: s.values}
}

func applyRecovering(v *Values, fn func(*Values)) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	fn(v)
	return true
}

// Recovered returns how many updates panicked and were rolled back.
func (s *State) Recovered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recovered
}

// SetTarget records the most recent render target.
func (s *State) SetTarget(target string) Snapshot {
	return s.Update(func(v *Values) {
		v.Target = target
		v.Targeted = true
	})
}

// SetField overwrites a form field. Unknown fields are ignored.
func (s *State) SetField(f Field, text string) Snapshot {
	return s.Update(func(v *Values) {
		switch f {
		case FieldMAC:
			v.MAC = text
		case FieldSerial:
			v.Serial = text
		}
	})
}

// ToggleConsent flips the consent flag.
func (s *State) ToggleConsent() Snapshot {
	return s.Update(func(v *Values) { v.Consent = !v.Consent })
}

// SetCode stores a derived code. Field edits never clear it; only a later
// calculation replaces it.
func (s *State) SetCode(code string) Snapshot {
	return s.Update(func(v *Values) { v.Code = code })
}
