package session

import (
	"sync"
	"testing"
)

func TestNew_InitialState(t *testing.T) {
	snap := New().Snapshot()

	if snap.HasTarget() {
		t.Errorf("Target = %q, want none", snap.Target)
	}
	if snap.HasCode() {
		t.Errorf("Code = %q, want none", snap.Code)
	}
	if snap.Consent {
		t.Error("Consent = true, want false")
	}
	if snap.MAC != "" || snap.Serial != "" {
		t.Errorf("fields = (%q, %q), want empty", snap.MAC, snap.Serial)
	}
	if snap.Ready() {
		t.Error("Ready() = true, want false")
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		id     string
		want   Field
		wantOK bool
	}{
		{"mac", FieldMAC, true},
		{"serial", FieldSerial, true},
		{"calculate", "", false},
		{"MAC", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseField(tt.id)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseField(%q) = (%q, %v), want (%q, %v)", tt.id, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestState_SetField(t *testing.T) {
	s := New()
	s.SetField(FieldMAC, "AA:BB")
	s.SetField(FieldSerial, "SN1")
	s.SetField(FieldMAC, "")

	snap := s.Snapshot()
	if snap.Field(FieldMAC) != "" {
		t.Errorf("MAC = %q, want empty after overwrite", snap.MAC)
	}
	if snap.Field(FieldSerial) != "SN1" {
		t.Errorf("Serial = %q, want %q", snap.Serial, "SN1")
	}

	s.SetField(Field("bogus"), "x")
	if got := s.Snapshot(); got != snap {
		t.Errorf("unknown field changed state: %+v -> %+v", snap, got)
	}
}

func TestState_ToggleConsentTwice(t *testing.T) {
	s := New()
	if !s.ToggleConsent().Consent {
		t.Fatal("Consent = false after one toggle")
	}
	if s.ToggleConsent().Consent {
		t.Error("Consent = true after two toggles, want original false")
	}
}

func TestState_CodeSurvivesEdits(t *testing.T) {
	s := New()
	s.SetCode("3577030057")
	s.SetField(FieldMAC, "changed")
	s.ToggleConsent()

	if got := s.Snapshot().Code; got != "3577030057" {
		t.Errorf("Code = %q after edits, want unchanged", got)
	}
}

func TestState_TargetOverwritten(t *testing.T) {
	s := New()
	s.SetTarget("root")
	s.SetTarget("root2")
	if got := s.Snapshot().Target; got != "root2" {
		t.Errorf("Target = %q, want %q", got, "root2")
	}
}

func TestState_EmptyTargetIsRecorded(t *testing.T) {
	s := New()
	snap := s.SetTarget("")
	if !snap.HasTarget() {
		t.Error("HasTarget() = false after SetTarget(\"\"), want true")
	}
	if snap.Target != "" {
		t.Errorf("Target = %q, want empty", snap.Target)
	}
}

func TestSnapshot_Ready(t *testing.T) {
	tests := []struct {
		name   string
		values Values
		want   bool
	}{
		{"all set", Values{MAC: "AA", Serial: "SN", Consent: true}, true},
		{"no consent", Values{MAC: "AA", Serial: "SN"}, false},
		{"blank serial", Values{MAC: "AA", Serial: "   ", Consent: true}, false},
		{"blank mac", Values{MAC: "\t", Serial: "SN", Consent: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Snapshot{Values: tt.values}).Ready(); got != tt.want {
				t.Errorf("Ready() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestState_UpdateRecoversFromPanic(t *testing.T) {
	s := New()
	s.SetField(FieldMAC, "AA")

	snap := s.Update(func(v *Values) {
		v.MAC = "partial"
		panic("boom")
	})

	if snap.MAC != "AA" {
		t.Errorf("MAC = %q after panicking update, want %q", snap.MAC, "AA")
	}
	if s.Recovered() != 1 {
		t.Errorf("Recovered() = %d, want 1", s.Recovered())
	}

	// The lock must still be usable.
	if got := s.SetField(FieldSerial, "SN").Serial; got != "SN" {
		t.Errorf("Serial = %q after recovery, want %q", got, "SN")
	}
}

func TestState_ConcurrentToggles(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.ToggleConsent()
		}()
	}
	wg.Wait()

	if s.Snapshot().Consent {
		t.Error("Consent = true after an even number of toggles")
	}
}
